package server

import (
	"time"

	"github.com/communityserve/volunteerhub/pkg/core/model"
)

// Response bodies. The model package stays free of wire concerns, so the
// JSON shapes live here.

type volunteerView struct {
	ID           string   `json:"id"`
	UserID       string   `json:"userId"`
	Name         string   `json:"name"`
	Skills       []string `json:"skills"`
	Availability string   `json:"availability"`
}

func newVolunteerView(v model.Volunteer) volunteerView {
	return volunteerView{
		ID:           v.ID,
		UserID:       v.UserID,
		Name:         v.Name,
		Skills:       v.Skills,
		Availability: v.Availability,
	}
}

type eventView struct {
	ID                string   `json:"id"`
	OwnerID           string   `json:"ownerId"`
	Name              string   `json:"name"`
	Description       string   `json:"description,omitempty"`
	Location          string   `json:"location,omitempty"`
	Date              string   `json:"date"`
	Urgency           string   `json:"urgency"`
	Requirements      []string `json:"requirements"`
	MaxVolunteers     int      `json:"maxVolunteers"`
	CurrentVolunteers int      `json:"currentVolunteers"`
}

func newEventView(e model.Event) eventView {
	return eventView{
		ID:                e.ID,
		OwnerID:           e.OwnerID,
		Name:              e.Name,
		Description:       e.Description,
		Location:          e.Location,
		Date:              e.Date,
		Urgency:           string(e.Urgency),
		Requirements:      e.Requirements,
		MaxVolunteers:     e.MaxVolunteers,
		CurrentVolunteers: e.CurrentVolunteers,
	}
}

type matchView struct {
	ID            string    `json:"id"`
	VolunteerID   string    `json:"volunteerId"`
	VolunteerName string    `json:"volunteerName"`
	EventID       string    `json:"eventId"`
	EventName     string    `json:"eventName"`
	Status        string    `json:"status"`
	MatchedAt     time.Time `json:"matchedAt"`
}

func newMatchView(m model.Match) matchView {
	return matchView{
		ID:            m.ID,
		VolunteerID:   m.VolunteerID,
		VolunteerName: m.VolunteerName,
		EventID:       m.EventID,
		EventName:     m.EventName,
		Status:        string(m.Status),
		MatchedAt:     m.MatchedAt,
	}
}

type taskView struct {
	ID            string  `json:"id"`
	EventID       string  `json:"eventId"`
	Name          string  `json:"name"`
	Score         int     `json:"score"`
	OriginalScore int     `json:"originalScore"`
	Completed     bool    `json:"completed"`
	VolunteerID   *string `json:"volunteerId,omitempty"`
}

func newTaskView(t model.Task) taskView {
	return taskView{
		ID:            t.ID,
		EventID:       t.EventID,
		Name:          t.Name,
		Score:         t.Score,
		OriginalScore: t.OriginalScore,
		Completed:     t.Completed,
		VolunteerID:   t.VolunteerID,
	}
}

type leaderboardEntryView struct {
	VolunteerID   string `json:"volunteerId"`
	VolunteerName string `json:"volunteerName"`
	TotalPoints   int    `json:"totalPoints"`
}

func newLeaderboardView(entries []model.LeaderboardEntry) []leaderboardEntryView {
	views := make([]leaderboardEntryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, leaderboardEntryView{
			VolunteerID:   entry.VolunteerID,
			VolunteerName: entry.VolunteerName,
			TotalPoints:   entry.TotalPoints,
		})
	}
	return views
}

func newMatchViews(matches []model.Match) []matchView {
	views := make([]matchView, 0, len(matches))
	for _, m := range matches {
		views = append(views, newMatchView(m))
	}
	return views
}

func newTaskViews(tasks []model.Task) []taskView {
	views := make([]taskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, newTaskView(t))
	}
	return views
}
