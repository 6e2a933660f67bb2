package model

import "time"

// MatchStatus is the lifecycle state of a volunteer-event match
type MatchStatus string

const (
	MatchPending   MatchStatus = "pending"
	MatchConfirmed MatchStatus = "confirmed"
	MatchCancelled MatchStatus = "cancelled"
)

// ValidMatchStatus reports whether s is one of the three known statuses
func ValidMatchStatus(s MatchStatus) bool {
	switch s {
	case MatchPending, MatchConfirmed, MatchCancelled:
		return true
	}
	return false
}

// CanTransition reports whether a match may move from one status to another.
// Cancelled is terminal and confirmed matches can only be cancelled.
func CanTransition(from, to MatchStatus) bool {
	switch from {
	case MatchPending:
		return to == MatchConfirmed || to == MatchCancelled
	case MatchConfirmed:
		return to == MatchCancelled
	}
	return false
}

// Urgency is the priority tag on an event
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// ValidUrgency reports whether u is one of the known urgency levels
func ValidUrgency(u Urgency) bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

// Volunteer represents a registered volunteer and their skill profile
type Volunteer struct {
	ID           string
	UserID       string
	Name         string
	Skills       []string
	Availability string
}

// Event represents a volunteer event with skill requirements and a capacity limit
type Event struct {
	ID            string
	OwnerID       string
	Name          string
	Description   string
	Location      string
	Date          string
	Urgency       Urgency
	Requirements  []string
	MaxVolunteers int

	// CurrentVolunteers is the number of pending or confirmed matches,
	// populated on reads that join against the matches table.
	CurrentVolunteers int
}

// Match is the assignment relationship between one volunteer and one event.
// At most one match exists per (volunteer, event) pair.
type Match struct {
	ID            string
	VolunteerID   string
	VolunteerName string
	EventID       string
	EventName     string
	Status        MatchStatus
	MatchedAt     time.Time
}

// Task is a point-valued unit of work under an event, claimable by one
// volunteer. Score holds the earned value once completed; OriginalScore keeps
// the value the task was created with so re-rating never compounds.
type Task struct {
	ID            string
	EventID       string
	Name          string
	Score         int
	OriginalScore int
	Completed     bool
	VolunteerID   *string
}

// LeaderboardEntry is a derived row ranking a volunteer by earned points
type LeaderboardEntry struct {
	VolunteerID   string
	VolunteerName string
	TotalPoints   int
}

// Notification is a structured side-effect event addressed to a user
type Notification struct {
	RecipientUserID string
	Type            string
	Message         string
}
