package server

import (
	"context"
	"fmt"
	"sort"

	"github.com/communityserve/volunteerhub/pkg/core/model"
)

// fakeStore backs handler tests with the same invariant checks the postgres
// store enforces
type fakeStore struct {
	volunteers map[string]model.Volunteer
	events     map[string]model.Event
	matches    map[string]model.Match
	tasks      map[string]model.Task
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		volunteers: make(map[string]model.Volunteer),
		events:     make(map[string]model.Event),
		matches:    make(map[string]model.Match),
		tasks:      make(map[string]model.Task),
	}
}

func (f *fakeStore) occupancy(eventID string) int {
	count := 0
	for _, match := range f.matches {
		if match.EventID == eventID &&
			(match.Status == model.MatchPending || match.Status == model.MatchConfirmed) {
			count++
		}
	}
	return count
}

func (f *fakeStore) CreateVolunteer(ctx context.Context, volunteer *model.Volunteer) error {
	f.volunteers[volunteer.ID] = *volunteer
	return nil
}

func (f *fakeStore) GetVolunteer(ctx context.Context, id string) (*model.Volunteer, error) {
	volunteer, ok := f.volunteers[id]
	if !ok {
		return nil, fmt.Errorf("volunteer %s: %w", id, model.ErrNotFound)
	}
	return &volunteer, nil
}

func (f *fakeStore) ListVolunteers(ctx context.Context) ([]model.Volunteer, error) {
	volunteers := make([]model.Volunteer, 0, len(f.volunteers))
	for _, volunteer := range f.volunteers {
		volunteers = append(volunteers, volunteer)
	}
	sort.Slice(volunteers, func(i, j int) bool { return volunteers[i].ID < volunteers[j].ID })
	return volunteers, nil
}

func (f *fakeStore) UpdateVolunteer(ctx context.Context, volunteer *model.Volunteer) error {
	if _, ok := f.volunteers[volunteer.ID]; !ok {
		return fmt.Errorf("volunteer %s: %w", volunteer.ID, model.ErrNotFound)
	}
	f.volunteers[volunteer.ID] = *volunteer
	return nil
}

func (f *fakeStore) DeleteVolunteer(ctx context.Context, id string) error {
	if _, ok := f.volunteers[id]; !ok {
		return fmt.Errorf("volunteer %s: %w", id, model.ErrNotFound)
	}
	delete(f.volunteers, id)
	for matchID, match := range f.matches {
		if match.VolunteerID == id {
			delete(f.matches, matchID)
		}
	}
	for taskID, task := range f.tasks {
		if task.VolunteerID != nil && *task.VolunteerID == id {
			task.VolunteerID = nil
			f.tasks[taskID] = task
		}
	}
	return nil
}

func (f *fakeStore) CreateEvent(ctx context.Context, event *model.Event) error {
	f.events[event.ID] = *event
	return nil
}

func (f *fakeStore) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, fmt.Errorf("event %s: %w", id, model.ErrNotFound)
	}
	event.CurrentVolunteers = f.occupancy(id)
	return &event, nil
}

func (f *fakeStore) ListEvents(ctx context.Context) ([]model.Event, error) {
	events := make([]model.Event, 0, len(f.events))
	for _, event := range f.events {
		event.CurrentVolunteers = f.occupancy(event.ID)
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	return events, nil
}

func (f *fakeStore) UpdateEvent(ctx context.Context, event *model.Event) error {
	if _, ok := f.events[event.ID]; !ok {
		return fmt.Errorf("event %s: %w", event.ID, model.ErrNotFound)
	}
	f.events[event.ID] = *event
	return nil
}

func (f *fakeStore) DeleteEvent(ctx context.Context, id string) error {
	if _, ok := f.events[id]; !ok {
		return fmt.Errorf("event %s: %w", id, model.ErrNotFound)
	}
	delete(f.events, id)
	for matchID, match := range f.matches {
		if match.EventID == id {
			delete(f.matches, matchID)
		}
	}
	for taskID, task := range f.tasks {
		if task.EventID == id {
			delete(f.tasks, taskID)
		}
	}
	return nil
}

func (f *fakeStore) CreateMatch(ctx context.Context, match *model.Match) error {
	event, ok := f.events[match.EventID]
	if !ok {
		return fmt.Errorf("event %s: %w", match.EventID, model.ErrNotFound)
	}
	if _, ok := f.volunteers[match.VolunteerID]; !ok {
		return fmt.Errorf("volunteer %s: %w", match.VolunteerID, model.ErrNotFound)
	}
	for _, existing := range f.matches {
		if existing.VolunteerID == match.VolunteerID && existing.EventID == match.EventID {
			return fmt.Errorf("match exists for pair: %w", model.ErrConflict)
		}
	}
	if f.occupancy(match.EventID) >= event.MaxVolunteers {
		return fmt.Errorf("event %s is full: %w", match.EventID, model.ErrCapacityExceeded)
	}
	f.matches[match.ID] = *match
	return nil
}

func (f *fakeStore) GetMatch(ctx context.Context, id string) (*model.Match, error) {
	match, ok := f.matches[id]
	if !ok {
		return nil, fmt.Errorf("match %s: %w", id, model.ErrNotFound)
	}
	return &match, nil
}

func (f *fakeStore) ListMatches(ctx context.Context) ([]model.Match, error) {
	matches := make([]model.Match, 0, len(f.matches))
	for _, match := range f.matches {
		matches = append(matches, match)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches, nil
}

func (f *fakeStore) ListMatchesByVolunteer(ctx context.Context, volunteerID string) ([]model.Match, error) {
	matches := make([]model.Match, 0)
	for _, match := range f.matches {
		if match.VolunteerID == volunteerID {
			matches = append(matches, match)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches, nil
}

func (f *fakeStore) ListMatchesByEvent(ctx context.Context, eventID string) ([]model.Match, error) {
	matches := make([]model.Match, 0)
	for _, match := range f.matches {
		if match.EventID == eventID {
			matches = append(matches, match)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches, nil
}

func (f *fakeStore) UpdateMatchStatus(ctx context.Context, id string, status model.MatchStatus) (*model.Match, error) {
	match, ok := f.matches[id]
	if !ok {
		return nil, fmt.Errorf("match %s: %w", id, model.ErrNotFound)
	}
	if !model.CanTransition(match.Status, status) {
		return nil, fmt.Errorf("transition %s -> %s: %w", match.Status, status, model.ErrInvalidArgument)
	}
	match.Status = status
	f.matches[id] = match
	return &match, nil
}

func (f *fakeStore) DeleteMatch(ctx context.Context, id string) (*model.Match, error) {
	match, ok := f.matches[id]
	if !ok {
		return nil, fmt.Errorf("match %s: %w", id, model.ErrNotFound)
	}
	delete(f.matches, id)
	return &match, nil
}

func (f *fakeStore) CreateTask(ctx context.Context, task *model.Task) error {
	if _, ok := f.events[task.EventID]; !ok {
		return fmt.Errorf("event %s: %w", task.EventID, model.ErrNotFound)
	}
	f.tasks[task.ID] = *task
	return nil
}

func (f *fakeStore) GetTask(ctx context.Context, id string) (*model.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task %s: %w", id, model.ErrNotFound)
	}
	return &task, nil
}

func (f *fakeStore) ListTasksByEvent(ctx context.Context, eventID string) ([]model.Task, error) {
	tasks := make([]model.Task, 0)
	for _, task := range f.tasks {
		if task.EventID == eventID {
			tasks = append(tasks, task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (f *fakeStore) ListUnassignedTasksByEvent(ctx context.Context, eventID string) ([]model.Task, error) {
	tasks := make([]model.Task, 0)
	for _, task := range f.tasks {
		if task.EventID == eventID && task.VolunteerID == nil {
			tasks = append(tasks, task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (f *fakeStore) UpdateTask(ctx context.Context, task *model.Task) error {
	if _, ok := f.tasks[task.ID]; !ok {
		return fmt.Errorf("task %s: %w", task.ID, model.ErrNotFound)
	}
	f.tasks[task.ID] = *task
	return nil
}

func (f *fakeStore) DeleteTask(ctx context.Context, id string) error {
	if _, ok := f.tasks[id]; !ok {
		return fmt.Errorf("task %s: %w", id, model.ErrNotFound)
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeStore) ListTasksByVolunteer(ctx context.Context, volunteerID string) ([]model.Task, error) {
	tasks := make([]model.Task, 0)
	for _, task := range f.tasks {
		if task.VolunteerID != nil && *task.VolunteerID == volunteerID {
			tasks = append(tasks, task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (f *fakeStore) AssignTask(ctx context.Context, taskID, volunteerID string) (*model.Task, error) {
	task, ok := f.tasks[taskID]
	if !ok {
		return nil, fmt.Errorf("task %s: %w", taskID, model.ErrNotFound)
	}
	if _, ok := f.volunteers[volunteerID]; !ok {
		return nil, fmt.Errorf("volunteer %s: %w", volunteerID, model.ErrNotFound)
	}
	if task.VolunteerID != nil {
		return nil, fmt.Errorf("task %s already assigned: %w", taskID, model.ErrConflict)
	}
	task.VolunteerID = &volunteerID
	f.tasks[taskID] = task
	return &task, nil
}

func (f *fakeStore) RateTask(ctx context.Context, taskID string, ratingPercent int) (*model.Task, error) {
	task, ok := f.tasks[taskID]
	if !ok {
		return nil, fmt.Errorf("task %s: %w", taskID, model.ErrNotFound)
	}
	task.Score = task.OriginalScore * ratingPercent / 100
	task.Completed = true
	f.tasks[taskID] = task
	return &task, nil
}

func (f *fakeStore) TotalPoints(ctx context.Context, volunteerID string) (int, error) {
	total := 0
	for _, task := range f.tasks {
		if task.Completed && task.VolunteerID != nil && *task.VolunteerID == volunteerID {
			total += task.Score
		}
	}
	return total, nil
}

func (f *fakeStore) TopVolunteers(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	entries := make([]model.LeaderboardEntry, 0, len(f.volunteers))
	for id, volunteer := range f.volunteers {
		total, _ := f.TotalPoints(ctx, id)
		entries = append(entries, model.LeaderboardEntry{
			VolunteerID:   id,
			VolunteerName: volunteer.Name,
			TotalPoints:   total,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		return entries[i].VolunteerID < entries[j].VolunteerID
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// fakeSink records notifications delivered during a test
type fakeSink struct {
	sent []model.Notification
}

func (f *fakeSink) Send(ctx context.Context, notification model.Notification) error {
	f.sent = append(f.sent, notification)
	return nil
}
