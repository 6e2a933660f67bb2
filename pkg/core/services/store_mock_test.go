package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/communityserve/volunteerhub/pkg/core/model"
)

// mockStore is an in-memory store implementing the service store interfaces
// with the same invariant checks the postgres backend enforces
type mockStore struct {
	volunteers map[string]model.Volunteer
	events     map[string]model.Event
	matches    map[string]model.Match
	tasks      map[string]model.Task

	failWith error
}

func newMockStore() *mockStore {
	return &mockStore{
		volunteers: make(map[string]model.Volunteer),
		events:     make(map[string]model.Event),
		matches:    make(map[string]model.Match),
		tasks:      make(map[string]model.Task),
	}
}

func (m *mockStore) occupancy(eventID string) int {
	count := 0
	for _, match := range m.matches {
		if match.EventID == eventID &&
			(match.Status == model.MatchPending || match.Status == model.MatchConfirmed) {
			count++
		}
	}
	return count
}

func (m *mockStore) CreateVolunteer(ctx context.Context, volunteer *model.Volunteer) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.volunteers[volunteer.ID] = *volunteer
	return nil
}

func (m *mockStore) GetVolunteer(ctx context.Context, id string) (*model.Volunteer, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	volunteer, ok := m.volunteers[id]
	if !ok {
		return nil, fmt.Errorf("volunteer %s: %w", id, model.ErrNotFound)
	}
	return &volunteer, nil
}

func (m *mockStore) ListVolunteers(ctx context.Context) ([]model.Volunteer, error) {
	volunteers := make([]model.Volunteer, 0, len(m.volunteers))
	for _, volunteer := range m.volunteers {
		volunteers = append(volunteers, volunteer)
	}
	sort.Slice(volunteers, func(i, j int) bool { return volunteers[i].ID < volunteers[j].ID })
	return volunteers, nil
}

func (m *mockStore) UpdateVolunteer(ctx context.Context, volunteer *model.Volunteer) error {
	if _, ok := m.volunteers[volunteer.ID]; !ok {
		return fmt.Errorf("volunteer %s: %w", volunteer.ID, model.ErrNotFound)
	}
	m.volunteers[volunteer.ID] = *volunteer
	return nil
}

func (m *mockStore) DeleteVolunteer(ctx context.Context, id string) error {
	if _, ok := m.volunteers[id]; !ok {
		return fmt.Errorf("volunteer %s: %w", id, model.ErrNotFound)
	}
	delete(m.volunteers, id)
	for matchID, match := range m.matches {
		if match.VolunteerID == id {
			delete(m.matches, matchID)
		}
	}
	for taskID, task := range m.tasks {
		if task.VolunteerID != nil && *task.VolunteerID == id {
			task.VolunteerID = nil
			m.tasks[taskID] = task
		}
	}
	return nil
}

func (m *mockStore) CreateEvent(ctx context.Context, event *model.Event) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.events[event.ID] = *event
	return nil
}

func (m *mockStore) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	event, ok := m.events[id]
	if !ok {
		return nil, fmt.Errorf("event %s: %w", id, model.ErrNotFound)
	}
	event.CurrentVolunteers = m.occupancy(id)
	return &event, nil
}

func (m *mockStore) ListEvents(ctx context.Context) ([]model.Event, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	events := make([]model.Event, 0, len(m.events))
	for _, event := range m.events {
		event.CurrentVolunteers = m.occupancy(event.ID)
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	return events, nil
}

func (m *mockStore) UpdateEvent(ctx context.Context, event *model.Event) error {
	if _, ok := m.events[event.ID]; !ok {
		return fmt.Errorf("event %s: %w", event.ID, model.ErrNotFound)
	}
	m.events[event.ID] = *event
	return nil
}

func (m *mockStore) DeleteEvent(ctx context.Context, id string) error {
	if _, ok := m.events[id]; !ok {
		return fmt.Errorf("event %s: %w", id, model.ErrNotFound)
	}
	delete(m.events, id)
	for matchID, match := range m.matches {
		if match.EventID == id {
			delete(m.matches, matchID)
		}
	}
	for taskID, task := range m.tasks {
		if task.EventID == id {
			delete(m.tasks, taskID)
		}
	}
	return nil
}

func (m *mockStore) CreateMatch(ctx context.Context, match *model.Match) error {
	if m.failWith != nil {
		return m.failWith
	}
	event, ok := m.events[match.EventID]
	if !ok {
		return fmt.Errorf("event %s: %w", match.EventID, model.ErrNotFound)
	}
	if _, ok := m.volunteers[match.VolunteerID]; !ok {
		return fmt.Errorf("volunteer %s: %w", match.VolunteerID, model.ErrNotFound)
	}
	for _, existing := range m.matches {
		if existing.VolunteerID == match.VolunteerID && existing.EventID == match.EventID {
			return fmt.Errorf("match exists for pair: %w", model.ErrConflict)
		}
	}
	if m.occupancy(match.EventID) >= event.MaxVolunteers {
		return fmt.Errorf("event %s is full: %w", match.EventID, model.ErrCapacityExceeded)
	}
	m.matches[match.ID] = *match
	return nil
}

func (m *mockStore) GetMatch(ctx context.Context, id string) (*model.Match, error) {
	match, ok := m.matches[id]
	if !ok {
		return nil, fmt.Errorf("match %s: %w", id, model.ErrNotFound)
	}
	return &match, nil
}

func (m *mockStore) ListMatches(ctx context.Context) ([]model.Match, error) {
	matches := make([]model.Match, 0, len(m.matches))
	for _, match := range m.matches {
		matches = append(matches, match)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches, nil
}

func (m *mockStore) ListMatchesByVolunteer(ctx context.Context, volunteerID string) ([]model.Match, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	matches := make([]model.Match, 0)
	for _, match := range m.matches {
		if match.VolunteerID == volunteerID {
			matches = append(matches, match)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches, nil
}

func (m *mockStore) ListMatchesByEvent(ctx context.Context, eventID string) ([]model.Match, error) {
	matches := make([]model.Match, 0)
	for _, match := range m.matches {
		if match.EventID == eventID {
			matches = append(matches, match)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches, nil
}

func (m *mockStore) UpdateMatchStatus(ctx context.Context, id string, status model.MatchStatus) (*model.Match, error) {
	match, ok := m.matches[id]
	if !ok {
		return nil, fmt.Errorf("match %s: %w", id, model.ErrNotFound)
	}
	if !model.CanTransition(match.Status, status) {
		return nil, fmt.Errorf("transition %s -> %s: %w", match.Status, status, model.ErrInvalidArgument)
	}
	match.Status = status
	m.matches[id] = match
	return &match, nil
}

func (m *mockStore) DeleteMatch(ctx context.Context, id string) (*model.Match, error) {
	match, ok := m.matches[id]
	if !ok {
		return nil, fmt.Errorf("match %s: %w", id, model.ErrNotFound)
	}
	delete(m.matches, id)
	return &match, nil
}

func (m *mockStore) CreateTask(ctx context.Context, task *model.Task) error {
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.events[task.EventID]; !ok {
		return fmt.Errorf("event %s: %w", task.EventID, model.ErrNotFound)
	}
	m.tasks[task.ID] = *task
	return nil
}

func (m *mockStore) GetTask(ctx context.Context, id string) (*model.Task, error) {
	task, ok := m.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task %s: %w", id, model.ErrNotFound)
	}
	return &task, nil
}

func (m *mockStore) ListTasksByEvent(ctx context.Context, eventID string) ([]model.Task, error) {
	tasks := make([]model.Task, 0)
	for _, task := range m.tasks {
		if task.EventID == eventID {
			tasks = append(tasks, task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (m *mockStore) ListUnassignedTasksByEvent(ctx context.Context, eventID string) ([]model.Task, error) {
	tasks := make([]model.Task, 0)
	for _, task := range m.tasks {
		if task.EventID == eventID && task.VolunteerID == nil {
			tasks = append(tasks, task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (m *mockStore) UpdateTask(ctx context.Context, task *model.Task) error {
	if _, ok := m.tasks[task.ID]; !ok {
		return fmt.Errorf("task %s: %w", task.ID, model.ErrNotFound)
	}
	m.tasks[task.ID] = *task
	return nil
}

func (m *mockStore) DeleteTask(ctx context.Context, id string) error {
	if _, ok := m.tasks[id]; !ok {
		return fmt.Errorf("task %s: %w", id, model.ErrNotFound)
	}
	delete(m.tasks, id)
	return nil
}

func (m *mockStore) ListTasksByVolunteer(ctx context.Context, volunteerID string) ([]model.Task, error) {
	tasks := make([]model.Task, 0)
	for _, task := range m.tasks {
		if task.VolunteerID != nil && *task.VolunteerID == volunteerID {
			tasks = append(tasks, task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (m *mockStore) AssignTask(ctx context.Context, taskID, volunteerID string) (*model.Task, error) {
	task, ok := m.tasks[taskID]
	if !ok {
		return nil, fmt.Errorf("task %s: %w", taskID, model.ErrNotFound)
	}
	if _, ok := m.volunteers[volunteerID]; !ok {
		return nil, fmt.Errorf("volunteer %s: %w", volunteerID, model.ErrNotFound)
	}
	if task.VolunteerID != nil {
		return nil, fmt.Errorf("task %s already assigned: %w", taskID, model.ErrConflict)
	}
	task.VolunteerID = &volunteerID
	m.tasks[taskID] = task
	return &task, nil
}

func (m *mockStore) RateTask(ctx context.Context, taskID string, ratingPercent int) (*model.Task, error) {
	task, ok := m.tasks[taskID]
	if !ok {
		return nil, fmt.Errorf("task %s: %w", taskID, model.ErrNotFound)
	}
	task.Score = task.OriginalScore * ratingPercent / 100
	task.Completed = true
	m.tasks[taskID] = task
	return &task, nil
}

func (m *mockStore) TotalPoints(ctx context.Context, volunteerID string) (int, error) {
	total := 0
	for _, task := range m.tasks {
		if task.Completed && task.VolunteerID != nil && *task.VolunteerID == volunteerID {
			total += task.Score
		}
	}
	return total, nil
}

func (m *mockStore) TopVolunteers(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	entries := make([]model.LeaderboardEntry, 0, len(m.volunteers))
	for id, volunteer := range m.volunteers {
		total, _ := m.TotalPoints(ctx, id)
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

// mockSink records delivered notifications, optionally failing every send
type mockSink struct {
	sent    []model.Notification
	sendErr error
}

func (m *mockSink) Send(ctx context.Context, notification model.Notification) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, notification)
	return nil
}
