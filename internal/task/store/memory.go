package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"dokdig/internal/task/models"
	"dokdig/pkg/sentinel"
)

// Memory is an in-memory task store for tests and local development. It
// mirrors the Postgres store's semantics: whole-aggregate replace, copies in
// and out, sentinel.ErrNotFound for misses.
type Memory struct {
	mu     sync.RWMutex
	tasks  map[string]models.Task
	drafts map[string][]draft
}

type draft struct {
	registration models.Registration
	savedAt      time.Time
}

// NewMemory constructs an empty in-memory task store.
func NewMemory() *Memory {
	return &Memory{
		tasks:  make(map[string]models.Task),
		drafts: make(map[string][]draft),
	}
}

func (s *Memory) FindByTaskID(_ context.Context, taskID string) (models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasks[taskID]
	if !ok {
		return models.Task{}, sentinel.ErrNotFound
	}
	return task, nil
}

func (s *Memory) FindByRegistrationID(_ context.Context, registrationID uuid.UUID) (models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, task := range s.tasks {
		if task.RegistrationID == registrationID {
			return task, nil
		}
	}
	return models.Task{}, sentinel.ErrNotFound
}

func (s *Memory) Save(_ context.Context, task models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.TaskID] = task
	return nil
}

func (s *Memory) SaveDraft(_ context.Context, taskID string, reg models.Registration, _ string, savedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[taskID] = append(s.drafts[taskID], draft{registration: reg, savedAt: savedAt})
	return nil
}

func (s *Memory) LastDraft(_ context.Context, taskID string) (*models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	drafts := s.drafts[taskID]
	if len(drafts) == 0 {
		return nil, sentinel.ErrNotFound
	}
	latest := drafts[0]
	for _, d := range drafts[1:] {
		if !d.savedAt.Before(latest.savedAt) {
			latest = d
		}
	}
	reg := latest.registration
	return &reg, nil
}

func (s *Memory) ListPendingPublish(_ context.Context, limit int) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var pending []models.Task
	for _, task := range s.tasks {
		if task.FinalizedAt != nil && task.EventPublishedAt == nil &&
			task.RejectionReason == nil && !task.ReturnedToLegacyQueue {
			pending = append(pending, task)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].FinalizedAt.Before(*pending[j].FinalizedAt)
	})
	if len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

func (s *Memory) MarkPublished(_ context.Context, taskID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[taskID]
	if !ok {
		return sentinel.ErrNotFound
	}
	task.EventPublishedAt = &at
	s.tasks[taskID] = task
	return nil
}
