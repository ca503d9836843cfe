package service

import (
	"context"
	"errors"

	"dokdig/internal/task/models"
	"dokdig/pkg/domainerr"
	"dokdig/pkg/requestcontext"
	"dokdig/pkg/sentinel"
)

// SaveDraft stores a work-in-progress registration without any terminal
// mutation. Drafts on terminal tasks are refused.
func (s *Service) SaveDraft(ctx context.Context, taskID string, reg models.Registration, actor string) error {
	task, err := s.store.FindByTaskID(ctx, taskID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return domainerr.Newf(domainerr.CodeNotFound, "task %s not found", taskID)
		}
		return domainerr.Wrap(err, domainerr.CodeInternal, "load task")
	}
	if status := task.Classify(); status != models.StatusNotYetFinalized {
		return domainerr.Newf(domainerr.CodeInvalidState,
			"cannot save draft on task in state %s", status)
	}

	now := requestcontext.Now(ctx)
	if err := s.store.SaveDraft(ctx, taskID, reg, actor, now); err != nil {
		return domainerr.Wrap(err, domainerr.CodeInternal, "save draft")
	}

	task.Registration = &reg
	task.LastModifiedBy = actor
	task.LastModifiedAt = now
	if err := s.store.Save(ctx, task); err != nil {
		return domainerr.Wrap(err, domainerr.CodeInternal, "save task")
	}
	return nil
}

// Get loads a task with its derived status.
func (s *Service) Get(ctx context.Context, taskID string) (models.Task, models.Status, error) {
	task, err := s.store.FindByTaskID(ctx, taskID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.Task{}, "", domainerr.Newf(domainerr.CodeNotFound, "task %s not found", taskID)
		}
		return models.Task{}, "", domainerr.Wrap(err, domainerr.CodeInternal, "load task")
	}
	return task, task.Classify(), nil
}

// LastDraft returns the most recent draft registration for the task, or nil
// when none exists.
func (s *Service) LastDraft(ctx context.Context, taskID string) (*models.Registration, error) {
	reg, err := s.store.LastDraft(ctx, taskID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return nil, domainerr.Wrap(err, domainerr.CodeInternal, "load last draft")
	}
	return reg, nil
}
