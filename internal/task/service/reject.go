package service

import (
	"context"
	"errors"
	"fmt"

	"dokdig/internal/task/models"
	"dokdig/pkg/domainerr"
	"dokdig/pkg/requestcontext"
	"dokdig/pkg/sentinel"
)

// Reject terminally rejects a task with a reason. Validation is skipped; the
// archive record gets the rejected framing, the case task is completed, and
// the task persists with the rejection. No event is published: rejected tasks
// are not downstream-visible sick-leave records.
func (s *Service) Reject(ctx context.Context, req FinalizationRequest, rejection models.Rejection) (models.Outcome, error) {
	fc, outcome, err := s.prepare(ctx, req, models.StatusNotYetFinalized, true)
	if err != nil || outcome != nil {
		return deref(outcome), err
	}

	title := archiveTitle(fc.task.Origin, fc.registration.Periods, &rejection)
	if err := s.updateArchive(ctx, *fc, title); err != nil {
		return models.Outcome{}, err
	}

	description := fmt.Sprintf("Avvist: %s", rejection.Reason)
	if err := s.completeCaseTask(ctx, *fc, description); err != nil {
		return models.Outcome{}, err
	}

	now := requestcontext.Now(ctx)
	updated := fc.task
	if len(fc.registration.Periods) > 0 || fc.registration.MainDiagnosis != nil {
		updated.Registration = &fc.registration
	}
	updated.FinalizedAt = &now
	updated.RejectionReason = &rejection
	updated.LastModifiedBy = fc.actor
	updated.LastModifiedAt = now
	if err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.store.Save(ctx, updated)
	}); err != nil {
		return models.Outcome{}, domainerr.Wrap(err, domainerr.CodeInternal, "persist rejected task")
	}

	s.metrics.RecordOperation("reject", string(models.OutcomeCompleted))
	s.logger.InfoContext(ctx, "task rejected",
		"task_id", updated.TaskID, "reason", string(rejection.Reason), "actor", fc.actor)
	return models.Outcome{Kind: models.OutcomeCompleted, Status: updated.Classify()}, nil
}

// ReturnToLegacyQueue reroutes the task to the manual fallback queue. The
// archive record is untouched; the external case task is reassigned and the
// local task becomes terminal.
func (s *Service) ReturnToLegacyQueue(ctx context.Context, req FinalizationRequest) (models.Outcome, error) {
	fc, outcome, err := s.prepare(ctx, req, models.StatusNotYetFinalized, false)
	if err != nil || outcome != nil {
		return deref(outcome), err
	}

	external, err := s.caseTasks.Get(ctx, fc.task.TaskID)
	if err != nil {
		return models.Outcome{}, err
	}
	if external.Terminal() {
		s.logger.InfoContext(ctx, "case task already terminal, skipping reassignment",
			"task_id", fc.task.TaskID, "status", external.Status)
	} else {
		err = s.caseTasks.ReassignToLegacyQueue(ctx, fc.task.TaskID, external.Version, fc.actor, fc.orgUnit)
		if errors.Is(err, sentinel.ErrConflict) {
			s.logger.InfoContext(ctx, "case task mutated elsewhere, continuing",
				"task_id", fc.task.TaskID)
		} else if err != nil {
			return models.Outcome{}, err
		}
	}

	now := requestcontext.Now(ctx)
	updated := fc.task
	updated.FinalizedAt = &now
	updated.ReturnedToLegacyQueue = true
	updated.LastModifiedBy = fc.actor
	updated.LastModifiedAt = now
	if err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.store.Save(ctx, updated)
	}); err != nil {
		return models.Outcome{}, domainerr.Wrap(err, domainerr.CodeInternal, "persist returned task")
	}

	s.metrics.RecordOperation("return_to_legacy", string(models.OutcomeCompleted))
	s.logger.InfoContext(ctx, "task returned to legacy queue",
		"task_id", updated.TaskID, "actor", fc.actor)
	return models.Outcome{Kind: models.OutcomeCompleted, Status: updated.Classify()}, nil
}
