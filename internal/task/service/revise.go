package service

import (
	"context"

	"dokdig/internal/task/models"
	"dokdig/pkg/domainerr"
	"dokdig/pkg/requestcontext"
)

// ReviseAfterFinalization corrects an already-finalized foreign registration:
// re-validates, updates the archive document title, persists the corrected
// registration and re-publishes the record. The already-complete case task is
// left alone. Only plain Finalized tasks qualify; rejected and returned tasks
// stay terminal.
func (s *Service) ReviseAfterFinalization(ctx context.Context, req FinalizationRequest) (models.Outcome, error) {
	fc, outcome, err := s.prepare(ctx, req, models.StatusFinalized, true)
	if err != nil || outcome != nil {
		return deref(outcome), err
	}

	if fc.task.Origin == models.OriginDomesticPaper {
		return models.Outcome{}, domainerr.New(domainerr.CodeBadRequest,
			"post-finalization revision is not supported for domestic paper registrations")
	}

	violations, err := s.strategyFor(fc.task.Origin).validate(ctx, *fc)
	if err != nil {
		return models.Outcome{}, err
	}
	if len(violations) > 0 {
		s.metrics.RecordValidationFailure(string(fc.task.Origin))
		return models.Outcome{
			Kind:       models.OutcomeRejectedByValidation,
			Status:     fc.task.Classify(),
			Violations: violations,
		}, nil
	}

	title := archiveTitle(fc.task.Origin, fc.registration.Periods, nil)
	if err := s.archive.UpdateDocumentTitle(ctx, fc.task.ArchiveRecordID, *fc.task.ArchiveDocumentID, title); err != nil {
		return models.Outcome{}, err
	}

	now := requestcontext.Now(ctx)
	updated := fc.task
	updated.Registration = &fc.registration
	updated.EventPublishedAt = nil
	updated.LastModifiedBy = fc.actor
	updated.LastModifiedAt = now
	if err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.store.Save(ctx, updated)
	}); err != nil {
		return models.Outcome{}, domainerr.Wrap(err, domainerr.CodeInternal, "persist revised task")
	}

	if err := s.publishFinalized(ctx, updated, true); err != nil {
		return models.Outcome{}, err
	}

	s.metrics.RecordOperation("revise", string(models.OutcomeCompleted))
	s.logger.InfoContext(ctx, "finalized task revised",
		"task_id", updated.TaskID,
		"registration_id", updated.RegistrationID.String(),
		"actor", fc.actor)
	return models.Outcome{Kind: models.OutcomeCompleted, Status: updated.Classify()}, nil
}
