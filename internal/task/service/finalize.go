package service

import (
	"context"
	"errors"
	"time"

	"dokdig/internal/events"
	"dokdig/internal/task/models"
	"dokdig/pkg/domainerr"
	"dokdig/pkg/requestcontext"
	"dokdig/pkg/sentinel"
)

// Finalize runs the terminal success operation for a task: validate the
// submitted registration, update and complete the journal record, complete
// the external case task, persist the task as finalized, then publish the
// finalized record.
//
// Validation failures and wrong-state guards come back as structured
// outcomes with no side effects. Gateway failures before persistence abort
// the operation with local state untouched. A crash between persistence and
// publish leaves the task finalized with the event pending; the reconcile
// worker closes that gap.
func (s *Service) Finalize(ctx context.Context, req FinalizationRequest) (models.Outcome, error) {
	start := time.Now()
	outcome, err := s.finalize(ctx, req)
	s.metrics.ObserveFinalizeDuration(time.Since(start).Seconds())
	if err == nil {
		s.metrics.RecordOperation("finalize", string(outcome.Kind))
	}
	return outcome, err
}

func (s *Service) finalize(ctx context.Context, req FinalizationRequest) (models.Outcome, error) {
	fc, outcome, err := s.prepare(ctx, req, models.StatusNotYetFinalized, true)
	if err != nil || outcome != nil {
		return deref(outcome), err
	}

	violations, err := s.strategyFor(fc.task.Origin).validate(ctx, *fc)
	if err != nil {
		s.metrics.RecordValidationFailure(string(fc.task.Origin))
		return models.Outcome{}, err
	}
	if len(violations) > 0 {
		s.metrics.RecordValidationFailure(string(fc.task.Origin))
		s.logger.InfoContext(ctx, "registration rejected by validation",
			"task_id", fc.task.TaskID, "violations", len(violations))
		return models.Outcome{
			Kind:       models.OutcomeRejectedByValidation,
			Status:     fc.task.Classify(),
			Violations: violations,
		}, nil
	}

	title := archiveTitle(fc.task.Origin, fc.registration.Periods, nil)
	if err := s.updateArchive(ctx, *fc, title); err != nil {
		return models.Outcome{}, err
	}

	if err := s.completeCaseTask(ctx, *fc, ""); err != nil {
		return models.Outcome{}, err
	}

	now := requestcontext.Now(ctx)
	updated := fc.task
	updated.Registration = &fc.registration
	updated.FinalizedAt = &now
	updated.LastModifiedBy = fc.actor
	updated.LastModifiedAt = now
	if err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.store.Save(ctx, updated)
	}); err != nil {
		return models.Outcome{}, domainerr.Wrap(err, domainerr.CodeInternal, "persist finalized task")
	}

	if err := s.publishFinalized(ctx, updated, false); err != nil {
		// The task is durably finalized; the publish failure propagates so the
		// caller retries, and the reconcile worker covers crashes.
		return models.Outcome{}, err
	}

	s.logger.InfoContext(ctx, "task finalized",
		"task_id", updated.TaskID,
		"registration_id", updated.RegistrationID.String(),
		"actor", fc.actor)
	return models.Outcome{Kind: models.OutcomeCompleted, Status: updated.Classify()}, nil
}

// prepare loads the task, checks the state guard against requiredStatus and,
// when the operation touches the archive, verifies the archive-document
// invariant and resolves the subject. It returns a non-nil outcome when the
// guard refuses the operation.
func (s *Service) prepare(ctx context.Context, req FinalizationRequest, requiredStatus models.Status, needArchive bool) (*finalizationContext, *models.Outcome, error) {
	task, err := s.store.FindByTaskID(ctx, req.TaskID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil, domainerr.Newf(domainerr.CodeNotFound, "task %s not found", req.TaskID)
		}
		return nil, nil, domainerr.Wrap(err, domainerr.CodeInternal, "load task")
	}

	if status := task.Classify(); status != requiredStatus {
		s.logger.InfoContext(ctx, "operation refused by state guard",
			"task_id", task.TaskID, "status", string(status), "required", string(requiredStatus))
		outcome := models.Outcome{Kind: models.OutcomeAlreadyTerminal, Status: status}
		return nil, &outcome, nil
	}

	fc := &finalizationContext{
		task:         task,
		registration: req.Registration,
		actor:        req.Actor,
		orgUnit:      req.OrgUnit,
	}
	if !needArchive {
		return fc, nil, nil
	}

	if task.ArchiveDocumentID == nil {
		// Broken upstream wiring, not a user condition. Fails the request
		// loudly.
		s.logger.ErrorContext(ctx, "task has no linked archive document",
			"task_id", task.TaskID)
		return nil, nil, domainerr.Newf(domainerr.CodeInternal,
			"task %s has no linked archive document", req.TaskID)
	}

	fc.subject, err = s.subjects.ResolveSubject(ctx, task.SubjectID)
	if err != nil {
		return nil, nil, err
	}
	return fc, nil, nil
}

// updateArchive updates and completes the journal record, or only its
// document title when the record was already finalized upstream (a replayed
// or duplicate invocation).
func (s *Service) updateArchive(ctx context.Context, fc finalizationContext, title string) error {
	recordID := fc.task.ArchiveRecordID
	documentID := *fc.task.ArchiveDocumentID

	finalized, err := s.archive.IsFinalized(ctx, recordID)
	if err != nil {
		return err
	}
	if finalized {
		s.logger.InfoContext(ctx, "archive record already finalized, updating title only",
			"task_id", fc.task.TaskID, "archive_record_id", recordID)
		return s.archive.UpdateDocumentTitle(ctx, recordID, documentID, title)
	}
	return s.archive.UpdateAndFinalize(ctx, recordID, documentID, title, correspondentFor(fc.subject), fc.orgUnit)
}

// completeCaseTask completes the external case task with a freshly-read
// version. A terminal status or a version conflict means someone else
// completed it; both are logged and tolerated.
func (s *Service) completeCaseTask(ctx context.Context, fc finalizationContext, description string) error {
	external, err := s.caseTasks.Get(ctx, fc.task.TaskID)
	if err != nil {
		return err
	}
	if external.Terminal() {
		s.logger.InfoContext(ctx, "case task already terminal, skipping completion",
			"task_id", fc.task.TaskID, "status", external.Status)
		return nil
	}
	err = s.caseTasks.Complete(ctx, fc.task.TaskID, external.Version, fc.actor, fc.orgUnit, description)
	if errors.Is(err, sentinel.ErrConflict) {
		s.logger.InfoContext(ctx, "case task completed elsewhere, continuing",
			"task_id", fc.task.TaskID)
		return nil
	}
	return err
}

// publishFinalized publishes the record and stamps the acknowledgment. A
// failed stamp is only logged: the worst case is one duplicate publish by the
// reconcile worker, which consumers tolerate.
func (s *Service) publishFinalized(ctx context.Context, task models.Task, revised bool) error {
	if err := s.publisher.Publish(ctx, events.NewFinalizedRecord(task, revised)); err != nil {
		return domainerr.Wrap(err, domainerr.CodeUnavailable, "publish finalized record")
	}
	if err := s.store.MarkPublished(ctx, task.TaskID, requestcontext.Now(ctx)); err != nil {
		s.logger.WarnContext(ctx, "failed to stamp publish acknowledgment",
			"task_id", task.TaskID, "error", err)
	}
	return nil
}

func deref(outcome *models.Outcome) models.Outcome {
	if outcome == nil {
		return models.Outcome{}
	}
	return *outcome
}
