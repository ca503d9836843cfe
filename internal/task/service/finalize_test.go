package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"dokdig/internal/casetask"
	"dokdig/internal/events"
	"dokdig/internal/task/models"
	"dokdig/pkg/domainerr"
	"dokdig/pkg/sentinel"
)

func TestFinalize_ForeignHappyPath(t *testing.T) {
	f := newFixture(t)
	ctx := testCtx()
	require.NoError(t, f.store.Save(ctx, openForeignTask()))

	f.subjects.EXPECT().ResolveSubject(gomock.Any(), "12345678901").Return(testSubject(), nil)
	f.archive.EXPECT().IsFinalized(gomock.Any(), "arch-1").Return(false, nil)
	f.archive.EXPECT().UpdateAndFinalize(gomock.Any(), "arch-1", "doc-1",
		"Digital utenlandsk sykmelding 01.01.2015 - 20.01.2015",
		gomock.Any(), "0393").Return(nil)
	f.caseTasks.EXPECT().Get(gomock.Any(), "task-1").
		Return(casetask.Task{ID: "task-1", Version: 2, Status: "OPPRETTET"}, nil)
	f.caseTasks.EXPECT().Complete(gomock.Any(), "task-1", 2, "Z999999", "0393", "").Return(nil)

	var published events.FinalizedRecord
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record events.FinalizedRecord) error {
			published = record
			return nil
		})

	outcome, err := f.svc.Finalize(ctx, finalizeRequest("task-1"))
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeCompleted, outcome.Kind)
	assert.Equal(t, models.StatusFinalized, outcome.Status)

	saved, err := f.store.FindByTaskID(ctx, "task-1")
	require.NoError(t, err)
	require.NotNil(t, saved.FinalizedAt)
	assert.Equal(t, testNow, *saved.FinalizedAt)
	require.NotNil(t, saved.Registration)
	assert.Equal(t, "Z999999", saved.LastModifiedBy)
	assert.NotNil(t, saved.EventPublishedAt)

	assert.Equal(t, "6f2c1f3e-9f4a-4d8b-9a7d-3f1e2b5c8d90", published.RegistrationID)
	assert.Equal(t, "task-1", published.TaskID)
	assert.False(t, published.Revised)
	assert.Equal(t, testNow, published.FinalizedAt)
}

func TestFinalize_ValidationFailureHasNoSideEffects(t *testing.T) {
	f := newFixture(t)
	ctx := testCtx()
	require.NoError(t, f.store.Save(ctx, openForeignTask()))

	f.subjects.EXPECT().ResolveSubject(gomock.Any(), "12345678901").Return(testSubject(), nil)
	// No archive, case-task or publisher expectations: any call fails the test.

	req := finalizeRequest("task-1")
	req.Registration.Periods = nil

	outcome, err := f.svc.Finalize(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeRejectedByValidation, outcome.Kind)
	assert.Equal(t, models.StatusNotYetFinalized, outcome.Status)
	require.Len(t, outcome.Violations, 1)
	assert.Equal(t, "Sykmeldingen må ha minst én periode.", outcome.Violations[0])

	saved, err := f.store.FindByTaskID(ctx, "task-1")
	require.NoError(t, err)
	assert.Nil(t, saved.FinalizedAt)
	assert.Nil(t, saved.Registration)
}

func TestFinalize_AlreadyTerminal(t *testing.T) {
	f := newFixture(t)
	ctx := testCtx()

	task := openForeignTask()
	task.FinalizedAt = &testNow
	require.NoError(t, f.store.Save(ctx, task))

	outcome, err := f.svc.Finalize(ctx, finalizeRequest("task-1"))
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeAlreadyTerminal, outcome.Kind)
	assert.Equal(t, models.StatusFinalized, outcome.Status)
}

func TestFinalize_TaskNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Finalize(testCtx(), finalizeRequest("missing"))
	assert.True(t, domainerr.HasCode(err, domainerr.CodeNotFound))
}

func TestFinalize_MissingArchiveDocumentFailsLoudly(t *testing.T) {
	f := newFixture(t)
	ctx := testCtx()

	task := openForeignTask()
	task.ArchiveDocumentID = nil
	require.NoError(t, f.store.Save(ctx, task))

	_, err := f.svc.Finalize(ctx, finalizeRequest("task-1"))
	assert.True(t, domainerr.HasCode(err, domainerr.CodeInternal))
}

func TestFinalize_ArchiveAlreadyFinalizedUpdatesTitleOnly(t *testing.T) {
	f := newFixture(t)
	ctx := testCtx()
	require.NoError(t, f.store.Save(ctx, openForeignTask()))

	f.subjects.EXPECT().ResolveSubject(gomock.Any(), "12345678901").Return(testSubject(), nil)
	f.archive.EXPECT().IsFinalized(gomock.Any(), "arch-1").Return(true, nil)
	f.archive.EXPECT().UpdateDocumentTitle(gomock.Any(), "arch-1", "doc-1",
		"Digital utenlandsk sykmelding 01.01.2015 - 20.01.2015").Return(nil)
	f.caseTasks.EXPECT().Get(gomock.Any(), "task-1").
		Return(casetask.Task{ID: "task-1", Version: 1, Status: "OPPRETTET"}, nil)
	f.caseTasks.EXPECT().Complete(gomock.Any(), "task-1", 1, "Z999999", "0393", "").Return(nil)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	outcome, err := f.svc.Finalize(ctx, finalizeRequest("task-1"))
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeCompleted, outcome.Kind)
}

func TestFinalize_CaseTaskAlreadyTerminalIsSkipped(t *testing.T) {
	f := newFixture(t)
	ctx := testCtx()
	require.NoError(t, f.store.Save(ctx, openForeignTask()))

	f.subjects.EXPECT().ResolveSubject(gomock.Any(), "12345678901").Return(testSubject(), nil)
	f.archive.EXPECT().IsFinalized(gomock.Any(), "arch-1").Return(false, nil)
	f.archive.EXPECT().UpdateAndFinalize(gomock.Any(), "arch-1", "doc-1", gomock.Any(), gomock.Any(), "0393").Return(nil)
	f.caseTasks.EXPECT().Get(gomock.Any(), "task-1").
		Return(casetask.Task{ID: "task-1", Version: 3, Status: casetask.StatusCompleted}, nil)
	// No Complete call.
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	outcome, err := f.svc.Finalize(ctx, finalizeRequest("task-1"))
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeCompleted, outcome.Kind)
}

func TestFinalize_CaseTaskVersionConflictIsTolerated(t *testing.T) {
	f := newFixture(t)
	ctx := testCtx()
	require.NoError(t, f.store.Save(ctx, openForeignTask()))

	f.subjects.EXPECT().ResolveSubject(gomock.Any(), "12345678901").Return(testSubject(), nil)
	f.archive.EXPECT().IsFinalized(gomock.Any(), "arch-1").Return(false, nil)
	f.archive.EXPECT().UpdateAndFinalize(gomock.Any(), "arch-1", "doc-1", gomock.Any(), gomock.Any(), "0393").Return(nil)
	f.caseTasks.EXPECT().Get(gomock.Any(), "task-1").
		Return(casetask.Task{ID: "task-1", Version: 1, Status: "OPPRETTET"}, nil)
	f.caseTasks.EXPECT().Complete(gomock.Any(), "task-1", 1, "Z999999", "0393", "").
		Return(sentinel.ErrConflict)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	outcome, err := f.svc.Finalize(ctx, finalizeRequest("task-1"))
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeCompleted, outcome.Kind)
}

func TestFinalize_ArchiveFailureAbortsBeforePersistence(t *testing.T) {
	f := newFixture(t)
	ctx := testCtx()
	require.NoError(t, f.store.Save(ctx, openForeignTask()))

	f.subjects.EXPECT().ResolveSubject(gomock.Any(), "12345678901").Return(testSubject(), nil)
	f.archive.EXPECT().IsFinalized(gomock.Any(), "arch-1").
		Return(false, domainerr.New(domainerr.CodeUnavailable, "archive unreachable"))

	_, err := f.svc.Finalize(ctx, finalizeRequest("task-1"))
	assert.True(t, domainerr.HasCode(err, domainerr.CodeUnavailable))

	saved, err := f.store.FindByTaskID(ctx, "task-1")
	require.NoError(t, err)
	assert.Nil(t, saved.FinalizedAt)
}

func TestFinalize_PublishFailurePropagatesAfterPersistence(t *testing.T) {
	f := newFixture(t)
	ctx := testCtx()
	require.NoError(t, f.store.Save(ctx, openForeignTask()))

	f.subjects.EXPECT().ResolveSubject(gomock.Any(), "12345678901").Return(testSubject(), nil)
	f.archive.EXPECT().IsFinalized(gomock.Any(), "arch-1").Return(false, nil)
	f.archive.EXPECT().UpdateAndFinalize(gomock.Any(), "arch-1", "doc-1", gomock.Any(), gomock.Any(), "0393").Return(nil)
	f.caseTasks.EXPECT().Get(gomock.Any(), "task-1").
		Return(casetask.Task{ID: "task-1", Version: 1, Status: "OPPRETTET"}, nil)
	f.caseTasks.EXPECT().Complete(gomock.Any(), "task-1", 1, "Z999999", "0393", "").Return(nil)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	_, err := f.svc.Finalize(ctx, finalizeRequest("task-1"))
	assert.True(t, domainerr.HasCode(err, domainerr.CodeUnavailable))

	// The task stays durably finalized with the publish pending; the
	// reconcile worker picks it up.
	saved, err := f.store.FindByTaskID(ctx, "task-1")
	require.NoError(t, err)
	assert.NotNil(t, saved.FinalizedAt)
	assert.Nil(t, saved.EventPublishedAt)

	pending, err := f.store.ListPendingPublish(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "task-1", pending[0].TaskID)
}

func TestFinalize_DomesticHappyPath(t *testing.T) {
	f := newFixture(t)
	ctx := testCtx()
	require.NoError(t, f.store.Save(ctx, openDomesticTask()))

	f.subjects.EXPECT().ResolveSubject(gomock.Any(), "12345678901").Return(testSubject(), nil)
	f.practitioners.EXPECT().ResolvePractitioner(gomock.Any(), "9144889").
		Return(models.Practitioner{HPRNumber: "9144889", Authorized: true}, nil)
	f.archive.EXPECT().IsFinalized(gomock.Any(), "arch-1").Return(false, nil)
	f.archive.EXPECT().UpdateAndFinalize(gomock.Any(), "arch-1", "doc-1",
		"Papirsykmelding 01.01.2015 - 20.01.2015",
		gomock.Any(), "0393").Return(nil)
	f.caseTasks.EXPECT().Get(gomock.Any(), "task-1").
		Return(casetask.Task{ID: "task-1", Version: 1, Status: "OPPRETTET"}, nil)
	f.caseTasks.EXPECT().Complete(gomock.Any(), "task-1", 1, "Z999999", "0393", "").Return(nil)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	outcome, err := f.svc.Finalize(ctx, finalizeRequest("task-1"))
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeCompleted, outcome.Kind)
}

func TestFinalize_DomesticPreconditionFailureIsTypedError(t *testing.T) {
	f := newFixture(t)
	ctx := testCtx()
	require.NoError(t, f.store.Save(ctx, openDomesticTask()))

	f.subjects.EXPECT().ResolveSubject(gomock.Any(), "12345678901").Return(testSubject(), nil)
	f.practitioners.EXPECT().ResolvePractitioner(gomock.Any(), "9144889").
		Return(models.Practitioner{HPRNumber: "9144889", Authorized: true, Suspended: true}, nil)

	_, err := f.svc.Finalize(ctx, finalizeRequest("task-1"))
	require.Error(t, err)
	assert.True(t, domainerr.HasCode(err, domainerr.CodeValidation))

	saved, err := f.store.FindByTaskID(ctx, "task-1")
	require.NoError(t, err)
	assert.Nil(t, saved.FinalizedAt)
}
