package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"dokdig/internal/events"
	"dokdig/internal/task/models"
	"dokdig/pkg/domainerr"
)

func finalizedForeignTask() models.Task {
	task := openForeignTask()
	reg := validRegistration()
	task.Registration = &reg
	task.FinalizedAt = &testNow
	task.EventPublishedAt = &testNow
	return task
}

func TestRevise_HappyPath(t *testing.T) {
	f := newFixture(t)
	ctx := testCtx()
	require.NoError(t, f.store.Save(ctx, finalizedForeignTask()))

	f.subjects.EXPECT().ResolveSubject(gomock.Any(), "12345678901").Return(testSubject(), nil)
	f.archive.EXPECT().UpdateDocumentTitle(gomock.Any(), "arch-1", "doc-1",
		"Digital utenlandsk sykmelding 05.01.2015 - 25.01.2015").Return(nil)
	// The already-complete case task is left alone: no Get, no Complete.

	var published events.FinalizedRecord
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record events.FinalizedRecord) error {
			published = record
			return nil
		})

	req := finalizeRequest("task-1")
	req.Registration.Periods = []models.Period{
		{From: date("2015-01-05"), To: date("2015-01-25"), FullyUnfit: true},
	}

	outcome, err := f.svc.ReviseAfterFinalization(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeCompleted, outcome.Kind)
	assert.Equal(t, models.StatusFinalized, outcome.Status)
	assert.True(t, published.Revised)

	saved, err := f.store.FindByTaskID(ctx, "task-1")
	require.NoError(t, err)
	require.NotNil(t, saved.Registration)
	assert.Equal(t, date("2015-01-05"), saved.Registration.Periods[0].From)
	// Republished and re-stamped.
	assert.NotNil(t, saved.EventPublishedAt)
}

func TestRevise_RefusedForDomesticPaper(t *testing.T) {
	f := newFixture(t)
	ctx := testCtx()

	task := finalizedForeignTask()
	task.Origin = models.OriginDomesticPaper
	require.NoError(t, f.store.Save(ctx, task))

	f.subjects.EXPECT().ResolveSubject(gomock.Any(), "12345678901").Return(testSubject(), nil)

	_, err := f.svc.ReviseAfterFinalization(ctx, finalizeRequest("task-1"))
	assert.True(t, domainerr.HasCode(err, domainerr.CodeBadRequest))
}

func TestRevise_RefusedForRejectedTask(t *testing.T) {
	f := newFixture(t)
	ctx := testCtx()

	task := finalizedForeignTask()
	task.RejectionReason = &models.Rejection{Reason: models.RejectionDuplicate}
	require.NoError(t, f.store.Save(ctx, task))

	outcome, err := f.svc.ReviseAfterFinalization(ctx, finalizeRequest("task-1"))
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeAlreadyTerminal, outcome.Kind)
	assert.Equal(t, models.StatusRejected, outcome.Status)
}

func TestRevise_RefusedForOpenTask(t *testing.T) {
	f := newFixture(t)
	ctx := testCtx()
	require.NoError(t, f.store.Save(ctx, openForeignTask()))

	outcome, err := f.svc.ReviseAfterFinalization(ctx, finalizeRequest("task-1"))
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeAlreadyTerminal, outcome.Kind)
	assert.Equal(t, models.StatusNotYetFinalized, outcome.Status)
}

func TestRevise_ValidationFailureLeavesTaskUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := testCtx()
	require.NoError(t, f.store.Save(ctx, finalizedForeignTask()))

	f.subjects.EXPECT().ResolveSubject(gomock.Any(), "12345678901").Return(testSubject(), nil)

	req := finalizeRequest("task-1")
	req.Registration.Periods = []models.Period{
		{From: date("2015-01-20"), To: date("2015-01-05"), FullyUnfit: true},
	}

	outcome, err := f.svc.ReviseAfterFinalization(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeRejectedByValidation, outcome.Kind)
	assert.NotEmpty(t, outcome.Violations)

	saved, err := f.store.FindByTaskID(ctx, "task-1")
	require.NoError(t, err)
	assert.Equal(t, date("2015-01-01"), saved.Registration.Periods[0].From)
	assert.NotNil(t, saved.EventPublishedAt)
}
