package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dokdig/internal/task/models"
	"dokdig/pkg/domainerr"
)

func TestSaveDraft(t *testing.T) {
	f := newFixture(t)
	ctx := testCtx()
	require.NoError(t, f.store.Save(ctx, openForeignTask()))

	reg := validRegistration()
	require.NoError(t, f.svc.SaveDraft(ctx, "task-1", reg, "Z999999"))

	saved, err := f.store.FindByTaskID(ctx, "task-1")
	require.NoError(t, err)
	require.NotNil(t, saved.Registration)
	assert.Nil(t, saved.FinalizedAt)
	assert.Equal(t, "Z999999", saved.LastModifiedBy)

	draft, err := f.svc.LastDraft(ctx, "task-1")
	require.NoError(t, err)
	require.NotNil(t, draft)
	assert.Equal(t, reg.Periods, draft.Periods)
}

func TestSaveDraft_RefusedOnTerminalTask(t *testing.T) {
	f := newFixture(t)
	ctx := testCtx()

	task := openForeignTask()
	task.FinalizedAt = &testNow
	require.NoError(t, f.store.Save(ctx, task))

	err := f.svc.SaveDraft(ctx, "task-1", validRegistration(), "Z999999")
	assert.True(t, domainerr.HasCode(err, domainerr.CodeInvalidState))
}

func TestSaveDraft_UnknownTask(t *testing.T) {
	f := newFixture(t)
	err := f.svc.SaveDraft(testCtx(), "missing", validRegistration(), "Z999999")
	assert.True(t, domainerr.HasCode(err, domainerr.CodeNotFound))
}

func TestGet(t *testing.T) {
	f := newFixture(t)
	ctx := testCtx()
	require.NoError(t, f.store.Save(ctx, openForeignTask()))

	task, status, err := f.svc.Get(ctx, "task-1")
	require.NoError(t, err)
	assert.Equal(t, "task-1", task.TaskID)
	assert.Equal(t, models.StatusNotYetFinalized, status)

	_, _, err = f.svc.Get(ctx, "missing")
	assert.True(t, domainerr.HasCode(err, domainerr.CodeNotFound))
}

func TestLastDraft_NoneSaved(t *testing.T) {
	f := newFixture(t)
	draft, err := f.svc.LastDraft(testCtx(), "task-1")
	require.NoError(t, err)
	assert.Nil(t, draft)
}
