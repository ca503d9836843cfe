// Package store persists the task aggregate. The Postgres store is the
// production implementation; the in-memory store backs unit tests and local
// development. Both satisfy the TaskStore interface declared by the service
// layer.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"dokdig/internal/task/models"
	"dokdig/pkg/sentinel"
	txcontext "dokdig/pkg/tx"
)

// Postgres persists tasks in PostgreSQL, one row per aggregate. Save is a
// whole-aggregate upsert, last-write-wins at the storage layer.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed task store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// q returns the ambient transaction when one is carried in context, so
// finalize/reject persistence joins the orchestrator's transactional scope.
func (s *Postgres) q(ctx context.Context) querier {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

const taskColumns = `task_id, registration_id, archive_record_id, archive_document_id,
	subject_id, origin, documents, registration, finalized_at,
	returned_to_legacy_queue, rejection_reason, rejection_note,
	event_published_at, last_modified_by, last_modified_at, created_at`

// FindByTaskID loads a task by its external case-system id.
func (s *Postgres) FindByTaskID(ctx context.Context, taskID string) (models.Task, error) {
	row := s.q(ctx).QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM oppgave WHERE task_id = $1`, taskID)
	return scanTask(row)
}

// FindByRegistrationID loads a task by its stable business correlation id.
func (s *Postgres) FindByRegistrationID(ctx context.Context, registrationID uuid.UUID) (models.Task, error) {
	row := s.q(ctx).QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM oppgave WHERE registration_id = $1`, registrationID)
	return scanTask(row)
}

// Save upserts the whole aggregate. No field-level merge: the given value
// replaces whatever is stored.
func (s *Postgres) Save(ctx context.Context, task models.Task) error {
	documents, err := json.Marshal(task.Documents)
	if err != nil {
		return fmt.Errorf("marshal documents: %w", err)
	}
	var registration []byte
	if task.Registration != nil {
		registration, err = json.Marshal(task.Registration)
		if err != nil {
			return fmt.Errorf("marshal registration: %w", err)
		}
	}
	var rejectionReason, rejectionNote sql.NullString
	if task.RejectionReason != nil {
		rejectionReason = sql.NullString{String: string(task.RejectionReason.Reason), Valid: true}
		rejectionNote = sql.NullString{String: task.RejectionReason.Note, Valid: true}
	}

	_, err = s.q(ctx).ExecContext(ctx, `
		INSERT INTO oppgave (`+taskColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (task_id) DO UPDATE SET
			archive_document_id      = EXCLUDED.archive_document_id,
			documents                = EXCLUDED.documents,
			registration             = EXCLUDED.registration,
			finalized_at             = EXCLUDED.finalized_at,
			returned_to_legacy_queue = EXCLUDED.returned_to_legacy_queue,
			rejection_reason         = EXCLUDED.rejection_reason,
			rejection_note           = EXCLUDED.rejection_note,
			event_published_at       = EXCLUDED.event_published_at,
			last_modified_by         = EXCLUDED.last_modified_by,
			last_modified_at         = EXCLUDED.last_modified_at`,
		task.TaskID, task.RegistrationID, task.ArchiveRecordID, nullString(task.ArchiveDocumentID),
		task.SubjectID, string(task.Origin), documents, nullBytes(registration),
		nullTime(task.FinalizedAt), task.ReturnedToLegacyQueue, rejectionReason, rejectionNote,
		nullTime(task.EventPublishedAt), task.LastModifiedBy, task.LastModifiedAt, task.CreatedAt)
	if err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

// SaveDraft appends a draft registration to the task's draft history.
func (s *Postgres) SaveDraft(ctx context.Context, taskID string, reg models.Registration, savedBy string, savedAt time.Time) error {
	payload, err := json.Marshal(reg)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	_, err = s.q(ctx).ExecContext(ctx, `
		INSERT INTO oppgave_draft (task_id, registration, saved_by, saved_at)
		VALUES ($1, $2, $3, $4)`,
		taskID, payload, savedBy, savedAt)
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// LastDraft returns the most recently saved draft registration for the task,
// or sentinel.ErrNotFound when none was ever saved.
func (s *Postgres) LastDraft(ctx context.Context, taskID string) (*models.Registration, error) {
	var payload []byte
	err := s.q(ctx).QueryRowContext(ctx, `
		SELECT registration FROM oppgave_draft
		WHERE task_id = $1
		ORDER BY saved_at DESC, id DESC
		LIMIT 1`, taskID).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("load last draft: %w", err)
	}
	var reg models.Registration
	if err := json.Unmarshal(payload, &reg); err != nil {
		return nil, fmt.Errorf("unmarshal draft: %w", err)
	}
	return &reg, nil
}

// ListPendingPublish returns finalized, non-rejected, non-returned tasks whose
// event has not been acknowledged yet. Used by the republish worker.
func (s *Postgres) ListPendingPublish(ctx context.Context, limit int) ([]models.Task, error) {
	rows, err := s.q(ctx).QueryContext(ctx, `
		SELECT `+taskColumns+` FROM oppgave
		WHERE finalized_at IS NOT NULL
		  AND event_published_at IS NULL
		  AND rejection_reason IS NULL
		  AND NOT returned_to_legacy_queue
		ORDER BY finalized_at
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending publish: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list pending publish: %w", err)
	}
	return tasks, nil
}

// MarkPublished stamps the publish acknowledgment time on the task.
func (s *Postgres) MarkPublished(ctx context.Context, taskID string, at time.Time) error {
	res, err := s.q(ctx).ExecContext(ctx,
		`UPDATE oppgave SET event_published_at = $2 WHERE task_id = $1`, taskID, at)
	if err != nil {
		return fmt.Errorf("mark published: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark published: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (models.Task, error) {
	var (
		task              models.Task
		archiveDocumentID sql.NullString
		documents         []byte
		registration      []byte
		finalizedAt       sql.NullTime
		rejectionReason   sql.NullString
		rejectionNote     sql.NullString
		publishedAt       sql.NullTime
		origin            string
	)
	err := row.Scan(&task.TaskID, &task.RegistrationID, &task.ArchiveRecordID, &archiveDocumentID,
		&task.SubjectID, &origin, &documents, &registration, &finalizedAt,
		&task.ReturnedToLegacyQueue, &rejectionReason, &rejectionNote,
		&publishedAt, &task.LastModifiedBy, &task.LastModifiedAt, &task.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, sentinel.ErrNotFound
		}
		return models.Task{}, fmt.Errorf("scan task: %w", err)
	}

	task.Origin = models.Origin(origin)
	if archiveDocumentID.Valid {
		task.ArchiveDocumentID = &archiveDocumentID.String
	}
	if err := json.Unmarshal(documents, &task.Documents); err != nil {
		return models.Task{}, fmt.Errorf("unmarshal documents: %w", err)
	}
	if len(registration) > 0 {
		var reg models.Registration
		if err := json.Unmarshal(registration, &reg); err != nil {
			return models.Task{}, fmt.Errorf("unmarshal registration: %w", err)
		}
		task.Registration = &reg
	}
	if finalizedAt.Valid {
		task.FinalizedAt = &finalizedAt.Time
	}
	if rejectionReason.Valid {
		task.RejectionReason = &models.Rejection{
			Reason: models.RejectionReason(rejectionReason.String),
			Note:   rejectionNote.String,
		}
	}
	if publishedAt.Valid {
		task.EventPublishedAt = &publishedAt.Time
	}
	return task, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullBytes(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}
