// Package service orchestrates task finalization. It coordinates validation,
// the archive and case-task gateways, local persistence and event publication
// into one operation per request, with the step ordering the consistency
// story depends on: archive first, then case task, then local persistence,
// then publish. No locks are held across gateway calls; safety under retries
// comes from querying each system's state before mutating it.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"dokdig/internal/archive"
	"dokdig/internal/casetask"
	"dokdig/internal/events"
	"dokdig/internal/task/metrics"
	"dokdig/internal/task/models"
)

// TaskStore persists the task aggregate. Implementations must honor
// whole-aggregate replace semantics and return sentinel.ErrNotFound for
// misses.
type TaskStore interface {
	FindByTaskID(ctx context.Context, taskID string) (models.Task, error)
	FindByRegistrationID(ctx context.Context, registrationID uuid.UUID) (models.Task, error)
	Save(ctx context.Context, task models.Task) error
	SaveDraft(ctx context.Context, taskID string, reg models.Registration, savedBy string, savedAt time.Time) error
	LastDraft(ctx context.Context, taskID string) (*models.Registration, error)
	MarkPublished(ctx context.Context, taskID string, at time.Time) error
}

// ArchiveGateway mutates the journal record in the document archive.
// Implementations retry transient failures internally; all operations are
// idempotent per record.
type ArchiveGateway interface {
	IsFinalized(ctx context.Context, recordID string) (bool, error)
	UpdateAndFinalize(ctx context.Context, recordID, documentID, title string, correspondent archive.Correspondent, completingUnit string) error
	UpdateDocumentTitle(ctx context.Context, recordID, documentID, title string) error
}

// CaseTaskGateway mutates the external case-management task record using
// read-version-then-write concurrency control.
type CaseTaskGateway interface {
	Get(ctx context.Context, taskID string) (casetask.Task, error)
	Complete(ctx context.Context, taskID string, version int, assignee, unit, description string) error
	ReassignToLegacyQueue(ctx context.Context, taskID string, version int, assignee, unit string) error
}

// EventPublisher publishes finalized records, blocking for broker
// acknowledgment. At-least-once; consumers deduplicate on registrationId.
type EventPublisher interface {
	Publish(ctx context.Context, record events.FinalizedRecord) error
}

// SubjectResolver resolves the patient's reference data.
type SubjectResolver interface {
	ResolveSubject(ctx context.Context, nationalID string) (models.Subject, error)
}

// PractitionerResolver resolves the submitting practitioner's authorization
// state for the domestic-paper preconditions.
type PractitionerResolver interface {
	ResolvePractitioner(ctx context.Context, hprNumber string) (models.Practitioner, error)
}

// TxRunner runs fn inside one storage transaction. The transaction travels in
// the context so store calls made by fn join it.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// PassthroughTx is a TxRunner without transactional scope, for the in-memory
// store and tests.
type PassthroughTx struct{}

func (PassthroughTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// FinalizationRequest carries everything one finalize/reject/return/revise
// attempt needs. Actor and unit are explicit arguments rather than ambient
// security state.
type FinalizationRequest struct {
	TaskID       string
	Registration models.Registration
	Actor        string
	OrgUnit      string
}

// finalizationContext is the resolved per-attempt bundle threaded through the
// orchestrator steps. Created per request, discarded after.
type finalizationContext struct {
	task         models.Task
	registration models.Registration
	actor        string
	orgUnit      string
	subject      models.Subject
}

// Service is the finalization orchestrator.
type Service struct {
	store         TaskStore
	archive       ArchiveGateway
	caseTasks     CaseTaskGateway
	publisher     EventPublisher
	subjects      SubjectResolver
	practitioners PractitionerResolver
	tx            TxRunner
	logger        *slog.Logger
	metrics       *metrics.Metrics
}

// New constructs the orchestrator.
func New(store TaskStore, archiveGW ArchiveGateway, caseTasks CaseTaskGateway, publisher EventPublisher,
	subjects SubjectResolver, practitioners PractitionerResolver, tx TxRunner,
	logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		store:         store,
		archive:       archiveGW,
		caseTasks:     caseTasks,
		publisher:     publisher,
		subjects:      subjects,
		practitioners: practitioners,
		tx:            tx,
		logger:        logger,
		metrics:       m,
	}
}

// strategyFor selects the origin-specific validation behavior. The tagged
// variant decides at one place; the rest of the orchestrator is shared.
func (s *Service) strategyFor(origin models.Origin) originStrategy {
	if origin == models.OriginDomesticPaper {
		return domesticStrategy{practitioners: s.practitioners}
	}
	return foreignStrategy{}
}
