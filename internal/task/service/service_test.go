package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"dokdig/internal/task/models"
	"dokdig/internal/task/service/mocks"
	"dokdig/internal/task/store"
	"dokdig/pkg/requestcontext"
)

// fixture wires the orchestrator with mocked gateways and the real in-memory
// store so tests can assert on persisted state.
type fixture struct {
	store         *store.Memory
	archive       *mocks.MockArchiveGateway
	caseTasks     *mocks.MockCaseTaskGateway
	publisher     *mocks.MockEventPublisher
	subjects      *mocks.MockSubjectResolver
	practitioners *mocks.MockPractitionerResolver
	svc           *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &fixture{
		store:         store.NewMemory(),
		archive:       mocks.NewMockArchiveGateway(ctrl),
		caseTasks:     mocks.NewMockCaseTaskGateway(ctrl),
		publisher:     mocks.NewMockEventPublisher(ctrl),
		subjects:      mocks.NewMockSubjectResolver(ctrl),
		practitioners: mocks.NewMockPractitionerResolver(ctrl),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.svc = New(f.store, f.archive, f.caseTasks, f.publisher,
		f.subjects, f.practitioners, PassthroughTx{}, logger, nil)
	return f
}

var testNow = time.Date(2015, 2, 1, 10, 0, 0, 0, time.UTC)

func testCtx() context.Context {
	return requestcontext.WithTime(context.Background(), testNow)
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	t := date(s)
	return &t
}

func openForeignTask() models.Task {
	docID := "doc-1"
	return models.Task{
		TaskID:            "task-1",
		RegistrationID:    uuid.MustParse("6f2c1f3e-9f4a-4d8b-9a7d-3f1e2b5c8d90"),
		ArchiveRecordID:   "arch-1",
		ArchiveDocumentID: &docID,
		SubjectID:         "12345678901",
		Origin:            models.OriginForeignDigital,
	}
}

func openDomesticTask() models.Task {
	task := openForeignTask()
	task.Origin = models.OriginDomesticPaper
	return task
}

func validRegistration() models.Registration {
	return models.Registration{
		ProcessedAt: date("2015-01-02"),
		Periods: []models.Period{
			{From: date("2015-01-01"), To: date("2015-01-20"), FullyUnfit: true},
		},
		MainDiagnosis: &models.Diagnosis{
			System: models.DiagnosisSystemICD10, Code: "M54.5",
		},
		MedicalContact: &models.MedicalContact{Name: "Lege Legesen", HPRNumber: "9144889"},
	}
}

func testSubject() models.Subject {
	return models.Subject{
		NationalID:  "12345678901",
		FullName:    "Kari Nordmann",
		DateOfBirth: datePtr("1980-06-15"),
	}
}

func finalizeRequest(taskID string) FinalizationRequest {
	return FinalizationRequest{
		TaskID:       taskID,
		Registration: validRegistration(),
		Actor:        "Z999999",
		OrgUnit:      "0393",
	}
}
