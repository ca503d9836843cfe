package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"dokdig/internal/task/models"
	"dokdig/internal/task/service"
	"dokdig/internal/task/validation"
	"dokdig/pkg/domainerr"
	"dokdig/pkg/httputil"
	"dokdig/pkg/requestcontext"
	"dokdig/pkg/sentinel"
)

// Service defines the finalization operations the handler exposes.
type Service interface {
	Finalize(ctx context.Context, req service.FinalizationRequest) (models.Outcome, error)
	Reject(ctx context.Context, req service.FinalizationRequest, rejection models.Rejection) (models.Outcome, error)
	ReturnToLegacyQueue(ctx context.Context, req service.FinalizationRequest) (models.Outcome, error)
	ReviseAfterFinalization(ctx context.Context, req service.FinalizationRequest) (models.Outcome, error)
	SaveDraft(ctx context.Context, taskID string, reg models.Registration, actor string) error
	Get(ctx context.Context, taskID string) (models.Task, models.Status, error)
	LastDraft(ctx context.Context, taskID string) (*models.Registration, error)
}

// Handler serves the digitization task endpoints.
type Handler struct {
	tasks  Service
	logger *slog.Logger
}

// New creates a task Handler.
func New(tasks Service, logger *slog.Logger) *Handler {
	return &Handler{tasks: tasks, logger: logger}
}

// Register mounts the task routes on the given router. Auth and correlation
// middleware are applied by the caller on the parent router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api/v1/oppgave/{taskId}", func(r chi.Router) {
		r.Get("/", h.handleGet)
		r.Post("/utkast", h.handleSaveDraft)
		r.Post("/ferdigstill", h.handleFinalize)
		r.Post("/avvis", h.handleReject)
		r.Post("/tilbakefoer", h.handleReturn)
		r.Post("/korriger", h.handleRevise)
	})
}

type taskResponse struct {
	TaskID       string               `json:"oppgaveId"`
	Status       models.Status        `json:"status"`
	Origin       models.Origin        `json:"kilde"`
	Documents    []models.Document    `json:"dokumenter"`
	Registration *models.Registration `json:"registrering,omitempty"`
	Draft        *models.Registration `json:"utkast,omitempty"`
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	taskID := chi.URLParam(r, "taskId")

	task, status, err := h.tasks.Get(ctx, taskID)
	if err != nil {
		h.writeServiceError(ctx, w, "get task", taskID, err)
		return
	}
	draft, err := h.tasks.LastDraft(ctx, taskID)
	if err != nil {
		h.writeServiceError(ctx, w, "load draft", taskID, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, taskResponse{
		TaskID:       task.TaskID,
		Status:       status,
		Origin:       task.Origin,
		Documents:    task.Documents,
		Registration: task.Registration,
		Draft:        draft,
	})
}

func (h *Handler) handleSaveDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	taskID := chi.URLParam(r, "taskId")

	var body registrationRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteError(w, domainerr.New(domainerr.CodeBadRequest, "invalid request body"))
		return
	}
	reg, err := body.toModel()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.tasks.SaveDraft(ctx, taskID, reg, requestcontext.Actor(ctx)); err != nil {
		h.writeServiceError(ctx, w, "save draft", taskID, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleFinalize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	taskID := chi.URLParam(r, "taskId")

	var body finalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteError(w, domainerr.New(domainerr.CodeBadRequest, "invalid request body"))
		return
	}
	req, err := h.buildRequest(ctx, taskID, body.Registration, body.OrgUnit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	outcome, err := h.tasks.Finalize(ctx, req)
	if err != nil {
		h.writeServiceError(ctx, w, "finalize task", taskID, err)
		return
	}
	h.writeOutcome(w, outcome)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	taskID := chi.URLParam(r, "taskId")

	var body rejectRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteError(w, domainerr.New(domainerr.CodeBadRequest, "invalid request body"))
		return
	}
	rejection, err := body.toModel()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if body.OrgUnit == "" {
		httputil.WriteError(w, domainerr.New(domainerr.CodeBadRequest, "enhetId is required"))
		return
	}

	req := service.FinalizationRequest{
		TaskID:  taskID,
		Actor:   requestcontext.Actor(ctx),
		OrgUnit: body.OrgUnit,
	}
	outcome, err := h.tasks.Reject(ctx, req, rejection)
	if err != nil {
		h.writeServiceError(ctx, w, "reject task", taskID, err)
		return
	}
	h.writeOutcome(w, outcome)
}

func (h *Handler) handleReturn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	taskID := chi.URLParam(r, "taskId")

	var body returnRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteError(w, domainerr.New(domainerr.CodeBadRequest, "invalid request body"))
		return
	}
	if body.OrgUnit == "" {
		httputil.WriteError(w, domainerr.New(domainerr.CodeBadRequest, "enhetId is required"))
		return
	}

	req := service.FinalizationRequest{
		TaskID:  taskID,
		Actor:   requestcontext.Actor(ctx),
		OrgUnit: body.OrgUnit,
	}
	outcome, err := h.tasks.ReturnToLegacyQueue(ctx, req)
	if err != nil {
		h.writeServiceError(ctx, w, "return task to legacy queue", taskID, err)
		return
	}
	h.writeOutcome(w, outcome)
}

func (h *Handler) handleRevise(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	taskID := chi.URLParam(r, "taskId")

	var body finalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteError(w, domainerr.New(domainerr.CodeBadRequest, "invalid request body"))
		return
	}
	req, err := h.buildRequest(ctx, taskID, body.Registration, body.OrgUnit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	outcome, err := h.tasks.ReviseAfterFinalization(ctx, req)
	if err != nil {
		h.writeServiceError(ctx, w, "revise task", taskID, err)
		return
	}
	h.writeOutcome(w, outcome)
}

func (h *Handler) buildRequest(ctx context.Context, taskID string, body registrationRequest, orgUnit string) (service.FinalizationRequest, error) {
	reg, err := body.toModel()
	if err != nil {
		return service.FinalizationRequest{}, err
	}
	if orgUnit == "" {
		return service.FinalizationRequest{}, domainerr.New(domainerr.CodeBadRequest, "enhetId is required")
	}
	return service.FinalizationRequest{
		TaskID:       taskID,
		Registration: reg,
		Actor:        requestcontext.Actor(ctx),
		OrgUnit:      orgUnit,
	}, nil
}

type outcomeResponse struct {
	Status     models.Status `json:"status"`
	Violations []string      `json:"regelbrudd,omitempty"`
}

type ruleErrorResponse struct {
	Rule              string `json:"regel"`
	Message           string `json:"melding"`
	CaseworkerMessage string `json:"saksbehandlerMelding,omitempty"`
}

// writeOutcome maps the domain outcome to HTTP. Terminal tasks come back as a
// conflict so the caller can refresh its view; rule violations come back as
// unprocessable content with the full violation list.
func (h *Handler) writeOutcome(w http.ResponseWriter, outcome models.Outcome) {
	switch outcome.Kind {
	case models.OutcomeAlreadyTerminal:
		httputil.WriteJSON(w, http.StatusConflict, outcomeResponse{Status: outcome.Status})
	case models.OutcomeRejectedByValidation:
		httputil.WriteJSON(w, http.StatusUnprocessableEntity, outcomeResponse{
			Status:     outcome.Status,
			Violations: outcome.Violations,
		})
	default:
		httputil.WriteJSON(w, http.StatusOK, outcomeResponse{Status: outcome.Status})
	}
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, op, taskID string, err error) {
	var ruleErr *validation.RuleError
	if errors.As(err, &ruleErr) {
		httputil.WriteJSON(w, http.StatusUnprocessableEntity, ruleErrorResponse{
			Rule:              ruleErr.Rule,
			Message:           ruleErr.Message,
			CaseworkerMessage: ruleErr.CaseworkerMessage,
		})
		return
	}

	switch {
	case errors.Is(err, sentinel.ErrNotFound), domainerr.HasCode(err, domainerr.CodeNotFound):
		httputil.WriteError(w, domainerr.New(domainerr.CodeNotFound, "task not found"))
	case domainerr.CodeOf(err) != domainerr.CodeInternal:
		h.logger.WarnContext(ctx, op+" rejected",
			"task_id", taskID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
	default:
		h.logger.ErrorContext(ctx, "failed to "+op,
			"task_id", taskID,
			"error", err.Error(),
		)
		httputil.WriteError(w, domainerr.New(domainerr.CodeInternal, "failed to "+op))
	}
}
