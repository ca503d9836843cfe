// Package models holds the task aggregate and its value types. The task
// ("oppgave") represents one scanned or submitted sick-leave document to be
// digitized and finalized by a caseworker.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Origin classifies where the source document came from. It selects the
// finalization strategy: foreign submissions accumulate validation violations,
// domestic paper submissions fail fast on the first broken precondition.
type Origin string

const (
	OriginScanning       Origin = "SCANNING"
	OriginForeignDigital Origin = "FOREIGN_DIGITAL"
	OriginDomesticPaper  Origin = "DOMESTIC_PAPER"
)

// Label returns the human-readable archive-title label for the origin.
func (o Origin) Label() string {
	switch o {
	case OriginForeignDigital:
		return "Digital utenlandsk sykmelding"
	case OriginDomesticPaper:
		return "Papirsykmelding"
	default:
		return "Skannet sykmelding"
	}
}

// Document is one archived source document linked to the task.
type Document struct {
	DocumentID string `json:"documentId"`
	Title      string `json:"title"`
}

// Rejection captures why a task was terminally rejected.
type Rejection struct {
	Reason RejectionReason
	Note   string
}

// RejectionReason enumerates the caseworker-selectable rejection causes.
type RejectionReason string

const (
	RejectionMissingSignature RejectionReason = "MANGLER_SIGNATUR"
	RejectionDuplicate        RejectionReason = "DUPLIKAT"
	RejectionWrongSubject     RejectionReason = "FEIL_PASIENT"
	RejectionOther            RejectionReason = "ANNET"
)

// Task is the aggregate root. It is owned exclusively by the store; all other
// components receive it by value and hand back a new value to persist.
type Task struct {
	TaskID            string
	RegistrationID    uuid.UUID
	ArchiveRecordID   string
	ArchiveDocumentID *string
	SubjectID         string
	Origin            Origin
	Documents         []Document

	Registration          *Registration
	FinalizedAt           *time.Time
	ReturnedToLegacyQueue bool
	RejectionReason       *Rejection

	// EventPublishedAt is stamped once the finalized record has been
	// acknowledged by the broker. Finalized tasks with a nil value are picked
	// up by the republish worker.
	EventPublishedAt *time.Time

	LastModifiedBy string
	LastModifiedAt time.Time
	CreatedAt      time.Time
}

// Status is the externally-visible classification of a task, derived from its
// persisted fields.
type Status string

const (
	StatusNotYetFinalized       Status = "UNDER_ARBEID"
	StatusFinalized             Status = "FERDIGSTILT"
	StatusRejected              Status = "AVVIST"
	StatusReturnedToLegacyQueue Status = "RETUR_LEGACY_KOE"
)

// Classify derives the status from the terminal fields. The precedence is
// load-bearing: a returned task stays returned even if a rejection reason was
// also recorded, and a rejection wins over plain finalized.
func (t Task) Classify() Status {
	switch {
	case t.FinalizedAt == nil:
		return StatusNotYetFinalized
	case t.ReturnedToLegacyQueue:
		return StatusReturnedToLegacyQueue
	case t.RejectionReason != nil:
		return StatusRejected
	default:
		return StatusFinalized
	}
}
