package models

// OutcomeKind classifies how a finalization attempt ended. Validation and
// wrong-state outcomes are structured results, not errors; infrastructure
// failures surface as errors alongside a zero Outcome.
type OutcomeKind string

const (
	OutcomeCompleted            OutcomeKind = "COMPLETED"
	OutcomeAlreadyTerminal      OutcomeKind = "ALREADY_TERMINAL"
	OutcomeRejectedByValidation OutcomeKind = "REJECTED_BY_VALIDATION"
)

// Outcome is the structured result of a finalize/reject/return/revise call.
type Outcome struct {
	Kind OutcomeKind

	// Status is the task's classification after the operation (or the
	// classification that blocked it, for AlreadyTerminal).
	Status Status

	// Violations holds validation messages when Kind is
	// OutcomeRejectedByValidation. Foreign registrations accumulate every
	// broken rule; the list order follows rule evaluation order.
	Violations []string
}

// Completed reports whether the operation performed its terminal mutation.
func (o Outcome) Completed() bool { return o.Kind == OutcomeCompleted }
