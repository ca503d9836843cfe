package validation

import (
	"errors"
	"fmt"
	"time"

	"dokdig/internal/task/models"
)

// Machine-readable rule names for domestic-paper preconditions.
const (
	RulePeriodRequired           = "PERIOD_REQUIRED"
	RuleOverlappingPeriods       = "OVERLAPPING_PERIODS"
	RuleTravelSubsidyCombined    = "TRAVEL_SUBSIDY_COMBINED"
	RuleProcessedAtInFuture      = "PROCESSED_AT_IN_FUTURE"
	RulePractitionerUnauthorized = "PRACTITIONER_NOT_AUTHORIZED"
	RulePractitionerSuspended    = "PRACTITIONER_SUSPENDED"
)

// RuleError is a typed validation failure for the domestic-paper variant. It
// carries a machine-readable rule name plus messages for both the submitter
// and the caseworker.
type RuleError struct {
	Rule              string
	Message           string
	CaseworkerMessage string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Rule, e.Message)
}

// AsRuleError extracts a RuleError from an error chain.
func AsRuleError(err error) (*RuleError, bool) {
	var re *RuleError
	ok := errors.As(err, &re)
	return re, ok
}

// ValidateDomestic evaluates the domestic-paper hard preconditions and
// returns the first violation as a RuleError. Unlike the foreign variant this
// intentionally fails fast; the asymmetry is observed product behavior and is
// preserved as-is.
func ValidateDomestic(reg models.Registration, practitioner models.Practitioner, now time.Time) error {
	if len(reg.Periods) == 0 {
		return &RuleError{
			Rule:              RulePeriodRequired,
			Message:           "Sykmeldingen må ha minst én periode.",
			CaseworkerMessage: "Papirsykmeldingen mangler periode og kan ikke registreres.",
		}
	}

	if hasIdentical(reg.Periods) || hasOverlap(reg.Periods) {
		return &RuleError{
			Rule:              RuleOverlappingPeriods,
			Message:           "Sykmeldingen har overlappende eller duplikate perioder.",
			CaseworkerMessage: "Periodene i papirsykmeldingen overlapper; korriger periodene.",
		}
	}

	for _, p := range reg.Periods {
		if p.TravelSubsidy && p.HasOtherFacet() {
			return &RuleError{
				Rule:              RuleTravelSubsidyCombined,
				Message:           "Reisetilskudd kan ikke kombineres med andre sykmeldingstyper i samme periode.",
				CaseworkerMessage: "En periode har reisetilskudd kombinert med annen sykmeldingstype.",
			}
		}
	}

	if day(reg.ProcessedAt).After(day(now)) {
		return &RuleError{
			Rule:              RuleProcessedAtInFuture,
			Message:           "Behandlet-tidspunkt kan ikke være frem i tid.",
			CaseworkerMessage: "Papirsykmeldingen er datert frem i tid.",
		}
	}

	if !practitioner.Authorized {
		return &RuleError{
			Rule:              RulePractitionerUnauthorized,
			Message:           "Behandler mangler autorisasjon til å sykmelde.",
			CaseworkerMessage: "Behandler er student uten autorisasjon; sykmeldingen kan ikke registreres.",
		}
	}

	if practitioner.Suspended {
		return &RuleError{
			Rule:              RulePractitionerSuspended,
			Message:           "Behandler er suspendert og kan ikke sykmelde.",
			CaseworkerMessage: "Behandler er suspendert; sykmeldingen kan ikke registreres.",
		}
	}

	return nil
}
