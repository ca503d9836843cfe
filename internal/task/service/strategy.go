package service

import (
	"context"

	"dokdig/internal/task/models"
	"dokdig/internal/task/validation"
	"dokdig/pkg/domainerr"
	"dokdig/pkg/requestcontext"
)

// originStrategy is the per-origin validation behavior. Foreign registrations
// accumulate every violation into the returned slice; domestic paper
// registrations return a typed error on the first broken precondition and an
// empty slice otherwise.
type originStrategy interface {
	validate(ctx context.Context, fc finalizationContext) ([]string, error)
}

type foreignStrategy struct{}

func (foreignStrategy) validate(ctx context.Context, fc finalizationContext) ([]string, error) {
	now := requestcontext.Now(ctx)
	return validation.ValidateForeign(fc.registration, fc.subject, now), nil
}

type domesticStrategy struct {
	practitioners PractitionerResolver
}

func (s domesticStrategy) validate(ctx context.Context, fc finalizationContext) ([]string, error) {
	var practitioner models.Practitioner
	if fc.registration.MedicalContact != nil && fc.registration.MedicalContact.HPRNumber != "" {
		var err error
		practitioner, err = s.practitioners.ResolvePractitioner(ctx, fc.registration.MedicalContact.HPRNumber)
		if err != nil {
			return nil, err
		}
	}
	now := requestcontext.Now(ctx)
	if err := validation.ValidateDomestic(fc.registration, practitioner, now); err != nil {
		return nil, domainerr.Wrap(err, domainerr.CodeValidation, "paper registration precondition failed")
	}
	return nil, nil
}
