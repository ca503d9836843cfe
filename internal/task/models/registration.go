package models

import "time"

// Registration is the structured medical/administrative payload a caseworker
// drafts from the scanned document before finalizing the task.
type Registration struct {
	// ProcessedAt is when the practitioner processed the sick leave
	// ("behandletTidspunkt"). Forward-dating rules measure against it.
	ProcessedAt time.Time `json:"processedAt"`

	Periods []Period `json:"periods"`

	MainDiagnosis      *Diagnosis  `json:"mainDiagnosis,omitempty"`
	SecondaryDiagnoses []Diagnosis `json:"secondaryDiagnoses,omitempty"`

	Employer       *Employer       `json:"employer,omitempty"`
	MedicalContact *MedicalContact `json:"medicalContact,omitempty"`

	AdviceToEmployer string `json:"adviceToEmployer,omitempty"`
	Remarks          string `json:"remarks,omitempty"`
}

// Period is one sick-leave interval. Dates are inclusive, date-granular.
// Facets mirror the paper form: exactly one work-capability facet is expected
// per period; TravelSubsidy must not be combined with any of them.
type Period struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`

	// Grade is set for graded sick leave, percent of full leave.
	Grade *int `json:"grade,omitempty"`

	// FullyUnfit marks 100% sick leave ("aktivitetIkkeMulig").
	FullyUnfit bool `json:"fullyUnfit,omitempty"`

	// TreatmentDays is the number of single treatment days, when used.
	TreatmentDays *int `json:"treatmentDays,omitempty"`

	// PendingEmployerAction marks pending sick leave awaiting employer
	// adjustments ("avventende").
	PendingEmployerAction bool `json:"pendingEmployerAction,omitempty"`

	// TravelSubsidy marks travel subsidy instead of sick pay
	// ("reisetilskudd").
	TravelSubsidy bool `json:"travelSubsidy,omitempty"`
}

// HasOtherFacet reports whether any work-capability facet besides travel
// subsidy is set on the period.
func (p Period) HasOtherFacet() bool {
	return p.Grade != nil || p.FullyUnfit || p.TreatmentDays != nil || p.PendingEmployerAction
}

// DiagnosisSystem identifies the code system a diagnosis belongs to.
type DiagnosisSystem string

const (
	DiagnosisSystemICD10 DiagnosisSystem = "ICD10"
	DiagnosisSystemICPC2 DiagnosisSystem = "ICPC2"
)

// Diagnosis is a coded diagnosis with its code system.
type Diagnosis struct {
	System DiagnosisSystem `json:"system"`
	Code   string          `json:"code"`
	Text   string          `json:"text,omitempty"`
}

// Employer carries the employment information from the form.
type Employer struct {
	Name            string `json:"name"`
	OrgNumber       string `json:"orgNumber,omitempty"`
	StillingProsent *int   `json:"stillingProsent,omitempty"`
}

// MedicalContact is the submitting practitioner ("behandler").
type MedicalContact struct {
	Name      string `json:"name"`
	HPRNumber string `json:"hprNumber,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// Subject is the patient reference data resolved from the person registry.
// DateOfBirth is nil when the registry does not know it; age rules are then
// skipped.
type Subject struct {
	NationalID  string
	FullName    string
	DateOfBirth *time.Time
	AktorID     string
}

// Practitioner is the submitting practitioner's authorization state resolved
// from the practitioner registry. Domestic-paper preconditions consult it.
type Practitioner struct {
	HPRNumber  string
	Authorized bool
	Suspended  bool
}
