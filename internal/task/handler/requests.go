package handler

import (
	"time"

	"dokdig/internal/task/models"
	"dokdig/pkg/domainerr"
)

const dateLayout = "2006-01-02"

type periodRequest struct {
	From                  string `json:"fom"`
	To                    string `json:"tom"`
	Grade                 *int   `json:"grad,omitempty"`
	FullyUnfit            bool   `json:"aktivitetIkkeMulig,omitempty"`
	TreatmentDays         *int   `json:"behandlingsdager,omitempty"`
	PendingEmployerAction bool   `json:"avventende,omitempty"`
	TravelSubsidy         bool   `json:"reisetilskudd,omitempty"`
}

type diagnosisRequest struct {
	System string `json:"system"`
	Code   string `json:"kode"`
	Text   string `json:"tekst,omitempty"`
}

type employerRequest struct {
	Name            string `json:"navn"`
	OrgNumber       string `json:"orgnummer,omitempty"`
	StillingProsent *int   `json:"stillingsprosent,omitempty"`
}

type medicalContactRequest struct {
	Name      string `json:"navn"`
	HPRNumber string `json:"hprNummer,omitempty"`
	Phone     string `json:"telefon,omitempty"`
}

type registrationRequest struct {
	ProcessedAt        string                 `json:"behandletTidspunkt"`
	Periods            []periodRequest        `json:"perioder"`
	MainDiagnosis      *diagnosisRequest      `json:"hovedDiagnose,omitempty"`
	SecondaryDiagnoses []diagnosisRequest     `json:"biDiagnoser,omitempty"`
	Employer           *employerRequest       `json:"arbeidsgiver,omitempty"`
	MedicalContact     *medicalContactRequest `json:"behandler,omitempty"`
	AdviceToEmployer   string                 `json:"meldingTilArbeidsgiver,omitempty"`
	Remarks            string                 `json:"merknader,omitempty"`
}

func (r registrationRequest) toModel() (models.Registration, error) {
	processedAt, err := time.Parse(time.RFC3339, r.ProcessedAt)
	if err != nil {
		return models.Registration{}, domainerr.Newf(domainerr.CodeBadRequest,
			"invalid behandletTidspunkt %q", r.ProcessedAt)
	}

	reg := models.Registration{
		ProcessedAt:      processedAt,
		AdviceToEmployer: r.AdviceToEmployer,
		Remarks:          r.Remarks,
	}

	for i, p := range r.Periods {
		from, err := time.Parse(dateLayout, p.From)
		if err != nil {
			return models.Registration{}, domainerr.Newf(domainerr.CodeBadRequest,
				"invalid fom date in period %d", i+1)
		}
		to, err := time.Parse(dateLayout, p.To)
		if err != nil {
			return models.Registration{}, domainerr.Newf(domainerr.CodeBadRequest,
				"invalid tom date in period %d", i+1)
		}
		reg.Periods = append(reg.Periods, models.Period{
			From:                  from,
			To:                    to,
			Grade:                 p.Grade,
			FullyUnfit:            p.FullyUnfit,
			TreatmentDays:         p.TreatmentDays,
			PendingEmployerAction: p.PendingEmployerAction,
			TravelSubsidy:         p.TravelSubsidy,
		})
	}

	if r.MainDiagnosis != nil {
		d, err := r.MainDiagnosis.toModel()
		if err != nil {
			return models.Registration{}, err
		}
		reg.MainDiagnosis = &d
	}
	for _, bd := range r.SecondaryDiagnoses {
		d, err := bd.toModel()
		if err != nil {
			return models.Registration{}, err
		}
		reg.SecondaryDiagnoses = append(reg.SecondaryDiagnoses, d)
	}

	if r.Employer != nil {
		reg.Employer = &models.Employer{
			Name:            r.Employer.Name,
			OrgNumber:       r.Employer.OrgNumber,
			StillingProsent: r.Employer.StillingProsent,
		}
	}
	if r.MedicalContact != nil {
		reg.MedicalContact = &models.MedicalContact{
			Name:      r.MedicalContact.Name,
			HPRNumber: r.MedicalContact.HPRNumber,
			Phone:     r.MedicalContact.Phone,
		}
	}
	return reg, nil
}

func (d diagnosisRequest) toModel() (models.Diagnosis, error) {
	system := models.DiagnosisSystem(d.System)
	switch system {
	case models.DiagnosisSystemICD10, models.DiagnosisSystemICPC2:
	default:
		return models.Diagnosis{}, domainerr.Newf(domainerr.CodeBadRequest,
			"unknown diagnosis system %q", d.System)
	}
	if d.Code == "" {
		return models.Diagnosis{}, domainerr.New(domainerr.CodeBadRequest, "diagnosis code is required")
	}
	return models.Diagnosis{System: system, Code: d.Code, Text: d.Text}, nil
}

type finalizeRequest struct {
	Registration registrationRequest `json:"registrering"`
	OrgUnit      string              `json:"enhetId"`
}

type rejectRequest struct {
	Reason  string `json:"aarsak"`
	Note    string `json:"kommentar,omitempty"`
	OrgUnit string `json:"enhetId"`
}

type returnRequest struct {
	OrgUnit string `json:"enhetId"`
}

func (r rejectRequest) toModel() (models.Rejection, error) {
	reason := models.RejectionReason(r.Reason)
	switch reason {
	case models.RejectionMissingSignature, models.RejectionDuplicate,
		models.RejectionWrongSubject, models.RejectionOther:
		return models.Rejection{Reason: reason, Note: r.Note}, nil
	default:
		return models.Rejection{}, domainerr.Newf(domainerr.CodeBadRequest,
			"unknown rejection reason %q", r.Reason)
	}
}
