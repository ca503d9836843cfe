package validation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"dokdig/internal/task/models"
)

const (
	minGrade = 20
	maxGrade = 99

	minAgeYears = 13
	maxAgeYears = 70

	maxBackdatingYears   = 3
	maxForwardDatingDays = 30
	maxSpanDays          = 365
)

// ValidateForeign evaluates every foreign-registration rule and returns all
// violations found; an empty slice means the registration is valid. Rules are
// never short-circuited so the caseworker sees the full picture at once.
func ValidateForeign(reg models.Registration, subject models.Subject, now time.Time) []string {
	var violations []string

	if len(reg.Periods) == 0 {
		violations = append(violations, "Sykmeldingen må ha minst én periode.")
		return violations
	}

	for _, p := range reg.Periods {
		if day(p.From).After(day(p.To)) {
			violations = append(violations,
				fmt.Sprintf("Periodens fom-dato %s er etter tom-dato %s.", dateStr(p.From), dateStr(p.To)))
		}
	}

	sorted := sortedByStart(reg.Periods)
	first := sorted[0]
	last := sorted[len(sorted)-1]

	if day(first.From).Before(day(now).AddDate(-maxBackdatingYears, 0, 0)) {
		violations = append(violations,
			fmt.Sprintf("Sykmeldingens fom-dato er mer enn %d år tilbake i tid.", maxBackdatingYears))
	}

	if subject.DateOfBirth != nil {
		dob := day(*subject.DateOfBirth)
		if day(last.To).Before(dob.AddDate(minAgeYears, 0, 0)) {
			violations = append(violations,
				fmt.Sprintf("Pasienten er yngre enn %d år ved sykmeldingsperiodens slutt.", minAgeYears))
		}
		if yearsBetween(dob, day(first.From)) > maxAgeYears {
			violations = append(violations,
				fmt.Sprintf("Pasienten er eldre enn %d år ved sykmeldingsperiodens start.", maxAgeYears))
		}
	}

	if day(first.From).After(day(reg.ProcessedAt).AddDate(0, 0, maxForwardDatingDays)) {
		violations = append(violations,
			fmt.Sprintf("Sykmeldingens fom-dato er mer enn %d dager frem i tid fra behandlet-tidspunkt.", maxForwardDatingDays))
	}

	if day(last.To).Sub(day(first.From)) > maxSpanDays*24*time.Hour {
		violations = append(violations,
			fmt.Sprintf("Sykmeldingen dekker mer enn %d dager totalt.", maxSpanDays))
	}

	if hasIdentical(reg.Periods) {
		violations = append(violations, "Sykmeldingen har duplikate perioder.")
	} else if hasOverlap(reg.Periods) {
		violations = append(violations, "Sykmeldingen har overlappende perioder.")
	}

	if hasWorkingDayGap(reg.Periods) {
		violations = append(violations, "Det er opphold med arbeidsdager mellom periodene.")
	}

	for _, p := range reg.Periods {
		if p.Grade != nil && (*p.Grade < minGrade || *p.Grade > maxGrade) {
			violations = append(violations,
				fmt.Sprintf("Gradert periode må ha grad mellom %d og %d, fikk %d.", minGrade, maxGrade, *p.Grade))
		}
	}

	if reg.MainDiagnosis != nil && isSymptomDiagnosis(*reg.MainDiagnosis) {
		violations = append(violations,
			fmt.Sprintf("Hoveddiagnosen %s er en symptomdiagnose som ikke gir rett til sykepenger.", reg.MainDiagnosis.Code))
	}

	return violations
}

// yearsBetween returns full years elapsed from dob to at.
func yearsBetween(dob, at time.Time) int {
	years := at.Year() - dob.Year()
	if at.Before(dob.AddDate(years, 0, 0)) {
		years--
	}
	return years
}

// isSymptomDiagnosis reports whether the diagnosis belongs to the
// symptom/sign class that gives no sick-pay entitlement. ICD-10 uses the R
// (symptoms and signs) and Z (contact factors) chapters; ICPC-2 reserves the
// numeric component 01-29 for symptoms and complaints.
func isSymptomDiagnosis(d models.Diagnosis) bool {
	code := strings.ToUpper(strings.TrimSpace(d.Code))
	if code == "" {
		return false
	}
	switch d.System {
	case models.DiagnosisSystemICD10:
		return strings.HasPrefix(code, "R") || strings.HasPrefix(code, "Z")
	case models.DiagnosisSystemICPC2:
		if len(code) < 3 {
			return false
		}
		num, err := strconv.Atoi(code[1:3])
		return err == nil && num >= 1 && num <= 29
	default:
		return false
	}
}

func dateStr(t time.Time) string {
	return day(t).Format("2006-01-02")
}
