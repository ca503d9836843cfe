package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dokdig/internal/task/models"
)

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

func period(from, to string) models.Period {
	return models.Period{From: date(from), To: date(to), FullyUnfit: true}
}

func gradedPeriod(from, to string, grade int) models.Period {
	return models.Period{From: date(from), To: date(to), Grade: &grade}
}

func TestValidateForeign_ValidRegistration(t *testing.T) {
	now := date("2015-02-01")
	reg := models.Registration{
		ProcessedAt: date("2015-01-02"),
		Periods:     []models.Period{period("2015-01-01", "2015-01-20")},
		MainDiagnosis: &models.Diagnosis{
			System: models.DiagnosisSystemICD10, Code: "M54.5",
		},
	}
	subject := models.Subject{DateOfBirth: datePtr("1980-06-15")}

	violations := ValidateForeign(reg, subject, now)
	assert.Empty(t, violations)
}

func TestValidateForeign_NoPeriods(t *testing.T) {
	violations := ValidateForeign(models.Registration{}, models.Subject{}, date("2015-02-01"))
	require.Len(t, violations, 1)
	assert.Equal(t, "Sykmeldingen må ha minst én periode.", violations[0])
}

func TestValidateForeign_AccumulatesAllViolations(t *testing.T) {
	now := date("2015-02-01")
	// Inverted period, out-of-range grade and a symptom diagnosis in one
	// registration: all three must come back.
	reg := models.Registration{
		ProcessedAt: date("2015-01-02"),
		Periods: []models.Period{
			{From: date("2015-01-20"), To: date("2015-01-10"), Grade: intPtr(10)},
		},
		MainDiagnosis: &models.Diagnosis{System: models.DiagnosisSystemICD10, Code: "R10.4"},
	}

	violations := ValidateForeign(reg, models.Subject{}, now)
	require.Len(t, violations, 3)
	assert.Contains(t, violations[0], "fom-dato 2015-01-20 er etter tom-dato 2015-01-10")
	assert.Contains(t, violations[1], "grad mellom 20 og 99, fikk 10")
	assert.Contains(t, violations[2], "R10.4 er en symptomdiagnose")
}

func TestValidateForeign_Backdating(t *testing.T) {
	now := date("2018-06-01")
	reg := models.Registration{
		ProcessedAt: now,
		Periods:     []models.Period{period("2015-05-30", "2015-06-10")},
	}
	violations := ValidateForeign(reg, models.Subject{}, now)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "mer enn 3 år tilbake i tid")

	// Exactly three years back is still allowed.
	reg.Periods = []models.Period{period("2015-06-01", "2015-06-10")}
	assert.Empty(t, ValidateForeign(reg, models.Subject{}, now))
}

func TestValidateForeign_ForwardDating(t *testing.T) {
	now := date("2015-01-05")
	reg := models.Registration{
		ProcessedAt: date("2015-01-05"),
		Periods:     []models.Period{period("2015-02-10", "2015-02-20")},
	}
	violations := ValidateForeign(reg, models.Subject{}, now)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "mer enn 30 dager frem i tid")
}

func TestValidateForeign_SpanTooLong(t *testing.T) {
	now := date("2015-01-05")
	reg := models.Registration{
		ProcessedAt: date("2015-01-05"),
		Periods: []models.Period{
			period("2015-01-01", "2015-06-30"),
			period("2015-07-01", "2016-01-10"),
		},
	}
	violations := ValidateForeign(reg, models.Subject{}, now)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "mer enn 365 dager totalt")
}

func TestValidateForeign_OverlapOnBoundaryDay(t *testing.T) {
	now := date("2015-02-01")
	reg := models.Registration{
		ProcessedAt: date("2015-01-02"),
		// Second period starts on the first one's last day.
		Periods: []models.Period{
			period("2015-01-01", "2015-01-10"),
			period("2015-01-10", "2015-01-20"),
		},
	}
	violations := ValidateForeign(reg, models.Subject{}, now)
	require.Len(t, violations, 1)
	assert.Equal(t, "Sykmeldingen har overlappende perioder.", violations[0])
}

func TestValidateForeign_DuplicatePeriodsReportedAsDuplicates(t *testing.T) {
	now := date("2015-02-01")
	reg := models.Registration{
		ProcessedAt: date("2015-01-02"),
		Periods: []models.Period{
			period("2015-01-01", "2015-01-10"),
			period("2015-01-01", "2015-01-10"),
		},
	}
	violations := ValidateForeign(reg, models.Subject{}, now)
	require.Len(t, violations, 1)
	assert.Equal(t, "Sykmeldingen har duplikate perioder.", violations[0])
}

func TestValidateForeign_WorkingDayGap(t *testing.T) {
	now := date("2015-02-01")

	// 2015-01-11 is a Sunday: a weekend-only gap is fine.
	reg := models.Registration{
		ProcessedAt: date("2015-01-02"),
		Periods: []models.Period{
			period("2015-01-01", "2015-01-10"),
			period("2015-01-12", "2015-01-20"),
		},
	}
	assert.Empty(t, ValidateForeign(reg, models.Subject{}, now))

	// 2015-01-12 is a Monday: skipping it breaks continuity.
	reg.Periods = []models.Period{
		period("2015-01-01", "2015-01-10"),
		period("2015-01-13", "2015-01-20"),
	}
	violations := ValidateForeign(reg, models.Subject{}, now)
	require.Len(t, violations, 1)
	assert.Equal(t, "Det er opphold med arbeidsdager mellom periodene.", violations[0])
}

func TestValidateForeign_AgeBounds(t *testing.T) {
	now := date("2015-02-01")
	reg := models.Registration{
		ProcessedAt: date("2015-01-02"),
		Periods:     []models.Period{period("2015-01-01", "2015-01-20")},
	}

	t.Run("turns 13 on the last day is old enough", func(t *testing.T) {
		subject := models.Subject{DateOfBirth: datePtr("2002-01-20")}
		assert.Empty(t, ValidateForeign(reg, subject, now))
	})

	t.Run("still 12 at period end", func(t *testing.T) {
		subject := models.Subject{DateOfBirth: datePtr("2002-01-21")}
		violations := ValidateForeign(reg, subject, now)
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0], "yngre enn 13 år")
	})

	t.Run("70 at period start is allowed", func(t *testing.T) {
		subject := models.Subject{DateOfBirth: datePtr("1945-01-01")}
		assert.Empty(t, ValidateForeign(reg, subject, now))
	})

	t.Run("71 at period start", func(t *testing.T) {
		subject := models.Subject{DateOfBirth: datePtr("1943-12-31")}
		violations := ValidateForeign(reg, subject, now)
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0], "eldre enn 70 år")
	})

	t.Run("unknown date of birth skips age rules", func(t *testing.T) {
		assert.Empty(t, ValidateForeign(reg, models.Subject{}, now))
	})
}

func TestValidateForeign_GradeBounds(t *testing.T) {
	now := date("2015-02-01")
	base := models.Registration{ProcessedAt: date("2015-01-02")}

	for _, tc := range []struct {
		grade int
		valid bool
	}{
		{19, false},
		{20, true},
		{99, true},
		{100, false},
	} {
		base.Periods = []models.Period{gradedPeriod("2015-01-01", "2015-01-20", tc.grade)}
		violations := ValidateForeign(base, models.Subject{}, now)
		if tc.valid {
			assert.Empty(t, violations, "grade %d", tc.grade)
		} else {
			assert.Len(t, violations, 1, "grade %d", tc.grade)
		}
	}
}

func TestIsSymptomDiagnosis(t *testing.T) {
	for _, tc := range []struct {
		system models.DiagnosisSystem
		code   string
		want   bool
	}{
		{models.DiagnosisSystemICD10, "R10.4", true},
		{models.DiagnosisSystemICD10, "Z76.5", true},
		{models.DiagnosisSystemICD10, "M54.5", false},
		{models.DiagnosisSystemICPC2, "L02", true},
		{models.DiagnosisSystemICPC2, "L29", true},
		{models.DiagnosisSystemICPC2, "L30", false},
		{models.DiagnosisSystemICPC2, "A99", false},
		{models.DiagnosisSystemICPC2, "l04", true},
		{models.DiagnosisSystemICPC2, "X", false},
		{models.DiagnosisSystemICD10, "", false},
	} {
		got := isSymptomDiagnosis(models.Diagnosis{System: tc.system, Code: tc.code})
		assert.Equal(t, tc.want, got, "%s %s", tc.system, tc.code)
	}
}

func intPtr(v int) *int { return &v }
