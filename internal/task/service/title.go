package service

import (
	"fmt"
	"sort"
	"time"

	"dokdig/internal/archive"
	"dokdig/internal/task/models"
)

// correspondentFallback is the stable source label used when the sender
// cannot be tied to a known person.
const correspondentFallback = "Helsepersonell"

// archiveTitle derives the journal-record title from the origin and the
// period span. A rejection changes the framing.
func archiveTitle(origin models.Origin, periods []models.Period, rejection *models.Rejection) string {
	span := periodSpan(periods)
	if rejection != nil {
		title := fmt.Sprintf("Avvist %s", origin.Label())
		if span != "" {
			title += " " + span
		}
		if rejection.Note != "" {
			return fmt.Sprintf("%s - %s", title, rejection.Note)
		}
		return fmt.Sprintf("%s - %s", title, rejection.Reason)
	}
	if span == "" {
		return origin.Label()
	}
	return fmt.Sprintf("%s %s", origin.Label(), span)
}

func periodSpan(periods []models.Period) string {
	if len(periods) == 0 {
		return ""
	}
	sorted := append([]models.Period(nil), periods...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].From.Before(sorted[j].From) })
	first := sorted[0].From
	last := sorted[0].To
	for _, p := range sorted[1:] {
		if p.To.After(last) {
			last = p.To
		}
	}
	return fmt.Sprintf("%s - %s", formatDate(first), formatDate(last))
}

func formatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// correspondentFor resolves who the journal record is addressed to. When the
// subject's name is unknown but the national id is, the record is addressed
// to the identity alone; with neither, a stable source label is used.
func correspondentFor(subject models.Subject) archive.Correspondent {
	switch {
	case subject.NationalID != "" && subject.FullName != "":
		return archive.Correspondent{ID: subject.NationalID, Type: "FNR", Name: subject.FullName}
	case subject.NationalID != "":
		return archive.Correspondent{ID: subject.NationalID, Type: "FNR"}
	default:
		return archive.Correspondent{Name: correspondentFallback}
	}
}
