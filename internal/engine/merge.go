package engine

import (
	"strings"
	"time"

	"alertrecon/internal/model"
)

// MergeAlerts collapses alerts that share a storage key. Input order is
// preserved for the surviving entries. Alerts with no usable base id pass
// through unmerged.
func MergeAlerts(alerts []model.Alert) []model.Alert {
	out := make([]model.Alert, 0, len(alerts))
	buckets := make(map[string]int, len(alerts))
	for _, a := range alerts {
		key := storageKey(a)
		if key == "" {
			out = append(out, a)
			continue
		}
		if i, ok := buckets[key]; ok {
			out[i] = mergePair(out[i], a)
			continue
		}
		buckets[key] = len(out)
		out = append(out, a)
	}
	return out
}

// storageKey appends the discriminating fields to the base id so that two
// genuinely distinct alerts sharing a report number across different export
// stacks do not collapse into one.
func storageKey(a model.Alert) string {
	base := a.ReportID
	if base == "" {
		base = a.ID
	}
	if base == "" {
		return ""
	}
	parts := []string{base}
	for _, p := range []string{
		a.MCN(),
		strings.ToLower(a.PersonName),
		strings.ToLower(a.Program),
		strings.ToLower(a.AlertType),
		strings.ToLower(a.Description),
		string(a.MatchStatus),
		calendarDay(firstNonEmpty(a.AlertDate, a.UpdatedAt, a.CreatedAt)),
	} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "|")
}

func calendarDay(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

// mergePair keeps the alert whose workflow status is further along; on a tie
// the more recently touched one wins. Repeated imports of the same underlying
// alert therefore never regress a manually advanced workflow state.
func mergePair(a, b model.Alert) model.Alert {
	winner, loser := a, b
	pa, pb := a.Status.Priority(), b.Status.Priority()
	if pb > pa || (pb == pa && touchedMillis(b) > touchedMillis(a)) {
		winner, loser = b, a
	}

	merged := winner
	merged.ID = firstNonEmpty(winner.ID, loser.ID)
	merged.ReportID = firstNonEmpty(winner.ReportID, loser.ReportID)
	merged.AlertCode = firstNonEmpty(winner.AlertCode, loser.AlertCode)
	merged.AlertType = firstNonEmpty(winner.AlertType, loser.AlertType)
	merged.Program = firstNonEmpty(winner.Program, loser.Program)
	merged.Description = firstNonEmpty(winner.Description, loser.Description)
	merged.PersonName = firstNonEmpty(winner.PersonName, loser.PersonName)
	merged.Region = firstNonEmpty(winner.Region, loser.Region)
	merged.State = firstNonEmpty(winner.State, loser.State)
	merged.Source = firstNonEmpty(winner.Source, loser.Source)
	merged.AlertDate = firstNonEmpty(winner.AlertDate, loser.AlertDate)
	merged.CreatedAt = firstNonEmpty(winner.CreatedAt, loser.CreatedAt)
	merged.UpdatedAt = firstNonEmpty(winner.UpdatedAt, loser.UpdatedAt)
	merged.ResolutionNotes = firstNonEmpty(winner.ResolutionNotes, loser.ResolutionNotes)
	merged.MatchedCaseID = firstNonEmpty(winner.MatchedCaseID, loser.MatchedCaseID)
	merged.MatchedCaseName = firstNonEmpty(winner.MatchedCaseName, loser.MatchedCaseName)
	merged.MatchedCaseStatus = firstNonEmpty(winner.MatchedCaseStatus, loser.MatchedCaseStatus)
	merged.MCNumber = firstPtr(winner.MCNumber, loser.MCNumber)
	merged.ResolvedAt = firstPtr(winner.ResolvedAt, loser.ResolvedAt)
	merged.Metadata = mergeMetadata(winner.Metadata, loser.Metadata)
	return merged
}

func touchedMillis(a model.Alert) int64 {
	s := firstNonEmpty(a.UpdatedAt, a.CreatedAt, a.AlertDate)
	if s == "" {
		return 0
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0
	}
	return t.UnixMilli()
}

func mergeMetadata(winner, loser map[string]string) map[string]string {
	if len(winner) == 0 && len(loser) == 0 {
		return winner
	}
	out := make(map[string]string, len(winner)+len(loser))
	for k, v := range loser {
		out[k] = v
	}
	for k, v := range winner {
		out[k] = v
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPtr(values ...*string) *string {
	for _, v := range values {
		if v != nil && *v != "" {
			return v
		}
	}
	return nil
}
