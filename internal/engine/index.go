package engine

import (
	"sort"
	"time"

	"alertrecon/internal/model"
)

// BuildIndex sorts the deduplicated alert set newest first and produces the
// summary counts, the matched-only per-case grouping, and the convenience
// subsets in a single pass.
func BuildIndex(alerts []model.Alert) model.AlertsIndex {
	sorted := make([]model.Alert, len(alerts))
	copy(sorted, alerts)
	// Alerts with no parsable date sort after any with one and keep their
	// relative input order.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sortMillis(sorted[i]) > sortMillis(sorted[j])
	})

	index := model.AlertsIndex{
		Alerts:     sorted,
		Summary:    model.Summary{Total: len(sorted)},
		ByCase:     make(map[string][]model.Alert),
		Unmatched:  make([]model.Alert, 0),
		MissingMCN: make([]model.Alert, 0),
	}

	var latest int64
	for _, a := range sorted {
		switch a.MatchStatus {
		case model.MatchMatched:
			index.Summary.Matched++
			if a.MatchedCaseID != "" {
				index.ByCase[a.MatchedCaseID] = append(index.ByCase[a.MatchedCaseID], a)
			}
		case model.MatchUnmatched:
			index.Summary.Unmatched++
			index.Unmatched = append(index.Unmatched, a)
		case model.MatchMissingMCN:
			index.Summary.MissingMCN++
			index.MissingMCN = append(index.MissingMCN, a)
		}
		if touched := firstNonEmpty(a.UpdatedAt, a.CreatedAt); touched != "" {
			if ms := parseMillis(touched); ms > latest {
				latest = ms
				index.Summary.LatestUpdated = touched
			}
		}
	}
	return index
}

func sortMillis(a model.Alert) int64 {
	if ms := parseMillis(firstNonEmpty(a.AlertDate, a.CreatedAt)); ms > 0 {
		return ms
	}
	return -1
}

func parseMillis(s string) int64 {
	if s == "" {
		return 0
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0
	}
	return t.UnixMilli()
}
