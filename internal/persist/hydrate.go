package persist

import (
	"fmt"

	"alertrecon/internal/model"
)

// hydrateAlert turns one stored envelope entry into a typed Alert, field by
// field, substituting a typed default wherever the stored value has the
// wrong shape. Entries with no identifier at all do not hydrate.
func hydrateAlert(m map[string]any) (model.Alert, bool) {
	a := model.Alert{
		ID:                stringValue(m, "id"),
		ReportID:          stringValue(m, "reportId"),
		AlertCode:         stringValue(m, "alertCode"),
		AlertType:         stringValue(m, "alertType"),
		Program:           stringValue(m, "program"),
		Description:       stringValue(m, "description"),
		PersonName:        stringValue(m, "personName"),
		Region:            stringValue(m, "region"),
		State:             stringValue(m, "state"),
		Source:            stringValue(m, "source"),
		AlertDate:         stringValue(m, "alertDate"),
		CreatedAt:         stringValue(m, "createdAt"),
		UpdatedAt:         stringValue(m, "updatedAt"),
		ResolutionNotes:   stringValue(m, "resolutionNotes"),
		MatchedCaseID:     stringValue(m, "matchedCaseId"),
		MatchedCaseName:   stringValue(m, "matchedCaseName"),
		MatchedCaseStatus: stringValue(m, "matchedCaseStatus"),
	}
	if a.ID == "" {
		a.ID = a.ReportID
	}
	if a.ID == "" {
		return model.Alert{}, false
	}
	if v := stringValue(m, "mcNumber"); v != "" {
		a.MCNumber = &v
	}
	if v := stringValue(m, "resolvedAt"); v != "" {
		a.ResolvedAt = &v
	}
	a.Status = statusValue(m, "status")
	a.MatchStatus = matchStatusValue(m, "matchStatus")
	a.Metadata = metadataValue(m, "metadata")
	return a, true
}

func stringValue(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func firstStringValue(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if v := stringValue(m, key); v != "" {
			return v
		}
	}
	return ""
}

func intValue(m map[string]any, key string, fallback int) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return fallback
}

func statusValue(m map[string]any, key string) model.AlertStatus {
	s := model.AlertStatus(stringValue(m, key))
	if s.Valid() {
		return s
	}
	return model.StatusNew
}

func matchStatusValue(m map[string]any, key string) model.MatchStatus {
	s := model.MatchStatus(stringValue(m, key))
	if s.Valid() {
		return s
	}
	return model.MatchUnmatched
}

func metadataValue(m map[string]any, key string) map[string]string {
	raw, ok := m[key].(map[string]any)
	if !ok || len(raw) == 0 {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
			continue
		}
		out[k] = fmt.Sprint(v)
	}
	return out
}
