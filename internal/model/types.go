package model

type MatchStatus string

const (
	MatchMatched    MatchStatus = "matched"
	MatchUnmatched  MatchStatus = "unmatched"
	MatchMissingMCN MatchStatus = "missing-mcn"
)

type AlertStatus string

const (
	StatusNew          AlertStatus = "new"
	StatusInProgress   AlertStatus = "in-progress"
	StatusAcknowledged AlertStatus = "acknowledged"
	StatusSnoozed      AlertStatus = "snoozed"
	StatusResolved     AlertStatus = "resolved"
)

// statusOrder doubles as the merge precedence: a later entry wins over an
// earlier one when two alerts collapse to the same storage key.
var statusOrder = []AlertStatus{
	StatusNew,
	StatusInProgress,
	StatusAcknowledged,
	StatusSnoozed,
	StatusResolved,
}

func (s AlertStatus) Priority() int {
	for i, v := range statusOrder {
		if v == s {
			return i
		}
	}
	return 0
}

func (s AlertStatus) Valid() bool {
	for _, v := range statusOrder {
		if v == s {
			return true
		}
	}
	return false
}

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchMatched, MatchUnmatched, MatchMissingMCN:
		return true
	}
	return false
}

type Alert struct {
	ID                string            `json:"id"`
	ReportID          string            `json:"reportId,omitempty"`
	AlertCode         string            `json:"alertCode,omitempty"`
	AlertType         string            `json:"alertType,omitempty"`
	Program           string            `json:"program,omitempty"`
	Description       string            `json:"description,omitempty"`
	PersonName        string            `json:"personName,omitempty"`
	Region            string            `json:"region,omitempty"`
	State             string            `json:"state,omitempty"`
	Source            string            `json:"source,omitempty"`
	AlertDate         string            `json:"alertDate,omitempty"`
	CreatedAt         string            `json:"createdAt,omitempty"`
	UpdatedAt         string            `json:"updatedAt,omitempty"`
	MCNumber          *string           `json:"mcNumber"`
	Status            AlertStatus       `json:"status"`
	ResolvedAt        *string           `json:"resolvedAt"`
	ResolutionNotes   string            `json:"resolutionNotes,omitempty"`
	MatchStatus       MatchStatus       `json:"matchStatus"`
	MatchedCaseID     string            `json:"matchedCaseId,omitempty"`
	MatchedCaseName   string            `json:"matchedCaseName,omitempty"`
	MatchedCaseStatus string            `json:"matchedCaseStatus,omitempty"`
	Metadata          map[string]string `json:"metadata,omitempty"`
}

func (a *Alert) MCN() string {
	if a.MCNumber == nil {
		return ""
	}
	return *a.MCNumber
}

type Summary struct {
	Total         int    `json:"total"`
	Matched       int    `json:"matched"`
	Unmatched     int    `json:"unmatched"`
	MissingMCN    int    `json:"missingMcn"`
	LatestUpdated string `json:"latestUpdated,omitempty"`
}

// AlertsIndex is recomputed wholesale on every reconciliation pass, never
// patched incrementally.
type AlertsIndex struct {
	Alerts     []Alert            `json:"alerts"`
	Summary    Summary            `json:"summary"`
	ByCase     map[string][]Alert `json:"byCase"`
	Unmatched  []Alert            `json:"unmatched"`
	MissingMCN []Alert            `json:"missingMcn"`
}

// EnvelopeVersion is the current storage schema. Version 1 envelopes carry
// only per-alert workflow state and require migration before use.
const EnvelopeVersion = 2

type Envelope struct {
	Version      int     `json:"version"`
	GeneratedAt  string  `json:"generatedAt"`
	UpdatedAt    string  `json:"updatedAt"`
	Summary      Summary `json:"summary"`
	Alerts       []Alert `json:"alerts"`
	UniqueAlerts int     `json:"uniqueAlerts"`
	SourceFile   string  `json:"sourceFile,omitempty"`
}

// CaseRef is the read-only projection of a registry case the matcher
// consumes. The registry owns it; the engine never mutates it.
type CaseRef struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	MCN        string      `json:"mcn"`
	Status     string      `json:"status"`
	CaseRecord *CaseRecord `json:"caseRecord,omitempty"`
}

type CaseRecord struct {
	MCN string `json:"mcn,omitempty"`
}

// LegacyAlertState is the workflow state extracted from a version-1 envelope
// entry during migration detection.
type LegacyAlertState struct {
	Status          AlertStatus `json:"status"`
	ResolvedAt      string      `json:"resolvedAt,omitempty"`
	ResolutionNotes string      `json:"resolutionNotes,omitempty"`
	UpdatedAt       string      `json:"updatedAt,omitempty"`
	FirstSeenAt     string      `json:"firstSeenAt,omitempty"`
}
