package engine

import (
	"alertrecon/internal/model"
	"alertrecon/internal/normalize"
)

// Matcher resolves alerts against a one-time snapshot of the case registry.
// The matched case name and status are copied onto the alert for display and
// are not refreshed if the case changes later.
type Matcher struct {
	byMCN map[string]model.CaseRef
}

func NewMatcher(cases []model.CaseRef) *Matcher {
	byMCN := make(map[string]model.CaseRef, len(cases))
	for _, c := range cases {
		mcn := c.MCN
		if mcn == "" && c.CaseRecord != nil {
			mcn = c.CaseRecord.MCN
		}
		key := normalize.MCN(mcn)
		if key == "" {
			continue
		}
		// First case seen keeps the identifier; later duplicates are
		// silently ignored. Worth revisiting if the registry ever carries
		// duplicate MCNs on purpose.
		if _, ok := byMCN[key]; ok {
			continue
		}
		byMCN[key] = c
	}
	return &Matcher{byMCN: byMCN}
}

func (m *Matcher) Apply(a *model.Alert) {
	mcn := a.MCN()
	if mcn == "" {
		a.MatchStatus = model.MatchMissingMCN
		return
	}
	c, ok := m.byMCN[mcn]
	if !ok {
		a.MatchStatus = model.MatchUnmatched
		return
	}
	a.MatchStatus = model.MatchMatched
	a.MatchedCaseID = c.ID
	a.MatchedCaseName = c.Name
	a.MatchedCaseStatus = c.Status
}
