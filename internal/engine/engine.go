package engine

import (
	"log/slog"
	"strings"
	"time"

	"alertrecon/internal/ids"
	"alertrecon/internal/ingest"
	"alertrecon/internal/model"
	"alertrecon/internal/normalize"
)

// Engine runs one reconciliation pass at a time: parse an export snapshot,
// build alert records against the current case snapshot, merge duplicates,
// build the index. It keeps no state between passes.
type Engine struct {
	logger *slog.Logger
	ids    ids.Source
	region string
	state  string
	now    func() time.Time
}

func New(logger *slog.Logger, idSource ids.Source, region, state string) *Engine {
	if idSource == nil {
		idSource = ids.NewUUIDSource()
	}
	return &Engine{
		logger: logger,
		ids:    idSource,
		region: region,
		state:  state,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Reconcile parses a complete export and produces the alerts index. Empty or
// whitespace-only input is an empty index, never an error.
func (e *Engine) Reconcile(text string, cases []model.CaseRef) (model.AlertsIndex, *model.Error) {
	rows, err := ingest.Rows(text)
	if err != nil {
		return model.AlertsIndex{}, model.NewDetailedError(model.ErrParse, "failed to read export", err.Error())
	}
	matcher := NewMatcher(cases)
	alerts := make([]model.Alert, 0, len(rows))
	for _, row := range rows {
		alerts = append(alerts, e.buildAlert(row, matcher))
	}
	merged := MergeAlerts(alerts)
	if e.logger != nil {
		e.logger.Info("reconciled export", "rows", len(rows), "unique", len(merged))
	}
	return BuildIndex(merged), nil
}

func (e *Engine) buildAlert(row ingest.AlertRow, matcher *Matcher) model.Alert {
	now := e.now().Format(normalize.ISOMillis)

	meta := map[string]string{}
	if row.DueDate != "" {
		meta["rawDueDate"] = row.DueDate
	}
	if row.DisplayDate != "" {
		meta["rawDisplayDate"] = row.DisplayDate
	}
	if row.Name != "" {
		meta["rawName"] = row.Name
	}

	alertDate := ""
	if parsed := normalize.Date(row.DueDate); parsed != row.DueDate {
		alertDate = parsed
	}

	name := normalize.ImportName(row.Name)
	person := strings.ToUpper(strings.TrimSpace(name.First + " " + name.Last))

	id := row.AlertNumber
	if id == "" {
		id = e.ids.NewID()
	}
	var mcn *string
	if v := normalize.MCN(row.MCN); v != "" {
		mcn = &v
	}

	a := model.Alert{
		ID:          id,
		ReportID:    row.AlertNumber,
		AlertCode:   row.AlertNumber,
		AlertType:   row.Type,
		Program:     row.Program,
		Description: row.Description,
		PersonName:  person,
		Region:      e.region,
		State:       e.state,
		Source:      "Import",
		AlertDate:   alertDate,
		CreatedAt:   now,
		UpdatedAt:   now,
		MCNumber:    mcn,
		Status:      model.StatusNew,
		Metadata:    meta,
	}
	matcher.Apply(&a)
	return a
}
