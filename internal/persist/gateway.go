package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"alertrecon/internal/engine"
	"alertrecon/internal/model"
	"alertrecon/internal/normalize"
	"alertrecon/internal/storage"
)

// Gateway round-trips the alerts index through the blob store as a versioned
// envelope. Loads detect legacy schemas; they never migrate them. Saves
// overwrite the envelope wholesale and are not retried here.
type Gateway struct {
	store     storage.Store
	engine    *engine.Engine
	logger    *slog.Logger
	indexName string
	now       func() time.Time
}

func NewGateway(store storage.Store, eng *engine.Engine, indexName string, logger *slog.Logger) *Gateway {
	return &Gateway{
		store:     store,
		engine:    eng,
		logger:    logger,
		indexName: indexName,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// LoadResult carries everything a load can produce. NoData means the
// envelope has never been written and the caller should fall back to a CSV
// import. When NeedsMigration is set the payload is a legacy schema and
// LegacyStates holds whatever per-alert workflow state could be extracted.
type LoadResult struct {
	NoData         bool
	Index          *model.AlertsIndex
	GeneratedAt    string
	SourceFile     string
	NeedsMigration bool
	LegacyStates   map[string]model.LegacyAlertState
}

func (g *Gateway) Load(ctx context.Context) (*LoadResult, *model.Error) {
	data, err := g.store.Read(ctx, g.indexName)
	if err != nil {
		return nil, model.NewDetailedError(model.ErrIO, "failed to read alerts index", err.Error())
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return &LoadResult{NoData: true}, nil
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, model.NewDetailedError(model.ErrInvalidJSON, "alerts payload is not valid JSON", err.Error())
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		// Parseable but not an object: still unusable, and old enough that
		// it needs migrating rather than rereading.
		return &LoadResult{NeedsMigration: true},
			model.NewError(model.ErrInvalidJSON, "alerts payload is not an object")
	}

	version := intValue(obj, "version", 1)
	if version >= model.EnvelopeVersion {
		return g.loadCurrent(obj)
	}
	return g.loadLegacy(obj, version)
}

// loadCurrent hydrates a current-schema envelope. Unknown higher versions are
// treated as current-format compatible. Every field is type-checked and
// defaulted so a corrupt or foreign-written entry normalizes instead of
// crashing the load; entries with no identifier at all are filtered out.
func (g *Gateway) loadCurrent(obj map[string]any) (*LoadResult, *model.Error) {
	rawAlerts, ok := obj["alerts"].([]any)
	if !ok {
		return &LoadResult{NeedsMigration: true},
			model.NewError(model.ErrMigrationFailed, "current-version payload has no alerts array")
	}
	alerts := make([]model.Alert, 0, len(rawAlerts))
	for _, entry := range rawAlerts {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if a, ok := hydrateAlert(m); ok {
			alerts = append(alerts, a)
		}
	}
	index := engine.BuildIndex(alerts)
	if g.logger != nil {
		g.logger.Debug("loaded alerts index", "alerts", len(alerts))
	}
	return &LoadResult{
		Index:       &index,
		GeneratedAt: stringValue(obj, "generatedAt"),
		SourceFile:  stringValue(obj, "sourceFile"),
	}, nil
}

// loadLegacy scans a pre-current envelope for per-alert workflow state and
// reports that a migration is required. It does not perform the migration.
func (g *Gateway) loadLegacy(obj map[string]any, version int) (*LoadResult, *model.Error) {
	needs := version < model.EnvelopeVersion
	states := make(map[string]model.LegacyAlertState)
	rawAlerts, _ := obj["alerts"].([]any)
	for _, entry := range rawAlerts {
		m, ok := entry.(map[string]any)
		if !ok {
			needs = true
			continue
		}
		key := firstStringValue(m, "alertId", "id", "reportId", "alertCode")
		if key == "" {
			needs = true
			continue
		}
		// Full alert fields on a legacy entry mean the oldest schema.
		if _, has := m["alertType"]; has {
			needs = true
		} else if _, has := m["program"]; has {
			needs = true
		}
		states[key] = model.LegacyAlertState{
			Status:          statusValue(m, "status"),
			ResolvedAt:      stringValue(m, "resolvedAt"),
			ResolutionNotes: stringValue(m, "resolutionNotes"),
			UpdatedAt:       stringValue(m, "updatedAt"),
			FirstSeenAt:     stringValue(m, "firstSeenAt"),
		}
	}
	if g.logger != nil {
		g.logger.Info("legacy alerts payload detected", "version", version, "states", len(states))
	}
	return &LoadResult{NeedsMigration: needs, LegacyStates: states}, nil
}

func (g *Gateway) Save(ctx context.Context, index model.AlertsIndex, sourceFile string) *model.Error {
	now := g.now().Format(normalize.ISOMillis)
	env := model.Envelope{
		Version:      model.EnvelopeVersion,
		GeneratedAt:  now,
		UpdatedAt:    now,
		Summary:      index.Summary,
		Alerts:       index.Alerts,
		UniqueAlerts: len(index.Alerts),
		SourceFile:   sourceFile,
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return model.NewDetailedError(model.ErrIO, "failed to encode alerts index", err.Error())
	}
	if err := g.store.Write(ctx, g.indexName, data); err != nil {
		return model.NewDetailedError(model.ErrIO, "failed to write alerts index", err.Error())
	}
	return nil
}

// ImportCSV reads a named raw export and reconciles it against the given
// case snapshot. Invoked by callers when Load reports no data.
func (g *Gateway) ImportCSV(ctx context.Context, name string, cases []model.CaseRef) (model.AlertsIndex, *model.Error) {
	data, err := g.store.Read(ctx, name)
	if err != nil {
		return model.AlertsIndex{}, model.NewDetailedError(model.ErrIO, "failed to read export", err.Error())
	}
	if data == nil {
		return model.AlertsIndex{}, model.NewError(model.ErrIO, "export not found: "+name)
	}
	text := string(data)
	index, rerr := g.engine.Reconcile(text, cases)
	if rerr != nil {
		return model.AlertsIndex{}, rerr
	}
	if strings.TrimSpace(text) != "" && index.Summary.Total == 0 {
		return model.AlertsIndex{}, model.NewError(model.ErrParse, "export produced no usable rows")
	}
	return index, nil
}
