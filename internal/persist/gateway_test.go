package persist

import (
	"context"
	"testing"
	"time"

	"alertrecon/internal/engine"
	"alertrecon/internal/ids"
	"alertrecon/internal/model"
)

type memStore struct {
	blobs map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{blobs: map[string][]byte{}}
}

func (s *memStore) Init(context.Context) error { return nil }
func (s *memStore) Close() error               { return nil }

func (s *memStore) Read(_ context.Context, name string) ([]byte, error) {
	data, ok := s.blobs[name]
	if !ok {
		return nil, nil
	}
	return data, nil
}

func (s *memStore) Write(_ context.Context, name string, data []byte) error {
	s.blobs[name] = data
	return nil
}

const indexName = "alerts-index.json"

func testGateway(store *memStore) *Gateway {
	eng := engine.New(nil, ids.NewSequence("t"), "", "")
	g := NewGateway(store, eng, indexName, nil)
	g.now = func() time.Time { return time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC) }
	return g
}

func TestLoadNoData(t *testing.T) {
	g := testGateway(newMemStore())
	res, lerr := g.Load(context.Background())
	if lerr != nil {
		t.Fatalf("load: %v", lerr)
	}
	if !res.NoData || res.NeedsMigration {
		t.Fatalf("expected no-data result: %+v", res)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	store := newMemStore()
	store.blobs[indexName] = []byte("{not json at all")
	g := testGateway(store)
	_, lerr := g.Load(context.Background())
	if lerr == nil || lerr.Type != model.ErrInvalidJSON {
		t.Fatalf("expected INVALID_JSON, got %v", lerr)
	}
}

func TestLoadNonObjectPayload(t *testing.T) {
	store := newMemStore()
	store.blobs[indexName] = []byte("[1,2,3]")
	g := testGateway(store)
	res, lerr := g.Load(context.Background())
	if lerr == nil || lerr.Type != model.ErrInvalidJSON {
		t.Fatalf("expected INVALID_JSON, got %v", lerr)
	}
	if res == nil || !res.NeedsMigration {
		t.Fatalf("non-object payload should need migration: %+v", res)
	}
}

func TestLoadCurrentVersionNonArrayAlerts(t *testing.T) {
	store := newMemStore()
	store.blobs[indexName] = []byte(`{"version":2,"alerts":"oops"}`)
	g := testGateway(store)
	res, lerr := g.Load(context.Background())
	if lerr == nil || lerr.Type != model.ErrMigrationFailed {
		t.Fatalf("expected MIGRATION_FAILED, got %v", lerr)
	}
	if res == nil || !res.NeedsMigration {
		t.Fatalf("expected needs-migration result: %+v", res)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newMemStore()
	g := testGateway(store)
	mcn := "12345"
	alerts := []model.Alert{
		{
			ID:            "9996",
			ReportID:      "9996",
			AlertCode:     "9996",
			PersonName:    "JANE DOE",
			AlertDate:     "2025-11-15T00:00:00.000Z",
			MCNumber:      &mcn,
			Status:        model.StatusAcknowledged,
			MatchStatus:   model.MatchMatched,
			MatchedCaseID: "case-1",
			Metadata:      map[string]string{"rawDueDate": "11-15-2025"},
		},
		{
			ID:          "9997",
			Status:      model.StatusNew,
			MatchStatus: model.MatchMissingMCN,
		},
	}
	if serr := g.Save(context.Background(), engine.BuildIndex(alerts), "export.csv"); serr != nil {
		t.Fatalf("save: %v", serr)
	}
	res, lerr := g.Load(context.Background())
	if lerr != nil {
		t.Fatalf("load: %v", lerr)
	}
	if res.NeedsMigration || res.Index == nil {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.SourceFile != "export.csv" {
		t.Fatalf("source file: %s", res.SourceFile)
	}
	if res.Index.Summary.Total != 2 || res.Index.Summary.Matched != 1 || res.Index.Summary.MissingMCN != 1 {
		t.Fatalf("summary: %+v", res.Index.Summary)
	}
	a := res.Index.Alerts[0]
	if a.ID != "9996" || a.Status != model.StatusAcknowledged || a.MCN() != "12345" {
		t.Fatalf("hydrated alert: %+v", a)
	}
	if a.Metadata["rawDueDate"] != "11-15-2025" {
		t.Fatalf("metadata: %+v", a.Metadata)
	}
}

func TestLoadHydrationEnumFallbacks(t *testing.T) {
	store := newMemStore()
	store.blobs[indexName] = []byte(`{
		"version": 2,
		"alerts": [
			{"id":"a-1","status":"bogus","matchStatus":"whatever","mcNumber":42},
			{"status":"new"},
			"not an object"
		]
	}`)
	g := testGateway(store)
	res, lerr := g.Load(context.Background())
	if lerr != nil {
		t.Fatalf("load: %v", lerr)
	}
	if res.Index.Summary.Total != 1 {
		t.Fatalf("entries without an id should be filtered: %+v", res.Index.Summary)
	}
	a := res.Index.Alerts[0]
	if a.Status != model.StatusNew || a.MatchStatus != model.MatchUnmatched {
		t.Fatalf("enum fallbacks: %+v", a)
	}
	if a.MCNumber != nil {
		t.Fatalf("non-string mcNumber should normalize to nil, got %v", *a.MCNumber)
	}
}

func TestLoadForwardTolerantVersion(t *testing.T) {
	store := newMemStore()
	store.blobs[indexName] = []byte(`{"version":7,"alerts":[{"id":"x","status":"resolved","matchStatus":"unmatched"}]}`)
	g := testGateway(store)
	res, lerr := g.Load(context.Background())
	if lerr != nil {
		t.Fatalf("load: %v", lerr)
	}
	if res.NeedsMigration || res.Index.Summary.Total != 1 {
		t.Fatalf("higher versions should read as current: %+v", res)
	}
}

func TestLegacyMigrationDetection(t *testing.T) {
	store := newMemStore()
	store.blobs[indexName] = []byte(`{
		"version": 1,
		"alerts": [
			{"alertId":"9996","status":"resolved","resolvedAt":"2025-01-01T00:00:00.000Z","alertType":"WRKRM","program":"MEDICAID"},
			{"id":"9997","status":"snoozed"}
		]
	}`)
	g := testGateway(store)
	res, lerr := g.Load(context.Background())
	if lerr != nil {
		t.Fatalf("load: %v", lerr)
	}
	if !res.NeedsMigration {
		t.Fatalf("version 1 with full alert fields must need migration")
	}
	if len(res.LegacyStates) != 2 {
		t.Fatalf("legacy states: %+v", res.LegacyStates)
	}
	if st := res.LegacyStates["9996"]; st.Status != model.StatusResolved || st.ResolvedAt == "" {
		t.Fatalf("legacy state 9996: %+v", st)
	}
	if st := res.LegacyStates["9997"]; st.Status != model.StatusSnoozed {
		t.Fatalf("legacy state 9997: %+v", st)
	}
}

func TestImportCSV(t *testing.T) {
	store := newMemStore()
	store.blobs["export.csv"] = []byte(`OFFICE,11-15-2025,11-17-2025,12345,"DOE,JANE",MEDICAID,WRKRM,POLICY RESPONSE,9996` + "\n")
	g := testGateway(store)
	cases := []model.CaseRef{{ID: "case-1", Name: "Jane Doe", MCN: "12345", Status: "approved"}}
	index, ierr := g.ImportCSV(context.Background(), "export.csv", cases)
	if ierr != nil {
		t.Fatalf("import: %v", ierr)
	}
	if index.Summary.Total != 1 || index.Summary.Matched != 1 {
		t.Fatalf("summary: %+v", index.Summary)
	}
}

func TestImportCSVMissingResource(t *testing.T) {
	g := testGateway(newMemStore())
	_, ierr := g.ImportCSV(context.Background(), "missing.csv", nil)
	if ierr == nil || ierr.Type != model.ErrIO {
		t.Fatalf("expected IO_ERROR, got %v", ierr)
	}
}

func TestImportCSVNoUsableRows(t *testing.T) {
	store := newMemStore()
	store.blobs["export.csv"] = []byte("just,some,metadata\nno,alert,rows\n")
	g := testGateway(store)
	_, ierr := g.ImportCSV(context.Background(), "export.csv", nil)
	if ierr == nil || ierr.Type != model.ErrParse {
		t.Fatalf("expected PARSE_ERROR, got %v", ierr)
	}
}
