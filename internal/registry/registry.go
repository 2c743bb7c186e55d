package registry

import (
	"context"
	"encoding/json"
	"log/slog"

	"alertrecon/internal/model"
	"alertrecon/internal/storage"
)

// Provider supplies the read-only case snapshot the matcher consumes. A
// fresh snapshot is fetched per reconciliation; the engine never mutates it.
type Provider interface {
	Cases(ctx context.Context) ([]model.CaseRef, error)
}

type storeProvider struct {
	store  storage.Store
	name   string
	logger *slog.Logger
}

// NewStoreProvider reads a JSON CaseRef array exported by the case subsystem
// from the blob store under the given name. A missing snapshot is an empty
// registry, not an error.
func NewStoreProvider(store storage.Store, name string, logger *slog.Logger) Provider {
	return &storeProvider{store: store, name: name, logger: logger}
}

func (p *storeProvider) Cases(ctx context.Context) ([]model.CaseRef, error) {
	data, err := p.store.Read(ctx, p.name)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		if p.logger != nil {
			p.logger.Debug("case snapshot absent", "name", p.name)
		}
		return nil, nil
	}
	var cases []model.CaseRef
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, err
	}
	return cases, nil
}

// Static is a fixed snapshot, used in tests and standalone imports.
type Static []model.CaseRef

func (s Static) Cases(context.Context) ([]model.CaseRef, error) {
	return s, nil
}
