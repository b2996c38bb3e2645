package registry

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"offerwall-sdk/internal/cache"
	"offerwall-sdk/internal/storage"
	"offerwall-sdk/pkg/offerwall"
)

// Loader returns the current set of publishers.
type Loader interface {
	LoadPublishers(ctx context.Context) ([]storage.PublisherRow, error)
}

// Static is a fixed publisher list.
type Static []storage.PublisherRow

func (s Static) LoadPublishers(context.Context) ([]storage.PublisherRow, error) {
	return s, nil
}

type merged []Loader

// Merge concatenates loaders; a later publisher id replaces an earlier one.
func Merge(loaders ...Loader) Loader { return merged(loaders) }

func (m merged) LoadPublishers(ctx context.Context) ([]storage.PublisherRow, error) {
	var out []storage.PublisherRow
	for _, l := range m {
		rows, err := l.LoadPublishers(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, rows...)
	}
	return out, nil
}

// Registry maps publisher ids to their immutable client configuration.
// Each refresh swaps a complete new map in; in-flight requests keep the
// Config they already read.
type Registry struct {
	snap cache.Snapshot[map[string]offerwall.Config]
}

func New() *Registry { return &Registry{} }

// BuildSnapshot loads publishers and replaces the current snapshot.
// Publishers without credentials are skipped, and an invalid row also drops
// any earlier row with the same id. A load error keeps the old snapshot.
func (r *Registry) BuildSnapshot(ctx context.Context, l Loader) error {
	rows, err := l.LoadPublishers(ctx)
	if err != nil {
		return fmt.Errorf("load publishers: %w", err)
	}

	next := make(map[string]offerwall.Config, len(rows))
	for _, row := range rows {
		cfg := row.Config()
		if err := cfg.Validate(); err != nil {
			log.Warn().Str("publisher", row.ID).Err(err).Msg("skipping publisher")
			delete(next, row.ID)
			continue
		}
		next[row.ID] = cfg
	}
	r.snap.Store(next)
	log.Info().Int("publishers", len(next)).Msg("publisher snapshot built")
	return nil
}

func (r *Registry) Lookup(id string) (offerwall.Config, bool) {
	m, _ := r.snap.Load()
	cfg, ok := m[id]
	return cfg, ok
}

func (r *Registry) Len() int {
	m, _ := r.snap.Load()
	return len(m)
}
