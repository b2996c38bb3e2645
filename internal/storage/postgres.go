package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"offerwall-sdk/internal/config"
	"offerwall-sdk/pkg/offerwall"
)

type Store struct {
	pool *pgxpool.Pool
}

// PublisherRow is one row of the publishers table. Empty domains fall back
// to the service defaults.
type PublisherRow struct {
	ID              string
	APIKey          string
	APIDomain       string
	OfferwallDomain string
}

func (r PublisherRow) Config() offerwall.Config {
	return offerwall.Config{
		APIKey:          r.APIKey,
		PublisherID:     r.ID,
		APIDomain:       r.APIDomain,
		OfferwallDomain: r.OfferwallDomain,
	}.WithDefaults()
}

func New(ctx context.Context, cfg config.Config) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres DSN: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.Postgres.MaxOpenConns)
	poolCfg.MinConns = int32(cfg.Postgres.MaxIdleConns)
	poolCfg.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}
	log.Info().Str("host", cfg.Postgres.Host).Str("db", cfg.Postgres.DBName).Msg("postgres pool ready")
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// LoadPublishers loads the credentials of every active publisher.
func (s *Store) LoadPublishers(ctx context.Context) ([]PublisherRow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := s.pool.Query(ctx, `
		SELECT p.publisher_id, p.api_key, p.api_domain, p.offerwall_domain
		FROM publishers p
		WHERE p.active
		ORDER BY p.publisher_id
	`)
	if err != nil {
		return nil, fmt.Errorf("query publishers: %w", err)
	}
	defer rows.Close()

	var out []PublisherRow
	for rows.Next() {
		var (
			id, apiKey          string
			apiDomain, wallHost sql.NullString
		)
		if err := rows.Scan(&id, &apiKey, &apiDomain, &wallHost); err != nil {
			return nil, fmt.Errorf("scan publisher: %w", err)
		}
		out = append(out, PublisherRow{
			ID:              id,
			APIKey:          apiKey,
			APIDomain:       apiDomain.String,
			OfferwallDomain: wallHost.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate publishers: %w", err)
	}
	return out, nil
}

func (s *Store) PgxPool() *pgxpool.Pool {
	if s.pool == nil {
		panic(errors.New("pgx pool is nil"))
	}
	return s.pool
}
