package persist

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// DiscoveryRow mirrors one player's persisted discovery record.
type DiscoveryRow struct {
	WorldID         string
	PlayerID        string
	Kinds           []string
	ReceivedStarter bool
	Completed       bool
}

type DiscoveryRepo struct {
	db *DB
}

func NewDiscoveryRepo(db *DB) *DiscoveryRepo {
	return &DiscoveryRepo{db: db}
}

// Load returns the player's discovery record, or nil when none is stored.
func (r *DiscoveryRepo) Load(ctx context.Context, worldID, playerID string) (*DiscoveryRow, error) {
	row := &DiscoveryRow{WorldID: worldID, PlayerID: playerID}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT kinds, received_starter, completed
		 FROM discovery_records WHERE world_id = $1 AND player_id = $2`,
		worldID, playerID,
	).Scan(&row.Kinds, &row.ReceivedStarter, &row.Completed)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// Save upserts the full record.
func (r *DiscoveryRepo) Save(ctx context.Context, row *DiscoveryRow) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO discovery_records (world_id, player_id, kinds, received_starter, completed, updated_at)
		 VALUES ($1, $2, $3, $4, $5, now())
		 ON CONFLICT (world_id, player_id) DO UPDATE
		 SET kinds = EXCLUDED.kinds,
		     received_starter = EXCLUDED.received_starter,
		     completed = EXCLUDED.completed,
		     updated_at = now()`,
		row.WorldID, row.PlayerID, row.Kinds, row.ReceivedStarter, row.Completed,
	)
	return err
}
