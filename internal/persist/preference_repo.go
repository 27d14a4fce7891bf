package persist

import (
	"context"

	"github.com/jackc/pgx/v5"
)

type PreferenceRepo struct {
	db *DB
}

func NewPreferenceRepo(db *DB) *PreferenceRepo {
	return &PreferenceRepo{db: db}
}

// Load returns the player's accepting-offers flag. Missing row = default false
// with found = false.
func (r *PreferenceRepo) Load(ctx context.Context, worldID, playerID string) (accepting bool, found bool, err error) {
	err = r.db.Pool.QueryRow(ctx,
		`SELECT accepting_offers FROM preference_records
		 WHERE world_id = $1 AND player_id = $2`,
		worldID, playerID,
	).Scan(&accepting)
	if err == pgx.ErrNoRows {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return accepting, true, nil
}

// Save upserts the flag.
func (r *PreferenceRepo) Save(ctx context.Context, worldID, playerID string, accepting bool) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO preference_records (world_id, player_id, accepting_offers)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (world_id, player_id) DO UPDATE
		 SET accepting_offers = EXCLUDED.accepting_offers`,
		worldID, playerID, accepting,
	)
	return err
}
