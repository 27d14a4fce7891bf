package persist

import (
	"context"
)

type PayoutRepo struct {
	db *DB
}

func NewPayoutRepo(db *DB) *PayoutRepo {
	return &PayoutRepo{db: db}
}

// Load returns the player's owed amounts per currency kind. An empty map
// means nothing is stored.
func (r *PayoutRepo) Load(ctx context.Context, worldID, playerID string) (map[string]int, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT currency_kind, amount FROM payout_records
		 WHERE world_id = $1 AND player_id = $2 AND amount > 0`,
		worldID, playerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	owed := make(map[string]int)
	for rows.Next() {
		var kind string
		var amount int64
		if err := rows.Scan(&kind, &amount); err != nil {
			return nil, err
		}
		owed[kind] = int(amount)
	}
	return owed, rows.Err()
}

// Save replaces the player's stored amounts with the given map inside one
// transaction. Draining (TakeAll) persists as a delete.
func (r *PayoutRepo) Save(ctx context.Context, worldID, playerID string, owed map[string]int) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM payout_records WHERE world_id = $1 AND player_id = $2`,
		worldID, playerID,
	); err != nil {
		return err
	}
	for kind, amount := range owed {
		if amount <= 0 {
			continue
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO payout_records (world_id, player_id, currency_kind, amount)
			 VALUES ($1, $2, $3, $4)`,
			worldID, playerID, kind, int64(amount),
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
