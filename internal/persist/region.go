package persist

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// MigrateLegacyRegions 將歷史上按子世界分開存放的區域資料合併到根世界：
// 圖鑑紀錄取集合聯集、旗標取 OR，託管款項相加，偏好取 OR。每個存檔
// 生命週期最多執行一次（region_meta.migrated 標記）；對空的舊區域重跑
// 是 no-op，因此即使標記遺失也是冪等的。
func MigrateLegacyRegions(ctx context.Context, db *DB, rootWorldID string, log *zap.Logger) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer tx.Rollback(ctx)

	// 已遷移過就直接跳過
	var migrated bool
	err = tx.QueryRow(ctx,
		`SELECT migrated FROM region_meta WHERE world_id = $1`, rootWorldID,
	).Scan(&migrated)
	if err != nil && err != pgx.ErrNoRows {
		return fmt.Errorf("read region meta: %w", err)
	}
	if migrated {
		return nil
	}

	moved, err := mergeDiscoveryRegions(ctx, tx, rootWorldID)
	if err != nil {
		return fmt.Errorf("merge discovery regions: %w", err)
	}

	// 託管款項：同玩家同貨幣相加
	if _, err := tx.Exec(ctx,
		`INSERT INTO payout_records (world_id, player_id, currency_kind, amount)
		 SELECT $1, player_id, currency_kind, SUM(amount)
		 FROM payout_records WHERE world_id <> $1
		 GROUP BY player_id, currency_kind
		 ON CONFLICT (world_id, player_id, currency_kind) DO UPDATE
		 SET amount = payout_records.amount + EXCLUDED.amount`,
		rootWorldID,
	); err != nil {
		return fmt.Errorf("merge payout regions: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM payout_records WHERE world_id <> $1`, rootWorldID,
	); err != nil {
		return fmt.Errorf("drop legacy payout regions: %w", err)
	}

	// 偏好：任一子世界開啟即視為開啟
	if _, err := tx.Exec(ctx,
		`INSERT INTO preference_records (world_id, player_id, accepting_offers)
		 SELECT $1, player_id, BOOL_OR(accepting_offers)
		 FROM preference_records WHERE world_id <> $1
		 GROUP BY player_id
		 ON CONFLICT (world_id, player_id) DO UPDATE
		 SET accepting_offers = preference_records.accepting_offers OR EXCLUDED.accepting_offers`,
		rootWorldID,
	); err != nil {
		return fmt.Errorf("merge preference regions: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM preference_records WHERE world_id <> $1`, rootWorldID,
	); err != nil {
		return fmt.Errorf("drop legacy preference regions: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO region_meta (world_id, migrated) VALUES ($1, TRUE)
		 ON CONFLICT (world_id) DO UPDATE SET migrated = TRUE`,
		rootWorldID,
	); err != nil {
		return fmt.Errorf("mark migrated: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}
	if moved > 0 {
		log.Info("舊子世界區域已合併", zap.Int("records", moved), zap.String("root", rootWorldID))
	}
	return nil
}

// mergeDiscoveryRegions 合併圖鑑紀錄：kind 集合聯集，旗標取 OR。
func mergeDiscoveryRegions(ctx context.Context, tx pgx.Tx, rootWorldID string) (int, error) {
	rows, err := tx.Query(ctx,
		`SELECT player_id, kinds, received_starter, completed
		 FROM discovery_records WHERE world_id <> $1`,
		rootWorldID,
	)
	if err != nil {
		return 0, err
	}

	type legacy struct {
		playerID string
		kinds    []string
		starter  bool
		complete bool
	}
	var legacies []legacy
	for rows.Next() {
		var l legacy
		if err := rows.Scan(&l.playerID, &l.kinds, &l.starter, &l.complete); err != nil {
			rows.Close()
			return 0, err
		}
		legacies = append(legacies, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	for _, l := range legacies {
		var rootKinds []string
		var rootStarter, rootComplete bool
		err := tx.QueryRow(ctx,
			`SELECT kinds, received_starter, completed
			 FROM discovery_records WHERE world_id = $1 AND player_id = $2`,
			rootWorldID, l.playerID,
		).Scan(&rootKinds, &rootStarter, &rootComplete)
		if err != nil && err != pgx.ErrNoRows {
			return 0, err
		}

		seen := make(map[string]struct{}, len(rootKinds)+len(l.kinds))
		merged := make([]string, 0, len(rootKinds)+len(l.kinds))
		for _, k := range append(rootKinds, l.kinds...) {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			merged = append(merged, k)
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO discovery_records (world_id, player_id, kinds, received_starter, completed, updated_at)
			 VALUES ($1, $2, $3, $4, $5, now())
			 ON CONFLICT (world_id, player_id) DO UPDATE
			 SET kinds = EXCLUDED.kinds,
			     received_starter = EXCLUDED.received_starter,
			     completed = EXCLUDED.completed,
			     updated_at = now()`,
			rootWorldID, l.playerID, merged,
			rootStarter || l.starter, rootComplete || l.complete,
		); err != nil {
			return 0, err
		}
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM discovery_records WHERE world_id <> $1`, rootWorldID,
	); err != nil {
		return 0, err
	}
	return len(legacies), nil
}
