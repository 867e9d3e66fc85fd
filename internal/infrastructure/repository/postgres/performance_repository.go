package postgres

import (
	"context"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/kemetion/fantasy-cricket/internal/domain/performance"
)

type performanceTableModel struct {
	MatchID    string    `db:"match_id"`
	PlayerID   string    `db:"player_id"`
	Revision   int       `db:"revision"`
	Statistics string    `db:"statistics"`
	RecordedAt time.Time `db:"recorded_at"`
}

type PerformanceRepository struct {
	db *sqlx.DB
}

func NewPerformanceRepository(db *sqlx.DB) *PerformanceRepository {
	return &PerformanceRepository{db: db}
}

func (r *PerformanceRepository) Append(ctx context.Context, record performance.Performance) error {
	encoded, err := encodeStats(record.Statistics)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO performances (match_id, player_id, revision, statistics, recorded_at)
VALUES (
	$1, $2,
	(SELECT COALESCE(MAX(revision), 0) + 1 FROM performances WHERE match_id = $1 AND player_id = $2),
	$3, $4
)`
	if _, err := r.db.ExecContext(ctx, query, record.MatchID, record.PlayerID, encoded, record.RecordedAt); err != nil {
		return fmt.Errorf("insert performance revision: %w", err)
	}
	return nil
}

func (r *PerformanceRepository) GetLatest(ctx context.Context, matchID, playerID string) (performance.Performance, bool, error) {
	const query = `
SELECT match_id, player_id, revision, statistics, recorded_at
FROM performances
WHERE match_id = $1 AND player_id = $2
ORDER BY revision DESC
LIMIT 1`

	var row performanceTableModel
	if err := r.db.GetContext(ctx, &row, query, matchID, playerID); err != nil {
		if isNotFound(err) {
			return performance.Performance{}, false, nil
		}
		return performance.Performance{}, false, fmt.Errorf("select latest performance: %w", err)
	}

	out, err := row.toDomain()
	if err != nil {
		return performance.Performance{}, false, err
	}
	return out, true, nil
}

func (r *PerformanceRepository) ListLatestByMatch(ctx context.Context, matchID string) ([]performance.Performance, error) {
	const query = `
SELECT DISTINCT ON (player_id) match_id, player_id, revision, statistics, recorded_at
FROM performances
WHERE match_id = $1
ORDER BY player_id, revision DESC`

	var rows []performanceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, matchID); err != nil {
		return nil, fmt.Errorf("select latest performances by match: %w", err)
	}

	out := make([]performance.Performance, 0, len(rows))
	for _, row := range rows {
		record, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, nil
}

func (m performanceTableModel) toDomain() (performance.Performance, error) {
	stats, err := decodeStats(m.Statistics)
	if err != nil {
		return performance.Performance{}, fmt.Errorf("decode statistics for %s/%s rev %d: %w", m.MatchID, m.PlayerID, m.Revision, err)
	}
	return performance.Performance{
		MatchID:    m.MatchID,
		PlayerID:   m.PlayerID,
		Revision:   m.Revision,
		Statistics: stats,
		RecordedAt: m.RecordedAt,
	}, nil
}

func encodeStats(stats map[string]float64) (string, error) {
	if stats == nil {
		stats = map[string]float64{}
	}
	encoded, err := sonic.Marshal(stats)
	if err != nil {
		return "", fmt.Errorf("encode statistics: %w", err)
	}
	return string(encoded), nil
}

func decodeStats(raw string) (map[string]float64, error) {
	if raw == "" {
		return map[string]float64{}, nil
	}
	out := make(map[string]float64)
	if err := sonic.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	return out, nil
}
