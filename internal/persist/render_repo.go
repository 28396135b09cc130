package persist

import (
	"context"
	"time"

	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/render"
)

// RenderRepo stores the render history log. Satisfies render.HistoryRecorder.
type RenderRepo struct {
	db *DB
}

func NewRenderRepo(db *DB) *RenderRepo {
	return &RenderRepo{db: db}
}

func (r *RenderRepo) RecordRender(ctx context.Context, entry render.HistoryEntry) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO render_history (username, view, format, path, bytes)
		 VALUES ($1, $2, $3, $4, $5)`,
		entry.Username, string(entry.View), string(entry.Format), entry.Path, entry.Bytes,
	)
	return err
}

// HistoryRow is one stored render with its timestamp.
type HistoryRow struct {
	Username   string
	View       string
	Format     string
	Path       string
	Bytes      int
	RenderedAt time.Time
}

// RecentForUser returns the newest renders for a username, newest first.
func (r *RenderRepo) RecentForUser(ctx context.Context, username string, limit int) ([]HistoryRow, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT username, view, format, path, bytes, rendered_at
		 FROM render_history
		 WHERE LOWER(username) = LOWER($1)
		 ORDER BY rendered_at DESC
		 LIMIT $2`, username, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryRow
	for rows.Next() {
		var h HistoryRow
		if err := rows.Scan(&h.Username, &h.View, &h.Format, &h.Path, &h.Bytes, &h.RenderedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
