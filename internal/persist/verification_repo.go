package persist

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/verify"
)

// VerificationRepo stores the verification audit trail. Satisfies
// verify.Recorder.
type VerificationRepo struct {
	db *DB
}

func NewVerificationRepo(db *DB) *VerificationRepo {
	return &VerificationRepo{db: db}
}

func (r *VerificationRepo) SaveVerification(ctx context.Context, rec verify.Record) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO verifications
		     (id, ign, guild, page_name, page_guild, name_match, guild_match, verified, checked_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.ID, rec.IGN, rec.Guild, rec.PageName, rec.PageGuild,
		rec.NameMatch, rec.GuildMatch, rec.Verified, rec.CheckedAt,
	)
	return err
}

// LatestForIGN returns the most recent attempt for a character name, or
// nil when none exists.
func (r *VerificationRepo) LatestForIGN(ctx context.Context, ign string) (*verify.Record, error) {
	rec := &verify.Record{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, ign, guild, page_name, page_guild, name_match, guild_match, verified, checked_at
		 FROM verifications
		 WHERE LOWER(ign) = LOWER($1)
		 ORDER BY checked_at DESC
		 LIMIT 1`, ign,
	).Scan(
		&rec.ID, &rec.IGN, &rec.Guild, &rec.PageName, &rec.PageGuild,
		&rec.NameMatch, &rec.GuildMatch, &rec.Verified, &rec.CheckedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// VerifiedSince lists the IGNs that passed verification after the cutoff.
func (r *VerificationRepo) VerifiedSince(ctx context.Context, cutoff time.Time) ([]string, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT DISTINCT ign FROM verifications
		 WHERE verified AND checked_at >= $1
		 ORDER BY ign`, cutoff,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var igns []string
	for rows.Next() {
		var ign string
		if err := rows.Scan(&ign); err != nil {
			return nil, err
		}
		igns = append(igns, ign)
	}
	return igns, rows.Err()
}

// DeleteRecord removes one audit entry by id.
func (r *VerificationRepo) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM verifications WHERE id = $1`, id)
	return err
}
