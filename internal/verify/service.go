package verify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/charpage"
	"go.uber.org/zap"
)

// ProfileLoader supplies the page-derived profile for a username.
type ProfileLoader interface {
	LoadProfile(ctx context.Context, username string) (*charpage.Profile, error)
}

// Record is one verification attempt as stored in the audit trail.
type Record struct {
	ID         uuid.UUID
	IGN        string
	Guild      string
	PageName   string
	PageGuild  string
	NameMatch  bool
	GuildMatch bool
	Verified   bool
	CheckedAt  time.Time
}

// Recorder persists verification attempts. Every attempt is recorded,
// matched or not.
type Recorder interface {
	SaveVerification(ctx context.Context, rec Record) error
}

// Service runs the verification flow: load the page profile, compare it
// to the claim, record the attempt. May record nothing when constructed
// without a Recorder.
type Service struct {
	loader   ProfileLoader
	recorder Recorder
	log      *zap.Logger
}

func NewService(loader ProfileLoader, recorder Recorder, log *zap.Logger) *Service {
	return &Service{loader: loader, recorder: recorder, log: log}
}

// Result pairs the comparison outcome with its audit record.
type Result struct {
	Outcome
	RecordID uuid.UUID
}

// Verify checks one claim. Page lookup failures propagate unchanged so
// callers can distinguish "no such character" from "details mismatch".
// Audit persistence is best effort and never fails the check itself.
func (s *Service) Verify(ctx context.Context, claim Claim) (*Result, error) {
	profile, err := s.loader.LoadProfile(ctx, claim.IGN)
	if err != nil {
		return nil, err
	}

	outcome := Match(claim, profile)
	rec := Record{
		ID:         uuid.New(),
		IGN:        claim.IGN,
		Guild:      claim.Guild,
		PageName:   outcome.PageName,
		PageGuild:  outcome.PageGuild,
		NameMatch:  outcome.NameMatch,
		GuildMatch: outcome.GuildMatch,
		Verified:   outcome.Verified(),
		CheckedAt:  time.Now().UTC(),
	}

	if s.recorder != nil {
		if err := s.recorder.SaveVerification(ctx, rec); err != nil {
			s.log.Warn("verification attempt not recorded",
				zap.String("ign", claim.IGN),
				zap.Error(err),
			)
		}
	}

	s.log.Info("verification checked",
		zap.String("ign", claim.IGN),
		zap.Bool("verified", rec.Verified),
	)
	return &Result{Outcome: outcome, RecordID: rec.ID}, nil
}
