// Package verify checks a claimed in-game identity against what the
// character page actually shows.
package verify

import (
	"strings"

	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/charpage"
	"golang.org/x/text/unicode/norm"
)

// Claim is what the user asserts about themselves. An empty Guild is a
// valid claim meaning "no guild".
type Claim struct {
	IGN   string
	Guild string
}

// Outcome is the field-by-field comparison result. PageName and PageGuild
// echo what the page showed so callers can present both sides.
type Outcome struct {
	NameMatch  bool
	GuildMatch bool
	PageName   string
	PageGuild  string
}

// Verified reports whether every checked field matched.
func (o Outcome) Verified() bool {
	return o.NameMatch && o.GuildMatch
}

// Normalize prepares a value for comparison: NFKC form, lowercased, with
// whitespace runs collapsed to single spaces. Page values and user input
// both go through this, so cosmetic differences never fail a match.
func Normalize(s string) string {
	s = norm.NFKC.String(s)
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Match compares a claim against a parsed profile. A page with no name
// never matches; an empty guild on both sides is a match.
func Match(claim Claim, profile *charpage.Profile) Outcome {
	o := Outcome{
		PageName:  strings.TrimSpace(profile.Name),
		PageGuild: strings.TrimSpace(profile.Guild),
	}

	if o.PageName != "" {
		o.NameMatch = Normalize(claim.IGN) == Normalize(o.PageName)
	}

	claimGuild := strings.TrimSpace(claim.Guild)
	if o.PageGuild == "" && claimGuild == "" {
		o.GuildMatch = true
	} else {
		o.GuildMatch = Normalize(claimGuild) == Normalize(o.PageGuild)
	}
	return o
}
