package main

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/verify"
	"github.com/stretchr/testify/assert"
)

func TestRecordLines(t *testing.T) {
	rec := &verify.Record{
		ID:         uuid.MustParse("a2f1c9de-0000-4000-8000-000000000001"),
		IGN:        "Yenne",
		Guild:      "Valor",
		PageName:   "Yenne",
		PageGuild:  "Valor",
		NameMatch:  true,
		GuildMatch: true,
		Verified:   true,
		CheckedAt:  time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC),
	}

	out := recordLines(rec)
	assert.Contains(t, out, "Record:  a2f1c9de-0000-4000-8000-000000000001")
	assert.Contains(t, out, "Checked: 2026-08-23 10:00:00")
	assert.Contains(t, out, `IGN:     Yenne (page showed "Yenne") MATCH`)
	assert.Contains(t, out, `Guild:   Valor (page showed "Valor") MATCH`)
	assert.Contains(t, out, "Result:  verified")
}

func TestRecordLinesGuildless(t *testing.T) {
	rec := &verify.Record{
		ID:        uuid.New(),
		IGN:       "Nobody",
		PageName:  "Somebody",
		NameMatch: false,
		Verified:  false,
		CheckedAt: time.Now(),
	}

	out := recordLines(rec)
	assert.Contains(t, out, `IGN:     Nobody (page showed "Somebody") MISMATCH`)
	assert.Contains(t, out, "Guild:   N/A")
	assert.Contains(t, out, "Result:  not verified")
}
