package main

import (
	"testing"
	"time"

	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/persist"
	"github.com/stretchr/testify/assert"
)

func TestHistoryLines(t *testing.T) {
	rows := []persist.HistoryRow{
		{
			Username:   "Yenne",
			View:       "cosmetic",
			Format:     "gif",
			Path:       "renders/yenne_cosmetic.gif",
			Bytes:      2048,
			RenderedAt: time.Date(2026, 8, 23, 14, 30, 0, 0, time.UTC),
		},
		{
			Username:   "Yenne",
			View:       "equipped",
			Format:     "png",
			Path:       "renders/yenne_equipped.png",
			Bytes:      51200,
			RenderedAt: time.Date(2026, 8, 22, 9, 5, 12, 0, time.UTC),
		},
	}

	out := historyLines(rows)
	assert.Equal(t,
		"2026-08-23 14:30:00  cosmetic gif    2048 bytes  renders/yenne_cosmetic.gif\n"+
			"2026-08-22 09:05:12  equipped png   51200 bytes  renders/yenne_equipped.png\n",
		out,
	)
}
