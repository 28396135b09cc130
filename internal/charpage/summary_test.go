package charpage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummaryFromFlashVars(t *testing.T) {
	fv := &FlashVars{
		Name:       "Yenne",
		Level:      100,
		ClassName:  "Void Highlord",
		HelmName:   "Void Visage",
		ArmorName:  "Void Highlord",
		CapeName:   "Legion Cape",
		WeaponName: "Dread Saw",
	}

	s := SummaryFromFlashVars(fv, "yenne")
	assert.Equal(t, "Yenne", s.Name)
	assert.Equal(t, "100", s.Level)
	assert.Equal(t, "Void Highlord", s.Class)
	assert.Equal(t, "Dread Saw", s.Weapon)
	assert.Equal(t, "N/A", s.Pet)
}

func TestSummaryDefaults(t *testing.T) {
	s := SummaryFromFlashVars(&FlashVars{}, "queried")
	assert.Equal(t, "queried", s.Name)
	assert.Equal(t, "N/A", s.Level)
	assert.Equal(t, "N/A", s.Class)
	assert.Equal(t, "N/A", s.Helm)
	assert.Equal(t, "N/A", s.Armor)
	assert.Equal(t, "N/A", s.Cape)
	assert.Equal(t, "N/A", s.Weapon)
	assert.Equal(t, "N/A", s.Pet)
}
