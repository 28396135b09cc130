package render

import (
	"encoding/json"
	"testing"

	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/charpage"
	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func testBuilder(t *testing.T) (*Builder, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	cfg := config.Renderer{
		AssetBaseURL: "https://game.example.com/game/gamefiles/",
		SWFSource:    "chartest.swf",
	}
	return NewBuilder(cfg, zap.New(core)), logs
}

func sampleFlashVars() *charpage.FlashVars {
	return &charpage.FlashVars{
		Name:   "Yenne",
		Level:  100,
		Gender: "F",

		EntityFile: "entities/player.swf",
		EntityLink: "player",

		ClassName: "Void Highlord",
		ClassFile: "classes/voidhighlord.swf",
		ClassLink: "voidhighlord",

		ArmorName:     "Void Highlord",
		CustArmorName: "Drakath Armor",
		CustArmorFile: "armors/drakath.swf",
		CustArmorLink: "drakath",

		HelmName: "Void Visage",
		HelmFile: "helms/voidvisage.swf",
		HelmLink: "voidvisage",

		WeaponName: "Dread Saw",
		WeaponFile: "weapons/dreadsaw.swf",
		WeaponLink: "dreadsaw",
		WeaponType: "Sword",

		CapeName: "Legion Cape",
		CapeFile: "capes/legion.swf",
		CapeLink: "legion",

		HairFile: "hair/F/Royal.swf",
		HairName: "Royal",

		ColorHair:      0x663300,
		ColorSkin:      0xF0CFA0,
		ColorEye:       0x3399FF,
		ColorTrim:      0x111111,
		ColorBase:      0x222222,
		ColorAccessory: 0x333333,

		Visibility: 0,
	}
}

func TestBuildEquippedUsesClassSlot(t *testing.T) {
	b, _ := testBuilder(t)
	req := b.Build(sampleFlashVars(), ViewEquipped)

	assert.Equal(t, "classes/voidhighlord.swf", req.Equipment.Class.File)
	assert.Equal(t, "voidhighlord", req.Equipment.Class.Link)
	assert.Equal(t, "Void Highlord", req.Equipment.Class.Name)
}

func TestBuildCosmeticUsesCustomArmor(t *testing.T) {
	b, _ := testBuilder(t)
	req := b.Build(sampleFlashVars(), ViewCosmetic)

	assert.Equal(t, "armors/drakath.swf", req.Equipment.Class.File)
	assert.Equal(t, "drakath", req.Equipment.Class.Link)
	assert.Equal(t, "Drakath Armor", req.Equipment.Class.Name)
}

func TestBuildCosmeticOnlyChangesClassSlot(t *testing.T) {
	b, _ := testBuilder(t)
	equipped := b.Build(sampleFlashVars(), ViewEquipped)
	cosmetic := b.Build(sampleFlashVars(), ViewCosmetic)

	assert.Equal(t, equipped.Equipment.Helm, cosmetic.Equipment.Helm)
	assert.Equal(t, equipped.Equipment.Weapon, cosmetic.Equipment.Weapon)
	assert.Equal(t, equipped.Equipment.Cape, cosmetic.Equipment.Cape)
	assert.Equal(t, equipped.Equipment.Pet, cosmetic.Equipment.Pet)
	assert.NotEqual(t, equipped.Equipment.Class, cosmetic.Equipment.Class)
}

func TestBuildCosmeticFallsBackWithoutCustomArmor(t *testing.T) {
	b, _ := testBuilder(t)
	fv := sampleFlashVars()
	fv.CustArmorFile = ""
	fv.CustArmorLink = ""
	fv.CustArmorName = ""

	req := b.Build(fv, ViewCosmetic)
	assert.Equal(t, "classes/voidhighlord.swf", req.Equipment.Class.File)
}

func TestBuildDeterministic(t *testing.T) {
	b, _ := testBuilder(t)
	first, err := json.Marshal(b.Build(sampleFlashVars(), ViewEquipped))
	require.NoError(t, err)
	second, err := json.Marshal(b.Build(sampleFlashVars(), ViewEquipped))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuildEmptySlotsBecomeNone(t *testing.T) {
	b, _ := testBuilder(t)
	fv := sampleFlashVars()
	fv.PetFile = ""
	fv.PetLink = "orphaned-link"
	fv.MiscFile = "none"
	fv.MiscLink = "also-orphaned"

	req := b.Build(fv, ViewEquipped)
	assert.Equal(t, "none", req.Equipment.Pet.File)
	assert.Empty(t, req.Equipment.Pet.Link)
	assert.Equal(t, "none", req.Equipment.Misc.File)
	assert.Empty(t, req.Equipment.Misc.Link)
}

func TestBuildDefaults(t *testing.T) {
	b, _ := testBuilder(t)
	fv := sampleFlashVars()
	fv.Gender = "X"
	fv.HairFile = ""
	fv.HairName = ""

	req := b.Build(fv, ViewEquipped)
	assert.Equal(t, "M", req.Gender)
	assert.Equal(t, "hair/M/Normal.swf", req.Hair.File)
	assert.Equal(t, "Default", req.Hair.Name)
}

func TestBuildWeaponCarriesType(t *testing.T) {
	b, _ := testBuilder(t)
	req := b.Build(sampleFlashVars(), ViewEquipped)
	assert.Equal(t, "Sword", req.Equipment.Weapon.Type)
	assert.Empty(t, req.Equipment.Helm.Type)
}

func TestBuildClampsColors(t *testing.T) {
	b, logs := testBuilder(t)
	fv := sampleFlashVars()
	fv.ColorHair = -5
	fv.ColorSkin = 0x1000000

	req := b.Build(fv, ViewEquipped)
	assert.Equal(t, 0, req.ColorHair)
	assert.Equal(t, 0xFFFFFF, req.ColorSkin)
	assert.Equal(t, 2, logs.FilterLevelExact(zap.WarnLevel).Len())
}

func TestBuildInRangeColorsDoNotWarn(t *testing.T) {
	b, logs := testBuilder(t)
	b.Build(sampleFlashVars(), ViewEquipped)
	assert.Zero(t, logs.FilterLevelExact(zap.WarnLevel).Len())
}

func TestDecodeVisibility(t *testing.T) {
	cases := []struct {
		mask int
		want VisibilityFlags
	}{
		{0, VisibilityFlags{}},
		{1, VisibilityFlags{HideCape: true}},
		{2, VisibilityFlags{HideHelm: true}},
		{3, VisibilityFlags{HideCape: true, HideHelm: true}},
		{4, VisibilityFlags{HidePet: true}},
		{5, VisibilityFlags{HideCape: true, HidePet: true}},
		{6, VisibilityFlags{HideHelm: true, HidePet: true}},
		{7, VisibilityFlags{HideCape: true, HideHelm: true, HidePet: true}},
		{8, VisibilityFlags{}}, // reserved bits ignored
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DecodeVisibility(tc.mask), "mask %d", tc.mask)
	}
}

func TestVisibilityHiddenSlots(t *testing.T) {
	assert.Empty(t, DecodeVisibility(0).Hidden())
	assert.Equal(t, []string{"cape"}, DecodeVisibility(1).Hidden())
	assert.Equal(t, []string{"cape", "pet"}, DecodeVisibility(5).Hidden())
	assert.Equal(t, []string{"cape", "helm", "pet"}, DecodeVisibility(7).Hidden())
}
