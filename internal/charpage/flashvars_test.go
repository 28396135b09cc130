package charpage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func embedPage(block string) string {
	return `<html><body><embed src="chartest.swf" flashvars="` + block + `" /></body></html>`
}

func TestParseFlashVarsFullBlock(t *testing.T) {
	pairs := []string{
		"strName=Yenne",
		"intLevel=100",
		"strGender=F",
		"strEntityFile=entities/player.swf",
		"strEntityLink=player",
		"strClassName=Void%20Highlord",
		"strClassFile=classes/voidhighlord.swf",
		"strClassLink=voidhighlord",
		"strArmorName=Void%20Highlord",
		"strCustArmorName=Drakath%20Armor",
		"strCustArmorFile=armors/drakath.swf",
		"strCustArmorLink=drakath",
		"strHelmName=Void%20Visage",
		"strHelmFile=helms/voidvisage.swf",
		"strHelmLink=voidvisage",
		"strCustHelmName=",
		"strCustHelmFile=",
		"strCustHelmLink=",
		"strWeaponName=Dread%20Saw",
		"strWeaponFile=weapons/dreadsaw.swf",
		"strWeaponLink=dreadsaw",
		"strWeaponType=Sword",
		"strCustWeaponName=",
		"strCustWeaponFile=",
		"strCustWeaponLink=",
		"strCapeName=Legion%20Cape",
		"strCapeFile=capes/legion.swf",
		"strCapeLink=legion",
		"strCustCapeName=",
		"strCustCapeFile=",
		"strCustCapeLink=",
		"strPetName=Mini%20Drak",
		"strPetFile=pets/minidrak.swf",
		"strPetLink=minidrak",
		"strCustPetName=",
		"strCustPetFile=",
		"strCustPetLink=",
		"strMiscName=",
		"strMiscFile=",
		"strMiscLink=",
		"strHairFile=hair/F/Royal.swf",
		"strHairName=Royal",
		"intColorHair=6697728",
		"intColorSkin=15781792",
		"intColorEye=3381759",
		"intColorTrim=1118481",
		"intColorBase=2236962",
		"intColorAccessory=3355443",
		"ia1=5",
	}
	page := embedPage(strings.Join(pairs, "&amp;"))

	fv, err := ParseFlashVars(page)
	require.NoError(t, err)

	assert.Equal(t, "Yenne", fv.Name)
	assert.Equal(t, 100, fv.Level)
	assert.Equal(t, "F", fv.Gender)
	assert.Equal(t, "Void Highlord", fv.ClassName)
	assert.Equal(t, "Drakath Armor", fv.CustArmorName)
	assert.Equal(t, "Dread Saw", fv.WeaponName)
	assert.Equal(t, "Sword", fv.WeaponType)
	assert.Equal(t, "Mini Drak", fv.PetName)
	assert.Equal(t, "hair/F/Royal.swf", fv.HairFile)
	assert.Equal(t, 6697728, fv.ColorHair)
	assert.Equal(t, 15781792, fv.ColorSkin)
	assert.Equal(t, 5, fv.Visibility)
	assert.Empty(t, fv.CustHelmFile)
}

func TestParseFlashVarsParamTag(t *testing.T) {
	page := `<html><body><object>
<param name="movie" value="chartest.swf" />
<param name="FlashVars" value="strName=Yenne&amp;intLevel=42" />
</object></body></html>`

	fv, err := ParseFlashVars(page)
	require.NoError(t, err)
	assert.Equal(t, "Yenne", fv.Name)
	assert.Equal(t, 42, fv.Level)
}

func TestParseFlashVarsUnknownKeyFailsClosed(t *testing.T) {
	page := embedPage("strName=Yenne&amp;strMystery=1")

	_, err := ParseFlashVars(page)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedPage)
	assert.Contains(t, err.Error(), "strMystery")
}

func TestParseFlashVarsVoidPage(t *testing.T) {
	page := `<html><body><p>This character is wandering in the Void.</p></body></html>`

	_, err := ParseFlashVars(page)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestParseFlashVarsMissingBlock(t *testing.T) {
	_, err := ParseFlashVars(`<html><body><h1>Welcome</h1></body></html>`)
	assert.ErrorIs(t, err, ErrMalformedPage)
}

func TestParseFlashVarsURLDecoding(t *testing.T) {
	page := embedPage("strName=J%26K&amp;strClassName=Dragon%2BSlayer%20X&amp;strHairName=Royal+Cut")

	fv, err := ParseFlashVars(page)
	require.NoError(t, err)
	assert.Equal(t, "J&K", fv.Name)
	assert.Equal(t, "Dragon+Slayer X", fv.ClassName)
	assert.Equal(t, "Royal Cut", fv.HairName)
}

func TestParseFlashVarsNonNumericIntDefaults(t *testing.T) {
	page := embedPage("strName=Yenne&amp;intLevel=unknown&amp;intColorHair=")

	fv, err := ParseFlashVars(page)
	require.NoError(t, err)
	assert.Zero(t, fv.Level)
	assert.Zero(t, fv.ColorHair)
}
