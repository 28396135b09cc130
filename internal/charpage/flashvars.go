package charpage

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// FlashVars is the typed form of the 49-key parameter block embedded on the
// character page. The schema is closed on purpose: a key this parser does not
// recognize means the upstream markup drifted, and parsing fails with
// ErrMalformedPage instead of silently dropping data.
type FlashVars struct {
	Name   string
	Level  int
	Gender string

	EntityFile string
	EntityLink string

	ClassName string
	ClassFile string
	ClassLink string

	ArmorName     string
	CustArmorName string
	CustArmorFile string
	CustArmorLink string

	HelmName     string
	HelmFile     string
	HelmLink     string
	CustHelmName string
	CustHelmFile string
	CustHelmLink string

	WeaponName     string
	WeaponFile     string
	WeaponLink     string
	WeaponType     string
	CustWeaponName string
	CustWeaponFile string
	CustWeaponLink string

	CapeName     string
	CapeFile     string
	CapeLink     string
	CustCapeName string
	CustCapeFile string
	CustCapeLink string

	PetName     string
	PetFile     string
	PetLink     string
	CustPetName string
	CustPetFile string
	CustPetLink string

	MiscName string
	MiscFile string
	MiscLink string

	HairFile string
	HairName string

	ColorHair      int
	ColorSkin      int
	ColorEye       int
	ColorTrim      int
	ColorBase      int
	ColorAccessory int

	Visibility int // ia1 achievement-visibility bitmask
}

// The block can sit in an attribute on <embed> or in a <param> tag.
var flashvarsPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)flashvars="([^"]+)"`),
	regexp.MustCompile(`(?i)<param[^>]+name="FlashVars"[^>]+value="([^"]+)"`),
}

// ParseFlashVars locates and decodes the embedded parameter block from raw
// page HTML. A page without the block is either a not-found placeholder
// (ErrNotFound) or structural drift (ErrMalformedPage).
func ParseFlashVars(html string) (*FlashVars, error) {
	var raw string
	for _, pat := range flashvarsPatterns {
		if m := pat.FindStringSubmatch(html); m != nil {
			raw = m[1]
			break
		}
	}
	if raw == "" {
		if strings.Contains(html, voidMarker) {
			return nil, fmt.Errorf("%w: inactive or nonexistent", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: flashvars block absent", ErrMalformedPage)
	}

	// The block is HTML-entity encoded, then URL-encoded, shaped like a
	// query string. Keys may appear in any order; blank values are kept.
	decoded := strings.ReplaceAll(raw, "&amp;", "&")

	fv := &FlashVars{}
	for _, pair := range strings.Split(decoded, "&") {
		if pair == "" {
			continue
		}
		key, val, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(key)
		if err != nil {
			return nil, fmt.Errorf("%w: bad key encoding %q", ErrMalformedPage, pair)
		}
		val, err = url.QueryUnescape(val)
		if err != nil {
			return nil, fmt.Errorf("%w: bad value encoding for %s", ErrMalformedPage, key)
		}
		if err := fv.set(key, val); err != nil {
			return nil, err
		}
	}
	return fv, nil
}

// set assigns one decoded key/value pair. Unknown keys fail closed.
func (fv *FlashVars) set(key, val string) error {
	switch key {
	case "strName":
		fv.Name = val
	case "intLevel":
		fv.Level = atoiDefault(val, 0)
	case "strGender":
		fv.Gender = val

	case "strEntityFile":
		fv.EntityFile = val
	case "strEntityLink":
		fv.EntityLink = val

	case "strClassName":
		fv.ClassName = val
	case "strClassFile":
		fv.ClassFile = val
	case "strClassLink":
		fv.ClassLink = val

	case "strArmorName":
		fv.ArmorName = val
	case "strCustArmorName":
		fv.CustArmorName = val
	case "strCustArmorFile":
		fv.CustArmorFile = val
	case "strCustArmorLink":
		fv.CustArmorLink = val

	case "strHelmName":
		fv.HelmName = val
	case "strHelmFile":
		fv.HelmFile = val
	case "strHelmLink":
		fv.HelmLink = val
	case "strCustHelmName":
		fv.CustHelmName = val
	case "strCustHelmFile":
		fv.CustHelmFile = val
	case "strCustHelmLink":
		fv.CustHelmLink = val

	case "strWeaponName":
		fv.WeaponName = val
	case "strWeaponFile":
		fv.WeaponFile = val
	case "strWeaponLink":
		fv.WeaponLink = val
	case "strWeaponType":
		fv.WeaponType = val
	case "strCustWeaponName":
		fv.CustWeaponName = val
	case "strCustWeaponFile":
		fv.CustWeaponFile = val
	case "strCustWeaponLink":
		fv.CustWeaponLink = val

	case "strCapeName":
		fv.CapeName = val
	case "strCapeFile":
		fv.CapeFile = val
	case "strCapeLink":
		fv.CapeLink = val
	case "strCustCapeName":
		fv.CustCapeName = val
	case "strCustCapeFile":
		fv.CustCapeFile = val
	case "strCustCapeLink":
		fv.CustCapeLink = val

	case "strPetName":
		fv.PetName = val
	case "strPetFile":
		fv.PetFile = val
	case "strPetLink":
		fv.PetLink = val
	case "strCustPetName":
		fv.CustPetName = val
	case "strCustPetFile":
		fv.CustPetFile = val
	case "strCustPetLink":
		fv.CustPetLink = val

	case "strMiscName":
		fv.MiscName = val
	case "strMiscFile":
		fv.MiscFile = val
	case "strMiscLink":
		fv.MiscLink = val

	case "strHairFile":
		fv.HairFile = val
	case "strHairName":
		fv.HairName = val

	case "intColorHair":
		fv.ColorHair = atoiDefault(val, 0)
	case "intColorSkin":
		fv.ColorSkin = atoiDefault(val, 0)
	case "intColorEye":
		fv.ColorEye = atoiDefault(val, 0)
	case "intColorTrim":
		fv.ColorTrim = atoiDefault(val, 0)
	case "intColorBase":
		fv.ColorBase = atoiDefault(val, 0)
	case "intColorAccessory":
		fv.ColorAccessory = atoiDefault(val, 0)

	case "ia1":
		fv.Visibility = atoiDefault(val, 0)

	default:
		return fmt.Errorf("%w: unrecognized flashvars key %q", ErrMalformedPage, key)
	}
	return nil
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
