package render

import (
	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/charpage"
	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/config"
	"go.uber.org/zap"
)

const (
	noneSentinel = "none"
	maxColor     = 0xFFFFFF

	defaultHairFile = "hair/M/Normal.swf"
	defaultHairName = "Default"
)

// Builder shapes raw page parameters into a RenderRequest. Pure data
// shaping: slots hidden by the visibility mask are still included, since
// hiding them is the renderer's job.
type Builder struct {
	assetBaseURL string
	swfSource    string
	log          *zap.Logger
}

func NewBuilder(cfg config.Renderer, log *zap.Logger) *Builder {
	return &Builder{
		assetBaseURL: cfg.AssetBaseURL,
		swfSource:    cfg.SWFSource,
		log:          log,
	}
}

// Build produces a RenderRequest for one view mode. Output is a pure
// function of (fv, view): identical inputs marshal to identical JSON.
func (b *Builder) Build(fv *charpage.FlashVars, view ViewMode) *RenderRequest {
	classSlot := slot(fv.ClassFile, fv.ClassLink, fv.ClassName)
	if view == ViewCosmetic && !isNone(fv.CustArmorFile) {
		classSlot = slot(fv.CustArmorFile, fv.CustArmorLink, fv.CustArmorName)
	}

	weapon := slot(fv.WeaponFile, fv.WeaponLink, fv.WeaponName)
	weapon.Type = fv.WeaponType

	gender := fv.Gender
	if gender != "M" && gender != "F" {
		gender = "M"
	}

	hair := Hair{File: fv.HairFile, Name: fv.HairName}
	if hair.File == "" {
		hair.File = defaultHairFile
	}
	if hair.Name == "" {
		hair.Name = defaultHairName
	}

	return &RenderRequest{
		URL:        b.assetBaseURL,
		Gender:     gender,
		Visibility: fv.Visibility,
		SWF:        b.swfSource,
		Equipment: Equipment{
			Entity: FileLink{File: fileOrNone(fv.EntityFile), Link: fv.EntityLink},
			Class:  classSlot,
			Helm:   slot(fv.HelmFile, fv.HelmLink, fv.HelmName),
			Weapon: weapon,
			Cape:   slot(fv.CapeFile, fv.CapeLink, fv.CapeName),
			Pet:    slot(fv.PetFile, fv.PetLink, fv.PetName),
			Misc:   slot(fv.MiscFile, fv.MiscLink, fv.MiscName),
		},
		Hair:           hair,
		ColorHair:      b.clampColor("intColorHair", fv.ColorHair),
		ColorSkin:      b.clampColor("intColorSkin", fv.ColorSkin),
		ColorEye:       b.clampColor("intColorEye", fv.ColorEye),
		ColorTrim:      b.clampColor("intColorTrim", fv.ColorTrim),
		ColorBase:      b.clampColor("intColorBase", fv.ColorBase),
		ColorAccessory: b.clampColor("intColorAccessory", fv.ColorAccessory),
	}
}

// slot normalizes one file/link/name triple. An empty file becomes the
// "none" sentinel, and a "none" file clears the link; the slot renders
// nothing either way.
func slot(file, link, name string) EquipmentSlot {
	file = fileOrNone(file)
	if file == noneSentinel {
		link = ""
	}
	return EquipmentSlot{File: file, Link: link, Name: name}
}

func fileOrNone(file string) string {
	if file == "" {
		return noneSentinel
	}
	return file
}

func isNone(file string) bool {
	return file == "" || file == noneSentinel
}

// clampColor forces a color channel into 24-bit range. Out-of-range values
// are a data-quality problem, not a hard failure: upstream data is not fully
// trustworthy, so the condition is logged and the value clamped.
func (b *Builder) clampColor(field string, v int) int {
	if v >= 0 && v <= maxColor {
		return v
	}
	clamped := v
	if clamped < 0 {
		clamped = 0
	} else {
		clamped = maxColor
	}
	b.log.Warn("color channel out of 24-bit range, clamped",
		zap.String("field", field),
		zap.Int("value", v),
		zap.Int("clamped", clamped),
	)
	return clamped
}
