package render

// ViewMode selects which raw field feeds the class/armor slot.
type ViewMode string

const (
	ViewEquipped ViewMode = "equipped"
	ViewCosmetic ViewMode = "cosmetic"
)

// Format is the output image format requested by the caller.
type Format string

const (
	FormatPNG Format = "png"
	FormatGIF Format = "gif"
)

// Ext returns the file extension for the format.
func (f Format) Ext() string { return string(f) }

// FileLink is an asset filename plus the symbol name within it. File "none"
// means the slot renders nothing regardless of Link.
type FileLink struct {
	File string `json:"File"`
	Link string `json:"Link"`
}

// EquipmentSlot is one visual equipment slot as the render service expects
// it. Type is populated for the weapon slot only.
type EquipmentSlot struct {
	File string `json:"File"`
	Link string `json:"Link"`
	Name string `json:"Name"`
	Type string `json:"Type,omitempty"`
}

// Equipment holds all slots keyed by the render service's slot names.
type Equipment struct {
	Entity FileLink      `json:"en"`
	Class  EquipmentSlot `json:"co"`
	Helm   EquipmentSlot `json:"he"`
	Weapon EquipmentSlot `json:"Weapon"`
	Cape   EquipmentSlot `json:"ba"`
	Pet    EquipmentSlot `json:"pe"`
	Misc   EquipmentSlot `json:"mi"`
}

// Hair is the hair slot: asset file plus style name.
type Hair struct {
	File string `json:"File"`
	Name string `json:"Name"`
}

// RenderRequest is the normalized structure sent to the render service as
// the "data" member of the request envelope. Built fresh per render call.
type RenderRequest struct {
	URL        string    `json:"url"`
	Gender     string    `json:"gender"` // "M" or "F"
	Visibility int       `json:"ia1"`    // achievement-visibility bitmask
	SWF        string    `json:"swf"`
	Equipment  Equipment `json:"equipment"`
	Hair       Hair      `json:"hair"`

	ColorHair      int `json:"intColorHair"`
	ColorSkin      int `json:"intColorSkin"`
	ColorEye       int `json:"intColorEye"`
	ColorTrim      int `json:"intColorTrim"`
	ColorBase      int `json:"intColorBase"`
	ColorAccessory int `json:"intColorAccessory"`
}

// VisibilityFlags is the decoded ia1 bitmask. The renderer, not the model
// builder, is responsible for hiding slots; decoding lives here so the two
// concerns stay independently testable.
type VisibilityFlags struct {
	HideCape bool // bit 0
	HideHelm bool // bit 1
	HidePet  bool // bit 2
}

// DecodeVisibility decodes the three low bits of the mask. Higher bits are
// reserved and ignored.
func DecodeVisibility(mask int) VisibilityFlags {
	return VisibilityFlags{
		HideCape: mask&0x1 != 0,
		HideHelm: mask&0x2 != 0,
		HidePet:  mask&0x4 != 0,
	}
}

// Hidden lists the slot names the renderer will suppress for this mask.
func (v VisibilityFlags) Hidden() []string {
	var slots []string
	if v.HideCape {
		slots = append(slots, "cape")
	}
	if v.HideHelm {
		slots = append(slots, "helm")
	}
	if v.HidePet {
		slots = append(slots, "pet")
	}
	return slots
}
