package config

import "github.com/Gaurav-Gosain/tuiseum/internal/museum"

// UseASCIIOnly controls whether to use ASCII fallback characters instead of Nerd Fonts
// Set via --ascii-only flag or appearance.ascii_only config
var UseASCIIOnly = false

// Nerd Font glyphs, all from the Font Awesome range.
const (
	IconInstitution = "\uf19c"
	IconPaintBrush  = "\uf1fc"
	IconGraduation  = "\uf19d"
	IconImage       = "\uf03e"
	IconTag         = "\uf02b"
	IconSpinner     = "\uf110"
	IconGlobe       = "\uf0ac"
	IconCube        = "\uf1b2"
	IconLink        = "\uf08e"
)

var collectionIcons = map[museum.CollectionID]string{
	museum.ArtInstituteID: IconInstitution,
	museum.MetDesignID:    IconPaintBrush,
	museum.HarvardID:      IconGraduation,
	museum.ClevelandID:    IconImage,
}

var detailIcons = map[string]string{
	"Medium":     IconPaintBrush,
	"Type":       IconCube,
	"Culture":    IconGlobe,
	"Department": IconInstitution,
	"Source":     IconLink,
}

// GetCollectionIcon returns the collection's icon and a trailing space, or
// nothing in ASCII mode.
func GetCollectionIcon(id museum.CollectionID) string {
	icon, ok := collectionIcons[id]
	if UseASCIIOnly || !ok {
		return ""
	}
	return icon + " "
}

// GetFilterPrefix returns the marker shown before the active tag filter.
func GetFilterPrefix() string {
	if UseASCIIOnly {
		return "#"
	}
	return IconTag + " "
}

// GetLoadingIcon returns the marker shown while a collection loads.
func GetLoadingIcon() string {
	if UseASCIIOnly {
		return ""
	}
	return IconSpinner + " "
}

// GetDetailLabel prefixes a detail view field label with its icon.
func GetDetailLabel(label string) string {
	icon, ok := detailIcons[label]
	if UseASCIIOnly || !ok {
		return label
	}
	return icon + " " + label
}
