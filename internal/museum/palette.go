package museum

import "strings"

// artPalette is used for fine art collections.
var artPalette = []string{
	"#00D632", "#00FF87", "#00A3FF", "#0066FF", "#8B5CF6", "#A855F7",
	"#EC4899", "#FF006E", "#F59E0B", "#FF5C00", "#EF4444", "#FF0040",
	"#10B981", "#00F5A0", "#14B8A6", "#06B6D4", "#6366F1", "#4F46E5",
	"#F97316", "#FBBF24",
}

// designPalette leans on primaries and monochrome.
var designPalette = []string{
	"#FF0000", "#0000FF", "#FFFF00",
	"#000000", "#FFFFFF", "#808080",
	"#FF6B35", "#004E89", "#F7B267",
	"#00D1FF", "#FF006E", "#FFBE0B",
	"#2EC4B6", "#E71D36", "#FF9F1C",
}

func paletteFor(source string) []string {
	if strings.Contains(strings.ToLower(source), "design") || strings.Contains(source, "Metropolitan") {
		return designPalette
	}
	return artPalette
}
