package catalog

// FallbackIcon is shown for categories without an entry in the icon table.
const FallbackIcon = "◆"

var categoryIcons = map[string]string{
	"css":       "✦",
	"svg":       "◇",
	"text":      "¶",
	"color":     "●",
	"cards":     "▭",
	"schema":    "{}",
	"encoding":  "⇄",
	"image":     "▣",
	"generator": "⚙",
	"developer": "</>",
}

// Icon maps a category id to its display glyph.
func Icon(categoryID string) string {
	if icon, ok := categoryIcons[categoryID]; ok {
		return icon
	}
	return FallbackIcon
}
