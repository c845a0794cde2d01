package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// asciiFold maps Turkish letters to their ASCII slugs counterparts.
var asciiFold = strings.NewReplacer(
	"ç", "c",
	"ğ", "g",
	"ı", "i",
	"ö", "o",
	"ş", "s",
	"ü", "u",
)

// Slugify derives a URL-safe slug from a Turkish unit name. Lowercasing
// uses Turkish casing rules so dotted/dotless I fold correctly
// ("İşlemler" becomes "islemler", not "i̇şlemler").
func Slugify(name string) string {
	lower := cases.Lower(language.Turkish).String(name)
	lower = asciiFold.Replace(lower)

	var b strings.Builder
	b.Grow(len(lower))
	lastDash := true // suppress a leading dash
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
