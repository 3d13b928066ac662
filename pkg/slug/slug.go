package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugRegexp = regexp.MustCompile(`[^a-z0-9]+`)

// Letters that carry no combining mark under NFD and need an explicit mapping.
var foldReplacer = strings.NewReplacer("ı", "i", "ø", "o", "ß", "ss", "æ", "ae", "œ", "oe", "ł", "l")

// Generate creates a URL-friendly slug from the given name.
//
// Examples:
//   - "Home Decoration" → "home-decoration"
//   - "Women's Dresses" → "women-s-dresses"
//   - "Crème Brûlée" → "creme-brulee"
func Generate(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))

	// Strip diacritics: decompose, drop combining marks, recompose.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, slug); err == nil {
		slug = folded
	}
	slug = foldReplacer.Replace(slug)

	// Replace any run of non-alphanumeric characters with a single hyphen
	slug = slugRegexp.ReplaceAllString(slug, "-")

	return strings.Trim(slug, "-")
}

// Humanize turns a slug back into a display label: "home-decoration" → "Home Decoration".
func Humanize(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
