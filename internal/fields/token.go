package fields

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Sep joins the alphanumeric runs of a token.
const Sep = "_"

// Normalize canonicalizes a header or alias: lower case, accents removed,
// every run of non-alphanumeric characters collapsed into Sep, no leading
// or trailing separator. Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	lower := strings.ToLower(strings.TrimSpace(s))
	folded, _, err := transform.String(t, lower)
	if err != nil {
		folded = lower
	}

	var b strings.Builder
	b.Grow(len(folded))
	pending := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && b.Len() > 0 {
				b.WriteString(Sep)
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}

// Parts splits a token into its alphanumeric runs.
func Parts(token string) []string {
	if token == "" {
		return nil
	}
	return strings.Split(token, Sep)
}
