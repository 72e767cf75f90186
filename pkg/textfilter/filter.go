package textfilter

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Generated advice is shown to kids, so anything a provider lets slip is
// swapped for a gentler word. Severe words collapse to "[oops]".
var replacements = map[string]string{
	"hell":      "heck",
	"damn":      "dang",
	"goddamn":   "gosh-dang",
	"crap":      "crud",
	"shit":      "shoot",
	"bullshit":  "baloney",
	"fuck":      "fudge",
	"ass":       "butt",
	"asshole":   "meanie",
	"dumbass":   "dummy",
	"bastard":   "meanie",
	"bitch":     "meanie",
	"piss":      "annoy",
	"pissed":    "upset",
	"stupid":    "silly",
	"idiot":     "goof",
	"dick":      "[oops]",
	"cock":      "[oops]",
	"whore":     "[oops]",
	"slut":      "[oops]",
	"retard":    "[oops]",
	"retarded":  "[oops]",
	"douchebag": "[oops]",
}

// ProfanityFilter rewrites text into kid-safe wording.
type ProfanityFilter struct {
	pattern *regexp.Regexp
	title   cases.Caser
}

// NewProfanityFilter compiles the word list into a single pattern. Longer
// words come first so "asshole" wins over "ass". A trailing "s" or "es" is
// allowed so plurals are caught too.
func NewProfanityFilter() *ProfanityFilter {
	words := make([]string, 0, len(replacements))
	for w := range replacements {
		words = append(words, regexp.QuoteMeta(w))
	}
	sort.Slice(words, func(i, j int) bool {
		if len(words[i]) != len(words[j]) {
			return len(words[i]) > len(words[j])
		}
		return words[i] < words[j]
	})

	return &ProfanityFilter{
		pattern: regexp.MustCompile(`(?i)\b(` + strings.Join(words, "|") + `)(e?s)?\b`),
		title:   cases.Title(language.English),
	}
}

// FilterText replaces every listed word, keeping the original casing.
func (pf *ProfanityFilter) FilterText(text string) string {
	return pf.pattern.ReplaceAllStringFunc(text, func(match string) string {
		sub := pf.pattern.FindStringSubmatch(match)
		word, suffix := sub[1], sub[2]

		replacement := replacements[strings.ToLower(word)]
		if strings.HasPrefix(replacement, "[") {
			return replacement
		}
		return pf.preserveCase(word, replacement) + suffix
	})
}

// ContainsProfanity reports whether FilterText would change text.
func (pf *ProfanityFilter) ContainsProfanity(text string) bool {
	return pf.pattern.MatchString(text)
}

// preserveCase applies the case pattern of the original word to the replacement
func (pf *ProfanityFilter) preserveCase(original, replacement string) string {
	switch {
	case original == "":
		return replacement
	case strings.ToUpper(original) == original:
		return strings.ToUpper(replacement)
	case strings.ToLower(original) == original:
		return strings.ToLower(replacement)
	case pf.title.String(strings.ToLower(original)) == original:
		return pf.title.String(replacement)
	}

	// Mixed case: copy case rune by rune, lowercase past the end of original
	orig := []rune(original)
	out := []rune(replacement)
	for i, r := range out {
		if i < len(orig) && unicode.IsUpper(orig[i]) {
			out[i] = unicode.ToUpper(r)
		} else {
			out[i] = unicode.ToLower(r)
		}
	}
	return string(out)
}
