package infrastructure

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CaseTarget is a naming convention the CaseConverter can produce.
type CaseTarget string

// Supported case targets.
const (
	CaseSnake  CaseTarget = "snake"
	CaseKebab  CaseTarget = "kebab"
	CaseCamel  CaseTarget = "camel"
	CasePascal CaseTarget = "pascal"
)

// CaseTargets lists the supported targets in their documented order.
var CaseTargets = []string{string(CaseSnake), string(CaseKebab), string(CaseCamel), string(CasePascal)}

// CaseConverter rewrites phrases and identifiers into a naming convention.
type CaseConverter struct{}

// NewCaseConverter creates a new CaseConverter.
func NewCaseConverter() *CaseConverter {
	return &CaseConverter{}
}

// Convert splits text into words and joins them using target.
// Unknown targets return the lower-cased words joined by underscores.
func (c *CaseConverter) Convert(text string, target CaseTarget) string {
	// Casers keep state between calls, so each conversion gets its own.
	lower := cases.Lower(language.Und)
	title := cases.Title(language.Und)

	words := SplitWords(text)
	for i, w := range words {
		words[i] = lower.String(w)
	}

	switch target {
	case CaseKebab:
		return strings.Join(words, "-")
	case CaseCamel:
		for i := 1; i < len(words); i++ {
			words[i] = title.String(words[i])
		}
		return strings.Join(words, "")
	case CasePascal:
		for i := range words {
			words[i] = title.String(words[i])
		}
		return strings.Join(words, "")
	default:
		return strings.Join(words, "_")
	}
}

// SplitWords breaks text on separators, on lower-to-upper transitions and
// before the last capital of an acronym followed by lower case ("HTTPServer"
// gives "HTTP", "Server"). Combining marks, such as Thai vowel and tone marks
// or decomposed accents, belong to the word they follow.
func SplitWords(text string) []string {
	var (
		words   []string
		current []rune
	)
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}

	runes := []rune(text)
	for i, r := range runes {
		if unicode.Is(unicode.Mark, r) {
			current = append(current, r)
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(current) > 0 {
			prev := lastBase(current)
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		current = append(current, r)
	}
	flush()
	return words
}

// lastBase returns the last rune of word that is not a combining mark.
func lastBase(word []rune) rune {
	for i := len(word) - 1; i >= 0; i-- {
		if !unicode.Is(unicode.Mark, word[i]) {
			return word[i]
		}
	}
	return 0
}
