package tools

import (
	"context"
	"strings"
	"unicode"

	apperrors "aiotoolsuite/backend/pkg/errors"
)

// Case types understood by the case converter
const (
	CaseUpper       = "upper"
	CaseLower       = "lower"
	CaseTitle       = "title"
	CaseSentence    = "sentence"
	CaseCamel       = "camel"
	CasePascal      = "pascal"
	CaseSnake       = "snake"
	CaseKebab       = "kebab"
	CaseConstant    = "constant"
	CaseAlternating = "alternating"
	CaseInverse     = "inverse"
)

// CaseConverterInput is the argument object of the case-converter tool
type CaseConverterInput struct {
	Text     string `json:"text"`
	CaseType string `json:"caseType"`
}

// CaseConverterOutput is the result of the case-converter tool
type CaseConverterOutput struct {
	Result   string `json:"result"`
	CaseType string `json:"caseType"`
}

// CaseConverter rewrites text into one of the supported letter cases
type CaseConverter struct{}

// NewCaseConverter creates a new case converter
func NewCaseConverter() *CaseConverter {
	return &CaseConverter{}
}

// CaseConverterLoader returns the loader registered for case-converter
func CaseConverterLoader() Loader {
	return func(context.Context) (*Module, error) {
		return &Module{Run: Typed(NewCaseConverter().Run)}, nil
	}
}

// Run converts in.Text to in.CaseType
func (c *CaseConverter) Run(_ context.Context, in CaseConverterInput) (CaseConverterOutput, error) {
	caseType := strings.ToLower(strings.TrimSpace(in.CaseType))
	if caseType == "" {
		return CaseConverterOutput{}, apperrors.NewInvalidInput("caseType", "is required")
	}

	var result string
	switch caseType {
	case CaseUpper:
		result = strings.ToUpper(in.Text)
	case CaseLower:
		result = strings.ToLower(in.Text)
	case CaseTitle:
		result = toTitleCase(in.Text)
	case CaseSentence:
		result = toSentenceCase(in.Text)
	case CaseCamel:
		result = joinWords(splitWords(in.Text), false)
	case CasePascal:
		result = joinWords(splitWords(in.Text), true)
	case CaseSnake:
		result = strings.ToLower(strings.Join(splitWords(in.Text), "_"))
	case CaseKebab:
		result = strings.ToLower(strings.Join(splitWords(in.Text), "-"))
	case CaseConstant:
		result = strings.ToUpper(strings.Join(splitWords(in.Text), "_"))
	case CaseAlternating:
		result = toAlternatingCase(in.Text)
	case CaseInverse:
		result = toInverseCase(in.Text)
	default:
		return CaseConverterOutput{}, apperrors.NewInvalidInput("caseType", "unsupported case type '"+in.CaseType+"'")
	}

	return CaseConverterOutput{Result: result, CaseType: caseType}, nil
}

// toTitleCase upper-cases the first letter of every whitespace-separated word
func toTitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	atWordStart := true
	for _, r := range s {
		if unicode.IsSpace(r) {
			atWordStart = true
			b.WriteRune(r)
			continue
		}
		if atWordStart {
			b.WriteRune(unicode.ToUpper(r))
			atWordStart = false
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// toSentenceCase lower-cases everything and capitalizes the first letter of each sentence
func toSentenceCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	capitalize := true
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) && capitalize:
			b.WriteRune(unicode.ToUpper(r))
			capitalize = false
		case unicode.IsLetter(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
			if r == '.' || r == '!' || r == '?' {
				capitalize = true
			}
		}
	}
	return b.String()
}

func toAlternatingCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	upper := false
	for _, r := range s {
		if !unicode.IsLetter(r) {
			b.WriteRune(r)
			continue
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
		upper = !upper
	}
	return b.String()
}

func toInverseCase(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsUpper(r):
			return unicode.ToLower(r)
		case unicode.IsLower(r):
			return unicode.ToUpper(r)
		}
		return r
	}, s)
}

// splitWords breaks text into words on separators and on lower-to-upper boundaries,
// so "helloWorld", "hello_world" and "Hello World" all yield [hello World]-style tokens.
func splitWords(s string) []string {
	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(current) > 0 {
			prev := runes[i-1]
			nextIsLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			// "fooBar" splits before B; "HTTPServer" splits before S
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextIsLower) {
				flush()
			}
		}
		current = append(current, r)
	}
	flush()
	return words
}

func joinWords(words []string, pascal bool) string {
	var b strings.Builder
	for i, w := range words {
		lower := strings.ToLower(w)
		if i == 0 && !pascal {
			b.WriteString(lower)
			continue
		}
		rs := []rune(lower)
		rs[0] = unicode.ToUpper(rs[0])
		b.WriteString(string(rs))
	}
	return b.String()
}
