package tools

import (
	"context"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	apperrors "aiotoolsuite/backend/pkg/errors"
)

// SlugGeneratorInput is the argument object of the slug-generator tool
type SlugGeneratorInput struct {
	Text      string `json:"text"`
	Separator string `json:"separator"`
	MaxLength int    `json:"maxLength"`
}

// SlugGeneratorOutput is the result of the slug-generator tool
type SlugGeneratorOutput struct {
	Slug string `json:"slug"`
}

// SlugGeneratorLoader returns the loader registered for slug-generator
func SlugGeneratorLoader() Loader {
	return Static(Typed(GenerateSlug))
}

// GenerateSlug folds accents, lower-cases and joins alphanumeric runs with the separator
func GenerateSlug(_ context.Context, in SlugGeneratorInput) (SlugGeneratorOutput, error) {
	sep := in.Separator
	if sep == "" {
		sep = "-"
	}
	if sep != "-" && sep != "_" && sep != "." {
		return SlugGeneratorOutput{}, apperrors.NewInvalidInput("separator", "must be one of - _ .")
	}
	if in.MaxLength < 0 {
		return SlugGeneratorOutput{}, apperrors.NewInvalidInput("maxLength", "must not be negative")
	}

	slug := Slugify(in.Text, sep)
	if in.MaxLength > 0 && len(slug) > in.MaxLength {
		slug = strings.TrimRight(slug[:in.MaxLength], sep)
	}
	return SlugGeneratorOutput{Slug: slug}, nil
}

// Slugify is the separator-parameterised core of the slug generator
func Slugify(text, sep string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), text)
	if err != nil {
		folded = text
	}

	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(folded) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingSep && b.Len() > 0 {
				b.WriteString(sep)
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}
