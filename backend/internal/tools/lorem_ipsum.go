package tools

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"

	apperrors "aiotoolsuite/backend/pkg/errors"
)

const (
	loremMaxCount        = 100
	loremOpening         = "Lorem ipsum dolor sit amet, consectetur adipiscing elit"
	loremSentencesPerPar = 5
)

var loremWords = strings.Fields(`lorem ipsum dolor sit amet consectetur adipiscing elit sed do
eiusmod tempor incididunt ut labore et dolore magna aliqua enim ad minim veniam quis nostrud
exercitation ullamco laboris nisi aliquip ex ea commodo consequat duis aute irure in
reprehenderit voluptate velit esse cillum fugiat nulla pariatur excepteur sint occaecat
cupidatat non proident sunt culpa qui officia deserunt mollit anim id est laborum`)

// LoremIpsumInput is the argument object of the lorem-ipsum tool
type LoremIpsumInput struct {
	Count          int    `json:"count"`
	Unit           string `json:"unit"` // paragraphs, sentences or words
	StartWithLorem *bool  `json:"startWithLorem"`
}

// LoremIpsumOutput is the generated placeholder text
type LoremIpsumOutput struct {
	Text string `json:"text"`
}

// LoremIpsum generates placeholder text from a fixed vocabulary
type LoremIpsum struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewLoremIpsum creates a generator; seed makes output reproducible
func NewLoremIpsum(seed uint64) *LoremIpsum {
	return &LoremIpsum{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// LoremIpsumLoader returns the loader registered for lorem-ipsum
func LoremIpsumLoader() Loader {
	return func(context.Context) (*Module, error) {
		return &Module{Run: Typed(NewLoremIpsum(rand.Uint64()).Run)}, nil
	}
}

// Run produces in.Count units of text
func (l *LoremIpsum) Run(_ context.Context, in LoremIpsumInput) (LoremIpsumOutput, error) {
	count := in.Count
	if count == 0 {
		count = 3
	}
	if count < 0 || count > loremMaxCount {
		return LoremIpsumOutput{}, apperrors.NewInvalidInput("count", "must be between 1 and 100")
	}
	startWithLorem := in.StartWithLorem == nil || *in.StartWithLorem

	l.mu.Lock()
	defer l.mu.Unlock()

	var text string
	switch strings.ToLower(in.Unit) {
	case "", "paragraphs":
		pars := make([]string, count)
		for i := range pars {
			pars[i] = l.paragraph(i == 0 && startWithLorem)
		}
		text = strings.Join(pars, "\n\n")
	case "sentences":
		sentences := make([]string, count)
		for i := range sentences {
			sentences[i] = l.sentence(i == 0 && startWithLorem)
		}
		text = strings.Join(sentences, " ")
	case "words":
		words := make([]string, count)
		for i := range words {
			words[i] = loremWords[l.rnd.IntN(len(loremWords))]
		}
		if startWithLorem {
			opening := strings.Fields(strings.ToLower(strings.ReplaceAll(loremOpening, ",", "")))
			copy(words, opening)
		}
		text = strings.Join(words, " ")
	default:
		return LoremIpsumOutput{}, apperrors.NewInvalidInput("unit", "must be paragraphs, sentences or words")
	}

	return LoremIpsumOutput{Text: text}, nil
}

func (l *LoremIpsum) paragraph(opening bool) string {
	sentences := make([]string, loremSentencesPerPar)
	for i := range sentences {
		sentences[i] = l.sentence(opening && i == 0)
	}
	return strings.Join(sentences, " ")
}

func (l *LoremIpsum) sentence(opening bool) string {
	if opening {
		return loremOpening + "."
	}
	n := 6 + l.rnd.IntN(9)
	words := make([]string, n)
	for i := range words {
		words[i] = loremWords[l.rnd.IntN(len(loremWords))]
	}
	words[0] = strings.ToUpper(words[0][:1]) + words[0][1:]
	return strings.Join(words, " ") + "."
}
