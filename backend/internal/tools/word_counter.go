package tools

import (
	"context"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

const wordsPerMinute = 200

// WordCounterInput is the argument object of the word-counter tool
type WordCounterInput struct {
	Text string `json:"text"`
}

// WordCounterOutput holds text statistics
type WordCounterOutput struct {
	Words              int     `json:"words"`
	Characters         int     `json:"characters"`
	CharactersNoSpaces int     `json:"charactersNoSpaces"`
	Sentences          int     `json:"sentences"`
	Paragraphs         int     `json:"paragraphs"`
	ReadingTimeSeconds int     `json:"readingTimeSeconds"`
	AverageWordLength  float64 `json:"averageWordLength"`
}

// WordCounterLoader returns the loader registered for word-counter
func WordCounterLoader() Loader {
	return Static(Typed(CountWords))
}

// CountWords computes word, character, sentence and paragraph counts
func CountWords(_ context.Context, in WordCounterInput) (WordCounterOutput, error) {
	text := in.Text
	words := strings.Fields(text)

	out := WordCounterOutput{
		Words:      len(words),
		Characters: utf8.RuneCountInString(text),
	}

	letters := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			out.CharactersNoSpaces++
		}
	}
	for _, w := range words {
		letters += utf8.RuneCountInString(strings.TrimFunc(w, unicode.IsPunct))
	}
	if len(words) > 0 {
		out.AverageWordLength = math.Round(float64(letters)/float64(len(words))*100) / 100
	}

	out.Sentences = countSentences(text)
	out.Paragraphs = countParagraphs(text)
	out.ReadingTimeSeconds = int(math.Ceil(float64(len(words)) / wordsPerMinute * 60))

	return out, nil
}

// countSentences counts runs of text terminated by . ! or ?; trailing text without
// a terminator still counts as a sentence.
func countSentences(text string) int {
	count := 0
	inSentence := false
	for _, r := range text {
		switch {
		case r == '.' || r == '!' || r == '?':
			if inSentence {
				count++
				inSentence = false
			}
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			inSentence = true
		}
	}
	if inSentence {
		count++
	}
	return count
}

func countParagraphs(text string) int {
	count := 0
	for _, block := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		if strings.TrimSpace(block) != "" {
			count++
		}
	}
	return count
}
