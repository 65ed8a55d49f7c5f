package tools

import (
	"context"
	"crypto/rand"
	"math"
	"math/big"
	"strings"

	apperrors "aiotoolsuite/backend/pkg/errors"
)

const (
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars   = "0123456789"
	symbolChars  = "!@#$%^&*()-_=+[]{};:,.<>?"
	similarChars = "il1Lo0O"
)

// PasswordGeneratorInput is the argument object of the password-generator tool.
// Class switches default to true when omitted.
type PasswordGeneratorInput struct {
	Length         int   `json:"length"`
	Count          int   `json:"count"`
	Lowercase      *bool `json:"lowercase"`
	Uppercase      *bool `json:"uppercase"`
	Numbers        *bool `json:"numbers"`
	Symbols        *bool `json:"symbols"`
	ExcludeSimilar bool  `json:"excludeSimilar"`
}

// PasswordGeneratorOutput lists the generated passwords and their strength
type PasswordGeneratorOutput struct {
	Passwords   []string `json:"passwords"`
	EntropyBits float64  `json:"entropyBits"`
	Strength    string   `json:"strength"`
}

// PasswordGeneratorLoader returns the loader registered for password-generator
func PasswordGeneratorLoader() Loader {
	return Static(Typed(GeneratePasswords))
}

// GeneratePasswords draws passwords from crypto/rand. Every password contains at
// least one character of each enabled class.
func GeneratePasswords(_ context.Context, in PasswordGeneratorInput) (PasswordGeneratorOutput, error) {
	length := in.Length
	if length == 0 {
		length = 16
	}
	if length < 4 || length > 256 {
		return PasswordGeneratorOutput{}, apperrors.NewInvalidInput("length", "must be between 4 and 256")
	}
	count := in.Count
	if count == 0 {
		count = 1
	}
	if count < 1 || count > 50 {
		return PasswordGeneratorOutput{}, apperrors.NewInvalidInput("count", "must be between 1 and 50")
	}

	var classes []string
	for _, c := range []struct {
		on  *bool
		set string
	}{
		{in.Lowercase, lowerChars},
		{in.Uppercase, upperChars},
		{in.Numbers, digitChars},
		{in.Symbols, symbolChars},
	} {
		if c.on != nil && !*c.on {
			continue
		}
		set := c.set
		if in.ExcludeSimilar {
			set = strings.Map(func(r rune) rune {
				if strings.ContainsRune(similarChars, r) {
					return -1
				}
				return r
			}, set)
		}
		classes = append(classes, set)
	}
	if len(classes) == 0 {
		return PasswordGeneratorOutput{}, apperrors.NewInvalidInput("", "at least one character class must be enabled")
	}
	alphabet := strings.Join(classes, "")

	out := PasswordGeneratorOutput{Passwords: make([]string, 0, count)}
	for range count {
		pw, err := generatePassword(length, classes, alphabet)
		if err != nil {
			return PasswordGeneratorOutput{}, apperrors.NewToolExecutionFailed("password-generator", "random source", err)
		}
		out.Passwords = append(out.Passwords, pw)
	}
	out.EntropyBits = math.Round(float64(length)*math.Log2(float64(len(alphabet)))*100) / 100
	out.Strength = strengthLabel(out.EntropyBits)
	return out, nil
}

func generatePassword(length int, classes []string, alphabet string) (string, error) {
	buf := make([]byte, 0, length)
	for _, set := range classes {
		c, err := randomChar(set)
		if err != nil {
			return "", err
		}
		buf = append(buf, c)
	}
	for len(buf) < length {
		c, err := randomChar(alphabet)
		if err != nil {
			return "", err
		}
		buf = append(buf, c)
	}
	// Fisher-Yates so the guaranteed characters are not always first
	for i := len(buf) - 1; i > 0; i-- {
		j, err := randomInt(i + 1)
		if err != nil {
			return "", err
		}
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf), nil
}

func randomChar(set string) (byte, error) {
	i, err := randomInt(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

func randomInt(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

func strengthLabel(bits float64) string {
	switch {
	case bits < 40:
		return "weak"
	case bits < 60:
		return "fair"
	case bits < 80:
		return "strong"
	default:
		return "very strong"
	}
}
