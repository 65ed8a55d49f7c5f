package tools

import (
	"context"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"hash"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "aiotoolsuite/backend/pkg/errors"
)

// HashGeneratorInput is the argument object of the hash-generator tool
type HashGeneratorInput struct {
	Text      string `json:"text"`
	Algorithm string `json:"algorithm"` // md5, sha1, sha256, sha512 or bcrypt; empty means all digests
	Cost      int    `json:"cost"`      // bcrypt only
	CompareTo string `json:"compareTo"` // optional hash to verify against
}

// HashGeneratorOutput maps algorithm names to hashes
type HashGeneratorOutput struct {
	Hashes  map[string]string `json:"hashes"`
	Matches *bool             `json:"matches,omitempty"`
}

var digests = map[string]func() hash.Hash{
	"md5":    md5.New,
	"sha1":   sha1.New,
	"sha256": sha256.New,
	"sha512": sha512.New,
}

// HashGeneratorLoader returns the loader registered for hash-generator
func HashGeneratorLoader() Loader {
	return Static(Typed(GenerateHash))
}

// GenerateHash hashes text with one algorithm, or with every digest when none is named
func GenerateHash(_ context.Context, in HashGeneratorInput) (HashGeneratorOutput, error) {
	algo := strings.ToLower(strings.TrimSpace(in.Algorithm))
	out := HashGeneratorOutput{Hashes: make(map[string]string)}

	switch {
	case algo == "":
		for name, newHash := range digests {
			out.Hashes[name] = digest(newHash, in.Text)
		}
	case algo == "bcrypt":
		if in.CompareTo != "" {
			ok := bcrypt.CompareHashAndPassword([]byte(in.CompareTo), []byte(in.Text)) == nil
			out.Matches = &ok
			return out, nil
		}
		cost := in.Cost
		if cost == 0 {
			cost = bcrypt.DefaultCost
		}
		if cost < bcrypt.MinCost || cost > 14 {
			return HashGeneratorOutput{}, apperrors.NewInvalidInput("cost", "must be between 4 and 14")
		}
		h, err := bcrypt.GenerateFromPassword([]byte(in.Text), cost)
		if err != nil {
			// bcrypt rejects inputs longer than 72 bytes
			return HashGeneratorOutput{}, apperrors.NewInvalidInput("text", err.Error())
		}
		out.Hashes["bcrypt"] = string(h)
		return out, nil
	default:
		newHash, ok := digests[algo]
		if !ok {
			return HashGeneratorOutput{}, apperrors.NewInvalidInput("algorithm", "must be md5, sha1, sha256, sha512 or bcrypt")
		}
		out.Hashes[algo] = digest(newHash, in.Text)
	}

	if in.CompareTo != "" {
		want := strings.ToLower(strings.TrimSpace(in.CompareTo))
		ok := false
		for _, got := range out.Hashes {
			if subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1 {
				ok = true
			}
		}
		out.Matches = &ok
	}
	return out, nil
}

func digest(newHash func() hash.Hash, text string) string {
	h := newHash()
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}
