package tools

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"

	apperrors "aiotoolsuite/backend/pkg/errors"
)

// scrypt parameters for interactive use; changing them breaks existing envelopes
const (
	scryptN      = 32768
	scryptR      = 8
	scryptP      = 1
	encKeyLen    = 32
	encSaltLen   = 16
	envelopeVers = "v1"
)

// TextEncryptorInput is the argument object of the text-encryptor tool
type TextEncryptorInput struct {
	Text       string `json:"text"`
	Passphrase string `json:"passphrase"`
	Mode       string `json:"mode"` // encrypt or decrypt
}

// TextEncryptorOutput is the envelope or the recovered plaintext
type TextEncryptorOutput struct {
	Result    string `json:"result"`
	Mode      string `json:"mode"`
	Algorithm string `json:"algorithm"`
}

// TextEncryptorLoader returns the loader registered for text-encryptor
func TextEncryptorLoader() Loader {
	return Static(Typed(EncryptText))
}

// EncryptText encrypts with AES-256-GCM under a scrypt-derived key. The envelope
// is "v1." followed by base64url(salt | nonce | ciphertext).
func EncryptText(_ context.Context, in TextEncryptorInput) (TextEncryptorOutput, error) {
	if in.Passphrase == "" {
		return TextEncryptorOutput{}, apperrors.NewInvalidInput("passphrase", "is required")
	}

	switch strings.ToLower(in.Mode) {
	case "", "encrypt":
		env, err := sealEnvelope(in.Text, in.Passphrase)
		if err != nil {
			return TextEncryptorOutput{}, apperrors.NewToolExecutionFailed("text-encryptor", "encrypt", err)
		}
		return TextEncryptorOutput{Result: env, Mode: "encrypt", Algorithm: "AES-256-GCM/scrypt"}, nil
	case "decrypt":
		plain, err := openEnvelope(in.Text, in.Passphrase)
		if err != nil {
			return TextEncryptorOutput{}, err
		}
		return TextEncryptorOutput{Result: plain, Mode: "decrypt", Algorithm: "AES-256-GCM/scrypt"}, nil
	default:
		return TextEncryptorOutput{}, apperrors.NewInvalidInput("mode", "must be encrypt or decrypt")
	}
}

func newGCM(passphrase string, salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key([]byte(passphrase), salt, scryptN, scryptR, scryptP, encKeyLen)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func sealEnvelope(plaintext, passphrase string) (string, error) {
	salt := make([]byte, encSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	gcm, err := newGCM(passphrase, salt)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	payload := make([]byte, 0, len(salt)+len(nonce)+len(plaintext)+gcm.Overhead())
	payload = append(payload, salt...)
	payload = append(payload, nonce...)
	payload = gcm.Seal(payload, nonce, []byte(plaintext), nil)
	return envelopeVers + "." + base64.RawURLEncoding.EncodeToString(payload), nil
}

func openEnvelope(envelope, passphrase string) (string, error) {
	malformed := apperrors.NewInvalidInput("text", "is not a text-encryptor envelope")

	version, body, ok := strings.Cut(strings.TrimSpace(envelope), ".")
	if !ok || version != envelopeVers {
		return "", malformed
	}
	payload, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil || len(payload) < encSaltLen {
		return "", malformed
	}

	salt := payload[:encSaltLen]
	gcm, err := newGCM(passphrase, salt)
	if err != nil {
		return "", apperrors.NewToolExecutionFailed("text-encryptor", "decrypt", err)
	}
	rest := payload[encSaltLen:]
	if len(rest) < gcm.NonceSize()+gcm.Overhead() {
		return "", malformed
	}
	nonce, ct := rest[:gcm.NonceSize()], rest[gcm.NonceSize():]

	plain, err := gcm.Open(nil, nonce, ct, nil)
	if err != nil {
		return "", apperrors.NewInvalidInput("passphrase", "wrong passphrase or corrupted data")
	}
	return string(plain), nil
}
