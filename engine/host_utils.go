package engine

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cast"
	"golang.org/x/crypto/nacl/secretbox"
)

// HostUtils is the "host utility surface" for date/time parsing and EncryptedText's
// encryption (the link and phone format checks live in helpers.go). It is an external
// collaborator boundary the same way Metadata and the Adapter kinds are (spec.md §6),
// but small and stable enough that the engine ships a usable default implementation
// rather than leaving callers to supply one for every test.
type HostUtils interface {
	ParseDateTime(v interface{}) (time.Time, error)
	ParseDate(v interface{}) (time.Time, error)
	ParseTime(v interface{}) (time.Time, error)
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// DefaultHostUtils is the HostUtils every field constructor installs in the field's
// Utils; Database has no option to supply a different one.
var DefaultHostUtils HostUtils = newDefaultHostUtils()

type defaultHostUtils struct {
	encryptionKey [32]byte
}

func newDefaultHostUtils() *defaultHostUtils {
	return &defaultHostUtils{}
}

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (h *defaultHostUtils) ParseDateTime(v interface{}) (time.Time, error) {
	if t, ok := v.(time.Time); ok {
		return t, nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return time.Time{}, err
	}
	var lastErr error
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		} else {
			lastErr = err
		}
	}
	return time.Time{}, lastErr
}

func (h *defaultHostUtils) ParseDate(v interface{}) (time.Time, error) {
	t, err := h.ParseDateTime(v)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func (h *defaultHostUtils) ParseTime(v interface{}) (time.Time, error) {
	s, err := cast.ToStringE(v)
	if err != nil {
		return time.Time{}, err
	}
	if t, err := time.Parse("15:04:05", s); err == nil {
		return t, nil
	}
	return time.Parse("15:04", s)
}

// Encrypt seals plaintext with nacl/secretbox and returns a base64 "nonce||box" blob.
func (h *defaultHostUtils) Encrypt(plaintext string) (string, error) {
	var nonce [24]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", err
	}
	sealed := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &h.encryptionKey)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt.
func (h *defaultHostUtils) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", err
	}
	if len(raw) < 24 {
		return "", fmt.Errorf("ciphertext too short")
	}
	var nonce [24]byte
	copy(nonce[:], raw[:24])
	opened, ok := secretbox.Open(nil, raw[24:], &nonce, &h.encryptionKey)
	if !ok {
		return "", fmt.Errorf("decryption failed")
	}
	return string(opened), nil
}
