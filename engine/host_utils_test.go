package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	cipher, err := DefaultHostUtils.Encrypt("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", cipher)

	plain, err := DefaultHostUtils.Decrypt(cipher)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", plain)
}

func TestEncryptedTextFieldStoresCiphertextNotPlaintext(t *testing.T) {
	field := NewEncryptedTextField("ssn", true)
	m := newTestModel(DialectMongoDB, field)

	processed := map[string]interface{}{}
	ve := &ValidationErrors{}
	field.Prepare(m, "123-45-6789", true, processed, ve, true, nil)
	require.False(t, ve.hasErrors())

	stored, ok := processed["ssn"].(string)
	require.True(t, ok)
	assert.NotEqual(t, "123-45-6789", stored)

	plain, err := DefaultHostUtils.Decrypt(stored)
	require.NoError(t, err)
	assert.Equal(t, "123-45-6789", plain)
}

func TestParseDateTimeAcceptsMultipleLayouts(t *testing.T) {
	for _, s := range []string{"2024-03-05T10:00:00Z", "2024-03-05 10:00:00", "2024-03-05"} {
		_, err := DefaultHostUtils.ParseDateTime(s)
		assert.NoError(t, err, "layout for %q should parse", s)
	}
}
