package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken_RoundTrip(t *testing.T) {
	resetDate := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2026, 8, 1, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(resetDate, createdAt)
	assert.NotEmpty(t, token)

	decodedResetDate, decodedCreatedAt, err := DecodeToken(token)
	assert.NoError(t, err)
	assert.True(t, resetDate.Equal(decodedResetDate))
	assert.True(t, createdAt.Equal(decodedCreatedAt))
}

func TestDecodeToken_Errors(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	// Valid base64, but only one timestamp and no separator.
	noSeparator := EncodeToken(time.Now(), time.Now())[:8]
	_, _, err = DecodeToken(noSeparator)
	assert.Error(t, err)

	// Separator present, garbage on the left.
	_, _, err = DecodeToken("bm90YWRhdGV8MjAyMy0wNS0xNVQxNDozMDo0NS4xMjM0NTY3ODla")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "reset date parse")
}
