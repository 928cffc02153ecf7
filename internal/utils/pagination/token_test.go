package pagination_test

import (
	"testing"
	"time"

	"github.com/agritrack/plot_capacity_app/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDToken_RoundTrip(t *testing.T) {
	token := pagination.EncodeIDToken(12345)
	id, err := pagination.DecodeIDToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(12345), id)
}

func TestDecodeIDToken_InvalidBase64(t *testing.T) {
	_, err := pagination.DecodeIDToken("not-base64!!!")
	assert.Error(t, err)
}

func TestDecodeIDToken_NotANumber(t *testing.T) {
	_, err := pagination.DecodeIDToken("aGVsbG8=") // "hello"
	assert.Error(t, err)
}

func TestDateIDToken_RoundTrip(t *testing.T) {
	date := time.Date(2026, 4, 10, 12, 30, 0, 0, time.UTC)
	token := pagination.EncodeDateIDToken(date, 98)

	decodedDate, id, err := pagination.DecodeDateIDToken(token)
	require.NoError(t, err)
	assert.True(t, date.Equal(decodedDate))
	assert.Equal(t, int64(98), id)
}

func TestDecodeDateIDToken_MissingSeparator(t *testing.T) {
	_, _, err := pagination.DecodeDateIDToken(pagination.EncodeIDToken(5))
	assert.Error(t, err)
}
