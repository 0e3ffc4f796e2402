package searchid

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	queries := []string{
		"",
		"a",
		"The Matrix 1999",
		"Amélie",
		"進撃の巨人",
		"rick & morty s01e01",
		"100% /?#=+",
		"??>>",
	}

	for _, q := range queries {
		id := Encode(q)
		require.True(t, IsSearchID(id), id)

		got, err := Decode(id)
		require.NoError(t, err)
		assert.Equal(t, q, got)
	}
}

func TestEncodeFormat(t *testing.T) {
	assert.Equal(t, "search:aGVsbG8=", Encode("hello"))
}

func TestDecodePercentEncodedID(t *testing.T) {
	// "??>>" encodes to "Pz8+Pg==", which exercises '+' and '='.
	got, err := Decode("search%3APz8%2BPg%3D%3D")
	require.NoError(t, err)
	assert.Equal(t, "??>>", got)
}

func TestDecodeLenientAlphabets(t *testing.T) {
	query := "??>> ok"

	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		got, err := Decode(Prefix + enc.EncodeToString([]byte(query)))
		require.NoError(t, err)
		assert.Equal(t, query, got)
	}
}

func TestDecodeRejectsForeignIDs(t *testing.T) {
	_, err := Decode("tt0133093")
	assert.ErrorIs(t, err, ErrNotSearchID)
	assert.False(t, IsSearchID("tt0133093"))

	_, err = Decode("search:***")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
