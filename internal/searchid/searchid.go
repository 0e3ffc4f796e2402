package searchid

import (
	"encoding/base64"
	"errors"
	"net/url"
	"strings"
)

// Prefix marks catalog item ids that carry an encoded search query.
const Prefix = "search:"

var (
	ErrNotSearchID  = errors.New("searchid: id is not a search id")
	ErrInvalidToken = errors.New("searchid: invalid search token")
)

// Stremio clients and hand-built install links don't agree on the base64 alphabet or padding.
var encodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

func Encode(query string) string {
	return Prefix + base64.StdEncoding.EncodeToString([]byte(query))
}

// IsSearchID reports whether id (raw or percent-encoded) carries the search prefix.
func IsSearchID(id string) bool {
	return strings.HasPrefix(unescape(id), Prefix)
}

// Decode recovers the search query from an id produced by Encode.
// The id may still be percent-encoded as it appears in the request path.
func Decode(id string) (string, error) {
	id = unescape(id)

	token, ok := strings.CutPrefix(id, Prefix)
	if !ok {
		return "", ErrNotSearchID
	}

	for _, enc := range encodings {
		query, err := enc.DecodeString(token)
		if err == nil {
			return string(query), nil
		}
	}

	return "", ErrInvalidToken
}

func unescape(id string) string {
	unescaped, err := url.PathUnescape(id)
	if err != nil {
		return id
	}
	return unescaped
}
