package stremthru

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2/log"
)

const (
	DefaultBaseURL = "https://stremthru.13377001.xyz"
	searchPath     = "/{config}/torz/search"
)

var ErrInvalidResponse = errors.New("stremthru: response is not valid JSON")

// UpstreamError is returned when StremThru answers with a non-2xx status.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("stremthru: unexpected status %d", e.StatusCode)
}

type StremThru struct {
	client *resty.Client
}

type searchResponse struct {
	Streams []json.RawMessage `json:"streams"`
}

func New(baseURL string, timeout time.Duration) *StremThru {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)

	return &StremThru{
		client: client,
	}
}

// Search forwards query to the torz search endpoint of the given user config and
// returns the response body untouched.
func (s *StremThru) Search(ctx context.Context, config string, query string) ([]byte, error) {
	resp, err := s.client.
		R().
		SetContext(ctx).
		SetRawPathParam("config", config).
		SetQueryParam("query", query).
		Get(searchPath)

	if err != nil {
		log.Errorf("Failed to search StremThru for %q: %v", query, err)
		return nil, fmt.Errorf("stremthru: search request: %w", err)
	}

	if !resp.IsSuccess() {
		log.Errorf("StremThru returned an error: %d %s", resp.StatusCode(), resp.String())
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode(),
			Body:       resp.String(),
		}
	}

	body := resp.Body()
	if !json.Valid(body) {
		log.Errorf("StremThru returned a non JSON body for %q", query)
		return nil, ErrInvalidResponse
	}

	return body, nil
}

// CountStreams returns the number of entries in the streams array of a search response.
func CountStreams(body []byte) int {
	result := searchResponse{}
	if err := json.Unmarshal(body, &result); err != nil {
		return 0
	}

	return len(result.Streams)
}
