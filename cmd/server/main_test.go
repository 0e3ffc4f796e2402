package main

import (
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskPath(t *testing.T) {
	cases := map[string]string{
		"/eyJzdG9yZSI6InJkIn0/stream/movie/search:aGk=.json": "/***/stream/movie/search:aGk=.json",
		"/secret/catalog/movie/stremthru-search.json":        "/***/catalog/movie/stremthru-search.json",
		"/secret/manifest.json":                              "/***/manifest.json",
		"/secret/configure":                                  "/***/configure",
		"/manifest.json":                                     "/manifest.json",
		"/health":                                            "/health",
	}

	for in, want := range cases {
		assert.Equal(t, want, maskPath(in), in)
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := config{}
	require.NoError(t, env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}}))

	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "https://stremthru.13377001.xyz", cfg.StremThruURL)
	assert.Equal(t, 300, cfg.CacheTTL)
	assert.Equal(t, 50, cfg.CacheSizeMB)
	assert.True(t, cfg.MetricsEnabled)
	assert.False(t, cfg.SSLEnabled)
}

func TestConfigFromEnvironment(t *testing.T) {
	cfg := config{}
	require.NoError(t, env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{
		"PORT":             "3000",
		"STREMTHRU_URL":    "http://localhost:8080",
		"UPSTREAM_TIMEOUT": "5s",
		"CACHE_TTL":        "0",
	}}))

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "http://localhost:8080", cfg.StremThruURL)
	assert.Equal(t, "5s", cfg.UpstreamTimeout.String())
	assert.Zero(t, cfg.CacheTTL)
}
