package addon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/coocood/freecache"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/dbytex91/stremthru-search/internal/searchid"
	"github.com/dbytex91/stremthru-search/internal/stremthru"
)

const (
	CatalogID = "stremthru-search"

	defaultCacheSize       = 50 * 1024 * 1024 // 50MB
	defaultCacheTTL        = 5 * 60
	defaultUpstreamTimeout = 60 * time.Second

	streamsErrorMessage = "An error occurred while fetching streams."
)

// Addon implements a Stremio addon
type Addon struct {
	id          string
	name        string
	version     string
	description string

	manifest       Manifest
	stremThru      *stremthru.StremThru
	cache          *freecache.Cache
	cacheTTL       int
	metricsEnabled bool
}

type Option func(*Addon)

func New(opts ...Option) *Addon {
	addon := &Addon{
		id:          "community.stremthru.search",
		name:        "StremThru Search",
		version:     "0.0.0",
		description: "A direct search addon for Stremio using StremThru.",
		stremThru:   stremthru.New(stremthru.DefaultBaseURL, defaultUpstreamTimeout),
		cache:       freecache.NewCache(defaultCacheSize),
		cacheTTL:    defaultCacheTTL,
	}

	for _, opt := range opts {
		opt(addon)
	}

	addon.manifest = addon.buildManifest()

	return addon
}

func (add *Addon) buildManifest() Manifest {
	searchTypes := []ContentType{ContentTypeMovie, ContentTypeSeries, ContentTypeOther}
	idPrefixes := []string{searchid.Prefix}

	return Manifest{
		ID:          add.id,
		Name:        add.name,
		Description: add.description,
		Version:     add.version,
		ResourceItems: []ResourceItem{
			{
				Name:  ResourceCatalog,
				Types: []ContentType{ContentTypeMovie},
			},
			{
				Name:       ResourceMeta,
				Types:      searchTypes,
				IDPrefixes: idPrefixes,
			},
			{
				Name:       ResourceStream,
				Types:      searchTypes,
				IDPrefixes: idPrefixes,
			},
		},
		Types: searchTypes,
		Catalogs: []CatalogItem{
			{
				Type: ContentTypeMovie,
				ID:   CatalogID,
				Name: add.name,
				Extra: []ExtraItem{
					{Name: "search", IsRequired: true},
				},
			},
		},
		IDPrefixes: idPrefixes,
		Logo:       searchPoster,
		BehaviorHints: &BehaviorHints{
			Configurable: true,
		},
	}
}

// Register mounts the Stremio routes plus health and metrics on router.
func (add *Addon) Register(router fiber.Router) {
	if add.metricsEnabled {
		router.Use(MetricsMiddleware())
		router.Get("/metrics", HandleMetrics)
	}
	router.Get("/health", add.HandleHealth)

	router.Get("/manifest.json", add.HandleGetManifest)
	router.Get("/:config/manifest.json", add.HandleGetManifest)
	router.Get("/:config/catalog/:type/:id.json", add.HandleGetCatalog)
	router.Get("/:config/catalog/:type/:id/:extra", add.HandleGetCatalog)
	router.Get("/:config/meta/:type/:id.json", add.HandleGetMeta)
	router.Get("/:config/stream/:type/:id.json", add.HandleGetStreams)
}

func (add *Addon) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (add *Addon) HandleGetManifest(c *fiber.Ctx) error {
	// Without a config segment there is nothing to forward to StremThru yet.
	configured := c.Params("config") != ""
	log.Infof("Manifest request, configured: %t", configured)

	return c.JSON(add.manifest.withHints(!configured))
}

func (add *Addon) HandleGetCatalog(c *fiber.Ctx) error {
	contentType := ContentType(c.Params("type"))
	search := searchFromRequest(c)

	log.Infof("Catalog request - type: %s, search: %q", contentType, search)

	if search == "" {
		log.Info("No search query provided, responding with empty list")
		return c.JSON(GetCatalogResponse{Metas: []MetaPreview{}})
	}

	return c.JSON(GetCatalogResponse{
		Metas: []MetaPreview{newSearchMeta(contentType, search)},
	})
}

func (add *Addon) HandleGetMeta(c *fiber.Ctx) error {
	contentType := ContentType(c.Params("type"))
	query, err := searchid.Decode(c.Params("id"))
	if err != nil {
		log.Warnf("Meta request for unknown id %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusNotFound).JSON(GetMetaResponse{})
	}

	meta := newSearchMeta(contentType, query)
	return c.JSON(GetMetaResponse{Meta: &meta})
}

func (add *Addon) HandleGetStreams(c *fiber.Ctx) error {
	config := c.Params("config")
	id := c.Params("id")

	log.Infof("Stream request - type: %s, id: %s", c.Params("type"), id)

	if !searchid.IsSearchID(id) {
		log.Info("ID is not a search query, responding with empty streams")
		return c.JSON(GetStreamsResponse{Streams: []json.RawMessage{}})
	}

	query, err := searchid.Decode(id)
	if err != nil {
		log.Warnf("Couldn't decode search id %s: %v", id, err)
		return c.JSON(GetStreamsResponse{Streams: []json.RawMessage{}})
	}
	log.Infof("Decoded search query: %q", query)

	body, err := add.search(c.UserContext(), config, query)
	if err != nil {
		log.WithContext(c.Context()).Errorf("Error in stream endpoint: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(GetStreamsResponse{
			Streams: []json.RawMessage{},
			Error:   streamsErrorMessage,
		})
	}
	log.Infof("Received %d streams from StremThru (%s)", stremthru.CountStreams(body), bytesConvert(len(body)))

	etag := fmt.Sprintf(`W/"%x"`, xxhash.Sum64(body))
	c.Set(fiber.HeaderETag, etag)
	if add.cacheTTL > 0 {
		c.Set(fiber.HeaderCacheControl, fmt.Sprintf("max-age=%d, public", add.cacheTTL))
	}
	if c.Get(fiber.HeaderIfNoneMatch) == etag {
		return c.SendStatus(fiber.StatusNotModified)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}

// search returns the upstream body for query, served from the cache when possible.
// Only successful responses are cached.
func (add *Addon) search(ctx context.Context, config string, query string) ([]byte, error) {
	key := []byte(config + "\x00" + query)
	if add.cache != nil {
		if body, err := add.cache.Get(key); err == nil {
			cacheHits.Inc()
			return body, nil
		}
	}

	start := time.Now()
	body, err := add.stremThru.Search(ctx, config, query)
	upstreamDuration.UpdateDuration(start)
	if err != nil {
		var upstreamErr *stremthru.UpstreamError
		if errors.As(err, &upstreamErr) {
			upstreamStatusErrors.Inc()
		} else {
			upstreamFailures.Inc()
		}
		return nil, err
	}
	upstreamSuccesses.Inc()

	if add.cache != nil {
		if err := add.cache.Set(key, body, add.cacheTTL); err != nil {
			log.Warnf("Failed to cache StremThru response: %v", err)
		}
	}

	return body, nil
}

// searchFromRequest reads the search extra from the path form Stremio uses
// (search=foo.json) and falls back to the query string. The text is returned
// as sent; only an empty value counts as missing.
func searchFromRequest(c *fiber.Ctx) string {
	if extra := strings.TrimSuffix(c.Params("extra"), ".json"); extra != "" {
		values, err := url.ParseQuery(extra)
		if err != nil {
			log.Warnf("Invalid catalog extra %s: %v", extra, err)
		} else if search := values.Get("search"); search != "" {
			return search
		}
	}

	return c.Query("search")
}
