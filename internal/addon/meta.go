package addon

import (
	"fmt"

	"github.com/dbytex91/stremthru-search/internal/searchid"
)

const searchPoster = "https://raw.githubusercontent.com/g0ldyy/comet/main/comet/templates/comet_icon.png"

// MetaPreview is both the catalog entry and the meta object of a search item.
type MetaPreview struct {
	ID          string      `json:"id"`
	Type        ContentType `json:"type"`
	Name        string      `json:"name"`
	Poster      string      `json:"poster,omitempty"`
	Description string      `json:"description,omitempty"`
}

type GetCatalogResponse struct {
	Metas []MetaPreview `json:"metas"`
}

type GetMetaResponse struct {
	Meta *MetaPreview `json:"meta"`
}

func newSearchMeta(contentType ContentType, query string) MetaPreview {
	return MetaPreview{
		ID:          searchid.Encode(query),
		Type:        contentType,
		Name:        fmt.Sprintf(`Search results for "%s"`, query),
		Poster:      searchPoster,
		Description: fmt.Sprintf(`Click to find streams for "%s" via StremThru.`, query),
	}
}
