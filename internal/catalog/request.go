package catalog

import (
	"strconv"

	"github.com/derickschaefer/reel/internal/model"
)

// DefaultLanguage is sent with every request unless configured otherwise.
const DefaultLanguage = "en-US"

// popularitySort is what discover requests send when no key is selected.
const popularitySort = "popularity.desc"

// RequestBuilder turns a SearchState into a RequestDescriptor.
type RequestBuilder struct {
	Language string
}

// Build composes the descriptor for s. Browse requests carry the selected
// sort; search requests carry the query and are sorted client-side instead.
func (b RequestBuilder) Build(s SearchState) model.RequestDescriptor {
	lang := b.Language
	if lang == "" {
		lang = DefaultLanguage
	}
	page := max(s.Page, 1)

	params := []model.Param{
		{Key: "include_adult", Value: "false"},
		{Key: "language", Value: lang},
		{Key: "page", Value: strconv.Itoa(page)},
	}

	if s.Mode == model.ModeSearch {
		params = append(params, model.Param{Key: "query", Value: s.Query})
		return model.RequestDescriptor{Endpoint: model.EndpointSearch, Params: params}
	}

	sortBy := popularitySort
	if s.SortKey != model.SortNone && s.SortKey.Valid() {
		sortBy = s.SortKey.String()
	}
	params = append(params,
		model.Param{Key: "include_video", Value: "false"},
		model.Param{Key: "sort_by", Value: sortBy},
	)
	return model.RequestDescriptor{Endpoint: model.EndpointDiscover, Params: params}
}
