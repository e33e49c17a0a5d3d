package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/minatbaca/minatbaca-server/internal/genre"
)

type GenreCatalogInput struct {
	Query string `query:"q" doc:"Optional name to resolve against the catalog"`
}

type GenreCatalogResponse struct {
	Genres []genre.Entry `json:"genres" doc:"Suggested genres"`
}

type GenreCatalogOutput struct {
	Body GenreCatalogResponse
}

func (s *Server) registerGenreRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "genre-catalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/genres",
		Summary:     "Genre catalog",
		Description: "Lists suggested genres. With ?q= it resolves a free-form name against the catalog, including common aliases.",
		Tags:        []string{"Genres"},
	}, func(ctx context.Context, input *GenreCatalogInput) (*GenreCatalogOutput, error) {
		if input.Query != "" {
			if entry, ok := genre.Resolve(input.Query); ok {
				return &GenreCatalogOutput{Body: GenreCatalogResponse{Genres: []genre.Entry{entry}}}, nil
			}
			return &GenreCatalogOutput{Body: GenreCatalogResponse{Genres: []genre.Entry{}}}, nil
		}
		return &GenreCatalogOutput{Body: GenreCatalogResponse{Genres: genre.Catalog}}, nil
	})
}
