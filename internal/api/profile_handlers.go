package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/minatbaca/minatbaca-server/internal/domain"
	domainerrors "github.com/minatbaca/minatbaca-server/internal/errors"
)

// ProfileResponse is the full profile view including timestamps.
type ProfileResponse struct {
	UserID       string                 `json:"user_id" doc:"Owner user ID"`
	Genres       []string               `json:"genres" doc:"Favorite genres in preference order"`
	History      []HistoryEntryResponse `json:"history" doc:"Reading history"`
	BlockedBooks []string               `json:"blocked_books" doc:"Blocked book IDs"`
	CreatedAt    string                 `json:"created_at"`
	UpdatedAt    string                 `json:"updated_at"`
}

type HistoryEntryResponse struct {
	BookID string `json:"book_id" doc:"Book ID"`
	Rating *int   `json:"rating,omitempty" doc:"Rating 1-5, absent when unrated"`
	ReadAt string `json:"read_at" doc:"When the book was first recorded as read"`
}

// SnapshotResponse is the denormalized read model of a profile.
type SnapshotResponse struct {
	UserID        string                 `json:"user_id" doc:"Owner user ID"`
	Genres        []string               `json:"genres" doc:"Favorite genres in preference order"`
	BooksRead     int                    `json:"books_read" doc:"Number of books in the reading history"`
	AverageRating *float64               `json:"average_rating,omitempty" doc:"Mean of given ratings, absent when no book is rated"`
	BlockedBooks  []string               `json:"blocked_books" doc:"Blocked book IDs"`
	History       []HistoryEntryResponse `json:"history" doc:"Reading history"`
}

type ProfileInput struct {
	UserID string `path:"userID" doc:"Profile owner user ID"`
}

type ProfileOutput struct {
	Body ProfileResponse
}

type SnapshotOutput struct {
	Body SnapshotResponse
}

type AddGenreInput struct {
	UserID string `path:"userID" doc:"Profile owner user ID"`
	Body   struct {
		Name string `json:"name" doc:"Genre name"`
	}
}

type RemoveGenreInput struct {
	UserID string `path:"userID" doc:"Profile owner user ID"`
	Name   string `path:"name" doc:"Genre name"`
}

type RateBookInput struct {
	UserID string `path:"userID" doc:"Profile owner user ID"`
	Body   struct {
		BookID string `json:"book_id" doc:"Book ID"`
		Rating int    `json:"rating" minimum:"1" maximum:"5" doc:"Rating from 1 to 5"`
	}
}

type BookInput struct {
	UserID string `path:"userID" doc:"Profile owner user ID"`
	Body   struct {
		BookID string `json:"book_id" doc:"Book ID"`
	}
}

func (s *Server) registerProfileRoutes() {
	security := []map[string][]string{{"bearer": {}}}

	huma.Register(s.api, huma.Operation{
		OperationID: "create-profile",
		Method:      http.MethodPost,
		Path:        "/api/v1/profiles/{userID}",
		Summary:     "Create profile",
		Description: "Creates an empty reading profile. Registration does this automatically, so this mainly serves migrated accounts.",
		Tags:        []string{"Profiles"},
		Security:    security,
	}, func(ctx context.Context, input *ProfileInput) (*ProfileOutput, error) {
		if err := s.requireProfileAccess(ctx, input.UserID); err != nil {
			return nil, err
		}
		profile, err := s.services.Profile.CreateProfile(ctx, input.UserID)
		if err != nil {
			return nil, err
		}
		return &ProfileOutput{Body: toProfileResponse(profile)}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/api/v1/profiles/{userID}",
		Summary:     "Get profile",
		Tags:        []string{"Profiles"},
		Security:    security,
	}, func(ctx context.Context, input *ProfileInput) (*ProfileOutput, error) {
		if err := s.requireProfileAccess(ctx, input.UserID); err != nil {
			return nil, err
		}
		profile, err := s.services.Profile.GetProfile(ctx, input.UserID)
		if err != nil {
			return nil, err
		}
		return &ProfileOutput{Body: toProfileResponse(profile)}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-profile-snapshot",
		Method:      http.MethodGet,
		Path:        "/api/v1/profiles/{userID}/snapshot",
		Summary:     "Get profile snapshot",
		Description: "Returns the denormalized view of the profile with the average rating over rated books.",
		Tags:        []string{"Profiles"},
		Security:    security,
	}, func(ctx context.Context, input *ProfileInput) (*SnapshotOutput, error) {
		if err := s.requireProfileAccess(ctx, input.UserID); err != nil {
			return nil, err
		}
		snapshot, err := s.services.Profile.GetSnapshot(ctx, input.UserID)
		if err != nil {
			return nil, err
		}
		return &SnapshotOutput{Body: toSnapshotResponse(snapshot)}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "add-genre",
		Method:      http.MethodPost,
		Path:        "/api/v1/profiles/{userID}/genres",
		Summary:     "Add favorite genre",
		Description: "Appends a genre to the favorites. Adding a genre already present is a no-op.",
		Tags:        []string{"Profiles"},
		Security:    security,
	}, func(ctx context.Context, input *AddGenreInput) (*SnapshotOutput, error) {
		if err := s.requireProfileAccess(ctx, input.UserID); err != nil {
			return nil, err
		}
		snapshot, err := s.services.Profile.AddGenre(ctx, input.UserID, input.Body.Name)
		if err != nil {
			return nil, err
		}
		return &SnapshotOutput{Body: toSnapshotResponse(snapshot)}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "remove-genre",
		Method:      http.MethodDelete,
		Path:        "/api/v1/profiles/{userID}/genres/{name}",
		Summary:     "Remove favorite genre",
		Tags:        []string{"Profiles"},
		Security:    security,
	}, func(ctx context.Context, input *RemoveGenreInput) (*SnapshotOutput, error) {
		if err := s.requireProfileAccess(ctx, input.UserID); err != nil {
			return nil, err
		}
		snapshot, err := s.services.Profile.RemoveGenre(ctx, input.UserID, input.Name)
		if err != nil {
			return nil, err
		}
		return &SnapshotOutput{Body: toSnapshotResponse(snapshot)}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "rate-book",
		Method:      http.MethodPost,
		Path:        "/api/v1/profiles/{userID}/ratings",
		Summary:     "Rate a book",
		Description: "Rates a book from 1 to 5, recording it as read if it was not. Re-rating replaces the previous rating.",
		Tags:        []string{"Profiles"},
		Security:    security,
	}, func(ctx context.Context, input *RateBookInput) (*SnapshotOutput, error) {
		if err := s.requireProfileAccess(ctx, input.UserID); err != nil {
			return nil, err
		}
		snapshot, err := s.services.Profile.RateBook(ctx, input.UserID, input.Body.BookID, input.Body.Rating)
		if err != nil {
			return nil, err
		}
		return &SnapshotOutput{Body: toSnapshotResponse(snapshot)}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "mark-read",
		Method:      http.MethodPost,
		Path:        "/api/v1/profiles/{userID}/history",
		Summary:     "Mark a book as read",
		Description: "Records a book in the reading history without a rating.",
		Tags:        []string{"Profiles"},
		Security:    security,
	}, func(ctx context.Context, input *BookInput) (*SnapshotOutput, error) {
		if err := s.requireProfileAccess(ctx, input.UserID); err != nil {
			return nil, err
		}
		snapshot, err := s.services.Profile.MarkRead(ctx, input.UserID, input.Body.BookID)
		if err != nil {
			return nil, err
		}
		return &SnapshotOutput{Body: toSnapshotResponse(snapshot)}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "block-book",
		Method:      http.MethodPost,
		Path:        "/api/v1/profiles/{userID}/blocks",
		Summary:     "Block a book",
		Description: "Excludes a book from recommendations. Books with a rating cannot be blocked.",
		Tags:        []string{"Profiles"},
		Security:    security,
	}, func(ctx context.Context, input *BookInput) (*SnapshotOutput, error) {
		if err := s.requireProfileAccess(ctx, input.UserID); err != nil {
			return nil, err
		}
		snapshot, err := s.services.Profile.BlockBook(ctx, input.UserID, input.Body.BookID)
		if err != nil {
			return nil, err
		}
		return &SnapshotOutput{Body: toSnapshotResponse(snapshot)}, nil
	})
}

// requireProfileAccess ensures the request is authenticated and the
// caller owns the addressed profile.
func (s *Server) requireProfileAccess(ctx context.Context, pathUserID string) error {
	userID, err := GetUserID(ctx)
	if err != nil {
		return err
	}
	if userID != pathUserID {
		return domainerrors.Forbidden("profile belongs to another user")
	}
	return nil
}

func toProfileResponse(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		UserID:       string(p.UserID()),
		Genres:       genreNames(p.Genres()),
		History:      historyEntries(p.History()),
		BlockedBooks: bookIDs(p.BlockedBooks()),
		CreatedAt:    p.CreatedAt().Format(time.RFC3339),
		UpdatedAt:    p.UpdatedAt().Format(time.RFC3339),
	}
}

func toSnapshotResponse(s *domain.Snapshot) SnapshotResponse {
	return SnapshotResponse{
		UserID:        string(s.UserID),
		Genres:        genreNames(s.Genres),
		BooksRead:     s.BooksRead,
		AverageRating: s.AverageRating,
		BlockedBooks:  bookIDs(s.BlockedBooks),
		History:       historyEntries(s.History),
	}
}

func genreNames(genres []domain.Genre) []string {
	names := make([]string, len(genres))
	for i, g := range genres {
		names[i] = string(g)
	}
	return names
}

func bookIDs(ids []domain.BookID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

func historyEntries(entries []*domain.HistoryEntry) []HistoryEntryResponse {
	out := make([]HistoryEntryResponse, len(entries))
	for i, e := range entries {
		resp := HistoryEntryResponse{
			BookID: string(e.BookID),
			ReadAt: e.ReadAt.Format(time.RFC3339),
		}
		if e.Rating != nil {
			rating := e.Rating.Int()
			resp.Rating = &rating
		}
		out[i] = resp
	}
	return out
}
