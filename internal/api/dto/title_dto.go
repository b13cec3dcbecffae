package dto

import "reviewhub/internal/api/models"

// TitleWriteRequest creates or replaces a title. Category and genres are
// referenced by slug, the way clients see them.
type TitleWriteRequest struct {
	Name        string   `json:"name" binding:"required"`
	Year        int      `json:"year" binding:"required"`
	Description *string  `json:"description,omitempty"`
	Category    string   `json:"category" binding:"required"`
	Genres      []string `json:"genre" binding:"required"`
}

// TitleUpdateRequest patches a title; nil fields are left untouched.
type TitleUpdateRequest struct {
	Name        *string   `json:"name,omitempty"`
	Year        *int      `json:"year,omitempty"`
	Description *string   `json:"description,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Genres      *[]string `json:"genre,omitempty"`
}

// TitleResponse embeds the derived rating; nil means no reviews yet and is
// serialized as JSON null, never zero.
type TitleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Rating      *int              `json:"rating"`
	Description *string           `json:"description,omitempty"`
	Category    *CategoryResponse `json:"category"`
	Genres      []GenreResponse   `json:"genre"`
}

func FromModelToTitleResponse(title *models.Title, rating *int) *TitleResponse {
	resp := &TitleResponse{
		ID:          title.ID,
		Name:        title.Name,
		Year:        title.Year,
		Rating:      rating,
		Description: title.Description,
		Genres:      make([]GenreResponse, 0, len(title.Genres)),
	}
	if title.Category != nil {
		resp.Category = FromModelToCategoryResponse(title.Category)
	}
	for i := range title.Genres {
		resp.Genres = append(resp.Genres, *FromModelToGenreResponse(&title.Genres[i]))
	}
	return resp
}
