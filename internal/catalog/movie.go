package catalog

import (
	"strconv"
	"strings"
)

// PosterBaseURL is the TMDB image CDN prefix for w500 posters.
const PosterBaseURL = "https://image.tmdb.org/t/p/w500"

// Movie is a single catalog record as returned by the search and discover
// endpoints.
type Movie struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	OriginalLanguage string  `json:"original_language"`
	ReleaseDate      string  `json:"release_date"`
	Popularity       float64 `json:"popularity"`
	Adult            bool    `json:"adult"`
	GenreIDs         []int   `json:"genre_ids"`
}

// PosterURL returns the full poster URL, or "" when the record has none.
func (m Movie) PosterURL() string {
	if m.PosterPath == "" {
		return ""
	}
	return PosterBaseURL + m.PosterPath
}

// Year returns the release year or "N/A".
func (m Movie) Year() string {
	if len(m.ReleaseDate) < 4 {
		return "N/A"
	}
	return m.ReleaseDate[:4]
}

// Rating returns the vote average with one decimal, or "N/A" when unrated.
func (m Movie) Rating() string {
	if m.VoteAverage <= 0 {
		return "N/A"
	}
	return strconv.FormatFloat(m.VoteAverage, 'f', 1, 64)
}

// Language returns the upper-cased ISO 639-1 code, or "N/A".
func (m Movie) Language() string {
	if m.OriginalLanguage == "" {
		return "N/A"
	}
	return strings.ToUpper(m.OriginalLanguage)
}

// pageResponse is the envelope of /search/movie and /discover/movie.
type pageResponse struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}
