package models

// OMDB payloads are passed through to clients as-is, so the JSON field names
// follow the upstream API's capitalization.

// MovieSummary is one hit of an OMDB title search.
type MovieSummary struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	ImdbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// SearchResult is the OMDB title-search response envelope.
type SearchResult struct {
	Search       []MovieSummary `json:"Search"`
	TotalResults string         `json:"totalResults"`
	Response     string         `json:"Response"`
	Error        string         `json:"Error,omitempty"`
}

// MovieDetail is the OMDB by-ID response.
type MovieDetail struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Rated      string `json:"Rated,omitempty"`
	Released   string `json:"Released,omitempty"`
	Runtime    string `json:"Runtime,omitempty"`
	Genre      string `json:"Genre,omitempty"`
	Director   string `json:"Director,omitempty"`
	Writer     string `json:"Writer,omitempty"`
	Actors     string `json:"Actors,omitempty"`
	Plot       string `json:"Plot,omitempty"`
	Language   string `json:"Language,omitempty"`
	Country    string `json:"Country,omitempty"`
	Awards     string `json:"Awards,omitempty"`
	Poster     string `json:"Poster"`
	ImdbRating string `json:"imdbRating,omitempty"`
	ImdbVotes  string `json:"imdbVotes,omitempty"`
	ImdbID     string `json:"imdbID"`
	Type       string `json:"Type"`
	Response   string `json:"Response,omitempty"`
	Error      string `json:"Error,omitempty"`
}

// Summary projects a detail record onto the search-hit shape used by the
// recommendation lists.
func (d *MovieDetail) Summary() MovieSummary {
	return MovieSummary{
		Title:  d.Title,
		Year:   d.Year,
		ImdbID: d.ImdbID,
		Type:   d.Type,
		Poster: d.Poster,
	}
}

// AdvancedSearchParams are the optional filters of the advanced search
// endpoint. Zero values mean "not set".
type AdvancedSearchParams struct {
	Query string
	Type  string
	Year  string
	Page  int
}
