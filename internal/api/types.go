package api

import "github.com/kimchoi-jjiggae/coachMe/internal/journal"

type HealthResponse struct {
	Status string `json:"status"`
}

// TitleRequest is the body of POST /api/generate-title.
type TitleRequest struct {
	Content string `json:"content"`
}

type TitleResponse struct {
	Title  string `json:"title"`
	Source string `json:"source"` // remote or heuristic
}

type PunctuateRequest struct {
	Text string `json:"text"`
}

type PunctuateResponse struct {
	Text string `json:"text"`
}

// EntryRequest is the body of POST /api/entries and PUT /api/entries/:id.
// An empty title is generated.
type EntryRequest struct {
	ID      string `json:"id,omitempty"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type EntryListResponse struct {
	Entries []journal.Entry `json:"entries"`
	Total   int             `json:"total"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
}

type SearchResponse struct {
	Query   string          `json:"query"`
	Entries []journal.Entry `json:"entries"`
}

type DraftRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
