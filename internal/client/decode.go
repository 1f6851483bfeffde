package client

import (
	"encoding/json"
	"fmt"

	"animeflix/catalog/internal/domain"
)

// envelope is the top level of every upstream response.
type envelope struct {
	Data       json.RawMessage    `json:"data"`
	Pagination *domain.Pagination `json:"pagination"`
}

func decodeEnvelope(body []byte) (*envelope, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, fmt.Errorf("missing data field")
	}
	return &env, nil
}

// animeItem is the part of an upstream anime record a summary needs.
type animeItem struct {
	MalID  int    `json:"mal_id"`
	URL    string `json:"url"`
	Title  string `json:"title"`
	Type   string `json:"type"`
	Images struct {
		JPG struct {
			ImageURL string `json:"image_url"`
		} `json:"jpg"`
	} `json:"images"`
	Episodes *int     `json:"episodes"`
	Year     *int     `json:"year"`
	Score    *float64 `json:"score"`
}

func (a animeItem) summary() domain.AnimeSummary {
	s := domain.AnimeSummary{
		MalID:    a.MalID,
		URL:      a.URL,
		Title:    a.Title,
		ImageURL: a.Images.JPG.ImageURL,
		Type:     a.Type,
		Score:    a.Score,
	}
	if s.Title == "" {
		s.Title = domain.UnknownTitle
	}
	if s.ImageURL == "" {
		s.ImageURL = domain.PlaceholderPath
	}
	if a.Episodes != nil {
		s.Episodes = *a.Episodes
	}
	if a.Year != nil {
		s.Year = *a.Year
	}
	return s
}

func decodeSummaries(data json.RawMessage) ([]domain.AnimeSummary, error) {
	var items []animeItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode anime list: %w", err)
	}

	summaries := make([]domain.AnimeSummary, 0, len(items))
	for _, item := range items {
		summaries = append(summaries, item.summary())
	}
	return summaries, nil
}

// paginationOrDefault fills whatever upstream left out.
func paginationOrDefault(p *domain.Pagination, requestedPage int) domain.Pagination {
	if p == nil {
		return domain.DefaultPagination(requestedPage)
	}

	out := *p
	if out.LastVisiblePage < 1 {
		out.LastVisiblePage = 1
	}
	if out.CurrentPage < 1 {
		out.CurrentPage = requestedPage
	}
	return out
}

func decodeDetail(data json.RawMessage) (domain.AnimeDetail, error) {
	var detail domain.AnimeDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		return nil, fmt.Errorf("decode anime detail: %w", err)
	}
	return detail, nil
}
