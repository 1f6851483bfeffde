package domain

const (
	UnknownTitle    = "Unknown Title"
	PlaceholderPath = "/no-anime.png"
	NoSynopsis      = "No additional information available."
)

// AnimeSummary is the card-sized view of a catalog entry.
type AnimeSummary struct {
	MalID    int      `json:"mal_id"`
	URL      string   `json:"url,omitempty"`
	Title    string   `json:"title"`
	ImageURL string   `json:"image_url"`
	Type     string   `json:"type,omitempty"`
	Episodes int      `json:"episodes,omitempty"`
	Year     int      `json:"year,omitempty"`
	Score    *float64 `json:"score"` // nil when the entry is unscored
}

// AnimeDetail is the full upstream record, passed through untouched.
type AnimeDetail map[string]any

// FallbackDetail is the stub served when a detail lookup fails.
func FallbackDetail() AnimeDetail {
	return AnimeDetail{"synopsis": NoSynopsis}
}

func (d AnimeDetail) Synopsis() string {
	return d.stringField("synopsis")
}

func (d AnimeDetail) Title() string {
	return d.stringField("title")
}

func (d AnimeDetail) stringField(key string) string {
	if v, ok := d[key].(string); ok {
		return v
	}
	return ""
}

// DetailResult always carries a renderable record. When the lookup failed,
// Fallback is set and Cause holds the swallowed error.
type DetailResult struct {
	Detail   AnimeDetail `json:"data"`
	Fallback bool        `json:"fallback"`
	Cause    error       `json:"-"`
}
