package packets

import (
	"github.com/Nixie-Tech-LLC/darshan/internal/maps"
	"github.com/Nixie-Tech-LLC/darshan/internal/model"
)

// TempleResponse is a directory record plus what the views derive from it.
type TempleResponse struct {
	model.TempleRecord
	CrowdTone     string `json:"crowd_tone"`
	DirectionsURL string `json:"directions_url"`
}

func NewTempleResponse(t model.TempleRecord) TempleResponse {
	t = t.Clone()
	if t.SpecialTimings == nil {
		t.SpecialTimings = []model.SpecialTiming{}
	}
	if t.Alerts == nil {
		t.Alerts = []string{}
	}
	return TempleResponse{
		TempleRecord:  t,
		CrowdTone:     t.CrowdStatus.Tone(),
		DirectionsURL: maps.DirectionsURL(t),
	}
}

func NewTempleList(records []model.TempleRecord) []TempleResponse {
	out := make([]TempleResponse, 0, len(records))
	for _, t := range records {
		out = append(out, NewTempleResponse(t))
	}
	return out
}

// SearchResponse mirrors the suggestion panel: hidden below the minimum
// query length, otherwise the matches or an explicit no-results flag.
type SearchResponse struct {
	Query     string           `json:"query"`
	Visible   bool             `json:"visible"`
	NoResults bool             `json:"no_results"`
	Results   []TempleResponse `json:"results"`
}
