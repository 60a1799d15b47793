package model

import "fmt"

// CrowdStatus is the coarse crowd level shown as a colored badge.
type CrowdStatus string

const (
	CrowdLow      CrowdStatus = "Low"
	CrowdModerate CrowdStatus = "Moderate"
	CrowdHigh     CrowdStatus = "High"
)

// ParseCrowdStatus accepts exactly the three display values.
func ParseCrowdStatus(s string) (CrowdStatus, error) {
	switch CrowdStatus(s) {
	case CrowdLow, CrowdModerate, CrowdHigh:
		return CrowdStatus(s), nil
	}
	return "", fmt.Errorf("unknown crowd status %q", s)
}

// Tone maps a status to the badge tone used by the views.
func (c CrowdStatus) Tone() string {
	switch c {
	case CrowdLow:
		return "success"
	case CrowdModerate:
		return "warning"
	case CrowdHigh:
		return "destructive"
	default:
		return "muted"
	}
}

// SpecialTiming is a named event with a display time.
type SpecialTiming struct {
	Name string `db:"name" json:"name"`
	Time string `db:"time" json:"time"`
}

// TempleRecord is one entry of the directory. All time fields are display strings.
type TempleRecord struct {
	ID             string          `db:"id"           json:"id"`
	Name           string          `db:"name"         json:"name"`
	Location       string          `db:"location"     json:"location"`
	Icon           string          `db:"icon"         json:"icon"`
	CrowdStatus    CrowdStatus     `db:"crowd_status" json:"crowd_status"`
	WaitTime       string          `db:"wait_time"    json:"wait_time"`
	OpenTime       string          `db:"open_time"    json:"open_time"`
	CloseTime      string          `db:"close_time"   json:"close_time"`
	Description    string          `db:"description"  json:"description"`
	LastUpdated    string          `db:"last_updated" json:"last_updated"`
	SpecialTimings []SpecialTiming `db:"-"            json:"special_timings"`
	Alerts         []string        `db:"-"            json:"alerts"`
}

// Clone returns a deep copy so callers can never reach the directory's slices.
func (t TempleRecord) Clone() TempleRecord {
	out := t
	if t.SpecialTimings != nil {
		out.SpecialTimings = append([]SpecialTiming(nil), t.SpecialTimings...)
	}
	if t.Alerts != nil {
		out.Alerts = append([]string(nil), t.Alerts...)
	}
	return out
}
