package packets

import (
	temples "github.com/Nixie-Tech-LLC/darshan/internal/http/api/temples/packets"
	"github.com/Nixie-Tech-LLC/darshan/internal/model"
	"github.com/Nixie-Tech-LLC/darshan/internal/session"
)

type SearchPanel struct {
	Query       string                   `json:"query"`
	Visible     bool                     `json:"visible"`
	Pending     bool                     `json:"pending"`
	NoResults   bool                     `json:"no_results"`
	Suggestions []temples.TempleResponse `json:"suggestions"`
}

type LoginPanel struct {
	Username string `json:"username"`
	Hint     string `json:"hint,omitempty"`
}

// SessionResponse is everything needed to draw the session's current screen.
type SessionResponse struct {
	View          session.View             `json:"view"`
	Temple        *temples.TempleResponse  `json:"temple,omitempty"`
	NotFound      bool                     `json:"not_found"`
	Search        SearchPanel              `json:"search"`
	Popular       []temples.TempleResponse `json:"popular,omitempty"`
	Notifications bool                     `json:"notifications"`
	Login         *LoginPanel              `json:"login,omitempty"`
	Dashboard     *session.DashboardDraft  `json:"dashboard,omitempty"`
	Pending       session.Op               `json:"pending,omitempty"`
	Language      string                   `json:"language"`
	Languages     []session.Language       `json:"languages"`
	Toasts        []model.Toast            `json:"toasts"`
}

func NewSessionResponse(sc session.Screen) SessionResponse {
	out := SessionResponse{
		View:     sc.View,
		NotFound: sc.NotFound,
		Search: SearchPanel{
			Query:       sc.Search.Query,
			Visible:     sc.Search.Visible,
			Pending:     sc.Search.Pending,
			NoResults:   sc.NoResults,
			Suggestions: temples.NewTempleList(sc.Suggestions),
		},
		Notifications: sc.Notifications,
		Pending:       sc.Pending,
		Language:      sc.Language,
		Languages:     sc.Languages,
		Toasts:        sc.Toasts,
	}
	if out.Toasts == nil {
		out.Toasts = []model.Toast{}
	}
	if sc.Temple != nil {
		t := temples.NewTempleResponse(*sc.Temple)
		out.Temple = &t
	}
	if sc.View.Kind == session.KindLanding {
		out.Popular = temples.NewTempleList(sc.Popular)
	}
	switch sc.View.Kind {
	case session.KindAdminLogin:
		out.Login = &LoginPanel{Username: sc.Login.Username, Hint: sc.LoginHint}
	case session.KindAdminDashboard:
		d := sc.Dashboard
		out.Dashboard = &d
	}
	return out
}

type DirectionsResponse struct {
	URL     string          `json:"url"`
	Session SessionResponse `json:"session"`
}
