package session

import (
	"time"

	"github.com/Nixie-Tech-LLC/darshan/internal/model"
)

// Kind names which screen a session is looking at.
type Kind string

const (
	KindLanding        Kind = "landing"
	KindDetail         Kind = "detail"
	KindAdminLogin     Kind = "admin_login"
	KindAdminDashboard Kind = "admin_dashboard"
)

// View is the single source of truth for navigation. Every kind except
// Landing carries the temple id it belongs to, so the login form and the
// dashboard can never be shown at the same time.
type View struct {
	Kind     Kind   `json:"kind"`
	TempleID string `json:"temple_id,omitempty"`
}

func Landing() View { return View{Kind: KindLanding} }
func Detail(id string) View { return View{Kind: KindDetail, TempleID: id} }
func AdminLogin(id string) View { return View{Kind: KindAdminLogin, TempleID: id} }
func AdminDashboard(id string) View { return View{Kind: KindAdminDashboard, TempleID: id} }

// Op is an operation that finishes after a simulated delay.
type Op string

const (
	OpNone   Op = ""
	OpSearch Op = "search"
	OpLogin  Op = "login"
	OpStatus Op = "status"
	OpAlert  Op = "alert"
)

type SearchState struct {
	Query    string   `json:"query"`
	Visible  bool     `json:"visible"`
	Pending  bool     `json:"pending"`
	Seq      uint64   `json:"seq"`
	MatchIDs []string `json:"match_ids,omitempty"`
}

// LoginForm keeps what the admin typed. The password is never stored.
type LoginForm struct {
	Username string `json:"username"`
}

// DashboardDraft holds the admin's edits. They are seeded with fixed values
// and never written back to the directory.
type DashboardDraft struct {
	CrowdCount int    `json:"crowd_count"`
	WaitTime   string `json:"wait_time"`
	AlertDraft string `json:"alert_draft"`
}

func DefaultDashboard() DashboardDraft {
	return DashboardDraft{CrowdCount: 245, WaitTime: "45 mins"}
}

// State is everything one visitor's session remembers.
type State struct {
	// Nonce distinguishes a session from a later one that reuses its id.
	Nonce         string         `json:"nonce"`
	View          View           `json:"view"`
	Epoch         uint64         `json:"epoch"`
	Search        SearchState    `json:"search"`
	Notifications bool           `json:"notifications"`
	Login         LoginForm      `json:"login"`
	Dashboard     DashboardDraft `json:"dashboard"`
	Pending       Op             `json:"pending,omitempty"`
	PendingSince  time.Time      `json:"pending_since"`
	OpSeq         uint64         `json:"op_seq"`
	Language      string         `json:"language"`
	Toasts        []model.Toast  `json:"toasts,omitempty"`
	LastSeen      time.Time      `json:"last_seen"`

	fresh []model.Toast
}

// NewState is a session that has just arrived on the landing page.
func NewState(nonce string) *State {
	return &State{
		Nonce:     nonce,
		View:      Landing(),
		Dashboard: DefaultDashboard(),
		Language:  DefaultLanguage,
	}
}

// Clone deep-copies the persisted fields.
func (s *State) Clone() *State {
	out := *s
	out.Search.MatchIDs = append([]string(nil), s.Search.MatchIDs...)
	out.Toasts = append([]model.Toast(nil), s.Toasts...)
	out.fresh = nil
	return &out
}

// drainFresh returns the toasts raised since the state was loaded.
func (s *State) drainFresh() []model.Toast {
	f := s.fresh
	s.fresh = nil
	return f
}
