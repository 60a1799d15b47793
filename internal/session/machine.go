package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Nixie-Tech-LLC/darshan/internal/maps"
	"github.com/Nixie-Tech-LLC/darshan/internal/model"
	"github.com/Nixie-Tech-LLC/darshan/internal/search"
)

// toastLimit is how many acknowledgments are visible at once; a new one
// replaces the oldest.
const toastLimit = 1

const DefaultToastTTL = 5 * time.Second

// DefaultPendingTimeout is how long a pending operation blocks new ones.
// Past it the operation is assumed lost, e.g. to a restart.
const DefaultPendingTimeout = 30 * time.Second

// Directory is the read-only dataset sessions browse.
type Directory interface {
	List() []model.TempleRecord
	Lookup(id string) (model.TempleRecord, bool)
	Popular() []model.TempleRecord
}

// Stub is a detail-page action that only acknowledges the click.
type Stub string

const (
	StubBookPooja        Stub = "book-pooja"
	StubViewOnMap        Stub = "view-on-map"
	StubSafetyGuidelines Stub = "safety-guidelines"
)

func ParseStub(s string) (Stub, error) {
	switch Stub(s) {
	case StubBookPooja, StubViewOnMap, StubSafetyGuidelines:
		return Stub(s), nil
	}
	return "", fmt.Errorf("%w: unknown action %q", ErrValidation, s)
}

// Ticket identifies the screen a delayed operation was started on. The
// operation only lands if the session is still on that exact screen.
type Ticket struct {
	Op    Op
	Nonce string
	View  View
	Epoch uint64
	Seq   uint64
}

func (t Ticket) current(st *State) bool {
	if st.Nonce != t.Nonce || st.View != t.View || st.Epoch != t.Epoch {
		return false
	}
	if t.Op == OpSearch {
		return st.Search.Seq == t.Seq && st.Search.Pending
	}
	return st.Pending == t.Op && st.OpSeq == t.Seq
}

// DashboardEdit changes any subset of the dashboard drafts. No value is
// validated.
type DashboardEdit struct {
	CrowdCount *int
	WaitTime   *string
	AlertDraft *string
}

// Machine holds the synchronous transitions of a session. It never blocks
// and never touches storage; Manager adds locking, delays and persistence.
type Machine struct {
	Directory      Directory
	ToastTTL       time.Duration
	PendingTimeout time.Duration
	Now            func() time.Time
	NewID          func() string
}

func NewMachine(dir Directory) *Machine {
	return &Machine{
		Directory:      dir,
		ToastTTL:       DefaultToastTTL,
		PendingTimeout: DefaultPendingTimeout,
		Now:            time.Now,
		NewID:          uuid.NewString,
	}
}

// NewState starts a fresh session on the landing page.
func (m *Machine) NewState() *State {
	return NewState(m.NewID())
}

func (m *Machine) enter(st *State, v View) {
	st.View = v
	st.Epoch++
	st.Pending = OpNone
}

func (m *Machine) resetNested(st *State) {
	st.Notifications = false
	st.Login = LoginForm{}
	st.Dashboard = DefaultDashboard()
}

func (m *Machine) resetSearch(st *State) {
	st.Search = SearchState{Seq: st.Search.Seq + 1}
}

func (m *Machine) require(st *State, kind Kind) error {
	if st.View.Kind != kind {
		return fmt.Errorf("%w: %s requires %s", ErrWrongView, st.View.Kind, kind)
	}
	return nil
}

// temple resolves the temple of the current screen.
func (m *Machine) temple(st *State) (model.TempleRecord, error) {
	rec, ok := m.Directory.Lookup(st.View.TempleID)
	if !ok {
		return model.TempleRecord{}, fmt.Errorf("%w: %q", ErrTempleNotFound, st.View.TempleID)
	}
	return rec, nil
}

// Select opens the detail screen of a temple. An unknown id still opens the
// detail screen, which then renders as not found.
func (m *Machine) Select(st *State, id string) {
	m.resetNested(st)
	m.resetSearch(st)
	m.enter(st, Detail(id))
}

// Back returns to the landing page and forgets everything nested under it.
func (m *Machine) Back(st *State) {
	m.resetNested(st)
	m.resetSearch(st)
	m.enter(st, Landing())
}

// SetQuery records the search box. A query long enough to search starts a
// delayed lookup; the returned bool says whether one was started.
func (m *Machine) SetQuery(st *State, q string) (Ticket, bool, error) {
	if err := m.require(st, KindLanding); err != nil {
		return Ticket{}, false, err
	}
	st.Search.Query = q
	st.Search.Seq++
	if !search.Visible(q) {
		st.Search.Visible = false
		st.Search.Pending = false
		st.Search.MatchIDs = nil
		return Ticket{}, false, nil
	}
	// the previous query's matches must not show under the new one
	st.Search.Visible = false
	st.Search.MatchIDs = nil
	st.Search.Pending = true
	return Ticket{Op: OpSearch, Nonce: st.Nonce, View: st.View, Epoch: st.Epoch, Seq: st.Search.Seq}, true, nil
}

// CompleteSearch shows the suggestions for the query as it is now.
func (m *Machine) CompleteSearch(st *State, t Ticket) error {
	if !t.current(st) {
		return ErrStale
	}
	res := search.Filter(st.Search.Query, m.Directory.List())
	st.Search.Pending = false
	st.Search.Visible = res.Visible
	st.Search.MatchIDs = res.IDs()
	return nil
}

// Directions returns the map link for the current temple.
func (m *Machine) Directions(st *State) (string, error) {
	if err := m.require(st, KindDetail); err != nil {
		return "", err
	}
	rec, err := m.temple(st)
	if err != nil {
		return "", err
	}
	m.toast(st, "Opening Directions", "Redirecting to Google Maps for live navigation", model.ToastDefault)
	return maps.DirectionsURL(rec), nil
}

// ToggleNotifications flips the advisory queue-update flag.
func (m *Machine) ToggleNotifications(st *State) (bool, error) {
	if err := m.require(st, KindDetail); err != nil {
		return false, err
	}
	if _, err := m.temple(st); err != nil {
		return false, err
	}
	st.Notifications = !st.Notifications
	if st.Notifications {
		m.toast(st, "Notifications Enabled", "You'll receive updates when crowd reduces", model.ToastDefault)
	} else {
		m.toast(st, "Notifications Disabled", "You'll no longer receive queue updates", model.ToastDefault)
	}
	return st.Notifications, nil
}

// Acknowledge answers one of the placeholder actions.
func (m *Machine) Acknowledge(st *State, s Stub) error {
	if err := m.require(st, KindDetail); err != nil {
		return err
	}
	if _, err := m.temple(st); err != nil {
		return err
	}
	switch s {
	case StubBookPooja:
		m.toast(st, "Booking System", "Special pooja booking will be available soon!", model.ToastDefault)
	case StubViewOnMap:
		m.toast(st, "Map View", "Opening detailed temple location map", model.ToastDefault)
	case StubSafetyGuidelines:
		m.toast(st, "Safety Guidelines", "Opening temple safety and conduct guidelines", model.ToastDefault)
	default:
		return fmt.Errorf("%w: unknown action %q", ErrValidation, s)
	}
	return nil
}

// OpenAdminLogin replaces the detail screen with the login form.
func (m *Machine) OpenAdminLogin(st *State) error {
	if err := m.require(st, KindDetail); err != nil {
		return err
	}
	if _, err := m.temple(st); err != nil {
		return err
	}
	st.Login = LoginForm{}
	m.enter(st, AdminLogin(st.View.TempleID))
	return nil
}

// CancelLogin goes back to the detail screen. A login still in flight will
// find the screen changed and be dropped.
func (m *Machine) CancelLogin(st *State) error {
	if err := m.require(st, KindAdminLogin); err != nil {
		return err
	}
	st.Login = LoginForm{}
	m.enter(st, Detail(st.View.TempleID))
	return nil
}

// BeginLogin marks a login attempt as pending.
func (m *Machine) BeginLogin(st *State, username string) (Ticket, error) {
	if err := m.require(st, KindAdminLogin); err != nil {
		return Ticket{}, err
	}
	if m.busy(st) {
		return Ticket{}, ErrBusy
	}
	st.Login.Username = username
	return m.begin(st, OpLogin), nil
}

// CompleteLogin applies the authenticator's verdict. A failed attempt keeps
// the form; the message is the same whichever field was wrong.
func (m *Machine) CompleteLogin(st *State, t Ticket, authErr error, hint string) error {
	if !t.current(st) {
		return ErrStale
	}
	st.Pending = OpNone
	if authErr != nil {
		desc := "Invalid username or password."
		if hint != "" {
			desc += " " + hint
		}
		m.toast(st, "Login Failed", desc, model.ToastDestructive)
		return ErrInvalidCredentials
	}

	name := st.View.TempleID
	if rec, err := m.temple(st); err == nil {
		name = rec.Name
	}
	st.Login = LoginForm{}
	st.Dashboard = DefaultDashboard()
	m.enter(st, AdminDashboard(st.View.TempleID))
	m.toast(st, "Login Successful", fmt.Sprintf("Welcome to %s Admin Dashboard", name), model.ToastDefault)
	return nil
}

// EditDashboard changes the drafts. Negative counts and empty strings are
// all accepted.
func (m *Machine) EditDashboard(st *State, e DashboardEdit) error {
	if err := m.require(st, KindAdminDashboard); err != nil {
		return err
	}
	if e.CrowdCount != nil {
		st.Dashboard.CrowdCount = *e.CrowdCount
	}
	if e.WaitTime != nil {
		st.Dashboard.WaitTime = *e.WaitTime
	}
	if e.AlertDraft != nil {
		st.Dashboard.AlertDraft = *e.AlertDraft
	}
	return nil
}

func (m *Machine) BeginUpdateStatus(st *State) (Ticket, error) {
	if err := m.require(st, KindAdminDashboard); err != nil {
		return Ticket{}, err
	}
	if m.busy(st) {
		return Ticket{}, ErrBusy
	}
	return m.begin(st, OpStatus), nil
}

// CompleteUpdateStatus only acknowledges; nothing is stored.
func (m *Machine) CompleteUpdateStatus(st *State, t Ticket) error {
	if !t.current(st) {
		return ErrStale
	}
	st.Pending = OpNone
	m.toast(st, "Status Updated", "Live temple status has been updated successfully.", model.ToastDefault)
	return nil
}

// BeginPublishAlert refuses a blank draft without touching anything else.
func (m *Machine) BeginPublishAlert(st *State) (Ticket, error) {
	if err := m.require(st, KindAdminDashboard); err != nil {
		return Ticket{}, err
	}
	if m.busy(st) {
		return Ticket{}, ErrBusy
	}
	if strings.TrimSpace(st.Dashboard.AlertDraft) == "" {
		m.toast(st, "Alert Required", "Please enter an alert message before publishing.", model.ToastDestructive)
		return Ticket{}, fmt.Errorf("%w: alert message is empty", ErrValidation)
	}
	return m.begin(st, OpAlert), nil
}

// CompletePublishAlert clears the draft. The temple's alerts are left as they are.
func (m *Machine) CompletePublishAlert(st *State, t Ticket) error {
	if !t.current(st) {
		return ErrStale
	}
	st.Pending = OpNone
	st.Dashboard.AlertDraft = ""
	m.toast(st, "Alert Published", "New alert has been sent to all temple visitors.", model.ToastDefault)
	return nil
}

// Logout returns to the detail screen and throws the drafts away.
func (m *Machine) Logout(st *State) error {
	if err := m.require(st, KindAdminDashboard); err != nil {
		return err
	}
	st.Dashboard = DefaultDashboard()
	m.enter(st, Detail(st.View.TempleID))
	m.toast(st, "Logged Out", "Successfully logged out of admin dashboard", model.ToastDefault)
	return nil
}

func (m *Machine) SetLanguage(st *State, code string) error {
	if err := validLanguage(code); err != nil {
		return err
	}
	st.Language = code
	return nil
}

// DismissToast removes a visible acknowledgment early. Unknown ids are ignored.
func (m *Machine) DismissToast(st *State, id string) {
	kept := st.Toasts[:0]
	for _, t := range st.Toasts {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	st.Toasts = kept
}

// Prune drops acknowledgments whose display time is over.
func (m *Machine) Prune(st *State) {
	now := m.Now()
	kept := st.Toasts[:0]
	for _, t := range st.Toasts {
		if !t.Expired(now) {
			kept = append(kept, t)
		}
	}
	st.Toasts = kept
}

func (m *Machine) busy(st *State) bool {
	return st.Pending != OpNone && m.Now().Sub(st.PendingSince) < m.PendingTimeout
}

// begin marks op as pending and returns the ticket its result must match.
func (m *Machine) begin(st *State, op Op) Ticket {
	st.Pending = op
	st.PendingSince = m.Now()
	st.OpSeq++
	return Ticket{Op: op, Nonce: st.Nonce, View: st.View, Epoch: st.Epoch, Seq: st.OpSeq}
}

func (m *Machine) toast(st *State, title, desc string, variant model.ToastVariant) {
	now := m.Now()
	t := model.Toast{
		ID:          m.NewID(),
		Title:       title,
		Description: desc,
		Variant:     variant,
		CreatedAt:   now,
		ExpiresAt:   now.Add(m.ToastTTL),
	}
	st.Toasts = append(st.Toasts, t)
	if over := len(st.Toasts) - toastLimit; over > 0 {
		st.Toasts = append([]model.Toast(nil), st.Toasts[over:]...)
	}
	st.fresh = append(st.fresh, t)
}
