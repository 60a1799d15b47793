package session

import "github.com/Nixie-Tech-LLC/darshan/internal/model"

// Screen is a session's state resolved against the directory, ready to render.
type Screen struct {
	View      View
	Temple    *model.TempleRecord
	NotFound  bool
	Search    SearchState
	NoResults bool
	// Suggestions is only filled when the panel is visible.
	Suggestions   []model.TempleRecord
	Popular       []model.TempleRecord
	Notifications bool
	Login         LoginForm
	LoginHint     string
	Dashboard     DashboardDraft
	Pending       Op
	Language      string
	Languages     []Language
	Toasts        []model.Toast
}

// Screen resolves st for rendering.
func (m *Machine) Screen(st *State) Screen {
	sc := Screen{
		View:          st.View,
		Search:        st.Search,
		Notifications: st.Notifications,
		Login:         st.Login,
		Dashboard:     st.Dashboard,
		Pending:       st.Pending,
		Language:      st.Language,
		Languages:     Languages,
		Toasts:        append([]model.Toast(nil), st.Toasts...),
	}
	if st.View.Kind == KindLanding {
		sc.Popular = m.Directory.Popular()
		if st.Search.Visible && !st.Search.Pending {
			for _, id := range st.Search.MatchIDs {
				if rec, ok := m.Directory.Lookup(id); ok {
					sc.Suggestions = append(sc.Suggestions, rec)
				}
			}
			sc.NoResults = len(sc.Suggestions) == 0
		}
		return sc
	}
	if rec, ok := m.Directory.Lookup(st.View.TempleID); ok {
		sc.Temple = &rec
	} else {
		sc.NotFound = true
	}
	return sc
}
