package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/Nixie-Tech-LLC/darshan/internal/model"
	"github.com/Nixie-Tech-LLC/darshan/internal/session"
)

func (c *Console) render(ctx context.Context) error {
	sc, err := c.Manager.Screen(ctx, c.SessionID)
	if err != nil {
		return err
	}
	fmt.Fprint(c.Out, Render(sc))
	return nil
}

// Render draws a screen as plain text.
func Render(sc session.Screen) string {
	var b strings.Builder

	for _, t := range sc.Toasts {
		marker := "*"
		if t.Variant == model.ToastDestructive {
			marker = "!"
		}
		fmt.Fprintf(&b, "%s %s: %s  [%s]\n", marker, t.Title, t.Description, t.ID)
	}

	switch {
	case sc.View.Kind == session.KindLanding:
		renderLanding(&b, sc)
	case sc.NotFound:
		b.WriteString("Temple not found. Type 'back' to return to search.\n")
	case sc.View.Kind == session.KindDetail:
		renderDetail(&b, sc)
	case sc.View.Kind == session.KindAdminLogin:
		renderLogin(&b, sc)
	case sc.View.Kind == session.KindAdminDashboard:
		renderDashboard(&b, sc)
	}
	return b.String()
}

func card(b *strings.Builder, t model.TempleRecord) {
	fmt.Fprintf(b, "  %s %s, %s  [%s crowd, wait %s]  (%s)\n",
		t.Icon, t.Name, t.Location, t.CrowdStatus, t.WaitTime, t.ID)
}

func renderLanding(b *strings.Builder, sc session.Screen) {
	b.WriteString("== Temple Darshan Status ==\n")
	switch {
	case sc.Search.Pending:
		b.WriteString("Searching...\n")
	case sc.Search.Visible:
		fmt.Fprintf(b, "Results for %q:\n", sc.Search.Query)
		for _, t := range sc.Suggestions {
			card(b, t)
		}
		if sc.NoResults {
			fmt.Fprintf(b, "  No temples found matching %q\n", sc.Search.Query)
		}
	}
	b.WriteString("Popular Temples:\n")
	for _, t := range sc.Popular {
		card(b, t)
	}
}

func renderDetail(b *strings.Builder, sc session.Screen) {
	t := sc.Temple
	if t == nil {
		return
	}
	fmt.Fprintf(b, "== %s %s ==\n%s\n%s\n", t.Icon, t.Name, t.Location, t.Description)
	fmt.Fprintf(b, "Crowd: %s  Wait: %s  Updated: %s\n", t.CrowdStatus, t.WaitTime, t.LastUpdated)
	fmt.Fprintf(b, "Opens %s, closes %s\n", t.OpenTime, t.CloseTime)
	for _, s := range t.SpecialTimings {
		fmt.Fprintf(b, "  %s: %s\n", s.Name, s.Time)
	}
	if len(t.Alerts) > 0 {
		b.WriteString("Important Alerts:\n")
		for _, a := range t.Alerts {
			fmt.Fprintf(b, "  - %s\n", a)
		}
	}
	if sc.Notifications {
		b.WriteString("Queue notifications: on\n")
	} else {
		b.WriteString("Queue notifications: off\n")
	}
}

func renderLogin(b *strings.Builder, sc session.Screen) {
	name := ""
	if sc.Temple != nil {
		name = ": " + sc.Temple.Name
	}
	fmt.Fprintf(b, "== Admin Login%s ==\n", name)
	if sc.Login.Username != "" {
		fmt.Fprintf(b, "Username: %s\n", sc.Login.Username)
	}
	if sc.Pending == session.OpLogin {
		b.WriteString("Logging in...\n")
	}
	if sc.LoginHint != "" {
		fmt.Fprintln(b, sc.LoginHint)
	}
}

func renderDashboard(b *strings.Builder, sc session.Screen) {
	name := ""
	if sc.Temple != nil {
		name = sc.Temple.Name + " "
	}
	fmt.Fprintf(b, "== %sAdmin Dashboard ==\n", name)
	fmt.Fprintf(b, "Crowd count: %d\n", sc.Dashboard.CrowdCount)
	fmt.Fprintf(b, "Wait time:   %s\n", sc.Dashboard.WaitTime)
	fmt.Fprintf(b, "Alert draft: %s\n", sc.Dashboard.AlertDraft)
	if sc.Pending != session.OpNone {
		fmt.Fprintf(b, "Working on %s...\n", sc.Pending)
	}
}
