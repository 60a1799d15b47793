package console

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Nixie-Tech-LLC/darshan/internal/session"
)

type handler func(c *Console, ctx context.Context, args []string) error

type command struct {
	run     handler
	syntax  string
	summary string
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"search":     {cmdSearch, "search <text>", "Search temples by name or location."},
		"select":     {cmdSelect, "select <temple id>", "Open a temple's detail page."},
		"popular":    {cmdPopular, "popular", "List the popular temples with their ids."},
		"show":       {cmdShow, "show", "Show the current screen again."},
		"back":       {cmdBack, "back", "Return to the landing page."},
		"directions": {cmdDirections, "directions", "Print the map link for the open temple."},
		"notify":     {cmdNotify, "notify", "Toggle crowd notifications for the open temple."},
		"book":       {stub(session.StubBookPooja), "book", "Book a special pooja."},
		"map":        {stub(session.StubViewOnMap), "map", "View the temple on a map."},
		"safety":     {stub(session.StubSafetyGuidelines), "safety", "Read the safety guidelines."},
		"admin":      {cmdAdmin, "admin", "Open the admin login for the open temple."},
		"login":      {cmdLogin, "login <username> <password>", "Log in as the temple admin."},
		"cancel":     {cmdCancel, "cancel", "Leave the admin login form."},
		"crowd":      {cmdCrowd, "crowd <count>", "Set the crowd count draft."},
		"wait":       {cmdWait, "wait <text>", "Set the wait time draft."},
		"draft":      {cmdDraft, "draft <text>", "Set the alert message draft."},
		"status":     {cmdStatus, "status", "Submit the live status update."},
		"publish":    {cmdPublish, "publish", "Publish the alert draft."},
		"logout":     {cmdLogout, "logout", "Leave the admin dashboard."},
		"lang":       {cmdLang, "lang <code>", "Change the display language."},
		"dismiss":    {cmdDismiss, "dismiss <toast id>", "Dismiss a notification."},
		"help":       {cmdHelp, "help [command]", "Show this list, or one command."},
		"quit":       {cmdQuit, "quit", "Leave the console."},
	}
}

// Execute runs one parsed command line and prints the resulting screen.
func (c *Console) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command provided")
	}
	name := strings.ToLower(args[0])
	if name == "exit" {
		name = "quit"
	}
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command: %s (try 'help')", args[0])
	}

	err := cmd.run(c, ctx, args[1:])
	switch {
	case errors.Is(err, errNoRender):
		return nil
	case err == nil, errors.Is(err, session.ErrInvalidCredentials):
		// a failed login is reported by its notification
		return c.render(ctx)
	case errors.Is(err, session.ErrValidation):
		if rerr := c.render(ctx); rerr != nil {
			return rerr
		}
		return err
	default:
		return err
	}
}

// errNoRender marks commands that printed their own output.
var errNoRender = errors.New("no render")

func usage(name string) error {
	return fmt.Errorf("usage: %s", commands[name].syntax)
}

func cmdSearch(c *Console, ctx context.Context, args []string) error {
	task, err := c.Manager.SetQuery(ctx, c.SessionID, strings.Join(args, " "))
	if err != nil {
		return err
	}
	return c.await(ctx, task)
}

func cmdSelect(c *Console, ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("select")
	}
	return c.Manager.Select(ctx, c.SessionID, args[0])
}

func cmdPopular(c *Console, ctx context.Context, _ []string) error {
	for _, t := range c.Manager.Machine().Directory.Popular() {
		fmt.Fprintf(c.Out, "  %-20s %s %s (%s)\n", t.ID, t.Icon, t.Name, t.Location)
	}
	return errNoRender
}

func cmdShow(*Console, context.Context, []string) error { return nil }

func cmdBack(c *Console, ctx context.Context, _ []string) error {
	return c.Manager.Back(ctx, c.SessionID)
}

func cmdDirections(c *Console, ctx context.Context, _ []string) error {
	link, err := c.Manager.Directions(ctx, c.SessionID)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.Out, link)
	return nil
}

func cmdNotify(c *Console, ctx context.Context, _ []string) error {
	_, err := c.Manager.ToggleNotifications(ctx, c.SessionID)
	return err
}

func stub(s session.Stub) handler {
	return func(c *Console, ctx context.Context, _ []string) error {
		return c.Manager.Acknowledge(ctx, c.SessionID, s)
	}
}

func cmdAdmin(c *Console, ctx context.Context, _ []string) error {
	return c.Manager.OpenAdminLogin(ctx, c.SessionID)
}

func cmdLogin(c *Console, ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("login")
	}
	task, err := c.Manager.SubmitLogin(ctx, c.SessionID, args[0], args[1])
	if err != nil {
		return err
	}
	return c.await(ctx, task)
}

func cmdCancel(c *Console, ctx context.Context, _ []string) error {
	return c.Manager.CancelLogin(ctx, c.SessionID)
}

func cmdCrowd(c *Console, ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("crowd")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return usage("crowd")
	}
	return c.Manager.EditDashboard(ctx, c.SessionID, session.DashboardEdit{CrowdCount: &n})
}

func cmdWait(c *Console, ctx context.Context, args []string) error {
	v := strings.Join(args, " ")
	return c.Manager.EditDashboard(ctx, c.SessionID, session.DashboardEdit{WaitTime: &v})
}

func cmdDraft(c *Console, ctx context.Context, args []string) error {
	v := strings.Join(args, " ")
	return c.Manager.EditDashboard(ctx, c.SessionID, session.DashboardEdit{AlertDraft: &v})
}

func cmdStatus(c *Console, ctx context.Context, _ []string) error {
	task, err := c.Manager.UpdateStatus(ctx, c.SessionID)
	if err != nil {
		return err
	}
	return c.await(ctx, task)
}

func cmdPublish(c *Console, ctx context.Context, _ []string) error {
	task, err := c.Manager.PublishAlert(ctx, c.SessionID)
	if err != nil {
		return err
	}
	return c.await(ctx, task)
}

func cmdLogout(c *Console, ctx context.Context, _ []string) error {
	return c.Manager.Logout(ctx, c.SessionID)
}

func cmdLang(c *Console, ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("lang")
	}
	return c.Manager.SetLanguage(ctx, c.SessionID, args[0])
}

func cmdDismiss(c *Console, ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("dismiss")
	}
	return c.Manager.DismissToast(ctx, c.SessionID, args[0])
}

func cmdHelp(c *Console, _ context.Context, args []string) error {
	if len(args) > 0 {
		cmd, ok := commands[strings.ToLower(args[0])]
		if !ok {
			return fmt.Errorf("unknown command: %s", args[0])
		}
		fmt.Fprintf(c.Out, "%s\n  %s\n", cmd.syntax, cmd.summary)
		return errNoRender
	}

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(c.Out, "Available commands:")
	for _, name := range names {
		fmt.Fprintf(c.Out, "  %-30s %s\n", commands[name].syntax, commands[name].summary)
	}
	return errNoRender
}

func cmdQuit(*Console, context.Context, []string) error { return ErrQuit }
