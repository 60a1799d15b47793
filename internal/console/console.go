// Package console drives one visitor session from a terminal.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/Nixie-Tech-LLC/darshan/internal/session"
)

// ErrQuit is returned by Execute when the user asks to leave.
var ErrQuit = errors.New("quit requested")

// taskWait bounds how long a command waits for a delayed operation.
const taskWait = 10 * time.Second

type Console struct {
	Manager   *session.Manager
	SessionID string
	Out       io.Writer
	RL        *readline.Instance
}

func New(m *session.Manager, sessionID string, rl *readline.Instance) *Console {
	return &Console{Manager: m, SessionID: sessionID, Out: rl.Stdout(), RL: rl}
}

// Run reads commands until quit, EOF or ctx is done.
func (c *Console) Run(ctx context.Context) error {
	if err := c.render(ctx); err != nil {
		return err
	}
	// closing unblocks a pending Readline with io.EOF
	stop := context.AfterFunc(ctx, func() { c.RL.Close() })
	defer stop()

	for ctx.Err() == nil {
		line, err := c.RL.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			fmt.Fprintln(c.Out, "Use 'quit' to leave.")
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		err = c.Execute(ctx, ParseArgs(line))
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(c.Out, "! %s\n", describe(err))
		}
	}
	return ctx.Err()
}

// ParseArgs splits a line on spaces, keeping double-quoted runs together.
func ParseArgs(input string) []string {
	var args []string
	var current strings.Builder
	inQuotes := false
	quoted := false

	for _, r := range input {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			quoted = true
		case r == ' ' && !inQuotes:
			if current.Len() > 0 || quoted {
				args = append(args, current.String())
				current.Reset()
			}
			quoted = false
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 || quoted {
		args = append(args, current.String())
	}
	return args
}

// describe turns a session error into something a person can act on.
func describe(err error) string {
	switch {
	case errors.Is(err, session.ErrWrongView):
		return "not available on this screen"
	case errors.Is(err, session.ErrBusy):
		return "still working on the previous request"
	case errors.Is(err, session.ErrStale):
		return "that result is no longer relevant"
	default:
		return err.Error()
	}
}

func (c *Console) await(ctx context.Context, task *session.Task) error {
	wctx, cancel := context.WithTimeout(ctx, taskWait)
	defer cancel()
	return task.Wait(wctx)
}
