// Package command encapsulates reversible scheduling mutations and the LIFO
// history used to undo them. A History is constructed per request or session
// and passed explicitly by the caller; it is never process-global.
package command

import (
	"context"
	"sync"
)

// Command is one reversible unit of work. Execute captures whatever prior
// state Undo needs to invert it.
type Command interface {
	Execute(ctx context.Context) error
	Undo(ctx context.Context) error
	Describe() string
}

// History is the invoker: a mutex-guarded LIFO stack of executed commands.
type History struct {
	mu    sync.Mutex
	stack []Command
}

func NewHistory() *History {
	return &History{}
}

// Execute runs the command and, on success, pushes it onto the history.
func (h *History) Execute(ctx context.Context, cmd Command) error {
	if err := cmd.Execute(ctx); err != nil {
		return err
	}
	h.mu.Lock()
	h.stack = append(h.stack, cmd)
	h.mu.Unlock()
	return nil
}

// UndoLast undoes the most recently executed command. An empty history is a
// no-op. The entry is only popped when the undo succeeds, so a failed undo
// can be retried.
func (h *History) UndoLast(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := len(h.stack)
	if n == 0 {
		return nil
	}
	cmd := h.stack[n-1]
	if err := cmd.Undo(ctx); err != nil {
		return err
	}
	h.stack = h.stack[:n-1]
	return nil
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.stack)
}
