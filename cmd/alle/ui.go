package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/services/chat"
)

// terminalUI prints notices and navigation to stderr. Title updates arrive
// from a background goroutine.
type terminalUI struct {
	mu sync.Mutex
	w  io.Writer
}

func newTerminalUI(w io.Writer) *terminalUI {
	return &terminalUI{w: w}
}

func (u *terminalUI) Notify(n chat.Notice) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fmt.Fprintf(u.w, "[%s] %s: %s\n", n.Kind, n.Title, n.Message)
	if n.Action == chat.ActionRetry {
		fmt.Fprintln(u.w, "Run the same command again to retry.")
	}
}

func (u *terminalUI) Navigate(route string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fmt.Fprintf(u.w, "opened %s\n", route)
}

func (u *terminalUI) SetDocumentTitle(title string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fmt.Fprintf(u.w, "title: %s\n", title)
}
