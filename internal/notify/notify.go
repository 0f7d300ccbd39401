// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package notify provides the feedback capability used by the interaction
// handler: toasts and alerts for outcomes, and an optional confirmation
// prompt.
package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

type Level int

const (
	Success Level = iota
	Info
	Warning
	Error
)

func (l Level) String() string {
	switch l {
	case Success:
		return "success"
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Notice is one piece of user feedback. Toast notices are transient and may
// be rendered less prominently.
type Notice struct {
	Level Level
	Title string
	Body  string
	Toast bool
}

func (n Notice) String() string {
	if n.Body == "" {
		return n.Title
	}
	return n.Title + " " + n.Body
}

type Notifier interface {
	Notify(Notice)
}

// Confirmer asks the user a yes/no question. A nil Confirmer means the
// capability is unavailable.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// Discard drops every notice.
var Discard Notifier = NotifierFunc(func(Notice) {})

// Alert is the plain fallback: one unadorned line per notice.
type Alert struct {
	W io.Writer
}

func (a Alert) Notify(n Notice) {
	w := a.W
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintln(w, n.String())
}

var (
	badgeStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	bodyStyle  = lipgloss.NewStyle().Faint(true)
	levelColor = map[Level]lipgloss.Color{
		Success: lipgloss.Color("#22c55e"),
		Info:    lipgloss.Color("#00c8f0"),
		Warning: lipgloss.Color("#f6be00"),
		Error:   lipgloss.Color("#ef4444"),
	}
	levelIcon = map[Level]string{
		Success: "✓",
		Info:    "i",
		Warning: "!",
		Error:   "✗",
	}
)

// Styled renders each notice as a colored badge line, the terminal version of
// a toast.
type Styled struct {
	W io.Writer
}

func (s Styled) Notify(n Notice) {
	w := s.W
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintln(w, Render(n))
}

// Render formats n as a single styled line.
func Render(n Notice) string {
	badge := badgeStyle.Foreground(levelColor[n.Level]).Render(levelIcon[n.Level])
	line := badge + n.Title
	if n.Body != "" {
		line += " " + bodyStyle.Render(n.Body)
	}
	return line
}

// Recorder keeps every notice it receives.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// Last returns the most recent notice.
func (r *Recorder) Last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = nil
}

// Fixed answers every confirmation with the same value.
type Fixed bool

func (f Fixed) Confirm(context.Context, string) (bool, error) {
	return bool(f), nil
}

// isYes accepts y/yes in any case.
func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
