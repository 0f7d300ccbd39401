// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package tui is the interactive cart page: the cart list, a catalog pane,
// a quantity editor, the clear confirmation and the checkout form. Every
// change goes through the session's interaction handler.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/staranto/cartctl/internal/cart"
	"github.com/staranto/cartctl/internal/interact"
	"github.com/staranto/cartctl/internal/notify"
	"github.com/staranto/cartctl/internal/session"
)

type mode int

const (
	modeBrowse mode = iota
	modeQty
	modeConfirmClear
	modeCheckout
)

type pane int

const (
	paneCart pane = iota
	paneCatalog
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f6be00"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00c8f0")).Bold(true)
	faintStyle    = lipgloss.NewStyle().Faint(true)
	totalStyle    = lipgloss.NewStyle().Bold(true)
	paneStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	activeBorder  = lipgloss.Color("#00c8f0")
	passiveBorder = lipgloss.Color("#555555")
)

// Model is the bubbletea model for one cart session.
type Model struct {
	ctx     context.Context
	session *session.Session
	notices *notify.Recorder

	keys keyMap
	help help.Model

	mode      mode
	pane      pane
	cursor    int
	catCursor int

	qty   textinput.Model
	name  textinput.Model
	email textinput.Model
	field int

	status    notify.Notice
	hasStatus bool
	renders   int
}

// Open starts a session bound to a new model. The model supplies the
// session's notifier and its render and form reset hooks; confirmation of
// clear happens in the page itself.
func Open(ctx context.Context, opts session.Options) (*Model, error) {
	m := newModel(ctx)
	opts.Notifier = m.notices
	opts.Confirmer = nil
	opts.OnRender = func() { m.renders++ }
	opts.ResetForm = m.ResetForm

	s, err := session.Open(ctx, opts)
	if err != nil {
		return nil, err
	}
	m.session = s
	return m, nil
}

func newModel(ctx context.Context) *Model {
	qty := textinput.New()
	qty.Placeholder = "qty"
	qty.CharLimit = 4
	qty.Width = 6

	name := textinput.New()
	name.Placeholder = "Name"
	name.CharLimit = 80
	name.Width = 30

	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 120
	email.Width = 30

	return &Model{
		ctx:     ctx,
		notices: &notify.Recorder{},
		keys:    defaultKeys(),
		help:    help.New(),
		qty:     qty,
		name:    name,
		email:   email,
	}
}

// Run drives m until the user quits.
func Run(ctx context.Context, m *Model) error {
	defer m.session.Close()
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// Session returns the underlying session.
func (m *Model) Session() *session.Session {
	return m.session
}

// ResetForm clears the checkout form and returns to browsing.
func (m *Model) ResetForm() {
	if m == nil {
		return
	}
	m.name.Reset()
	m.email.Reset()
	m.name.Blur()
	m.email.Blur()
	m.field = 0
	m.mode = modeBrowse
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeQty:
			return m.updateQty(msg)
		case modeConfirmClear:
			return m.updateConfirm(msg)
		case modeCheckout:
			return m.updateCheckout(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Pane):
		if m.pane == paneCart && m.session.Catalog.Len() > 0 {
			m.pane = paneCatalog
		} else {
			m.pane = paneCart
		}
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.Checkout):
		m.mode = modeCheckout
		m.field = 0
		m.email.Blur()
		return m, m.name.Focus()
	case key.Matches(msg, m.keys.Clear):
		if m.session.Store.Len() > 0 {
			m.mode = modeConfirmClear
		}
	case m.pane == paneCatalog && key.Matches(msg, m.keys.Add):
		m.addSelected()
	case m.pane == paneCart:
		return m.updateRow(msg)
	}
	return m, nil
}

func (m *Model) updateRow(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	it, ok := m.selected()
	if !ok {
		return m, nil
	}

	var role interact.Role
	switch {
	case key.Matches(msg, m.keys.Inc):
		role = interact.RoleIncrement
	case key.Matches(msg, m.keys.Dec):
		role = interact.RoleDecrement
	case key.Matches(msg, m.keys.Remove):
		role = interact.RoleRemove
	case key.Matches(msg, m.keys.Qty):
		m.mode = modeQty
		m.qty.Reset()
		m.qty.Placeholder = strconv.Itoa(it.Qty)
		return m, m.qty.Focus()
	default:
		return m, nil
	}

	m.dispatch(interact.Event{Role: role, ID: it.ID})
	m.clampCursor()
	return m, nil
}

func (m *Model) updateQty(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.qty.Blur()
		m.mode = modeBrowse
		return m, nil
	case "enter":
		if it, ok := m.selected(); ok {
			m.dispatch(interact.Event{Role: interact.RoleQuantity, ID: it.ID, Value: m.qty.Value()})
		}
		m.qty.Blur()
		m.mode = modeBrowse
		return m, nil
	}

	var cmd tea.Cmd
	m.qty, cmd = m.qty.Update(msg)
	return m, cmd
}

func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "y":
		m.mode = modeBrowse
		m.dispatch(interact.Event{Role: interact.RoleClear})
		m.clampCursor()
	case "n", "esc", "q":
		m.mode = modeBrowse
	}
	return m, nil
}

func (m *Model) updateCheckout(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.name.Blur()
		m.email.Blur()
		m.mode = modeBrowse
		return m, nil
	case "tab", "shift+tab", "up", "down":
		return m, m.focusField(1 - m.field)
	case "enter":
		// An empty cart keeps the form and its values.
		_ = m.dispatch(interact.Event{
			Role: interact.RoleCheckout,
			Fields: map[string]string{
				"name":  m.name.Value(),
				"email": m.email.Value(),
			},
		})
		m.clampCursor()
		return m, nil
	}

	var cmd tea.Cmd
	if m.field == 0 {
		m.name, cmd = m.name.Update(msg)
	} else {
		m.email, cmd = m.email.Update(msg)
	}
	return m, cmd
}

func (m *Model) focusField(i int) tea.Cmd {
	m.field = i
	if i == 0 {
		m.email.Blur()
		return m.name.Focus()
	}
	m.name.Blur()
	return m.email.Focus()
}

// dispatch routes ev through the session and surfaces the last notice, or
// the error when the handler raised none.
func (m *Model) dispatch(ev interact.Event) error {
	return m.surface(string(ev.Role), func() error { return m.session.Dispatch(m.ctx, ev) })
}

func (m *Model) surface(what string, fn func() error) error {
	m.notices.Reset()
	err := fn()
	if n, ok := m.notices.Last(); ok {
		m.status, m.hasStatus = n, true
	} else if err != nil {
		m.status, m.hasStatus = notify.Notice{Level: notify.Error, Title: err.Error()}, true
	}
	if err != nil {
		log.WithError(err).Debugf("dispatch %s", what)
	}
	return err
}

func (m *Model) addSelected() {
	entries := m.session.Catalog.Entries()
	if m.catCursor >= len(entries) {
		return
	}
	p := entries[m.catCursor].Product()
	_ = m.surface(string(interact.RoleAdd), func() error { return m.session.AddProduct(m.ctx, p) })
}

func (m *Model) selected() (cart.LineItem, bool) {
	items := m.session.Store.Items()
	if m.cursor < 0 || m.cursor >= len(items) {
		return cart.LineItem{}, false
	}
	return items[m.cursor], true
}

func (m *Model) move(delta int) {
	if m.pane == paneCatalog {
		m.catCursor = clamp(m.catCursor+delta, m.session.Catalog.Len())
		return
	}
	m.cursor = clamp(m.cursor+delta, m.session.Store.Len())
}

func (m *Model) clampCursor() {
	m.cursor = clamp(m.cursor, m.session.Store.Len())
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Cart (%d)", m.session.Count())))
	b.WriteString("\n\n")

	cartPane := m.renderCart()
	if m.session.Catalog.Len() > 0 {
		cartPane = lipgloss.JoinHorizontal(lipgloss.Top, cartPane, " ", m.renderCatalog())
	}
	b.WriteString(cartPane)
	b.WriteString("\n")

	switch m.mode {
	case modeQty:
		b.WriteString("Quantity: " + m.qty.View() + "\n")
	case modeConfirmClear:
		b.WriteString("Empty the cart? [y/N]\n")
	case modeCheckout:
		b.WriteString(titleStyle.Render("Checkout") + "\n")
		b.WriteString(m.name.View() + "\n")
		b.WriteString(m.email.View() + "\n")
	}

	if m.hasStatus {
		b.WriteString(notify.Render(m.status) + "\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderCart() string {
	v := m.session.View()
	f := m.session.Formatter

	var lines []string
	if v.Empty {
		lines = append(lines, faintStyle.Render(v.Placeholder))
	}
	for i, r := range v.Rows {
		prefix := "  "
		if i == m.cursor && m.pane == paneCart {
			prefix = cursorStyle.Render("> ")
		}
		lines = append(lines, fmt.Sprintf("%s%-20s %12s x%-3d %12s",
			prefix, r.Title, f.Format(r.UnitPrice), r.Qty, f.Format(r.LineTotal)))
	}

	lines = append(lines, "",
		fmt.Sprintf("%-12s %s", "Subtotal", f.Format(v.Subtotal)),
		fmt.Sprintf("%-12s %s", "Shipping", f.Format(v.Shipping)),
		totalStyle.Render(fmt.Sprintf("%-12s %s", "Total", f.Format(v.Total))),
	)

	return m.frame(paneCart).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderCatalog() string {
	f := m.session.Formatter
	lines := []string{titleStyle.Render("Catalog")}
	for i, e := range m.session.Catalog.Entries() {
		prefix := "  "
		if i == m.catCursor && m.pane == paneCatalog {
			prefix = cursorStyle.Render("> ")
		}
		lines = append(lines, fmt.Sprintf("%s%-16s %12s", prefix, e.Title, f.Format(e.Price)))
	}
	return m.frame(paneCatalog).Render(strings.Join(lines, "\n"))
}

func (m *Model) frame(p pane) lipgloss.Style {
	if m.pane == p && m.mode == modeBrowse {
		return paneStyle.BorderForeground(activeBorder)
	}
	return paneStyle.BorderForeground(passiveBorder)
}
