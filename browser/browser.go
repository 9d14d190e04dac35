/*
Copyright 2025, 2026 Dima Krasner

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package browser implements the interactive Gemini browser.
//
// The browser is a two-mode state machine: in editing mode the address bar
// has focus and in normal mode the body viewport does. Requests are
// synchronous and block the event loop, since only one request can be in
// flight at a time.
package browser

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dimkr/dioscuri/bookmarks"
	"github.com/dimkr/dioscuri/cfg"
	"github.com/dimkr/dioscuri/gemini"
	"github.com/dimkr/dioscuri/gemtext"
	"github.com/dimkr/dioscuri/hist"
)

type mode int

const (
	modeNormal mode = iota
	modeEditing
)

const addressHeight = 3

type tickMsg time.Time

type Model struct {
	config  *cfg.Config
	client  *gemini.Client
	history *hist.History
	marks   *bookmarks.List

	mode   mode
	input  editor
	scroll scroller

	width  int
	height int

	body   string
	lines  []gemtext.Line
	rows   []row
	loaded bool
	errMsg string
}

var (
	focusedBorder = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("12"))
	blurredBorder = lipgloss.NewStyle().Border(lipgloss.NormalBorder())
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	hintStyle     = lipgloss.NewStyle().Bold(true)

	headingStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	subHeadingStyle = lipgloss.NewStyle().Underline(true)
	linkStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Underline(true)
	quoteStyle      = lipgloss.NewStyle().Italic(true)
)

// New returns a browser showing an empty page, in editing mode with the
// default URL pre-populated so the user can immediately edit or submit it.
// history and marks may be nil.
func New(config *cfg.Config, client *gemini.Client, history *hist.History, marks *bookmarks.List) Model {
	return Model{
		config:  config,
		client:  client,
		history: history,
		marks:   marks,
		mode:    modeEditing,
		input:   newEditor(config.DefaultURL),
		width:   80,
		height:  24,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.config.TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.reflow()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}

		if m.mode == modeNormal {
			return m.updateNormal(msg)
		}
		return m.updateEditing(msg)
	}

	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		m.scroll.Up()

	case key.Matches(msg, keys.Down):
		m.scroll.Down()

	case key.Matches(msg, keys.Edit):
		m.mode = modeEditing
		m.input.MoveEnd()

	case key.Matches(msg, keys.History):
		m.showHistory()

	case key.Matches(msg, keys.Bookmarks):
		m.showBookmarks()

	case key.Matches(msg, keys.Escape):
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Submit):
		m.submit()

	case key.Matches(msg, keys.Backspace):
		m.input.DeleteBack()

	case key.Matches(msg, keys.Left):
		m.input.Left()

	case key.Matches(msg, keys.Right):
		m.input.Right()

	case key.Matches(msg, keys.Escape):
		// leaving the address bar before the first page is loaded would
		// strand the user in front of an empty body
		if !m.loaded {
			return m, tea.Quit
		}
		m.mode = modeNormal

	default:
		switch msg.Type {
		case tea.KeyRunes:
			for _, r := range msg.Runes {
				m.input.Insert(r)
			}

		case tea.KeySpace:
			m.input.Insert(' ')
		}
	}

	return m, nil
}

// submit requests the typed address. On failure the browser stays in editing
// mode with the address and the previous body intact, so the user can fix
// the address and resubmit.
func (m *Model) submit() {
	url := m.input.Text()

	body, err := m.client.Request(context.Background(), url)
	if err != nil {
		slog.Warn("Request failed", "url", url, "error", err)
		m.errMsg = err.Error()
		return
	}

	m.errMsg = ""
	m.setBody(body)
	m.input.MoveEnd()
	m.mode = modeNormal

	if m.history != nil {
		if err := m.history.Record(context.Background(), url); err != nil {
			slog.Warn("Failed to record visit", "url", url, "error", err)
		}
	}
}

func (m *Model) setBody(body string) {
	m.body = body
	m.lines = gemtext.Parse(body)
	m.loaded = true
	m.scroll.Reset()
	m.reflow()
}

func (m *Model) reflow() {
	m.rows = wrapLines(m.lines, m.bodyWidth())
	m.scroll.Recompute(len(m.rows), m.bodyHeight())
}

func (m *Model) showHistory() {
	if m.history == nil {
		m.errMsg = "history is disabled"
		return
	}

	visits, err := m.history.Last(context.Background(), m.config.HistoryPageSize)
	if err != nil {
		slog.Warn("Failed to load history", "error", err)
		m.errMsg = err.Error()
		return
	}

	var page strings.Builder
	page.WriteString("# History\n\n")
	for _, visit := range visits {
		fmt.Fprintf(&page, "=> %s %s %s\n", visit.URL, visit.Visited.Format(time.DateTime), visit.URL)
	}

	m.errMsg = ""
	m.setBody(page.String())
}

func (m *Model) showBookmarks() {
	if m.marks == nil {
		m.errMsg = "bookmarks are disabled"
		return
	}

	var page strings.Builder
	page.WriteString("# Bookmarks\n\n")
	for _, mark := range m.marks.All() {
		fmt.Fprintf(&page, "=> %s %s\n", mark.URL, mark.Title)
	}

	m.errMsg = ""
	m.setBody(page.String())
}

func (m Model) bodyWidth() int {
	return max(m.width-2, 1)
}

func (m Model) bodyHeight() int {
	return max(m.height-addressHeight-3, 1)
}

func (m Model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderAddress(),
		m.renderBody(),
		m.renderFooter(),
	)
}

// renderAddress draws the address bar, with a visible cursor while in
// editing mode.
func (m Model) renderAddress() string {
	text := m.input.Text()

	if m.mode != modeEditing {
		return blurredBorder.Width(m.bodyWidth()).Render(text)
	}

	i := m.input.byteIndex()
	line := text
	if i == len(text) {
		line += cursorStyle.Render(" ")
	} else {
		r, n := utf8.DecodeRuneInString(text[i:])
		line = text[:i] + cursorStyle.Render(string(r)) + text[i+n:]
	}

	return focusedBorder.Width(m.bodyWidth()).Render(line)
}

func (m Model) renderBody() string {
	visible := m.bodyHeight()

	offset := m.scroll.Offset()
	end := min(offset+visible, len(m.rows))

	lines := make([]string, 0, visible)
	if offset < end {
		for _, r := range m.rows[offset:end] {
			lines = append(lines, styleRow(r))
		}
	}
	for len(lines) < visible {
		lines = append(lines, "")
	}

	border := blurredBorder
	if m.mode == modeNormal {
		border = focusedBorder
	}

	return border.Width(m.bodyWidth()).Render(strings.Join(lines, "\n"))
}

func styleRow(r row) string {
	switch r.Type {
	case gemtext.Heading:
		return headingStyle.Render(r.Text)
	case gemtext.SubHeading:
		return subHeadingStyle.Render(r.Text)
	case gemtext.Link:
		return linkStyle.Render(r.Text)
	case gemtext.Quote:
		return quoteStyle.Render(r.Text)
	default:
		return r.Text
	}
}

func (m Model) renderFooter() string {
	if m.errMsg != "" {
		return errorStyle.Render(m.errMsg)
	}

	if m.mode == modeNormal {
		return hintStyle.Render("/ - edit the address | ↑/↓ - scroll | esc - quit")
	}

	return hintStyle.Render("enter - request address | esc - focus the body")
}
