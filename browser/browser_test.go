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

package browser

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/dimkr/dioscuri/cfg"
	"github.com/dimkr/dioscuri/gemini"
)

func newTestModel(t *testing.T) Model {
	var config cfg.Config
	config.FillDefaults()

	client, err := gemini.NewClient(&config)
	if err != nil {
		t.Fatalf("Failed to create a client: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	return New(&config, client, nil, nil)
}

func press(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	newModel, cmd := m.Update(msg)
	return newModel.(Model), cmd
}

func typeRune(m Model, r rune) Model {
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return m
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestBrowser_StartsEditingDefaultURL(t *testing.T) {
	assert := assert.New(t)

	m := newTestModel(t)

	assert.Equal(modeEditing, m.mode)
	assert.Equal(m.config.DefaultURL, m.input.Text())
	assert.Equal(len([]rune(m.config.DefaultURL)), m.input.Cursor())
}

func TestBrowser_BackspaceThenType(t *testing.T) {
	assert := assert.New(t)

	m := newTestModel(t)
	m.input = newEditor("abc")

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	m = typeRune(m, 'd')

	assert.Equal("abd", m.input.Text())
	assert.Equal(3, m.input.Cursor())
}

func TestBrowser_EscapeBeforeFirstPageQuits(t *testing.T) {
	m := newTestModel(t)

	_, cmd := press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, isQuit(cmd))
}

func TestBrowser_EscapeAfterPageFocusesBody(t *testing.T) {
	assert := assert.New(t)

	m := newTestModel(t)
	m.setBody("# Hi\n")

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(isQuit(cmd))
	assert.Equal(modeNormal, m.mode)

	// slash re-enters editing mode with the cursor at the end
	m.input.Left()
	m = typeRune(m, '/')
	assert.Equal(modeEditing, m.mode)
	assert.Equal(len([]rune(m.input.Text())), m.input.Cursor())
}

func TestBrowser_EscapeInNormalModeQuits(t *testing.T) {
	m := newTestModel(t)
	m.setBody("# Hi\n")
	m.mode = modeNormal

	_, cmd := press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, isQuit(cmd))
}

func TestBrowser_ScrollKeys(t *testing.T) {
	assert := assert.New(t)

	m := newTestModel(t)
	m.width = 20
	m.height = 10
	m.setBody(strings.Repeat("line\n", 50))
	m.mode = modeNormal

	assert.Greater(m.scroll.Max(), 0)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(2, m.scroll.Offset())

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(1, m.scroll.Offset())

	for range 1000 {
		m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(m.scroll.Max(), m.scroll.Offset())
}

func TestBrowser_ScrollKeysInactiveWhileEditing(t *testing.T) {
	m := newTestModel(t)
	m.setBody(strings.Repeat("line\n", 50))
	m.mode = modeEditing

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, m.scroll.Offset())
}

func TestBrowser_ResizeRecomputesBounds(t *testing.T) {
	assert := assert.New(t)

	m := newTestModel(t)
	m.setBody(strings.Repeat("line\n", 30))
	m.mode = modeNormal

	for range 30 {
		m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	before := m.scroll.Offset()

	newModel, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 100})
	m = newModel.(Model)

	assert.Equal(0, m.scroll.Max())
	assert.Less(m.scroll.Offset(), before+1)
	assert.LessOrEqual(m.scroll.Offset(), m.scroll.Max())
}

func TestBrowser_FailedRequestKeepsAddressAndBody(t *testing.T) {
	assert := assert.New(t)

	m := newTestModel(t)
	m.setBody("old page\n")

	m.input = newEditor("gemini://")

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(isQuit(cmd))
	assert.Equal(modeEditing, m.mode)
	assert.Equal("gemini://", m.input.Text())
	assert.Equal("old page\n", m.body)
	assert.NotEmpty(m.errMsg)

	assert.Contains(m.View(), m.errMsg)
}

func TestBrowser_ViewShowsBody(t *testing.T) {
	assert := assert.New(t)

	m := newTestModel(t)
	m.setBody("# Title\nhello world\n")
	m.mode = modeNormal

	view := m.View()
	assert.Contains(view, "Title")
	assert.Contains(view, "hello world")
}

func TestBrowser_CharacterKeysIgnoredInNormalMode(t *testing.T) {
	m := newTestModel(t)
	m.setBody("# Hi\n")
	m.mode = modeNormal

	before := m.input.Text()
	m = typeRune(m, 'x')
	assert.Equal(t, before, m.input.Text())
}
