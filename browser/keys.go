/*
Copyright 2025 Dima Krasner

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
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Edit      key.Binding
	History   key.Binding
	Bookmarks key.Binding

	Submit    key.Binding
	Backspace key.Binding
	Left      key.Binding
	Right     key.Binding

	Escape key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "scroll up")),
	Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "scroll down")),
	Edit:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "edit the address")),
	History:   key.NewBinding(key.WithKeys("ctrl+h"), key.WithHelp("ctrl+h", "history")),
	Bookmarks: key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "bookmarks")),

	Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "request address")),
	Backspace: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "delete")),
	Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "move left")),
	Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "move right")),

	Escape: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}
