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
	"unicode/utf8"
)

// editor is a single editable line of text with a cursor.
//
// The cursor is a rune offset, not a byte offset, and stays within
// [0, rune length] after every operation.
type editor struct {
	text   string
	cursor int
}

func newEditor(text string) editor {
	return editor{text: text, cursor: utf8.RuneCountInString(text)}
}

// byteIndex translates the cursor to a byte offset, so that insertion and
// deletion never split a multi-byte rune.
func (e *editor) byteIndex() int {
	i := 0
	for range e.cursor {
		_, n := utf8.DecodeRuneInString(e.text[i:])
		if n == 0 {
			break
		}
		i += n
	}
	return i
}

func (e *editor) Insert(r rune) {
	i := e.byteIndex()
	e.text = e.text[:i] + string(r) + e.text[i:]
	e.Right()
}

func (e *editor) DeleteBack() {
	if e.cursor == 0 {
		return
	}

	end := e.byteIndex()
	_, n := utf8.DecodeLastRuneInString(e.text[:end])
	e.text = e.text[:end-n] + e.text[end:]
	e.Left()
}

func (e *editor) Left() {
	e.cursor = e.clamp(e.cursor - 1)
}

func (e *editor) Right() {
	e.cursor = e.clamp(e.cursor + 1)
}

// MoveEnd places the cursor after the last rune.
func (e *editor) MoveEnd() {
	e.cursor = utf8.RuneCountInString(e.text)
}

func (e *editor) clamp(cursor int) int {
	return min(max(cursor, 0), utf8.RuneCountInString(e.text))
}

func (e *editor) Text() string {
	return e.text
}

func (e *editor) Cursor() int {
	return e.cursor
}
