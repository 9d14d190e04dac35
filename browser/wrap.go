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
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dimkr/dioscuri/gemtext"
)

// row is a single display row: one wrapped slice of a document line,
// carrying the line type so rendering can style it.
type row struct {
	Type gemtext.LineType
	Text string
}

// wrapLines word-wraps every document line to the given display width and
// flattens the result into rows. Tabs are replaced with spaces.
func wrapLines(lines []gemtext.Line, width int) []row {
	if width < 1 {
		width = 1
	}

	var rows []row
	for _, line := range lines {
		for _, text := range wrapLine(strings.ReplaceAll(line.Text, "\t", " "), width) {
			rows = append(rows, row{Type: line.Type, Text: text})
		}
	}

	return rows
}

// wrapLine wraps a single line at word boundaries, breaking words longer
// than the width. An empty line yields one empty row.
func wrapLine(line string, width int) []string {
	if runewidth.StringWidth(line) <= width {
		return []string{line}
	}

	var wrapped []string
	var current strings.Builder
	currentWidth := 0

	flush := func() {
		wrapped = append(wrapped, current.String())
		current.Reset()
		currentWidth = 0
	}

	for i, word := range strings.Split(line, " ") {
		w := runewidth.StringWidth(word)

		sep := 0
		if i > 0 && currentWidth > 0 {
			sep = 1
		}

		if currentWidth+sep+w > width && currentWidth > 0 {
			flush()
			sep = 0
		}

		if w > width {
			// a single word wider than the row: hard-break it
			for _, r := range word {
				rw := runewidth.RuneWidth(r)
				if currentWidth+rw > width && currentWidth > 0 {
					flush()
				}
				current.WriteRune(r)
				currentWidth += rw
			}
			continue
		}

		if sep > 0 {
			current.WriteByte(' ')
			currentWidth++
		}
		current.WriteString(word)
		currentWidth += w
	}

	if currentWidth > 0 || len(wrapped) == 0 {
		flush()
	}

	return wrapped
}
