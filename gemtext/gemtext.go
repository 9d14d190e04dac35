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

// Package gemtext parses text/gemini documents into typed lines.
package gemtext

import (
	"strings"
)

type LineType int

const (
	Text LineType = iota
	Link
	Heading
	SubHeading
	Item
	Quote
	Preformatted
)

// Line is a single line of a text/gemini document. URL is set on link lines
// only.
type Line struct {
	Type LineType
	Text string
	URL  string
}

// Parse splits a text/gemini document into typed lines. Parsing is used for
// display only: the protocol-level result stays the raw body.
func Parse(body string) []Line {
	lines := []Line{}

	preformatted := false

	for line := range strings.Lines(body) {
		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")

		if strings.HasPrefix(line, "```") {
			preformatted = !preformatted
		} else if preformatted {
			lines = append(lines, Line{Type: Preformatted, Text: line})
		} else if url, label, ok := parseLink(line); ok {
			lines = append(lines, Line{Type: Link, Text: label, URL: url})
		} else if strings.HasPrefix(line, "## ") {
			lines = append(lines, Line{Type: SubHeading, Text: line[3:]})
		} else if strings.HasPrefix(line, "# ") {
			lines = append(lines, Line{Type: Heading, Text: line[2:]})
		} else if strings.HasPrefix(line, "* ") {
			lines = append(lines, Line{Type: Item, Text: line[2:]})
		} else if strings.HasPrefix(line, "> ") {
			lines = append(lines, Line{Type: Quote, Text: line[2:]})
		} else {
			lines = append(lines, Line{Type: Text, Text: line})
		}
	}

	return lines
}

func parseLink(line string) (string, string, bool) {
	if !strings.HasPrefix(line, "=> ") && !strings.HasPrefix(line, "=>\t") {
		return "", "", false
	}

	rest := strings.TrimLeft(line[2:], " \t")
	if rest == "" {
		return "", "", false
	}

	if i := strings.IndexAny(rest, " \t"); i != -1 {
		return rest[:i], strings.TrimLeft(rest[i+1:], " \t"), true
	}

	// a link line without a label: display the URL itself
	return rest, rest, true
}

// Links collects the URL of every link line, by label.
func Links(lines []Line) map[string]string {
	links := map[string]string{}

	for _, line := range lines {
		if line.Type == Link {
			links[line.Text] = line.URL
		}
	}

	return links
}
