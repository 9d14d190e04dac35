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

// scroller tracks a scroll offset bounded by the wrapped line count and the
// visible height, so scrolling stops once the last full page is in view
// instead of running until content is exhausted.
type scroller struct {
	offset int
	max    int
}

// Recompute derives the maximum offset from the current content and render
// area and clamps the offset to it. It must run whenever the body or the
// visible area changes, since the bound can shrink.
func (s *scroller) Recompute(rows, height int) {
	if height < 1 {
		height = 1
	}

	pages := rows / height
	remainder := rows % height

	s.max = height * max(pages-1, 0)
	if pages > 0 {
		s.max += remainder
	}

	s.offset = min(max(s.offset, 0), s.max)
}

func (s *scroller) Up() {
	if s.offset > 0 {
		s.offset--
	}
}

func (s *scroller) Down() {
	if s.offset < s.max {
		s.offset++
	}
}

func (s *scroller) Reset() {
	s.offset = 0
}

func (s *scroller) Offset() int {
	return s.offset
}

func (s *scroller) Max() int {
	return s.max
}
