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

// Package bookmarks loads a user-maintained bookmarks file and reloads it
// when it changes.
package bookmarks

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// List is a list of bookmarks, reloaded when the backing file changes.
type List struct {
	lock  sync.Mutex
	wg    sync.WaitGroup
	w     *fsnotify.Watcher
	marks []Bookmark
}

type Bookmark struct {
	URL   string
	Title string
}

func load(path string) ([]Bookmark, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c := csv.NewReader(f)
	c.FieldsPerRecord = -1

	var marks []Bookmark
	first := true
	for {
		r, err := c.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if first {
			first = false
			continue
		}

		if len(r) == 0 || r[0] == "" {
			continue
		}

		mark := Bookmark{URL: r[0], Title: r[0]}
		if len(r) > 1 && r[1] != "" {
			mark.Title = r[1]
		}
		marks = append(marks, mark)
	}

	return marks, nil
}

// NewList loads a bookmarks file: a CSV of url,title rows with a header row.
// The file is watched and reloaded shortly after each change.
func NewList(path string, reloadDelay time.Duration) (*List, error) {
	marks, err := load(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}

	l := &List{w: w, marks: marks}

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()

		for {
			select {
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if event.Name != path || !event.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}

				// wait for changes to settle before reloading
				time.Sleep(reloadDelay)

				marks, err := load(path)
				if err != nil {
					slog.Warn("Failed to reload bookmarks", "path", path, "error", err)
					continue
				}

				slog.Info("Reloaded bookmarks", "path", path, "count", len(marks))

				l.lock.Lock()
				l.marks = marks
				l.lock.Unlock()

			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				slog.Warn("Bookmarks watcher error", "error", err)
			}
		}
	}()

	return l, nil
}

// All returns a snapshot of the bookmarks.
func (l *List) All() []Bookmark {
	l.lock.Lock()
	defer l.lock.Unlock()

	return slices.Clone(l.marks)
}

func (l *List) Close() {
	l.w.Close()
	l.wg.Wait()
}
