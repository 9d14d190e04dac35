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

// Package hist records visited URLs.
//
// Only addresses and visit times are stored, never fetched content.
package hist

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type History struct {
	db *sql.DB
}

type Visit struct {
	URL     string
	Visited time.Time
}

// Open opens or creates a visit history database.
func Open(path, options string) (*History, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?%s", path, options))
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(`create table if not exists visits(id integer primary key, url text not null, visited integer not null default (unixepoch()))`); err != nil {
		db.Close()
		return nil, err
	}

	return &History{db: db}, nil
}

// Record appends a visit.
func (h *History) Record(ctx context.Context, url string) error {
	if _, err := h.db.ExecContext(ctx, `insert into visits(url) values(?)`, url); err != nil {
		return fmt.Errorf("failed to record visit to %s: %w", url, err)
	}

	return nil
}

// Last returns up to n visits, most recent first.
func (h *History) Last(ctx context.Context, n int) ([]Visit, error) {
	rows, err := h.db.QueryContext(ctx, `select url, visited from visits order by id desc limit ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var visit Visit
		var visited int64
		if err := rows.Scan(&visit.URL, &visited); err != nil {
			return nil, err
		}
		visit.Visited = time.Unix(visited, 0)
		visits = append(visits, visit)
	}

	return visits, rows.Err()
}

func (h *History) Close() error {
	return h.db.Close()
}
