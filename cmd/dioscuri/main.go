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

package main

import (
	"encoding/json"
	"flag"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dimkr/dioscuri/bookmarks"
	"github.com/dimkr/dioscuri/browser"
	"github.com/dimkr/dioscuri/cfg"
	"github.com/dimkr/dioscuri/gemini"
	"github.com/dimkr/dioscuri/hist"
)

var (
	cfgPath   = flag.String("cfg", "", "configuration file")
	dbPath    = flag.String("db", "history.sqlite3", "history database path, empty to disable")
	marksPath = flag.String("bookmarks", "", "bookmarks file")
	logPath   = flag.String("log", "", "log file, empty to disable logging")
	url       = flag.String("url", "", "initial URL")
)

func main() {
	flag.Parse()

	// the terminal belongs to the UI, so logs go to a file or nowhere
	if *logPath == "" {
		slog.SetDefault(slog.New(slog.DiscardHandler))
	}

	var config cfg.Config
	if *cfgPath != "" {
		f, err := os.Open(*cfgPath)
		if err != nil {
			slog.Error("Failed to open configuration file", "path", *cfgPath, "error", err)
			os.Exit(1)
		}
		if err := json.NewDecoder(f).Decode(&config); err != nil {
			slog.Error("Failed to parse configuration file", "path", *cfgPath, "error", err)
			os.Exit(1)
		}
		f.Close()
	}
	config.FillDefaults()

	if *url != "" {
		config.DefaultURL = *url
	}

	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			slog.Error("Failed to open log file", "path", *logPath, "error", err)
			os.Exit(1)
		}
		defer f.Close()

		opts := slog.HandlerOptions{Level: slog.Level(config.LogLevel)}
		slog.SetDefault(slog.New(slog.NewJSONHandler(f, &opts)))
	}

	client, err := gemini.NewClient(&config)
	if err != nil {
		slog.Error("Failed to create the client", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	var history *hist.History
	if *dbPath != "" {
		history, err = hist.Open(*dbPath, config.DatabaseOptions)
		if err != nil {
			slog.Error("Failed to open the history database", "path", *dbPath, "error", err)
			os.Exit(1)
		}
		defer history.Close()
	}

	var marks *bookmarks.List
	if *marksPath != "" {
		marks, err = bookmarks.NewList(*marksPath, config.BookmarksReloadDelay)
		if err != nil {
			slog.Error("Failed to load bookmarks", "path", *marksPath, "error", err)
			os.Exit(1)
		}
		defer marks.Close()
	}

	p := tea.NewProgram(browser.New(&config, client, history, marks), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("Browser has failed", "error", err)
		os.Exit(1)
	}
}
