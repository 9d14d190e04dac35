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

// Package cfg defines the dioscuri configuration file format and defaults.
package cfg

import (
	"time"
)

// Config represents a dioscuri configuration file.
type Config struct {
	DefaultURL string

	GeminiPort int

	DialTimeout    time.Duration
	RequestTimeout time.Duration

	MaxResponseHeaderSize int
	MaxResponseBodySize   int64

	TickInterval time.Duration

	HistoryPageSize int
	DatabaseOptions string

	BookmarksReloadDelay time.Duration

	LogLevel int
}

// FillDefaults replaces missing or invalid settings with defaults.
func (c *Config) FillDefaults() {
	if c.DefaultURL == "" {
		c.DefaultURL = "gemini://geminiprotocol.net/"
	}

	if c.GeminiPort <= 0 {
		c.GeminiPort = 1965
	}

	if c.DialTimeout <= 0 {
		c.DialTimeout = time.Second * 15
	}

	if c.RequestTimeout <= 0 {
		c.RequestTimeout = time.Second * 30
	}

	if c.MaxResponseHeaderSize <= 0 {
		// the Gemini specification allows up to 1024 bytes plus CRLF
		c.MaxResponseHeaderSize = 1024 + 2
	}

	if c.MaxResponseBodySize <= 0 {
		c.MaxResponseBodySize = 10 * 1024 * 1024
	}

	if c.TickInterval <= 0 {
		c.TickInterval = time.Millisecond * 300
	}

	if c.HistoryPageSize <= 0 {
		c.HistoryPageSize = 50
	}

	if c.DatabaseOptions == "" {
		c.DatabaseOptions = "_journal_mode=WAL"
	}

	if c.BookmarksReloadDelay <= 0 {
		c.BookmarksReloadDelay = time.Second * 5
	}
}
