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

// Package gemini implements a client for the Gemini protocol.
package gemini

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/net/idna"

	"github.com/dimkr/dioscuri/cfg"
	"github.com/dimkr/dioscuri/trust"
)

// Client performs one request/response exchange at a time and owns at most
// one connection: each request tears down the previous connection and
// replaces it, whether or not the request succeeds.
type Client struct {
	Config *cfg.Config
	TLS    *tls.Config

	conn *tls.Conn
}

// NewClient returns a [Client] that accepts self-signed server certificates
// but rejects certificates that are invalid for any other reason.
func NewClient(config *cfg.Config) (*Client, error) {
	policy, err := trust.NewPolicy()
	if err != nil {
		return nil, err
	}

	return &Client{Config: config, TLS: policy.Config()}, nil
}

// Request fetches a single Gemini resource and returns its body.
//
// Only successful responses with a text/* MIME type are supported: input,
// redirect and client certificate statuses fail with [ErrUnsupportedStatus]
// and failure statuses fail with [RequestFailedError].
func (c *Client) Request(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	if u.Hostname() == "" {
		return "", ErrNoHost
	}

	host, err := idna.ToASCII(u.Hostname())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	if err := c.connect(ctx, host); err != nil {
		return "", err
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}

	if _, err := fmt.Fprintf(c.conn, "gemini://%s%s\r\n", host, path); err != nil {
		return "", fmt.Errorf("%w: %w", ErrConnection, err)
	}

	header, err := c.readHeader()
	if err != nil {
		return "", err
	}

	space := strings.IndexByte(header, ' ')
	if space < 1 {
		return "", ErrMalformedResponse
	}

	if !utf8.ValidString(header) {
		return "", ErrInvalidEncoding
	}

	status := header[0]
	if status < '1' || status > '9' {
		return "", ErrMalformedResponse
	}

	meta := strings.TrimSpace(header[space+1:])

	switch status {
	case '1', '3', '6':
		return "", ErrUnsupportedStatus

	case '2':
		if !strings.HasPrefix(meta, "text/") {
			return "", UnsupportedMimeError{Type: meta}
		}

		body, err := io.ReadAll(io.LimitReader(c.conn, c.Config.MaxResponseBodySize+1))
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrConnection, err)
		}
		if int64(len(body)) > c.Config.MaxResponseBodySize {
			return "", ErrResponseTooBig
		}
		if !utf8.Valid(body) {
			return "", ErrInvalidEncoding
		}

		slog.Debug("Fetched page", "url", rawURL, "type", meta, "size", len(body))
		return string(body), nil

	default:
		return "", RequestFailedError{Reason: meta}
	}
}

// connect replaces the held connection with a new one, releasing the old
// socket first. On failure no connection is held.
func (c *Client) connect(ctx context.Context, host string) error {
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}

	dialer := net.Dialer{Timeout: c.Config.DialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(c.Config.GeminiPort)))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}

	if c.Config.RequestTimeout > 0 {
		if err := conn.SetDeadline(time.Now().Add(c.Config.RequestTimeout)); err != nil {
			conn.Close()
			return fmt.Errorf("%w: %w", ErrConnection, err)
		}
	}

	tlsConfig := c.TLS.Clone()
	tlsConfig.ServerName = host

	tlsConn := tls.Client(conn, tlsConfig)
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}

	c.conn = tlsConn
	return nil
}

// readHeader reads the response header, up to and including the first line
// feed.
func (c *Client) readHeader() (string, error) {
	header := make([]byte, c.Config.MaxResponseHeaderSize)

	total := 0
	for {
		n, err := c.conn.Read(header[total : total+1])
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: %w", ErrConnection, err)
		}
		if n <= 0 {
			return "", ErrMalformedResponse
		}
		total += n

		if header[total-1] == '\n' {
			break
		}

		if total == len(header) {
			return "", ErrMalformedResponse
		}
	}

	return string(header[:total]), nil
}

// Close releases the connection held by the client, if any.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}

	err := c.conn.Close()
	c.conn = nil
	return err
}
