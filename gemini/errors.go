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

package gemini

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAddress is returned when the requested URL cannot be parsed.
	ErrInvalidAddress = errors.New("invalid URL")

	// ErrNoHost is returned when the requested URL does not contain a host.
	ErrNoHost = errors.New("URL does not contain a host")

	// ErrConnection is returned when the connection or the TLS handshake fails.
	ErrConnection = errors.New("failed to connect")

	// ErrMalformedResponse is returned when the response header cannot be parsed.
	ErrMalformedResponse = errors.New("response header is malformed")

	// ErrUnsupportedStatus is returned on input, redirect and client
	// certificate response statuses.
	ErrUnsupportedStatus = errors.New("response status is not supported")

	// ErrInvalidEncoding is returned when the response is not valid UTF-8.
	ErrInvalidEncoding = errors.New("response is not valid UTF-8")

	// ErrResponseTooBig is returned when the response body exceeds the
	// configured limit.
	ErrResponseTooBig = errors.New("response is too big")
)

// UnsupportedMimeError is returned on successful responses with a non-text
// MIME type. The body is not fetched.
type UnsupportedMimeError struct {
	Type string
}

func (e UnsupportedMimeError) Error() string {
	return fmt.Sprintf("MIME type %s is not supported", e.Type)
}

// RequestFailedError carries the server-supplied failure message of a
// temporary or permanent failure response.
type RequestFailedError struct {
	Reason string
}

func (e RequestFailedError) Error() string {
	return "request failed: " + e.Reason
}
