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

// Package trust decides whether a server certificate chain is acceptable.
//
// Gemini has no centralized CA registry and many servers use self-signed
// certificates, so a chain that fails verification only because its root is
// not in the trusted set is accepted. Every other failure (expired
// certificate, hostname mismatch, malformed chain) is surfaced unchanged, and
// handshake signature verification stays with crypto/tls.
package trust

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
)

// Policy verifies server certificate chains with a fixed set of trusted
// roots, tolerating unknown issuers.
type Policy struct {
	roots *x509.CertPool
}

// NewPolicy returns a [Policy] backed by the system root store.
func NewPolicy() (*Policy, error) {
	roots, err := x509.SystemCertPool()
	if err != nil {
		return nil, err
	}

	return &Policy{roots: roots}, nil
}

// NewPolicyWithRoots returns a [Policy] backed by the given roots.
func NewPolicyWithRoots(roots *x509.CertPool) *Policy {
	return &Policy{roots: roots}
}

// VerifyConnection verifies the peer certificate chain and the server name.
// It is meant to be used as [tls.Config.VerifyConnection], together with
// InsecureSkipVerify: certificate verification moves here while crypto/tls
// keeps verifying handshake signatures.
func (p *Policy) VerifyConnection(state tls.ConnectionState) error {
	if len(state.PeerCertificates) == 0 {
		return errors.New("no server certificate")
	}

	opts := x509.VerifyOptions{
		Roots:         p.roots,
		DNSName:       state.ServerName,
		Intermediates: x509.NewCertPool(),
	}
	for _, cert := range state.PeerCertificates[1:] {
		opts.Intermediates.AddCert(cert)
	}

	_, err := state.PeerCertificates[0].Verify(opts)

	var unknownIssuer x509.UnknownAuthorityError
	if errors.As(err, &unknownIssuer) {
		return nil
	}

	return err
}

// Config returns a client [tls.Config] that verifies certificates using p.
func (p *Policy) Config() *tls.Config {
	return &tls.Config{
		MinVersion: tls.VersionTLS12,

		// disables the default verifier in favor of VerifyConnection
		InsecureSkipVerify: true,
		VerifyConnection:   p.VerifyConnection,
	}
}
