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

package trust

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func generateKey(t *testing.T) *ecdsa.PrivateKey {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("Failed to generate a key: %v", err)
	}
	return key
}

func generateCert(t *testing.T, template, parent *x509.Certificate, key, parentKey *ecdsa.PrivateKey) *x509.Certificate {
	der, err := x509.CreateCertificate(rand.Reader, template, parent, &key.PublicKey, parentKey)
	if err != nil {
		t.Fatalf("Failed to create a certificate: %v", err)
	}

	cert, err := x509.ParseCertificate(der)
	if err != nil {
		t.Fatalf("Failed to parse a certificate: %v", err)
	}

	return cert
}

func selfSigned(t *testing.T, host string, notBefore, notAfter time.Time) *x509.Certificate {
	key := generateKey(t)
	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: host},
		DNSNames:     []string{host},
		NotBefore:    notBefore,
		NotAfter:     notAfter,
		KeyUsage:     x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}

	return generateCert(t, template, template, key, key)
}

func state(host string, certs ...*x509.Certificate) tls.ConnectionState {
	return tls.ConnectionState{ServerName: host, PeerCertificates: certs}
}

func TestPolicy_SelfSignedUnknownIssuer(t *testing.T) {
	policy := NewPolicyWithRoots(x509.NewCertPool())

	cert := selfSigned(t, "example.org", time.Now().Add(-time.Hour), time.Now().Add(time.Hour))

	assert.NoError(t, policy.VerifyConnection(state("example.org", cert)))
}

func TestPolicy_TrustedIssuer(t *testing.T) {
	caKey := generateKey(t)
	caTemplate := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "test ca"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour * 24),
		KeyUsage:              x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}
	ca := generateCert(t, caTemplate, caTemplate, caKey, caKey)

	leafKey := generateKey(t)
	leaf := generateCert(t, &x509.Certificate{
		SerialNumber: big.NewInt(2),
		Subject:      pkix.Name{CommonName: "example.org"},
		DNSNames:     []string{"example.org"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}, ca, leafKey, caKey)

	roots := x509.NewCertPool()
	roots.AddCert(ca)

	assert.NoError(t, NewPolicyWithRoots(roots).VerifyConnection(state("example.org", leaf)))
}

func TestPolicy_Expired(t *testing.T) {
	policy := NewPolicyWithRoots(x509.NewCertPool())

	cert := selfSigned(t, "example.org", time.Now().Add(-time.Hour*2), time.Now().Add(-time.Hour))

	err := policy.VerifyConnection(state("example.org", cert))

	var invalid x509.CertificateInvalidError
	assert.ErrorAs(t, err, &invalid)
	assert.Equal(t, x509.Expired, invalid.Reason)
}

func TestPolicy_HostnameMismatch(t *testing.T) {
	policy := NewPolicyWithRoots(x509.NewCertPool())

	cert := selfSigned(t, "example.org", time.Now().Add(-time.Hour), time.Now().Add(time.Hour))

	err := policy.VerifyConnection(state("other.example", cert))

	var hostname x509.HostnameError
	assert.ErrorAs(t, err, &hostname)
}

func TestPolicy_NoCertificate(t *testing.T) {
	policy := NewPolicyWithRoots(x509.NewCertPool())

	assert.Error(t, policy.VerifyConnection(state("example.org")))
}
