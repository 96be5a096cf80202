package certs

import (
	"crypto/tls"
	"crypto/x509"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(t *testing.T, cert tls.Certificate) *x509.Certificate {
	t.Helper()
	require.Len(t, cert.Certificate, 1, "should have one certificate")
	c, err := x509.ParseCertificate(cert.Certificate[0])
	require.NoError(t, err)
	return c
}

func TestFileManager_GetOrCreateCertificate(t *testing.T) {
	tests := []struct {
		setup    func(t *testing.T, certDir string) *x509.Certificate
		validate func(t *testing.T, cert *x509.Certificate, before *x509.Certificate)
		name     string
		hosts    []string
	}{
		{
			name: "creates new certificate when none exists",
			validate: func(t *testing.T, cert *x509.Certificate, _ *x509.Certificate) {
				t.Helper()
				assert.Equal(t, "pinhole", cert.Subject.Organization[0])
				assert.Contains(t, cert.DNSNames, "localhost")
				assert.NoError(t, cert.VerifyHostname("127.0.0.1"))
				assert.NoError(t, cert.VerifyHostname("::1"))
				assert.True(t, cert.NotAfter.After(time.Now().Add(364*24*time.Hour)))
			},
		},
		{
			name:  "covers extra hosts",
			hosts: []string{"192.168.1.20", "darkroom.local"},
			validate: func(t *testing.T, cert *x509.Certificate, _ *x509.Certificate) {
				t.Helper()
				assert.NoError(t, cert.VerifyHostname("192.168.1.20"))
				assert.NoError(t, cert.VerifyHostname("darkroom.local"))
				assert.True(t, cert.IPAddresses[len(cert.IPAddresses)-1].Equal(net.ParseIP("192.168.1.20")))
			},
		},
		{
			name: "reuses existing valid certificate",
			setup: func(t *testing.T, certDir string) *x509.Certificate {
				t.Helper()
				cert, err := NewFileManager(certDir).GetOrCreateCertificate()
				require.NoError(t, err)
				return leaf(t, cert)
			},
			validate: func(t *testing.T, cert *x509.Certificate, before *x509.Certificate) {
				t.Helper()
				assert.Equal(t, before.SerialNumber, cert.SerialNumber)
			},
		},
		{
			name:  "regenerates when a host is missing",
			hosts: []string{"10.0.0.5"},
			setup: func(t *testing.T, certDir string) *x509.Certificate {
				t.Helper()
				cert, err := NewFileManager(certDir).GetOrCreateCertificate()
				require.NoError(t, err)
				return leaf(t, cert)
			},
			validate: func(t *testing.T, cert *x509.Certificate, before *x509.Certificate) {
				t.Helper()
				assert.NotEqual(t, before.SerialNumber, cert.SerialNumber)
				assert.NoError(t, cert.VerifyHostname("10.0.0.5"))
			},
		},
		{
			name: "regenerates invalid certificate files",
			setup: func(t *testing.T, certDir string) *x509.Certificate {
				t.Helper()
				require.NoError(t, os.MkdirAll(certDir, 0o700))
				require.NoError(t, os.WriteFile(filepath.Join(certDir, certFileName), []byte("invalid"), 0o600))
				require.NoError(t, os.WriteFile(filepath.Join(certDir, keyFileName), []byte("invalid"), 0o600))
				return nil
			},
			validate: func(t *testing.T, cert *x509.Certificate, _ *x509.Certificate) {
				t.Helper()
				assert.NoError(t, cert.VerifyHostname("localhost"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			certDir := filepath.Join(t.TempDir(), "certs")

			var before *x509.Certificate
			if tt.setup != nil {
				before = tt.setup(t, certDir)
			}

			cert, err := NewFileManager(certDir, tt.hosts...).GetOrCreateCertificate()
			require.NoError(t, err)
			tt.validate(t, leaf(t, cert), before)
		})
	}
}

func TestFileManager_RenewsExpiringCertificate(t *testing.T) {
	certDir := t.TempDir()

	m := NewFileManager(certDir)
	first, err := m.GetOrCreateCertificate()
	require.NoError(t, err)

	// a week before expiry the certificate is replaced
	later := NewFileManager(certDir)
	later.now = func() time.Time { return time.Now().Add(Validity - 6*24*time.Hour) }
	second, err := later.GetOrCreateCertificate()
	require.NoError(t, err)

	assert.NotEqual(t, leaf(t, first).SerialNumber, leaf(t, second).SerialNumber)
}

func TestFileManager_KeyFilesArePrivate(t *testing.T) {
	m := NewFileManager(t.TempDir())
	_, err := m.GetOrCreateCertificate()
	require.NoError(t, err)

	certFile, keyFile := m.Paths()
	for _, path := range []string{certFile, keyFile} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), path)
	}
}

func TestFileManager_DirectoryCreationFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	_, err := NewFileManager(filepath.Join(blocker, "certs")).GetOrCreateCertificate()
	assert.ErrorContains(t, err, "failed to create certificate directory")
}

func TestFileManager_Hosts(t *testing.T) {
	m := NewFileManager(t.TempDir(), "localhost", "", "camera.lan")
	assert.Equal(t, []string{"localhost", "127.0.0.1", "::1", "camera.lan"}, m.Hosts())
}

func TestFileManager_TLSConfig(t *testing.T) {
	cfg, err := NewFileManager(t.TempDir()).TLSConfig()
	require.NoError(t, err)
	require.Len(t, cfg.Certificates, 1)
	assert.Equal(t, uint16(tls.VersionTLS12), cfg.MinVersion)
}
