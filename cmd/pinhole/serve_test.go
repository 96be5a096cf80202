package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/pinhole/internal/model"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession(t *testing.T) *session {
	t.Helper()
	env := newTestEnv(t)
	viper.Set("database.path", env.db)

	sess, err := openSession(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sess.Close() })
	return sess
}

func TestNewHTTPServer_SharesSettingsStore(t *testing.T) {
	sess := testSession(t)

	srv, err := newHTTPServer(sess, "127.0.0.1:0")
	require.NoError(t, err)
	assert.Nil(t, srv.TLSConfig)
	assert.Equal(t, sess.cfg.Server.ReadTimeout, srv.ReadTimeout)

	var pushed []model.CameraSettings
	unsubscribe := sess.settings.Subscribe(func(cs model.CameraSettings) {
		pushed = append(pushed, cs)
	})
	defer unsubscribe()

	req := httptest.NewRequest(http.MethodPatch, "/api/settings", strings.NewReader(`{"iso": 400}`))
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 400, sess.settings.Snapshot().ISO)
	require.Len(t, pushed, 1)
	assert.Equal(t, 400, pushed[0].ISO)
}

func TestNewHTTPServer_TLS(t *testing.T) {
	sess := testSession(t)
	sess.cfg.Server.TLS = true
	sess.cfg.Server.CertDir = filepath.Join(t.TempDir(), "certs")
	sess.cfg.Server.TLSHosts = []string{"192.168.1.20"}

	srv, err := newHTTPServer(sess, "127.0.0.1:0")
	require.NoError(t, err)
	require.NotNil(t, srv.TLSConfig)
	require.Len(t, srv.TLSConfig.Certificates, 1)
	assert.FileExists(t, filepath.Join(sess.cfg.Server.CertDir, "pinhole.crt"))
}
