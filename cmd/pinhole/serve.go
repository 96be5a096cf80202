package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Veraticus/pinhole/internal/api"
	"github.com/Veraticus/pinhole/internal/certs"
	"github.com/Veraticus/pinhole/internal/cli"
	"github.com/Veraticus/pinhole/internal/common"
	"github.com/Veraticus/pinhole/internal/meter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const shutdownTimeout = 5 * time.Second

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the exposure API over HTTP",
		Long: `Start a local HTTP API under /api that shares the saved settings with the
command line and the viewfinder: settings changed through the API are seen by
every other client.

Phone browsers only allow camera access over HTTPS. With --tls the server uses
a self-signed certificate, created on first use, that covers localhost and
every --tls-host.`,
		Example: `  pinhole serve --addr :8001
  pinhole serve --addr 0.0.0.0:8443 --tls --tls-host 192.168.1.20`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "listen address (default from server.addr)")
	cmd.Flags().Bool("tls", false, "serve HTTPS with a self-signed certificate")
	cmd.Flags().StringSlice("tls-host", nil, "extra host name or IP the certificate must cover (repeatable)")
	_ = viper.BindPFlag("server.tls", cmd.Flags().Lookup("tls"))
	_ = viper.BindPFlag("server.tls_hosts", cmd.Flags().Lookup("tls-host"))
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	interruptHandler := cli.NewInterruptHandler(cmd.ErrOrStderr(), "Server")
	ctx := interruptHandler.HandleInterrupts(cmd.Context(), "")

	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close() }()

	addr := sess.cfg.Server.Addr
	if a, _ := cmd.Flags().GetString("addr"); a != "" {
		addr = a
	}

	httpServer, err := newHTTPServer(sess, addr)
	if err != nil {
		return err
	}

	errChan := make(chan error, 1)
	go func() {
		common.LogInfo("Serving API", common.Fields{
			"addr":     addr,
			"tls":      httpServer.TLSConfig != nil,
			"database": sess.db.Path(),
		})
		var err error
		if httpServer.TLSConfig != nil {
			err = httpServer.ListenAndServeTLS("", "")
		} else {
			err = httpServer.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	slog.Info("Server stopped")
	return nil
}

// newHTTPServer wires the API onto the session's settings store and database.
func newHTTPServer(sess *session, addr string) (*http.Server, error) {
	// the API reports rectangles in pixels
	layout := sess.cfg.Layout()
	layout.CellAspect = 1

	server := api.NewServer(sess.settings, sess.db,
		api.WithLogger(slog.Default()),
		api.WithLayout(layout),
		api.WithAnalyzer(meter.NewAnalyzer(sess.cfg.Meter.ThumbnailSize)),
		api.WithMaxUploadBytes(sess.cfg.Server.MaxUploadBytes),
		api.WithReadingsLimit(sess.cfg.Meter.HistoryLimit),
	)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Handler(),
		ReadTimeout:       sess.cfg.Server.ReadTimeout,
		ReadHeaderTimeout: sess.cfg.Server.ReadTimeout,
		WriteTimeout:      sess.cfg.Server.WriteTimeout,
	}

	if sess.cfg.Server.TLS {
		manager := certs.NewFileManager(sess.cfg.Server.CertDir, sess.cfg.Server.TLSHosts...)
		tlsConfig, err := manager.TLSConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to prepare certificate: %w", err)
		}
		httpServer.TLSConfig = tlsConfig
		certFile, _ := manager.Paths()
		slog.Info("Using self-signed certificate", "file", certFile, "hosts", manager.Hosts())
	}

	return httpServer, nil
}
