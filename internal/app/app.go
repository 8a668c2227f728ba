// Package app implements the application layer for vigil.
package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff"
	"go.trai.ch/vigil/internal/adapters/httpapi"   //nolint:depguard // Served by the app layer
	"go.trai.ch/vigil/internal/adapters/metrics"   //nolint:depguard // No-op default
	"go.trai.ch/vigil/internal/adapters/telemetry" //nolint:depguard // No-op default
	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports"
	"go.trai.ch/vigil/internal/engine/scanner"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// App represents the main application logic.
type App struct {
	cfg            *domain.Config
	manifests      ports.ManifestProvider
	scanner        *scanner.Scanner
	progress       ports.ProgressStore
	reports        ports.ReportStore
	auth           ports.Authorizer
	detector       ports.VersionDetector
	logger         ports.Logger
	tracer         ports.Tracer
	metrics        ports.Metrics
	metricsHandler http.Handler
	newBackOff     func() backoff.BackOff

	wg sync.WaitGroup
}

var _ ports.ScanService = (*App)(nil)

// Option configures optional App collaborators.
type Option func(*App)

// WithTracer sets the tracer.
func WithTracer(tracer ports.Tracer) Option {
	return func(a *App) {
		if tracer != nil {
			a.tracer = tracer
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m ports.Metrics) Option {
	return func(a *App) {
		if m != nil {
			a.metrics = m
		}
	}
}

// WithMetricsHandler sets the handler served on /metrics by Serve.
func WithMetricsHandler(h http.Handler) Option {
	return func(a *App) {
		a.metricsHandler = h
	}
}

// WithBackOff sets the retry policy factory for online manifest fetches.
func WithBackOff(newBackOff func() backoff.BackOff) Option {
	return func(a *App) {
		a.newBackOff = newBackOff
	}
}

// New creates a new App instance.
func New(
	cfg *domain.Config,
	manifests ports.ManifestProvider,
	scan *scanner.Scanner,
	progress ports.ProgressStore,
	reports ports.ReportStore,
	auth ports.Authorizer,
	detector ports.VersionDetector,
	logger ports.Logger,
	opts ...Option,
) *App {
	a := &App{
		cfg:       cfg,
		manifests: manifests,
		scanner:   scan,
		progress:  progress,
		reports:   reports,
		auth:      auth,
		detector:  detector,
		logger:    logger,
		tracer:    telemetry.NewNoOpTracer(),
		metrics:   metrics.NoOp{},
		newBackOff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// target is a scan request with defaults applied and inputs validated.
type target struct {
	source  domain.Source
	version string
	root    string
	rules   domain.ExclusionRules
}

// Scan runs a scan to completion and stores its report.
func (a *App) Scan(ctx context.Context, opts ports.ScanOptions) (*domain.ScanResult, error) {
	if err := a.auth.Authorize(ctx, opts.Token); err != nil {
		return nil, err
	}

	t, err := a.prepare(opts)
	if err != nil {
		return nil, err
	}

	session, err := sessionFor(opts)
	if err != nil {
		return nil, err
	}
	if err := a.progress.Set(ctx, session, 0, a.cfg.ProgressTTL); err != nil {
		a.logger.Warn("could not record scan progress", "session", session.String(), "error", err.Error())
	}

	return a.run(ctx, session, t)
}

// StartScan starts a scan in the background and returns its session. The session's
// progress reads 0 before StartScan returns. ctx bounds the lifetime of the scan.
func (a *App) StartScan(ctx context.Context, opts ports.ScanOptions) (domain.SessionID, error) {
	if err := a.auth.Authorize(ctx, opts.Token); err != nil {
		return "", err
	}

	t, err := a.prepare(opts)
	if err != nil {
		return "", err
	}

	session, err := sessionFor(opts)
	if err != nil {
		return "", err
	}
	if err := a.progress.Set(ctx, session, 0, a.cfg.ProgressTTL); err != nil {
		return "", zerr.With(err, "session", session.String())
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if _, err := a.run(ctx, session, t); err != nil {
			a.logger.Error(zerr.With(err, "session", session.String()))
		}
	}()

	return session, nil
}

// Wait blocks until every scan started by StartScan has finished.
func (a *App) Wait() {
	a.wg.Wait()
}

// Progress returns the last reported percentage of a session. found is false when the
// session is unknown or its record expired.
func (a *App) Progress(ctx context.Context, session domain.SessionID) (float64, bool, error) {
	return a.progress.Get(ctx, session)
}

// Report returns the stored result of a finished session.
func (a *App) Report(ctx context.Context, session domain.SessionID) (*domain.ScanResult, error) {
	result, err := a.reports.Get(ctx, session)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrReportNotFound, "no stored report"), "session", session.String())
	}
	return result, nil
}

// sessionFor returns the caller's session, or a new one when none was given.
func sessionFor(opts ports.ScanOptions) (domain.SessionID, error) {
	if opts.Session == "" {
		return domain.NewSessionID(), nil
	}
	return domain.ParseSessionID(opts.Session.String())
}

// prepare applies configured defaults to opts and validates the result.
func (a *App) prepare(opts ports.ScanOptions) (target, error) {
	t := target{source: a.cfg.Source, version: a.cfg.Version, root: a.cfg.Root}

	if opts.Source != "" {
		t.source = domain.ParseSource(opts.Source.String())
		if string(t.source) != strings.ToLower(strings.TrimSpace(opts.Source.String())) {
			a.logger.Warn("unknown checksum source, using default", "source", opts.Source.String(), "default", t.source.String())
		}
	}
	if opts.Version != "" {
		t.version = opts.Version
	}
	if opts.Root != "" {
		t.root = opts.Root
	}

	root, err := filepath.Abs(t.root)
	if err != nil {
		return target{}, zerr.With(zerr.Wrap(domain.ErrScanRootInvalid, err.Error()), "root", t.root)
	}
	info, err := os.Stat(root)
	if err != nil {
		return target{}, zerr.With(zerr.Wrap(domain.ErrScanRootInvalid, err.Error()), "root", root)
	}
	if !info.IsDir() {
		return target{}, zerr.With(zerr.Wrap(domain.ErrScanRootInvalid, "not a directory"), "root", root)
	}
	t.root = root
	t.rules = a.cfg.Exclusions.WithFiles(a.ownFiles(root)...)

	switch {
	case t.version != "":
		if err := domain.ValidateVersion(t.version); err != nil {
			return target{}, err
		}
	case t.source == domain.SourceOnline:
		version, err := a.detector.Detect(root)
		if err != nil {
			return target{}, err
		}
		a.logger.Info("detected installed release", "version", version)
		t.version = version
	}

	return t, nil
}

// ownFiles returns the config file and local baseline as root-relative paths when they
// live under root.
func (a *App) ownFiles(root string) []string {
	baseline := a.cfg.LocalBaseline
	if baseline == "" {
		baseline = domain.LocalBaselineFileName
	}
	if !filepath.IsAbs(baseline) {
		baseline = filepath.Join(root, baseline)
	}

	candidates := []string{baseline}
	if config, err := filepath.Abs(domain.ConfigFileName); err == nil {
		candidates = append(candidates, config)
	}

	var files []string
	for _, p := range candidates {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)
		if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") || slices.Contains(files, rel) {
			continue
		}
		files = append(files, rel)
	}
	return files
}

func (a *App) run(ctx context.Context, session domain.SessionID, t target) (*domain.ScanResult, error) {
	ctx, span := a.tracer.Start(ctx, "app.scan")
	defer span.End()

	span.SetAttribute("session", session.String())
	span.SetAttribute("source", t.source.String())
	span.SetAttribute("root", t.root)

	a.logger.Info("scan started", "session", session.String(), "source", t.source.String(), "root", t.root)

	manifest, err := a.loadManifest(ctx, t)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	algorithm := a.scanner.Algorithm()
	if manifest.Len() > 0 && manifest.DigestLength() != algorithm.DigestLength() {
		err := zerr.Wrap(domain.ErrDigestLengthMismatch, "baseline digests were built with another algorithm")
		err = zerr.With(err, "algorithm", algorithm.String())
		err = zerr.With(err, "digest_length", manifest.DigestLength())
		span.RecordError(err)
		return nil, err
	}

	result, err := a.scanner.Scan(ctx, scanner.Request{
		Session:             session,
		Root:                t.root,
		Manifest:            manifest,
		Rules:               t.rules,
		SkipExcludedMissing: a.cfg.SkipExcludedMissing,
		Workers:             a.cfg.Workers,
		ProgressTTL:         a.cfg.ProgressTTL,
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	result.Source = t.source
	result.Version = t.version

	if err := a.reports.Put(ctx, result); err != nil {
		a.logger.Warn("could not store scan report", "session", session.String(), "error", err.Error())
	}

	a.logger.Info("scan finished",
		"session", session.String(),
		"files", result.Stats.Files,
		"modified", len(result.Modified),
		"missing", len(result.Missing),
		"unknown", len(result.Unknown),
	)

	return result, nil
}

// loadManifest loads the baseline, retrying online fetch failures up to FetchRetries times.
// Format failures and local sources are never retried.
func (a *App) loadManifest(ctx context.Context, t target) (*domain.Manifest, error) {
	ctx, span := a.tracer.Start(ctx, "manifest.load")
	defer span.End()
	span.SetAttribute("source", t.source.String())
	span.SetAttribute("version", t.version)

	req := ports.ManifestRequest{Source: t.source, Version: t.version, Root: t.root}

	// WithMaxRetries treats zero as unlimited.
	var policy backoff.BackOff = &backoff.StopBackOff{}
	if t.source == domain.SourceOnline && a.cfg.FetchRetries > 0 {
		policy = backoff.WithMaxRetries(a.newBackOff(), uint64(a.cfg.FetchRetries))
	}
	policy = backoff.WithContext(policy, ctx)

	var manifest *domain.Manifest
	operation := func() error {
		m, err := a.manifests.Load(ctx, req)
		if err != nil {
			if errors.Is(err, domain.ErrManifestFetch) && ctx.Err() == nil {
				return err
			}
			return backoff.Permanent(err)
		}
		manifest = m
		return nil
	}
	notify := func(err error, wait time.Duration) {
		a.logger.Warn("checksum fetch failed, retrying", "error", err.Error(), "wait", wait)
	}

	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		a.metrics.ManifestFailed(t.source)
		span.RecordError(err)
		return nil, unwrapPermanent(err)
	}

	a.metrics.ManifestLoaded(t.source, manifest.Len())
	span.SetAttribute("entries", manifest.Len())
	return manifest, nil
}

// unwrapPermanent returns the cause carried by a backoff.PermanentError.
func unwrapPermanent(err error) error {
	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		return permanent.Err
	}
	return err
}

// Serve runs the HTTP API on addr until ctx ends.
func (a *App) Serve(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrServerFailed.Error()), "addr", addr)
	}
	return a.ServeListener(ctx, ln)
}

// ServeListener runs the HTTP API on ln until ctx ends, then waits for running scans.
func (a *App) ServeListener(ctx context.Context, ln net.Listener) error {
	handler := httpapi.NewServer(a, a.auth, a.logger,
		httpapi.WithMetricsHandler(a.metricsHandler),
		httpapi.WithScanContext(ctx),
	)
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("http api listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return zerr.Wrap(err, domain.ErrServerFailed.Error())
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return zerr.Wrap(err, domain.ErrServerFailed.Error())
		}
		return nil
	})

	if sweeper, ok := a.progress.(interface {
		RunSweeper(ctx context.Context, interval time.Duration)
	}); ok {
		g.Go(func() error {
			sweeper.RunSweeper(gctx, a.cfg.ProgressTTL)
			return nil
		})
	}

	err := g.Wait()
	a.Wait()
	return err
}
