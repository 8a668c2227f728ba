// Package scanner classifies the files under a scan root against a baseline manifest.
package scanner

import (
	"context"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Request describes one scan.
type Request struct {
	// Session keys the progress records written during the scan.
	Session domain.SessionID
	// Root is the directory to scan.
	Root string
	// Manifest is the baseline. An empty manifest classifies every file as unknown.
	Manifest *domain.Manifest
	// Rules excludes paths from enumeration.
	Rules domain.ExclusionRules
	// SkipExcludedMissing stops excluded manifest entries from being reported as missing.
	SkipExcludedMissing bool
	// Workers bounds concurrent hashing. Non-positive values use the CPU count.
	Workers int
	// ProgressTTL is passed to every progress write.
	ProgressTTL time.Duration
}

// Scanner walks, hashes and classifies files.
type Scanner struct {
	walker   ports.Walker
	hasher   ports.Hasher
	progress ports.ProgressStore
	logger   ports.Logger
	tracer   ports.Tracer
	metrics  ports.Metrics
	clock    clockwork.Clock
}

// Option configures optional Scanner collaborators.
type Option func(*Scanner)

// WithTracer sets the tracer.
func WithTracer(tracer ports.Tracer) Option {
	return func(s *Scanner) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(metrics ports.Metrics) Option {
	return func(s *Scanner) {
		if metrics != nil {
			s.metrics = metrics
		}
	}
}

// WithClock sets the clock used for result timestamps.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Scanner) {
		s.clock = clock
	}
}

// NewScanner creates a new Scanner. Tracing and metrics are disabled unless set by opts.
func NewScanner(
	walker ports.Walker,
	hasher ports.Hasher,
	progress ports.ProgressStore,
	logger ports.Logger,
	opts ...Option,
) *Scanner {
	s := &Scanner{
		walker:   walker,
		hasher:   hasher,
		progress: progress,
		logger:   logger,
		tracer:   noopTracer{},
		metrics:  noopMetrics{},
		clock:    clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Algorithm returns the digest algorithm used for hashing.
func (s *Scanner) Algorithm() domain.Algorithm {
	return s.hasher.Algorithm()
}

type fileOutcome struct {
	digest string
	failed bool
}

// Scan enumerates every non-excluded file under req.Root, hashes it and classifies it
// against req.Manifest. Manifest entries not seen during enumeration are checked for
// existence afterwards. A cancelled context stops the scan at the next file boundary.
func (s *Scanner) Scan(ctx context.Context, req Request) (*domain.ScanResult, error) {
	ctx, span := s.tracer.Start(ctx, "scanner.scan")
	defer span.End()

	started := s.clock.Now()
	span.SetAttribute("session", req.Session.String())
	span.SetAttribute("root", req.Root)
	span.SetAttribute("manifest_entries", req.Manifest.Len())

	files := slices.Collect(s.walker.Walk(ctx, req.Root, req.Rules))
	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		return nil, zerr.Wrap(err, domain.ErrScanFailed.Error())
	}
	span.SetAttribute("files", len(files))

	outcomes, err := s.hashAll(ctx, req, files)
	if err != nil {
		span.RecordError(err)
		return nil, zerr.Wrap(err, domain.ErrScanFailed.Error())
	}

	result := &domain.ScanResult{
		Session:   req.Session,
		Root:      req.Root,
		Algorithm: s.hasher.Algorithm(),
		Stats: domain.ScanStats{
			Files:           len(files),
			ManifestEntries: req.Manifest.Len(),
		},
		StartedAt: started,
	}

	seen := s.classify(result, req.Manifest, files, outcomes)

	if err := s.findMissing(ctx, result, req, seen); err != nil {
		span.RecordError(err)
		return nil, zerr.Wrap(err, domain.ErrScanFailed.Error())
	}

	result.Normalize()
	result.FinishedAt = s.clock.Now()

	span.SetAttribute("modified", len(result.Modified))
	span.SetAttribute("missing", len(result.Missing))
	span.SetAttribute("unknown", len(result.Unknown))
	s.metrics.ScanFinished(result, result.Duration())

	return result, nil
}

// hashAll hashes files with a bounded worker pool. Outcomes are indexed like files.
func (s *Scanner) hashAll(ctx context.Context, req Request, files []string) ([]fileOutcome, error) {
	tracker := &progressTracker{
		store:   s.progress,
		logger:  s.logger,
		session: req.Session,
		ttl:     req.ProgressTTL,
		total:   len(files),
	}

	if len(files) == 0 {
		tracker.complete(ctx)
		return nil, nil
	}

	workers := req.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	outcomes := make([]fileOutcome, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, rel := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			digest, err := s.hasher.Hash(gctx, req.Root, rel)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				s.logger.Warn("could not hash file", "path", rel, "error", err)
				outcomes[i] = fileOutcome{failed: true}
			} else {
				outcomes[i] = fileOutcome{digest: digest}
			}
			s.metrics.FileHashed(outcomes[i].failed)

			tracker.advance(gctx)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// The loop may stop spawning on cancellation without any worker reporting it.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return outcomes, nil
}

// classify records modified and unknown files and returns the set of enumerated paths.
func (s *Scanner) classify(
	result *domain.ScanResult,
	manifest *domain.Manifest,
	files []string,
	outcomes []fileOutcome,
) map[string]struct{} {
	seen := make(map[string]struct{}, len(files))

	for i, rel := range files {
		seen[rel] = struct{}{}
		outcome := outcomes[i]

		if outcome.failed {
			result.Stats.Unreadable++
			result.Unknown = append(result.Unknown, rel)
			continue
		}

		expected, ok := manifest.Lookup(rel)
		switch {
		case !ok:
			result.Unknown = append(result.Unknown, rel)
		case outcome.digest != expected:
			result.Modified = append(result.Modified, rel)
		default:
			result.Stats.Clean++
		}
	}

	return seen
}

// findMissing checks every manifest entry that was not enumerated.
func (s *Scanner) findMissing(
	ctx context.Context,
	result *domain.ScanResult,
	req Request,
	seen map[string]struct{},
) error {
	for _, p := range req.Manifest.Paths() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, ok := seen[p]; ok {
			continue
		}
		if req.SkipExcludedMissing && req.Rules.Excludes(p) {
			continue
		}
		if !s.walker.Exists(req.Root, p) {
			result.Missing = append(result.Missing, p)
		}
	}
	return nil
}

// progressTracker serializes progress writes so stored values never decrease.
type progressTracker struct {
	store   ports.ProgressStore
	logger  ports.Logger
	session domain.SessionID
	ttl     time.Duration
	total   int

	mu        sync.Mutex
	processed int
}

func (t *progressTracker) advance(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.processed++
	if t.processed%domain.ProgressInterval != 0 && t.processed != t.total {
		return
	}
	t.write(ctx, domain.Percent(t.processed, t.total))
}

func (t *progressTracker) complete(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.write(ctx, domain.ProgressComplete)
}

// write must be called with mu held.
func (t *progressTracker) write(ctx context.Context, percent float64) {
	if err := t.store.Set(ctx, t.session, percent, t.ttl); err != nil {
		t.logger.Warn("could not record scan progress", "session", t.session.String(), "error", err)
	}
}
