package app

import (
	"context"
	"net/http"

	"github.com/grindlemire/graft"
	"go.trai.ch/vigil/internal/adapters/auth"      //nolint:depguard // Wired in app layer
	"go.trai.ch/vigil/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/vigil/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/vigil/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/vigil/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/vigil/internal/adapters/manifest"  //nolint:depguard // Wired in app layer
	"go.trai.ch/vigil/internal/adapters/metrics"   //nolint:depguard // Wired in app layer
	"go.trai.ch/vigil/internal/adapters/progress"  //nolint:depguard // Wired in app layer
	"go.trai.ch/vigil/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports"
	"go.trai.ch/vigil/internal/engine/scanner"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components bundles what the command line needs from the dependency graph.
type Components struct {
	App    *App
	Logger ports.Logger
	Config *domain.Config
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			manifest.NodeID,
			scanner.NodeID,
			progress.NodeID,
			cas.NodeID,
			auth.NodeID,
			fs.VersionNodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			metrics.NodeID,
			metrics.HandlerNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	cfg, err := graft.Dep[*domain.Config](ctx)
	if err != nil {
		return nil, err
	}

	provider, err := graft.Dep[ports.ManifestProvider](ctx)
	if err != nil {
		return nil, err
	}

	scan, err := graft.Dep[*scanner.Scanner](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.ProgressStore](ctx)
	if err != nil {
		return nil, err
	}

	reports, err := graft.Dep[ports.ReportStore](ctx)
	if err != nil {
		return nil, err
	}

	authorizer, err := graft.Dep[ports.Authorizer](ctx)
	if err != nil {
		return nil, err
	}

	detector, err := graft.Dep[ports.VersionDetector](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	m, err := graft.Dep[ports.Metrics](ctx)
	if err != nil {
		return nil, err
	}

	handler, err := graft.Dep[http.Handler](ctx)
	if err != nil {
		return nil, err
	}

	return New(cfg, provider, scan, store, reports, authorizer, detector, log,
		WithTracer(tracer),
		WithMetrics(m),
		WithMetricsHandler(handler),
	), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	a, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := graft.Dep[*domain.Config](ctx)
	if err != nil {
		return nil, err
	}

	if cfg.LogFormat == domain.LogFormatJSON {
		if j, ok := log.(interface{ SetJSON(enable bool) }); ok {
			j.SetJSON(true)
		}
	}

	return &Components{App: a, Logger: log, Config: cfg}, nil
}
