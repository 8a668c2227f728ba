// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/vigil/internal/adapters/auth"
	_ "go.trai.ch/vigil/internal/adapters/cas"
	_ "go.trai.ch/vigil/internal/adapters/config"
	_ "go.trai.ch/vigil/internal/adapters/fs"
	_ "go.trai.ch/vigil/internal/adapters/logger"
	_ "go.trai.ch/vigil/internal/adapters/manifest"
	_ "go.trai.ch/vigil/internal/adapters/metrics"
	_ "go.trai.ch/vigil/internal/adapters/progress"
	_ "go.trai.ch/vigil/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/vigil/internal/app"
	_ "go.trai.ch/vigil/internal/engine/scanner"
)
