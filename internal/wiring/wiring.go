// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/mbs/internal/adapters/builder"
	_ "go.trai.ch/mbs/internal/adapters/config"
	_ "go.trai.ch/mbs/internal/adapters/logger"
	_ "go.trai.ch/mbs/internal/adapters/reuse"
	_ "go.trai.ch/mbs/internal/adapters/store"
	_ "go.trai.ch/mbs/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/mbs/internal/app"
	_ "go.trai.ch/mbs/internal/engine/scheduler"
)
