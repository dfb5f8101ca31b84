// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/tago/internal/adapters/cas"
	_ "go.trai.ch/tago/internal/adapters/config"
	_ "go.trai.ch/tago/internal/adapters/fs"
	_ "go.trai.ch/tago/internal/adapters/git"
	_ "go.trai.ch/tago/internal/adapters/logger"
	_ "go.trai.ch/tago/internal/adapters/shell"
	// Register app nodes.
	_ "go.trai.ch/tago/internal/app"
)
