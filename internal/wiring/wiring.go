// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.skade.ch/crashmin/internal/adapters/config"
	_ "go.skade.ch/crashmin/internal/adapters/exec"
	_ "go.skade.ch/crashmin/internal/adapters/logger"
	_ "go.skade.ch/crashmin/internal/adapters/report"
	_ "go.skade.ch/crashmin/internal/adapters/repro"
	// Register app nodes.
	_ "go.skade.ch/crashmin/internal/app"
)
