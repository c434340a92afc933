package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.skade.ch/crashmin/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.skade.ch/crashmin/internal/adapters/exec"   //nolint:depguard // Wired in app layer
	"go.skade.ch/crashmin/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"go.skade.ch/crashmin/internal/adapters/report" //nolint:depguard // Wired in app layer
	"go.skade.ch/crashmin/internal/adapters/repro"  //nolint:depguard // Wired in app layer
	"go.skade.ch/crashmin/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains the initialized application components the CLI layer
// consumes.
type Components struct {
	App          *App
	Logger       ports.Logger
	ConfigLoader ports.ConfigLoader
}

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			repro.NodeID,
			exec.NodeID,
			logger.NodeID,
			report.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ReproLoader](ctx)
			if err != nil {
				return nil, err
			}
			runner, err := graft.Dep[ports.Runner](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			reporter, err := graft.Dep[ports.Reporter](ctx)
			if err != nil {
				return nil, err
			}
			return New(loader, runner, log, reporter), nil
		},
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			cfgLoader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{
				App:          app,
				Logger:       log,
				ConfigLoader: cfgLoader,
			}, nil
		},
	})
}
