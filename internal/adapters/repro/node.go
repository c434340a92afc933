package repro

import (
	"context"

	"github.com/grindlemire/graft"
	"go.skade.ch/crashmin/internal/adapters/logger"
	"go.skade.ch/crashmin/internal/core/ports"
)

const NodeID graft.ID = "adapter.repro_loader"

func init() {
	graft.Register(graft.Node[ports.ReproLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ReproLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})
}
