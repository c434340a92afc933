package report

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.skade.ch/crashmin/internal/core/ports"
)

const NodeID graft.ID = "adapter.reporter"

func init() {
	graft.Register(graft.Node[ports.Reporter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Reporter, error) {
			return NewConsole(os.Stdout), nil
		},
	})
}
