package interfaces

import (
	"context"

	"github.com/cWebCo/tensile-payment-2/internal/domain/entities"
)

// IGatewaySettingsStore reads the gateway configuration owned by the
// host's settings form. Loaded fresh per operation; never cached here.

type IGatewaySettingsStore interface {
	Load(ctx context.Context) (entities.GatewaySettings, error)
}
