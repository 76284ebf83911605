package interfaces

import (
	"context"

	"github.com/cWebCo/tensile-payment-2/internal/domain/entities"
)

// IOrderRepository reads host order snapshots. The orders table is owned
// and written by the host; the adapter never mutates it.

type IOrderRepository interface {
	GetByID(ctx context.Context, id string) (entities.OrderSnapshot, error)
}
