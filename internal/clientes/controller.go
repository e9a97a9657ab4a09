package clientes

import (
	"log/slog"

	"github.com/gestor-erp/gestor/internal/resource"
)

// CacheKey is the cache store key owned by the customer controller.
const CacheKey = "clientes"

// Controller is the customer specialization of the sync controller.
type Controller = resource.Controller[Cliente, ClienteInsert, ClienteUpdate]

// NewController binds the customer cache key to its gateway.
func NewController(store *resource.Store, gateway resource.Gateway[Cliente, ClienteInsert, ClienteUpdate], logger *slog.Logger) *Controller {
	return resource.NewController(CacheKey, store, gateway, logger)
}
