package produtos

import (
	"log/slog"

	"github.com/gestor-erp/gestor/internal/resource"
)

// CacheKey is the cache store key owned by the product controller.
const CacheKey = "produtos"

// Controller is the product specialization of the sync controller.
type Controller = resource.Controller[Produto, ProdutoInsert, ProdutoUpdate]

// NewController binds the product cache key to its gateway.
func NewController(store *resource.Store, gateway resource.Gateway[Produto, ProdutoInsert, ProdutoUpdate], logger *slog.Logger) *Controller {
	return resource.NewController(CacheKey, store, gateway, logger)
}
