package fornecedores

import (
	"log/slog"

	"github.com/gestor-erp/gestor/internal/resource"
)

// CacheKey is the cache store key owned by the supplier controller.
const CacheKey = "fornecedores"

// Controller is the supplier specialization of the sync controller.
type Controller = resource.Controller[Fornecedor, FornecedorInsert, FornecedorUpdate]

// NewController binds the supplier cache key to its gateway.
func NewController(store *resource.Store, gateway resource.Gateway[Fornecedor, FornecedorInsert, FornecedorUpdate], logger *slog.Logger) *Controller {
	return resource.NewController(CacheKey, store, gateway, logger)
}
