package authz

// PolicyDeleteSupplier gobierna el borrado de proveedores. El nombre viene del
// sistema legado y se conserva porque los claims ya provisionados lo usan.
const PolicyDeleteSupplier = "ExcluirFornecedor"

// DefaultEngine construye el motor con las políticas del servicio.
func DefaultEngine(secret string) *Engine {
	return NewEngine(secret).
		Register(PolicyDeleteSupplier, RequireClaim(PolicyDeleteSupplier, "true"))
}
