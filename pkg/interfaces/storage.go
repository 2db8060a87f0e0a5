package interfaces

import (
	"github.com/goliatone/go-portfolio/pkg/storage"
)

// StorageProvider preserves a stable interface location for callers wiring
// custom providers. Implementations should prefer satisfying
// pkg/storage.Provider directly.
type StorageProvider = storage.Provider

// Rows aliases the storage.Rows type.
type Rows = storage.Rows

// Result aliases the storage.Result type.
type Result = storage.Result

// Transaction aliases the storage.Transaction type.
type Transaction = storage.Transaction
