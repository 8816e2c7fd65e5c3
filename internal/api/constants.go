package api

// OpenAPI document metadata.
const (
	APITitle   = "Loyer API"
	APIVersion = "1.0.0"
)

// Cache-Control header values.
const (
	CacheNoStore = "no-store"
)
