package adminkit

import (
	persistence "github.com/goliatone/go-persistence-bun"
)

// RegisterModels registers the registry models with the persistence layer.
// Call it before creating the persistence client so migrations and fixtures
// can resolve the model metadata.
func RegisterModels() {
	persistence.RegisterModel((*Admin)(nil))
	persistence.RegisterModel((*UserProfile)(nil))
}
