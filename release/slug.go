package release

import (
	"github.com/google/uuid"
	"github.com/mr-tron/base58"
)

// NewSlug generates a short random changeset filename stem. Base58 keeps the
// name readable and filesystem-safe on case-insensitive volumes.
func NewSlug() string {
	id := uuid.New()
	return "cs-" + base58.Encode(id[:8])
}
