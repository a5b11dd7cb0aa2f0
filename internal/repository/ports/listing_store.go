package ports

import (
	"context"

	"github.com/njprem/Italian_Properties_BackEnd/internal/domain"
)

// ListingSource is the read contract shared by the remote catalog client
// and the local file store. FindBySlugOrID returns (nil, nil) on a miss so
// the caller can fall through to the next source.
type ListingSource interface {
	List(ctx context.Context) ([]domain.Listing, error)
	FindBySlugOrID(ctx context.Context, key string) (*domain.Listing, error)
}

// ListingStore adds the write half of the contract.
type ListingStore interface {
	ListingSource
	Create(ctx context.Context, draft domain.ListingDraft) (*domain.Listing, error)
	Update(ctx context.Context, id string, patch domain.ListingPatch) (*domain.Listing, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// RemoteCatalog is a listing store that may be absent from a deployment.
// Configured reports whether reads can be attempted at all; CanWrite
// additionally requires mutation credentials.
type RemoteCatalog interface {
	ListingStore
	Configured() bool
	CanWrite() bool
}
