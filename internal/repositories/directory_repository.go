package repositories

import (
	"context"

	"github.com/pixalara/placement-service/internal/models"
)

// DirectoryRepository is the read-only view of the identity provider's
// user directory. The portal is not the owner of account data; writes go
// through the auth provider.
type DirectoryRepository interface {
	GetByUID(ctx context.Context, uid string) (*models.DirectoryUser, error)
	GetByEmail(ctx context.Context, email string) (*models.DirectoryUser, error)

	List(ctx context.Context, filters DirectoryFilters) ([]*models.DirectoryUser, int64, error)

	ExistsByUID(ctx context.Context, uid string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
