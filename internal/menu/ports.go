package menu

import (
	"context"

	"mesero/internal/domain"
)

type Synchronizer interface {
	FetchMenu(ctx context.Context) ([]domain.MenuEntry, error)
	RefreshCatalog(ctx context.Context) (int, error)
	SnapshotCatalog(ctx context.Context) ([]domain.MenuEntry, error)
}
