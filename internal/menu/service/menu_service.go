package service

import (
	"context"

	"go.uber.org/zap"

	"mesero/internal/domain"
	"mesero/internal/result"
	"mesero/internal/watch"
)

type CatalogClient interface {
	FetchMenu(ctx context.Context) ([]domain.MenuEntry, error)
}

type CatalogRepository interface {
	ReplaceAll(ctx context.Context, entries []domain.MenuEntry) error
	List(ctx context.Context) ([]domain.MenuEntry, error)
}

// MenuService merges catalog fetches into the result envelope. There is no
// shared cache: every subscription performs its own fetch, so concurrent
// subscribers cause concurrent independent network calls.
type MenuService struct {
	client CatalogClient
	repo   CatalogRepository
	logger *zap.Logger
}

func NewMenuService(client CatalogClient, repo CatalogRepository, logger *zap.Logger) *MenuService {
	return &MenuService{
		client: client,
		repo:   repo,
		logger: logger,
	}
}

// ObserveMenu emits Loading, performs exactly one fetch, then emits a single
// Success or Error and closes. It never re-fetches on its own.
func (s *MenuService) ObserveMenu(ctx context.Context) *watch.Stream[result.Result[[]domain.MenuEntry]] {
	return watch.Single(ctx, result.Loading[[]domain.MenuEntry](), func(ctx context.Context) result.Result[[]domain.MenuEntry] {
		entries, err := s.client.FetchMenu(ctx)
		if err != nil {
			s.logger.Warn("menu fetch failed", zap.Error(err))
			return result.Failure[[]domain.MenuEntry](err)
		}
		return result.Success(entries)
	})
}

// ObserveMenuEntry fetches once and searches the catalog by id. An id that
// is not in the fetched list is Success with a nil entry, not an error.
func (s *MenuService) ObserveMenuEntry(ctx context.Context, id string) *watch.Stream[result.Result[*domain.MenuEntry]] {
	return watch.Single(ctx, result.Loading[*domain.MenuEntry](), func(ctx context.Context) result.Result[*domain.MenuEntry] {
		entries, err := s.client.FetchMenu(ctx)
		if err != nil {
			s.logger.Warn("menu fetch failed", zap.Error(err), zap.String("menuItemId", id))
			return result.Failure[*domain.MenuEntry](err)
		}
		for i := range entries {
			if entries[i].ID == id {
				return result.Success(&entries[i])
			}
		}
		return result.Success[*domain.MenuEntry](nil)
	})
}

// FetchMenu is the plain one-shot variant for non-observing consumers.
func (s *MenuService) FetchMenu(ctx context.Context) ([]domain.MenuEntry, error) {
	return s.client.FetchMenu(ctx)
}

// RefreshCatalog fetches the catalog and persists it wholesale to the
// menu_items table, returning the number of stored entries. This is the
// non-reactive snapshot path; live menu views always hit the network.
func (s *MenuService) RefreshCatalog(ctx context.Context) (int, error) {
	entries, err := s.client.FetchMenu(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.repo.ReplaceAll(ctx, entries); err != nil {
		return 0, err
	}

	s.logger.Info("catalog snapshot refreshed", zap.Int("entries", len(entries)))
	return len(entries), nil
}

// SnapshotCatalog returns the last persisted catalog snapshot.
func (s *MenuService) SnapshotCatalog(ctx context.Context) ([]domain.MenuEntry, error) {
	return s.repo.List(ctx)
}
