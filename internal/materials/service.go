package materials

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/mms-suite/mms/internal/platform/httpx"
	"github.com/mms-suite/mms/internal/shared"
)

// Service orchestrates validation and persistence for materials.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns one page of materials plus pagination metadata.
func (s *Service) List(ctx context.Context, q ListQuery) ([]Material, shared.Pagination, error) {
	rows, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	if rows == nil {
		rows = []Material{}
	}
	return rows, shared.NewPagination(q.Page, q.Limit, total), nil
}

func (s *Service) Get(ctx context.Context, id int64) (Material, error) {
	return s.repo.Get(ctx, id)
}

// Create validates the payload, applies the create defaults and inserts the
// record. A duplicate code surfaces as a field-level validation failure, the
// same shape the rule table produces.
func (s *Service) Create(ctx context.Context, form MaterialForm) (Material, error) {
	if err := validateForm(&form, false); err != nil {
		return Material{}, err
	}
	form.applyDefaults()
	created, err := s.repo.Create(ctx, form.material())
	if err != nil {
		if errors.Is(err, httpx.ErrDuplicate) {
			return Material{}, httpx.Validation("code", "material code already exists")
		}
		return Material{}, err
	}
	return created, nil
}

// Update applies a partial patch: the payload is validated first, then the
// present fields are merged into the stored record.
func (s *Service) Update(ctx context.Context, id int64, form MaterialForm) (Material, error) {
	if err := validateForm(&form, true); err != nil {
		return Material{}, err
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Material{}, err
	}
	form.patch(&current)
	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		if errors.Is(err, httpx.ErrDuplicate) {
			return Material{}, httpx.Validation("code", "material code already exists")
		}
		return Material{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// DeleteMany removes all listed ids in one statement and reports the number of
// rows actually removed; ids without a matching row are not an error.
func (s *Service) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	return s.repo.DeleteMany(ctx, ids)
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.DistinctCategories(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}

// Statistics computes the four inventory aggregates concurrently.
func (s *Service) Statistics(ctx context.Context) (StockStatistics, error) {
	var stats StockStatistics
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.repo.CountAll(gctx)
		stats.TotalMaterials = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.CountByStatus(gctx, StatusActive)
		stats.ActiveMaterials = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.CountLowStock(gctx)
		stats.LowStockMaterials = n
		return err
	})
	g.Go(func() error {
		sum, err := s.repo.SumStockPriced(gctx)
		stats.TotalStockValue = sum
		return err
	})

	if err := g.Wait(); err != nil {
		return StockStatistics{}, err
	}
	return stats, nil
}
