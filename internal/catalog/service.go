package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ayodelep/weathercat/pkg/common"
	"github.com/ayodelep/weathercat/pkg/logger"
	"github.com/ayodelep/weathercat/pkg/random"
)

// Service implements the catalog business logic
type Service struct {
	repo RepositoryInterface
	rng  random.Provider
}

// NewService creates a new catalog service
func NewService(repo RepositoryInterface, rng random.Provider) *Service {
	return &Service{repo: repo, rng: rng}
}

func (s *Service) Create(ctx context.Context, name string) (*Location, error) {
	return s.repo.Create(ctx, name)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Location, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByName(ctx context.Context, name string) (*Location, error) {
	return s.repo.GetByName(ctx, name)
}

func (s *Service) ListActive(ctx context.Context) ([]*Location, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) RecordView(ctx context.Context, id int64) error {
	return s.repo.RecordView(ctx, id)
}

func (s *Service) Reset(ctx context.Context) error {
	return s.repo.Reset(ctx)
}

// PickRandom returns a uniformly chosen active location. The external
// randomness provider is only consulted when the catalog is non-empty.
func (s *Service) PickRandom(ctx context.Context) (*Location, error) {
	locations, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(locations) == 0 {
		return nil, common.NewEmptyError("the location catalog is empty")
	}

	idx, err := s.rng.Intn(ctx, len(locations))
	if err != nil {
		return nil, err
	}
	if idx < 1 || idx > len(locations) {
		return nil, common.NewUpstreamError(fmt.Sprintf("random index %d out of range 1..%d", idx, len(locations)), nil)
	}

	loc := locations[idx-1]
	logger.Debug("random location picked", zap.Int64("id", loc.ID), zap.String("name", loc.Name))
	return loc, nil
}
