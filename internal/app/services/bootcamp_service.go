package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yigit/devcamper/internal/app/models"
	"github.com/yigit/devcamper/internal/app/models/dto"
	"github.com/yigit/devcamper/internal/app/repositories"
	"github.com/yigit/devcamper/internal/pkg/apperrors"
	"github.com/yigit/devcamper/internal/pkg/logger"
)

// BootcampService defines the interface for bootcamp-related operations
type BootcampService interface {
	GetBootcamps(ctx context.Context) ([]*models.Bootcamp, error)
	GetBootcamp(ctx context.Context, id string) (*models.Bootcamp, error)
	CreateBootcamp(ctx context.Context, req *dto.BootcampRequest) (*models.Bootcamp, error)
	UpdateBootcamp(ctx context.Context, id string, req *dto.BootcampRequest) (*models.Bootcamp, error)
	DeleteBootcamp(ctx context.Context, id string) (*models.Bootcamp, error)
}

// bootcampServiceImpl implements the BootcampService interface
type bootcampServiceImpl struct {
	bootcampRepo repositories.BootcampRepository
	courseRepo   repositories.CourseRepository
	now          func() time.Time
}

// NewBootcampService creates a new bootcamp service instance
func NewBootcampService(bootcampRepo repositories.BootcampRepository, courseRepo repositories.CourseRepository) BootcampService {
	return &bootcampServiceImpl{
		bootcampRepo: bootcampRepo,
		courseRepo:   courseRepo,
		now:          func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

func bootcampNotFound(id string) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("Bootcamp not found with id: %s", id))
}

// GetBootcamps retrieves all bootcamps
func (s *bootcampServiceImpl) GetBootcamps(ctx context.Context) ([]*models.Bootcamp, error) {
	bootcamps, err := s.bootcampRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving bootcamps: %w", err)
	}
	return bootcamps, nil
}

// GetBootcamp retrieves a bootcamp by id. A malformed id is reported the
// same way as a missing bootcamp.
func (s *bootcampServiceImpl) GetBootcamp(ctx context.Context, id string) (*models.Bootcamp, error) {
	oid, err := models.ParseID(id)
	if err != nil {
		return nil, bootcampNotFound(id)
	}

	bootcamp, err := s.bootcampRepo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, bootcampNotFound(id)
		}
		return nil, fmt.Errorf("error retrieving bootcamp: %w", err)
	}
	return bootcamp, nil
}

// CreateBootcamp validates req and stores a new bootcamp
func (s *bootcampServiceImpl) CreateBootcamp(ctx context.Context, req *dto.BootcampRequest) (*models.Bootcamp, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	bootcamp := req.ToModel(s.now())
	if err := s.bootcampRepo.Create(ctx, bootcamp); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().Str("bootcampId", bootcamp.ID.Hex()).Msg("Bootcamp created")
	return bootcamp, nil
}

// UpdateBootcamp merges req onto the stored bootcamp and re-runs the
// validators on the merged document before writing it.
func (s *bootcampServiceImpl) UpdateBootcamp(ctx context.Context, id string, req *dto.BootcampRequest) (*models.Bootcamp, error) {
	oid, err := models.ParseID(id)
	if err != nil {
		return nil, err
	}

	existing, err := s.bootcampRepo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, bootcampNotFound(id)
		}
		return nil, fmt.Errorf("error retrieving bootcamp: %w", err)
	}

	req.Normalize()
	req.Fill(existing)
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.ApplyTo(existing)

	updated, err := s.bootcampRepo.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, bootcampNotFound(id)
		}
		return nil, err
	}
	return updated, nil
}

// DeleteBootcamp removes a bootcamp together with its courses
func (s *bootcampServiceImpl) DeleteBootcamp(ctx context.Context, id string) (*models.Bootcamp, error) {
	oid, err := models.ParseID(id)
	if err != nil {
		return nil, err
	}

	if _, err := s.bootcampRepo.FindByID(ctx, oid); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, bootcampNotFound(id)
		}
		return nil, fmt.Errorf("error retrieving bootcamp: %w", err)
	}

	removed, err := s.courseRepo.DeleteByBootcamp(ctx, oid)
	if err != nil {
		return nil, err
	}

	deleted, err := s.bootcampRepo.Delete(ctx, oid)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, bootcampNotFound(id)
		}
		return nil, err
	}

	logger.FromContext(ctx).Info().
		Str("bootcampId", id).
		Int64("coursesRemoved", removed).
		Msg("Bootcamp deleted")
	return deleted, nil
}
