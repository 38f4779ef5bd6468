package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yigit/devcamper/internal/app/models"
	"github.com/yigit/devcamper/internal/app/models/dto"
	"github.com/yigit/devcamper/internal/app/repositories"
	"github.com/yigit/devcamper/internal/pkg/apperrors"
)

// CourseService defines the interface for course-related operations
type CourseService interface {
	GetCourses(ctx context.Context) ([]*models.PopulatedCourse, error)
	GetBootcampCourses(ctx context.Context, bootcampID string) ([]*models.Course, error)
	GetCourse(ctx context.Context, id string) (*models.PopulatedCourse, error)
	CreateCourse(ctx context.Context, bootcampID string, req *dto.CourseRequest) (*models.Course, error)
	UpdateCourse(ctx context.Context, id string, req *dto.CourseRequest) (*models.Course, error)
	DeleteCourse(ctx context.Context, id string) (*models.Course, error)
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	courseRepo   repositories.CourseRepository
	bootcampRepo repositories.BootcampRepository
	averageCost  *AverageCostUpdater
	now          func() time.Time
}

// NewCourseService creates a new course service instance. averageCost is
// triggered after every write that can change a bootcamp's average tuition.
func NewCourseService(courseRepo repositories.CourseRepository, bootcampRepo repositories.BootcampRepository, averageCost *AverageCostUpdater) CourseService {
	return &courseServiceImpl{
		courseRepo:   courseRepo,
		bootcampRepo: bootcampRepo,
		averageCost:  averageCost,
		now:          func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

func courseNotFound(id string) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("No course with the id of %s", id))
}

func parentNotFound(id string) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("No bootcamp with the id of %s", id))
}

// populate expands the bootcamp reference of every course. Courses whose
// bootcamp no longer exists get a nil bootcamp.
func (s *courseServiceImpl) populate(ctx context.Context, courses []*models.Course) ([]*models.PopulatedCourse, error) {
	ids := make([]primitive.ObjectID, 0, len(courses))
	seen := make(map[primitive.ObjectID]struct{}, len(courses))
	for _, c := range courses {
		if _, ok := seen[c.Bootcamp]; !ok {
			seen[c.Bootcamp] = struct{}{}
			ids = append(ids, c.Bootcamp)
		}
	}

	summaries, err := s.bootcampRepo.FindSummaries(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("error expanding course bootcamps: %w", err)
	}

	populated := make([]*models.PopulatedCourse, 0, len(courses))
	for _, c := range courses {
		populated = append(populated, c.Populate(summaries[c.Bootcamp]))
	}
	return populated, nil
}

// GetCourses retrieves every course with its bootcamp expanded
func (s *courseServiceImpl) GetCourses(ctx context.Context) ([]*models.PopulatedCourse, error) {
	courses, err := s.courseRepo.FindAll(ctx, repositories.CourseFilter{})
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	return s.populate(ctx, courses)
}

// GetBootcampCourses retrieves the courses of one bootcamp
func (s *courseServiceImpl) GetBootcampCourses(ctx context.Context, bootcampID string) ([]*models.Course, error) {
	oid, err := models.ParseID(bootcampID)
	if err != nil {
		return nil, err
	}

	courses, err := s.courseRepo.FindAll(ctx, repositories.CourseFilter{BootcampID: &oid})
	if err != nil {
		return nil, fmt.Errorf("error retrieving bootcamp courses: %w", err)
	}
	return courses, nil
}

// GetCourse retrieves a course by id with its bootcamp expanded
func (s *courseServiceImpl) GetCourse(ctx context.Context, id string) (*models.PopulatedCourse, error) {
	oid, err := models.ParseID(id)
	if err != nil {
		return nil, err
	}

	course, err := s.findCourse(ctx, oid, id)
	if err != nil {
		return nil, err
	}

	populated, err := s.populate(ctx, []*models.Course{course})
	if err != nil {
		return nil, err
	}
	return populated[0], nil
}

// CreateCourse stores a new course under the bootcamp named by bootcampID
func (s *courseServiceImpl) CreateCourse(ctx context.Context, bootcampID string, req *dto.CourseRequest) (*models.Course, error) {
	oid, err := models.ParseID(bootcampID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureBootcamp(ctx, oid, bootcampID); err != nil {
		return nil, err
	}

	req.Bootcamp = &bootcampID
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	course := req.ToModel(s.now())
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	s.averageCost.Trigger(ctx, course.Bootcamp)
	return course, nil
}

// UpdateCourse merges req onto the stored course, re-runs the validators and
// recalculates the average cost of every bootcamp whose tuition set changed.
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id string, req *dto.CourseRequest) (*models.Course, error) {
	oid, err := models.ParseID(id)
	if err != nil {
		return nil, err
	}

	existing, err := s.findCourse(ctx, oid, id)
	if err != nil {
		return nil, err
	}
	previousBootcamp, previousTuition := existing.Bootcamp, existing.Tuition

	req.Normalize()
	req.Fill(existing)
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.ApplyTo(existing)

	if existing.Bootcamp != previousBootcamp {
		if err := s.ensureBootcamp(ctx, existing.Bootcamp, existing.Bootcamp.Hex()); err != nil {
			return nil, err
		}
	}

	updated, err := s.courseRepo.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, courseNotFound(id)
		}
		return nil, err
	}

	switch {
	case updated.Bootcamp != previousBootcamp:
		s.averageCost.Trigger(ctx, previousBootcamp, updated.Bootcamp)
	case updated.Tuition != previousTuition:
		s.averageCost.Trigger(ctx, updated.Bootcamp)
	}
	return updated, nil
}

// DeleteCourse removes a course and recalculates its bootcamp's average cost
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id string) (*models.Course, error) {
	oid, err := models.ParseID(id)
	if err != nil {
		return nil, err
	}

	deleted, err := s.courseRepo.Delete(ctx, oid)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, courseNotFound(id)
		}
		return nil, fmt.Errorf("error deleting course: %w", err)
	}

	s.averageCost.Trigger(ctx, deleted.Bootcamp)
	return deleted, nil
}

func (s *courseServiceImpl) findCourse(ctx context.Context, oid primitive.ObjectID, id string) (*models.Course, error) {
	course, err := s.courseRepo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, courseNotFound(id)
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return course, nil
}

func (s *courseServiceImpl) ensureBootcamp(ctx context.Context, oid primitive.ObjectID, id string) error {
	if _, err := s.bootcampRepo.FindByID(ctx, oid); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return parentNotFound(id)
		}
		return fmt.Errorf("error retrieving bootcamp: %w", err)
	}
	return nil
}
