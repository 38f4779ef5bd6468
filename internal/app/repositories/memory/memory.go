// Package memory keeps bootcamps and courses in process memory. It backs the
// memory database driver and the service and controller tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yigit/devcamper/internal/app/models"
	"github.com/yigit/devcamper/internal/app/repositories"
	"github.com/yigit/devcamper/internal/pkg/apperrors"
)

// Store holds both collections behind one lock so unique checks and cascades
// observe a consistent view.
type Store struct {
	mu        sync.RWMutex
	bootcamps map[primitive.ObjectID]*models.Bootcamp
	courses   map[primitive.ObjectID]*models.Course
}

// NewStore creates an empty Store
func NewStore() *Store {
	return &Store{
		bootcamps: make(map[primitive.ObjectID]*models.Bootcamp),
		courses:   make(map[primitive.ObjectID]*models.Course),
	}
}

// NewRepositories wires repositories over a fresh Store
func NewRepositories() *repositories.Repositories {
	store := NewStore()
	return &repositories.Repositories{
		BootcampRepository: store.Bootcamps(),
		CourseRepository:   store.Courses(),
		Store:              store,
	}
}

// Ping always succeeds
func (s *Store) Ping(context.Context) error { return nil }

// Bootcamps returns the bootcamp repository view of s
func (s *Store) Bootcamps() repositories.BootcampRepository { return &bootcampRepository{s} }

// Courses returns the course repository view of s
func (s *Store) Courses() repositories.CourseRepository { return &courseRepository{s} }

// ObjectIDs minted by one process sort by creation second, then by counter.
func sortedIDs[T any](m map[primitive.ObjectID]T) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Hex() < ids[j].Hex() })
	return ids
}

func cloneBootcamp(b *models.Bootcamp) *models.Bootcamp {
	c := *b
	c.Careers = append([]models.Career(nil), b.Careers...)
	if b.Careers != nil && c.Careers == nil {
		c.Careers = []models.Career{}
	}
	if b.AverageCost != nil {
		cost := *b.AverageCost
		c.AverageCost = &cost
	}
	return &c
}

func cloneCourse(c *models.Course) *models.Course {
	cc := *c
	return &cc
}

type bootcampRepository struct{ s *Store }

func (r *bootcampRepository) nameTaken(name string, except primitive.ObjectID) bool {
	for id, b := range r.s.bootcamps {
		if id != except && b.Name == name {
			return true
		}
	}
	return false
}

func (r *bootcampRepository) Create(_ context.Context, bootcamp *models.Bootcamp) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.nameTaken(bootcamp.Name, primitive.NilObjectID) {
		return apperrors.NewDuplicateFieldError("name", bootcamp.Name)
	}
	if bootcamp.ID.IsZero() {
		bootcamp.ID = primitive.NewObjectID()
	}
	r.s.bootcamps[bootcamp.ID] = cloneBootcamp(bootcamp)
	return nil
}

func (r *bootcampRepository) FindAll(context.Context) ([]*models.Bootcamp, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	bootcamps := make([]*models.Bootcamp, 0, len(r.s.bootcamps))
	for _, id := range sortedIDs(r.s.bootcamps) {
		bootcamps = append(bootcamps, cloneBootcamp(r.s.bootcamps[id]))
	}
	return bootcamps, nil
}

func (r *bootcampRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Bootcamp, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.bootcamps[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return cloneBootcamp(b), nil
}

func (r *bootcampRepository) FindSummaries(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.BootcampSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	summaries := make(map[primitive.ObjectID]*models.BootcampSummary, len(ids))
	for _, id := range ids {
		if b, ok := r.s.bootcamps[id]; ok {
			summaries[id] = b.Summary()
		}
	}
	return summaries, nil
}

func (r *bootcampRepository) Update(_ context.Context, bootcamp *models.Bootcamp) (*models.Bootcamp, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.bootcamps[bootcamp.ID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if r.nameTaken(bootcamp.Name, bootcamp.ID) {
		return nil, apperrors.NewDuplicateFieldError("name", bootcamp.Name)
	}

	updated := cloneBootcamp(bootcamp)
	updated.AverageCost = stored.AverageCost
	updated.CreatedAt = stored.CreatedAt
	r.s.bootcamps[bootcamp.ID] = updated
	return cloneBootcamp(updated), nil
}

func (r *bootcampRepository) Delete(_ context.Context, id primitive.ObjectID) (*models.Bootcamp, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bootcamps[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	delete(r.s.bootcamps, id)
	return b, nil
}

func (r *bootcampRepository) SetAverageCost(_ context.Context, id primitive.ObjectID, cost *int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bootcamps[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if cost == nil {
		b.AverageCost = nil
		return nil
	}
	v := *cost
	b.AverageCost = &v
	return nil
}

type courseRepository struct{ s *Store }

func (r *courseRepository) titleTaken(title string, except primitive.ObjectID) bool {
	for id, c := range r.s.courses {
		if id != except && c.Title == title {
			return true
		}
	}
	return false
}

func (r *courseRepository) Create(_ context.Context, course *models.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.titleTaken(course.Title, primitive.NilObjectID) {
		return apperrors.NewDuplicateFieldError("title", course.Title)
	}
	if course.ID.IsZero() {
		course.ID = primitive.NewObjectID()
	}
	r.s.courses[course.ID] = cloneCourse(course)
	return nil
}

func (r *courseRepository) FindAll(_ context.Context, filter repositories.CourseFilter) ([]*models.Course, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	courses := []*models.Course{}
	for _, id := range sortedIDs(r.s.courses) {
		c := r.s.courses[id]
		if filter.BootcampID != nil && c.Bootcamp != *filter.BootcampID {
			continue
		}
		courses = append(courses, cloneCourse(c))
	}
	return courses, nil
}

func (r *courseRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Course, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.courses[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return cloneCourse(c), nil
}

func (r *courseRepository) Update(_ context.Context, course *models.Course) (*models.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.courses[course.ID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if r.titleTaken(course.Title, course.ID) {
		return nil, apperrors.NewDuplicateFieldError("title", course.Title)
	}

	updated := cloneCourse(course)
	updated.CreatedAt = stored.CreatedAt
	r.s.courses[course.ID] = updated
	return cloneCourse(updated), nil
}

func (r *courseRepository) Delete(_ context.Context, id primitive.ObjectID) (*models.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.courses[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	delete(r.s.courses, id)
	return c, nil
}

func (r *courseRepository) DeleteByBootcamp(_ context.Context, bootcampID primitive.ObjectID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var deleted int64
	for id, c := range r.s.courses {
		if c.Bootcamp == bootcampID {
			delete(r.s.courses, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *courseRepository) AverageTuition(_ context.Context, bootcampID primitive.ObjectID) (float64, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var sum float64
	var n int
	for _, c := range r.s.courses {
		if c.Bootcamp == bootcampID {
			sum += c.Tuition
			n++
		}
	}
	if n == 0 {
		return 0, false, nil
	}
	return sum / float64(n), true, nil
}
