package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yigit/devcamper/internal/app/repositories"
	"github.com/yigit/devcamper/internal/pkg/logger"
	"github.com/yigit/devcamper/internal/pkg/metrics"
)

// defaultRecalculateTimeout bounds a recalculation when none is configured
const defaultRecalculateTimeout = 10 * time.Second

// AverageCostUpdater keeps Bootcamp.AverageCost equal to the ceiling of the
// mean tuition of the bootcamp's courses. Writes are not serialized, so the
// last recalculation to land wins.
type AverageCostUpdater struct {
	bootcampRepo repositories.BootcampRepository
	courseRepo   repositories.CourseRepository
	timeout      time.Duration
	async        bool

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewAverageCostUpdater creates an updater. When async is true Trigger
// returns immediately and recalculations run on their own goroutines.
func NewAverageCostUpdater(bootcampRepo repositories.BootcampRepository, courseRepo repositories.CourseRepository, timeout time.Duration, async bool) *AverageCostUpdater {
	if timeout <= 0 {
		timeout = defaultRecalculateTimeout
	}
	return &AverageCostUpdater{
		bootcampRepo: bootcampRepo,
		courseRepo:   courseRepo,
		timeout:      timeout,
		async:        async,
	}
}

// Recalculate aggregates the bootcamp's tuition and writes the result in a
// single update. A bootcamp without courses has its average cost removed and
// a nil cost is returned.
func (u *AverageCostUpdater) Recalculate(ctx context.Context, bootcampID primitive.ObjectID) (*int, error) {
	avg, found, err := u.courseRepo.AverageTuition(ctx, bootcampID)
	if err != nil {
		return nil, fmt.Errorf("error calculating average cost: %w", err)
	}

	var cost *int
	if found {
		c := int(math.Ceil(avg))
		cost = &c
	}

	if err := u.bootcampRepo.SetAverageCost(ctx, bootcampID, cost); err != nil {
		return nil, fmt.Errorf("error storing average cost: %w", err)
	}
	return cost, nil
}

// Trigger recalculates every distinct bootcamp in ids. It runs on a context
// detached from ctx's cancellation, so a finished or aborted request cannot
// interrupt it, and it never reports failures to the caller.
func (u *AverageCostUpdater) Trigger(ctx context.Context, ids ...primitive.ObjectID) {
	detached := context.WithoutCancel(ctx)

	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		if id.IsZero() {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		if !u.async || !u.track() {
			u.run(detached, id)
			continue
		}
		go func(id primitive.ObjectID) {
			defer u.wg.Done()
			u.run(detached, id)
		}(id)
	}
}

// Wait blocks until every scheduled recalculation has finished
func (u *AverageCostUpdater) Wait() {
	u.wg.Wait()
}

// Close stops scheduling background recalculations and waits for the pending
// ones. Triggers arriving after Close run on the caller's goroutine.
func (u *AverageCostUpdater) Close() {
	u.mu.Lock()
	u.closed = true
	u.mu.Unlock()
	u.wg.Wait()
}

// track registers one background run unless the updater is closed
func (u *AverageCostUpdater) track() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.closed {
		return false
	}
	u.wg.Add(1)
	return true
}

func (u *AverageCostUpdater) run(ctx context.Context, bootcampID primitive.ObjectID) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	lgr := logger.FromContext(ctx)
	cost, err := u.Recalculate(ctx, bootcampID)
	if err != nil {
		metrics.ObserveAverageCost(metrics.ResultFailed)
		if errors.Is(err, repositories.ErrNotFound) {
			lgr.Warn().Str("bootcampId", bootcampID.Hex()).Msg("Bootcamp removed before average cost could be stored")
			return
		}
		lgr.Error().Err(err).Str("bootcampId", bootcampID.Hex()).Msg("Failed to recalculate average cost")
		return
	}

	if cost == nil {
		metrics.ObserveAverageCost(metrics.ResultCleared)
		lgr.Debug().Str("bootcampId", bootcampID.Hex()).Msg("Average cost cleared")
		return
	}
	metrics.ObserveAverageCost(metrics.ResultUpdated)
	lgr.Debug().Str("bootcampId", bootcampID.Hex()).Int("averageCost", *cost).Msg("Average cost updated")
}
