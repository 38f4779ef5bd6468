package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/devcamper/internal/app/repositories"
	"github.com/yigit/devcamper/internal/app/repositories/memory"
	"github.com/yigit/devcamper/internal/app/services"
)

func TestCreateDefaultDataIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	svc := services.NewServices(repos, services.Options{})

	require.NoError(t, CreateDefaultData(ctx, svc, zerolog.Nop()))
	require.NoError(t, CreateDefaultData(ctx, svc, zerolog.Nop()))

	bootcamps, err := repos.BootcampRepository.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, bootcamps, len(samples))

	courses, err := repos.CourseRepository.FindAll(ctx, repositories.CourseFilter{})
	require.NoError(t, err)
	assert.Len(t, courses, 4)

	for _, b := range bootcamps {
		require.NotNil(t, b.AverageCost, b.Name)
	}
	byName := map[string]int{}
	for _, b := range bootcamps {
		byName[b.Name] = *b.AverageCost
	}
	assert.Equal(t, 9000, byName["Devworks Bootcamp"])
	assert.Equal(t, 9000, byName["ModernTech Bootcamp"])
}
