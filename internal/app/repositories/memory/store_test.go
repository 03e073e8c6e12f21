package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/hogwarts/school/internal/app/models"
	"github.com/hogwarts/school/internal/app/repositories"
	"github.com/hogwarts/school/internal/app/repositories/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreContract(t *testing.T) {
	repotest.Run(t, func(t *testing.T) *repositories.Repositories {
		return NewRepositories()
	})
}

func TestStore_ReturnedValuesAreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	f, err := s.Faculties().Save(ctx, &models.Faculty{Name: "Gryffindor", Color: "red"})
	require.NoError(t, err)
	f.Color = "scarlet"

	found, err := s.Faculties().FindByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "red", found.Color)
}

func TestStore_ConcurrentSavesGetDistinctIDs(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	const n = 50
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st, err := s.Students().Save(ctx, &models.Student{Name: "Weasley", Age: 12})
			if assert.NoError(t, err) {
				ids <- st.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStore().Students().FindAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
