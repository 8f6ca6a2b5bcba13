package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripplanner/internal/domain"
)

func TestCarousel_NextWrapsAround(t *testing.T) {
	c := domain.NewCarousel([]string{"a.jpg", "b.jpg", "c.jpg"})
	require.Equal(t, 0, c.Index())

	_, err := c.Next()
	require.NoError(t, err)
	idx, err := c.Next()
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	idx, err = c.Next()
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	cur, err := c.Current()
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", cur)
}

func TestCarousel_PrevWrapsToLast(t *testing.T) {
	c := domain.NewCarousel([]string{"a.jpg", "b.jpg", "c.jpg"})

	idx, err := c.Prev()

	require.NoError(t, err)
	assert.Equal(t, 2, idx)
}

// TestCarousel_NextCycleIsIdentity checks that len calls to Next return to
// the starting index, from every starting index, for several lengths.
func TestCarousel_NextCycleIsIdentity(t *testing.T) {
	for n := 1; n <= 7; n++ {
		images := make([]string, n)
		for start := 0; start < n; start++ {
			c := domain.NewCarousel(images)
			for i := 0; i < start; i++ {
				_, _ = c.Next()
			}
			require.Equal(t, start, c.Index())

			for i := 0; i < n; i++ {
				_, err := c.Next()
				require.NoError(t, err)
			}
			assert.Equal(t, start, c.Index(), "len=%d start=%d", n, start)
		}
	}
}

func TestCarousel_PrevInvertsNext(t *testing.T) {
	for n := 1; n <= 7; n++ {
		c := domain.NewCarousel(make([]string, n))
		for i := 0; i < n; i++ {
			before := c.Index()
			_, err := c.Next()
			require.NoError(t, err)
			_, err = c.Prev()
			require.NoError(t, err)
			assert.Equal(t, before, c.Index())
			_, _ = c.Next()
		}
	}
}

func TestCarousel_Empty(t *testing.T) {
	c := domain.NewCarousel(nil)

	assert.True(t, c.Empty())

	_, err := c.Next()
	assert.ErrorIs(t, err, domain.ErrNoImages)
	_, err = c.Prev()
	assert.ErrorIs(t, err, domain.ErrNoImages)
	_, err = c.Current()
	assert.ErrorIs(t, err, domain.ErrNoImages)
	assert.Equal(t, 0, c.Index())
}

func TestNewCarousel_CopiesInput(t *testing.T) {
	images := []string{"a.jpg", "b.jpg"}
	c := domain.NewCarousel(images)

	images[0] = "changed.jpg"

	cur, err := c.Current()
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", cur)
}
