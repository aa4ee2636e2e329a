package demo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeed(t *testing.T) {
	svc := NewService()

	items := svc.Feed(15)
	assert.Len(t, items, 15)
	for _, item := range items {
		assert.NotEmpty(t, item.Name)
		assert.GreaterOrEqual(t, item.Amount, float64(minFeedAmount))
		assert.LessOrEqual(t, item.Amount, float64(maxFeedAmount))
	}

	// Zero and negative counts fall back to the default size.
	assert.Len(t, svc.Feed(0), 10)
	assert.Len(t, svc.Feed(-3), 10)
}
