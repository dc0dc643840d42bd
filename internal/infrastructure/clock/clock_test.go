package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixed(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	c := NewFixed(time.Date(2025, 3, 10, 6, 0, 0, 0, loc))

	assert.Equal(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), c.Now())

	c.Advance(48 * time.Hour)
	assert.Equal(t, time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC), c.Now())
}

func TestSystem(t *testing.T) {
	assert.Equal(t, time.UTC, System{}.Now().Location())
}
