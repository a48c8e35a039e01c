package useragent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPool(t *testing.T) {
	t.Parallel()

	t.Run("prefers the given agents", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{"mine"}, pool([]string{"mine"}, []string{"catalogue"}))
	})

	t.Run("uses the catalogue when no agents are given", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{"catalogue"}, pool(nil, []string{"catalogue"}))
	})

	t.Run("falls back to the built-in list when the catalogue is empty", func(t *testing.T) {
		t.Parallel()

		got := pool(nil, nil)

		assert.Equal(t, Defaults, got)
		assert.Contains(t, Defaults, New(got).UserAgent())
	})
}
