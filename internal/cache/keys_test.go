package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCacheKey(t *testing.T) {
	key := GenerateCacheKey("quiz", "definition", "01HXYZ")
	assert.Equal(t, "quizdeck:quiz:definition:01HXYZ", key)
}

func TestGenerateCacheKeyWithParams(t *testing.T) {
	key := GenerateCacheKey("quiz", "list", "all", "limit10", "offset20")
	assert.Equal(t, "quizdeck:quiz:list:all:limit10_offset20", key)
}
