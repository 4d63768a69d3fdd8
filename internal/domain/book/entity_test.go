package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatch_IsEmpty(t *testing.T) {
	assert.True(t, Patch{}.IsEmpty())
	assert.False(t, Patch{Title: ptr("")}.IsEmpty(), "提供了空字符串也算提供了字段")
	assert.False(t, Patch{PublicationYear: ptr(2020)}.IsEmpty())
}

func TestFilter_WithDefaults(t *testing.T) {
	f := Filter{}.WithDefaults()
	assert.Equal(t, DefaultLimit, *f.Limit)
	assert.Equal(t, 0, *f.Offset)

	f = Filter{Limit: ptr(MaxLimit), Offset: ptr(30)}.WithDefaults()
	assert.Equal(t, MaxLimit, *f.Limit)
	assert.Equal(t, 30, *f.Offset)
}
