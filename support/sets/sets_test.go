package sets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	s := Make[int](10)
	assert.Len(t, s, 0)

	s.Insert(3, 7)
	assert.Len(t, s, 2)
	assert.True(t, s.Has(3))
	assert.True(t, s.Has(7))
	assert.False(t, s.Has(5))

	s2 := MakeWith(5, 7)
	assert.Len(t, s2, 2)
	assert.True(t, s2.Has(5))
}

func TestIntersect(t *testing.T) {
	a := MakeWith(1000, 2000, 5000)
	b := MakeWith(2000, 5000, 10000)
	common := a.Intersect(b)
	assert.Equal(t, []int{2000, 5000}, Sorted(common))

	empty := a.Intersect(MakeWith(7))
	assert.Empty(t, Sorted(empty))
}

func TestSorted(t *testing.T) {
	s := MakeWith("b", "a", "c")
	assert.Equal(t, []string{"a", "b", "c"}, Sorted(s))
}
