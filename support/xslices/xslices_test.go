package xslices

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	assert.Equal(t, []int{1, 4, 9}, Map([]int{1, 2, 3}, func(e int) int { return e * e }))
	assert.Equal(t, []string{}, Map([]int{}, func(e int) string { return "" }))
}

func TestIota(t *testing.T) {
	assert.Equal(t, []int{3, 4, 5}, Iota(3, 3))
	assert.Empty(t, Iota(0.0, 0))
}

func TestSortedKeys(t *testing.T) {
	m := map[string]int{"b": 1, "a": 2, "c": 3}
	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(m))
}

func TestKeep(t *testing.T) {
	even := Keep([]int{1, 2, 3, 4}, func(e int) bool { return e%2 == 0 })
	assert.Equal(t, []int{2, 4}, even)
}

func TestLast(t *testing.T) {
	assert.Equal(t, 3, Last([]int{1, 2, 3}))
}
