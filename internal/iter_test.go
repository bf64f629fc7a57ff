package internal

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	a := map[string]int{"b": 2, "a": 1}
	b := map[string]int{"c": 3}

	var keys []string
	var sum int
	for k, v := range IterSeq2Concat(SortedSeq2(a), SortedSeq2(b)) {
		keys = append(keys, k)
		sum += v
	}

	assert.Equal([]string{"a", "b", "c"}, keys)
	assert.Equal(6, sum)

	all := maps.Collect(IterSeq2Concat(maps.All(a), maps.All(b)))
	assert.Equal(3, len(all))
}

func TestIterSeq2Concat_EarlyReturn(t *testing.T) {
	assert := assert.New(t)

	a := map[string]int{"a": 1, "b": 2}
	b := map[string]int{"c": 3}

	count := 0
	for range IterSeq2Concat(SortedSeq2(a), SortedSeq2(b)) {
		count++
		if count == 2 {
			break
		}
	}

	assert.Equal(2, count)
}
