package bloom_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/repodoc/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_AddAndTest(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	// Key not yet added should return false
	assert.False(t, f.Test("acme/widgets@a1b2c3"))

	// Add key
	f.Add("acme/widgets@a1b2c3")

	// Now it should return true
	assert.True(t, f.Test("acme/widgets@a1b2c3"))

	// Different key should still return false
	assert.False(t, f.Test("acme/widgets@d4e5f6"))
}

func TestFilter_Seen(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	// First sighting records the key and reports it as new
	assert.False(t, f.Seen("acme/widgets@a1b2c3"))

	// Second sighting reports it as seen
	assert.True(t, f.Seen("acme/widgets@a1b2c3"))

	// Unrelated key is still new
	assert.False(t, f.Seen("other/project@a1b2c3"))
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	// Empty filter should have count near 0
	assert.Equal(t, uint(0), f.EstimatedCount())

	// Add some keys
	f.Add("acme/widgets@1")
	f.Add("acme/widgets@2")
	f.Add("acme/widgets@3")

	// Estimated count should be approximately 3
	count := f.EstimatedCount()
	assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
}

func TestFilter_AddIsIdempotent(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	key := "acme/widgets@a1b2c3"

	f.Add(key)
	countAfterFirst := f.EstimatedCount()

	// Adding the same key multiple times should not change the filter
	f.Add(key)
	f.Add(key)
	f.Add(key)

	assert.Equal(t, countAfterFirst, f.EstimatedCount())
	assert.True(t, f.Test(key))
}

func TestFilter_ConcurrentUse(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(10000, 0.01)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				f.Seen(fmt.Sprintf("ns/project-%d@%d", i, j))
			}
		}()
	}
	wg.Wait()

	// Every key written during the race must now be visible
	for i := 0; i < 10; i++ {
		for j := 0; j < 100; j++ {
			assert.True(t, f.Test(fmt.Sprintf("ns/project-%d@%d", i, j)))
		}
	}
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)

	// Add 10k keys
	for i := 0; i < numItems; i++ {
		f.Add(fmt.Sprintf("ns/added-%d@hash", i))
	}

	// Test with 10k keys that were NOT added
	falsePositives := 0
	for i := 0; i < testProbes; i++ {
		key := fmt.Sprintf("ns/notadded-%d@hash", i)
		if f.Test(key) {
			falsePositives++
		}
	}

	// False positive rate should be approximately 1%
	// Allow up to 2% to account for statistical variance
	actualRate := float64(falsePositives) / float64(testProbes)
	assert.Less(t, actualRate, 0.02, "false positive rate %f exceeds 2%%", actualRate)
}
