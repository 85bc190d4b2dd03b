package ids

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNext(t *testing.T) {
	g := New()

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := g.Next()
		assert.Len(t, id, 10)
		for _, r := range id {
			assert.True(t, strings.ContainsRune(alphabet, r), "unexpected character %q in id %s", r, id)
		}
		seen[id] = true
	}

	// not guaranteed unique, but 100 collisions would mean a broken generator
	assert.Greater(t, len(seen), 1)
}
