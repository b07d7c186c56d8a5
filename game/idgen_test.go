package game

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdgen_GeneratesUniqueCodes(t *testing.T) {
	t.Parallel()

	idgen := NewIdgen()
	codePattern := regexp.MustCompile(`^[A-Z0-9]{6}$`)

	seen := map[string]struct{}{}
	for i := 0; i < 1000; i++ {
		id := idgen.Generate()
		assert.Regexp(t, codePattern, id)

		_, dup := seen[id]
		assert.False(t, dup, "duplicate code %s", id)
		seen[id] = struct{}{}
	}
}

func TestIdgen_DisposeReleasesCode(t *testing.T) {
	t.Parallel()

	idgen := NewIdgen()
	id := idgen.Generate()
	assert.Len(t, idgen.ids, 1)

	idgen.Dispose(id)
	assert.Empty(t, idgen.ids)

	// Disposing an unknown code is a no-op.
	idgen.Dispose("NOSUCH")
	assert.Empty(t, idgen.ids)
}
