package slugger

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestGenerate(t *testing.T) {
	t.Run("produces a URL-safe slug", func(t *testing.T) {
		s := Generate("Hello, World! Wie geht's?")
		assert.True(t, slugPattern.MatchString(s), "slug %q contains unsafe characters", s)
	})

	t.Run("starts with the slugified title", func(t *testing.T) {
		s := Generate("How to train your dragon")
		assert.True(t, strings.HasPrefix(s, "how-to-train-your-dragon-"), "got %q", s)
	})

	t.Run("identical titles get distinct slugs", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 50; i++ {
			s := Generate("Same Title")
			assert.False(t, seen[s], "slug %q generated twice", s)
			seen[s] = true
		}
	})

	t.Run("suffix stays within six base36 characters", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			s := Generate("abc")
			suffix := s[strings.LastIndex(s, "-")+1:]
			assert.LessOrEqual(t, len(suffix), 6, "suffix %q too long", suffix)
		}
	})
}
