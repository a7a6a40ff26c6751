package views

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "", truncate("anything", 0))
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "long…", truncate("longer text", 5))
}

func TestTruncateMultibyte(t *testing.T) {
	// Card names are emoji-prefixed; cutting mid-rune would emit
	// invalid UTF-8.
	s := "🍣 Blue Ribbon Sushi"
	for max := 1; max < len(s); max++ {
		out := truncate(s, max)
		assert.True(t, utf8.ValidString(out), "max %d", max)
		assert.LessOrEqual(t, len([]rune(out)), max, "max %d", max)
	}
}
