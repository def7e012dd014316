package compose

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

const (
	suffix = "\n\n🔗 outlight.fun"
	limit  = 280
)

func TestNormalize_FitsUnchanged(t *testing.T) {
	got := Normalize("MONTY says hi", suffix, limit)
	assert.Equal(t, "MONTY says hi"+suffix, got)
}

func TestNormalize_ExactlyAtBudget(t *testing.T) {
	maxBody := limit - utf8.RuneCountInString(suffix)
	body := strings.Repeat("a", maxBody)

	got := Normalize(body, suffix, limit)
	assert.Equal(t, body+suffix, got)
	assert.Equal(t, limit, utf8.RuneCountInString(got))
}

func TestNormalize_Truncates(t *testing.T) {
	maxBody := limit - utf8.RuneCountInString(suffix)
	body := strings.Repeat("x", 300)

	got := Normalize(body, suffix, limit)

	assert.Equal(t, body[:maxBody-3]+"..."+suffix, got)
	assert.Equal(t, limit, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, suffix))
}

func TestNormalize_CountsRunesNotBytes(t *testing.T) {
	body := strings.Repeat("🚀", 270)

	got := Normalize(body, suffix, limit)

	assert.Equal(t, limit, utf8.RuneCountInString(got))
	assert.True(t, utf8.ValidString(got))
}

func TestNormalize_NeverExceedsLimit(t *testing.T) {
	for _, n := range []int{0, 1, 100, 263, 264, 265, 266, 279, 280, 281, 1000} {
		got := Normalize(strings.Repeat("é", n), suffix, limit)
		assert.LessOrEqual(t, utf8.RuneCountInString(got), limit, "body len %d", n)
		assert.True(t, strings.HasSuffix(got, suffix))
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, body := range []string{"short", strings.Repeat("y", 400)} {
		once := Normalize(body, suffix, limit)
		assert.Equal(t, once, Normalize(once, suffix, limit))
	}
}
