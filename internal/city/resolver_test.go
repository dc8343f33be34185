package city

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := NewResolver(zerolog.Nop())
	require.NoError(t, err)
	return r
}

func TestResolveKnownCityAnyCasing(t *testing.T) {
	r := newTestResolver(t)

	for _, input := range []string{"Москва", "москва", "МОСКВА", "moscow", "Moscow"} {
		got, err := r.Resolve(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, "moskva", got.Slug, "input %q", input)
	}
}

func TestResolveTransliteratesUnknownCyrillic(t *testing.T) {
	r := newTestResolver(t)

	got, err := r.Resolve("Звенигород")
	require.NoError(t, err)
	assert.Equal(t, "zvenigorod", got.Slug)
}

// Cyrillic "х" must come out as "kh", never a bare "h": the provider spells
// such cities with "kh" in its slugs.
func TestResolveKhRule(t *testing.T) {
	r := newTestResolver(t)

	for input, want := range map[string]string{
		"Хотьково":    "khotkovo",
		"Верхоянск":   "verkhoyansk",
		"Южно-Сухумск": "yuzhno-sukhumsk",
	} {
		got, err := r.Resolve(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got.Slug, "input %q", input)
		assert.NotContains(t, strings.ReplaceAll(got.Slug, "kh", ""), "h", "input %q leaked a bare h", input)
	}
}

func TestResolveLatinPassthrough(t *testing.T) {
	r := newTestResolver(t)

	got, err := r.Resolve("reykjavik")
	require.NoError(t, err)
	assert.Equal(t, "reykjavik", got.Slug)
}

func TestResolveMultiWordSlug(t *testing.T) {
	r := newTestResolver(t)

	got, err := r.Resolve("нижний новгород")
	require.NoError(t, err)
	assert.Equal(t, "nizhny-novgorod", got.Slug)
}

func TestResolveUnresolvable(t *testing.T) {
	r := newTestResolver(t)

	for _, input := range []string{"", "   ", "!!!", "123"} {
		_, err := r.Resolve(input)
		assert.ErrorIs(t, err, ErrUnresolvable, "input %q", input)
	}
}
