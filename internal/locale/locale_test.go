package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPhraseTablesComplete proves every key has a translation in every
// supported language, so a missing phrase fails here instead of rendering an
// empty label in a reply.
func TestPhraseTablesComplete(t *testing.T) {
	for _, lang := range []Lang{RU, EN} {
		for _, key := range Keys {
			require.NotEmpty(t, T(lang, key), "missing phrase for lang=%s key=%d", lang, key)
		}
	}
}

func TestParse(t *testing.T) {
	assert.Equal(t, RU, Parse("ru"))
	assert.Equal(t, EN, Parse("en"))
	assert.Equal(t, EN, Parse("de"))
	assert.Equal(t, EN, Parse(""))
}

func TestUnsupportedLangFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, T(EN, NoWind), T(Lang("fr"), NoWind))
}
