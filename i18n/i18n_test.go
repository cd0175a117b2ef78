package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLangDefaultsToEnglish(t *testing.T) {
	var tr I18n
	require.NoError(t, tr.SetLang("", ""))

	assert.Equal(t, "en-US", tr.Lang().String())
	assert.Equal(t, "Number is too high!", tr.GetString("game.too_high"))
	assert.Equal(t, "Number is too low!", tr.GetString("game.too_low"))
	assert.Equal(t, "You won!", tr.GetString("game.won"))
}

func TestSetLangMatchesSupportedLanguage(t *testing.T) {
	cases := map[string]string{
		"zh-CN": "zh-CN",
		"zh":    "zh-CN",
		"en":    "en-US",
		"en-GB": "en-US",
		"fr-FR": "en-US",
	}
	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			var tr I18n
			require.NoError(t, tr.SetLang(in, ""))
			assert.Equal(t, want, tr.Lang().String())
		})
	}
}

func TestSetLangChinese(t *testing.T) {
	var tr I18n
	require.NoError(t, tr.SetLang("zh-CN", ""))
	assert.Equal(t, "你赢了！", tr.GetString("game.won"))
}

func TestSetLangRejectsMalformedTag(t *testing.T) {
	var tr I18n
	require.Error(t, tr.SetLang("not a tag!", ""))
}

func TestEmbeddedBundlesShareKeys(t *testing.T) {
	var en, zh I18n
	require.NoError(t, en.SetLang("en-US", ""))
	require.NoError(t, zh.SetLang("zh-CN", ""))

	for _, key := range []string{"game.secret", "game.too_high", "game.too_low", "game.won", "game.invalid"} {
		assert.True(t, en.IsSet(key), "en-US missing %s", key)
		assert.True(t, zh.IsSet(key), "zh-CN missing %s", key)
	}
}

func TestLookupUnknownKey(t *testing.T) {
	var tr I18n
	require.NoError(t, tr.SetLang("en-US", ""))

	_, err := tr.Lookup("game.nope")
	require.ErrorIs(t, err, ErrUnknownKey)
	assert.Equal(t, "game.nope", tr.GetString("game.nope"))
}

func TestSetLangFromDirectory(t *testing.T) {
	dir := t.TempDir()
	content := "game:\n  won: \"Bravo!\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en-US.yaml"), []byte(content), 0o644))

	var tr I18n
	require.NoError(t, tr.SetLang("en-US", dir))
	assert.Equal(t, "Bravo!", tr.GetString("game.won"))

	var missing I18n
	require.Error(t, missing.SetLang("zh-CN", dir))
}
