package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadConfigFromEnvironment(t *testing.T) {
	t.Setenv("LISTEN_ADDRESS", ":9090")
	t.Setenv("DEFAULT_LANGUAGE", "kn")
	t.Setenv("AUTOSAVE_DELAY_MS", "250")
	t.Setenv("METRICS", "true")

	cfg := ReadConfig()

	assert.Equal(t, ":9090", cfg.ListenAddress)
	assert.Equal(t, "kn", cfg.DefaultLanguage)
	assert.Equal(t, 250, cfg.AutosaveDelayMS)
	assert.True(t, cfg.MetricsEnable)
	assert.Equal(t, defaultTransliterationURL, cfg.TransliterationURL.String())
}

func TestReadConfigClampsDelays(t *testing.T) {
	t.Setenv("AUTOSAVE_DELAY_MS", "999999")
	t.Setenv("SUGGEST_DELAY_MS", "-5")

	cfg := ReadConfig()

	assert.Equal(t, 1000, cfg.AutosaveDelayMS)
	assert.Equal(t, 200, cfg.SuggestDelayMS)
}

func TestReadConfigRejectsUnknownLanguage(t *testing.T) {
	t.Setenv("DEFAULT_LANGUAGE", "xx")

	cfg := ReadConfig()

	assert.Equal(t, "en", cfg.DefaultLanguage)
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "s****t", maskSecret("APIToken", "secret"))
	assert.Equal(t, "p******d", maskSecret("DBPassword", "password"))
	assert.Equal(t, "**", maskSecret("Password", "ab"))
	assert.Equal(t, "plain value", maskSecret("ListenAddress", "plain value"))
}
