package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("WEB3FORMS_KEY", "")
		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "https://api.web3forms.com/submit", cfg.Web3FormsURL)
		assert.Equal(t, "fr", cfg.DefaultLanguage)
		assert.Equal(t, 5*time.Second, cfg.SuccessDisplay())
		assert.Equal(t, time.Duration(0), cfg.RelayTimeout)
		assert.Equal(t, 60, cfg.RateLimitWindowSeconds)
		assert.Equal(t, 5, cfg.RateLimitContactThreshold)
		assert.False(t, cfg.RelayConfigured())
	})

	t.Run("Overrides from the environment", func(t *testing.T) {
		t.Setenv("SITE_URL", "https://tracefield.fr/")
		t.Setenv("WEB3FORMS_KEY", "abc-123")
		t.Setenv("DEFAULT_LANGUAGE", " EN ")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://tracefield.fr,https://www.tracefield.fr")
		t.Setenv("RELAY_TIMEOUT", "3s")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "https://tracefield.fr", cfg.SiteURL)
		assert.True(t, cfg.SecureCookies())
		assert.True(t, cfg.RelayConfigured())
		assert.Equal(t, "en", cfg.DefaultLanguage)
		assert.Equal(t, []string{"https://tracefield.fr", "https://www.tracefield.fr"}, cfg.CORSAllowedOrigins)
		assert.Equal(t, 3*time.Second, cfg.RelayTimeout)
	})

	t.Run("Rejects a negative display duration", func(t *testing.T) {
		t.Setenv("SUCCESS_DISPLAY_SECONDS", "-1")
		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("Rejects a malformed integer", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_WINDOW_SECONDS", "soon")
		_, err := LoadConfig()
		assert.Error(t, err)
	})
}
