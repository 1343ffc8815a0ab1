package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/navigation"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTP.Host)
	assert.Equal(t, "587", cfg.SMTP.Port)
	assert.Equal(t, time.Second, cfg.Navigation.Cooldown)
	assert.Equal(t, 50.0, cfg.Navigation.WheelThreshold)
	assert.Equal(t, 5*time.Second, cfg.StatusTTL)
	assert.Equal(t, navigation.ModePaged, cfg.NavMode())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "4000")
	t.Setenv("PORTFOLIO_NAV_MODE", "continuous")
	t.Setenv("PORTFOLIO_NAV_COOLDOWN", "750ms")
	t.Setenv("SMTP_USER", "me@example.com")
	t.Setenv("SMTP_PASS", "app-password")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, navigation.ModeContinuous, cfg.NavMode())
	assert.Equal(t, 750*time.Millisecond, cfg.Navigation.Cooldown)
	assert.True(t, cfg.SMTP.Configured())
	assert.Equal(t, "me@example.com", cfg.SMTP.Inbox())
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"PORTFOLIO_NAV_MODE":        "observer",
		"PORTFOLIO_NAV_COOLDOWN":    "0s",
		"PORTFOLIO_WHEEL_THRESHOLD": "-5",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
