package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "jwt")
		t.Setenv("QR_SECRET", "")
		t.Setenv("QR_TTL", "")
		t.Setenv("TZ_NAME", "")
		t.Setenv("PORT", "")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "3000", cfg.Port)
		assert.Equal(t, []byte("jwt"), cfg.QRSecret)
		assert.Equal(t, 5*time.Minute, cfg.QRTTL)
		assert.Equal(t, "Asia/Seoul", cfg.Location.String())
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "jwt")
		t.Setenv("QR_SECRET", "qr")
		t.Setenv("QR_TTL", "90s")
		t.Setenv("TZ_NAME", "UTC")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, []byte("qr"), cfg.QRSecret)
		assert.Equal(t, 90*time.Second, cfg.QRTTL)
		assert.Equal(t, time.UTC, cfg.Location)
	})

	t.Run("qr secret needs no jwt secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		t.Setenv("QR_SECRET", "qr")
		t.Setenv("QR_TTL", "")
		t.Setenv("TZ_NAME", "")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Empty(t, cfg.JWTSecret)
		assert.Equal(t, []byte("qr"), cfg.QRSecret)
	})

	t.Run("bad qr ttl", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "jwt")
		t.Setenv("QR_TTL", "soon")
		_, err := LoadConfig()
		assert.Error(t, err)
	})
}

func TestRunners_RequireKafkaBroker(t *testing.T) {
	assert.ErrorIs(t, RunWorker(Config{}), errKafkaBrokerRequired)
	assert.ErrorIs(t, RunConsumer(Config{}), errKafkaBrokerRequired)
}
