package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_JWTTTL(t *testing.T) {
	t.Setenv("JWT_TTL_HOURS", "6")

	cfg := Load()
	require.Equal(t, 6*time.Hour, cfg.JWTTTL)
}

func TestLoad_JWTTTL_DefaultsOnBadValue(t *testing.T) {
	for _, value := range []string{"", "soon", "0", "-3"} {
		t.Setenv("JWT_TTL_HOURS", value)

		cfg := Load()
		require.Equal(t, 24*time.Hour, cfg.JWTTTL, "JWT_TTL_HOURS=%q", value)
	}
}
