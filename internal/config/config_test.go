package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PLAN_PROVIDER", "")
	t.Setenv("MAX_YEARS", "")
	t.Setenv("AI_TIMEOUT", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, PlanProviderLocal, cfg.PlanProvider)
	assert.Equal(t, 100, cfg.MaxYears)
	assert.Equal(t, 30*time.Second, cfg.AITimeout)
	assert.Equal(t, cfg.MaxBalanceCap, cfg.BalanceCap())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_RATE", "55.5")
	t.Setenv("PLAN_PROVIDER", "AI")
	t.Setenv("AI_ENDPOINT", "http://llm.local/v1/chat/completions")
	t.Setenv("AI_TIMEOUT", "5s")
	t.Setenv("PLAN_FALLBACK_LOCAL", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 55.5, cfg.MaxRate)
	assert.Equal(t, PlanProviderAI, cfg.PlanProvider)
	assert.Equal(t, 5*time.Second, cfg.AITimeout)
	assert.False(t, cfg.PlanFallbackLocal)
}

func TestLoadConfigRejectsAIWithoutEndpoint(t *testing.T) {
	t.Setenv("PLAN_PROVIDER", "ai")
	t.Setenv("AI_ENDPOINT", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidateUnknownProvider(t *testing.T) {
	cfg := &Config{PlanProvider: "oracle", MaxYears: 10}
	assert.Error(t, cfg.Validate())
}
