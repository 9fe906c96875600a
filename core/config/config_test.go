package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/crossbus/core/config"
)

type testConfig struct {
	Name  string `env:"CROSSBUS_TEST_NAME" envDefault:"default-name"`
	Count int    `env:"CROSSBUS_TEST_COUNT" envDefault:"42"`
}

type requiredConfig struct {
	Token string `env:"CROSSBUS_TEST_REQUIRED_TOKEN,required"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "default-name", cfg.Name)
	assert.Equal(t, 42, cfg.Count)
}

func TestLoad_Cached(t *testing.T) {
	var first testConfig
	require.NoError(t, config.Load(&first))

	// Changing the environment after the first load must not affect the
	// cached value for the same type.
	t.Setenv("CROSSBUS_TEST_NAME", "changed")

	var second testConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, first, second)
}

func TestLoad_RequiredMissing(t *testing.T) {
	var cfg requiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestLoad_InvalidTarget(t *testing.T) {
	assert.Error(t, config.Load(nil))
	assert.Error(t, config.Load("not a struct"))

	var n int
	assert.Error(t, config.Load(&n))
}

func TestMustLoad_Panics(t *testing.T) {
	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
}
