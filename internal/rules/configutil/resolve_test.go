package configutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Max     int      `koanf:"max"`
	Enabled bool     `koanf:"enabled"`
	Format  string   `koanf:"format"`
	Allowed []string `koanf:"allowed"`
}

func defaults() testConfig {
	return testConfig{Max: 3, Enabled: true, Format: "^[a-z]+$", Allowed: []string{"XML"}}
}

func TestResolve_EmptyOpts(t *testing.T) {
	t.Parallel()
	got, err := Resolve(nil, defaults())
	require.NoError(t, err)
	assert.Equal(t, defaults(), got)
}

func TestResolve_KeepsUnsetDefaults(t *testing.T) {
	t.Parallel()
	got, err := Resolve(map[string]any{"max": 5}, defaults())
	require.NoError(t, err)
	assert.Equal(t, 5, got.Max)
	assert.True(t, got.Enabled)
	assert.Equal(t, "^[a-z]+$", got.Format)
	assert.Equal(t, []string{"XML"}, got.Allowed)
}

func TestResolve_ExplicitFalseWins(t *testing.T) {
	t.Parallel()
	got, err := Resolve(map[string]any{"enabled": false}, defaults())
	require.NoError(t, err)
	assert.False(t, got.Enabled)
}

func TestResolve_SlicesReplace(t *testing.T) {
	t.Parallel()
	got, err := Resolve(map[string]any{"allowed": []any{"IO", "URL"}}, defaults())
	require.NoError(t, err)
	assert.Equal(t, []string{"IO", "URL"}, got.Allowed)

	got, err = Resolve(map[string]any{"allowed": "IO,URL"}, defaults())
	require.NoError(t, err)
	assert.Equal(t, []string{"IO", "URL"}, got.Allowed)
}

func TestResolve_WeakTyping(t *testing.T) {
	t.Parallel()
	got, err := Resolve(map[string]any{"max": "7"}, defaults())
	require.NoError(t, err)
	assert.Equal(t, 7, got.Max)
}

func TestResolve_Errors(t *testing.T) {
	t.Parallel()
	_, err := Resolve(map[string]any{"max": "many"}, defaults())
	require.Error(t, err)

	_, err = Resolve(map[string]any{"maximum": 1}, defaults())
	require.Error(t, err, "unknown keys are rejected")
}

func TestCoerce(t *testing.T) {
	t.Parallel()
	cfg := testConfig{Max: 9}
	assert.Equal(t, cfg, Coerce(cfg, defaults()))
	assert.Equal(t, cfg, Coerce(&cfg, defaults()))
	assert.Equal(t, defaults(), Coerce((*testConfig)(nil), defaults()))
	assert.Equal(t, defaults(), Coerce(42, defaults()))
	assert.Equal(t, defaults(), Coerce(map[string]any{"max": "many"}, defaults()))
	assert.Equal(t, 1, Coerce(map[string]any{"max": 1}, defaults()).Max)
}

func TestValidate(t *testing.T) {
	t.Parallel()
	_, err := Validate(42, defaults())
	require.Error(t, err)

	got, err := Validate(nil, defaults())
	require.NoError(t, err)
	assert.Equal(t, defaults(), got)
}
