package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cofre/internal/server/config"
)

func testConfig() *config.Config {
	return &config.Config{SecretHim: "alpha", SecretHer: "beta"}
}

func TestResolve_DistinctIdentities(t *testing.T) {
	cfg := testConfig()

	a, ok := Resolve("alpha", cfg)
	require.True(t, ok)
	b, ok := Resolve("beta", cfg)
	require.True(t, ok)

	assert.Equal(t, "Ele", a.Name)
	assert.Equal(t, "Ela", b.Name)
	assert.NotEqual(t, a.Name, b.Name)
	assert.NotEqual(t, a.OwnColor, b.OwnColor)
	assert.Equal(t, "Ela", a.Counterpart)
	assert.Equal(t, "Ele", b.Counterpart)
}

func TestResolve_Colors(t *testing.T) {
	cfg := testConfig()

	a, _ := Resolve("alpha", cfg)
	assert.Equal(t, "#005c4b", a.OwnColor)
	assert.Equal(t, "#202c33", a.OtherColor)

	b, _ := Resolve("beta", cfg)
	assert.Equal(t, "#c2185b", b.OwnColor)
	assert.Equal(t, "#202c33", b.OtherColor)
}

func TestResolve_UnknownSecret(t *testing.T) {
	cfg := testConfig()

	for _, secret := range []string{"", "gamma", "ALPHA", "alpha "} {
		_, ok := Resolve(secret, cfg)
		assert.False(t, ok, "secret %q must not resolve", secret)
	}
}

func TestResolve_EmptyConfiguredSecretNeverMatches(t *testing.T) {
	cfg := &config.Config{SecretHim: "", SecretHer: "beta"}

	_, ok := Resolve("", cfg)
	assert.False(t, ok)
}
