//go:build integration

package integration

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/zoo-service/internal/adapters/roster"
	"github.com/jsamuelsen/zoo-service/internal/platform/config"
)

// repoConfigDir points at the checked-in configs/ directory.
var repoConfigDir = filepath.Join("..", "..", "configs")

func TestConfig_RepoProfilesValidate(t *testing.T) {
	tests := []struct {
		profile    string
		wantFormat string
		wantFile   bool
		wantOTel   bool
	}{
		{profile: "local", wantFormat: "pretty"},
		{profile: "prod", wantFormat: "json", wantFile: true, wantOTel: true},
	}

	for _, tt := range tests {
		t.Run(tt.profile, func(t *testing.T) {
			cfg, err := config.LoadFrom(repoConfigDir, tt.profile)
			require.NoError(t, err)
			require.NoError(t, cfg.Validate())

			assert.Equal(t, tt.wantFormat, cfg.Log.Format)
			assert.Equal(t, tt.wantFile, cfg.Log.File.Enabled)
			assert.Equal(t, tt.wantOTel, cfg.Telemetry.Enabled)
			assert.Equal(t, "City Zoo", cfg.Zoo.Name)
		})
	}
}

func TestConfig_EnvOverridesProfile(t *testing.T) {
	t.Setenv("APP_ZOO_NAME", "Harbour Zoo")
	t.Setenv("APP_LOG_LEVEL", "warn")

	cfg, err := config.LoadFrom(repoConfigDir, "local")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "Harbour Zoo", cfg.Zoo.Name)
	assert.Equal(t, "warn", cfg.Log.Level)
}

// TestRoster_SeedsFromRepoRoster loads configs/roster.yaml the way zood does
// and checks the resulting zoo through the HTTP stack.
func TestRoster_SeedsFromRepoRoster(t *testing.T) {
	s, err := newStack("City Zoo")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	source := roster.NewFileSource(filepath.Join(repoConfigDir, "roster.yaml"))

	require.NoError(t, source.Check(ctx))

	result, err := s.service.Seed(ctx, source)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Enclosures)
	assert.Equal(t, 5, result.Animals)
	assert.Equal(t, 3, result.Staff)

	stats := s.service.Stats()
	assert.Equal(t, 1, stats.UnderTreatment)
	assert.Equal(t, 2, stats.ActiveHealthIssues)

	assert.Equal(t, []string{
		"Alice fed Leo the Lion.",
		"Alice fed Nala the Lion.",
		"Alice fed Stripes the Zebra.",
		"Alice fed Polly the Parrot.",
		"Alice cleaned Savanna.",
		"Alice cleaned Aviary.",
		"Bob cleaned Reptile House.",
	}, s.service.DailyRoutine(ctx))
}
