package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStaffSeeds(t *testing.T) {
	seeds, err := ParseStaffSeeds(" planner:Planner@Demo.com:planner123:Event Planner ; ADMIN:admin@demo.com:admin:123:Administrator")
	require.NoError(t, err)
	require.Len(t, seeds, 2)

	assert.Equal(t, StaffSeed{Role: "PLANNER", Email: "planner@demo.com", Password: "planner123", Name: "Event Planner"}, seeds[0])
	assert.Equal(t, "ADMIN", seeds[1].Role)
	assert.Equal(t, "admin", seeds[1].Password)
	assert.Equal(t, "123:Administrator", seeds[1].Name)
}

func TestParseStaffSeedsRejectsMalformedEntries(t *testing.T) {
	_, err := ParseStaffSeeds("PLANNER:planner@demo.com")
	assert.Error(t, err)

	_, err = ParseStaffSeeds("PLANNER::secret:Name")
	assert.Error(t, err)
}

func TestParseStaffSeedsEmpty(t *testing.T) {
	seeds, err := ParseStaffSeeds("")
	require.NoError(t, err)
	assert.Empty(t, seeds)
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("LIFECYCLE_POLICY", "STRICT")
	t.Setenv("DASHBOARD_CACHE_TTL", "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, LifecycleStrict, cfg.Lifecycle.Policy)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, 10, cfg.Dashboard.RecentLimit)
	assert.Equal(t, "5m0s", cfg.Dashboard.CacheTTL.String())
	assert.True(t, cfg.Identity.FallbackEnabled)
	assert.False(t, cfg.Push.Enabled())
	assert.Len(t, cfg.Seed, 2)
}
