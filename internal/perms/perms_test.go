package perms

import (
	"testing"

	"github.com/gigwise/eventops/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCapabilities_KnownLevel(t *testing.T) {
	caps, ok := GetCapabilities("event_edit")
	require.True(t, ok)
	assert.True(t, caps["read_events"])
	assert.True(t, caps["manage_events"])
	assert.False(t, caps["delete_events"])
}

func TestGetCapabilities_UnknownLevelDenies(t *testing.T) {
	for _, level := range []string{"", "event_admin", "superuser", "event", "drop table"} {
		t.Run(level, func(t *testing.T) {
			caps, ok := GetCapabilities(level)
			assert.False(t, ok)
			assert.Nil(t, caps)
		})
	}
}

func TestGetCapabilities_EveryLevelOnlyGrantsModuleCaps(t *testing.T) {
	// Every capability a level grants must belong to that level's module,
	// otherwise a later "<module>_none" could not fully revoke it.
	for level := range levelCaps {
		module, ok := levelModule[level]
		require.True(t, ok, "level %q maps to no module", level)

		allowed := map[string]bool{}
		for _, c := range moduleCaps[module] {
			allowed[c] = true
		}

		caps, ok := GetCapabilities(level)
		require.True(t, ok)
		for c := range caps {
			assert.True(t, allowed[c], "level %q grants %q outside module %q", level, c, module)
		}
	}
}

func TestApplyLevel_NoneRevokesWholeModule(t *testing.T) {
	set := models.CapabilitySet{}
	require.True(t, ApplyLevel(set, "event_edit"))
	require.True(t, set["manage_events"])

	require.True(t, ApplyLevel(set, "event_none"))
	for _, c := range moduleCaps["event"] {
		assert.False(t, set[c], "capability %q survived event_none", c)
	}
}

func TestApplyLevel_LeavesOtherModulesAlone(t *testing.T) {
	set := models.CapabilitySet{}
	require.True(t, ApplyLevel(set, "venue_edit"))
	require.True(t, ApplyLevel(set, "event_edit"))

	require.True(t, ApplyLevel(set, "event_none"))
	assert.True(t, set["edit_venues"])
}

func TestApplyLevel_UnknownLevel(t *testing.T) {
	set := models.CapabilitySet{"read_events": true}
	assert.False(t, ApplyLevel(set, "event_everything"))
	assert.True(t, set["read_events"], "unknown level must not mutate the set")
}

func TestEmployeeCan_Grants(t *testing.T) {
	user := &models.User{Capabilities: models.CapabilitySet{"read_events_all": true}}

	assert.True(t, EmployeeCan("read_events", user))
	assert.True(t, EmployeeCan("read_events_all", user))
	assert.False(t, EmployeeCan("manage_events", user))
}

func TestEmployeeCan_EditEvents(t *testing.T) {
	editor := &models.User{Capabilities: models.CapabilitySet{"edit_events": true}}
	manager := &models.User{Capabilities: models.CapabilitySet{"manage_events": true}}
	reader := &models.User{Capabilities: models.CapabilitySet{"read_events": true}}

	assert.True(t, EmployeeCan("edit_events", editor))
	assert.True(t, EmployeeCan("edit_events", manager))
	assert.False(t, EmployeeCan("edit_events", reader))
}

func TestEmployeeCan_AdminBypass(t *testing.T) {
	admin := &models.User{Capabilities: models.CapabilitySet{ManageCap: true}}

	for action := range actionCaps {
		assert.True(t, EmployeeCan(action, admin), "admin denied %q", action)
	}
}

func TestEmployeeCan_FailsClosed(t *testing.T) {
	user := &models.User{Capabilities: models.CapabilitySet{"read_events": true}}

	assert.False(t, EmployeeCan("unknown_action", user))
	assert.False(t, EmployeeCan("", user))
	assert.False(t, EmployeeCan("read_events", nil))
	assert.False(t, EmployeeCan("read_events", &models.User{}))
}
