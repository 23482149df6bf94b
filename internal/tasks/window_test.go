package tasks

import (
	"testing"
	"time"

	"github.com/gigwise/eventops/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAge(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"1 HOUR", time.Hour},
		{"3 DAY", 72 * time.Hour},
		{"3 DAYS", 72 * time.Hour},
		{"2 WEEK", 14 * 24 * time.Hour},
		{"1 MONTH", 30 * 24 * time.Hour},
		{"1 YEAR", 365 * 24 * time.Hour},
		{"  14 day  ", 14 * 24 * time.Hour},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseAge(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseAge_Malformed(t *testing.T) {
	for _, in := range []string{"", "DAY", "3", "three DAY", "-1 DAY", "3 FORTNIGHT"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseAge(in)
			assert.Error(t, err)
		})
	}
}

func TestBuildWindow_CutoffConditions(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for _, runWhen := range []models.RunWhen{
		models.RunWhenEventCreated,
		models.RunWhenAfterApproval,
		models.RunWhenAfterEvent,
	} {
		t.Run(string(runWhen), func(t *testing.T) {
			w, err := BuildWindow(runWhen, "3 DAY", now)
			require.NoError(t, err)
			assert.Equal(t, now.Add(-72*time.Hour), w.Cutoff)
			assert.True(t, w.From.IsZero())
			assert.True(t, w.To.IsZero())
		})
	}
}

func TestBuildWindow_BeforeEvent(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	w, err := BuildWindow(models.RunWhenBeforeEvent, "14 DAY", now)
	require.NoError(t, err)
	assert.Equal(t, now, w.From)
	assert.Equal(t, now.Add(14*24*time.Hour), w.To)
	assert.True(t, w.Cutoff.IsZero())
}

func TestBuildWindow_UnknownRunWhen(t *testing.T) {
	_, err := BuildWindow("on_full_moon", "1 DAY", time.Now())
	assert.Error(t, err)
}
