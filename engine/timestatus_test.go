package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkoutIn(now time.Time, d time.Duration) *time.Time {
	t := now.Add(d)
	return &t
}

func TestClassifyBoundaries(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		offset   time.Duration
		wantType TimeStatusType
		wantRank int
		wantLbl  string
	}{
		{"far overdue", -2 * time.Hour, TimeStatusCritical, 5, "OVERDUE"},
		{"just past critical boundary", -61 * time.Minute, TimeStatusCritical, 5, "OVERDUE"},
		{"exactly -60", -60 * time.Minute, TimeStatusOverdue, 4, "OVERDUE"},
		{"-30 minutes", -30 * time.Minute, TimeStatusOverdue, 4, "OVERDUE"},
		{"exactly -15", -15 * time.Minute, TimeStatusUrgent, 3, "DUE SOON"},
		{"due now", 0, TimeStatusUrgent, 3, "DUE SOON"},
		{"exactly +15", 15 * time.Minute, TimeStatusUrgent, 3, "DUE SOON"},
		{"+16 minutes", 16 * time.Minute, TimeStatusWarning, 2, "WARNING"},
		{"exactly +60", 60 * time.Minute, TimeStatusWarning, 2, "WARNING"},
		{"+61 minutes", 61 * time.Minute, TimeStatusOK, 1, "ON TIME"},
		{"next day", 26 * time.Hour, TimeStatusOK, 1, "ON TIME"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := Classify(now, checkoutIn(now, tc.offset))
			require.NotNil(t, ts)
			assert.Equal(t, tc.wantType, ts.Type)
			assert.Equal(t, tc.wantRank, ts.SeverityRank)
			assert.Equal(t, tc.wantLbl, ts.Label)
		})
	}
}

func TestClassifyNilCheckout(t *testing.T) {
	assert.Nil(t, Classify(time.Now(), nil))
	assert.Nil(t, Classify(time.Time{}, nil))
}

func TestClassifyFloorsNegativeDiffs(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	// 90 seconds past due floors to -2 minutes, still urgent.
	ts := Classify(now, checkoutIn(now, -90*time.Second))
	require.NotNil(t, ts)
	assert.Equal(t, TimeStatusUrgent, ts.Type)

	// 60m30s past due floors to -61, crossing into critical.
	ts = Classify(now, checkoutIn(now, -60*time.Minute - 30*time.Second))
	require.NotNil(t, ts)
	assert.Equal(t, TimeStatusCritical, ts.Type)
}

func TestClassifyCountdownText(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		offset time.Duration
		want   string
	}{
		{-3 * time.Hour, "3h ago"},
		{-45 * time.Minute, "45m ago"},
		{45 * time.Minute, "45m left"},
		{90 * time.Minute, "1h left"},
		{5 * time.Hour, "5h left"},
	}
	for _, tc := range cases {
		ts := Classify(now, checkoutIn(now, tc.offset))
		require.NotNil(t, ts)
		assert.Equal(t, tc.want, ts.Countdown)
	}
}

func TestClassifyCustomThresholds(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	coarse := Thresholds{CriticalBelow: -120, OverdueBelow: -30, UrgentUpTo: 30, WarningUpTo: 120}

	ts := coarse.Classify(now, checkoutIn(now, -90*time.Minute))
	require.NotNil(t, ts)
	assert.Equal(t, TimeStatusOverdue, ts.Type)

	ts = coarse.Classify(now, checkoutIn(now, 90*time.Minute))
	require.NotNil(t, ts)
	assert.Equal(t, TimeStatusWarning, ts.Type)
}
