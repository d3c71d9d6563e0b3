package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTest(t *testing.T, now *time.Time) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	s.now = func() time.Time { return *now }
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)
	s := openTest(t, &now)

	// ten days ago
	now = now.AddDate(0, 0, -10)
	require.NoError(t, s.RecordVisit(ctx, "aaa", "ua", "/"))
	// three days ago
	now = now.AddDate(0, 0, 7)
	require.NoError(t, s.RecordVisit(ctx, "bbb", "ua", "/"))
	// today
	now = now.AddDate(0, 0, 3)
	require.NoError(t, s.RecordVisit(ctx, "aaa", "ua", "/projects"))
	require.NoError(t, s.RecordVisit(ctx, "ccc", "", "/"))

	require.NoError(t, s.RecordEvent(ctx, "chat", "ok"))
	require.NoError(t, s.RecordEvent(ctx, "chat", "ok"))
	require.NoError(t, s.RecordEvent(ctx, "contact", "sent"))

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, st.TotalVisitors)
	assert.EqualValues(t, 3, st.UniqueVisitors)
	assert.EqualValues(t, 2, st.VisitorsToday)
	assert.EqualValues(t, 3, st.VisitorsThisWeek)
	assert.Equal(t, []PathStat{{"/", 3}, {"/projects", 1}}, st.TopPaths)
	assert.Equal(t, []EventStat{{"chat", "ok", 2}, {"contact", "sent", 1}}, st.Events)
	require.Len(t, st.RecentVisitors, 4)
	assert.Equal(t, "ccc", st.RecentVisitors[0].HashedIP)
}

func TestRecentVisitorsLimit(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)
	s := openTest(t, &now)

	for i := 0; i < 5; i++ {
		now = now.Add(time.Minute)
		require.NoError(t, s.RecordVisit(ctx, "h", "ua", "/"))
	}
	vs, err := s.RecentVisitors(ctx, 2)
	require.NoError(t, err)
	require.Len(t, vs, 2)
	assert.True(t, vs[0].Timestamp.After(vs[1].Timestamp))
	assert.Equal(t, now.Unix(), vs[0].Timestamp.Unix())
}

func TestCleanup(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)
	s := openTest(t, &now)

	now = now.AddDate(-2, 0, 0)
	require.NoError(t, s.RecordVisit(ctx, "old", "ua", "/"))
	require.NoError(t, s.RecordEvent(ctx, "chat", "ok"))
	now = now.AddDate(2, 0, 0)
	require.NoError(t, s.RecordVisit(ctx, "new", "ua", "/"))

	n, err := s.Cleanup(ctx, 365*24*time.Hour)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, st.TotalVisitors)
	assert.Empty(t, st.Events)
}

func TestStatsReportsQueryErrors(t *testing.T) {
	now := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)
	s := openTest(t, &now)
	require.NoError(t, s.RecordVisit(context.Background(), "aaa", "ua", "/"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Stats(ctx)
	assert.Error(t, err)

	require.NoError(t, s.db.Close())
	_, err = s.Stats(context.Background())
	assert.Error(t, err)
}
