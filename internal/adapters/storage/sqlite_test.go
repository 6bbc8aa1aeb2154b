package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pomoday/pomoday/internal/domain"
)

func newTestStore(t *testing.T) *sqliteStore {
	t.Helper()
	store, err := NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*sqliteStore)
}

func TestEmptyStoreReturnsNil(t *testing.T) {
	store := newTestStore(t)

	settings, err := store.LoadSettings()
	require.NoError(t, err)
	require.Nil(t, settings)

	schedule, err := store.LoadSchedule()
	require.NoError(t, err)
	require.Nil(t, schedule)

	selected, err := store.LoadSelectedDay()
	require.NoError(t, err)
	require.Empty(t, selected)

	snap, err := store.LoadTimerSnapshot()
	require.NoError(t, err)
	require.Nil(t, snap)
}

func TestSettingsRoundTrip(t *testing.T) {
	store := newTestStore(t)

	want := domain.TimerSettings{
		FocusMinutes:         50,
		BreakMinutes:         10,
		LongBreakMinutes:     20,
		EnableLongBreak:      true,
		LongBreakInterval:    3,
		SoundEnabled:         false,
		NotificationsEnabled: true,
	}
	require.NoError(t, store.SaveSettings(want))

	got, err := store.LoadSettings()
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, want, *got)
}

func TestScheduleRoundTrip(t *testing.T) {
	store := newTestStore(t)

	now := time.Date(2026, time.June, 10, 9, 0, 0, 0, time.Local)
	day := domain.NewDaySchedule(now)
	task, err := domain.NewTaskEntry("persisted", now)
	require.NoError(t, err)
	task.StartStopwatch(now)
	task.ApplySession(domain.SessionRecord{
		ID: domain.NewID(),
		SessionEvent: domain.SessionEvent{
			Mode:             domain.ModeFocus,
			StartedAt:        now.Add(-25 * time.Minute),
			EndedAt:          now,
			ScheduledSeconds: 1500,
			ElapsedSeconds:   1500,
		},
		GitBranch: "main",
		GitCommit: "abc1234",
	}, now)
	day.Tasks = append(day.Tasks, task)
	day.ActiveTaskID = task.ID

	state := domain.ScheduleState{day.Key: day}
	require.NoError(t, store.SaveSchedule(state))

	got, err := store.LoadSchedule()
	require.NoError(t, err)
	require.Len(t, got, 1)

	gotDay := got[day.Key]
	require.NotNil(t, gotDay)
	require.Equal(t, day.DateISO, gotDay.DateISO)
	require.Equal(t, task.ID, gotDay.ActiveTaskID)

	gotTask := gotDay.Task(task.ID)
	require.NotNil(t, gotTask)
	require.Equal(t, "persisted", gotTask.Title)
	require.Equal(t, int64(1500), gotTask.TotalFocusSeconds)
	require.Len(t, gotTask.Sessions, 1)
	require.Equal(t, "main", gotTask.Sessions[0].GitBranch)
	require.True(t, gotTask.StopwatchRunning())
	require.True(t, gotTask.TimerStartedAt.Equal(now))
}

func TestSelectedDayRoundTrip(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SaveSelectedDay("Wednesday, 10.06.2026"))
	got, err := store.LoadSelectedDay()
	require.NoError(t, err)
	require.Equal(t, "Wednesday, 10.06.2026", got)
}

func TestTimerSnapshotRoundTrip(t *testing.T) {
	store := newTestStore(t)

	now := time.Date(2026, time.June, 10, 9, 0, 0, 0, time.Local)
	want := domain.TimerSnapshot{
		Mode:              domain.ModeBreak,
		Running:           true,
		RemainingSeconds:  240,
		SegmentStartedAt:  now,
		IntervalStartedAt: now.Add(-time.Minute),
		FocusCount:        3,
		LastEvent: &domain.SessionEvent{
			Mode:             domain.ModeFocus,
			StartedAt:        now.Add(-26 * time.Minute),
			EndedAt:          now.Add(-time.Minute),
			ScheduledSeconds: 1500,
			ElapsedSeconds:   1500,
		},
	}
	require.NoError(t, store.SaveTimerSnapshot(want))

	got, err := store.LoadTimerSnapshot()
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, want.Mode, got.Mode)
	require.Equal(t, want.Running, got.Running)
	require.Equal(t, want.RemainingSeconds, got.RemainingSeconds)
	require.True(t, got.SegmentStartedAt.Equal(want.SegmentStartedAt))
	require.Equal(t, want.FocusCount, got.FocusCount)
	require.NotNil(t, got.LastEvent)
	require.Equal(t, want.LastEvent.ElapsedSeconds, got.LastEvent.ElapsedSeconds)
}

func TestSaveOverwrites(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SaveSelectedDay("first"))
	require.NoError(t, store.SaveSelectedDay("second"))

	got, err := store.LoadSelectedDay()
	require.NoError(t, err)
	require.Equal(t, "second", got)
}

func TestMalformedDocumentTreatedAsMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.db.Exec(
		`INSERT INTO state (key, value, updated_at) VALUES (?, ?, ?)`,
		"settings", "{not json", time.Now(),
	)
	require.NoError(t, err)

	settings, err := store.LoadSettings()
	require.NoError(t, err)
	require.Nil(t, settings)
}

func TestFileBackedStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	store, err := New(path)
	require.NoError(t, err)
	require.NoError(t, store.SaveSelectedDay("Wednesday, 10.06.2026"))
	require.NoError(t, store.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.LoadSelectedDay()
	require.NoError(t, err)
	require.Equal(t, "Wednesday, 10.06.2026", got)
}
