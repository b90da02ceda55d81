package archive

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okian/tabellone/internal/domain/model"
	"github.com/okian/tabellone/internal/domain/sport"
)

func sampleMatch(id string) model.Match {
	return model.Match{
		EventID:      id,
		TournamentID: "padel-cup",
		Sport:        sport.Padel,
		HomeTeam:     "Rossi/Bianchi",
		AwayTeam:     "Verdi/Neri",
		HomeScore:    2,
		AwayScore:    1,
		TS:           time.Date(2026, 5, 2, 18, 30, 0, 0, time.UTC),
	}
}

func openMemory(t *testing.T) *Archive {
	t.Helper()
	a, err := Open(context.Background(), memoryPath)
	require.NoError(t, err, "Open should not return an error")
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestOpen_CreatesSchema(t *testing.T) {
	a := openMemory(t)

	var name string
	err := a.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='matches'").Scan(&name)
	require.NoError(t, err, "Querying for matches table should not produce an error")
	assert.Equal(t, "matches", name)
}

func TestOpen_RejectsEmptyPath(t *testing.T) {
	_, err := Open(context.Background(), "")
	assert.True(t, errors.Is(err, ErrNoPath))
}

func TestAppendAndReplay(t *testing.T) {
	ctx := context.Background()
	a := openMemory(t)

	first, second := sampleMatch("m-1"), sampleMatch("m-2")
	second.HomeTeam, second.AwayTeam = second.AwayTeam, second.HomeTeam

	require.NoError(t, a.Append(ctx, first))
	require.NoError(t, a.Append(ctx, second))

	var got []model.Match
	n, err := a.Replay(ctx, func(m model.Match) error {
		got = append(got, m)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, got, 2)
	assert.Equal(t, "m-1", got[0].EventID)
	assert.Equal(t, "m-2", got[1].EventID)
	assert.Equal(t, sport.Padel, got[0].Sport)
	assert.Equal(t, "Verdi/Neri", got[1].HomeTeam)
	assert.True(t, first.TS.Equal(got[0].TS), "timestamp should survive the round trip")
}

func TestAppend_IgnoresDuplicates(t *testing.T) {
	ctx := context.Background()
	a := openMemory(t)

	require.NoError(t, a.Append(ctx, sampleMatch("m-1")))
	changed := sampleMatch("m-1")
	changed.HomeScore = 0
	require.NoError(t, a.Append(ctx, changed))

	count, err := a.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = a.Replay(ctx, func(m model.Match) error {
		assert.Equal(t, 2, m.HomeScore, "the first write wins")
		return nil
	})
	require.NoError(t, err)
}

func TestReplay_StopsOnCallbackError(t *testing.T) {
	ctx := context.Background()
	a := openMemory(t)
	for _, id := range []string{"m-1", "m-2", "m-3"} {
		require.NoError(t, a.Append(ctx, sampleMatch(id)))
	}

	boom := errors.New("boom")
	n, err := a.Replay(ctx, func(m model.Match) error {
		if m.EventID == "m-2" {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, n)
}

func TestReplay_CorruptPayload(t *testing.T) {
	ctx := context.Background()
	a := openMemory(t)
	_, err := a.db.Exec(`INSERT INTO matches (event_id, tournament_id, sport, recorded_at, payload)
		VALUES ('bad', 't', 'calcio', 0, x'c1')`)
	require.NoError(t, err)

	_, err = a.Replay(ctx, func(model.Match) error { return nil })
	assert.ErrorIs(t, err, ErrCorruptPayload)
}

func TestArchive_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tabellone.db")

	a, err := Open(ctx, path, WithClock(func() time.Time { return time.Unix(1700000000, 0) }))
	require.NoError(t, err)
	require.NoError(t, a.Append(ctx, sampleMatch("m-1")))
	require.NoError(t, a.Close())

	b, err := Open(ctx, path)
	require.NoError(t, err, "reopening should not rerun migrations")
	defer b.Close()

	count, err := b.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	var recordedAt int64
	require.NoError(t, b.db.QueryRow(`SELECT recorded_at FROM matches WHERE event_id = 'm-1'`).Scan(&recordedAt))
	assert.Equal(t, int64(1700000000), recordedAt)
}
