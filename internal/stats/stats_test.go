package stats_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/hextrap/internal/stats"
)

func TestOpenCreatesDefaultRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs", "stats.json")

	store, err := stats.Open(path)
	require.NoError(t, err)
	assert.Equal(t, stats.Default(), store.Current())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"record_level": 1`)
	assert.Contains(t, string(data), `"tiles_tapped": 0`)
}

func TestRecordSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	want := stats.TotalGameStats{
		TilesTapped:   412,
		TigersTrapped: 31,
		TigersEscaped: 9,
		GamesPlayed:   12,
		RecordLevel:   8,
	}

	store, err := stats.Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Update(func(rec *stats.TotalGameStats) { *rec = want }))

	reopened, err := stats.Open(path)
	require.NoError(t, err)
	assert.Equal(t, want, reopened.Current())
}

func TestOpenCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := stats.Open(path)
	assert.Error(t, err)
}

func TestDecodeKeepsDefaults(t *testing.T) {
	s, err := stats.Decode([]byte(`{"tiles_tapped": 5}`))
	require.NoError(t, err)
	assert.Equal(t, uint64(5), s.TilesTapped)
	assert.Equal(t, uint64(1), s.RecordLevel)
}

func TestFlushFailsWhenDirectoryVanishes(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "gone")
	store, err := stats.Open(filepath.Join(dir, "stats.json"))
	require.NoError(t, err)

	require.NoError(t, os.RemoveAll(dir))
	assert.Error(t, store.Flush())
}

func TestAddMergesCounters(t *testing.T) {
	rec := stats.TotalGameStats{TilesTapped: 10, TigersTrapped: 2, TigersEscaped: 1, GamesPlayed: 3, RecordLevel: 5}

	rec.Add(stats.TotalGameStats{TilesTapped: 4, TigersTrapped: 1, GamesPlayed: 1, RecordLevel: 3})
	assert.Equal(t, stats.TotalGameStats{TilesTapped: 14, TigersTrapped: 3, TigersEscaped: 1, GamesPlayed: 4, RecordLevel: 5}, rec)

	rec.Add(stats.TotalGameStats{TigersEscaped: 2, RecordLevel: 7})
	assert.Equal(t, uint64(3), rec.TigersEscaped)
	assert.Equal(t, uint64(7), rec.RecordLevel)
}

func TestUpdateKeepsRecordOnWriteFailure(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "gone")
	store, err := stats.Open(filepath.Join(dir, "stats.json"))
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(dir))

	err = store.Update(func(rec *stats.TotalGameStats) { rec.GamesPlayed++ })
	assert.Error(t, err)
	assert.Equal(t, stats.Default(), store.Current())
}

func TestConcurrentUpdatesAddUp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	store, err := stats.Open(path)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 1; i <= 8; i++ {
		wg.Add(1)
		go func(n uint64) {
			defer wg.Done()
			assert.NoError(t, store.Update(func(rec *stats.TotalGameStats) {
				rec.Add(stats.TotalGameStats{GamesPlayed: 1, TilesTapped: n})
			}))
		}(uint64(i))
	}
	wg.Wait()

	assert.Equal(t, uint64(8), store.Current().GamesPlayed)
	assert.Equal(t, uint64(36), store.Current().TilesTapped)

	reopened, err := stats.Open(path)
	require.NoError(t, err)
	assert.Equal(t, store.Current(), reopened.Current())
}
