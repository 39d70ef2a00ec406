package monitor

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinetic-alphabet/pictograph/internal/worker"
)

type fakeStats struct {
	calls atomic.Int32
}

func (f *fakeStats) Stats() worker.StatsResponse {
	n := f.calls.Add(1)
	return worker.StatsResponse{Classified: int(n), Pending: 2, LastWriteTime: "5ms"}
}

func readStatus(t *testing.T, path string) Status {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var st Status
	require.NoError(t, json.Unmarshal(data, &st))
	return st
}

func TestNewService_Defaults(t *testing.T) {
	s := NewService(Dependencies{WorkerManager: &fakeStats{}})
	assert.Equal(t, defaultInterval, s.deps.Interval)
	assert.NotNil(t, s.deps.Logger)
	assert.False(t, s.IsRunning())
}

func TestWriteStatus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.json")
	s := NewService(Dependencies{WorkerManager: &fakeStats{}, StatusPath: path})

	require.NoError(t, s.WriteStatus())

	st := readStatus(t, path)
	assert.Equal(t, 1, st.Workers.Classified)
	assert.Equal(t, 2, st.Workers.Pending)
	assert.Empty(t, st.Uptime, "no uptime before Start")
}

func TestWriteStatus_NoPath(t *testing.T) {
	stats := &fakeStats{}
	s := NewService(Dependencies{WorkerManager: stats})
	assert.NoError(t, s.WriteStatus())
	assert.Zero(t, stats.calls.Load())
}

func TestStartStop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.json")
	stats := &fakeStats{}
	s := NewService(Dependencies{WorkerManager: stats, StatusPath: path, Interval: 10 * time.Millisecond})

	require.NoError(t, s.Start())
	require.NoError(t, s.Start(), "second Start is a no-op")
	assert.True(t, s.IsRunning())

	assert.Eventually(t, func() bool {
		_, err := os.Stat(path)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	s.Stop()
	s.Stop()
	assert.False(t, s.IsRunning())

	st := readStatus(t, path)
	assert.NotEmpty(t, st.Uptime)
	assert.Positive(t, st.Workers.Classified)
}
