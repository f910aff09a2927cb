package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtik00/sysmon/internal/model"
)

// fakeCollector is a test double with canned fields or a canned error.
type fakeCollector struct {
	name   string
	fields model.Fields
	err    error
}

func (f *fakeCollector) Name() string { return f.name }

func (f *fakeCollector) Collect(_ context.Context) (model.Fields, error) {
	return f.fields, f.err
}

// TestRegistry_Collect verifies that fields from all collectors are
// merged into one snapshot with the hostname tag and a timestamp.
func TestRegistry_Collect(t *testing.T) {
	registry := NewRegistry(zerolog.Nop(),
		&fakeCollector{name: "memory", fields: model.Fields{"memory_total": 4096, "memory_used": 2048}},
		&fakeCollector{name: "cpu", fields: model.Fields{"cpu_count": 8}},
	)

	snapshot, err := registry.Collect(context.Background(), "webserver-01")
	require.NoError(t, err)

	assert.Equal(t, "webserver-01", snapshot.Hostname)
	assert.False(t, snapshot.TakenAt.IsZero())
	assert.Len(t, snapshot.Fields, 3)
	assert.Equal(t, 8.0, snapshot.Fields["cpu_count"])
}

// TestRegistry_Collect_PartialFailure verifies that one failing collector
// does not poison the snapshot: its fields are absent, everyone else's
// are present, and no error is returned.
func TestRegistry_Collect_PartialFailure(t *testing.T) {
	registry := NewRegistry(zerolog.Nop(),
		&fakeCollector{name: "memory", fields: model.Fields{"memory_total": 4096}},
		&fakeCollector{name: "temperature", err: errors.New("no sensors")},
	)

	snapshot, err := registry.Collect(context.Background(), "host")
	require.NoError(t, err, "a single collector failure must not fail the cycle")

	assert.Len(t, snapshot.Fields, 1)
	assert.Contains(t, snapshot.Fields, "memory_total")
}

// TestRegistry_Collect_AllFailed verifies the collect-failed error when
// no collector produced anything.
func TestRegistry_Collect_AllFailed(t *testing.T) {
	registry := NewRegistry(zerolog.Nop(),
		&fakeCollector{name: "memory", err: errors.New("boom")},
		&fakeCollector{name: "cpu", err: errors.New("boom")},
	)

	_, err := registry.Collect(context.Background(), "host")
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitCollectFailed, cliErr.Code)
}

// TestRegistry_Collect_NoCollectors verifies that an empty registry
// yields an empty snapshot without error. The daemon never builds one,
// but the behavior should be defined.
func TestRegistry_Collect_NoCollectors(t *testing.T) {
	registry := NewRegistry(zerolog.Nop())

	snapshot, err := registry.Collect(context.Background(), "host")
	require.NoError(t, err)
	assert.Empty(t, snapshot.Fields)
}

// TestMemoryCollector_Smoke samples real memory on the test machine.
// Any functioning host has nonzero total memory, so this is safe to
// assert in CI.
func TestMemoryCollector_Smoke(t *testing.T) {
	fields, err := NewMemoryCollector().Collect(context.Background())
	require.NoError(t, err)

	assert.Greater(t, fields["memory_total"], 0.0)
	assert.Contains(t, fields, "memory_used")
}

// TestCPUCollector_Smoke samples the real CPU. Only cpu_count is
// guaranteed everywhere; frequency and load average are best-effort.
func TestCPUCollector_Smoke(t *testing.T) {
	fields, err := NewCPUCollector().Collect(context.Background())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, fields["cpu_count"], 1.0)
}
