package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/skirmish/logger"
	"github.com/milk9111/skirmish/prefabs"
	"github.com/milk9111/skirmish/sim"
)

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestWriteReportRoundTrips(t *testing.T) {
	spec, err := prefabs.LoadScenario("duel.yaml")
	require.NoError(t, err)
	s, err := sim.Build(spec, sim.Options{})
	require.NoError(t, err)
	require.NoError(t, s.Run(context.Background(), 30, nil))

	runID := uuid.NewV4()
	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, writeReport(path, runID, s, s.Stats()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got report
	require.NoError(t, yaml.Unmarshal(data, &got))

	assert.Equal(t, runID.String(), got.Run)
	assert.Equal(t, "duel", got.Scenario)
	assert.Equal(t, int64(7), got.Seed)
	assert.Equal(t, 30, got.Ticks)
	assert.False(t, got.Target)
	require.Len(t, got.Agents, 1)

	agent := got.Agents[0]
	assert.Equal(t, "learner-1", agent.Name)
	assert.Equal(t, "learner.yaml", agent.Prefab)
	assert.Equal(t, "qlearning", agent.Policy)
	assert.True(t, agent.Alive)
	assert.Equal(t, 29, agent.Updates)
	total := 0
	for _, n := range agent.Actions {
		total += n
	}
	assert.Equal(t, 30, total)
}

func TestWriteReportFailsOnMissingDirectory(t *testing.T) {
	spec, err := prefabs.LoadScenario("duel.yaml")
	require.NoError(t, err)
	s, err := sim.Build(spec, sim.Options{})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "missing", "report.yaml")
	assert.Error(t, writeReport(path, uuid.NewV4(), s, s.Stats()))
}
