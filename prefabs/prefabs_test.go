package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedPrefabsDecode(t *testing.T) {
	tests := []struct {
		file   string
		policy string
		attack string
	}{
		{file: "grunt.yaml", policy: "fsm", attack: "projectile"},
		{file: "learner.yaml", policy: "qlearning", attack: "projectile"},
		{file: "brute.yaml", policy: "fsm", attack: "melee"},
		{file: "dummy.yaml", policy: "fsm", attack: "projectile"},
		{file: "post.yaml", policy: "fsm", attack: "projectile"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			spec, err := LoadCombatant(tt.file)
			require.NoError(t, err)
			assert.Equal(t, tt.policy, spec.Policy)
			assert.Equal(t, tt.attack, spec.Attack)
			assert.Greater(t, spec.Health, 0.0)
			assert.Greater(t, spec.CooldownFrames, 0)
		})
	}
}

func TestCombatantDefaults(t *testing.T) {
	spec := CombatantSpec{Name: "bare"}.Defaults()

	assert.Equal(t, "fsm", spec.Policy)
	assert.Equal(t, "projectile", spec.Attack)
	assert.Equal(t, 100.0, spec.Health)
	assert.Equal(t, 15.0, spec.DetectionRange)
	assert.Equal(t, 10.0, spec.ShootingRange)
	assert.Equal(t, 60, spec.CooldownFrames)
}

func TestLearningParamsKeepExplicitZero(t *testing.T) {
	var spec CombatantSpec
	require.NoError(t, yaml.Unmarshal([]byte("learning:\n  epsilon: 0\n"), &spec))

	p := spec.Learning.Params()
	assert.Equal(t, 0.0, p.Epsilon)
	assert.Equal(t, 0.1, p.Alpha)
	assert.Equal(t, 0.9, p.Gamma)
}

func TestCombatantValidate(t *testing.T) {
	bad := 1.5
	tests := []struct {
		name string
		spec CombatantSpec
		ok   bool
	}{
		{name: "empty is fine", spec: CombatantSpec{}, ok: true},
		{name: "unknown policy", spec: CombatantSpec{Policy: "neural"}},
		{name: "unknown attack", spec: CombatantSpec{Attack: "magic"}},
		{name: "epsilon out of range", spec: CombatantSpec{Learning: LearningSpec{Epsilon: &bad}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestLoadScenario(t *testing.T) {
	spec, err := LoadScenario("scenario.yaml")
	require.NoError(t, err)

	assert.Equal(t, 60, spec.TPS)
	assert.Equal(t, "dummy.yaml", spec.Target.Prefab)
	assert.NotEmpty(t, spec.Agents)
	assert.NotEmpty(t, spec.StopWhen)
	for _, a := range spec.Agents {
		_, err := LoadCombatant(a.Prefab)
		assert.NoError(t, err, a.Prefab)
	}
}

func TestEmbeddedScenariosResolve(t *testing.T) {
	for _, name := range []string{"scenario.yaml", "duel.yaml"} {
		t.Run(name, func(t *testing.T) {
			spec, err := LoadScenario(name)
			require.NoError(t, err)

			target, err := LoadCombatant(spec.Target.Prefab)
			require.NoError(t, err)
			if target.Script != "" {
				_, err := LoadScript(target.Script)
				assert.NoError(t, err, target.Script)
			}
			for _, a := range spec.Agents {
				_, err := LoadCombatant(a.Prefab)
				assert.NoError(t, err, a.Prefab)
			}
		})
	}
}

func TestScenarioDefaults(t *testing.T) {
	spec := ScenarioSpec{}.Defaults()
	assert.Equal(t, 60, spec.TPS)
	assert.Equal(t, 7200, spec.MaxTicks)
	assert.Equal(t, DefaultStopWhen, spec.StopWhen)
	assert.Equal(t, 40.0, spec.Arena.Width)
}

func TestLoadMissingPrefab(t *testing.T) {
	_, err := Load("nope.yaml")
	assert.Error(t, err)
	_, err = LoadScript("nope.tengo")
	assert.Error(t, err)
}

func TestLoadScriptPaths(t *testing.T) {
	for _, name := range []string{"patrol.tengo", "scripts/patrol.tengo", "prefabs/scripts/patrol.tengo", "idle.tengo"} {
		data, err := LoadScript(name)
		require.NoError(t, err, name)
		assert.Contains(t, string(data), "update")
	}
}

func TestNamesListsEmbeddedSpecs(t *testing.T) {
	names := Names()
	assert.Contains(t, names, "scenario.yaml")
	assert.Contains(t, names, "learner.yaml")
}

func TestWatcherReportsSpecChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	ignored := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(ignored, []byte("x"), 0o644))
	path := filepath.Join(dir, "grunt.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: grunt\n"), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, path, name)
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}
}
