// Command prefab-schema writes JSON schemas for combatant and scenario prefabs
// so editors can validate the YAML files under prefabs/.
package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
	"github.com/milk9111/skirmish/logger"
	"github.com/milk9111/skirmish/prefabs"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "prefab-schema"
	app.Usage = "generate JSON schemas for prefab YAML files"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "out", Value: "schema", Usage: "directory to write the schemas into"},
	}
	app.Action = func(c *cli.Context) error {
		out := c.String("out")
		schemas := map[string]*jsonschema.Schema{
			"combatant.schema.json": combatantSchema(),
			"scenario.schema.json":  scenarioSchema(),
		}
		for name, schema := range schemas {
			path := filepath.Join(out, name)
			if err := writeSchema(path, schema); err != nil {
				return err
			}
			logger.For("prefab-schema").WithField("path", path).Info("schema written")
		}
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.WithError(err).Fatal("prefab-schema failed")
	}
}

func reflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
	}
}

func combatantSchema() *jsonschema.Schema {
	schema := reflector().Reflect(new(prefabs.CombatantSpec))
	schema.Title = "Combatant prefab"
	schema.Description = "Agent and target definitions under prefabs/*.yaml"
	return schema
}

func scenarioSchema() *jsonschema.Schema {
	schema := reflector().Reflect(new(prefabs.ScenarioSpec))
	schema.Title = "Scenario prefab"
	schema.Description = "Arena layout, target and agent spawns"
	return schema
}

func writeSchema(outPath string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal schema")
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return errors.Wrap(err, "create schema directory")
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return errors.Wrap(err, "write temp schema")
	}

	return errors.Wrap(os.Rename(tmpPath, outPath), "replace schema")
}
