// Command simulate runs a scenario headless and prints a per-agent summary.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/cheggaaa/pb"
	"github.com/milk9111/skirmish/logger"
	"github.com/milk9111/skirmish/prefabs"
	"github.com/milk9111/skirmish/sim"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
	"github.com/ttacon/chalk"
	"github.com/urfave/cli"
	"gopkg.in/yaml.v3"
)

func main() {
	app := cli.NewApp()
	app.Name = "simulate"
	app.Usage = "run a skirmish scenario without a window"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "scenario", Value: "scenario.yaml", Usage: "scenario prefab in prefabs/"},
		cli.IntFlag{Name: "ticks", Usage: "stop after this many ticks (default: scenario max_ticks)"},
		cli.Int64Flag{Name: "seed", Usage: "override the scenario seed"},
		cli.StringFlag{Name: "report", Usage: "write the final stats as YAML to this path"},
		cli.BoolFlag{Name: "quiet", Usage: "hide the progress bar"},
		cli.BoolFlag{Name: "debug", Usage: "enable debug logging"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		logger.Log.WithError(err).Fatal("simulate failed")
	}
}

func run(c *cli.Context) error {
	logger.SetDebug(c.Bool("debug"))
	runID := uuid.NewV4()
	log := logger.For("simulate").WithField("run", runID.String())

	spec, err := prefabs.LoadScenario(c.String("scenario"))
	if err != nil {
		return err
	}
	s, err := sim.Build(spec, sim.Options{
		Seed:    c.Int64("seed"),
		SeedSet: c.IsSet("seed"),
	})
	if err != nil {
		return errors.Wrapf(err, "build scenario %q", c.String("scenario"))
	}

	ticks := s.Spec().MaxTicks
	if c.IsSet("ticks") {
		ticks = c.Int("ticks")
	}
	log.WithFields(logrus.Fields{
		"scenario": s.Spec().Name,
		"seed":     s.Seed(),
		"ticks":    ticks,
	}).Info("starting run")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var bar *pb.ProgressBar
	if !c.Bool("quiet") && !c.Bool("debug") {
		bar = pb.New(ticks)
		bar.SetWidth(80)
		bar.Start()
	}
	started := time.Now()
	err = s.Run(ctx, ticks, func(*sim.Sim) {
		if bar != nil {
			bar.Increment()
		}
	})
	if bar != nil {
		bar.Finish()
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	stats := s.Stats()
	printSummary(runID, s, stats, time.Since(started))

	if path := c.String("report"); path != "" {
		if err := writeReport(path, runID, s, stats); err != nil {
			return err
		}
		log.WithField("path", path).Info("report written")
	}
	return nil
}

func printSummary(runID uuid.UUID, s *sim.Sim, stats sim.Stats, elapsed time.Duration) {
	fmt.Print(chalk.Bold.TextStyle(fmt.Sprintf("run %s  %s  seed %d\n", runID, s.Spec().Name, s.Seed())))
	fmt.Printf("%d ticks in %s\n", stats.Ticks, elapsed.Round(time.Millisecond))

	if stats.TargetDied {
		fmt.Print(chalk.Green, "target destroyed", chalk.Reset, "\n")
	} else {
		fmt.Print(chalk.Yellow, "target survived", chalk.Reset, "\n")
	}
	fmt.Printf("shots %d  hits %d  dealt %.1f  taken %.1f  deaths %d\n\n",
		stats.Shots, stats.Hits, stats.DamageDealt, stats.DamageTaken, stats.Deaths)

	for _, a := range stats.Agents {
		status := chalk.Green.Color("alive")
		if !a.Alive {
			status = chalk.Red.Color("dead")
		}
		fmt.Printf("%s%-12s%s %-10s %-6s hp %5.1f\n", chalk.Cyan, a.Name, chalk.Reset, a.Policy, status, a.Health)
		for _, name := range a.ActionNames() {
			fmt.Printf("    %-14s %6d\n", name, a.Actions[name])
		}
		if a.Updates > 0 {
			fmt.Printf("    q-table %d entries, %d updates, %d explorations, %d penalties\n",
				a.TableEntries, a.Updates, a.Explorations, a.Penalties)
		}
	}
}

type report struct {
	Run      string        `yaml:"run"`
	Scenario string        `yaml:"scenario"`
	Seed     int64         `yaml:"seed"`
	Ticks    int           `yaml:"ticks"`
	Shots    int           `yaml:"shots"`
	Hits     int           `yaml:"hits"`
	Dealt    float64       `yaml:"damage_dealt"`
	Taken    float64       `yaml:"damage_taken"`
	Target   bool          `yaml:"target_died"`
	Agents   []agentReport `yaml:"agents"`
}

type agentReport struct {
	Name         string         `yaml:"name"`
	Prefab       string         `yaml:"prefab"`
	Policy       string         `yaml:"policy"`
	Alive        bool           `yaml:"alive"`
	Health       float64        `yaml:"health"`
	Actions      map[string]int `yaml:"actions"`
	Updates      int            `yaml:"updates,omitempty"`
	Explorations int            `yaml:"explorations,omitempty"`
	Penalties    int            `yaml:"penalties,omitempty"`
	TableEntries int            `yaml:"table_entries,omitempty"`
}

func writeReport(path string, runID uuid.UUID, s *sim.Sim, stats sim.Stats) error {
	r := report{
		Run:      runID.String(),
		Scenario: s.Spec().Name,
		Seed:     s.Seed(),
		Ticks:    stats.Ticks,
		Shots:    stats.Shots,
		Hits:     stats.Hits,
		Dealt:    stats.DamageDealt,
		Taken:    stats.DamageTaken,
		Target:   stats.TargetDied,
	}
	for _, a := range stats.Agents {
		r.Agents = append(r.Agents, agentReport{
			Name:         a.Name,
			Prefab:       a.Prefab,
			Policy:       string(a.Policy),
			Alive:        a.Alive,
			Health:       a.Health,
			Actions:      a.Actions,
			Updates:      a.Updates,
			Explorations: a.Explorations,
			Penalties:    a.Penalties,
			TableEntries: a.TableEntries,
		})
	}
	sort.Slice(r.Agents, func(i, j int) bool { return r.Agents[i].Name < r.Agents[j].Name })

	data, err := yaml.Marshal(r)
	if err != nil {
		return errors.Wrap(err, "marshal report")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "write report %s", path)
}
