package main

import (
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/skirmish/logger"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "skirmish"
	app.Usage = "watch combat agents hunt a scripted target"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "scenario", Value: "scenario.yaml", Usage: "scenario prefab in prefabs/"},
		cli.Int64Flag{Name: "seed", Usage: "override the scenario seed"},
		cli.BoolFlag{Name: "debug", Usage: "enable debug logging and the physics overlay"},
		cli.BoolFlag{Name: "no-watch", Usage: "disable prefab hot reload"},
		cli.BoolFlag{Name: "m", Usage: "use base monitor instead of primary (for multi-monitor setups)"},
	}
	app.Action = func(c *cli.Context) error {
		logger.SetDebug(c.Bool("debug"))

		if c.Bool("m") {
			ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
		}

		game, err := NewGame(GameOptions{
			Scenario: c.String("scenario"),
			Seed:     c.Int64("seed"),
			SeedSet:  c.IsSet("seed"),
			Debug:    c.Bool("debug"),
			Watch:    !c.Bool("no-watch"),
		})
		if err != nil {
			return err
		}
		defer game.Close()

		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
		ebiten.SetWindowSize(baseWidth, baseHeight)
		ebiten.SetWindowTitle("skirmish")
		return ebiten.RunGame(game)
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.WithError(err).Fatal("skirmish exited")
	}
}
