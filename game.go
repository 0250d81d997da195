package main

import (
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/skirmish/logger"
	"github.com/milk9111/skirmish/prefabs"
	"github.com/milk9111/skirmish/sim"
	"github.com/sirupsen/logrus"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	maxSpeed = 8
)

type GameOptions struct {
	Scenario string
	Seed     int64
	SeedSet  bool
	Debug    bool
	Watch    bool
}

// Game renders one scenario top-down and rebuilds it when prefabs change.
type Game struct {
	opts GameOptions

	sim      *sim.Sim
	watcher  *prefabs.Watcher
	floaters *floaters
	pauseUI  *ebitenui.UI

	paused      bool
	quit        bool
	speed       int
	showPhysics bool
	reloads     int
	buildErr    error
}

func NewGame(opts GameOptions) (*Game, error) {
	g := &Game{
		opts:        opts,
		floaters:    newFloaters(),
		speed:       1,
		showPhysics: opts.Debug,
	}
	if err := g.rebuild(); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)

	if opts.Watch {
		w, err := prefabs.NewWatcher()
		if err != nil {
			logger.For("viewer").WithError(err).Warn("hot reload disabled")
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

// rebuild loads the scenario again from prefabs and replaces the running sim.
func (g *Game) rebuild() error {
	spec, err := prefabs.LoadScenario(g.opts.Scenario)
	if err != nil {
		return err
	}
	s, err := sim.Build(spec, sim.Options{
		Seed:     g.opts.Seed,
		SeedSet:  g.opts.SeedSet,
		Feedback: g.floaters,
	})
	if err != nil {
		return err
	}
	g.sim = s
	g.floaters.Reset()
	ebiten.SetTPS(spec.TPS)
	return nil
}

func (g *Game) restart() {
	if err := g.rebuild(); err != nil {
		g.buildErr = err
		logger.For("viewer").WithError(err).Error("rebuild scenario")
		return
	}
	g.buildErr = nil
}

func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	changed := g.watcher.Drain()
	if len(changed) == 0 {
		return
	}
	names := make([]string, 0, len(changed))
	for _, c := range changed {
		names = append(names, filepath.Base(c))
	}
	logger.Log.WithFields(logrus.Fields{
		"component": "viewer",
		"files":     names,
	}).Info("prefabs changed; reloading")
	g.reloads++
	g.restart()
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.pollReload()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.restart()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.showPhysics = !g.showPhysics
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) && g.speed < maxSpeed {
		g.speed *= 2
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) && g.speed > 1 {
		g.speed /= 2
	}

	if g.paused {
		g.pauseUI.Update()
		if inpututil.IsKeyJustPressed(ebiten.KeyPeriod) {
			g.step()
		}
		return nil
	}

	for i := 0; i < g.speed; i++ {
		g.step()
	}
	return nil
}

func (g *Game) step() {
	if g.sim == nil || g.sim.Done() {
		return
	}
	g.sim.Step()
	g.floaters.Update()
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawScene(screen, g)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
