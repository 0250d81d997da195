package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/skirmish/aim"
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
	"golang.org/x/image/colornames"
)

var (
	floorColor      = color.NRGBA{R: 0x1c, G: 0x22, B: 0x28, A: 0xff}
	wallColor       = colornames.Slategray
	obstacleColor   = colornames.Dimgray
	targetColor     = colornames.Orangered
	projectileColor = colornames.Gold
	flashColor      = colornames.White
	facingColor     = colornames.Lightyellow
)

func policyColor(p component.Policy) color.Color {
	switch p {
	case component.PolicyQLearning:
		return colornames.Mediumseagreen
	default:
		return colornames.Steelblue
	}
}

func drawScene(screen *ebiten.Image, g *Game) {
	screen.Fill(colornames.Black)
	if g.sim == nil {
		ebitenutil.DebugPrintAt(screen, "no scenario loaded", 10, 10)
		return
	}

	w := g.sim.World()
	arena := g.sim.Spec().Arena
	v := fitView(arena.Width, arena.Depth)

	x0, y0 := v.planeToScreen(cp.Vector{})
	vector.FillRect(screen, x0, y0, v.length(arena.Width), v.length(arena.Depth), floorColor, false)
	vector.StrokeRect(screen, x0, y0, v.length(arena.Width), v.length(arena.Depth), 2, wallColor, false)

	drawObstacles(screen, w, v)
	drawProjectiles(screen, w, v)
	drawTarget(screen, w, v)
	drawAgents(screen, w, v)
	g.floaters.Draw(screen, v)

	if g.showPhysics {
		drawPhysicsDebug(g.sim.Physics().Space(), screen, v)
	}
	drawHUD(screen, g)
}

func drawObstacles(screen *ebiten.Image, w *ecs.World, v view) {
	for _, e := range w.Query(component.ObstacleTagComponent.Kind(), component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind()) {
		t, _ := ecs.Get(w, e, component.TransformComponent)
		pb, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
		x, y := v.toScreen(t.Position)
		hw, hd := v.length(pb.Width/2), v.length(pb.Depth/2)
		vector.FillRect(screen, x-hw, y-hd, 2*hw, 2*hd, obstacleColor, false)
	}
}

func drawProjectiles(screen *ebiten.Image, w *ecs.World, v view) {
	ecs.ForEach(w, component.ProjectileComponent, func(e ecs.Entity, p *component.Projectile) {
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			return
		}
		x, y := v.toScreen(t.Position)
		r := v.length(p.Radius)
		if r < 2 {
			r = 2
		}
		vector.FillCircle(screen, x, y, r, projectileColor, true)
	})
}

func drawTarget(screen *ebiten.Image, w *ecs.World, v view) {
	for _, e := range w.Query(component.TargetTagComponent.Kind(), component.TransformComponent.Kind()) {
		drawBody(screen, w, e, v, targetColor)
	}
}

func drawAgents(screen *ebiten.Image, w *ecs.World, v view) {
	for _, e := range w.Query(component.AgentTagComponent.Kind(), component.TransformComponent.Kind(), component.BrainComponent.Kind()) {
		b, _ := ecs.Get(w, e, component.BrainComponent)
		drawBody(screen, w, e, v, policyColor(b.Policy))

		t, _ := ecs.Get(w, e, component.TransformComponent)
		x, y := v.toScreen(t.Position)
		tip := t.Position.Add(aim.Forward(t.Yaw).Scale(bodyRadius(w, e) * 2))
		tx, ty := v.toScreen(tip)
		vector.StrokeLine(screen, x, y, tx, ty, 2, facingColor, true)

		label := b.Action.String()
		if id, ok := ecs.Get(w, e, component.IdentityComponent); ok {
			label = id.Name + " " + label
		}
		ebitenutil.DebugPrintAt(screen, label, int(x)+8, int(y)+6)
	}
}

func drawBody(screen *ebiten.Image, w *ecs.World, e ecs.Entity, v view, c color.Color) {
	t, _ := ecs.Get(w, e, component.TransformComponent)
	x, y := v.toScreen(t.Position)
	r := v.length(bodyRadius(w, e))

	if f, ok := ecs.Get(w, e, component.DamageFlashComponent); ok && f.On {
		c = flashColor
	}
	vector.FillCircle(screen, x, y, r, c, true)

	if h, ok := ecs.Get(w, e, component.HealthComponent); ok {
		drawHealthBar(screen, x-r, y-r-8, 2*r, h.Fraction())
	}
}

func drawHealthBar(screen *ebiten.Image, x, y, width float32, fraction float64) {
	vector.FillRect(screen, x, y, width, 4, colornames.Darkred, false)
	vector.FillRect(screen, x, y, width*float32(fraction), 4, colornames.Limegreen, false)
}

func bodyRadius(w *ecs.World, e ecs.Entity) float64 {
	if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent); ok && pb.Radius > 0 {
		return pb.Radius
	}
	return 0.5
}

func drawHUD(screen *ebiten.Image, g *Game) {
	s := g.sim
	stats := s.Stats()
	env := s.Env()

	var b strings.Builder
	fmt.Fprintf(&b, "%s  seed %d\n", s.Spec().Name, s.Seed())
	fmt.Fprintf(&b, "tick %d  x%d  %.0f fps\n", env.Tick, g.speed, ebiten.ActualFPS())
	fmt.Fprintf(&b, "target hp %.0f\n", env.TargetHealth)
	fmt.Fprintf(&b, "shots %d  hits %d\n", stats.Shots, stats.Hits)
	fmt.Fprintf(&b, "dealt %.0f  taken %.0f\n", stats.DamageDealt, stats.DamageTaken)
	if s.Done() {
		b.WriteString("scenario finished (R to restart)\n")
	}
	if g.reloads > 0 {
		fmt.Fprintf(&b, "reloads %d\n", g.reloads)
	}
	if g.buildErr != nil {
		fmt.Fprintf(&b, "reload failed: %v\n", g.buildErr)
	}
	b.WriteString("\n")
	for _, a := range stats.Agents {
		state := "alive"
		if !a.Alive {
			state = "dead"
		}
		fmt.Fprintf(&b, "%s [%s] %s hp %.0f\n", a.Name, a.Policy, state, a.Health)
		if a.Updates > 0 {
			fmt.Fprintf(&b, "  q %d entries  %d updates  %d explore\n", a.TableEntries, a.Updates, a.Explorations)
		}
	}
	b.WriteString("\nspace pause  r restart  f1 physics  up/down speed")

	ebitenutil.DebugPrintAt(screen, b.String(), baseWidth-hudWidth+8, 10)
}
