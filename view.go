package main

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/skirmish/common"
)

const (
	hudWidth    = 300
	arenaMargin = 24
)

// view maps the arena floor onto the screen, X to the right and Z down.
type view struct {
	scale float64
	ox    float64
	oy    float64
}

func fitView(arenaWidth, arenaDepth float64) view {
	availW := float64(baseWidth-hudWidth) - 2*arenaMargin
	availH := float64(baseHeight) - 2*arenaMargin
	if arenaWidth <= 0 || arenaDepth <= 0 {
		return view{scale: 1, ox: arenaMargin, oy: arenaMargin}
	}
	scale := availW / arenaWidth
	if s := availH / arenaDepth; s < scale {
		scale = s
	}
	return view{
		scale: scale,
		ox:    arenaMargin + (availW-arenaWidth*scale)/2,
		oy:    arenaMargin + (availH-arenaDepth*scale)/2,
	}
}

func (v view) toScreen(p common.Vec3) (float32, float32) {
	return float32(v.ox + p.X*v.scale), float32(v.oy + p.Z*v.scale)
}

func (v view) planeToScreen(p cp.Vector) (float32, float32) {
	return float32(v.ox + p.X*v.scale), float32(v.oy + p.Y*v.scale)
}

func (v view) length(d float64) float32 {
	return float32(d * v.scale)
}
