package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/skirmish/common"
)

const (
	floaterFrames = 45
	floaterRise   = 0.6
)

type floater struct {
	text     string
	position common.Vec3
	frames   int
}

// floaters shows applied damage as numbers drifting up from the hit point.
type floaters struct {
	items []floater
}

func newFloaters() *floaters {
	return &floaters{}
}

func (f *floaters) Damage(delta float64, position common.Vec3) {
	if delta <= 0 {
		return
	}
	f.items = append(f.items, floater{
		text:     fmt.Sprintf("-%.0f", delta),
		position: position,
		frames:   floaterFrames,
	})
}

func (f *floaters) Reset() {
	f.items = f.items[:0]
}

func (f *floaters) Update() {
	kept := f.items[:0]
	for _, it := range f.items {
		it.frames--
		if it.frames > 0 {
			kept = append(kept, it)
		}
	}
	f.items = kept
}

func (f *floaters) Draw(screen *ebiten.Image, v view) {
	for _, it := range f.items {
		x, y := v.toScreen(it.position)
		age := float64(floaterFrames-it.frames) / floaterFrames
		y -= float32(age * floaterRise * v.scale * 2)
		ebitenutil.DebugPrintAt(screen, it.text, int(x)+6, int(y)-16)
	}
}
