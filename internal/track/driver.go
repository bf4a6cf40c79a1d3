package track

import "github.com/vovakirdan/rolling-stone/internal/core"

// Driver runs a Generator inside a core.Loop: the track is built on
// activation, extended on the frame clock from the progress source, and
// segment behaviour is ticked on both clocks.
type Driver struct {
	g *Generator
}

// NewDriver wraps g as a core.Component.
func NewDriver(g *Generator) *Driver {
	return &Driver{g: g}
}

// Generator returns the driven generator.
func (d *Driver) Generator() *Generator { return d.g }

func (d *Driver) Init() error { return d.g.Err() }

func (d *Driver) OnActivate() {
	d.g.BuildInitial(d.g.cfg.InitialSegments)
}

func (d *Driver) FixedTick(dt float64) {
	for i := 0; i < d.g.active.Len(); i++ {
		for _, a := range d.g.active.At(i).attachments {
			a.FixedTick(dt)
		}
	}
}

func (d *Driver) Tick(dt float64) {
	d.g.Update()
	for i := 0; i < d.g.active.Len(); i++ {
		for _, a := range d.g.active.At(i).attachments {
			a.Tick(dt)
		}
	}
}

var _ core.Component = (*Driver)(nil)
