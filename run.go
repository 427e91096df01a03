package bango

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window and callbacks used by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// Update, if set, is called after Surface.Update each tick.
	Update func() error
	// Draw renders the caller's visuals; bango itself draws nothing.
	Draw func(screen *ebiten.Image)
}

type runGame struct {
	surface *Surface
	cfg     RunConfig
}

func (g *runGame) Update() error {
	g.surface.Update()
	if g.cfg.Update != nil {
		return g.cfg.Update()
	}
	return nil
}

func (g *runGame) Draw(screen *ebiten.Image) {
	if g.cfg.Draw != nil {
		g.cfg.Draw(screen)
	}
}

func (g *runGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.surface.SetSize(float64(g.cfg.Width), float64(g.cfg.Height))
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and drives surface from the Ebitengine game loop until
// the window closes or cfg.Update returns an error.
func Run(surface *Surface, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	surface.SetSize(float64(cfg.Width), float64(cfg.Height))
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(&runGame{surface: surface, cfg: cfg})
}
