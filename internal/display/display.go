// Package display drives a sim.App from an ebiten window, one scheduler
// tick per ebiten update, and draws the active frame with an eased
// progress bar.
package display

import (
	"context"
	"image/color"
	"time"

	"github.com/fogleman/ease"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/framestep/internal/sim"
	"github.com/rs/zerolog"
)

const (
	screenWidth  = 320
	screenHeight = 120
	barMargin    = 16
	barHeight    = 12
)

var (
	barBackground = color.RGBA{0x30, 0x30, 0x30, 0xff}
	barForeground = color.RGBA{0x4f, 0xc3, 0xf7, 0xff}
)

// Game implements ebiten.Game.
type Game struct {
	ctx    context.Context
	app    *sim.App
	logger zerolog.Logger
}

// NewGame wraps app. Update returns ebiten.Termination once ctx is done.
func NewGame(ctx context.Context, app *sim.App, logger zerolog.Logger) *Game {
	return &Game{ctx: ctx, app: app, logger: logger}
}

// Update advances the app by one fixed ebiten tick.
func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		g.logger.Debug().Msg("context done, closing window")
		return ebiten.Termination
	}
	g.app.Tick(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

// Draw renders the frame status.
func (g *Game) Draw(screen *ebiten.Image) {
	status, ok := g.app.Status()
	if !ok {
		ebitenutil.DebugPrint(screen, "waiting for sequence")
		return
	}
	ebitenutil.DebugPrint(screen, status.String())

	width := float32(screenWidth - 2*barMargin)
	y := float32(screenHeight - barMargin - barHeight)
	vector.DrawFilledRect(screen, barMargin, y, width, barHeight, barBackground, false)
	vector.DrawFilledRect(screen, barMargin, y, width*float32(ease.InOutQuad(status.Progress)), barHeight, barForeground, false)
}

// Layout keeps a fixed logical screen size.
func (g *Game) Layout(int, int) (int, int) {
	return screenWidth, screenHeight
}

// Run opens the window and blocks until it is closed or ctx is cancelled.
func Run(ctx context.Context, app *sim.App, title string, logger zerolog.Logger) error {
	ebiten.SetWindowSize(screenWidth*2, screenHeight*2)
	ebiten.SetWindowTitle(title)

	logger.Info().Int("tps", ebiten.TPS()).Msg("window opened")
	err := ebiten.RunGame(NewGame(ctx, app, logger))
	logger.Info().Uint64("ticks", app.Stats().Ticks).Msg("window closed")
	return err
}
