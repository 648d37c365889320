package spacebattle

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/space-battle/internal/config"
	"github.com/vovakirdan/space-battle/internal/core"
	"github.com/vovakirdan/space-battle/internal/games/spacebattle/engine"
)

// Visual characters for rendering
const (
	BulletChar      = '|'
	EnemyBulletChar = '¦'
	HeartChar       = '♥'
	ExplosionChar   = '✶'
	StarChar        = '·'
)

const startLabel = "[ Start Game ]"

// hudRows is the number of screen rows above the play area.
const hudRows = 1

// viewport maps world units (origin bottom-left, y up) to screen cells
// (origin top-left, y down). Row 0 holds the HUD.
type viewport struct {
	worldW, worldH   float64
	screenW, screenH int
}

func newViewport(worldW, worldH float64, screenW, screenH int) viewport {
	return viewport{worldW: worldW, worldH: worldH, screenW: screenW, screenH: screenH}
}

func (v viewport) playRows() int {
	return core.Max(v.screenH-hudRows, 1)
}

// toCell returns the cell containing world point p. The result may lie
// outside the screen.
func (v viewport) toCell(p core.Vec) (int, int) {
	x := int(math.Floor(p.X / v.worldW * float64(v.screenW)))
	y := hudRows + int(math.Floor((v.worldH-p.Y)/v.worldH*float64(v.playRows())))
	return x, y
}

// toWorld returns the world point at the centre of cell (x, y).
func (v viewport) toWorld(x, y int) core.Vec {
	wx := (float64(x) + 0.5) / float64(v.screenW) * v.worldW
	wy := v.worldH - (float64(y-hudRows)+0.5)/float64(v.playRows())*v.worldH
	return core.V(wx, wy)
}

// dragToWorld converts a drag in cells into world units. Screen y grows
// downwards, world y grows upwards.
func (v viewport) dragToWorld(dx, dy int) core.Vec {
	return core.V(
		float64(dx)*v.worldW/float64(v.screenW),
		-float64(dy)*v.worldH/float64(v.playRows()),
	)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() != g.view.screenW || dst.Height() != g.view.screenH {
		g.view = newViewport(g.cfg.World.Width, g.cfg.World.Height, dst.Width(), dst.Height())
	}

	if g.SceneShown() {
		g.drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Score: %d  |  Press R to restart", g.eng.Score()))
		return
	}

	dim := g.transition
	g.drawBackground(dst, dim)
	g.drawStartControl(dst)

	for _, ent := range g.eng.Entities() {
		g.drawEntity(dst, ent, dim)
	}
	for _, x := range g.explosions {
		cx, cy := g.view.toCell(x.pos)
		dst.SetColor(cx, cy, ExplosionChar, core.ColorOrange)
	}

	g.drawHUD(dst)

	if g.eng.Phase() == engine.PhaseBeforeGame {
		dst.DrawTextCentered(hudRows+g.view.playRows()/4, "S P A C E   B A T T L E")
	}
	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

// drawBackground scatters stars over both background layers. Each layer is
// one world height tall and centred on its scroll position.
func (g *Game) drawBackground(dst *core.Screen, dim bool) {
	h := g.cfg.World.Height
	w := g.cfg.World.Width
	const stars = 18

	for i, centre := range g.eng.Background() {
		color := core.ColorWhite
		if i == 1 || dim {
			color = core.ColorGray
		}
		for k := 0; k < stars; k++ {
			// Fixed pseudo-random layout, different for each layer.
			seed := float64(k*37 + i*101)
			x := math.Mod(seed*53.17, w)
			rel := math.Mod(seed*91.73, h) - h/2
			y := centre + rel
			if y < 0 || y >= h {
				continue
			}
			cx, cy := g.view.toCell(core.V(x, y))
			dst.SetColor(cx, cy, StarChar, color)
		}
	}
}

// drawStartControl draws the start label, sliding it off the bottom while
// the game starts.
func (g *Game) drawStartControl(dst *core.Screen) {
	centre := g.eng.StartControl().Center()
	if g.startDismissed {
		progress := 1.0
		if g.startExit > 0 {
			progress = (g.eng.Now() - g.startAt) / g.startExit
		}
		if progress >= 1 {
			return
		}
		centre.Y -= progress * g.cfg.World.Height / 2
	} else if g.eng.Phase() != engine.PhaseBeforeGame {
		return
	}

	cx, cy := g.view.toCell(centre)
	dst.DrawTextColor(cx-len(startLabel)/2, cy, startLabel, core.ColorBrightYellow)
}

func (g *Game) drawEntity(dst *core.Screen, ent engine.Entity, dim bool) {
	if ent.Hidden {
		return
	}

	var glyph rune
	var color core.Color
	switch ent.Category {
	case engine.CategoryPlayer:
		if g.flashing() {
			return
		}
		glyph, color = arrowGlyph(ent.Rotation), core.ColorBrightCyan
	case engine.CategoryEnemy:
		glyph, color = arrowGlyph(ent.Rotation), core.ColorRed
		if ent.Decorative {
			color = core.ColorMagenta
		}
	case engine.CategoryBullet:
		glyph, color = BulletChar, core.ColorBrightYellow
	case engine.CategoryEnemyBullet:
		glyph, color = EnemyBulletChar, core.ColorBrightRed
	case engine.CategoryHeart:
		glyph, color = HeartChar, core.ColorMagenta
	default:
		return
	}
	if dim {
		color = core.ColorGray
	}

	cx, cy := g.view.toCell(ent.Pos)
	dst.SetColor(cx, cy, glyph, color)
}

// flashing reports whether the player blinks out on this frame.
func (g *Game) flashing() bool {
	now := g.eng.Now()
	if now >= g.flashUntil {
		return false
	}
	return int(now*20)%2 == 0
}

// arrowGlyph picks the triangle closest to a heading in radians.
func arrowGlyph(rot float64) rune {
	deg := math.Mod(core.ToDegrees(rot)+45, 360)
	if deg < 0 {
		deg += 360
	}
	switch {
	case deg < 90:
		return '▶'
	case deg < 180:
		return '▲'
	case deg < 270:
		return '◀'
	default:
		return '▼'
	}
}

// drawHUD draws score, lives and speed tier once the game has started.
// The HUD is grey while it fades in.
func (g *Game) drawHUD(dst *core.Screen) {
	if !g.hudShown {
		return
	}

	color := core.ColorWhite
	if g.eng.Now()-g.hudAt < g.hudFade {
		color = core.ColorGray
	}

	score := g.eng.Score()
	left := fmt.Sprintf(" Score: %d ", score)
	dst.DrawTextColor(0, 0, left, color)

	lives := g.eng.Lives()
	hearts := strings.Repeat(string(HeartChar), core.Clamp(lives, 0, 5))
	if lives > 5 {
		hearts += fmt.Sprintf("+%d", lives-5)
	}
	right := fmt.Sprintf(" Speed %d  %s ", config.TierIndex(score)+1, hearts)
	dst.DrawTextColor(dst.Width()-len([]rune(right)), 0, right, color)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
