package gui

import (
	"dragchess/src"
	"dragchess/src/base"
	"dragchess/src/logic/board"
	"dragchess/src/logx"
	"dragchess/ui/gui/gbase"
	"dragchess/ui/gui/ghelper"
	"dragchess/ui/gui/ghelper/gclipboard"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
)

type GUIProcessing struct {
	game   *src.Game
	assets *ghelper.GUIAssetsWorker
	theme  gbase.Palette
	logx   logx.Logger
	debug  bool

	window struct{ W, H int }
	status *ebiten.Image

	// input edge detection
	prevMouseDown bool
	prevX, prevY  int
	prevKeys      map[ebiten.Key]bool

	notice      string
	noticeUntil time.Time
}

const noticeTime = 2 * time.Second

func NewGUI(g *src.Game, assetsDir string, debug bool, logx logx.Logger) (*GUIProcessing, error) {
	geo := g.Geometry()
	theme := gbase.ClassicPalette
	assets, err := ghelper.NewGUIAssetsWorker(assetsDir, geo, theme, logx)
	if err != nil {
		return nil, err
	}
	gp := &GUIProcessing{
		game:     g,
		assets:   assets,
		theme:    theme,
		logx:     logx,
		debug:    debug,
		prevKeys: make(map[ebiten.Key]bool),
	}
	gp.window.W = geo.BoardW
	gp.window.H = geo.BoardH + gbase.StatusH
	gp.status = ghelper.RenderStatusPanel(gp.window.W-8, gbase.StatusH-8, theme)
	return gp, nil
}

func (gp *GUIProcessing) Run() error {
	ebiten.SetWindowSize(gp.window.W, gp.window.H)
	ebiten.SetWindowTitle("DragChess")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	return ebiten.RunGame(gp)
}

func (gp *GUIProcessing) Update() error {
	if ebiten.IsWindowBeingClosed() {
		gp.game.HandleEvent(src.Event{Type: src.Close})
		return ebiten.Termination
	}
	gp.handleInput()
	gp.handleKeys()
	gp.game.Update(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

// handleInput turns raw mouse state into press/motion/release events
func (gp *GUIProcessing) handleInput() {
	mx, my := ebiten.CursorPosition()
	mouseDown := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	x, y := float64(mx), float64(my)

	if mouseDown && !gp.prevMouseDown {
		gp.game.HandleEvent(src.Event{Type: src.Press, X: x, Y: y})
	} else if mx != gp.prevX || my != gp.prevY {
		gp.game.HandleEvent(src.Event{Type: src.Motion, X: x, Y: y})
	}
	if !mouseDown && gp.prevMouseDown {
		gp.game.HandleEvent(src.Event{Type: src.Release, X: x, Y: y})
	}
	gp.prevMouseDown = mouseDown
	gp.prevX, gp.prevY = mx, my
}

// handleKeys: F copies the FEN, P copies the PGN
func (gp *GUIProcessing) handleKeys() {
	if gp.keyJustPressed(ebiten.KeyF) {
		fen, err := gclipboard.CopyFEN(gp.game.History().String(), gp.game.Registry().Snapshot(), gp.game.HumanToMove())
		gp.clipboardResult("FEN", err)
		if err == nil {
			gp.logx.Debugf("copied FEN %s", fen)
		}
	}
	if gp.keyJustPressed(ebiten.KeyP) {
		gp.clipboardResult("PGN", gclipboard.CopyPGN(gp.game.History().String(), nil))
	}
}

func (gp *GUIProcessing) keyJustPressed(k ebiten.Key) bool {
	down := ebiten.IsKeyPressed(k)
	was := gp.prevKeys[k]
	gp.prevKeys[k] = down
	return down && !was
}

func (gp *GUIProcessing) clipboardResult(what string, err error) {
	if err != nil {
		gp.logx.Errorf("error copy %s to clipboard: %v", what, err)
		gp.notice = "Clipboard is not available"
	} else {
		gp.notice = what + " copied"
	}
	gp.noticeUntil = time.Now().Add(noticeTime)
}

func (gp *GUIProcessing) Draw(screen *ebiten.Image) {
	screen.Fill(gp.theme.Frame)

	img, scale := gp.assets.Board()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	screen.DrawImage(img, op)

	// the moving piece goes on top
	selSide, selIdx, hasSel := gp.game.Selected()
	gp.game.Registry().Each(func(s base.Side, i int, p board.Piece) {
		if hasSel && s == selSide && i == selIdx {
			return
		}
		gp.drawPiece(screen, s, p)
	})
	if hasSel {
		p := gp.game.Registry().Piece(selSide, selIdx)
		gp.drawPiece(screen, selSide, p)
		ghelper.StrokeBox(screen, p.Sprite.Bounds(), 2, gp.theme.Accent)
	}

	gp.drawStatus(screen)
	if gp.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS: %0.2f", ebiten.ActualTPS()))
	}
}

func (gp *GUIProcessing) drawPiece(screen *ebiten.Image, s base.Side, p board.Piece) {
	img, scale := gp.assets.Figure(s, p.Kind)
	pos := p.Sprite.Position()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(pos.X, pos.Y)
	screen.DrawImage(img, op)
}

func (gp *GUIProcessing) drawStatus(screen *ebiten.Image) {
	y := gp.window.H - gbase.StatusH
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(4, float64(y+4))
	screen.DrawImage(gp.status, op)

	msg, col := "Your move", gp.theme.StatusText
	switch gp.game.Phase() {
	case src.HumanDragging:
		msg = "Drop the piece on a square"
	case src.EnginePending:
		msg, col = "Engine is thinking...", gp.theme.Accent
		if n := gp.game.EngineFailures(); n > 0 {
			msg, col = fmt.Sprintf("Engine reply rejected %d times, retrying", n), gp.theme.Error
		}
	case src.EngineAnimating:
		msg, col = "Engine moves", gp.theme.Accent
	}
	if gp.game.Closed() {
		msg = "Game closed"
	}
	if gp.notice != "" && time.Now().Before(gp.noticeUntil) {
		msg, col = gp.notice, gp.theme.Accent
	}
	fonts := gp.assets.Fonts()
	text.Draw(screen, msg, fonts.Normal, gbase.StatusPad, y+gbase.StatusH/2+7, col)
	if last := gp.game.LastMove(); last != "" {
		label := fmt.Sprintf("last: %s   moves: %d", last, gp.game.History().Len())
		text.Draw(screen, label, fonts.Small, gp.window.W-260, y+gbase.StatusH/2+6, gp.theme.StatusText)
	}
}

func (gp *GUIProcessing) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return gp.window.W, gp.window.H
}
