package ghelper

import (
	"dragchess/src/base"
	"dragchess/src/logic/convert/convcoord"
	"dragchess/src/logx"
	"dragchess/ui/gui/gbase"
	"dragchess/ui/gui/ghelper/gfont"
	"dragchess/ui/gui/ghelper/gimages"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
)

type GUIAssetsWorker struct {
	board      *ebiten.Image
	boardScale float64

	figures     [2][gimages.SheetCols]*ebiten.Image
	figureScale float64

	fonts *gfont.Fonts
}

// NewGUIAssetsWorker loads board.png and figures.png from dir and draws
// replacements for the files it cannot read
func NewGUIAssetsWorker(dir string, geo convcoord.Geometry, p gbase.Palette, l logx.Logger) (*GUIAssetsWorker, error) {
	fonts, err := gfont.LoadFonts()
	if err != nil {
		return nil, err
	}
	aw := &GUIAssetsWorker{fonts: fonts}

	board, err := gimages.LoadImage(filepath.Join(dir, "board.png"))
	if err != nil {
		l.Infof("board image not loaded (%v), drawing one", err)
		board = ebiten.NewImageFromImage(gimages.RenderBoard(geo, p, fonts.Small))
	}
	aw.board = board
	aw.boardScale = float64(geo.BoardW) / float64(board.Bounds().Dx())

	sheet, err := gimages.LoadImage(filepath.Join(dir, "figures.png"))
	if err != nil {
		l.Infof("figures image not loaded (%v), drawing them", err)
		sheet = ebiten.NewImageFromImage(gimages.RenderFigures(int(geo.PieceW), int(geo.PieceH), p, fonts.Bold))
	}
	aw.figures = gimages.SplitSheet(sheet)
	aw.figureScale = geo.PieceW * gimages.SheetCols / float64(sheet.Bounds().Dx())
	return aw, nil
}

func (aw *GUIAssetsWorker) Board() (*ebiten.Image, float64) {
	return aw.board, aw.boardScale
}

func (aw *GUIAssetsWorker) Figure(s base.Side, k base.Kind) (*ebiten.Image, float64) {
	return aw.figures[s][k], aw.figureScale
}

func (aw *GUIAssetsWorker) Fonts() *gfont.Fonts {
	return aw.fonts
}
