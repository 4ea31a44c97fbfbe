// Package render composes the game board shown each tick: the background,
// the camera view, the countdown, the AI's move icon, both scores and the
// match-over banner.
package render

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"path/filepath"

	"github.com/ayusman/rockpaper/internal/capture"
	"github.com/ayusman/rockpaper/internal/game"
	"gocv.io/x/gocv"
)

// Board size. BG.png is expected to match it.
const (
	BoardWidth  = 1280
	BoardHeight = 720
)

// Layout of the board, in pixels from the top-left corner.
var (
	ViewOrigin        = image.Pt(795, 234)
	IconOrigin        = image.Pt(149, 310)
	TimerOrigin       = image.Pt(605, 435)
	AIScoreOrigin     = image.Pt(410, 215)
	PlayerScoreOrigin = image.Pt(1112, 215)
)

var (
	white   = color.RGBA{R: 255, G: 255, B: 255}
	magenta = color.RGBA{R: 255, B: 255}
	gray    = color.RGBA{R: 90, G: 90, B: 90}
)

// Presenter draws game states onto a copy of the background.
type Presenter struct {
	background gocv.Mat
	icons      map[game.Move]gocv.Mat
	startKey   string
	restartKey string
	fallback   bool
}

// NewPresenter loads BG.png and the move icons 1.png, 2.png and 3.png from
// assetsDir. A missing background is replaced by a plain canvas and missing
// icons are skipped; both are logged once here. startKey and restartKey are
// shown in the on-screen prompts.
func NewPresenter(assetsDir, startKey, restartKey string) *Presenter {
	p := &Presenter{
		icons:      make(map[game.Move]gocv.Mat),
		startKey:   startKey,
		restartKey: restartKey,
	}

	bgPath := filepath.Join(assetsDir, "BG.png")
	bg := gocv.IMRead(bgPath, gocv.IMReadColor)
	switch {
	case bg.Empty():
		bg.Close()
		log.Printf("Background %s not found, using a plain board", bgPath)
		p.background = plainBoard()
		p.fallback = true
	case bg.Cols() != BoardWidth || bg.Rows() != BoardHeight:
		log.Printf("Background %s is %dx%d, scaling to %dx%d", bgPath, bg.Cols(), bg.Rows(), BoardWidth, BoardHeight)
		p.background = gocv.NewMat()
		gocv.Resize(bg, &p.background, image.Pt(BoardWidth, BoardHeight), 0, 0, gocv.InterpolationLinear)
		bg.Close()
	default:
		p.background = bg
	}

	for _, m := range []game.Move{game.Rock, game.Paper, game.Scissors} {
		path := filepath.Join(assetsDir, fmt.Sprintf("%d.png", int(m)))
		icon := gocv.IMRead(path, gocv.IMReadUnchanged)
		if icon.Empty() {
			icon.Close()
			log.Printf("Icon for %s not found at %s, it will not be drawn", m, path)
			continue
		}
		p.icons[m] = icon
	}

	return p
}

// plainBoard draws a stand-in for BG.png with the camera and icon slots outlined.
func plainBoard() gocv.Mat {
	board := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(40, 30, 30, 0), BoardHeight, BoardWidth, gocv.MatTypeCV8UC3)
	view := image.Rect(ViewOrigin.X, ViewOrigin.Y, ViewOrigin.X+capture.ViewWidth, ViewOrigin.Y+capture.ViewHeight)
	gocv.Rectangle(&board, view.Inset(-4), gray, 2)
	gocv.Rectangle(&board, image.Rect(IconOrigin.X, IconOrigin.Y, IconOrigin.X+400, IconOrigin.Y+420).Inset(-4), gray, 2)
	gocv.PutText(&board, "AI", image.Pt(AIScoreOrigin.X-250, AIScoreOrigin.Y), gocv.FontHersheyPlain, 4, gray, 4)
	gocv.PutText(&board, "PLAYER", image.Pt(PlayerScoreOrigin.X-330, PlayerScoreOrigin.Y), gocv.FontHersheyPlain, 4, gray, 4)
	return board
}

// Fallback reports whether the plain board is used instead of BG.png.
func (p *Presenter) Fallback() bool {
	return p.fallback
}

// Compose returns the board for s with view pasted into the camera slot.
// The caller owns the returned Mat. An empty view leaves the slot blank.
func (p *Presenter) Compose(view gocv.Mat, s game.State) gocv.Mat {
	board := p.background.Clone()

	if !view.Empty() {
		p.pasteView(&board, view)
	}

	switch s.Phase {
	case game.PhaseIdle:
		gocv.PutText(&board, fmt.Sprintf("Press %s to start", p.startKey), image.Pt(440, 690), gocv.FontHersheyPlain, 2.5, white, 2)
	case game.PhaseCountdown:
		gocv.PutText(&board, fmt.Sprintf("%d", s.Timer), TimerOrigin, gocv.FontHersheyPlain, 6, magenta, 4)
	case game.PhaseResolved, game.PhaseMatchOver:
		if icon, ok := p.icons[s.AIMove]; ok {
			pasteIcon(&board, icon, IconOrigin)
		}
	}

	gocv.PutText(&board, fmt.Sprintf("%d", s.Score.AI), AIScoreOrigin, gocv.FontHersheyPlain, 4, white, 6)
	gocv.PutText(&board, fmt.Sprintf("%d", s.Score.Player), PlayerScoreOrigin, gocv.FontHersheyPlain, 4, white, 6)

	if s.Phase == game.PhaseMatchOver {
		p.drawMatchOver(&board, s)
	}
	return board
}

func (p *Presenter) pasteView(board *gocv.Mat, view gocv.Mat) {
	slot := board.Region(image.Rect(ViewOrigin.X, ViewOrigin.Y, ViewOrigin.X+capture.ViewWidth, ViewOrigin.Y+capture.ViewHeight))
	defer slot.Close()

	if view.Cols() == capture.ViewWidth && view.Rows() == capture.ViewHeight && view.Type() == board.Type() {
		view.CopyTo(&slot)
		return
	}

	// Views from elsewhere than capture.Prepare are scaled to fit.
	scaled := gocv.NewMat()
	defer scaled.Close()
	gocv.Resize(view, &scaled, image.Pt(capture.ViewWidth, capture.ViewHeight), 0, 0, gocv.InterpolationLinear)
	if scaled.Channels() == 4 {
		gocv.CvtColor(scaled, &scaled, gocv.ColorBGRAToBGR)
	}
	scaled.CopyTo(&slot)
}

// pasteIcon copies icon onto board at the given origin, clipped to the board.
// Transparent pixels of a four-channel icon keep the board underneath.
func pasteIcon(board *gocv.Mat, icon gocv.Mat, at image.Point) {
	r := image.Rect(at.X, at.Y, at.X+icon.Cols(), at.Y+icon.Rows()).
		Intersect(image.Rect(0, 0, board.Cols(), board.Rows()))
	if r.Empty() {
		return
	}

	src := icon.Region(r.Sub(at))
	defer src.Close()
	dst := board.Region(r)
	defer dst.Close()

	switch src.Channels() {
	case 4:
		channels := gocv.Split(src)
		defer func() {
			for _, c := range channels {
				c.Close()
			}
		}()
		bgr := gocv.NewMat()
		defer bgr.Close()
		gocv.Merge(channels[:3], &bgr)
		bgr.CopyToWithMask(&dst, channels[3])
	case 3:
		src.CopyTo(&dst)
	case 1:
		bgr := gocv.NewMat()
		defer bgr.Close()
		gocv.CvtColor(src, &bgr, gocv.ColorGrayToBGR)
		bgr.CopyTo(&dst)
	}
}

func (p *Presenter) drawMatchOver(board *gocv.Mat, s game.State) {
	shade := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), board.Rows(), board.Cols(), board.Type())
	defer shade.Close()
	gocv.AddWeighted(*board, 0.4, shade, 0.6, 0, board)

	banner := "AI WINS!"
	bannerColor := color.RGBA{R: 230, G: 60, B: 60}
	switch {
	case s.Disqualified:
		banner = "DISQUALIFIED"
	case s.Status == game.PlayerWon:
		banner = "YOU WIN!"
		bannerColor = color.RGBA{R: 60, G: 220, B: 90}
	}

	centeredText(board, banner, 330, 7, bannerColor, 8)
	centeredText(board, fmt.Sprintf("Final score  AI %d : %d You", s.Score.AI, s.Score.Player), 420, 3, white, 3)
	centeredText(board, fmt.Sprintf("Press %s to play again", p.restartKey), 500, 2.5, white, 2)
}

// centeredText draws text centred horizontally with its baseline at y.
func centeredText(board *gocv.Mat, text string, y int, scale float64, c color.RGBA, thickness int) {
	size := gocv.GetTextSize(text, gocv.FontHersheyPlain, scale, thickness)
	x := (board.Cols() - size.X) / 2
	gocv.PutText(board, text, image.Pt(x, y), gocv.FontHersheyPlain, scale, c, thickness)
}

// Close releases the loaded images.
func (p *Presenter) Close() error {
	p.background.Close()
	for m, icon := range p.icons {
		icon.Close()
		delete(p.icons, m)
	}
	return nil
}
