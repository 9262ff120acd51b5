package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/hailam/checkersplay/internal/board"
)

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare    color.RGBA
	DarkSquare     color.RGBA
	SelectedSquare color.RGBA
	PathColor      color.RGBA
	TargetColor    color.RGBA
	LastMoveColor  color.RGBA
	CaptureColor   color.RGBA
	Background     color.RGBA
	CoordLight     color.RGBA
	CoordDark      color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare:    color.RGBA{238, 225, 196, 255}, // Cream
		DarkSquare:     color.RGBA{118, 86, 62, 255},   // Walnut
		SelectedSquare: color.RGBA{247, 247, 105, 160},
		PathColor:      color.RGBA{247, 200, 80, 120},
		TargetColor:    color.RGBA{130, 190, 105, 210},
		LastMoveColor:  color.RGBA{180, 190, 100, 90},
		CaptureColor:   color.RGBA{230, 90, 80, 200},
		Background:     color.RGBA{40, 44, 52, 255},
		CoordLight:     color.RGBA{118, 86, 62, 255},
		CoordDark:      color.RGBA{238, 225, 196, 255},
	}
}

// Renderer draws the board and the pieces. Coordinates passed in and out
// are logical; drawing multiplies them by the HiDPI scale.
type Renderer struct {
	sprites    *SpriteManager
	theme      *Theme
	boardSize  int
	squareSize int
	scale      float64
	flipped    bool // Black at the bottom
}

// NewRenderer creates a new renderer.
func NewRenderer(boardSize, squareSize int, logger *zap.Logger) *Renderer {
	return &Renderer{
		sprites:    NewSpriteManager(squareSize, logger),
		theme:      DefaultTheme(),
		boardSize:  boardSize,
		squareSize: squareSize,
		scale:      1.0,
	}
}

// SetScale sets the HiDPI scale factor for rendering.
func (r *Renderer) SetScale(scale float64) {
	r.scale = scale
}

// SetFlipped puts Black's side at the bottom of the screen.
func (r *Renderer) SetFlipped(flipped bool) {
	r.flipped = flipped
}

// Flipped reports whether Black is at the bottom.
func (r *Renderer) Flipped() bool {
	return r.flipped
}

func (r *Renderer) s(v int) float32 {
	return float32(float64(v) * r.scale)
}

// DrawBoard draws the squares and the coordinate labels.
func (r *Renderer) DrawBoard(screen *ebiten.Image) {
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			sq := board.NewSquare(row, col)
			c := r.theme.LightSquare
			if sq.IsDark() {
				c = r.theme.DarkSquare
			}
			x, y := r.SquareToScreen(sq)
			vector.DrawFilledRect(screen, r.s(x), r.s(y), r.s(r.squareSize), r.s(r.squareSize), c, false)
		}
	}
	r.drawCoordinates(screen)
}

// drawCoordinates labels files along the bottom edge and ranks along the
// left edge, inside the corner squares.
func (r *Renderer) drawCoordinates(screen *ebiten.Image) {
	face := GetFaceWithSize(11 * r.scale)
	if face == nil {
		return
	}
	for i := 0; i < board.Size; i++ {
		// Bottom row.
		sq := r.ScreenToSquare(i*r.squareSize+1, r.boardSize-1)
		x, y := r.SquareToScreen(sq)
		r.drawLabel(screen, face, string(rune('a'+sq.Col)), sq,
			float64(x+r.squareSize-10), float64(y+r.squareSize-15))

		// Left column.
		sq = r.ScreenToSquare(1, i*r.squareSize+1)
		x, y = r.SquareToScreen(sq)
		r.drawLabel(screen, face, string(rune('1'+board.Size-1-sq.Row)), sq,
			float64(x+3), float64(y+2))
	}
}

func (r *Renderer) drawLabel(screen *ebiten.Image, face *text.GoTextFace, s string, sq board.Square, x, y float64) {
	c := r.theme.CoordLight
	if sq.IsDark() {
		c = r.theme.CoordDark
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x*r.scale, y*r.scale)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

// DrawHighlights marks the last move, the selected piece with the path
// entered so far, and the squares the next click may land on.
func (r *Renderer) DrawHighlights(screen *ebiten.Image, selected board.Square, path board.Move, targets []board.Square, lastMove board.Move) {
	for _, sq := range lastMove.Path() {
		r.highlightSquare(screen, sq, r.theme.LastMoveColor)
	}

	if selected != board.NoSquare {
		r.highlightSquare(screen, selected, r.theme.SelectedSquare)
	}
	for _, step := range path {
		r.highlightSquare(screen, step.To, r.theme.PathColor)
		if step.IsJump() {
			r.drawCaptureMark(screen, step.Captured())
		}
	}

	for _, sq := range targets {
		r.drawTargetIndicator(screen, sq)
	}
}

func (r *Renderer) highlightSquare(screen *ebiten.Image, sq board.Square, c color.RGBA) {
	if !sq.IsValid() {
		return
	}
	x, y := r.SquareToScreen(sq)
	vector.DrawFilledRect(screen, r.s(x), r.s(y), r.s(r.squareSize), r.s(r.squareSize), c, false)
}

func (r *Renderer) drawTargetIndicator(screen *ebiten.Image, sq board.Square) {
	x, y := r.SquareToScreen(sq)
	cx := r.s(x) + r.s(r.squareSize)/2
	cy := r.s(y) + r.s(r.squareSize)/2
	radius := r.s(r.squareSize) * 0.15

	vector.DrawFilledCircle(screen, cx, cy, radius, r.theme.TargetColor, true)
}

// drawCaptureMark rings a piece that the entered path jumps.
func (r *Renderer) drawCaptureMark(screen *ebiten.Image, sq board.Square) {
	x, y := r.SquareToScreen(sq)
	cx := r.s(x) + r.s(r.squareSize)/2
	cy := r.s(y) + r.s(r.squareSize)/2
	radius := r.s(r.squareSize) * 0.44

	vector.StrokeCircle(screen, cx, cy, radius, r.sf(3), r.theme.CaptureColor, true)
}

func (r *Renderer) sf(v float32) float32 {
	return v * float32(r.scale)
}

// DrawPieces draws every piece on b. The piece on lifted is drawn
// brightened and, while a path is being entered, at the path's end.
func (r *Renderer) DrawPieces(screen *ebiten.Image, b *board.Board, lifted board.Square, liftedAt board.Square) {
	grid := b.DisplayGrid()
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			cell := grid[row][col]
			if cell == board.Empty {
				continue
			}
			sq := board.NewSquare(row, col)
			at, lift := sq, false
			if sq == lifted {
				lift = true
				if liftedAt.IsValid() {
					at = liftedAt
				}
			}
			x, y := r.SquareToScreen(at)
			r.sprites.DrawPieceAt(screen, cell, float64(r.s(x)), float64(r.s(y)), float64(r.s(r.squareSize)), lift)
		}
	}
}

// SquareToScreen converts a board square to the logical coordinates of its
// top-left corner.
func (r *Renderer) SquareToScreen(sq board.Square) (int, int) {
	row, col := sq.Row, sq.Col
	if r.flipped {
		row, col = board.Size-1-row, board.Size-1-col
	}
	return col * r.squareSize, row * r.squareSize
}

// ScreenToSquare converts logical coordinates to a board square, or
// NoSquare outside the board.
func (r *Renderer) ScreenToSquare(x, y int) board.Square {
	if x < 0 || x >= r.boardSize || y < 0 || y >= r.boardSize {
		return board.NoSquare
	}
	col, row := x/r.squareSize, y/r.squareSize
	if r.flipped {
		row, col = board.Size-1-row, board.Size-1-col
	}
	return board.NewSquare(row, col)
}

// BoardSize returns the board size in pixels.
func (r *Renderer) BoardSize() int {
	return r.boardSize
}

// SquareSize returns the size of one square in pixels.
func (r *Renderer) SquareSize() int {
	return r.squareSize
}

// Theme returns the current theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}
