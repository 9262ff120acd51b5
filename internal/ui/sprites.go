// Package ui implements the checkers board window using Ebitengine.
package ui

import (
	"bytes"
	"embed"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"go.uber.org/zap"

	"github.com/hailam/checkersplay/internal/board"
)

//go:embed assets/pieces/*.svg
var pieceAssets embed.FS

// pieceFiles maps cells to their asset file paths.
var pieceFiles = map[board.Cell]string{
	board.WhiteMan:  "assets/pieces/wM.svg",
	board.WhiteKing: "assets/pieces/wK.svg",
	board.BlackMan:  "assets/pieces/bM.svg",
	board.BlackKing: "assets/pieces/bK.svg",
}

// SpriteManager rasterizes the piece SVGs once and hands out the images.
type SpriteManager struct {
	pieces      map[board.Cell]*ebiten.Image
	size        int
	renderScale float64 // pieces are rasterized larger and scaled down when drawn
}

// NewSpriteManager creates a sprite manager with pieces of the given size.
// Assets that fail to load are logged and drawn as nothing.
func NewSpriteManager(size int, logger *zap.Logger) *SpriteManager {
	sm := &SpriteManager{
		pieces:      make(map[board.Cell]*ebiten.Image),
		size:        size,
		renderScale: 3.0,
	}
	sm.loadPieces(logger)
	return sm
}

// GetPiece returns the sprite for a cell, or nil for Empty.
func (sm *SpriteManager) GetPiece(c board.Cell) *ebiten.Image {
	return sm.pieces[c]
}

func (sm *SpriteManager) loadPieces(logger *zap.Logger) {
	renderSize := int(float64(sm.size) * sm.renderScale)

	for cell, path := range pieceFiles {
		rgba, err := rasterizeSVG(path, renderSize)
		if err != nil {
			logger.Warn("piece asset unavailable", zap.String("path", path), zap.Error(err))
			continue
		}
		sm.pieces[cell] = ebiten.NewImageFromImage(rgba)
	}
}

// rasterizeSVG renders an embedded SVG into a square RGBA image.
func rasterizeSVG(path string, size int) (*image.RGBA, error) {
	data, err := pieceAssets.ReadFile(path)
	if err != nil {
		return nil, err
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)
	return rgba, nil
}

// DrawPieceAt draws a piece size pixels wide with its top-left corner at
// x, y. lift brightens the sprite, used for the selected piece.
func (sm *SpriteManager) DrawPieceAt(screen *ebiten.Image, c board.Cell, x, y, size float64, lift bool) {
	sprite := sm.GetPiece(c)
	if sprite == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	scale := size / float64(sprite.Bounds().Dx())
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	if lift {
		op.ColorScale.Scale(1.15, 1.15, 1.0, 1.0)
	}
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)
}

// Size returns the display size of piece sprites.
func (sm *SpriteManager) Size() int {
	return sm.size
}
