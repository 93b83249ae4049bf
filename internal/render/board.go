// Package render draws snake snapshots as raster images.
package render

import (
	"errors"
	"image"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// BlockSize is the edge of one grid cell in pixels before scaling.
const BlockSize = 16

// MaxScale bounds the scale factor accepted by Board.
const MaxScale = 8

// ErrEmptyGrid is returned for snapshots without a playfield.
var ErrEmptyGrid = errors.New("render: empty grid")

// Board draws snap as an image, one BlockSize square per cell, enlarged by
// scale. Scale values below 1 are treated as 1 and above MaxScale as MaxScale.
func Board(snap snake.Snapshot, scale int) (image.Image, error) {
	g := snap.Grid
	if g.W <= 0 || g.H <= 0 {
		return nil, ErrEmptyGrid
	}
	width := g.W * BlockSize
	height := g.H * BlockSize

	dc := gg.NewContext(width, height)
	dc.SetRGB(0.08, 0.08, 0.1)
	dc.Clear()
	renderGrid(dc, width, height)

	if snap.Food != nil {
		dc.SetRGB(0.9, 0.2, 0.2)
		x, y := cellCenter(snap.Food.X, snap.Food.Y)
		dc.DrawCircle(x, y, BlockSize*0.35)
		dc.Fill()
	}

	for i := len(snap.Snake) - 1; i >= 0; i-- {
		c := snap.Snake[i]
		if i == 0 {
			dc.SetRGB(0.4, 1, 0.4)
		} else {
			dc.SetRGB(0.1, 0.65, 0.2)
		}
		dc.DrawRectangle(float64(c.X*BlockSize+1), float64(c.Y*BlockSize+1), BlockSize-2, BlockSize-2)
		dc.Fill()
	}

	if snap.State != snake.StatePlaying {
		// Dim the board outside play.
		dc.SetRGBA(0, 0, 0, 0.45)
		dc.DrawRectangle(0, 0, float64(width), float64(height))
		dc.Fill()
	}

	scale = min(max(scale, 1), MaxScale)
	if scale == 1 {
		return dc.Image(), nil
	}
	return imaging.Resize(dc.Image(), width*scale, height*scale, imaging.NearestNeighbor), nil
}

// WritePNG encodes the board of snap to w.
func WritePNG(w io.Writer, snap snake.Snapshot, scale int) error {
	img, err := Board(snap, scale)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

func renderGrid(dc *gg.Context, width, height int) {
	dc.SetRGB(0.18, 0.18, 0.22)
	dc.SetLineWidth(1)
	for x := 0; x <= width; x += BlockSize {
		dc.DrawLine(float64(x), 0, float64(x), float64(height))
		dc.Stroke()
	}
	for y := 0; y <= height; y += BlockSize {
		dc.DrawLine(0, float64(y), float64(width), float64(y))
		dc.Stroke()
	}
}

func cellCenter(x, y int) (float64, float64) {
	return float64(x*BlockSize) + BlockSize/2, float64(y*BlockSize) + BlockSize/2
}
