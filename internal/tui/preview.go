package tui

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nfnt/resize"

	"folderdock/internal/core/icon"
)

const previewSize = 16

// halfBlocks renders a bitmap as rows of half block cells, two vertical
// pixels per terminal row. Invalid bitmaps render as nothing.
func halfBlocks(b icon.Bitmap, size int) string {
	if size <= 0 || b.Width == 0 || b.Height == 0 || b.Validate() != nil {
		return ""
	}

	small, ok := resize.Resize(uint(size), uint(size), b.ToRGBA(), resize.NearestNeighbor).(*image.RGBA)
	if !ok {
		return ""
	}

	rows := make([]string, 0, size/2)
	for y := 0; y+1 < size; y += 2 {
		var row strings.Builder
		for x := 0; x < size; x++ {
			top, topOK := pixelColor(small, x, y)
			bottom, bottomOK := pixelColor(small, x, y+1)
			switch {
			case topOK && bottomOK:
				row.WriteString(lipgloss.NewStyle().Foreground(top).Background(bottom).Render("▀"))
			case topOK:
				row.WriteString(lipgloss.NewStyle().Foreground(top).Render("▀"))
			case bottomOK:
				row.WriteString(lipgloss.NewStyle().Foreground(bottom).Render("▄"))
			default:
				row.WriteString(" ")
			}
		}
		rows = append(rows, row.String())
	}
	return strings.Join(rows, "\n")
}

// pixelColor reports the cell color, treating mostly transparent pixels as
// absent.
func pixelColor(img *image.RGBA, x, y int) (lipgloss.Color, bool) {
	o := img.PixOffset(x, y)
	r, g, b, a := img.Pix[o], img.Pix[o+1], img.Pix[o+2], img.Pix[o+3]
	if a < 128 {
		return "", false
	}
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b)), true
}
