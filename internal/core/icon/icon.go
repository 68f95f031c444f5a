// Package icon resolves filesystem paths into portable RGBA bitmaps.
package icon

import (
	"errors"
	"fmt"
	"image"
)

// TileSize is the edge length of resolved icons, matching the platform
// "extra large" shell icon size.
const TileSize = 48

// Bitmap is a decoded icon: RGBA8, row-major, top-down.
type Bitmap struct {
	Width  uint
	Height uint
	Pix    []byte
}

func (b Bitmap) Validate() error {
	want := b.Width * b.Height * 4
	if uint(len(b.Pix)) != want {
		return fmt.Errorf("bitmap pix length %d, want %d (%dx%dx4)", len(b.Pix), want, b.Width, b.Height)
	}
	return nil
}

// ToRGBA copies the bitmap into a stdlib image for further scaling or
// encoding. The returned image shares no memory with the bitmap.
func (b Bitmap) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(b.Width), int(b.Height)))
	copy(img.Pix, b.Pix)
	return img
}

// Average returns the mean color of all pixels with nonzero alpha.
func (b Bitmap) Average() (r, g, bl uint8) {
	var rs, gs, bs, n uint64
	for i := 0; i+3 < len(b.Pix); i += 4 {
		if b.Pix[i+3] == 0 {
			continue
		}
		rs += uint64(b.Pix[i])
		gs += uint64(b.Pix[i+1])
		bs += uint64(b.Pix[i+2])
		n++
	}
	if n == 0 {
		return 0, 0, 0
	}
	return uint8(rs / n), uint8(gs / n), uint8(bs / n)
}

// ErrIconUnavailable reports that the platform shell has no icon for the
// path. Any other resolution failure is a *PlatformError.
var ErrIconUnavailable = errors.New("no icon available for path")

// PlatformError wraps a failed OS call during icon resolution. Both it and
// ErrIconUnavailable are recoverable per path, never fatal to the process.
type PlatformError struct {
	Call string
	Err  error
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("icon: %s failed: %v", e.Call, e.Err)
}

func (e *PlatformError) Unwrap() error { return e.Err }

func platformErr(call string, err error) error {
	return &PlatformError{Call: call, Err: err}
}

// Resolver turns a path into its display bitmap. Implementations hold no
// handles between calls and are safe to use concurrently for distinct paths.
// Results are not cached; resolving twice performs two full lookups.
type Resolver interface {
	Resolve(path string) (Bitmap, error)
}

// New returns the resolver for the current platform.
func New() Resolver {
	return newPlatformResolver()
}

// fromRGBA flattens a stdlib image into a Bitmap, dropping stride padding.
func fromRGBA(img *image.RGBA) Bitmap {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pix := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		o := img.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		copy(pix[y*w*4:], img.Pix[o:o+w*4])
	}
	return Bitmap{Width: uint(w), Height: uint(h), Pix: pix}
}

// bgraToRGBA swaps the blue and red byte of every pixel in place.
func bgraToRGBA(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+2] = pix[i+2], pix[i]
	}
}
