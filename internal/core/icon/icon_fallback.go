//go:build !windows

package icon

import (
	"hash/fnv"
	"image"
	"image/draw"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".tif": true, ".tiff": true, ".webp": true,
}

var folderTile = [3]uint8{0xd9, 0xb4, 0x5b}

var tilePalette = [][3]uint8{
	{0x4f, 0x6d, 0x8f},
	{0x8f, 0x4f, 0x55},
	{0x55, 0x8f, 0x4f},
	{0x8a, 0x6d, 0xa8},
	{0xa8, 0x8a, 0x4a},
	{0x4a, 0x8f, 0x8a},
	{0x99, 0x5f, 0x85},
	{0x6d, 0x6d, 0x78},
}

// thumbResolver is the portable tier: image files become 48x48 thumbnails,
// everything else becomes a deterministic tile keyed by extension, so the
// same path always yields the same bytes.
type thumbResolver struct{}

func newPlatformResolver() Resolver { return thumbResolver{} }

func (thumbResolver) Resolve(path string) (Bitmap, error) {
	st, err := os.Stat(path)
	if err != nil {
		return Bitmap{}, platformErr("stat", err)
	}
	if st.IsDir() {
		return tile(folderTile), nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	if imageExts[ext] {
		if b, err := decodeThumb(path); err == nil {
			return b, nil
		}
		// Undecodable image files fall back to the extension tile.
	}
	return tile(colorForExt(ext)), nil
}

func decodeThumb(path string) (Bitmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return Bitmap{}, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return Bitmap{}, err
	}

	thumb := resize.Thumbnail(TileSize, TileSize, src, resize.Lanczos3)
	canvas := image.NewRGBA(image.Rect(0, 0, TileSize, TileSize))
	tb := thumb.Bounds()
	ox := (TileSize - tb.Dx()) / 2
	oy := (TileSize - tb.Dy()) / 2
	draw.Draw(canvas, image.Rect(ox, oy, ox+tb.Dx(), oy+tb.Dy()), thumb, tb.Min, draw.Src)
	return fromRGBA(canvas), nil
}

func colorForExt(ext string) [3]uint8 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(ext))
	return tilePalette[h.Sum32()%uint32(len(tilePalette))]
}

func tile(c [3]uint8) Bitmap {
	pix := make([]byte, TileSize*TileSize*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = c[0], c[1], c[2], 0xff
	}
	return Bitmap{Width: TileSize, Height: TileSize, Pix: pix}
}
