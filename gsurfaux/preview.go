package gsurfaux

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype/truetype"
	"github.com/soypat/gsurf"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// captionSize is the caption font size in points at 72 DPI.
const captionSize = 13

// PreviewImage draws the mesh vertices seen from above (orthographic, +Z towards the viewer)
// onto an image of the given height, coloring each vertex by its height with conv.
// The image width preserves the aspect ratio of the mesh XY bounds. A non-empty caption is
// written in the top left corner. A nil conv chooses a gradient spanning the mesh height.
func PreviewImage(mesh gsurf.Mesh, picHeight int, caption string, conv func(float32) color.Color) (*image.RGBA, error) {
	if mesh.Len() == 0 {
		return nil, errors.New("empty mesh")
	} else if picHeight < 16 {
		return nil, errors.New("preview height too small")
	}
	bb := mesh.Bounds()
	sz := bb.Size()
	if sz.X <= 0 || sz.Y <= 0 {
		return nil, errors.New("mesh has degenerate XY bounds")
	}
	if conv == nil {
		conv = ColorConversionLinearGradient(max(sz.Z, 1e-3), lowColor, topColor)
	}
	const margin = 8
	pixPerUnit := float32(picHeight-2*margin) / sz.Y
	picWidth := int(pixPerUnit*sz.X) + 2*margin
	img := image.NewRGBA(image.Rect(0, 0, picWidth, picHeight))
	draw.Draw(img, img.Bounds(), image.Black, image.Point{}, draw.Src)

	zMid := (bb.Min.Z + bb.Max.Z) / 2
	for _, p := range mesh.Positions {
		px := margin + int((p.X-bb.Min.X)*pixPerUnit)
		py := picHeight - 1 - margin - int((p.Y-bb.Min.Y)*pixPerUnit) // Image y grows downwards.
		img.Set(px, py, conv(p.Z-zMid))
	}
	if caption != "" {
		err := drawCaption(img, caption)
		if err != nil {
			return nil, err
		}
	}
	return img, nil
}

func drawCaption(dst draw.Image, caption string) error {
	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return err
	}
	face := truetype.NewFace(ttf, &truetype.Options{Size: captionSize})
	defer face.Close()
	d := font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(6, 4+captionSize),
	}
	d.DrawString(caption)
	return nil
}
