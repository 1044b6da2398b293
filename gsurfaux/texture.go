package gsurfaux

import (
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DefaultTextureURL is the brick wall texture mapped onto the surface when no other is given.
const DefaultTextureURL = "https://upload.wikimedia.org/wikipedia/commons/4/41/Brickwall_texture.jpg"

// maxTextureDim bounds texture sides, larger images are scaled down.
const maxTextureDim = 2048

// WhiteTexture returns the 1x1 opaque white texture used while the real texture loads.
func WhiteTexture() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	return img
}

// LoadTexture loads and decodes the image at src, which may be a file path or an http(s) URL.
// The result is converted to RGBA with its origin at (0,0) and scaled down if any side exceeds 2048 pixels.
func LoadTexture(ctx context.Context, src string) (*image.RGBA, error) {
	var rc io.ReadCloser
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
		if err != nil {
			return nil, err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetching texture: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetching texture %s: %s", src, resp.Status)
		}
		rc = resp.Body
	} else {
		fp, err := os.Open(src)
		if err != nil {
			return nil, err
		}
		rc = fp
	}
	defer rc.Close()
	return DecodeTexture(rc)
}

// DecodeTexture decodes a JPEG, PNG, GIF, BMP or WebP image into an RGBA texture.
func DecodeTexture(r io.Reader) (*image.RGBA, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding texture: %w", err)
	}
	return toRGBA(img), nil
}

func toRGBA(img image.Image) *image.RGBA {
	bb := img.Bounds()
	w, h := bb.Dx(), bb.Dy()
	if w > maxTextureDim || h > maxTextureDim {
		scale := float64(maxTextureDim) / float64(max(w, h))
		w = max(1, int(float64(w)*scale))
		h = max(1, int(float64(h)*scale))
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == bb.Dx() && h == bb.Dy() {
		draw.Draw(dst, dst.Bounds(), img, bb.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bb, draw.Src, nil)
	}
	return dst
}
