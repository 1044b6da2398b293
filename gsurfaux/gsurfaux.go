package gsurfaux

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"time"

	"github.com/soypat/gsurf"
)

type RenderConfig struct {
	OBJOutput io.Writer
	PNGOutput io.Writer
	// PNGHeight is the preview height in pixels. Zero selects 1080.
	PNGHeight int
	Silent    bool
}

// Render is an auxiliary function to generate the surface described by cfg and write it
// to the outputs set in rc. At least one output is required.
func Render(cfg gsurf.Config, rc RenderConfig) error {
	if rc.OBJOutput == nil && rc.PNGOutput == nil {
		return errors.New("Render requires output parameter in config")
	}
	log := func(args ...any) {
		if !rc.Silent {
			fmt.Println(args...)
		}
	}
	watch := stopwatch()
	mesh, err := gsurf.Generate(cfg)
	if err != nil {
		return fmt.Errorf("generating surface: %w", err)
	}
	log("generated", mesh.Len(), "vertices (", mesh.RadialVertices, "radial ) in", watch())

	if rc.OBJOutput != nil {
		watch = stopwatch()
		n, err := WriteOBJ(rc.OBJOutput, mesh)
		if err != nil {
			return fmt.Errorf("writing OBJ: %w", err)
		}
		log("wrote", outputName(rc.OBJOutput, "OBJ"), n, "bytes in", watch())
	}

	if rc.PNGOutput != nil {
		watch = stopwatch()
		height := rc.PNGHeight
		if height == 0 {
			height = 1080
		}
		img, err := PreviewImage(mesh, height, Caption(cfg), nil)
		if err != nil {
			return fmt.Errorf("rendering preview: %w", err)
		}
		err = png.Encode(rc.PNGOutput, img)
		if err != nil {
			return fmt.Errorf("encoding PNG: %w", err)
		}
		log("wrote", outputName(rc.PNGOutput, "PNG"), "in", watch())
	}
	return nil
}

type UIConfig struct {
	Width, Height int
	// Texture is a file path or http(s) URL of the surface texture.
	// If empty [DefaultTextureURL] is used.
	Texture string
	// Context cancels the UI loop when done. May be nil.
	Context context.Context
}

// UI opens a window showing the surface described by cfg. Dragging with the left mouse
// button rotates the view, A/D shift and W/S scale the texture and the arrow keys move the light.
// UI must be called from the main thread (see [runtime.LockOSThread]) and blocks until the window is closed.
func UI(cfg gsurf.Config, uicfg UIConfig) error {
	if uicfg.Width <= 0 || uicfg.Height <= 0 {
		return errors.New("UI requires positive window dimensions")
	}
	err := cfg.Validate()
	if err != nil {
		return err
	}
	return ui(cfg, uicfg)
}

// Caption summarizes the surface parameters in a single line.
func Caption(cfg gsurf.Config) string {
	return fmt.Sprintf("z=%g*cos(%g*pi*r/%g)  r=0..%g step %.4g  B=0..%.4g step %.4g",
		cfg.A, cfg.N, cfg.R, cfg.RMax, cfg.RadialStep, cfg.AngleMax, cfg.AngularStep)
}

func outputName(w io.Writer, fallback string) string {
	if fp, ok := w.(*os.File); ok {
		return fp.Name()
	}
	return fallback
}

func stopwatch() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}
