package main

import (
	"flag"
	"log"
	"math"
	"os"
	"runtime"

	"github.com/soypat/gsurf"
	"github.com/soypat/gsurf/gsurfaux"
)

func init() {
	runtime.LockOSThread() // In case we wish to use OpenGL.
}

func main() {
	def := gsurf.DefaultConfig()
	var (
		flagR       = flag.Float64("R", def.R, "radius unit dividing r in the height term")
		flagA       = flag.Float64("a", def.A, "height amplitude")
		flagN       = flag.Float64("n", def.N, "height frequency multiplier")
		flagRMax    = flag.Float64("rmax", def.RMax, "inclusive radial bound")
		flagRDiv    = flag.Float64("rdiv", 8, "radial step is pi/rdiv")
		flagBDiv    = flag.Float64("bdiv", 700, "angular step is pi/bdiv")
		flagUI      = flag.Bool("ui", false, "open interactive viewer")
		flagWidth   = flag.Int("width", 800, "viewer window width")
		flagHeight  = flag.Int("height", 600, "viewer window height")
		flagTexture = flag.String("tex", gsurfaux.DefaultTextureURL, "texture file path or URL for viewer")
		flagOBJ     = flag.String("obj", "", "write line strip to Wavefront OBJ file")
		flagPNG     = flag.String("png", "", "write top-down preview to PNG file")
		flagPNGRes  = flag.Int("pngres", 1080, "PNG preview height in pixels")
		flagSilent  = flag.Bool("silent", false, "do not log timings")
	)
	flag.Parse()
	cfg := gsurf.Config{
		R:           *flagR,
		A:           *flagA,
		N:           *flagN,
		RMax:        *flagRMax,
		AngleMax:    def.AngleMax,
		RadialStep:  math.Pi / *flagRDiv,
		AngularStep: math.Pi / *flagBDiv,
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid surface parameters: ", err)
	}

	if *flagOBJ != "" || *flagPNG != "" {
		rc := gsurfaux.RenderConfig{PNGHeight: *flagPNGRes, Silent: *flagSilent}
		if *flagOBJ != "" {
			fp, err := os.Create(*flagOBJ)
			if err != nil {
				log.Fatal(err)
			}
			defer fp.Close()
			rc.OBJOutput = fp
		}
		if *flagPNG != "" {
			fp, err := os.Create(*flagPNG)
			if err != nil {
				log.Fatal(err)
			}
			defer fp.Close()
			rc.PNGOutput = fp
		}
		err := gsurfaux.Render(cfg, rc)
		if err != nil {
			log.Fatal("rendering:", err)
		}
	} else if !*flagUI {
		flag.Usage()
		os.Exit(2)
	}

	if *flagUI {
		err := gsurfaux.UI(cfg, gsurfaux.UIConfig{
			Width:   *flagWidth,
			Height:  *flagHeight,
			Texture: *flagTexture,
		})
		if err != nil {
			log.Fatal("UI:", err)
		}
	}
}
