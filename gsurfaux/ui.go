//go:build !tinygo && cgo

package gsurfaux

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"time"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/glgl/v4.6-core/glgl"
	"github.com/soypat/gsurf"
)

const vertexSrc = `#version 460
in vec3 vertex;
in vec3 normal;
in vec2 iTexCoord;

uniform mat4 ModelViewProjectionMatrix;
uniform mat4 normalMatrix;

out vec3 vNormal;
out vec3 vPos;
out vec2 vTexCoord;

void main() {
    vNormal = normalize(mat3(normalMatrix) * normal);
    vPos = vertex;
    vTexCoord = iTexCoord;
    gl_Position = ModelViewProjectionMatrix * vec4(vertex, 1.0);
}
` + "\x00"

const fragmentSrc = `#version 460
in vec3 vNormal;
in vec3 vPos;
in vec2 vTexCoord;
out vec4 fragColor;

uniform vec4 color;
uniform vec3 ambientColor;
uniform vec3 diffuseColor;
uniform vec3 specularColor;
uniform float shininess;
uniform vec3 lightPosition;
uniform float u_scale;
uniform float u_offset;
uniform sampler2D u_texture;

void main() {
    vec3 N = normalize(vNormal);
    vec3 L = normalize(lightPosition - vPos);
    float lambert = max(dot(N, L), 0.0);
    float spec = 0.0;
    if (lambert > 0.0) {
        vec3 R = reflect(-L, N);
        vec3 V = normalize(-vPos);
        spec = pow(max(dot(R, V), 0.0), shininess);
    }
    vec3 light = 0.1*ambientColor + 0.5*lambert*diffuseColor + 0.2*spec*specularColor;
    // Offset moves the texture along u.
    vec2 uv = (vTexCoord + vec2(u_offset, 0.0)) * u_scale;
    vec4 tex = texture(u_texture, uv);
    fragColor = vec4(tex.rgb * color.rgb * light, color.a);
}
` + "\x00"

// surfaceProgram holds the GL objects of the surface viewer.
type surfaceProgram struct {
	prog     glgl.Program
	vao      uint32
	vboPos   uint32
	vboTex   uint32
	tex      uint32
	count    int32
	uniforms map[string]int32
	// scratch buffers for uploads.
	pos32 []float32
	tex32 []float32
}

var uniformNames = []string{
	"ModelViewProjectionMatrix", "normalMatrix", "color",
	"ambientColor", "diffuseColor", "specularColor", "shininess",
	"lightPosition", "u_scale", "u_offset", "u_texture",
}

func ui(cfg gsurf.Config, uicfg UIConfig) error {
	window, term, err := startGLFW(uicfg.Width, uicfg.Height)
	if err != nil {
		return err
	}
	defer term()
	prog, err := glgl.CompileProgram(glgl.ShaderSource{
		Vertex:   vertexSrc,
		Fragment: fragmentSrc,
	})
	if err != nil {
		return fmt.Errorf("could not initialize the graphics context: %w", err)
	}
	sp := &surfaceProgram{prog: prog, uniforms: make(map[string]int32)}
	prog.Bind()
	for _, name := range uniformNames {
		loc, err := prog.UniformLocation(name + "\x00")
		if err != nil {
			return fmt.Errorf("uniform %s: %w", name, err)
		}
		sp.uniforms[name] = loc
	}
	err = sp.initBuffers()
	if err != nil {
		return err
	}
	var store MeshStore
	mesh, err := store.Regenerate(cfg)
	if err != nil {
		return err
	}
	sp.upload(*mesh)

	sp.setTexture(WhiteTexture())
	ctx := uicfg.Context
	if ctx == nil {
		ctx = context.Background()
	}
	texSrc := uicfg.Texture
	if texSrc == "" {
		texSrc = DefaultTextureURL
	}
	var loaded *image.RGBA
	texCh := make(chan *image.RGBA, 1)
	loading := false
	startLoad := func() {
		if loading {
			return
		}
		loading = true
		go func() {
			img, err := LoadTexture(ctx, texSrc)
			if err != nil {
				fmt.Println("texture load failed, using white:", err)
				img = nil
			}
			texCh <- img
		}()
	}
	startLoad()

	controls := NewControls()
	width, height := window.GetSize()
	trackball := NewTrackball(width, height)
	refresh := true
	flagEdit := func() { refresh = true }
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Release {
			return
		}
		act := controls.HandleKey(glfwKey(key))
		if act.Has(ActionRegenerate) {
			mesh, err := store.Regenerate(cfg)
			if err != nil {
				fmt.Println("regenerating surface:", err)
			} else {
				sp.upload(*mesh)
			}
		}
		if act.Has(ActionReloadTexture) {
			if loaded != nil {
				sp.setTexture(loaded)
			} else {
				startLoad()
			}
		}
		if act.Has(ActionRedraw) {
			flagEdit()
		}
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		if action == glfw.Press {
			trackball.Press(w.GetCursorPos())
		} else if action == glfw.Release {
			trackball.Release()
		}
	})
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if trackball.Drag(xpos, ypos) {
			flagEdit()
		}
	})
	window.SetSizeCallback(func(w *glfw.Window, width, height int) {
		trackball.Resize(width, height)
		flagEdit()
	})

	gl.Enable(gl.DEPTH_TEST)
	err = glgl.Err()
	if err != nil {
		return err
	}
	for !window.ShouldClose() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case img := <-texCh:
			loading = false
			if img != nil {
				loaded = img
				sp.setTexture(img)
			}
			flagEdit()
		default:
		}
		if refresh {
			refresh = false
			fbw, fbh := window.GetFramebufferSize()
			sp.draw(fbw, fbh, trackball.ViewMatrix(), controls)
			window.SwapBuffers()
		}
		// Limit frame rate.
		time.Sleep(time.Second / 60)
		glfw.PollEvents()
	}
	return nil
}

func (sp *surfaceProgram) initBuffers() error {
	gl.GenVertexArrays(1, &sp.vao)
	gl.BindVertexArray(sp.vao)
	gl.GenBuffers(1, &sp.vboPos)
	gl.GenBuffers(1, &sp.vboTex)
	vertexAttrib, err := sp.prog.AttribLocation("vertex\x00")
	if err != nil {
		return err
	}
	normalAttrib, err := sp.prog.AttribLocation("normal\x00")
	if err != nil {
		return err
	}
	texAttrib, err := sp.prog.AttribLocation("iTexCoord\x00")
	if err != nil {
		return err
	}
	// Normals are read from the position buffer: a vertex's normal is its position.
	gl.BindBuffer(gl.ARRAY_BUFFER, sp.vboPos)
	gl.VertexAttribPointer(vertexAttrib, 3, gl.FLOAT, false, 0, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(vertexAttrib)
	gl.VertexAttribPointer(normalAttrib, 3, gl.FLOAT, false, 0, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(normalAttrib)

	gl.BindBuffer(gl.ARRAY_BUFFER, sp.vboTex)
	gl.VertexAttribPointer(texAttrib, 2, gl.FLOAT, false, 0, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(texAttrib)

	gl.GenTextures(1, &sp.tex)
	return glgl.Err()
}

// upload replaces the contents of the vertex buffers with mesh.
func (sp *surfaceProgram) upload(mesh gsurf.Mesh) {
	sp.pos32 = mesh.AppendPositions32(sp.pos32[:0])
	sp.tex32 = mesh.AppendTexCoords32(sp.tex32[:0])
	if len(sp.pos32) == 0 {
		sp.count = 0
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, sp.vboPos)
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(sp.pos32), gl.Ptr(sp.pos32), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, sp.vboTex)
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(sp.tex32), gl.Ptr(sp.tex32), gl.STATIC_DRAW)
	sp.count = int32(len(sp.pos32) / 3)
}

func (sp *surfaceProgram) setTexture(img *image.RGBA) {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, sp.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	sz := img.Bounds().Size()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(sz.X), int32(sz.Y), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
}

func (sp *surfaceProgram) draw(width, height int, view mgl32.Mat4, controls *Controls) {
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	sp.prog.Bind()

	aspect := float32(width) / float32(max(height, 1))
	projection := mgl32.Perspective(math.Pi/2, aspect, 1, 2000)
	rotateToPointZero := mgl32.HomogRotate3DZ(0.7)
	translateToPointZero := mgl32.Translate3D(0, 0, -10)
	modelView := translateToPointZero.Mul4(rotateToPointZero.Mul4(view))
	normalMatrix := modelView.Inv().Transpose()
	mvp := projection.Mul4(modelView)

	u := sp.uniforms
	gl.UniformMatrix4fv(u["ModelViewProjectionMatrix"], 1, false, &mvp[0])
	gl.UniformMatrix4fv(u["normalMatrix"], 1, false, &normalMatrix[0])
	light := controls.LightPosition()
	gl.Uniform3f(u["lightPosition"], light.X, light.Y, light.Z)
	gl.Uniform1f(u["shininess"], 1.0)
	gl.Uniform3f(u["ambientColor"], 0.6, 0, 0.9)
	gl.Uniform3f(u["diffuseColor"], 1.6, 1.0, 0.5)
	gl.Uniform3f(u["specularColor"], 1.0, 1.0, 2.0)
	gl.Uniform4f(u["color"], 1, 1, 0, 1)
	gl.Uniform1f(u["u_scale"], controls.TexScale)
	gl.Uniform1f(u["u_offset"], controls.TexOffset)
	gl.Uniform1i(u["u_texture"], 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, sp.tex)
	gl.BindVertexArray(sp.vao)
	// The whole mesh is a single strip, consecutive lines are joined.
	gl.DrawArrays(gl.LINE_STRIP, 0, sp.count)
}

func glfwKey(k glfw.Key) Key {
	switch k {
	case glfw.KeyA:
		return KeyA
	case glfw.KeyD:
		return KeyD
	case glfw.KeyW:
		return KeyW
	case glfw.KeyS:
		return KeyS
	case glfw.KeyLeft:
		return KeyLeft
	case glfw.KeyRight:
		return KeyRight
	}
	return KeyUnknown
}

func startGLFW(width, height int) (window *glfw.Window, term func(), err error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	window, err = glfw.CreateWindow(width, height, "gsurf surface viewer", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, errors.New("could not get a graphics context: " + err.Error())
	}
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	return window, glfw.Terminate, nil
}
