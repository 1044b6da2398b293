package gsurfaux

import (
	"io"
	"strconv"

	"github.com/soypat/gsurf"
)

// WriteOBJ writes the mesh as a Wavefront OBJ file with one vertex and texture coordinate per
// mesh vertex and a single polyline element spanning all of them, preserving the
// unbroken line strip topology of the mesh. It returns the number of bytes written.
func WriteOBJ(w io.Writer, mesh gsurf.Mesh) (int, error) {
	cw := &countWriter{w: w}
	var err error
	buf := make([]byte, 0, 2*flushThreshold)
	buf = append(buf, "# gsurf line strip\n"...)
	buf = append(buf, "o surface\n"...)
	for _, p := range mesh.Positions {
		buf = append(buf, "v "...)
		buf = appendFloats(buf, p.X, p.Y, p.Z)
		buf, err = flushBuf(cw, buf)
		if err != nil {
			return cw.n, err
		}
	}
	for _, t := range mesh.TexCoords {
		buf = append(buf, "vt "...)
		buf = appendFloats(buf, t.X, t.Y)
		buf, err = flushBuf(cw, buf)
		if err != nil {
			return cw.n, err
		}
	}
	if mesh.Len() > 0 {
		buf = append(buf, 'l')
		for i := 1; i <= mesh.Len(); i++ {
			// OBJ indices start at 1.
			buf = append(buf, ' ')
			buf = strconv.AppendInt(buf, int64(i), 10)
			buf = append(buf, '/')
			buf = strconv.AppendInt(buf, int64(i), 10)
			buf, err = flushBuf(cw, buf)
			if err != nil {
				return cw.n, err
			}
		}
		buf = append(buf, '\n')
	}
	_, err = cw.Write(buf)
	return cw.n, err
}

func appendFloats(buf []byte, vals ...float32) []byte {
	for i, v := range vals {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = strconv.AppendFloat(buf, float64(v), 'g', -1, 32)
	}
	return append(buf, '\n')
}

const flushThreshold = 4096

// flushBuf writes buf to w once it grows past flushThreshold and returns it emptied.
func flushBuf(w *countWriter, buf []byte) ([]byte, error) {
	if len(buf) < flushThreshold {
		return buf, nil
	}
	_, err := w.Write(buf)
	return buf[:0], err
}

type countWriter struct {
	w   io.Writer
	n   int
	err error
}

func (cw *countWriter) Write(b []byte) (int, error) {
	if cw.err != nil {
		return 0, cw.err
	}
	n, err := cw.w.Write(b)
	cw.n += n
	cw.err = err
	return n, err
}
