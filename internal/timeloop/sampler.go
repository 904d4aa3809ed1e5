package timeloop

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/UCL/isotropic-finite-difference-time-domain/internal/grid"
)

// SampleVertex names one grid vertex the field sampler records.
type SampleVertex struct {
	K, J, I int
}

// FieldSampler implements the optional time-domain field sampling
// ("campssample") supplemented from tdms/src/interpolate_Efield.cpp:
// a fixed list of grid vertices is recorded every step into an
// in-memory buffer, which is flushed to the configured directory and
// emptied whenever (tind+1) is a multiple of Stride. The stride is
// whatever the caller passes to NewFieldSampler.
type FieldSampler struct {
	Vertices []SampleVertex
	Stride   int
	Dir      string

	buffer    [][6]float64 // Vertices x 6 physical components, per buffered step
	bufTind   []int
	nextFlush int
}

// NewFieldSampler allocates a sampler over the given vertices,
// flushing every `stride` steps into `dir`.
func NewFieldSampler(vertices []SampleVertex, stride int, dir string) *FieldSampler {
	if stride < 1 {
		stride = 1
	}
	return &FieldSampler{Vertices: vertices, Stride: stride, Dir: dir}
}

// Sample records one step's physical field at every configured vertex
// and flushes to disk once Stride steps have accumulated.
func (fs *FieldSampler) Sample(store *grid.Store, tind int) error {
	row := make([][6]float64, len(fs.Vertices))
	for vi, v := range fs.Vertices {
		row[vi] = [6]float64{
			store.Physical(grid.AxisX, true, v.K, v.J, v.I),
			store.Physical(grid.AxisY, true, v.K, v.J, v.I),
			store.Physical(grid.AxisZ, true, v.K, v.J, v.I),
			store.Physical(grid.AxisX, false, v.K, v.J, v.I),
			store.Physical(grid.AxisY, false, v.K, v.J, v.I),
			store.Physical(grid.AxisZ, false, v.K, v.J, v.I),
		}
	}
	fs.buffer = append(fs.buffer, row...)
	fs.bufTind = append(fs.bufTind, tind)

	if (tind+1)%fs.Stride == 0 {
		return fs.flush()
	}
	return nil
}

func (fs *FieldSampler) flush() error {
	if fs.Dir == "" || len(fs.bufTind) == 0 {
		fs.buffer = fs.buffer[:0]
		fs.bufTind = fs.bufTind[:0]
		return nil
	}
	if err := os.MkdirAll(fs.Dir, 0o755); err != nil {
		return fmt.Errorf("create tdfdir %q: %w", fs.Dir, err)
	}
	path := filepath.Join(fs.Dir, fmt.Sprintf("sample_%06d.txt", fs.nextFlush))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	defer f.Close()

	nv := len(fs.Vertices)
	for step, tind := range fs.bufTind {
		for vi := 0; vi < nv; vi++ {
			c := fs.buffer[step*nv+vi]
			fmt.Fprintf(f, "%d %d %v %v %v %v %v %v\n", tind, vi, c[0], c[1], c[2], c[3], c[4], c[5])
		}
	}

	fs.nextFlush++
	fs.buffer = fs.buffer[:0]
	fs.bufTind = fs.bufTind[:0]
	return nil
}
