package phasor

import "github.com/UCL/isotropic-finite-difference-time-domain/internal/interp"

// Facet is one triangle of the cuboid surface triangulation, naming
// three vertex indices into the owning SurfaceAccumulator's Vertices.
type Facet struct {
	A, B, C int
}

// SurfaceAccumulator is the cuboid-surface phasor family from
// spec.md §4.5(2): accumulates all six physical components at every
// vertex of a concise triangulation of the user's cuboid. It reuses
// VertexAccumulator's sampling logic since the two families differ
// only in which vertices are visited and whether a triangulation is
// carried alongside for export.
type SurfaceAccumulator struct {
	*VertexAccumulator
	Facets []Facet
}

// NewSurfaceAccumulator allocates an accumulator over the
// triangulated cuboid's vertices, sampling all six components.
func NewSurfaceAccumulator(vertices []Vertex, facets []Facet, it *interp.Interpolator, omegas []float64, nsamples float64) *SurfaceAccumulator {
	fullMask := ComponentMask{Ex: true, Ey: true, Ez: true, Hx: true, Hy: true, Hz: true}
	return &SurfaceAccumulator{
		VertexAccumulator: NewVertexAccumulator(vertices, fullMask, it, omegas, nsamples),
		Facets:            facets,
	}
}
