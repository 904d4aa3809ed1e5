// Package source holds the interface box and the three source-plane
// tensors that drive the TF/SF injector (spec.md §3, §4.3).
package source

import "github.com/UCL/isotropic-finite-difference-time-domain/internal/grid"

// FacePair is one of the six interface-box planes: a fixed grid index
// and whether injection is actually applied there.
type FacePair struct {
	Index int
	Apply bool
}

// InterfaceBox is the TF/SF boundary: six planes bounding the
// total-field region.
type InterfaceBox struct {
	I0, I1 FacePair
	J0, J1 FacePair
	K0, K1 FacePair
}

// Tensor is one of Isource/Jsource/Ksource: eight polarisation slots
// over a 2-D transverse grid, per spec.md §3 ("three complex tensors
// Isource, Jsource, Ksource of shapes 8 x (len_j) x (len_k) etc.").
//
// Slots 0..3 hold the two tangential E-component corrections (value
// at the box's low face, then its high face, repeated for the second
// tangential component); slots 4..7 mirror that layout for the two
// tangential H-component corrections. This packing keeps one slot per
// (component, face) pair reachable by direct index, matching how
// internal/tfsf addresses the tensor.
type Tensor struct {
	Dim1, Dim2 int
	slot       [8][]complex128 // each flattened Dim1*Dim2
}

// NewTensor allocates a zeroed tensor of the given transverse shape.
func NewTensor(dim1, dim2 int) *Tensor {
	t := &Tensor{Dim1: dim1, Dim2: dim2}
	for s := range t.slot {
		t.slot[s] = make([]complex128, dim1*dim2)
	}
	return t
}

func (t *Tensor) idx(a, b int) int { return a*t.Dim2 + b }

// At returns the value of the given polarisation slot at transverse
// position (a,b).
func (t *Tensor) At(slot, a, b int) complex128 {
	if a < 0 || a >= t.Dim1 || b < 0 || b >= t.Dim2 {
		return 0
	}
	return t.slot[slot][t.idx(a, b)]
}

// Set writes the value of the given polarisation slot at transverse
// position (a,b).
func (t *Tensor) Set(slot, a, b int, v complex128) {
	t.slot[slot][t.idx(a, b)] = v
}

// Planes holds the three source tensors addressed by the injector's
// three interface-box normal axes.
type Planes struct {
	Isource *Tensor // transverse shape (J,K), normal axis X
	Jsource *Tensor // transverse shape (I,K), normal axis Y
	Ksource *Tensor // transverse shape (I,J), normal axis Z
}

// TensorFor returns the source tensor addressing the face with the
// given normal axis.
func (p *Planes) TensorFor(normal grid.Axis) *Tensor {
	switch normal {
	case grid.AxisX:
		return p.Isource
	case grid.AxisY:
		return p.Jsource
	default:
		return p.Ksource
	}
}

// FacesFor returns the low/high FacePair of the interface box whose
// normal is the given axis.
func (b *InterfaceBox) FacesFor(normal grid.Axis) (low, high FacePair) {
	switch normal {
	case grid.AxisX:
		return b.I0, b.I1
	case grid.AxisY:
		return b.J0, b.J1
	default:
		return b.K0, b.K1
	}
}
