// Package tfsf implements the TF/SF Source Injector from spec.md
// §4.3: after each E (or H) update pass, it adds the rescaled
// source-plane value on the six faces of the interface box.
package tfsf

import (
	"github.com/UCL/isotropic-finite-difference-time-domain/internal/grid"
	"github.com/UCL/isotropic-finite-difference-time-domain/internal/source"
)

// speedOfLight is c, used only for the K-plane's Δz/(2c) envelope
// offset (spec.md §9 open question (c): "likely a deliberate
// accounting for the half-cell offset between E and H", decided to
// apply to the K-plane injector only; see DESIGN.md).
const speedOfLight = 299792458.0

// faceComponents names the two split components tangential to a box
// face with the given normal axis: the ones whose DerivativeAxis is
// that normal, since only those are discontinuous across a TF/SF
// boundary crossing the face (the injector adds the correction where
// the spatial derivative "sees across" the box boundary).
func faceComponents(normal grid.Axis, electric bool) [2]grid.Component {
	switch normal {
	case grid.AxisX:
		if electric {
			return [2]grid.Component{grid.Eyx, grid.Ezx}
		}
		return [2]grid.Component{grid.Hyx, grid.Hzx}
	case grid.AxisY:
		if electric {
			return [2]grid.Component{grid.Exy, grid.Ezy}
		}
		return [2]grid.Component{grid.Hxy, grid.Hzy}
	default:
		if electric {
			return [2]grid.Component{grid.Exz, grid.Eyz}
		}
		return [2]grid.Component{grid.Hxz, grid.Hyz}
	}
}

// BroadbandEi supplies the optional time-domain incident-field
// correction added to the H update at the K0 plane in addition to
// the narrowband Ksource injection (spec.md §4.3, supplemented from
// tdms/src/iterator.cpp). Returns the two corrections for the K-plane
// tangential H components (Hxz, Hyz) at the given time index; a nil
// func disables it.
type BroadbandEi func(tind int) (hxz, hyz complex128)

// Injector applies the TF/SF correction on the six interface-box
// faces after each E or H update pass.
type Injector struct {
	Box    *source.InterfaceBox
	Planes *source.Planes
	Mode   Mode
	Omega  float64
	T0     float64
	Hwhm   float64
	Dz     float64

	Ei BroadbandEi
}

// envelopeTime returns the time argument for the given face's
// envelope evaluation, applying the K-plane's Δz/(2c) offset.
func (inj *Injector) envelopeTime(t float64, normal grid.Axis) float64 {
	if normal == grid.AxisZ {
		return t - inj.Dz/(2*speedOfLight)
	}
	return t
}

// CorrectE applies the E-side TF/SF correction on all six faces,
// after the E update pass and before the H update pass (spec.md §2's
// control-flow ordering).
func (inj *Injector) CorrectE(store *grid.Store, tind int, dt float64) error {
	t := float64(tind+1) * dt
	return inj.correctAxes(store, t, true)
}

// CorrectH applies the H-side TF/SF correction, including the
// optional broadband Ei addition at K0.
func (inj *Injector) CorrectH(store *grid.Store, tind int, dt float64) error {
	t := (float64(tind) + 0.5) * dt
	if err := inj.correctAxes(store, t, false); err != nil {
		return err
	}
	if inj.Ei == nil {
		return nil
	}
	hxz, hyz := inj.Ei(tind)
	comps := faceComponents(grid.AxisZ, false)
	low, _ := inj.Box.FacesFor(grid.AxisZ)
	if !low.Apply {
		return nil
	}
	addAtFace(store, comps[0], grid.AxisZ, low.Index, hxz)
	addAtFace(store, comps[1], grid.AxisZ, low.Index, hyz)
	return nil
}

func (inj *Injector) correctAxes(store *grid.Store, t float64, electric bool) error {
	for _, normal := range [3]grid.Axis{grid.AxisX, grid.AxisY, grid.AxisZ} {
		if err := inj.correctFace(store, normal, t, electric); err != nil {
			return err
		}
	}
	return nil
}

// correctFace adds the rescaled source-plane value, modulated by the
// temporal envelope, to the two tangential split components on the
// low and high planes of the given normal axis.
func (inj *Injector) correctFace(store *grid.Store, normal grid.Axis, t float64, electric bool) error {
	low, high := inj.Box.FacesFor(normal)
	if !low.Apply && !high.Apply {
		return nil
	}
	tensor := inj.Planes.TensorFor(normal)
	comps := faceComponents(normal, electric)
	envT := inj.envelopeTime(t, normal)
	env := Envelope(inj.Mode, envT, inj.Omega, inj.T0, inj.Hwhm)

	for compIdx, comp := range comps {
		// Slots 0..3 hold the two E-component corrections, 4..7 the
		// two H-component corrections; within each pair, even/odd
		// slots are the low/high face value.
		baseSlot := compIdx * 2
		if !electric {
			baseSlot += 4
		}
		if low.Apply {
			applyFaceCorrection(store, tensor, comp, normal, low.Index, baseSlot, env, 1)
		}
		if high.Apply {
			applyFaceCorrection(store, tensor, comp, normal, high.Index, baseSlot+1, env, -1)
		}
	}
	return nil
}

func applyFaceCorrection(store *grid.Store, tensor *source.Tensor, comp grid.Component, normal grid.Axis, faceIndex, slot int, env complex128, sign float64) {
	field := fieldOf(store, comp)
	dim1, dim2 := tensor.Dim1, tensor.Dim2
	for a := 0; a < dim1; a++ {
		for b := 0; b < dim2; b++ {
			src := tensor.At(slot, a, b)
			correction := sign * real(src*env)
			addAtFaceTransverse(field, normal, faceIndex, a, b, correction)
		}
	}
}

func addAtFace(store *grid.Store, comp grid.Component, normal grid.Axis, faceIndex int, v complex128) {
	field := fieldOf(store, comp)
	// Broadband Ei is added uniformly across the K0 plane.
	for a := 0; a < field.NI; a++ {
		for b := 0; b < field.NJ; b++ {
			addAtFaceTransverse(field, normal, faceIndex, a, b, real(v))
		}
	}
}

func addAtFaceTransverse(field *grid.Field3D, normal grid.Axis, faceIndex, a, b int, delta float64) {
	var k, j, i int
	switch normal {
	case grid.AxisX:
		i = faceIndex
		j, k = a, b
	case grid.AxisY:
		j = faceIndex
		i, k = a, b
	default:
		k = faceIndex
		i, j = a, b
	}
	if k < 0 || k >= field.NK || j < 0 || j >= field.NJ || i < 0 || i >= field.NI {
		return
	}
	field.Add(k, j, i, delta)
}

func fieldOf(store *grid.Store, c grid.Component) *grid.Field3D {
	if c.IsElectric() {
		return store.E[c]
	}
	return store.H[c]
}
