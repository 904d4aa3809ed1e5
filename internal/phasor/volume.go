package phasor

import "github.com/UCL/isotropic-finite-difference-time-domain/internal/grid"

// Bounds is a half-open interior index range [Lo,Hi) per axis,
// excluding the PML margin, per spec.md §4.5's volume family
// ("restricted to the non-PML interior").
type Bounds struct {
	KLo, KHi int
	JLo, JHi int
	ILo, IHi int
}

func (b Bounds) extents() (nk, nj, ni int) {
	return b.KHi - b.KLo, b.JHi - b.JLo, b.IHi - b.ILo
}

// VolumeAccumulator is the E/H volume phasor family from spec.md
// §4.5(1): full E_real/E_imag and H_real/H_imag arrays over the
// interior, one DFT run per field type since E and H samples are
// taken at different time offsets within a step.
type VolumeAccumulator struct {
	Bounds Bounds
	EDFT   *DFT
	HDFT   *DFT

	eValues, hValues []complex128
}

// NewVolumeAccumulator allocates an accumulator over the given
// interior bounds for the given extraction frequencies.
func NewVolumeAccumulator(bounds Bounds, omegas []float64, nsamples float64) *VolumeAccumulator {
	nk, nj, ni := bounds.extents()
	channels := nk * nj * ni * 3
	return &VolumeAccumulator{
		Bounds:  bounds,
		EDFT:    NewDFT(omegas, channels, nsamples),
		HDFT:    NewDFT(omegas, channels, nsamples),
		eValues: make([]complex128, channels),
		hValues: make([]complex128, channels),
	}
}

func (v *VolumeAccumulator) channelIndex(k, j, i, axis int) int {
	_, nj, ni := v.Bounds.extents()
	cell := ((k-v.Bounds.KLo)*nj+(j-v.Bounds.JLo))*ni + (i - v.Bounds.ILo)
	return cell*3 + axis
}

// AccumulateE samples the physical E field over the interior at time
// t = (n+1)*dt and feeds it into the E running sums.
func (v *VolumeAccumulator) AccumulateE(store *grid.Store, t float64) {
	v.sample(store, true, v.eValues)
	v.EDFT.Accumulate(t, v.eValues)
}

// AccumulateH samples the physical H field over the interior at time
// t = (n+0.5)*dt and feeds it into the H running sums.
func (v *VolumeAccumulator) AccumulateH(store *grid.Store, t float64) {
	v.sample(store, false, v.hValues)
	v.HDFT.Accumulate(t, v.hValues)
}

func (v *VolumeAccumulator) sample(store *grid.Store, electric bool, dst []complex128) {
	for k := v.Bounds.KLo; k < v.Bounds.KHi; k++ {
		for j := v.Bounds.JLo; j < v.Bounds.JHi; j++ {
			for i := v.Bounds.ILo; i < v.Bounds.IHi; i++ {
				dst[v.channelIndex(k, j, i, 0)] = complex(store.Physical(grid.AxisX, electric, k, j, i), 0)
				dst[v.channelIndex(k, j, i, 1)] = complex(store.Physical(grid.AxisY, electric, k, j, i), 0)
				dst[v.channelIndex(k, j, i, 2)] = complex(store.Physical(grid.AxisZ, electric, k, j, i), 0)
			}
		}
	}
}

// Reset zeros both the E and H running sums.
func (v *VolumeAccumulator) Reset() {
	v.EDFT.Reset()
	v.HDFT.Reset()
}

// At returns the accumulated complex phasor for the given axis,
// field type and grid position, at frequency index fi.
func (v *VolumeAccumulator) At(fi int, electric bool, axis grid.Axis, k, j, i int) complex128 {
	idx := v.channelIndex(k, j, i, int(axis))
	if electric {
		return v.EDFT.Sums[fi][idx]
	}
	return v.HDFT.Sums[fi][idx]
}
