// Package normalise implements the Normaliser from spec.md §4.8: it
// divides every accumulated phasor by the source-phasor normaliser
// for its extraction frequency and field type.
package normalise

// Apply computes sample * conj(norm) / |norm|^2, per spec.md §4.8.
// A zero norm (no source phasor recorded) leaves the sample
// untouched rather than dividing by zero.
func Apply(sample, norm complex128) complex128 {
	denom := real(norm)*real(norm) + imag(norm)*imag(norm)
	if denom == 0 {
		return sample
	}
	return sample * complex(real(norm), -imag(norm)) / complex(denom, 0)
}

// ApplyAll normalises every element of samples in place by the same
// norm, as the volume/surface/vertex/detector output stages do
// uniformly (spec.md §4.8, "Applied uniformly across volume, surface,
// vertex and detector outputs").
func ApplyAll(samples []complex128, norm complex128) {
	for i, s := range samples {
		samples[i] = Apply(s, norm)
	}
}

// Normaliser holds the per-frequency E-type and H-type source-phasor
// normalisers recorded over the same accumulation window as the field
// phasors they divide (spec.md §3's shared-window invariant).
type Normaliser struct {
	Enorm []complex128 // indexed by extraction frequency
	Hnorm []complex128
}

// NormaliseE applies the E-type normaliser for frequency index fi.
func (n *Normaliser) NormaliseE(fi int, sample complex128) complex128 {
	return Apply(sample, n.Enorm[fi])
}

// NormaliseH applies the H-type normaliser for frequency index fi.
func (n *Normaliser) NormaliseH(fi int, sample complex128) complex128 {
	return Apply(sample, n.Hnorm[fi])
}
