// Package config loads and writes the input/output bundle described
// in spec.md §6, restricted to the fields internal/timeloop actually
// consumes or produces. HDF5/MAT container IO, grid-file parsing and
// mesh generation stay external collaborators behind the Loader and
// Writer interfaces; the YAML-backed implementation here is a thin
// stand-in that keeps the module runnable end to end.
package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/UCL/isotropic-finite-difference-time-domain/internal/fdtderr"
)

// Grid mirrors spec.md §3's grid dimensions and cell spacings.
type Grid struct {
	ITot int     `yaml:"i_tot"`
	JTot int     `yaml:"j_tot"`
	KTot int     `yaml:"k_tot"`
	Dx   float64 `yaml:"dx"`
	Dy   float64 `yaml:"dy"`
	Dz   float64 `yaml:"dz"`
}

// Interface mirrors spec.md §3's interface box: six planes, each an
// index and an apply flag.
type Interface struct {
	I0 Face `yaml:"i0"`
	I1 Face `yaml:"i1"`
	J0 Face `yaml:"j0"`
	J1 Face `yaml:"j1"`
	K0 Face `yaml:"k0"`
	K1 Face `yaml:"k1"`
}

// Face is one plane of the interface box.
type Face struct {
	Index int  `yaml:"index"`
	Apply bool `yaml:"apply"`
}

// Source describes the TF/SF source timing and temporal envelope
// parameters from spec.md §6.
type Source struct {
	Omega      float64 `yaml:"omega"`
	T0         float64 `yaml:"t0"`
	Hwhm       float64 `yaml:"hwhm"`
	SourceMode string  `yaml:"sourcemode"` // "pulsed" | "steadystate"
}

// Run describes the time-loop sizing and run-mode flags from spec.md
// §6.
type Run struct {
	Nt         int     `yaml:"nt"`
	Dt         float64 `yaml:"dt"`
	StartTind  int     `yaml:"start_tind"`
	RunMode    string  `yaml:"runmode"`   // "complete" | "analyse"
	Dimension  string  `yaml:"dimension"` // "3" | "TE" | "TM"
	UsePSTD    bool    `yaml:"use_pstd"`
	UseBLI     bool    `yaml:"use_bli"`
	OmitFacets bool    `yaml:"omit_facets"`
}

// Material describes one dispersive/conductive material's scalar
// parameters (spec.md §3's dispersion state).
type Material struct {
	Alpha float64 `yaml:"alpha"`
	Beta  float64 `yaml:"beta"`
	Gamma float64 `yaml:"gamma"`
	Rho   float64 `yaml:"rho"`
}

// Frequencies lists the extraction frequencies spec.md §4.5
// accumulates phasors at.
type Frequencies struct {
	FExVec []float64 `yaml:"f_ex_vec"`
}

// Complex is a YAML-friendly stand-in for complex128: the phasor
// outputs (spec.md §6's "31 named tensors") are complex-valued, which
// gopkg.in/yaml.v3 cannot marshal directly.
type Complex struct {
	Re float64 `yaml:"re"`
	Im float64 `yaml:"im"`
}

// ComplexFrom converts a complex128 to its YAML-friendly form.
func ComplexFrom(c complex128) Complex { return Complex{Re: real(c), Im: imag(c)} }

// ToComplex converts back to complex128.
func (c Complex) ToComplex() complex128 { return complex(c.Re, c.Im) }

// ComplexSlice converts a []complex128 to its YAML-friendly form.
func ComplexSlice(cs []complex128) []Complex {
	out := make([]Complex, len(cs))
	for i, c := range cs {
		out[i] = ComplexFrom(c)
	}
	return out
}

// VertexSpec names one grid vertex sampled by the vertex or surface
// phasor family (spec.md §4.5(2),(3)).
type VertexSpec struct {
	K int `yaml:"k"`
	J int `yaml:"j"`
	I int `yaml:"i"`
}

// FacetSpec is one triangle of the cuboid surface triangulation,
// indexing into the bundle's Vertices.
type FacetSpec struct {
	A int `yaml:"a"`
	B int `yaml:"b"`
	C int `yaml:"c"`
}

// ComponentMaskSpec selects which of the six physical field
// components the vertex family accumulates (spec.md §4.5(3)'s single
// "exfield" mask for the whole vertex list).
type ComponentMaskSpec struct {
	Ex bool `yaml:"ex"`
	Ey bool `yaml:"ey"`
	Ez bool `yaml:"ez"`
	Hx bool `yaml:"hx"`
	Hy bool `yaml:"hy"`
	Hz bool `yaml:"hz"`
}

// DetectorSpec describes the detector-plane integrator's geometry
// from spec.md §4.5(4): k_det_obs_global names the sampled k-plane,
// the rest mirror detector.Config.
type DetectorSpec struct {
	Nx     int     `yaml:"nx"`
	Ny     int     `yaml:"ny"`
	Dx     float64 `yaml:"dx"`
	Dy     float64 `yaml:"dy"`
	Lambda float64 `yaml:"lambda"`
	RefInd float64 `yaml:"refind"`
	ZObs   float64 `yaml:"zobs"`
	KPlane int     `yaml:"k_det_obs_global"`
	Modes  int     `yaml:"modes"` // number of unit-weight modes when no explicit D_tilde is supplied
}

// Output mirrors the phasor-bearing subset of spec.md §6's 31 named
// output tensors: the E and H volume phasors, the surface and vertex
// amplitude tensors, one detector-integral array, and the scalar
// maximum residual field.
type Output struct {
	EVolume           [][]Complex `yaml:"e_volume"`           // per frequency, channel-flattened
	HVolume           [][]Complex `yaml:"h_volume"`
	SurfaceAmplitudes [][]Complex `yaml:"surface_amplitudes"` // per frequency: vertex*3 E channels, then vertex*3 H channels
	VertexAmplitudes  [][]Complex `yaml:"vertex_amplitudes"`
	DetectorIntegral  [][]Complex `yaml:"detector_integral"` // per frequency, one value per mode
	MaxResidualField  float64     `yaml:"max_residual_field"`
}

// Bundle is the in-memory shape of the subset of spec.md §6's input
// bundle the core consumes.
type Bundle struct {
	Grid        Grid        `yaml:"grid"`
	Interface   Interface   `yaml:"interface"`
	Source      Source      `yaml:"source"`
	Run         Run         `yaml:"run"`
	Materials   []Material  `yaml:"materials"`
	Frequencies Frequencies `yaml:"frequencies"`

	Vertices   []VertexSpec      `yaml:"vertices"`
	Facets     []FacetSpec       `yaml:"facets"`
	VertexMask ComponentMaskSpec `yaml:"vertex_mask"`
	Detector   *DetectorSpec     `yaml:"detector"`

	Output Output `yaml:"output"`

	TdField bool   `yaml:"tdfield"`
	TdfDir  string `yaml:"tdfdir"`
}

// Validate checks the structural invariants a malformed bundle could
// violate, surfacing them as spec.md §7 configuration errors before
// the time loop ever starts.
func (b *Bundle) Validate() error {
	if b.Grid.ITot <= 0 || b.Grid.KTot <= 0 || b.Grid.JTot < 0 {
		return fdtderr.NewConfigError("grid", "i_tot and k_tot must be positive, j_tot must be non-negative")
	}
	if b.Run.Nt <= 0 {
		return fdtderr.NewConfigError("run.nt", "must be positive")
	}
	switch b.Source.SourceMode {
	case "pulsed", "steadystate":
	default:
		return fdtderr.NewConfigError("source.sourcemode", fmt.Sprintf("unknown mode %q", b.Source.SourceMode))
	}
	switch b.Run.Dimension {
	case "3", "TE", "TM":
	default:
		return fdtderr.NewConfigError("run.dimension", fmt.Sprintf("unknown dimension %q", b.Run.Dimension))
	}
	return nil
}

// Loader reads a Bundle from an external source. The default
// implementation is YAML-backed; a real HDF5/MAT loader would satisfy
// the same interface.
type Loader interface {
	Load(path string) (*Bundle, error)
}

// Writer persists the output bundle (spec.md §6's 31 named output
// tensors, restricted to what this module produces).
type Writer interface {
	Write(path string, out *Bundle) error
}

// YAMLCodec is the default Loader/Writer: a thin stand-in for the
// HDF5/MAT container IO spec.md §1 keeps external.
type YAMLCodec struct{}

// Load reads and validates a YAML bundle file.
func (YAMLCodec) Load(path string) (*Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fdtderr.NewResourceError(path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fdtderr.NewResourceError(path, err)
	}

	var b Bundle
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fdtderr.NewConfigError(path, fmt.Sprintf("invalid YAML: %v", err))
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// Write marshals the bundle to a YAML file.
func (YAMLCodec) Write(path string, out *Bundle) error {
	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshal output bundle: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fdtderr.NewResourceError(path, err)
	}
	return nil
}
