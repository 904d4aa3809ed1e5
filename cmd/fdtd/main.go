// Command fdtd runs the Yee-grid time-domain electromagnetic solver
// over an input bundle, producing an output bundle of extracted
// phasors. It implements spec.md §6's two invocation forms.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/UCL/isotropic-finite-difference-time-domain/internal/config"
	"github.com/UCL/isotropic-finite-difference-time-domain/internal/deriv"
	"github.com/UCL/isotropic-finite-difference-time-domain/internal/detector"
	"github.com/UCL/isotropic-finite-difference-time-domain/internal/grid"
	"github.com/UCL/isotropic-finite-difference-time-domain/internal/interp"
	"github.com/UCL/isotropic-finite-difference-time-domain/internal/kernel"
	"github.com/UCL/isotropic-finite-difference-time-domain/internal/material"
	"github.com/UCL/isotropic-finite-difference-time-domain/internal/normalise"
	"github.com/UCL/isotropic-finite-difference-time-domain/internal/phasor"
	"github.com/UCL/isotropic-finite-difference-time-domain/internal/source"
	"github.com/UCL/isotropic-finite-difference-time-domain/internal/tfsf"
	"github.com/UCL/isotropic-finite-difference-time-domain/internal/timeloop"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("fdtd", flag.ContinueOnError)
	omitFacets := fs.Bool("m", false, "omit vertex/facet arrays in output")
	useFD := fs.Bool("fd", false, "use the finite-difference derivative scheme")
	usePSTD := fs.Bool("pstd", false, "use the pseudo-spectral derivative scheme")
	useCubic := fs.Bool("cubic", false, "force cubic interpolation")
	useBLI := fs.Bool("bli", false, "force band-limited interpolation")
	fs.SetOutput(os.Stderr)

	if err := fs.Parse(args); err != nil {
		return -1
	}
	rest := fs.Args()

	var inputPath, gridPath, outputPath string
	switch len(rest) {
	case 2:
		inputPath, outputPath = rest[0], rest[1]
	case 3:
		inputPath, gridPath, outputPath = rest[0], rest[1], rest[2]
	default:
		fmt.Fprintln(os.Stderr, "usage: fdtd [-m] [-fd|-pstd] [-cubic|-bli] input_file output_file")
		fmt.Fprintln(os.Stderr, "       fdtd [-m] input_file grid_file output_file")
		return -1
	}
	_ = gridPath // grid-file parsing is an external collaborator, per spec.md §1

	if *useFD && *usePSTD {
		fmt.Fprintln(os.Stderr, "-fd and -pstd are mutually exclusive")
		return -1
	}
	if *useCubic && *useBLI {
		fmt.Fprintln(os.Stderr, "-cubic and -bli are mutually exclusive")
		return -1
	}

	codec := config.YAMLCodec{}
	bundle, err := codec.Load(inputPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return -1
	}
	if *usePSTD {
		bundle.Run.UsePSTD = true
	}
	if *useBLI {
		bundle.Run.UseBLI = true
	}

	var interpolator *interp.Interpolator
	switch {
	case *useCubic:
		interpolator = &interp.Interpolator{Family: interp.Cubic}
	case *useBLI:
		interpolator = &interp.Interpolator{Family: interp.BandLimited}
	}

	driver, omegas, err := buildDriver(bundle, interpolator)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return -1
	}

	result, err := driver.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return -1
	}
	if result.NonConvergence != nil {
		log.Println(result.NonConvergence)
	}

	populateOutput(bundle, driver, omegas)

	bundle.Run.OmitFacets = *omitFacets
	if err := codec.Write(outputPath, bundle); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return -1
	}
	return 0
}

// buildDriver wires a config.Bundle into a grid.Store, a
// kernel.Kernel, an optional tfsf.Injector, the configured phasor
// accumulator families, and a timeloop.Driver ready to run. Only the
// background coefficient table is built; the bundle's Materials are
// not read, so every cell uses the background coefficients.
func buildDriver(b *config.Bundle, interpolator *interp.Interpolator) (*timeloop.Driver, []float64, error) {
	dims := grid.Dims{ITot: b.Grid.ITot, JTot: b.Grid.JTot, KTot: b.Grid.KTot}
	store, err := grid.NewStore(dims)
	if err != nil {
		return nil, nil, err
	}

	tables := &material.Tables{
		Background: material.AxisTriple{
			X: material.Coeffs{A: 1, B: b.Grid.Dx},
			Y: material.Coeffs{A: 1, B: b.Grid.Dy},
			Z: material.Coeffs{A: 1, B: b.Grid.Dz},
		},
	}

	scheme := deriv.Scheme(deriv.FD{})
	if b.Run.UsePSTD {
		scheme = deriv.PS{}
	}

	mode := kernel.Mode3D
	switch b.Run.Dimension {
	case "TE":
		mode = kernel.ModeTE
	case "TM":
		mode = kernel.ModeTM
	}

	k := &kernel.Kernel{
		Scheme: scheme,
		Tables: tables,
		Dims:   dims,
		Dt:     b.Run.Dt,
		Dx:     b.Grid.Dx, Dy: b.Grid.Dy, Dz: b.Grid.Dz,
		Mode: mode,
	}

	dt := b.Run.Dt
	nt := b.Run.Nt
	steadyState := b.Source.SourceMode == "steadystate"
	nsteps := 0
	if steadyState {
		dt, nsteps, nt = timeloop.ChooseSteadyStateTiming(b.Source.Omega, b.Run.Dt, b.Run.Nt)
	}

	box := &source.InterfaceBox{
		I0: source.FacePair{Index: b.Interface.I0.Index, Apply: b.Interface.I0.Apply},
		I1: source.FacePair{Index: b.Interface.I1.Index, Apply: b.Interface.I1.Apply},
		J0: source.FacePair{Index: b.Interface.J0.Index, Apply: b.Interface.J0.Apply},
		J1: source.FacePair{Index: b.Interface.J1.Index, Apply: b.Interface.J1.Apply},
		K0: source.FacePair{Index: b.Interface.K0.Index, Apply: b.Interface.K0.Apply},
		K1: source.FacePair{Index: b.Interface.K1.Index, Apply: b.Interface.K1.Apply},
	}
	planes := &source.Planes{
		Isource: source.NewTensor(dims.JTot+1, dims.KTot+1),
		Jsource: source.NewTensor(dims.ITot+1, dims.KTot+1),
		Ksource: source.NewTensor(dims.ITot+1, dims.JTot+1),
	}
	envMode := tfsf.SteadyState
	if !steadyState {
		envMode = tfsf.Pulsed
	}
	injector := &tfsf.Injector{
		Box: box, Planes: planes,
		Mode: envMode, Omega: b.Source.Omega, T0: b.Source.T0, Hwhm: b.Source.Hwhm,
		Dz: b.Grid.Dz,
	}

	omegas := b.Frequencies.FExVec
	if len(omegas) == 0 {
		omegas = []float64{b.Source.Omega}
	}
	bounds := phasor.Bounds{KLo: 1, KHi: dims.KTot, JLo: 1, JHi: maxInt(dims.JTot, 1), ILo: 1, IHi: dims.ITot}
	nsamples := float64(nt - b.Run.StartTind)
	if steadyState {
		nsamples = float64(nsteps)
	}
	volume := phasor.NewVolumeAccumulator(bounds, omegas, nsamples)

	driver := &timeloop.Driver{
		Store:         store,
		Kernel:        k,
		Injector:      injector,
		Volume:        volume,
		AnalysisOmega: b.Source.Omega,
		SteadyState:   steadyState,
		Nsteps:        nsteps,
		Dt:            dt,
		Nt:            nt,
		StartTind:     b.Run.StartTind,
		EnormAccum:    phasor.NewDFT(omegas, 1, nsamples),
		HnormAccum:    phasor.NewDFT(omegas, 1, nsamples),
		Logger:        log.Default(),
	}

	if len(b.Vertices) > 0 {
		vertices := toPhasorVertices(b.Vertices)
		mask := phasor.ComponentMask{
			Ex: b.VertexMask.Ex, Ey: b.VertexMask.Ey, Ez: b.VertexMask.Ez,
			Hx: b.VertexMask.Hx, Hy: b.VertexMask.Hy, Hz: b.VertexMask.Hz,
		}
		driver.Vertex = phasor.NewVertexAccumulator(vertices, mask, interpolator, omegas, nsamples)

		if len(b.Facets) > 0 {
			facets := make([]phasor.Facet, len(b.Facets))
			for i, f := range b.Facets {
				facets[i] = phasor.Facet{A: f.A, B: f.B, C: f.C}
			}
			driver.Surface = phasor.NewSurfaceAccumulator(vertices, facets, interpolator, omegas, nsamples)
		}
	}

	if b.Detector != nil {
		cfg := detector.Config{
			Nx: b.Detector.Nx, Ny: b.Detector.Ny,
			Dx: b.Detector.Dx, Dy: b.Detector.Dy,
			Lambda: b.Detector.Lambda, RefInd: b.Detector.RefInd, ZObs: b.Detector.ZObs,
			ModeWeights: unitModeWeights(b.Detector.Nx, b.Detector.Ny, b.Detector.Modes),
		}
		it, err := detector.NewIntegrator(cfg)
		if err != nil {
			return nil, nil, err
		}
		driver.Detector = detector.NewAccumulator(it, omegas, nsamples)
		driver.DetectorK = b.Detector.KPlane
	}

	return driver, omegas, nil
}

// unitModeWeights builds `modes` (at least 1) all-ones D_tilde grids,
// the default mode-weight set when the bundle supplies no explicit
// per-mode weighting.
func unitModeWeights(nx, ny, modes int) [][][]complex128 {
	if modes < 1 {
		modes = 1
	}
	out := make([][][]complex128, modes)
	for m := range out {
		weights := make([][]complex128, ny)
		for j := range weights {
			row := make([]complex128, nx)
			for i := range row {
				row[i] = complex(1, 0)
			}
			weights[j] = row
		}
		out[m] = weights
	}
	return out
}

func toPhasorVertices(specs []config.VertexSpec) []phasor.Vertex {
	out := make([]phasor.Vertex, len(specs))
	for i, s := range specs {
		out[i] = phasor.Vertex{K: s.K, J: s.J, I: s.I}
	}
	return out
}

// populateOutput normalises every accumulated phasor family by the
// shared-window source-phasor normaliser (spec.md §4.8, "applied
// uniformly across volume, surface, vertex and detector outputs") and
// writes the result into the bundle's output tensors.
func populateOutput(b *config.Bundle, d *timeloop.Driver, omegas []float64) {
	norm := &normalise.Normaliser{
		Enorm: make([]complex128, len(omegas)),
		Hnorm: make([]complex128, len(omegas)),
	}
	esums := d.EnormAccum.Snapshot()
	hsums := d.HnormAccum.Snapshot()
	for fi := range omegas {
		norm.Enorm[fi] = esums[fi][0]
		norm.Hnorm[fi] = hsums[fi][0]
	}

	volE := d.Volume.EDFT.Snapshot()
	volH := d.Volume.HDFT.Snapshot()
	b.Output.EVolume = make([][]config.Complex, len(omegas))
	b.Output.HVolume = make([][]config.Complex, len(omegas))
	for fi := range omegas {
		normalise.ApplyAll(volE[fi], norm.Enorm[fi])
		normalise.ApplyAll(volH[fi], norm.Hnorm[fi])
		b.Output.EVolume[fi] = config.ComplexSlice(volE[fi])
		b.Output.HVolume[fi] = config.ComplexSlice(volH[fi])
	}

	if d.Surface != nil {
		b.Output.SurfaceAmplitudes = normaliseVertexFamily(d.Surface.VertexAccumulator, norm, omegas)
	}
	if d.Vertex != nil {
		b.Output.VertexAmplitudes = normaliseVertexFamily(d.Vertex, norm, omegas)
	}
	if d.Detector != nil {
		detSums := d.Detector.DFT.Snapshot()
		b.Output.DetectorIntegral = make([][]config.Complex, len(omegas))
		for fi := range omegas {
			normalise.ApplyAll(detSums[fi], norm.Enorm[fi])
			b.Output.DetectorIntegral[fi] = config.ComplexSlice(detSums[fi])
		}
	}

	b.Output.MaxResidualField = d.Store.MaxFieldMagnitude()
}

// normaliseVertexFamily normalises a VertexAccumulator's (or the
// embedded VertexAccumulator of a SurfaceAccumulator's) E and H
// channels and concatenates them per frequency: E channels first,
// then H channels.
func normaliseVertexFamily(va *phasor.VertexAccumulator, norm *normalise.Normaliser, omegas []float64) [][]config.Complex {
	eSums := va.EDFT.Snapshot()
	hSums := va.HDFT.Snapshot()
	out := make([][]config.Complex, len(omegas))
	for fi := range omegas {
		normalise.ApplyAll(eSums[fi], norm.Enorm[fi])
		normalise.ApplyAll(hSums[fi], norm.Hnorm[fi])
		combined := make([]complex128, 0, len(eSums[fi])+len(hSums[fi]))
		combined = append(combined, eSums[fi]...)
		combined = append(combined, hSums[fi]...)
		out[fi] = config.ComplexSlice(combined)
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
