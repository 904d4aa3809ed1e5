package grid

// Component names one of the twelve split half-fields: six electric
// {xy,xz,yx,yz,zx,zy} and six magnetic, same split names.
type Component int

const (
	Exy Component = iota
	Exz
	Eyx
	Eyz
	Ezx
	Ezy
	Hxy
	Hxz
	Hyx
	Hyz
	Hzx
	Hzy
)

var componentNames = [...]string{
	"Exy", "Exz", "Eyx", "Eyz", "Ezx", "Ezy",
	"Hxy", "Hxz", "Hyx", "Hyz", "Hzx", "Hzy",
}

func (c Component) String() string { return componentNames[c] }

// PhysicalAxis is the axis of the physical field component this split
// half contributes to (x for Exy/Exz/Hxy/Hxz, etc).
func (c Component) PhysicalAxis() Axis {
	switch c {
	case Exy, Exz, Hxy, Hxz:
		return AxisX
	case Eyx, Eyz, Hyx, Hyz:
		return AxisY
	default:
		return AxisZ
	}
}

// IsElectric reports whether the component belongs to the E_s family.
func (c Component) IsElectric() bool { return c < Hxy }

// DerivativeAxis is the axis along which this split half is
// differentiated to perform its curl update: the *second* letter of
// its name (xy -> y, zx -> x, ...).
func (c Component) DerivativeAxis() Axis {
	switch c {
	case Exy, Hxy:
		return AxisY
	case Exz, Hxz:
		return AxisZ
	case Eyx, Hyx:
		return AxisX
	case Eyz, Hyz:
		return AxisZ
	case Ezx, Hzx:
		return AxisX
	case Ezy, Hzy:
		return AxisY
	}
	return AxisX
}

// SourceAxis is the axis of the *other* field family's physical
// component that drives this split half's curl term: Exy (physical x,
// derivative y) is driven by the total Hz field, so its source axis is
// z — the one axis that is neither the physical axis nor the
// derivative axis.
func (c Component) SourceAxis() Axis {
	phys, der := c.PhysicalAxis(), c.DerivativeAxis()
	for _, a := range [3]Axis{AxisX, AxisY, AxisZ} {
		if a != phys && a != der {
			return a
		}
	}
	return AxisX
}

// curlSign is +1/-1 per Yee's curl equations:
//
//	dEx/dt = +dHz/dy - dHy/dz     dHx/dt = -dEz/dy + dEy/dz
//	dEy/dt = -dHz/dx + dHx/dz     dHy/dt = +dEz/dx - dEx/dz
//	dEz/dt = +dHy/dx - dHx/dy     dHz/dt = -dEy/dx + dEx/dy
var curlSign = map[Component]float64{
	Exy: 1, Exz: -1,
	Eyx: -1, Eyz: 1,
	Ezx: 1, Ezy: -1,
	Hxy: -1, Hxz: 1,
	Hyx: 1, Hyz: -1,
	Hzx: -1, Hzy: 1,
}

// CurlSign returns the +1/-1 sign this split half applies to its curl
// term.
func (c Component) CurlSign() float64 { return curlSign[c] }

// SourceComponents returns the two split halves of the opposite family
// whose sum is this component's source field (e.g. Exy is driven by
// the total Hz = Hzx + Hzy).
func (c Component) SourceComponents() (a, b Component) {
	axis := c.SourceAxis()
	electric := !c.IsElectric()
	switch axis {
	case AxisX:
		if electric {
			return Exy, Exz
		}
		return Hxy, Hxz
	case AxisY:
		if electric {
			return Eyx, Eyz
		}
		return Hyx, Hyz
	default:
		if electric {
			return Ezx, Ezy
		}
		return Hzx, Hzy
	}
}

// dims returns the K,J,I extents of the split array for this
// component given the grid's total extents. E components are
// staggered at edge midpoints along their own physical axis (one
// fewer sample along that axis); H components are staggered at face
// centres, one fewer sample along each of the two axes transverse to
// their own physical axis. This is the standard Yee-grid placement;
// spec.md §3 only requires "component-specific one-cell reductions
// along the differentiation axis" and leaves the exact placement to
// the implementer.
func (c Component) dims(d Dims) (nk, nj, ni int) {
	ni = d.ITot + 1
	nj = d.JTot + 1
	nk = d.KTot + 1
	if d.Is2D() {
		nj = 1
	}
	switch c.PhysicalAxis() {
	case AxisX:
		ni = d.ITot
		if c.IsElectric() {
			return nk, nj, ni
		}
		if !d.Is2D() {
			nj = d.JTot
		}
		nk = d.KTot
		ni = d.ITot + 1
	case AxisY:
		if !d.Is2D() {
			nj = d.JTot
		}
		if c.IsElectric() {
			return nk, nj, ni
		}
		ni = d.ITot
		nk = d.KTot
		nj = d.JTot + 1
		if d.Is2D() {
			nj = 1
		}
	case AxisZ:
		nk = d.KTot
		if c.IsElectric() {
			return nk, nj, ni
		}
		ni = d.ITot
		if !d.Is2D() {
			nj = d.JTot
		}
		nk = d.KTot + 1
	}
	return nk, nj, ni
}
