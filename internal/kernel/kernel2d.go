package kernel

import "github.com/UCL/isotropic-finite-difference-time-domain/internal/grid"

// update2D implements spec.md §4.2's 2-D restriction: "In TE mode only
// E_yx, H_xz, H_zx evolve non-trivially; in TM mode E_xz, E_zx, H_yx
// evolve; the other components are forced to zero."
//
// Of the three surviving components per mode, two (Hxz/Hzx in TE,
// Exz/Ezx in TM) are ordinary single-curl-term updates already
// handled by updateComponent, because their source field's "missing"
// half is simply zero and never contributes. Only the third survivor
// (Eyx in TE, Hyx in TM) stands in for *both* halves of its physical
// component, since its sibling split (Eyz / Hyz) is permanently
// zeroed; updateComponent folds the sibling's curl term in for that
// one case via the extraSibling parameter.
func (k *Kernel) update2D(store *grid.Store, electric bool) error {
	if electric {
		switch k.Mode {
		case ModeTE:
			sib := grid.Eyz
			return k.updateComponent(store, grid.Eyx, &sib)
		case ModeTM:
			if err := k.updateComponent(store, grid.Exz, nil); err != nil {
				return err
			}
			return k.updateComponent(store, grid.Ezx, nil)
		}
		return nil
	}
	switch k.Mode {
	case ModeTE:
		if err := k.updateComponent(store, grid.Hxz, nil); err != nil {
			return err
		}
		return k.updateComponent(store, grid.Hzx, nil)
	case ModeTM:
		sib := grid.Hyz
		return k.updateComponent(store, grid.Hyx, &sib)
	}
	return nil
}
