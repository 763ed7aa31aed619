package chem

import "fmt"

// Atom is a single nucleus with a chemical symbol.
type Atom struct {
	Symbol string
	Coords [3]float64
}

// Molecule describes a diatomic geometry with a single stretch degree of
// freedom. Perturbations holds the displacement applied on top of the base
// bond length; the sweep engine mutates it in place before every solve and
// owns it for the duration of one sweep.
type Molecule struct {
	Atoms         []Atom
	BaseLength    float64 // equilibrium-guess bond length in bohr
	Perturbations []float64
}

// NewDiatomic creates a molecule of two atoms separated by bondLength along z.
func NewDiatomic(a, b string, bondLength float64) *Molecule {
	return &Molecule{
		Atoms: []Atom{
			{Symbol: a},
			{Symbol: b, Coords: [3]float64{0, 0, bondLength}},
		},
		BaseLength: bondLength,
	}
}

// BondLength returns the current internuclear distance, including any
// perturbation set by a sweep.
func (m *Molecule) BondLength() float64 {
	r := m.BaseLength
	for _, p := range m.Perturbations {
		r += p
	}
	return r
}

// nuclearCharges maps element symbols to nuclear charge.
var nuclearCharges = map[string]int{
	"H": 1, "He": 2, "Li": 3, "Be": 4, "B": 5,
	"C": 6, "N": 7, "O": 8, "F": 9, "Ne": 10,
}

// NumElectrons returns the total electron count for a neutral molecule.
func (m *Molecule) NumElectrons() (int, error) {
	total := 0
	for _, a := range m.Atoms {
		z, ok := nuclearCharges[a.Symbol]
		if !ok {
			return 0, fmt.Errorf("unknown element symbol %q", a.Symbol)
		}
		total += z
	}
	return total, nil
}

// NuclearRepulsion returns the point-charge repulsion energy at the current
// geometry, in hartree.
func (m *Molecule) NuclearRepulsion() float64 {
	if len(m.Atoms) != 2 {
		return 0
	}
	r := m.BondLength()
	if r <= 0 {
		return 0
	}
	z1 := nuclearCharges[m.Atoms[0].Symbol]
	z2 := nuclearCharges[m.Atoms[1].Symbol]
	return float64(z1*z2) / r
}
