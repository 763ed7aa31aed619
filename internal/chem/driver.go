package chem

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/pesweep/internal/qop"
)

// Driver turns a molecular geometry into second-quantized operators. The
// sweep engine only supports the two molecule driver kinds below; anything
// else is rejected before the first point is evaluated.
type Driver interface {
	// Molecule returns the geometry the driver is bound to, nil if unset.
	Molecule() *Molecule

	// SecondQOps builds the named operators at the current geometry. The
	// main energy operator is present under the driver's main property name.
	SecondQOps() (map[string]*qop.SecondQuantizedOp, error)

	// MainPropertyName names the operator to be minimized.
	MainPropertyName() string
}

// Morse well parameters for the electronic model Hamiltonian, in hartree
// and inverse bohr. Tuned to an H2-like curve; good enough for a model
// surface, not for chemistry.
const (
	morseDepth = 0.1745
	morseWidth = 1.028
	morseEquil = 1.40
)

// ElectronicStructureMoleculeDriver builds a Morse-model electronic
// Hamiltonian for a diatomic molecule. The electronic energy follows a Morse
// well in the bond length; excited diagonal entries sit one model quantum
// apart and a weak geometry-dependent coupling ties neighboring states.
type ElectronicStructureMoleculeDriver struct {
	mol       *Molecule
	basisSize int
}

// NewElectronicStructureMoleculeDriver creates the driver. basisSize is the
// model basis dimension; values below 2 are raised to 2.
func NewElectronicStructureMoleculeDriver(mol *Molecule, basisSize int) *ElectronicStructureMoleculeDriver {
	if basisSize < 2 {
		basisSize = 2
	}
	return &ElectronicStructureMoleculeDriver{mol: mol, basisSize: basisSize}
}

// Molecule returns the bound molecule.
func (d *ElectronicStructureMoleculeDriver) Molecule() *Molecule {
	return d.mol
}

// MainPropertyName names the operator to be minimized.
func (d *ElectronicStructureMoleculeDriver) MainPropertyName() string {
	return "ElectronicEnergy"
}

// SecondQOps builds the electronic Hamiltonian and auxiliary operators at
// the current geometry.
func (d *ElectronicStructureMoleculeDriver) SecondQOps() (map[string]*qop.SecondQuantizedOp, error) {
	if d.mol == nil {
		return nil, fmt.Errorf("electronic driver has no molecule")
	}
	r := d.mol.BondLength()
	if r <= 0 {
		return nil, fmt.Errorf("non-positive bond length %f", r)
	}

	n := d.basisSize
	well := morseDepth*math.Pow(1-math.Exp(-morseWidth*(r-morseEquil)), 2) - morseDepth
	quantum := morseWidth * math.Sqrt(2*morseDepth) * math.Exp(-0.25*(r-morseEquil))
	coupling := 0.02 * math.Exp(-0.5*r)

	h := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		h.SetSym(i, i, well+float64(i)*quantum)
		if i+1 < n {
			h.SetSym(i, i+1, coupling)
		}
	}

	electrons, err := d.mol.NumElectrons()
	if err != nil {
		return nil, err
	}
	particle := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		particle.SetSym(i, i, float64(electrons))
	}

	return map[string]*qop.SecondQuantizedOp{
		d.MainPropertyName(): qop.NewSecondQuantizedOp(d.MainPropertyName(), h),
		"ParticleNumber":     qop.NewSecondQuantizedOp("ParticleNumber", particle),
	}, nil
}

// VibrationalStructureMoleculeDriver builds a harmonic-ladder Hamiltonian
// whose frequency softens as the bond stretches past equilibrium.
type VibrationalStructureMoleculeDriver struct {
	mol       *Molecule
	numModals int
	baseFreq  float64 // hartree
}

// NewVibrationalStructureMoleculeDriver creates the driver with numModals
// ladder states (minimum 2).
func NewVibrationalStructureMoleculeDriver(mol *Molecule, numModals int) *VibrationalStructureMoleculeDriver {
	if numModals < 2 {
		numModals = 2
	}
	return &VibrationalStructureMoleculeDriver{mol: mol, numModals: numModals, baseFreq: 0.01}
}

// Molecule returns the bound molecule.
func (d *VibrationalStructureMoleculeDriver) Molecule() *Molecule {
	return d.mol
}

// MainPropertyName names the operator to be minimized.
func (d *VibrationalStructureMoleculeDriver) MainPropertyName() string {
	return "VibrationalEnergy"
}

// SecondQOps builds the vibrational Hamiltonian at the current geometry.
func (d *VibrationalStructureMoleculeDriver) SecondQOps() (map[string]*qop.SecondQuantizedOp, error) {
	if d.mol == nil {
		return nil, fmt.Errorf("vibrational driver has no molecule")
	}
	r := d.mol.BondLength()
	if r <= 0 {
		return nil, fmt.Errorf("non-positive bond length %f", r)
	}

	n := d.numModals
	freq := d.baseFreq * math.Exp(-0.5*(r-morseEquil))
	anharm := 0.05 * freq

	h := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		h.SetSym(i, i, (float64(i)+0.5)*freq)
		if i+1 < n {
			h.SetSym(i, i+1, anharm)
		}
	}

	return map[string]*qop.SecondQuantizedOp{
		d.MainPropertyName(): qop.NewSecondQuantizedOp(d.MainPropertyName(), h),
	}, nil
}
