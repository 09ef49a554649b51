// Package prover names the downstream collaborators spec.md §1 puts out of
// scope for the core — the Groth16 proving system binding and the CUDA
// R1CS serialization format — as Go interfaces, so a real backend has a
// documented socket to implement against without this module taking on
// elliptic-curve pairing arithmetic or GPU serialization itself.
package prover

import (
	"io"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/za-lang/zkcc/internal/r1cs"
)

// ProvingKey and VerifyingKey are opaque handles a Groth16Binding
// implementation produces from a setup ceremony over an R1CS. The core
// never inspects their contents; it only carries them between Setup,
// Prove and Verify.
type ProvingKey interface{}
type VerifyingKey interface{}

// Proof is a Groth16 proof: three group elements over BN254, the pairing
// curve this corpus's circuits target.
type Proof struct {
	A bn254.G1Affine
	B bn254.G2Affine
	C bn254.G1Affine
}

// Groth16Binding is the contract a real Groth16 implementation satisfies.
// Producing or verifying a proof is explicitly a non-goal of this module
// (spec.md §1); this interface exists so a binding can be wired to the
// R1CS/witness producer contracts in package r1cs without the core
// depending on a pairing-arithmetic implementation.
type Groth16Binding interface {
	Setup(circuit *r1cs.R1CS) (ProvingKey, VerifyingKey, error)
	Prove(pk ProvingKey, circuit *r1cs.R1CS, witness *r1cs.Witness) (*Proof, error)
	Verify(vk VerifyingKey, proof *Proof, publicInputs []fr.Element) error
}

// CUDAExporter serializes an R1CS into the device-resident layout a CUDA
// witness generator consumes. The wire format itself is out of scope here;
// only the contract is named.
type CUDAExporter interface {
	ExportR1CS(w io.Writer, circuit *r1cs.R1CS) error
	ExportWitness(w io.Writer, witness *r1cs.Witness) error
}
