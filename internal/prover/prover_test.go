package prover

import (
	"io"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/za-lang/zkcc/internal/r1cs"
)

// stubBinding is a minimal Groth16Binding implementation, enough to prove
// the interface is satisfiable by a concrete type without pulling in a
// real proving-system dependency.
type stubBinding struct{}

func (stubBinding) Setup(circuit *r1cs.R1CS) (ProvingKey, VerifyingKey, error) {
	return nil, nil, nil
}

func (stubBinding) Prove(pk ProvingKey, circuit *r1cs.R1CS, witness *r1cs.Witness) (*Proof, error) {
	return &Proof{}, nil
}

func (stubBinding) Verify(vk VerifyingKey, proof *Proof, publicInputs []fr.Element) error {
	return nil
}

// stubExporter similarly proves CUDAExporter is satisfiable.
type stubExporter struct{}

func (stubExporter) ExportR1CS(w io.Writer, circuit *r1cs.R1CS) error       { return nil }
func (stubExporter) ExportWitness(w io.Writer, witness *r1cs.Witness) error { return nil }

func TestInterfacesAreImplementable(t *testing.T) {
	var _ Groth16Binding = stubBinding{}
	var _ CUDAExporter = stubExporter{}
}
