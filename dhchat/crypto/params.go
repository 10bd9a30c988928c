package crypto

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidParameters = errors.New("crypto: invalid protocol parameters")
)

const (
	// DefaultModulus is the public 64-bit prime p.
	DefaultModulus uint64 = 0xD87FA3E291B4C7F3
	// DefaultGenerator is the public generator g.
	DefaultGenerator uint64 = 2

	DefaultLCGMultiplier uint64 = 1103515245
	DefaultLCGIncrement  uint64 = 12345
	DefaultLCGModulus    uint64 = 1 << 32
)

// Parameters bundles every public constant both peers must agree on.
type Parameters struct {
	Modulus   uint64
	Generator uint64

	LCGMultiplier uint64
	LCGIncrement  uint64
	LCGModulus    uint64
}

func DefaultParameters() Parameters {
	return Parameters{
		Modulus:       DefaultModulus,
		Generator:     DefaultGenerator,
		LCGMultiplier: DefaultLCGMultiplier,
		LCGIncrement:  DefaultLCGIncrement,
		LCGModulus:    DefaultLCGModulus,
	}
}

// Validate reports whether p can be used for a key exchange and a keystream.
func (p Parameters) Validate() error {
	if p.Modulus < 3 {
		return fmt.Errorf("%w: modulus %d too small", ErrInvalidParameters, p.Modulus)
	}
	if p.Generator < 2 || p.Generator >= p.Modulus {
		return fmt.Errorf("%w: generator %d outside [2, p)", ErrInvalidParameters, p.Generator)
	}
	if p.LCGModulus == 0 {
		return fmt.Errorf("%w: zero keystream modulus", ErrInvalidParameters)
	}
	return nil
}
