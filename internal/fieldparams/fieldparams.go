// Package fieldparams is the closed tag + dispatch table called for by
// spec.md §9 ("Design notes — generic field parameters"): the source's
// generic field-parameter traits become, in Go, a closed CurveID type whose
// per-variant constants (name, limb count) are selected by switch. This
// package holds neither the moduli nor a square-root function: moduli come
// from fieldops.ModulusFor, and square roots are computed by fieldops and by
// chip/weierstrass's own per-curve switch. Dispatch on an unrecognised
// discriminant is a programmer error
// (spec.md §4.8) and panics — it is never attacker-controlled, since the
// discriminant is chosen at chip-construction time, not from guest input.
package fieldparams

import "fmt"

// CurveID discriminates the Weierstrass curves the decompression chip can
// serve (spec.md §4.6).
type CurveID uint8

const (
	CurveSecp256k1 CurveID = iota + 1
	CurveBLS12381G1
)

// String names the curve for chip.Name() and log fields.
func (c CurveID) String() string {
	switch c {
	case CurveSecp256k1:
		return "secp256k1"
	case CurveBLS12381G1:
		return "bls12381"
	default:
		panic(fmt.Errorf("fieldparams: %w: curve id %d", ErrUnknownDiscriminant, c))
	}
}

// NbLimbs is the number of 32-bit limbs used to represent a field element of
// this curve's base field in memory/trace columns.
func (c CurveID) NbLimbs() int {
	switch c {
	case CurveSecp256k1:
		return 8 // 256 bits
	case CurveBLS12381G1:
		return 12 // 384 bits, padded to 12*32
	default:
		panic(fmt.Errorf("fieldparams: %w: curve id %d", ErrUnknownDiscriminant, c))
	}
}

// WordsPerCoordinate is the number of 32-bit memory words one x or y
// coordinate occupies. Each limb is one 32-bit word, so this equals NbLimbs.
func (c CurveID) WordsPerCoordinate() int { return c.NbLimbs() }

// ErrUnknownDiscriminant marks a closed-sum-type dispatch miss. It is always
// wrapped in a panic (spec.md §4.8, §7): the caller, not a guest, chose the
// discriminant.
var ErrUnknownDiscriminant = fmt.Errorf("unrecognised field/curve discriminant")
