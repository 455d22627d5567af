// Package babybear implements the 31-bit "Baby Bear" prime field used as the
// matrix-element type for trace columns (spec.md §6: "Columns are field
// elements in a fixed prime field (Baby Bear in the source)").
//
// This is deliberately the smallest possible field implementation: the STARK
// prover that would actually fold these columns into polynomial commitments
// is out of scope (spec.md §1), so Element only needs enough arithmetic to
// let chips populate rows and let a DebugAirBuilder re-check constraints
// against concrete values in tests.
//
// © 2025 arena-cache authors. MIT License.
package babybear

// Modulus is 15*2^27 + 1, the Baby Bear prime.
const Modulus uint64 = 2013265921

// Element is a value in GF(Modulus), always kept in [0, Modulus).
type Element uint32

// Zero is the additive identity.
func Zero() Element { return 0 }

// One is the multiplicative identity.
func One() Element { return 1 }

// FromUint64 reduces v modulo Modulus.
func FromUint64(v uint64) Element { return Element(v % Modulus) }

// FromInt reduces a possibly-negative value modulo Modulus.
func FromInt(v int64) Element {
	m := int64(Modulus)
	v %= m
	if v < 0 {
		v += m
	}
	return Element(v)
}

// Uint64 widens e for arithmetic that must not overflow uint32.
func (e Element) Uint64() uint64 { return uint64(e) }

// Add returns e+other mod Modulus.
func (e Element) Add(other Element) Element {
	return Element((e.Uint64() + other.Uint64()) % Modulus)
}

// Sub returns e-other mod Modulus.
func (e Element) Sub(other Element) Element {
	return Element((e.Uint64() + Modulus - other.Uint64()) % Modulus)
}

// Mul returns e*other mod Modulus.
func (e Element) Mul(other Element) Element {
	return Element((e.Uint64() * other.Uint64()) % Modulus)
}

// Neg returns -e mod Modulus.
func (e Element) Neg() Element {
	if e == 0 {
		return 0
	}
	return Element(Modulus - e.Uint64())
}

// IsZero reports whether e is the additive identity.
func (e Element) IsZero() bool { return e == 0 }

// Equal reports whether e and other represent the same field value.
func (e Element) Equal(other Element) bool { return e == other }

// FromBool encodes a boolean flag as a field element, as chips do for
// is_real / sign / is_odd columns.
func FromBool(b bool) Element {
	if b {
		return One()
	}
	return Zero()
}

// IsBool reports whether e is 0 or 1 — the shape every boolean column in a
// chip's row must satisfy (spec.md §4.4.2).
func (e Element) IsBool() bool { return e == 0 || e == 1 }
