package fieldparams

// SyscallID enumerates the precompile entry points consumed as constants by
// the (out-of-scope) interpreter and emitted verbatim by each chip's
// receive_syscall constraint (spec.md §4.4.2, §6).
type SyscallID uint32

const (
	SyscallEdDecompress SyscallID = 0x00_01_01_00 + iota
	SyscallEdAdd
	SyscallSecp256k1Decompress
	SyscallSecp256k1Add
	SyscallSecp256k1Double
	SyscallBLS12381Decompress
	SyscallBLS12381G1Add
	SyscallBLS12381G1Double
	SyscallBLS12381G2Add
	SyscallBLS12381G2Double
	SyscallBLS12381FpAdd
	SyscallBLS12381FpSub
	SyscallBLS12381FpMul
	SyscallBLS12381Fp2Add
	SyscallBLS12381Fp2Sub
	SyscallBLS12381Fp2Mul
	SyscallBN254Add
	SyscallBN254Double
	SyscallSHA256Extend
	SyscallSHA256Compress
	SyscallKeccakPermute
	SyscallBlake3Compress
)

// String is used only in diagnostics (zap fields, panics) — never parsed.
func (s SyscallID) String() string {
	switch s {
	case SyscallEdDecompress:
		return "ED_DECOMPRESS"
	case SyscallEdAdd:
		return "ED_ADD"
	case SyscallSecp256k1Decompress:
		return "SECP256K1_DECOMPRESS"
	case SyscallSecp256k1Add:
		return "SECP256K1_ADD"
	case SyscallSecp256k1Double:
		return "SECP256K1_DOUBLE"
	case SyscallBLS12381Decompress:
		return "BLS12381_DECOMPRESS"
	case SyscallBLS12381G1Add:
		return "BLS12381_G1_ADD"
	case SyscallBLS12381G1Double:
		return "BLS12381_G1_DOUBLE"
	case SyscallBLS12381G2Add:
		return "BLS12381_G2_ADD"
	case SyscallBLS12381G2Double:
		return "BLS12381_G2_DOUBLE"
	case SyscallBLS12381FpAdd:
		return "BLS12381_FP_ADD"
	case SyscallBLS12381FpSub:
		return "BLS12381_FP_SUB"
	case SyscallBLS12381FpMul:
		return "BLS12381_FP_MUL"
	case SyscallBLS12381Fp2Add:
		return "BLS12381_FP2_ADD"
	case SyscallBLS12381Fp2Sub:
		return "BLS12381_FP2_SUB"
	case SyscallBLS12381Fp2Mul:
		return "BLS12381_FP2_MUL"
	case SyscallBN254Add:
		return "BN254_ADD"
	case SyscallBN254Double:
		return "BN254_DOUBLE"
	case SyscallSHA256Extend:
		return "SHA256_EXTEND"
	case SyscallSHA256Compress:
		return "SHA256_COMPRESS"
	case SyscallKeccakPermute:
		return "KECCAK_PERMUTE"
	case SyscallBlake3Compress:
		return "BLAKE3_COMPRESS"
	default:
		return "UNKNOWN_SYSCALL"
	}
}
