package record

// Program is the shared, read-only reference every ExecutionRecord carries
// (spec.md §4.1). The RISC-V interpreter and ELF loader that populate it are
// out of scope (spec.md §1); ExecutionRecord only needs a stable pointer to
// hand to every shard.
type Program struct {
	Instructions []uint32
	EntryPC      uint32
}
