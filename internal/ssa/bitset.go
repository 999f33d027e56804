package ssa

// bitset is a word-sliced fixed-size bit vector, grounded on
// original_source/lang/src/base.h's Bitset{bit_count,p[1]}. Used by
// mem2reg.go to track per-slot var_kill/ue_var/live_out sets over basic
// blocks during the liveness fixed-point computation in spec.md §4.4.4.
type bitset struct {
	bits  int
	words []uint32
}

func numWordsForBits(bits int) int {
	return (bits + 31) / 32
}

func newBitset(bits int) bitset {
	return bitset{bits: bits, words: make([]uint32, numWordsForBits(bits))}
}

func (b *bitset) set(i int) {
	b.words[i/32] |= 1 << (uint(i) % 32)
}

func (b *bitset) unset(i int) {
	b.words[i/32] &^= 1 << (uint(i) % 32)
}

func (b *bitset) get(i int) bool {
	return b.words[i/32]&(1<<(uint(i)%32)) != 0
}

// clear zeroes every word.
func (b *bitset) clear() {
	for i := range b.words {
		b.words[i] = 0
	}
}

// orAndNot computes, word by word: dst = a | (b &^ c). This is the exact
// shape of opt.c's liveness recurrence
// `live_out_u[n] = ue_var[n] | (live_out[n] &^ var_kill[n])`
// reused generically here for clarity at each call site in mem2reg.go.
func orAndNot(dst, a, b, c *bitset) bool {
	changed := false
	for i := range dst.words {
		v := a.words[i] | (b.words[i] &^ c.words[i])
		if v != dst.words[i] {
			changed = true
		}
		dst.words[i] = v
	}
	return changed
}
