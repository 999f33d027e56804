package ssa

// immTable is a fixed-capacity, linear-probing hash table mapping a
// register to the integer value an Imm instruction gave it, sized
// 2*numRegs per spec.md §4.3 and hashed with the same FNV-1a function
// original_source/lang/src/base.h uses for its other hash tables.
type immTable struct {
	keys []Reg
	vals []int64
	used []bool
}

func newImmTable(numRegs int) *immTable {
	cap := 2 * numRegs
	if cap < 4 {
		cap = 4
	}
	return &immTable{
		keys: make([]Reg, cap),
		vals: make([]int64, cap),
		used: make([]bool, cap),
	}
}

// fnv1aHashReg hashes a register id the way base.h's fnv_1_a_hash hashes
// a byte string, treating the 4-byte little-endian encoding of the
// register id as the hashed bytes.
func fnv1aHashReg(r Reg) uint64 {
	const offset uint64 = 0xcbf29ce484222325
	const prime uint64 = 0x100000001b3
	h := offset
	v := uint32(r)
	for i := 0; i < 4; i++ {
		h ^= uint64(byte(v))
		h *= prime
		v >>= 8
	}
	return h
}

func (t *immTable) insert(r Reg, v int64) {
	n := len(t.keys)
	i := int(fnv1aHashReg(r) % uint64(n))
	for {
		if !t.used[i] {
			t.used[i], t.keys[i], t.vals[i] = true, r, v
			return
		}
		if t.keys[i] == r {
			t.vals[i] = v
			return
		}
		i = (i + 1) % n
	}
}

func (t *immTable) lookup(r Reg) (int64, bool) {
	n := len(t.keys)
	i := int(fnv1aHashReg(r) % uint64(n))
	for probed := 0; probed < n; probed++ {
		if !t.used[i] {
			return 0, false
		}
		if t.keys[i] == r {
			return t.vals[i], true
		}
		i = (i + 1) % n
	}
	return 0, false
}

// FoldImmediates replaces every register operand that is known (from a
// prior Imm instruction) to hold a constant with that constant directly,
// then removes the now-dead Imm instruction, per spec.md §4.3. This runs
// once, before mem-to-reg — spec.md §9 notes a second round after mem2reg
// is a "forward-compatible extension, not required", so none is performed
// here (see DESIGN.md's Open Question decisions).
func FoldImmediates(fn *Function) {
	table := newImmTable(fn.NumRegs())

	var immInstrs []*Instruction
	for b := fn.firstBlock; b != nil; b = b.next {
		for _, in := range b.Instructions() {
			if in.Op == OpImm {
				table.insert(in.Dest, in.Arg0.Integer)
				immInstrs = append(immInstrs, in)
			}
		}
	}

	fold := func(v Value) Value {
		if v.Kind != ValueRegister {
			return v
		}
		if iv, ok := table.lookup(v.Reg); ok {
			return IntegerValue(iv)
		}
		return v
	}

	for b := fn.firstBlock; b != nil; b = b.next {
		for _, in := range b.Instructions() {
			switch in.Op {
			case OpImm, OpPhi:
				// Not folded: Imm has no register operand, and phi
				// parameters are plain registers rather than Values.
			default:
				in.Arg0 = fold(in.Arg0)
				in.Arg1 = fold(in.Arg1)
				in.Branch = fold(in.Branch)
			}
		}
	}

	for _, in := range immInstrs {
		fn.removeInstruction(in)
		fn.numRegs--
	}
}
