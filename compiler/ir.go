package compiler

// opKind enumerates the lowered instruction set both backends consume.
// Grounded on lcox74/bfcc's internal/core IR (Shift/Add/Zero/In/Out/Jz/Jnz);
// this module keeps the same shape but drops OpZero's scan-for-"[-]"
// recognition since fusing idioms beyond loop-level compilation is out
// of scope (spec.md Non-goals).
type opKind int

const (
	opShift opKind = iota
	opAdd
	opIn
	opOut
	opJz  // jump to Arg if *cell == 0
	opJnz // jump to Arg if *cell != 0
)

// op is one lowered instruction. Arg is a shift/add delta for opShift
// and opAdd, or a target instruction index for opJz/opJnz.
type op struct {
	kind opKind
	arg  int
}

// lower translates a balanced Brainfuck byte range into an op slice.
// A run of one repeated command ('>>>', '<<', '+++', '--') is folded
// into a single Shift/Add op with an accumulated delta -- a cheap win
// that falls within "no peephole fusion required, though permitted"
// from spec.md. Adjacent runs of different commands ("+++---") stay
// separate ops.
//
// lower does not itself validate bracket balance; its caller, Compile,
// rejects a region with an unmatched '[' (bracketDepth) before
// lowering it.
func lower(region []byte) []op {
	ops := make([]op, 0, len(region))
	jumpStack := make([]int, 0, 8)

	for i := 0; i < len(region); i++ {
		switch region[i] {
		case '>':
			delta := 0
			for i < len(region) && region[i] == '>' {
				delta++
				i++
			}
			i--
			ops = append(ops, op{kind: opShift, arg: delta})

		case '<':
			delta := 0
			for i < len(region) && region[i] == '<' {
				delta++
				i++
			}
			i--
			ops = append(ops, op{kind: opShift, arg: -delta})

		case '+':
			delta := 0
			for i < len(region) && region[i] == '+' {
				delta++
				i++
			}
			i--
			ops = append(ops, op{kind: opAdd, arg: delta & 0xff})

		case '-':
			delta := 0
			for i < len(region) && region[i] == '-' {
				delta++
				i++
			}
			i--
			ops = append(ops, op{kind: opAdd, arg: (-delta) & 0xff})

		case ',':
			ops = append(ops, op{kind: opIn})

		case '.':
			ops = append(ops, op{kind: opOut})

		case '[':
			ops = append(ops, op{kind: opJz})
			jumpStack = append(jumpStack, len(ops)-1)

		case ']':
			if len(jumpStack) == 0 {
				// Orphan ']' inside a region: tolerated no-op, matching
				// interpreter semantics -- drop it rather than emit a jump.
				continue
			}
			openIdx := jumpStack[len(jumpStack)-1]
			jumpStack = jumpStack[:len(jumpStack)-1]

			ops = append(ops, op{kind: opJnz, arg: openIdx + 1})
			ops[openIdx].arg = len(ops)
		}
	}

	return ops
}
