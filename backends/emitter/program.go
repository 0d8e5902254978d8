package emitter

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gomlx/gopjrt/dtypes"

	"github.com/emlift/emlift/backends"
	"github.com/emlift/emlift/types/layouts"
)

// Ref is the emitter's concrete Op: the index of the instruction whose
// (deferred) result it refers to.
type Ref int

// InvalidRef is returned for emitted instructions that produce no value.
const InvalidRef = Ref(-1)

// OpCode identifies one emitted instruction.
type OpCode int

//go:generate go tool enumer -type=OpCode -trimprefix=Op -output=gen_opcode_enumer.go program.go

const (
	OpInvalid OpCode = iota
	OpAlloc
	OpConst
	OpLoopStart
	OpLoopEnd
	OpLoad
	OpStore
	OpBinary
	OpCall
	OpFree
)

// Instr is one emitted instruction. Which fields are meaningful depends on
// Code:
//
//   - OpAlloc: DType, Layout. Result is the storage.
//   - OpConst: DType, Imm (a scalar immediate or imported flat data), Layout.
//   - OpLoopStart: Imm is the extent (an int). Result is the induction
//     variable, always Int32.
//   - OpLoopEnd: Args[0] is the matching OpLoopStart.
//   - OpLoad: Args[0] is the storage, Args[1:] the per-dimension indices.
//   - OpStore: Args[0] is the storage, Args[1] the value, Args[2:] the
//     indices. No result.
//   - OpBinary: BinOp, Args[0] and Args[1]. Result has the operands' DType.
//   - OpCall: Symbol (emitted verbatim when the declaration is undecorated),
//     DType of the return value, Args are the call arguments.
//   - OpFree: Args[0] is the storage being released. No result.
type Instr struct {
	Code   OpCode
	DType  dtypes.DType
	Layout layouts.Layout
	BinOp  backends.BinaryOpType
	Args   []Ref
	Symbol string
	Imm    any
}

// Program is the portable instruction stream produced by the emitting
// context, to be translated and executed by a native code-generation backend.
type Program struct {
	id     string
	name   string
	instrs []Instr
}

// NewProgram returns an empty program with a unique id.
func NewProgram(name string) *Program {
	return &Program{id: uuid.NewString(), name: name}
}

// ID is the program's unique identifier.
func (p *Program) ID() string { return p.id }

// Name of the computation being built.
func (p *Program) Name() string { return p.name }

// NumInstructions emitted so far.
func (p *Program) NumInstructions() int { return len(p.instrs) }

// Instruction returns the instruction a Ref refers to.
func (p *Program) Instruction(ref Ref) Instr { return p.instrs[ref] }

func (p *Program) add(instr Instr) Ref {
	p.instrs = append(p.instrs, instr)
	return Ref(len(p.instrs) - 1)
}

// String disassembles the program, one instruction per line.
func (p *Program) String() string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "program %q (%s)\n", p.name, p.id)
	for i, instr := range p.instrs {
		_, _ = fmt.Fprintf(&b, "  %s\n", p.disassemble(Ref(i), instr))
	}
	return b.String()
}

func (p *Program) disassemble(ref Ref, instr Instr) string {
	refs := func(args []Ref) string {
		parts := make([]string, len(args))
		for i, arg := range args {
			parts[i] = fmt.Sprintf("%%%d", arg)
		}
		return strings.Join(parts, ", ")
	}
	switch instr.Code {
	case OpAlloc:
		return fmt.Sprintf("%%%d = alloc %s %s", ref, instr.DType, instr.Layout)
	case OpConst:
		return fmt.Sprintf("%%%d = const %s %v", ref, instr.DType, instr.Imm)
	case OpLoopStart:
		return fmt.Sprintf("%%%d = loop %v", ref, instr.Imm)
	case OpLoopEnd:
		return fmt.Sprintf("loop_end %%%d", instr.Args[0])
	case OpLoad:
		return fmt.Sprintf("%%%d = load %%%d[%s]", ref, instr.Args[0], refs(instr.Args[1:]))
	case OpStore:
		return fmt.Sprintf("store %%%d[%s] <- %%%d", instr.Args[0], refs(instr.Args[2:]), instr.Args[1])
	case OpBinary:
		return fmt.Sprintf("%%%d = %s %s", ref, strings.ToLower(instr.BinOp.String()), refs(instr.Args))
	case OpCall:
		return fmt.Sprintf("%%%d = call %s(%s)", ref, instr.Symbol, refs(instr.Args))
	case OpFree:
		return fmt.Sprintf("free %%%d", instr.Args[0])
	}
	return fmt.Sprintf("%%%d = %s?", ref, instr.Code)
}
