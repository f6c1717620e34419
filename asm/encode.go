// Copyright (c) 2026 The ebpfasm Authors.

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package asm

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/bpfutils/ebpfasm/internal/ebpf"
)

// Options configures the encoder's handling of the two points spec.md
// leaves ambiguous: whether an out-of-range register or an immediate
// that would be truncated at encode time is silently accepted (mirroring
// the historical, truncating behaviour) or rejected outright.
type Options struct {
	// Strict, when true, rejects a register index outside 0..=10 and an
	// immediate/displacement that does not fit in its target field width,
	// instead of silently truncating it. Defaults to false.
	Strict bool
}

// operandTuple is the operand list normalised to a fixed 3-tuple by
// right-padding with Nil, the single dispatch shape the encoder matches
// against.
type operandTuple [3]Operand

func normaliseOperands(name string, operands []Operand) (operandTuple, error) {
	if len(operands) > 3 {
		return operandTuple{}, newBadOperandsError(name, operands)
	}
	var t operandTuple
	for i := range t {
		t[i] = NilOperand
	}
	for i, o := range operands {
		t[i] = o
	}
	return t, nil
}

// Assemble parses and encodes source in the default, non-strict mode
// that reproduces spec.md's documented truncating behaviour verbatim.
func Assemble(source string) ([]EncodedInsn, error) {
	return AssembleWithOptions(source, Options{})
}

// AssembleWithOptions parses and encodes source under the given Options.
func AssembleWithOptions(source string, opts Options) ([]EncodedInsn, error) {
	instructions, err := parseProgram(source)
	if err != nil {
		return nil, err
	}

	var out []EncodedInsn
	for _, inst := range instructions {
		insns, err := encodeInstruction(inst, opts)
		if err != nil {
			return nil, wrapf(err, inst.Name)
		}
		log.WithField("mnemonic", inst.Name).Debugf("encoded %d record(s)", len(insns))
		out = append(out, insns...)
	}
	return out, nil
}

// enc carries the per-instruction state the category handlers need:
// the options in force and an accumulator for the first strict-mode
// range violation encountered, checked once after the shape match
// succeeds so a shape mismatch is still reported as BadOperands rather
// than a range error.
type enc struct {
	opts Options
	err  error
}

func (e *enc) reg(o Operand) ebpf.Register {
	if e.err == nil && e.opts.Strict && (o.Reg < 0 || o.Reg > 10) {
		e.err = fmt.Errorf("register out of range 0..=10: r%d", o.Reg)
	}
	return ebpf.Register(uint8(o.Reg))
}

func (e *enc) regN(n int64) ebpf.Register {
	if e.err == nil && e.opts.Strict && (n < 0 || n > 10) {
		e.err = fmt.Errorf("register out of range 0..=10: r%d", n)
	}
	return ebpf.Register(uint8(n))
}

func (e *enc) imm32(o Operand) int32 {
	if e.err == nil && e.opts.Strict {
		if o.Imm < -(1<<31) || o.Imm > (1<<31)-1 {
			e.err = fmt.Errorf("immediate does not fit in 32 bits: %d", o.Imm)
		}
	}
	return int32(uint32(o.Imm))
}

func (e *enc) off16(disp int64) int16 {
	if e.err == nil && e.opts.Strict {
		if disp < -(1<<15) || disp > (1<<15)-1 {
			e.err = fmt.Errorf("offset does not fit in 16 bits: %d", disp)
		}
	}
	return int16(uint16(disp))
}

func encodeInstruction(inst ParsedInstruction, opts Options) ([]EncodedInsn, error) {
	entry, ok := mnemonics[inst.Name]
	if !ok {
		return nil, newUnknownMnemonicError(inst.Name)
	}

	tuple, err := normaliseOperands(inst.Name, inst.Operands)
	if err != nil {
		return nil, err
	}
	a, b, c := tuple[0], tuple[1], tuple[2]
	e := &enc{opts: opts}

	var insns []EncodedInsn
	matched := true

	switch entry.Category {
	case NoOperand:
		if a.Kind == Nil && b.Kind == Nil && c.Kind == Nil {
			insns = one(ebpf.MakeInsn(entry.BaseOp, 0, 0, 0, 0))
		} else {
			matched = false
		}

	case AluBinary:
		switch {
		case a.Kind == Register && b.Kind == Register && c.Kind == Nil:
			insns = one(ebpf.MakeInsn(entry.BaseOp|ebpf.BPF_X, e.reg(a), e.reg(b), 0, 0))
		case a.Kind == Register && b.Kind == Integer && c.Kind == Nil:
			insns = one(ebpf.MakeInsn(entry.BaseOp|ebpf.BPF_K, e.reg(a), 0, 0, e.imm32(b)))
		default:
			matched = false
		}

	case AluUnary:
		if a.Kind == Register && b.Kind == Nil && c.Kind == Nil {
			insns = one(ebpf.MakeInsn(entry.BaseOp, e.reg(a), 0, 0, 0))
		} else {
			matched = false
		}

	case LoadReg:
		if a.Kind == Register && b.Kind == Memory && c.Kind == Nil {
			insns = one(ebpf.MakeInsn(entry.BaseOp, e.reg(a), e.regN(b.Reg), e.off16(b.Disp), 0))
		} else {
			matched = false
		}

	case StoreImm:
		if a.Kind == Memory && b.Kind == Integer && c.Kind == Nil {
			insns = one(ebpf.MakeInsn(entry.BaseOp, e.regN(a.Reg), 0, e.off16(a.Disp), e.imm32(b)))
		} else {
			matched = false
		}

	case StoreReg:
		if a.Kind == Memory && b.Kind == Register && c.Kind == Nil {
			insns = one(ebpf.MakeInsn(entry.BaseOp, e.regN(a.Reg), e.reg(b), e.off16(a.Disp), 0))
		} else {
			matched = false
		}

	case JumpUnconditional:
		if a.Kind == Integer && b.Kind == Nil && c.Kind == Nil {
			insns = one(ebpf.MakeInsn(entry.BaseOp, 0, 0, e.off16(a.Imm), 0))
		} else {
			matched = false
		}

	case JumpConditional:
		switch {
		case a.Kind == Register && b.Kind == Register && c.Kind == Integer:
			insns = one(ebpf.MakeInsn(entry.BaseOp|ebpf.BPF_X, e.reg(a), e.reg(b), e.off16(c.Imm), 0))
		case a.Kind == Register && b.Kind == Integer && c.Kind == Integer:
			insns = one(ebpf.MakeInsn(entry.BaseOp|ebpf.BPF_K, e.reg(a), 0, e.off16(c.Imm), e.imm32(b)))
		default:
			matched = false
		}

	case Call:
		if a.Kind == Integer && b.Kind == Nil && c.Kind == Nil {
			insns = one(ebpf.MakeInsn(entry.BaseOp, 0, 0, 0, e.imm32(a)))
		} else {
			matched = false
		}

	case Endian:
		if a.Kind == Register && b.Kind == Nil && c.Kind == Nil {
			insns = one(ebpf.MakeInsn(entry.BaseOp, e.reg(a), 0, 0, entry.Width))
		} else {
			matched = false
		}

	case LoadImm:
		if a.Kind == Register && b.Kind == Integer && c.Kind == Nil {
			insns = encodeLoadImm64(entry, a, b, e)
		} else {
			matched = false
		}

	default:
		matched = false
	}

	if !matched {
		return nil, newBadOperandsError(inst.Name, inst.Operands)
	}
	if e.err != nil {
		return nil, e.err
	}
	return insns, nil
}

// encodeLoadImm64 emits the two-slot lddw expansion: the first record
// carries the real opcode, destination, and low 32 bits of the
// immediate; the second is opcode zero, carrying the high 32 bits,
// obtained by an arithmetic (sign-preserving) right shift. The full
// 64-bit immediate is always representable by construction, so there is
// nothing for strict mode to reject here beyond the destination
// register.
func encodeLoadImm64(entry mnemonicEntry, dst, imm Operand, e *enc) []EncodedInsn {
	v := imm.Imm
	low := int32(uint32(v))
	high := int32(v >> 32)
	first := ebpf.MakeInsn(entry.BaseOp, e.reg(dst), 0, 0, low)
	second := ebpf.MakeInsn(0, 0, 0, 0, high)
	return []EncodedInsn{first, second}
}

func one(n ebpf.Insn) []EncodedInsn {
	return []EncodedInsn{n}
}
