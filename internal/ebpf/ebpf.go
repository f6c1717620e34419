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

// Package ebpf provides the flat namespace of eBPF opcode bytes that the
// assembler's mnemonic table is built from, plus the low-level 8-byte wire
// encoding of a single instruction. It plays the role of the "VM module"
// that a loader or interpreter would otherwise supply.
package ebpf

import "encoding/binary"

// InstructionSize is the width in bytes of one eBPF instruction record.
const InstructionSize = 8

// Register is an eBPF virtual machine register index, r0 through r10.
type Register uint8

const (
	R0 Register = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
	R8
	R9
	R10

	// FP is the read-only frame pointer register.
	FP = R10
)

// Instruction class bits (low 3 bits of the opcode byte).
const (
	BPF_LD    = 0x00
	BPF_LDX   = 0x01
	BPF_ST    = 0x02
	BPF_STX   = 0x03
	BPF_ALU   = 0x04
	BPF_JMP   = 0x05
	BPF_RET   = 0x06
	BPF_ALU64 = 0x07
	classMask = 0x07
)

// Size bits (bits 3-4), used by memory instructions.
const (
	BPF_W  = 0x00
	BPF_H  = 0x08
	BPF_B  = 0x10
	BPF_DW = 0x18
)

// Addressing mode bits (top 3 bits), used by memory instructions.
const (
	modeImm = 0x00
	// BPF_MEM is the general-purpose memory addressing mode.
	BPF_MEM = 0x60
)

// ALU/jump operation bits (top 4 bits of the opcode byte).
const (
	BPF_ADD  = 0x00
	BPF_SUB  = 0x10
	BPF_MUL  = 0x20
	BPF_DIV  = 0x30
	BPF_OR   = 0x40
	BPF_AND  = 0x50
	BPF_LSH  = 0x60
	BPF_RSH  = 0x70
	negOp    = 0x80
	BPF_MOD  = 0x90
	BPF_XOR  = 0xa0
	BPF_MOV  = 0xb0
	BPF_ARSH = 0xc0
	endOp    = 0xd0
)

// Jump condition bits (top 4 bits of the opcode byte, BPF_JMP class).
const (
	jaOp     = 0x00
	BPF_JEQ  = 0x10
	BPF_JGT  = 0x20
	BPF_JGE  = 0x30
	BPF_JSET = 0x40
	BPF_JNE  = 0x50
	BPF_JSGT = 0x60
	BPF_JSGE = 0x70
	callOp   = 0x80
	exitOp   = 0x90
)

// Source-operand bit: BPF_K means the source is an immediate, BPF_X means
// the source is a register.
const (
	BPF_K = 0x00
	BPF_X = 0x08
)

// Endian-swap direction, OR'd into BPF_ALU|endOp.
const (
	toLE = 0x00
	toBE = 0x08
)

// Miscellaneous named opcodes that don't belong to one of the families
// above.
const (
	BPF_EXIT  = BPF_JMP | exitOp | BPF_K
	JA        = BPF_JMP | jaOp | BPF_K
	CALL      = BPF_JMP | callOp | BPF_K
	BE        = BPF_ALU | endOp | toBE
	LE        = BPF_ALU | endOp | toLE
	LD_DW_IMM = BPF_LD | modeImm | BPF_DW
	NEG32     = BPF_ALU | negOp
	NEG64     = BPF_ALU64 | negOp
)

// Insn is the logical content of one 8-byte eBPF instruction record.
type Insn struct {
	Op  uint8
	Dst Register
	Src Register
	Off int16
	Imm int32
}

// Bytes packs the instruction into the Linux eBPF on-wire layout:
// opcode(1) | src<<4|dst (1) | offset(2, LE) | immediate(4, LE).
func (n Insn) Bytes() [InstructionSize]byte {
	var out [InstructionSize]byte
	out[0] = n.Op
	out[1] = uint8(n.Src)<<4 | uint8(n.Dst)&0x0f
	binary.LittleEndian.PutUint16(out[2:4], uint16(n.Off))
	binary.LittleEndian.PutUint32(out[4:8], uint32(n.Imm))
	return out
}

// MakeInsn builds an Insn from its logical fields, storing dst/src as
// given; only Bytes narrows them to the 4-bit wire fields.
func MakeInsn(op uint8, dst, src Register, off int16, imm int32) Insn {
	return Insn{Op: op, Dst: dst, Src: src, Off: off, Imm: imm}
}

// Class returns the instruction-class bits of the opcode.
func (n Insn) Class() uint8 {
	return n.Op & classMask
}

// IsDoubleWordLoad reports whether op is the first half of a two-slot
// lddw instruction.
func IsDoubleWordLoad(op uint8) bool {
	return op == LD_DW_IMM
}
