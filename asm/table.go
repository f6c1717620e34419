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

	"github.com/bpfutils/ebpfasm/internal/ebpf"
)

// Category classifies a mnemonic by its operand shape and opcode-combining
// rule.
type Category int

const (
	NoOperand Category = iota
	AluBinary
	AluUnary
	LoadReg
	LoadImm
	StoreImm
	StoreReg
	JumpUnconditional
	JumpConditional
	Call
	Endian
)

func (c Category) String() string {
	switch c {
	case NoOperand:
		return "NoOperand"
	case AluBinary:
		return "AluBinary"
	case AluUnary:
		return "AluUnary"
	case LoadReg:
		return "LoadReg"
	case LoadImm:
		return "LoadImm"
	case StoreImm:
		return "StoreImm"
	case StoreReg:
		return "StoreReg"
	case JumpUnconditional:
		return "JumpUnconditional"
	case JumpConditional:
		return "JumpConditional"
	case Call:
		return "Call"
	case Endian:
		return "Endian"
	default:
		return "Unknown"
	}
}

// mnemonicEntry is the value half of the mnemonic table: the category a
// name belongs to, its base opcode, and (for Endian only) the payload
// width copied into the emitted imm field.
type mnemonicEntry struct {
	Category Category
	BaseOp   uint8
	Width    int32
}

// mnemonics is the immutable name -> (Category, baseOpcode) table, built
// once at package init and shared read-only across calls.
var mnemonics = buildMnemonicTable()

func buildMnemonicTable() map[string]mnemonicEntry {
	t := make(map[string]mnemonicEntry)
	add := func(name string, e mnemonicEntry) {
		if _, dup := t[name]; dup {
			panic(fmt.Sprintf("ebpfasm: duplicate mnemonic %q in table construction", name))
		}
		t[name] = e
	}

	// Miscellaneous, explicit entries.
	add("exit", mnemonicEntry{NoOperand, ebpf.BPF_EXIT, 0})
	add("ja", mnemonicEntry{JumpUnconditional, ebpf.JA, 0})
	add("call", mnemonicEntry{Call, ebpf.CALL, 0})
	add("lddw", mnemonicEntry{LoadImm, ebpf.LD_DW_IMM, 0})

	// Unary ALU: neg is an alias for the 64-bit form.
	add("neg", mnemonicEntry{AluUnary, ebpf.NEG64, 0})
	add("neg32", mnemonicEntry{AluUnary, ebpf.NEG32, 0})
	add("neg64", mnemonicEntry{AluUnary, ebpf.NEG64, 0})

	// Binary ALU family: bare name aliases the 64-bit form.
	aluOps := []struct {
		name string
		op   uint8
	}{
		{"add", ebpf.BPF_ADD},
		{"sub", ebpf.BPF_SUB},
		{"mul", ebpf.BPF_MUL},
		{"div", ebpf.BPF_DIV},
		{"or", ebpf.BPF_OR},
		{"and", ebpf.BPF_AND},
		{"lsh", ebpf.BPF_LSH},
		{"rsh", ebpf.BPF_RSH},
		{"mod", ebpf.BPF_MOD},
		{"xor", ebpf.BPF_XOR},
		{"mov", ebpf.BPF_MOV},
		{"arsh", ebpf.BPF_ARSH},
	}
	for _, a := range aluOps {
		add(a.name, mnemonicEntry{AluBinary, ebpf.BPF_ALU64 | a.op, 0})
		add(a.name+"32", mnemonicEntry{AluBinary, ebpf.BPF_ALU | a.op, 0})
		add(a.name+"64", mnemonicEntry{AluBinary, ebpf.BPF_ALU64 | a.op, 0})
	}

	// Memory family: one (LoadReg/StoreImm/StoreReg) triple per size suffix.
	memSizes := []struct {
		suffix string
		size   uint8
	}{
		{"w", ebpf.BPF_W},
		{"h", ebpf.BPF_H},
		{"b", ebpf.BPF_B},
		{"dw", ebpf.BPF_DW},
	}
	for _, m := range memSizes {
		add("ldx"+m.suffix, mnemonicEntry{LoadReg, ebpf.BPF_MEM | ebpf.BPF_LDX | m.size, 0})
		add("st"+m.suffix, mnemonicEntry{StoreImm, ebpf.BPF_MEM | ebpf.BPF_ST | m.size, 0})
		add("stx"+m.suffix, mnemonicEntry{StoreReg, ebpf.BPF_MEM | ebpf.BPF_STX | m.size, 0})
	}

	// Conditional jumps.
	jumpConds := []struct {
		name string
		cond uint8
	}{
		{"jeq", ebpf.BPF_JEQ},
		{"jgt", ebpf.BPF_JGT},
		{"jge", ebpf.BPF_JGE},
		{"jset", ebpf.BPF_JSET},
		{"jne", ebpf.BPF_JNE},
		{"jsgt", ebpf.BPF_JSGT},
		{"jsge", ebpf.BPF_JSGE},
	}
	for _, j := range jumpConds {
		add(j.name, mnemonicEntry{JumpConditional, ebpf.BPF_JMP | j.cond, 0})
	}

	// Endian conversions: width is carried as the Endian payload and copied
	// into imm at encode time.
	for _, width := range []int32{16, 32, 64} {
		add(fmt.Sprintf("be%d", width), mnemonicEntry{Endian, ebpf.BE, width})
		add(fmt.Sprintf("le%d", width), mnemonicEntry{Endian, ebpf.LE, width})
	}

	return t
}
