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

import "github.com/bpfutils/ebpfasm/internal/ebpf"

// EncodedInsn is the fixed-size logical content of one emitted
// instruction record: opc, dst/src (stored widened to a byte), off, and
// imm. The on-wire byte layout is delegated to the internal/ebpf
// package, which plays the role of the VM module spec.md treats as an
// external collaborator.
type EncodedInsn = ebpf.Insn

// Program is the ordered output of an assembly: a flat list of
// EncodedInsn records, with lddw contributing two consecutive entries.
type Program []EncodedInsn

// AsBytes concatenates the wire-format bytes of every record in the
// program, in order, yielding the raw instruction stream a loader or VM
// consumes directly.
func (p Program) AsBytes() []byte {
	out := make([]byte, 0, len(p)*ebpf.InstructionSize)
	for _, insn := range p {
		b := insn.Bytes()
		out = append(out, b[:]...)
	}
	return out
}
