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

package ebpf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsnBytesLayout(t *testing.T) {
	n := MakeInsn(BPF_MEM|BPF_LDX|BPF_W, R1, R2, 5, 0)
	got := n.Bytes()
	assert.Equal(t, [InstructionSize]byte{
		BPF_MEM | BPF_LDX | BPF_W,
		uint8(R2)<<4 | uint8(R1),
		5, 0,
		0, 0, 0, 0,
	}, got)
}

func TestClassExtractsLowThreeBits(t *testing.T) {
	n := MakeInsn(BPF_ALU64|BPF_ADD|BPF_X, R1, R3, 0, 0)
	assert.Equal(t, uint8(BPF_ALU64), n.Class())
}

func TestIsDoubleWordLoad(t *testing.T) {
	assert.True(t, IsDoubleWordLoad(LD_DW_IMM))
	assert.False(t, IsDoubleWordLoad(BPF_EXIT))
}
