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
	"strings"

	"github.com/pkg/errors"
)

// ParseError reports malformed source text: an unexpected character, an
// unclosed bracket, a non-alphanumeric identifier start, an out-of-range
// integer literal, or a missing comma.
type ParseError struct {
	Pos     int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at byte %d: %s", e.Pos, e.Message)
}

func newParseError(pos int, format string, args ...interface{}) error {
	return errors.WithStack(&ParseError{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// UnknownMnemonicError reports an instruction name absent from the
// mnemonic table.
type UnknownMnemonicError struct {
	Name string
}

func (e *UnknownMnemonicError) Error() string {
	return fmt.Sprintf("unknown mnemonic: %q", e.Name)
}

// BadOperandsError reports a mnemonic that was resolved in the table but
// whose normalised operand tuple matches no encoding rule for its
// category, including the too-many-operands case.
type BadOperandsError struct {
	Name     string
	Operands []Operand
}

func (e *BadOperandsError) Error() string {
	parts := make([]string, len(e.Operands))
	for i, o := range e.Operands {
		parts[i] = o.String()
	}
	return fmt.Sprintf("bad operands for %q: (%s)", e.Name, strings.Join(parts, ", "))
}

func newUnknownMnemonicError(name string) error {
	return errors.WithStack(&UnknownMnemonicError{Name: name})
}

func newBadOperandsError(name string, operands []Operand) error {
	return errors.WithStack(&BadOperandsError{Name: name, Operands: operands})
}

// wrapf attaches the offending mnemonic's name as context to an
// already-formed error, per the encoder's fail-fast contract.
func wrapf(err error, name string) error {
	return errors.Wrapf(err, "instruction %q", name)
}
