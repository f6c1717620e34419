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

// Package config holds the CLI driver's resolved configuration and its
// struct-tag validation, following the same package-level validator
// singleton this corpus's own API validation package uses.
package config

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var validate = validator.New()

// Config is the fully resolved configuration for the ebpfasm command,
// after flags and EBPFASM_* environment variables have been merged by
// viper.
type Config struct {
	// SourcePath is the assembly source file to read. Required.
	SourcePath string `mapstructure:"source" validate:"required"`

	// OutPath is where the encoded instruction stream is written. Empty
	// means stdout.
	OutPath string `mapstructure:"out"`

	// Strict selects asm.Options.Strict.
	Strict bool `mapstructure:"strict"`

	// Verbose raises the logrus level to Debug.
	Verbose bool `mapstructure:"verbose"`
}

// Validate checks the struct tags above, returning a wrapped error
// naming every field that failed.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}
