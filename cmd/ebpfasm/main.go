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

// Command ebpfasm reads an eBPF mnemonic source file and writes the
// assembled instruction stream as raw bytes.
package main

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bpfutils/ebpfasm/asm"
	"github.com/bpfutils/ebpfasm/internal/config"
)

var v = viper.New()

var rootCmd = &cobra.Command{
	Use:   "ebpfasm <source-file>",
	Short: "Assemble eBPF mnemonic source into binary instruction records",
	Args:  cobra.ExactArgs(1),
	RunE:  run,
}

func init() {
	rootCmd.Flags().Bool("strict", false, "reject out-of-range registers and immediates instead of truncating them")
	rootCmd.Flags().StringP("out", "o", "", "output path for the encoded instruction stream (default: stdout)")
	rootCmd.Flags().BoolP("verbose", "v", false, "enable debug-level logging of each parsed and encoded instruction")

	v.SetEnvPrefix("EBPFASM")
	v.AutomaticEnv()
	_ = v.BindPFlag("strict", rootCmd.Flags().Lookup("strict"))
	_ = v.BindPFlag("out", rootCmd.Flags().Lookup("out"))
	_ = v.BindPFlag("verbose", rootCmd.Flags().Lookup("verbose"))
}

func run(cmd *cobra.Command, args []string) error {
	v.Set("source", args[0])

	var cfg config.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("reading configuration: %w", err)
	}
	return assembleFile(cfg, afero.NewOsFs(), os.Stdout)
}

// assembleFile runs the read -> assemble -> write pipeline for a
// resolved Config, independent of cobra/viper so it can be driven
// directly by tests. fs abstracts the filesystem (afero.NewOsFs() in
// production, an in-memory afero.Fs in tests); out is where the encoded
// stream goes when cfg.OutPath is empty.
func assembleFile(cfg config.Config, fs afero.Fs, out io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	source, err := afero.ReadFile(fs, cfg.SourcePath)
	if err != nil {
		log.WithError(err).Error("failed to read source file")
		return err
	}

	insns, err := asm.AssembleWithOptions(string(source), asm.Options{Strict: cfg.Strict})
	if err != nil {
		log.WithError(err).Error("assembly failed")
		return err
	}
	log.WithField("count", len(insns)).Debug("assembly complete")

	encoded := asm.Program(insns).AsBytes()
	if cfg.OutPath == "" {
		_, err = out.Write(encoded)
		return err
	}
	return afero.WriteFile(fs, cfg.OutPath, encoded, 0o644)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
