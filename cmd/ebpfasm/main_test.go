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

package main

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/afero"

	"github.com/bpfutils/ebpfasm/internal/config"
)

var _ = Describe("assembleFile", func() {
	var fs afero.Fs

	BeforeEach(func() {
		fs = afero.NewMemMapFs()
	})

	writeSource := func(contents string) string {
		const path = "prog.S"
		Expect(afero.WriteFile(fs, path, []byte(contents), 0o644)).To(Succeed())
		return path
	}

	It("writes the encoded stream to the given writer when OutPath is empty", func() {
		path := writeSource("exit\n")
		var buf bytes.Buffer

		err := assembleFile(config.Config{SourcePath: path}, fs, &buf)

		Expect(err).NotTo(HaveOccurred())
		Expect(buf.Bytes()).To(Equal([]byte{0x95, 0, 0, 0, 0, 0, 0, 0}))
	})

	It("writes to OutPath instead of the writer when set", func() {
		path := writeSource("exit\n")
		const outPath = "out.bin"
		var buf bytes.Buffer

		err := assembleFile(config.Config{SourcePath: path, OutPath: outPath}, fs, &buf)

		Expect(err).NotTo(HaveOccurred())
		Expect(buf.Bytes()).To(BeEmpty())

		written, err := afero.ReadFile(fs, outPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(written).To(Equal([]byte{0x95, 0, 0, 0, 0, 0, 0, 0}))
	})

	It("rejects a configuration with no source path before touching the filesystem", func() {
		var buf bytes.Buffer
		err := assembleFile(config.Config{}, fs, &buf)
		Expect(err).To(HaveOccurred())
	})

	It("surfaces assembly errors instead of writing partial output", func() {
		path := writeSource("bogus r1\n")
		var buf bytes.Buffer

		err := assembleFile(config.Config{SourcePath: path}, fs, &buf)

		Expect(err).To(HaveOccurred())
		Expect(buf.Bytes()).To(BeEmpty())
	})
})
