// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

// TestScripts runs every archive in testdata. The archive comment holds
// one go-remap command per line; the remaining files are written to a
// temporary working directory, except stdout and stderr, which hold the
// expected output of all commands together.
func TestScripts(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txt")
	require.NoError(t, err)
	require.NotEmpty(t, files, "no test cases")

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			ar, err := txtar.ParseFile(file)
			require.NoError(t, err)

			dir := t.TempDir()
			var wantStdout, wantStderr []byte
			for _, f := range ar.Files {
				switch f.Name {
				case "stdout":
					wantStdout = f.Data
				case "stderr":
					wantStderr = f.Data
				default:
					targ := filepath.Join(dir, f.Name)
					require.NoError(t, os.MkdirAll(filepath.Dir(targ), 0o755))
					require.NoError(t, os.WriteFile(targ, f.Data, 0o644))
				}
			}
			t.Chdir(dir)

			var stdout, stderr bytes.Buffer
			for _, line := range strings.Split(string(ar.Comment), "\n") {
				args := strings.Fields(line)
				if len(args) == 0 || strings.HasPrefix(args[0], "#") {
					continue
				}
				require.Equal(t, "go-remap", args[0], "command line %q", line)

				root := newRootCmd()
				root.SetArgs(args[1:])
				root.SetOut(&stdout)
				root.SetErr(&stderr)
				if err := root.Execute(); err != nil {
					fmt.Fprintf(&stderr, "ERROR: %v\n", err)
				}
			}

			assert.Equal(t, normalize(wantStdout), normalize(stdout.Bytes()), "stdout")
			assert.Equal(t, normalize(wantStderr), normalize(stderr.Bytes()), "stderr")
		})
	}
}

// normalize drops trailing blanks on each line and surrounding blank lines.
func normalize(data []byte) string {
	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := newLogger(&buf, "info", "text")
	require.NoError(t, err)
	log.Debug("hidden")
	log.Info("shown", "k", "v")
	assert.Equal(t, "level=INFO msg=shown k=v\n", buf.String())

	buf.Reset()
	log, err = newLogger(&buf, "ERROR", "json")
	require.NoError(t, err)
	log.Warn("hidden")
	log.Error("shown")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewLogger_Invalid(t *testing.T) {
	tests := []struct {
		name, level, format, want string
	}{
		{"level", "loud", "text", `unknown log level "loud"`},
		{"format", "warn", "xml", `unknown log format "xml"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newLogger(&bytes.Buffer{}, tt.level, tt.format)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
