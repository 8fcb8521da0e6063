package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/leoschwarz/mbtestgen/internal/mbids"
	"github.com/leoschwarz/mbtestgen/internal/sample"
	"github.com/leoschwarz/mbtestgen/pkg/exitcode"
)

func TestRootCmd_Registration(t *testing.T) {
	if rootCmd.Use != "mbtestgen" {
		t.Errorf("Expected rootCmd.Use to be 'mbtestgen', got %q", rootCmd.Use)
	}

	expected := []string{"generate", "extract", "run", "version"}
	for _, name := range expected {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("rootCmd should have subcommand %q", name)
		}
	}
}

func TestRootCmd_NoSubcommandIsUsageError(t *testing.T) {
	err := rootCmd.RunE(rootCmd, []string{})
	if !errors.Is(err, errUsage) {
		t.Errorf("bare invocation should return errUsage, got %v", err)
	}
	if code := exitCodeFor(err); code != exitcode.UsageError {
		t.Errorf("bare invocation should exit %d, got %d", exitcode.UsageError, code)
	}
}

func TestHandleError_UnknownCommandPrintsHelp(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	code := handleError(errors.New(`unknown command "frobnicate" for "mbtestgen"`))
	if code != exitcode.UsageError {
		t.Errorf("unknown command should exit %d, got %d", exitcode.UsageError, code)
	}
	if !strings.Contains(buf.String(), "Usage:") {
		t.Errorf("unknown command should print usage help, got %q", buf.String())
	}
}

func TestHandleError_UsageSentinelSkipsSecondHelp(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	// The bare-invocation RunE prints help itself; handleError must not
	// duplicate it.
	code := handleError(errUsage)
	if code != exitcode.UsageError {
		t.Errorf("errUsage should exit %d, got %d", exitcode.UsageError, code)
	}
	if buf.Len() != 0 {
		t.Errorf("help should not be printed twice, got %q", buf.String())
	}
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"usage", errUsage, exitcode.UsageError},
		{"unknown command", errors.New(`unknown command "frobnicate" for "mbtestgen"`), exitcode.UsageError},
		{"fetch failed", fmt.Errorf("wrap: %w", mbids.ErrFetchFailed), exitcode.NetworkError},
		{"cache file missing", fmt.Errorf("wrap: %w", mbids.ErrCacheFileMissing), exitcode.FileSystemError},
		{"invalid mbid", fmt.Errorf("wrap: %w", mbids.ErrInvalidMBID), exitcode.ValidationError},
		{"insufficient samples", fmt.Errorf("wrap: %w", sample.ErrInsufficientSamples), exitcode.ValidationError},
		{"anything else", errors.New("boom"), exitcode.GeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.expected {
				t.Errorf("exitCodeFor(%v) = %d, expected %d", tt.err, got, tt.expected)
			}
		})
	}
}
