package cmd

import "testing"

func TestRunCmd_Placeholder(t *testing.T) {
	if runCmd.Use != "run" {
		t.Errorf("Expected runCmd.Use to be 'run', got %q", runCmd.Use)
	}
	// The stub must succeed without doing anything.
	if err := runCmd.RunE(runCmd, []string{}); err != nil {
		t.Errorf("run stub should not return error: %v", err)
	}
}
