package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	SetVersionInfo("1.2.3", "abc123", "2026-08-01")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"version"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version command returned error: %v", err)
	}
	if appVersion != "1.2.3" || appCommit != "abc123" || appDate != "2026-08-01" {
		t.Errorf("version info not applied: %s %s %s", appVersion, appCommit, appDate)
	}
}

func TestCheckoutRequiresBranchArg(t *testing.T) {
	rootCmd.SetArgs([]string{"checkout"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error when running 'checkout' without arguments")
	}
}

func TestCheckoutAliasAndFlags(t *testing.T) {
	found := false
	for _, a := range checkoutCmd.Aliases {
		if a == "co" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected 'co' in checkout aliases, got %v", checkoutCmd.Aliases)
	}

	f := checkoutCmd.Flags().Lookup("no-restore")
	if f == nil {
		t.Fatal("--no-restore flag not registered on checkout command")
	}
	if f.DefValue != "false" {
		t.Errorf("--no-restore default = %q", f.DefValue)
	}
}

func TestResumeAlias(t *testing.T) {
	found := false
	for _, a := range resumeCmd.Aliases {
		if a == "-" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected '-' in resume aliases, got %v", resumeCmd.Aliases)
	}
}

func TestListAlias(t *testing.T) {
	found := false
	for _, a := range listCmd.Aliases {
		if a == "ls" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected 'ls' in list aliases, got %v", listCmd.Aliases)
	}
}

func TestInitSlotsFlag(t *testing.T) {
	f := initCmd.Flags().Lookup("slots")
	if f == nil {
		t.Fatal("--slots flag not registered on init command")
	}
	if f.DefValue != "3" {
		t.Errorf("--slots default = %q, want 3", f.DefValue)
	}
}

func TestShellInitEmitsFunction(t *testing.T) {
	for _, shell := range []string{"bash", "zsh"} {
		if !strings.Contains(shellInitBashZsh, "wt-nav-$$") {
			t.Errorf("%s snippet does not read the per-shell nav file", shell)
		}
	}
	if !strings.Contains(shellInitFish, "wt-nav-$fish_pid") {
		t.Error("fish snippet does not read the per-shell nav file")
	}
	for _, snippet := range []string{shellInitBashZsh, shellInitFish} {
		if !strings.Contains(snippet, "cd ") {
			t.Error("snippet never changes directory")
		}
		if !strings.Contains(snippet, "rm -f") {
			t.Error("snippet never unlinks the nav file")
		}
	}
}

func TestShellInitRejectsUnknownShell(t *testing.T) {
	rootCmd.SetArgs([]string{"shell-init", "powershell"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error for unsupported shell")
	}
}

func TestRootCommandHelp(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"--help"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("--help returned error: %v", err)
	}
	if buf.String() == "" {
		t.Error("expected help output, got empty string")
	}
}
