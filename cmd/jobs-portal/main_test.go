package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestCheckCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no token to jobs", []string{"/jobs"}, "redirect /"},
		{"token to jobs", []string{"/jobs", "--token", "abc123"}, "allow"},
		{"token to landing", []string{"/", "--token", "abc123"}, "redirect /jobs"},
		{"empty token to landing", []string{"/", "--token", ""}, "redirect /jobs"},
		{"no token to landing", []string{"/"}, "allow"},
		{"token to about", []string{"/about", "--token", "abc123"}, "allow"},
		{"server render", []string{"/jobs", "--server-render"}, "allow"},
		{"from is ignored", []string{"/jobs", "--from", "/jobs"}, "redirect /"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, newCheckCmd(), tt.args...)
			if err != nil {
				t.Fatalf("execute: %v", err)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCheckCmd_Profile(t *testing.T) {
	dir := t.TempDir()

	got, err := execute(t, newCheckCmd(), "/", "--profile", dir)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got != "allow" {
		t.Errorf("empty profile: output = %q, want allow", got)
	}

	if err := os.WriteFile(filepath.Join(dir, "authToken"), []byte("abc123\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err = execute(t, newCheckCmd(), "/", "--profile", dir)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got != "redirect /jobs" {
		t.Errorf("signed-in profile: output = %q, want %q", got, "redirect /jobs")
	}
}

func TestCheckCmd_TokenAndProfileConflict(t *testing.T) {
	if _, err := execute(t, newCheckCmd(), "/", "--token", "x", "--profile", t.TempDir()); err == nil {
		t.Fatal("expected error for --token with --profile")
	}
}

func TestCheckCmd_RequiresPath(t *testing.T) {
	if _, err := execute(t, newCheckCmd()); err == nil {
		t.Fatal("expected error without PATH")
	}
}

func TestVersionCmd(t *testing.T) {
	got, err := execute(t, newVersionCmd())
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.HasPrefix(got, "jobs-portal dev") {
		t.Errorf("output = %q", got)
	}
}
