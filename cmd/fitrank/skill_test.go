// ABOUTME: Tests for the install-skill command.
// ABOUTME: Validates skill installation, confirmation handling, and embedded content.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInstallSkillWritesFile(t *testing.T) {
	home := t.TempDir()
	var out bytes.Buffer

	if err := installSkill(&out, strings.NewReader(""), home, true); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}

	path := filepath.Join(home, ".claude", "skills", "fitrank", "SKILL.md")
	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Skill file not created: %v", err)
	}
	embedded, _ := skillFS.ReadFile("skill/SKILL.md")
	if !bytes.Equal(written, embedded) {
		t.Error("Installed skill does not match embedded content")
	}
	if !strings.Contains(out.String(), "Installed fitrank skill") {
		t.Errorf("Expected success message, got:\n%s", out.String())
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode()&0600 != 0600 {
		t.Errorf("Expected file to be rw for owner, got %v", info.Mode())
	}
}

func TestInstallSkillConfirmation(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		installed bool
	}{
		{"yes", "y\n", true},
		{"yes word", "YES\n", true},
		{"no", "n\n", false},
		{"empty", "\n", false},
		{"eof", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := t.TempDir()
			var out bytes.Buffer

			if err := installSkill(&out, strings.NewReader(tt.input), home, false); err != nil {
				t.Fatalf("installSkill failed: %v", err)
			}

			_, err := os.Stat(skillPath(home))
			if got := err == nil; got != tt.installed {
				t.Errorf("installed = %v, want %v", got, tt.installed)
			}
			if !tt.installed && !strings.Contains(out.String(), "Installation canceled.") {
				t.Errorf("Expected cancel message, got:\n%s", out.String())
			}
		})
	}
}

func TestInstallSkillOverwritesExistingFile(t *testing.T) {
	home := t.TempDir()
	path := skillPath(home)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("# Old Skill\nstale content"), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := installSkill(&out, strings.NewReader(""), home, true); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}

	if !strings.Contains(out.String(), "already exists") {
		t.Error("Expected overwrite note")
	}
	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "stale content") {
		t.Error("Old content should have been replaced")
	}
}

func TestSkillEmbeddedContent(t *testing.T) {
	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		t.Fatalf("Failed to read embedded skill/SKILL.md: %v", err)
	}

	s := string(content)
	if !strings.HasPrefix(s, "---") {
		t.Error("Expected SKILL.md to start with YAML frontmatter (---)")
	}
	for _, marker := range []string{
		"name: fitrank",
		"description:",
		"## When to use fitrank",
		"mcp__fitrank__generate_workout",
		"mcp__fitrank__check_exercise",
		"mcp__fitrank__finish_workout",
		"mcp__fitrank__get_stats",
		"mcp__fitrank__leaderboard",
	} {
		if !strings.Contains(s, marker) {
			t.Errorf("Expected SKILL.md to contain %q", marker)
		}
	}
}

func TestSkillSkipConfirmFlag(t *testing.T) {
	flag := installSkillCmd.Flags().Lookup("yes")
	if flag == nil {
		t.Fatal("Expected --yes flag to be defined")
	}
	if flag.Shorthand != "y" {
		t.Errorf("Expected shorthand 'y', got %q", flag.Shorthand)
	}
	if flag.DefValue != "false" {
		t.Errorf("Expected default value 'false', got %q", flag.DefValue)
	}
}
