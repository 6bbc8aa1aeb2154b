package git

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindGitRepo(t *testing.T) {
	t.Run("finds .git directory upward", func(t *testing.T) {
		root := t.TempDir()
		if err := os.Mkdir(filepath.Join(root, ".git"), 0750); err != nil {
			t.Fatalf("mkdir .git: %v", err)
		}
		nested := filepath.Join(root, "a", "b")
		if err := os.MkdirAll(nested, 0750); err != nil {
			t.Fatalf("mkdir nested: %v", err)
		}

		got, err := findGitRepo(nested)
		if err != nil {
			t.Fatalf("findGitRepo() error = %v", err)
		}
		if got != root {
			t.Errorf("findGitRepo() = %q, want %q", got, root)
		}
	})

	t.Run("recognizes worktree .git file", func(t *testing.T) {
		root := t.TempDir()
		gitFile := filepath.Join(root, ".git")
		if err := os.WriteFile(gitFile, []byte("gitdir: /some/where/.git/worktrees/x\n"), 0600); err != nil {
			t.Fatalf("write .git file: %v", err)
		}

		got, err := findGitRepo(root)
		if err != nil {
			t.Fatalf("findGitRepo() error = %v", err)
		}
		if got != root {
			t.Errorf("findGitRepo() = %q, want %q", got, root)
		}
	})

	t.Run("errors without a repository", func(t *testing.T) {
		if _, err := findGitRepo(t.TempDir()); err == nil {
			t.Error("findGitRepo() expected error in bare temp dir")
		}
	})
}

func TestShortCommit(t *testing.T) {
	if got := shortCommit("0123456789abcdef0123456789abcdef01234567"); got != "0123456" {
		t.Errorf("shortCommit() = %q, want %q", got, "0123456")
	}
	if got := shortCommit("abc"); got != "abc" {
		t.Errorf("shortCommit() = %q, want %q", got, "abc")
	}
}
