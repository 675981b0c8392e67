package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandHomePassthrough(t *testing.T) {
	for _, p := range []string{"", "/abs/path", "rel/path"} {
		got, err := ExpandHome(p)
		if err != nil {
			t.Fatalf("expand %q: %v", p, err)
		}
		if got != p {
			t.Fatalf("expected passthrough for %q, got %q", p, got)
		}
	}
}

func TestExpandHomeTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	got, err := ExpandHome("~")
	if err != nil {
		t.Fatalf("expand ~: %v", err)
	}
	if got != home {
		t.Fatalf("expected %q, got %q", home, got)
	}
	got, err = ExpandHome("~/models")
	if err != nil {
		t.Fatalf("expand ~/models: %v", err)
	}
	if got != filepath.Join(home, "models") {
		t.Fatalf("expected %q, got %q", filepath.Join(home, "models"), got)
	}
}

func TestPathExists(t *testing.T) {
	d := t.TempDir()
	if !PathExists(d) {
		t.Fatalf("expected temp dir to exist")
	}
	if PathExists(filepath.Join(d, "nope")) {
		t.Fatalf("expected missing path to not exist")
	}
}
