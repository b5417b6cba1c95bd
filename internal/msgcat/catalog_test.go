package msgcat

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaults(t *testing.T) {
	c, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := c.Render("error.session_not_found", map[string]any{"ID": "abc"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "no game with id abc" {
		t.Fatalf("got %q", got)
	}
	if _, err := c.Render("error.session_not_found", map[string]any{}); err == nil {
		t.Fatalf("expected missing key error")
	}
	if _, err := c.Render("nope", nil); err == nil {
		t.Fatalf("expected template not found")
	}
}

func TestTextFallsBackToKey(t *testing.T) {
	c := MustDefault()
	if got := c.Text("cli.turn", map[string]any{"Side": "black"}); got != "black to move" {
		t.Fatalf("got %q", got)
	}
	if got := c.Text("cli.missing", nil); got != "cli.missing" {
		t.Fatalf("got %q", got)
	}
	var nilCat *Catalog
	if got := nilCat.Text("cli.bye", nil); got != "cli.bye" {
		t.Fatalf("got %q", got)
	}
}

func TestOverrideDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("a.yaml", "cli:\n  bye: \"farewell\"\n")
	write("ignored.txt", "cli:\n  bye: \"nope\"\n")

	c, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := c.Text("cli.bye", nil); got != "farewell" {
		t.Fatalf("override not applied: %q", got)
	}
	if got := c.Text("cli.no_moves", nil); got != "no legal moves" {
		t.Fatalf("default lost: %q", got)
	}

	write("b.yml", "cli:\n  bye: \"again\"\n")
	if _, err := New(dir); err == nil || !strings.Contains(err.Error(), "duplicate override key") {
		t.Fatalf("expected duplicate key error, got %v", err)
	}
}

func TestRejectsNonStringLeaves(t *testing.T) {
	if _, err := parseYAMLToFlat([]byte("a:\n  b: 3\n")); err == nil {
		t.Fatalf("expected error for int leaf")
	}
}
