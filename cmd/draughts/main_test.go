package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/park285/draughts-server/internal/draughts"
	"github.com/park285/draughts-server/internal/msgcat"
	"github.com/park285/draughts-server/internal/presenter"
)

func TestPlayUntilWin(t *testing.T) {
	cat := msgcat.MustDefault()
	g, err := draughts.NewFromRows([]string{".w..", "..b.", "....", "..b.", "...."}, draughts.White)
	if err != nil {
		t.Fatal(err)
	}
	in := strings.NewReader("moves\nb8-a7\nb8xd6\nd6xb4\n")
	var out bytes.Buffer
	play(in, &out, g, presenter.NewFormatter(cat), cat)

	got := out.String()
	for _, want := range []string{
		"legal: b8xd6",
		"illegal move",
		"white must continue jumping with d6",
		"white wins",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestPlayQuit(t *testing.T) {
	cat := msgcat.MustDefault()
	var out bytes.Buffer
	play(strings.NewReader("c3-d4\nquit\n"), &out, draughts.New(), presenter.NewFormatter(cat), cat)
	got := out.String()
	if !strings.Contains(got, "white> ") || !strings.HasSuffix(got, "bye\n") {
		t.Fatalf("unexpected output:\n%s", got)
	}
}
