package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/park285/draughts-server/internal/draughts"
	"github.com/park285/draughts-server/internal/msgcat"
	"github.com/park285/draughts-server/internal/notation"
	"github.com/park285/draughts-server/internal/presenter"
)

func main() {
	ruleFlag := flag.String("rule", "after_move", "promotion rule: after_move or immediate")
	messages := flag.String("messages", os.Getenv("MESSAGES_DIR"), "directory with message overrides")
	flag.Parse()

	rule, err := draughts.ParsePromotionRule(*ruleFlag)
	if err != nil {
		log.Fatalf("rule: %v", err)
	}
	cat, err := msgcat.New(*messages)
	if err != nil {
		log.Fatalf("messages: %v", err)
	}
	play(os.Stdin, os.Stdout, draughts.New(draughts.WithPromotionRule(rule)), presenter.NewFormatter(cat), cat)
}

// play runs a two-player game on one terminal until the game ends, input runs
// out or the player quits.
func play(in io.Reader, out io.Writer, g *draughts.Game, f *presenter.Formatter, cat *msgcat.Catalog) {
	fmt.Fprintln(out, cat.Text("cli.banner", nil))
	fmt.Fprint(out, f.Game(g))

	sc := bufio.NewScanner(in)
	for {
		if winner, over := g.Outcome().Winner(); over {
			fmt.Fprintln(out, f.Winner(winner))
			return
		}
		fmt.Fprint(out, f.Prompt(g))
		if !sc.Scan() {
			fmt.Fprintln(out)
			return
		}
		line := strings.TrimSpace(sc.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit":
			fmt.Fprintln(out, cat.Text("cli.bye", nil))
			return
		case "moves":
			fmt.Fprintln(out, f.Moves(g.AllLegalMoves()))
			continue
		}

		mv, err := notation.Decode(g, line)
		if err == nil {
			err = g.ApplyMove(mv)
		}
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		fmt.Fprint(out, f.Game(g))
	}
}
