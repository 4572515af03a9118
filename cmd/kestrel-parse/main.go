// kestrel-parse runs the repetition runtime over a file of separated
// identifiers and prints the resulting list node. It stands in for a
// grammar-generated caller: it declares the runtime version it targets,
// builds a token stream, and drives a ListRule. With -watch it reparses
// the whole unit on every change — the previous arena is destroyed and
// replaced, never patched.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/fsnotify/fsnotify"

	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/parser"
	"github.com/kestrel-lang/kestrel/internal/version"
)

// generatedAgainst is the runtime version this driver was written for,
// the way generated parsers record theirs.
const generatedAgainst = "1.2.0"

const (
	kindIdent parser.TokenKind = iota
	kindComma
)

func main() {
	var (
		allowEmpty bool
		noSep      bool
		watch      bool
	)

	flag.BoolVar(&allowEmpty, "allow-empty", false, "treat zero elements as a successful parse")
	flag.BoolVar(&noSep, "no-sep", false, "parse adjacent identifiers without comma separators")
	flag.BoolVar(&watch, "watch", false, "reparse the file whenever it changes")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: kestrel-parse [-allow-empty] [-no-sep] [-watch] <file>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	if err := version.Check(generatedAgainst); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := parseOnce(path, allowEmpty, noSep); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if !watch {
			os.Exit(1)
		}
	}

	if watch {
		if err := watchLoop(path, allowEmpty, noSep); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

// parseOnce runs one full unit lifecycle: fresh arena, parse, report,
// destroy.
func parseOnce(path string, allowEmpty, noSep bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	tokens := tokenize(string(data))
	ts := parser.NewTokenStream(tokens)

	unit := ast.NewUnit(path)
	defer unit.Destroy()

	rule := parser.ListRule{
		AllowEmpty: allowEmpty,
		Element:    parser.MatchKind(unit, ts, kindIdent),
	}
	if !noSep {
		rule.Separator = parser.MatchKind(unit, ts, kindComma)
	}

	node, end := rule.Parse(unit, 1)
	if !end.IsValid() {
		return &parser.ParseError{Pos: 1, Message: "expected at least one identifier"}
	}

	var texts []string
	for i := 0; i < node.Len(); i++ {
		el, ok := node.Child(i)
		if !ok {
			continue
		}
		if tok, ok := ts.At(el.Span().Start); ok {
			texts = append(texts, tok.Text)
		}
	}

	stats := unit.Arena().Stats()
	fmt.Printf("%s: %d element(s), span %s, end %s\n", path, node.Len(), node.Span(), end)
	fmt.Printf("  elements: %s\n", strings.Join(texts, " "))
	fmt.Printf("  arena: %d chunk(s), %d/%d bytes used\n",
		stats.ChunkCount, stats.UsedBytes, stats.TotalBytes)

	return nil
}

// watchLoop reparses the file on every write until interrupted.
func watchLoop(path string, allowEmpty, noSep bool) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(path); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "watching %s\n", path)

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := parseOnce(path, allowEmpty, noSep); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

// tokenize splits the input into identifier and comma tokens. Anything
// that is not a comma or whitespace is part of an identifier. Positions
// in the resulting stream are 1-based token indices.
func tokenize(src string) []parser.Token {
	var tokens []parser.Token
	var ident strings.Builder

	flush := func() {
		if ident.Len() > 0 {
			tokens = append(tokens, parser.Token{Kind: kindIdent, Text: ident.String()})
			ident.Reset()
		}
	}

	for _, r := range src {
		switch {
		case r == ',':
			flush()
			tokens = append(tokens, parser.Token{Kind: kindComma, Text: ","})
		case unicode.IsSpace(r):
			flush()
		default:
			ident.WriteRune(r)
		}
	}
	flush()

	return tokens
}
