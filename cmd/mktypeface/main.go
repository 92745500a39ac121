// Command mktypeface converts an OpenType font into a typeface JSON document
// covering a chosen character set.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"textscene/typeface"
)

// asciiPrintable is the default character set: space through tilde.
const asciiPrintable = " !\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstuvwxyz{|}~"

const builtinPrefix = "builtin:"

func main() {
	var (
		inPath  = flag.String("in", "", "Input .ttf/.otf/.ttc file, or builtin:<name>.")
		outPath = flag.String("out", "-", "Output .json file (- for stdout).")
		chars   = flag.String("chars", asciiPrintable, "Characters to include.")
		list    = flag.Bool("list", false, "List builtin font names and exit.")
	)
	flag.Parse()

	if *list {
		for _, name := range typeface.BuiltinNames() {
			fmt.Println(builtinPrefix + name)
		}
		return
	}
	if *inPath == "" {
		fatalf("usage: mktypeface -in font.ttf|builtin:<name> [-out font.json] [-chars ...]")
	}

	var w io.Writer = os.Stdout
	if *outPath != "-" {
		f, err := os.Create(*outPath)
		if err != nil {
			fatalf("create %q: %v", *outPath, err)
		}
		defer f.Close()
		w = f
	}
	bw := bufio.NewWriter(w)
	if err := run(*inPath, *chars, bw); err != nil {
		fatalf("error: %v", err)
	}
	if err := bw.Flush(); err != nil {
		fatalf("write: %v", err)
	}
}

func run(inPath, chars string, w io.Writer) error {
	f, err := openFont(inPath)
	if err != nil {
		return err
	}
	runes := uniqueRunes(chars)
	var missing []rune
	for _, r := range runes {
		if _, ok := f.Glyph(r); !ok {
			missing = append(missing, r)
		}
	}
	if len(missing) > 0 {
		fmt.Fprintf(os.Stderr, "warning: %s lacks %q\n", inPath, string(missing))
	}
	return f.WriteJSON(w, runes)
}

func openFont(inPath string) (*typeface.Font, error) {
	if name, ok := strings.CutPrefix(inPath, builtinPrefix); ok {
		return typeface.Builtin(name)
	}
	data, err := os.ReadFile(inPath)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", inPath, err)
	}
	return typeface.ParseOpenType(data)
}

func uniqueRunes(s string) []rune {
	seen := make(map[rune]bool)
	var out []rune
	for _, r := range s {
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
