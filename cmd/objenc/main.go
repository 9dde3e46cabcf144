package main

import (
	"cmp"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/reoring/objenc"
	"github.com/reoring/objenc/source"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "paths":
		if err := pathsCmd(os.Args[2:], os.Stdout); err != nil {
			fatalf("%v", err)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "objenc CLI\n\nUsage:\n  objenc paths -f file [-format json|yaml] [-allow-nonfinite] [-v]\n\nNotes:\n  - Prints one \"pointer<TAB>leaf\" line per leaf value, sorted by path (indexes numerically).\n  - The format defaults to the file extension (.yaml/.yml) and falls back to json.")
}

// newLogger builds the -v logger.
var newLogger = func() (*zap.Logger, error) { return zap.NewDevelopment() }

func pathsCmd(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("paths", flag.ExitOnError)
	var file, format string
	var allowNonFinite, verbose bool
	fs.StringVar(&file, "f", "", "input file")
	fs.StringVar(&format, "format", "", "input format: json or yaml")
	fs.BoolVar(&allowNonFinite, "allow-nonfinite", false, "accept NaN and infinities (YAML .nan/.inf)")
	fs.BoolVar(&verbose, "v", false, "log encoder activity to stderr")
	_ = fs.Parse(args)
	if file == "" {
		fs.Usage()
		os.Exit(2)
	}
	b, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	if format == "" {
		format = detectFormat(file)
	}
	enc, err := documentFor(format, b)
	if err != nil {
		return err
	}

	opt := objenc.Options{Strictness: objenc.Strictness{AllowNonFinite: allowNonFinite}}
	if verbose {
		l, err := newLogger()
		if err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		defer func() { _ = l.Sync() }()
		opt.Logger = l
	}
	v, err := objenc.Encode(context.Background(), enc, opt)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	for _, line := range leafLines(v) {
		fmt.Fprintln(w, line)
	}
	return nil
}

func detectFormat(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		return "yaml"
	}
	return "json"
}

func documentFor(format string, b []byte) (objenc.Encodable, error) {
	switch format {
	case "json":
		return source.JSON(b), nil
	case "yaml":
		return source.YAMLStream(b), nil
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

// leafLines flattens a materialized tree into "pointer<TAB>leaf" lines sorted
// by path, with sequence indexes compared numerically. Empty containers count
// as leaves.
func leafLines(v any) []string {
	type leaf struct {
		path objenc.Path
		line string
	}
	var leaves []leaf
	walk(objenc.Path{}, v, func(p objenc.Path, l any) {
		leaves = append(leaves, leaf{path: p, line: p.Pointer() + "\t" + renderLeaf(l)})
	})
	sort.Slice(leaves, func(i, j int) bool { return comparePaths(leaves[i].path, leaves[j].path) < 0 })
	out := make([]string, len(leaves))
	for i, l := range leaves {
		out[i] = l.line
	}
	return out
}

func comparePaths(a, b objenc.Path) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		ka, kb := a[i], b[i]
		switch {
		case ka.IsIndex() && kb.IsIndex():
			if c := cmp.Compare(ka.Index(), kb.Index()); c != 0 {
				return c
			}
		case ka.IsIndex() != kb.IsIndex():
			// Indexes and fields never share a parent; order is arbitrary.
			if ka.IsIndex() {
				return -1
			}
			return 1
		default:
			if c := strings.Compare(ka.String(), kb.String()); c != 0 {
				return c
			}
		}
	}
	return cmp.Compare(len(a), len(b))
}

func walk(p objenc.Path, v any, emit func(objenc.Path, any)) {
	switch t := v.(type) {
	case map[string]any:
		if len(t) == 0 {
			emit(p, t)
			return
		}
		for k, c := range t {
			walk(p.Field(k), c, emit)
		}
	case []any:
		if len(t) == 0 {
			emit(p, t)
			return
		}
		for i, c := range t {
			walk(p.Index(i), c, emit)
		}
	default:
		emit(p, v)
	}
}

func renderLeaf(v any) string {
	if f, ok := v.(float64); ok {
		// NaN and infinities have no JSON form.
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
