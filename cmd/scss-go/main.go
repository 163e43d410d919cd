package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/krizos/scss-go/pkg/parser"
)

const version = "0.1.0-dev"

var jsonOutput bool

func main() {
	root := &cobra.Command{
		Use:     "scss-go",
		Short:   "SCSS front end: parse stylesheets, values, and selectors",
		Version: version,
	}
	root.PersistentFlags().BoolVar(&jsonOutput, "json", false, "dump the AST as JSON")

	parseCmd := &cobra.Command{
		Use:   "parse <file|glob>...",
		Short: "Parse stylesheets and dump their AST",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runParse,
	}

	valueCmd := &cobra.Command{
		Use:   "value <expression>",
		Short: "Parse a standalone value expression",
		Args:  cobra.ExactArgs(1),
		RunE:  runValue,
	}

	selectorCmd := &cobra.Command{
		Use:   "selector <selector>",
		Short: "Parse a standalone selector list",
		Args:  cobra.ExactArgs(1),
		RunE:  runSelector,
	}

	root.AddCommand(parseCmd, valueCmd, selectorCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	paths, err := expandArgs(args)
	if err != nil {
		return err
	}

	failed := false
	for i, path := range paths {
		content, name, err := readInput(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error reading %s: %v\n", path, err)
			failed = true
			continue
		}

		block, err := parser.New(name, i).Parse(content)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			failed = true
			continue
		}

		if jsonOutput {
			if err := dumpJSON(block); err != nil {
				return err
			}
		} else {
			fmt.Printf("%s: parsed %d top-level statements\n", name, len(block.Children))
		}
	}

	if failed {
		os.Exit(1)
	}
	return nil
}

func runValue(cmd *cobra.Command, args []string) error {
	value, err := parser.New("(value)", 0).ParseValue(args[0])
	if err != nil {
		return err
	}
	if jsonOutput {
		return dumpJSON(value)
	}
	fmt.Println(value.String())
	return nil
}

func runSelector(cmd *cobra.Command, args []string) error {
	sels, err := parser.New("(selector)", 0).ParseSelector(args[0])
	if err != nil {
		return err
	}
	if jsonOutput {
		return dumpJSON(sels)
	}
	rendered := make([]string, len(sels))
	for i, sel := range sels {
		rendered[i] = sel.String()
	}
	fmt.Println(strings.Join(rendered, ", "))
	return nil
}

// expandArgs resolves glob patterns against the working directory and
// passes plain paths (including "-" for stdin) through untouched.
func expandArgs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		if arg == "-" || !strings.ContainsAny(arg, "*?[{") {
			paths = append(paths, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", arg)
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}

func readInput(path string) (content, name string, err error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", err
		}
		return string(data), "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	return string(data), path, nil
}

func dumpJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
