package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"ilflow/internal/blocks"
	"ilflow/internal/graph"
	"ilflow/internal/ilfmt"
	"ilflow/internal/output"
	"ilflow/internal/render"
)

var outputFormats = []string{"text", "json", "dot", "lattice"}

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse FILE...",
		Short: "Reconstruct the block tree of CIL method bodies",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().StringP("format", "f", "text", "Output format (text, json, dot, lattice)")
	cmd.Flags().Bool("hex", false, "Input files are hex text")
	cmd.Flags().StringP("out", "o", "", "Write files under DIR instead of stdout")
	cmd.Flags().String("theme", "nasa", "DOT theme (nasa, mono)")
	cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(outputFormats, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	isHex, _ := cmd.Flags().GetBool("hex")
	outDir, _ := cmd.Flags().GetString("out")
	themeName, _ := cmd.Flags().GetString("theme")
	if err := checkFormat(format); err != nil {
		return err
	}
	opts := decodeOptions()

	for _, path := range args {
		data, err := readInput(path, isHex)
		if err != nil {
			return err
		}
		name := methodName(path)
		body, diags, err := ilfmt.ReadMethodBody(data, opts)
		if err != nil {
			return errors.Wrap(err, name)
		}
		printDiags(name, diags.Strings())
		m, err := body.Blocks()
		if err != nil {
			return errors.Wrap(err, name)
		}
		v := view{name: name, tree: m, diags: diags.Strings(), theme: render.ThemeByName(themeName)}
		if outDir != "" {
			if err := v.save(outDir, format); err != nil {
				return err
			}
			continue
		}
		if err := v.write(cmd.OutOrStdout(), format); err != nil {
			return err
		}
	}
	return nil
}

func checkFormat(format string) error {
	for _, f := range outputFormats {
		if f == format {
			return nil
		}
	}
	return fmt.Errorf("unknown output format: %s", format)
}

func methodName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// view is one tree ready to render in any output format.
type view struct {
	name  string
	tree  *blocks.MethodBlocks
	diags []string
	theme render.Theme
}

func (v view) write(w io.Writer, format string) error {
	switch format {
	case "json":
		return writeJSON(w, output.FromTree(v.name, v.tree, v.diags))
	case "dot":
		_, err := io.WriteString(w, render.TreeDOT(v.tree, v.name, v.theme))
		return err
	case "lattice":
		_, err := io.WriteString(w, graph.DOT(v.name, v.tree))
		return err
	default:
		return render.Text(w, v.tree, palette())
	}
}

func (v view) save(dir, format string) error {
	var err error
	switch format {
	case "json":
		err = output.WriteJSON(dir, output.FromTree(v.name, v.tree, v.diags))
	case "dot":
		_, err = output.WriteDOT(dir, v.name, render.TreeDOT(v.tree, v.name, v.theme))
	case "lattice":
		_, err = output.WriteDOT(dir, v.name, graph.DOT(v.name, v.tree))
	default:
		var b strings.Builder
		if err = render.Text(&b, v.tree, render.Plain); err == nil {
			err = output.WriteText(dir, v.name, b.String())
		}
	}
	return errors.Wrapf(err, "write %s", v.name)
}
