package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"ilflow/internal/disasm"
	"ilflow/internal/elfx"
	"ilflow/internal/graph"
	"ilflow/internal/output"
	"ilflow/internal/render"
)

func newARM64Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "arm64 FILE",
		Short: "Split ARM64 functions into basic blocks",
		Long: `Split ARM64 functions into basic blocks.

FILE is a raw code blob starting at --base, or with --elf an ARM64 ELF
executable or shared object whose function symbols are processed (all of
them unless --sym names some).`,
		Args: cobra.ExactArgs(1),
		RunE: runARM64,
	}
	cmd.Flags().String("base", "0", "Address of the first instruction of a raw blob")
	cmd.Flags().StringP("format", "f", "text", "Output format (text, json, dot, lattice, asm)")
	cmd.Flags().Bool("hex", false, "Input file is hex text")
	cmd.Flags().Bool("elf", false, "Input file is an ARM64 ELF image")
	cmd.Flags().StringSlice("sym", nil, "Function symbols to process (with --elf)")
	cmd.Flags().StringP("out", "o", "", "Write files under DIR instead of stdout")
	cmd.Flags().String("theme", "nasa", "DOT theme (nasa, mono)")
	return cmd
}

// machineFunc is one function to lift.
type machineFunc struct {
	name string
	base uint64
	code []byte
}

func runARM64(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	outDir, _ := cmd.Flags().GetString("out")
	themeName, _ := cmd.Flags().GetString("theme")
	if format != "asm" {
		if err := checkFormat(format); err != nil {
			return err
		}
	}

	funcs, lookup, err := loadMachineFuncs(cmd, args[0])
	if err != nil {
		return err
	}
	annotate := disasm.CallAnnotator(lookup)
	theme := render.ThemeByName(themeName)
	w := cmd.OutOrStdout()

	var graphed []graph.Func
	for _, fn := range funcs {
		insts := disasm.Disassemble(fn.code, disasm.Options{BaseAddr: fn.base})
		if len(funcs) > 1 && outDir == "" && format != "json" {
			fmt.Fprintf(w, "== %s ==\n", fn.name)
		}

		if format == "asm" {
			if outDir != "" {
				if err := output.WriteASM(outDir, fn.name, insts, lookup, annotate); err != nil {
					return errors.Wrapf(err, "write %s", fn.name)
				}
				continue
			}
			if _, err := io.WriteString(w, disasm.Format(insts, lookup, annotate)); err != nil {
				return err
			}
			continue
		}

		m, err := disasm.BuildBlocks(insts, lookup)
		if err != nil {
			return errors.Wrap(err, fn.name)
		}
		v := view{name: fn.name, tree: m, theme: theme}
		if outDir == "" {
			if err := v.write(w, format); err != nil {
				return err
			}
			continue
		}
		if err := output.WriteASM(outDir, fn.name, insts, lookup, annotate); err != nil {
			return errors.Wrapf(err, "write %s", fn.name)
		}
		if err := v.save(outDir, format); err != nil {
			return err
		}
		graphed = append(graphed, graph.Func{Name: fn.name, Tree: m})
	}

	if outDir != "" && len(graphed) > 0 {
		_, err := output.WriteDOT(outDir, "callgraph", graph.CallGraphDOT(graphed, args[0]))
		return errors.Wrap(err, "write call graph")
	}
	return nil
}

// loadMachineFuncs reads the functions named by the command line, plus a
// symbol lookup for naming callees when the input carries symbols.
func loadMachineFuncs(cmd *cobra.Command, path string) ([]machineFunc, disasm.SymbolLookup, error) {
	isELF, _ := cmd.Flags().GetBool("elf")
	if !isELF {
		baseStr, _ := cmd.Flags().GetString("base")
		isHex, _ := cmd.Flags().GetBool("hex")
		base, err := strconv.ParseUint(baseStr, 0, 64)
		if err != nil {
			return nil, nil, errors.Wrap(err, "base")
		}
		data, err := readInput(path, isHex)
		if err != nil {
			return nil, nil, err
		}
		return []machineFunc{{name: methodName(path), base: base, code: data}}, nil, nil
	}

	ef, err := elfx.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer ef.Close()

	names, err := ef.Names()
	if err != nil {
		return nil, nil, err
	}
	var selected []elfx.Func
	if syms, _ := cmd.Flags().GetStringSlice("sym"); len(syms) > 0 {
		for _, name := range syms {
			fn, err := ef.Func(name)
			if err != nil {
				return nil, nil, err
			}
			selected = append(selected, fn)
		}
	} else if selected, err = ef.Funcs(); err != nil {
		return nil, nil, err
	}

	out := make([]machineFunc, 0, len(selected))
	for _, fn := range selected {
		code, err := ef.Code(fn)
		if err != nil {
			return nil, nil, err
		}
		out = append(out, machineFunc{name: fn.Name, base: fn.Addr, code: code})
	}
	return out, disasm.MapLookup(names), nil
}
