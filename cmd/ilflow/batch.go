package main

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ilflow/internal/graph"
	"ilflow/internal/output"
	"ilflow/internal/pipeline"
	"ilflow/internal/render"
)

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch DIR",
		Short: "Process every *.bin and *.hex method body in a directory",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	cmd.Flags().IntP("workers", "w", 0, "Worker pool size (0 = number of CPUs)")
	cmd.Flags().StringP("out", "o", "", "Write JSON, DOT, index.html and summary.json under DIR")
	cmd.Flags().String("theme", "nasa", "DOT theme (nasa, mono)")
	viper.BindPFlag("workers", cmd.Flags().Lookup("workers"))
	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	outDir, _ := cmd.Flags().GetString("out")
	themeName, _ := cmd.Flags().GetString("theme")

	methods, err := loadDir(args[0])
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}
	opts := pipeline.Options{
		Mode:            decodeMode(),
		Workers:         viper.GetInt("workers"),
		MaxInstructions: viper.GetInt("max-instructions"),
		Verify:          true,
		Logger:          &logger,
	}
	results, runErr := pipeline.Run(cmd.Context(), methods, opts)
	summary := pipeline.Summarize(results)
	printSummary(cmd, results, summary)

	if outDir != "" {
		if err := saveBatch(outDir, results, summary, render.ThemeByName(themeName)); err != nil {
			return err
		}
	}
	return runErr
}

// loadDir reads *.bin files as raw bytes and *.hex files as hex text, in
// name order.
func loadDir(dir string) ([]pipeline.Method, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read dir %s", dir)
	}
	var methods []pipeline.Method
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".bin" && ext != ".hex" {
			continue
		}
		data, err := readInput(filepath.Join(dir, e.Name()), ext == ".hex")
		if err != nil {
			return nil, err
		}
		methods = append(methods, pipeline.Method{Name: methodName(e.Name()), Data: data})
	}
	sort.Slice(methods, func(i, j int) bool { return methods[i].Name < methods[j].Name })
	return methods, nil
}

func printSummary(cmd *cobra.Command, results []pipeline.Result, s pipeline.Summary) {
	itoa := strconv.Itoa
	var data [][]string
	for _, r := range results {
		if r.Err != nil {
			data = append(data, []string{r.Name, "", "", "", "", "", itoa(len(r.Diags)), red(r.Err.Error())})
			continue
		}
		st := r.Tree.Stats()
		data = append(data, []string{
			r.Name, itoa(st.Instructions), itoa(st.Blocks), itoa(st.Tries),
			itoa(st.Handlers), itoa(st.MaxDepth), itoa(len(r.Diags)), "ok",
		})
	}
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Method", "Instrs", "Blocks", "Tries", "Handlers", "Depth", "Diags", "Status"})
	table.AppendBulk(data)
	table.SetFooter([]string{
		"Total " + itoa(s.Methods), itoa(s.Instructions), itoa(s.Blocks), itoa(s.Tries),
		itoa(s.Handlers), itoa(s.MaxDepth), itoa(s.Diags), itoa(s.Failed) + " failed",
	})
	table.Render()
}

func saveBatch(dir string, results []pipeline.Result, s pipeline.Summary, theme render.Theme) error {
	var (
		rows  []render.IndexRow
		funcs []graph.Func
	)
	for _, r := range results {
		row := render.IndexRow{Name: r.Name, Diags: len(r.Diags)}
		if r.Err != nil {
			row.Err = r.Err.Error()
			rows = append(rows, row)
			continue
		}
		diags := make([]string, len(r.Diags))
		for i, d := range r.Diags {
			diags[i] = d.String()
		}
		if err := output.WriteJSON(dir, output.FromTree(r.Name, r.Tree, diags)); err != nil {
			return err
		}
		rel, err := output.WriteDOT(dir, r.Name, render.TreeDOT(r.Tree, r.Name, theme))
		if err != nil {
			return err
		}
		row.Link = rel
		row.Stats = r.Tree.Stats()
		rows = append(rows, row)
		funcs = append(funcs, graph.Func{Name: r.Name, Tree: r.Tree})
	}
	if err := output.WriteIndexHTML(dir, "ilflow batch", rows); err != nil {
		return err
	}
	if err := output.WriteSummaryJSON(dir, s); err != nil {
		return err
	}
	_, err := output.WriteDOT(dir, "callgraph", graph.CallGraphDOT(funcs, "call graph"))
	return err
}
