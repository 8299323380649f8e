// Package output writes block trees and batch results to files.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"ilflow/internal/disasm"
	"ilflow/internal/render"
)

// WriteJSON writes the method document to json/<name>.json.
func WriteJSON(dir string, m Method) error {
	path := filepath.Join(dir, "json", SafeName(m.Name)+".json")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("output: mkdir json: %w", err)
	}
	return writeJSON(path, m)
}

// WriteDOT writes a DOT graph to dot/<name>.dot and returns the path
// relative to dir.
func WriteDOT(dir, name, dot string) (string, error) {
	rel := filepath.Join("dot", SafeName(name)+".dot")
	return rel, writeFile(filepath.Join(dir, rel), dot)
}

// WriteText writes a text rendering to text/<name>.txt.
func WriteText(dir, name, text string) error {
	return writeFile(filepath.Join(dir, "text", SafeName(name)+".txt"), text)
}

// WriteASM writes disassembled instructions to asm/<name>.txt.
func WriteASM(dir, name string, insts []disasm.Inst, lookup disasm.SymbolLookup, annotators ...disasm.Annotator) error {
	text := disasm.Format(insts, lookup, annotators...)
	return writeFile(filepath.Join(dir, "asm", SafeName(name)+".txt"), text)
}

// WriteSummaryJSON writes v to summary.json.
func WriteSummaryJSON(dir string, v any) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("output: mkdir %s: %w", dir, err)
	}
	return writeJSON(filepath.Join(dir, "summary.json"), v)
}

// WriteIndexHTML writes index.html summarizing a batch run.
func WriteIndexHTML(dir, title string, rows []render.IndexRow) error {
	path := filepath.Join(dir, "index.html")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("output: mkdir %s: %w", dir, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: create %s: %w", path, err)
	}
	defer f.Close()
	if err := render.WriteIndexHTML(f, title, rows); err != nil {
		return fmt.Errorf("output: write %s: %w", path, err)
	}
	return nil
}

// EncodeJSON writes v as indented JSON.
func EncodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// SafeName converts a method name to a safe file name.
func SafeName(name string) string {
	r := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "_",
	)
	s := r.Replace(name)
	if len(s) > 200 {
		s = s[:200]
	}
	if s == "" {
		s = "_"
	}
	return s
}

func writeFile(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("output: mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("output: write %s: %w", path, err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: create %s: %w", path, err)
	}
	defer f.Close()

	if err := EncodeJSON(f, v); err != nil {
		return fmt.Errorf("output: encode %s: %w", path, err)
	}
	return nil
}
