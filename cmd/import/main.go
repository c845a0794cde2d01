// Command import converts a spreadsheet-authored unit list into the YAML
// catalog the server loads at startup.
//
// Usage:
//
//	import -in units.xlsx -out ./catalog [-sheet Sayfa1]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/sinavyolu/lgs-backend/internal/catalog"
)

func main() {
	var (
		in    = flag.String("in", "", "path to the XLSX workbook")
		out   = flag.String("out", "./catalog", "directory to write unit YAML files into")
		sheet = flag.String("sheet", "", "sheet name (defaults to the first sheet)")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: import -in units.xlsx -out ./catalog [-sheet name]")
		os.Exit(2)
	}

	result, err := catalog.ImportXLSX(*in, *sheet)
	if err != nil {
		slog.Error("import failed", "path", *in, "error", err)
		os.Exit(1)
	}

	for _, msg := range result.Errors {
		slog.Warn("row rejected", "reason", msg)
	}

	if err := catalog.WriteYAML(*out, result.Units); err != nil {
		slog.Error("writing catalog failed", "dir", *out, "error", err)
		os.Exit(1)
	}

	slog.Info("catalog imported",
		"units", len(result.Units),
		"skipped", result.Skipped,
		"rejected", len(result.Errors),
		"dir", *out,
	)
	if len(result.Errors) > 0 {
		os.Exit(1)
	}
}
