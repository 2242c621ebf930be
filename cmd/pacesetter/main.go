package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pacesetter/internal"
	"pacesetter/internal/config"
	"pacesetter/internal/pipeline"
	"pacesetter/internal/storage"
	"pacesetter/internal/wizard"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "sheets":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "workbook path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}
		blob, err := os.ReadFile(*input)
		must(err)
		sheets, err := pipeline.DecodeSheets(blob, *input)
		must(err)
		names := make([]string, 0, len(sheets))
		for _, s := range sheets {
			names = append(names, s.Name)
		}
		fmt.Printf("sheets: %s\n", strings.Join(names, ", "))
		fmt.Printf("model sheets: %s\n", strings.Join(pipeline.DetectModelSheets(names), ", "))

	case "extract":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "workbook path")
		sheet := fs.String("sheet", "", "sheet name (default: first detected model sheet)")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}
		blob, err := os.ReadFile(*input)
		must(err)
		sheets, err := pipeline.DecodeSheets(blob, *input)
		must(err)
		target := pickSheet(sheets, *sheet)
		if target == nil {
			must(fmt.Errorf("sheet not found: %s", *sheet))
		}

		hits := pipeline.ScanAnchors(target.Rows, target.Name)
		for _, field := range internal.RequiredNumericFields {
			hit, ok := hits[field]
			if !ok {
				fmt.Printf("%-20s not found\n", field)
				continue
			}
			fmt.Printf("%-20s %.2f (cell=%s confidence=%.1f)\n", field, hit.Value, hit.Provenance.CellRef, hit.Provenance.Confidence)
		}

	case "run":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "workbook path")
		out := fs.String("out", "", "output path (default: snapshot in the output dir)")
		format := fs.String("format", "csv", "csv|json|xlsx")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}
		blob, err := os.ReadFile(*input)
		must(err)
		runPipeline(cfg, outputPath(cfg, *out, *format), *format, func(w *wizard.Wizard) error {
			return w.IngestFile(blob, filepath.Base(*input))
		})

	case "dummy":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		out := fs.String("out", "", "output path (default: snapshot in the output dir)")
		format := fs.String("format", "csv", "csv|json|xlsx")
		_ = fs.Parse(os.Args[2:])
		runPipeline(cfg, outputPath(cfg, *out, *format), *format, func(w *wizard.Wizard) error {
			return w.IngestDummy("dummy.xlsx")
		})

	default:
		usage()
		os.Exit(1)
	}
}

// runPipeline walks the wizard end to end: ingest, suggest and apply the
// mapping, validate, compute KPIs, lock a snapshot and export it.
func runPipeline(cfg config.Config, out, format string, ingest func(*wizard.Wizard) error) {
	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	w, err := wizard.New(cfg, db)
	must(err)

	must(ingest(w))

	suggestions := w.Suggestions()
	for _, s := range suggestions {
		from := "-"
		if s.FromHeader != nil {
			from = *s.FromHeader
		}
		fmt.Printf("map %-20s <- %-24s confidence=%.2f\n", s.Target, from, s.Confidence)
	}

	missing := w.ApplyMapping(pipeline.SuggestionsToMapping(suggestions))
	if len(missing) > 0 {
		fmt.Printf("unmapped fields: %v\n", missing)
	}

	quality := w.Quality()
	fmt.Printf("data quality: %s (%d issues)\n", quality.Status, len(quality.Issues))
	for _, issue := range quality.Issues {
		fmt.Printf("  row %d %s [%s] %s\n", issue.RowIndex, issue.Field, issue.Severity, issue.Message)
	}
	if quality.Status == internal.QualityRed {
		must(fmt.Errorf("data quality is red, fix the input and re-run"))
	}

	w.GoTo(wizard.StepKPIComputation)
	must(w.ComputeKPIs())
	w.GoTo(wizard.StepExpertReview)

	snap, err := w.Lock()
	must(err)
	w.GoTo(wizard.StepExport)

	switch strings.ToLower(format) {
	case "csv":
		must(os.MkdirAll(filepath.Dir(out), 0o755))
		must(os.WriteFile(out, pipeline.ExportSnapshotCSV(snap), 0o644))
	case "json":
		blob, err := pipeline.ExportSnapshotJSON(snap)
		must(err)
		must(os.MkdirAll(filepath.Dir(out), 0o755))
		must(os.WriteFile(out, blob, 0o644))
	case "xlsx":
		must(pipeline.ExportSnapshotXLSX(snap, out))
	default:
		must(fmt.Errorf("unsupported format: %s", format))
	}

	fmt.Printf("locked snapshot %s: %d products, %.2f kg CO2e total\n", snap.ID, snap.Totals.Count, snap.Totals.SumTotalCO2e)
	fmt.Printf("exported %s to %s\n", format, out)
}

func outputPath(cfg config.Config, out, format string) string {
	if strings.TrimSpace(out) != "" {
		return out
	}
	return filepath.Join(cfg.OutputDir, "snapshot."+strings.ToLower(format))
}

func pickSheet(sheets []pipeline.RawSheet, name string) *pipeline.RawSheet {
	if strings.TrimSpace(name) == "" {
		names := make([]string, 0, len(sheets))
		for _, s := range sheets {
			names = append(names, s.Name)
		}
		detected := pipeline.DetectModelSheets(names)
		if len(detected) > 0 {
			name = detected[0]
		}
	}
	for i := range sheets {
		if sheets[i].Name == name {
			return &sheets[i]
		}
	}
	return nil
}

func usage() {
	fmt.Println("usage: pacesetter <command>")
	fmt.Println("commands:")
	fmt.Println("  sheets  --input=workbook.xlsx")
	fmt.Println("  extract --input=workbook.xlsx [--sheet=...]")
	fmt.Println("  run     --input=workbook.xlsx [--out=./out/result.csv] [--format=csv|json|xlsx]")
	fmt.Println("  dummy   [--out=./out/result.csv] [--format=csv|json|xlsx]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
