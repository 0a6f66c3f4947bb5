package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ingramleedy/AustroView/internal/common"
	"github.com/ingramleedy/AustroView/internal/decode"
	"github.com/ingramleedy/AustroView/internal/export"
	"github.com/ingramleedy/AustroView/internal/manifest"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}
	cmd := os.Args[1]
	switch cmd {
	case "convert":
		convertCmd(os.Args[2:])
	case "summary":
		summaryCmd(os.Args[2:])
	case "report":
		reportCmd(os.Args[2:])
	case "manifest":
		manifestCmd(os.Args[2:])
	case "version":
		fmt.Printf("austroctl %s (built %s)\n", version, buildDate)
	default:
		usage()
	}
}

func usage() {
	fmt.Printf(`austroctl %s (built %s) <command> [options]

Commands:
  convert   [--out-dir <dir>] [--keep-xml] [--metrics] [--progress] <file.ae3|dir>...
  summary   <file.ae3|dir>...
  report    --in <file.ae3> [--out <report.pdf>]
  manifest  --inputs <comma-separated> --out <manifest.json>
  version

%s
`, version, buildDate, export.Disclaimer)
}

// collectInputs expands directory arguments to the .ae3 files they contain.
func collectInputs(args []string) []string {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			fmt.Printf("Skipping: %s (%v)\n", arg, err)
			continue
		}
		if info.IsDir() {
			matches, err := filepath.Glob(filepath.Join(arg, "*.ae3"))
			if err == nil {
				sort.Strings(matches)
				files = append(files, matches...)
			}
			continue
		}
		if strings.EqualFold(filepath.Ext(arg), ".ae3") {
			files = append(files, arg)
			continue
		}
		fmt.Printf("Skipping: %s (not an .ae3 file or directory)\n", arg)
	}
	return files
}

func convertCmd(args []string) {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	outDir := fs.String("out-dir", "output", "directory for output files")
	keepXML := fs.Bool("keep-xml", false, "save the intermediate decrypted XML")
	metricsFlag := fs.Bool("metrics", false, "print decode throughput metrics")
	progressFlag := fs.Bool("progress", false, "display decode progress updates")
	fs.Parse(args)

	files := collectInputs(fs.Args())
	if len(files) == 0 {
		fmt.Println("No .ae3 files found.")
		os.Exit(1)
	}
	fmt.Printf("AustroView - AE300 Data Log Converter\nFound %d file(s) to process\n", len(files))
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		common.Fatalf("output dir: %v", err)
	}

	failed := 0
	for _, path := range files {
		var metrics *common.Metrics
		if *metricsFlag || *progressFlag {
			metrics = common.NewMetrics()
			metrics.Start()
		}
		var stopProgress func()
		if metrics != nil && *progressFlag {
			stopProgress = common.StartProgressPrinter(os.Stderr, metrics, 500*time.Millisecond)
		}
		err := processFile(path, *outDir, *keepXML, metrics)
		if stopProgress != nil {
			stopProgress()
		}
		if metrics != nil {
			metrics.Stop()
		}
		if err != nil {
			common.Logf("error processing %s: %v", filepath.Base(path), err)
			failed++
			continue
		}
		if metrics != nil && *metricsFlag {
			snap := metrics.Snapshot()
			fmt.Printf("Metrics: duration=%s sectors=%d sessions=%d records=%d processed=%s\n",
				snap.Duration.Round(10*time.Millisecond),
				snap.Sectors,
				snap.Sessions,
				snap.Records,
				common.FormatBytes(snap.Bytes),
			)
		}
	}
	if failed == len(files) {
		os.Exit(1)
	}
}

func processFile(path, outDir string, keepXML bool, metrics *common.Metrics) error {
	fmt.Printf("\nProcessing: %s\n", filepath.Base(path))
	res, err := decode.File(path, metrics)
	if err != nil {
		return err
	}
	fmt.Printf("  %d data log sectors, %d recording sessions\n", res.Sectors, len(res.Sessions))

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if keepXML {
		xmlPath := filepath.Join(outDir, stem+".xml")
		if err := os.WriteFile(xmlPath, res.XML, 0o644); err != nil {
			return fmt.Errorf("write xml: %w", err)
		}
		fmt.Printf("  XML saved: %s\n", xmlPath)
	}

	fmt.Print(export.Summary(filepath.Base(path), res.Sessions))
	if len(res.Sessions) == 0 {
		return nil
	}

	paths, err := export.WriteSessionCSVs(stem, res.Sessions, outDir)
	if err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	for _, p := range paths {
		fmt.Printf("  %s\n", filepath.Base(p))
	}
	fmt.Printf("\n  %d CSV files written to: %s\n", len(paths), outDir)
	return nil
}

func summaryCmd(args []string) {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	fs.Parse(args)

	files := collectInputs(fs.Args())
	if len(files) == 0 {
		fmt.Println("No .ae3 files found.")
		os.Exit(1)
	}
	failed := 0
	for _, path := range files {
		res, err := decode.File(path, nil)
		if err != nil {
			common.Logf("error processing %s: %v", filepath.Base(path), err)
			failed++
			continue
		}
		fmt.Print(export.Summary(filepath.Base(path), res.Sessions))
	}
	if failed == len(files) {
		os.Exit(1)
	}
}

func reportCmd(args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	in := fs.String("in", "", "input .ae3")
	out := fs.String("out", "", "output PDF (default <input>_report.pdf)")
	fs.Parse(args)

	if *in == "" {
		fmt.Println("required: --in")
		os.Exit(1)
	}
	res, err := decode.File(*in, nil)
	if err != nil {
		common.Fatalf("decode: %v", err)
	}
	outPath := *out
	if outPath == "" {
		stem := strings.TrimSuffix(*in, filepath.Ext(*in))
		outPath = stem + "_report.pdf"
	}
	err = export.SaveReportPDF(export.ReportInput{
		Filename: filepath.Base(*in),
		SHA256:   res.SHA256,
		Sessions: res.Sessions,
	}, outPath)
	if err != nil {
		common.Fatalf("write report: %v", err)
	}
	fmt.Printf("Report written: %s\n", outPath)
}

func manifestCmd(args []string) {
	fs := flag.NewFlagSet("manifest", flag.ExitOnError)
	inputs := fs.String("inputs", "", "comma-separated input files")
	out := fs.String("out", "manifest.json", "manifest output path")
	fs.Parse(args)

	if *inputs == "" {
		fmt.Println("required: --inputs")
		os.Exit(1)
	}
	paths := strings.Split(*inputs, ",")
	for i := range paths {
		paths[i] = strings.TrimSpace(paths[i])
	}
	m, err := manifest.Build(paths)
	if err != nil {
		common.Fatalf("build manifest: %v", err)
	}
	if err := manifest.Save(m, *out); err != nil {
		common.Fatalf("write manifest: %v", err)
	}
	fmt.Printf("Manifest written: %s (%d items)\n", *out, len(m.Items))
}
