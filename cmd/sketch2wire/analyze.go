package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/sketch2wire/internal/imaging"
	"github.com/ironsheep/sketch2wire/internal/pipeline"
)

type analyzeOptions struct {
	outDir      string
	debugImage  bool
	concurrency int
	name        string
	device      string
}

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze FILE...",
		Short: "Analyze sketch image files and write wireframe JSON",
		Long: `Analyze each sketch and write <file>.wireframe.json next to it, or into
--out when given. With --debug an annotated <file>.debug.png is written too.
The first failure stops the remaining files.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), root, opts, args, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "output directory (default: next to each input)")
	cmd.Flags().BoolVar(&opts.debugImage, "debug", false, "also write an annotated debug PNG")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "j", runtime.GOMAXPROCS(0), "files analyzed in parallel")
	cmd.Flags().StringVar(&opts.name, "name", "", "wireframe name (default: input file name)")
	cmd.Flags().StringVar(&opts.device, "device", "", "canvas preset (desktop, macbook, iphone, ...)")
	return cmd
}

func runAnalyze(ctx context.Context, root *rootOptions, opts *analyzeOptions, files []string, stdout io.Writer) error {
	if opts.concurrency < 1 {
		return fmt.Errorf("--concurrency must be at least 1, got %d", opts.concurrency)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.outDir != "" {
		if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	bases, err := outputBases(files, opts.outDir)
	if err != nil {
		return err
	}
	summaries := make([]string, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.concurrency)
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			summary, err := analyzeFile(root, opts, file, bases[i])
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			summaries[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Printf("Analyze failed: %v", err)
		return err
	}

	for _, s := range summaries {
		fmt.Fprintln(stdout, s)
	}
	return nil
}

// analyzeFile runs the pipeline on one file and writes its outputs under
// the path prefix base.
func analyzeFile(root *rootOptions, opts *analyzeOptions, file, base string) (string, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	name := opts.name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	}

	start := time.Now()
	res, err := root.analyzer.AnalyzeBytes(data, pipeline.Options{
		ProduceDebugImage: opts.debugImage,
		Name:              name,
		Device:            opts.device,
	})
	if err != nil {
		return "", err
	}
	if root.debug {
		log.Printf("Analyzed %s in %s: %s", file, time.Since(start).Round(time.Millisecond), strings.Join(res.ProcessingNotes, "; "))
	}

	if res.DebugImage != nil {
		png, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(*res.DebugImage, imaging.PNGDataURIPrefix))
		if err != nil {
			return "", fmt.Errorf("failed to decode debug image: %w", err)
		}
		if err := os.WriteFile(base+".debug.png", png, 0o644); err != nil {
			return "", fmt.Errorf("failed to write debug image: %w", err)
		}
		res.DebugImage = nil
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	jsonPath := base + ".wireframe.json"
	if err := os.WriteFile(jsonPath, append(out, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("failed to write result: %w", err)
	}

	return fmt.Sprintf("%s: %d components -> %s", file, len(res.Components), jsonPath), nil
}

// outputBase returns the output path prefix for file: the input path
// without its extension, moved into outDir when one is given.
func outputBase(file, outDir string) string {
	base := strings.TrimSuffix(file, filepath.Ext(file))
	if outDir != "" {
		base = filepath.Join(outDir, filepath.Base(base))
	}
	return base
}

// outputBases maps every input to its output prefix and fails when two
// inputs would write the same files.
func outputBases(files []string, outDir string) ([]string, error) {
	bases := make([]string, len(files))
	owner := make(map[string]string, len(files))
	for i, file := range files {
		base := filepath.Clean(outputBase(file, outDir))
		if prev, ok := owner[base]; ok {
			return nil, fmt.Errorf("%s and %s would both write %s.wireframe.json", prev, file, base)
		}
		owner[base] = file
		bases[i] = base
	}
	return bases, nil
}
