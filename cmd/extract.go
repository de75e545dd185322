package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ndwells/wellbook/internal/extract"
	"github.com/ndwells/wellbook/internal/loader"
	"github.com/ndwells/wellbook/internal/store"
)

var (
	extractPDFDir   string
	extractLimit    int
	extractFiles    []string
	extractWorkers  int
	extractMaxPages int
	extractSynonyms string
	extractDryRun   bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract well data from scanned PDFs into the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		pdfDir := extractPDFDir
		if pdfDir == "" {
			pdfDir = cfg.Extract.PDFDir
		}
		workers := extractWorkers
		if workers <= 0 {
			workers = cfg.Extract.Workers
		}
		maxPages := extractMaxPages
		if maxPages == 0 {
			maxPages = cfg.Extract.MaxPages
		}
		synonyms := extractSynonyms
		if synonyms == "" {
			synonyms = cfg.Extract.SynonymsFile
		}
		if synonyms != "" {
			if err := extract.LoadSynonyms(synonyms); err != nil {
				return err
			}
		}

		paths, err := listPDFs(pdfDir, extractFiles, extractLimit)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return eris.Errorf("no PDF files found in %s", pdfDir)
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		// Dry runs leave no trace, including the run log.
		var runID string
		if !extractDryRun {
			runID, err = st.StartRun(ctx, "extract")
			if err != nil {
				return err
			}
		}

		docLoader := loader.NewPdfToText(cfg.Extract.PdfToTextPath, maxPages)

		zap.L().Info("extraction started",
			zap.String("pdf_dir", pdfDir),
			zap.Int("files", len(paths)),
			zap.Int("workers", workers),
			zap.Bool("dry_run", extractDryRun))

		var processed, failed atomic.Int64
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)

		for _, path := range paths {
			g.Go(func() error {
				if err := extractOne(gctx, st, docLoader, path); err != nil {
					failed.Add(1)
					zap.L().Warn("extraction failed, skipping file",
						zap.String("file", filepath.Base(path)),
						zap.Error(err))
					return nil
				}
				processed.Add(1)
				return nil
			})
		}
		runErr := g.Wait()

		if !extractDryRun {
			if err := st.CompleteRun(ctx, runID, int(processed.Load()), runErr); err != nil {
				zap.L().Warn("run log update failed", zap.Error(err))
			}
		}

		zap.L().Info("extraction finished",
			zap.Int64("processed", processed.Load()),
			zap.Int64("failed", failed.Load()))
		return runErr
	},
}

func extractOne(ctx context.Context, st store.Store, docLoader loader.Loader, path string) error {
	doc, err := docLoader.Load(ctx, path)
	if err != nil {
		return err
	}

	res := extract.Assemble(doc)
	for _, f := range res.Findings {
		zap.L().Debug("extraction finding",
			zap.String("file", doc.Source),
			zap.String("field", f.Field),
			zap.String("reason", f.Reason))
	}

	if extractDryRun {
		fmt.Printf("%s: %s (%s), %d stimulation rows, %d findings\n",
			doc.Source, res.Well.WellName, res.Well.APINumber,
			len(res.Stimulations), len(res.Findings))
		return nil
	}

	id, err := st.UpsertWell(ctx, res.Well, res.Stimulations)
	if err != nil {
		return err
	}
	zap.L().Info("well extracted",
		zap.String("file", doc.Source),
		zap.Int64("well_id", id),
		zap.String("well_name", res.Well.WellName),
		zap.Int("stimulations", len(res.Stimulations)))
	return nil
}

func listPDFs(dir string, only []string, limit int) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "read pdf dir %s", dir)
	}

	wanted := map[string]struct{}{}
	for _, f := range only {
		wanted[f] = struct{}{}
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		if len(wanted) > 0 {
			if _, ok := wanted[e.Name()]; !ok {
				continue
			}
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	if limit > 0 && len(paths) > limit {
		paths = paths[:limit]
	}
	return paths, nil
}

func init() {
	extractCmd.Flags().StringVar(&extractPDFDir, "pdf-dir", "", "directory of scanned well files (default from config)")
	extractCmd.Flags().IntVar(&extractLimit, "limit", 0, "process at most N files")
	extractCmd.Flags().StringSliceVar(&extractFiles, "files", nil, "process only these file names")
	extractCmd.Flags().IntVar(&extractWorkers, "workers", 0, "parallel extraction workers (default from config)")
	extractCmd.Flags().IntVar(&extractMaxPages, "max-pages", 0, "read only the first N pages of each PDF")
	extractCmd.Flags().StringVar(&extractSynonyms, "synonyms", "", "YAML file of extra table header synonyms")
	extractCmd.Flags().BoolVar(&extractDryRun, "dry-run", false, "extract and report without writing to the database")
	rootCmd.AddCommand(extractCmd)
}
