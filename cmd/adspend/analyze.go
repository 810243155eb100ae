package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/AngelCh415/adspend/internal/analysis"
	"github.com/AngelCh415/adspend/internal/ingest"
	"github.com/AngelCh415/adspend/internal/models"
)

var (
	analyzeFiles       []string
	analyzeRevenue     float64
	analyzeDays        float64
	analyzeDailyBudget float64
	analyzePrice       float64
	analyzeFormat      string
	analyzeNarrate     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze one or more CSV/XLSX ad exports",
	Example: "  adspend analyze --file meta.csv --file tiktok.xlsx \\\n" +
		"    --revenue 250000 --days 14 --daily-budget 5000 --price 15000",
	RunE: func(cmd *cobra.Command, args []string) error {
		if analyzeFormat != "json" && analyzeFormat != "yaml" {
			return eris.Errorf("unsupported --format %q (json|yaml)", analyzeFormat)
		}
		rows, err := readExports(analyzeFiles)
		if err != nil {
			return err
		}

		cfg.Narrator.Enabled = analyzeNarrate
		eng := analysis.NewFromConfig(cfg, logger)
		report, err := eng.Analyze(cmd.Context(), analysis.Request{
			Rows: rows,
			Context: models.BusinessContext{
				RevenueTotal: analyzeRevenue,
				CampaignDays: analyzeDays,
				DailyBudget:  analyzeDailyBudget,
				ProductPrice: analyzePrice,
			},
		})
		if err != nil {
			return err
		}
		return writeReport(cmd.OutOrStdout(), report, analyzeFormat)
	},
}

func init() {
	f := analyzeCmd.Flags()
	f.StringArrayVarP(&analyzeFiles, "file", "f", nil, "export file (.csv, .tsv, .txt, .xlsx); repeatable")
	f.Float64Var(&analyzeRevenue, "revenue", 0, "total revenue over the period")
	f.Float64Var(&analyzeDays, "days", 0, "campaign duration in days")
	f.Float64Var(&analyzeDailyBudget, "daily-budget", 0, "planned daily budget")
	f.Float64Var(&analyzePrice, "price", 0, "product unit price")
	f.StringVar(&analyzeFormat, "format", "json", "output format: json or yaml")
	f.BoolVar(&analyzeNarrate, "narrate", false, "ask the configured narrator for a commentary")
	for _, name := range []string{"file", "revenue", "days", "daily-budget", "price"} {
		_ = analyzeCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(analyzeCmd)
}

// readExports reads every file concurrently and concatenates the rows in
// argument order.
func readExports(paths []string) ([]models.RawRow, error) {
	parts := make([][]models.RawRow, len(paths))
	var g errgroup.Group
	for i, p := range paths {
		g.Go(func() error {
			rows, err := ingest.ReadFile(p)
			if err != nil {
				return err
			}
			parts[i] = rows
			slog.Debug("export read", slog.String("file", p), slog.Int("rows", len(rows)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []models.RawRow
	for _, rows := range parts {
		out = append(out, rows...)
	}
	return out, nil
}

func writeReport(w io.Writer, report *models.Report, format string) error {
	body, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return eris.Wrap(err, "marshal report")
	}
	if format == "json" {
		_, err = w.Write(append(body, '\n'))
		return err
	}

	// JSON is valid YAML; re-encoding the node tree keeps the field order
	// and names of the JSON payload.
	var doc yaml.Node
	if err := yaml.Unmarshal(body, &doc); err != nil {
		return eris.Wrap(err, "convert report to yaml")
	}
	resetStyle(&doc)
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return eris.Wrap(err, "encode yaml")
	}
	if err := enc.Close(); err != nil {
		return eris.Wrap(err, "encode yaml")
	}
	_, err = w.Write(buf.Bytes())
	return err
}

func resetStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		resetStyle(c)
	}
}
