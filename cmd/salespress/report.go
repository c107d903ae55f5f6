package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/salespress/salespress/internal/aggregate"
	"github.com/salespress/salespress/internal/cli"
	"github.com/salespress/salespress/internal/common"
	"github.com/salespress/salespress/internal/config"
	"github.com/salespress/salespress/internal/dataset"
	"github.com/salespress/salespress/internal/model"
	"github.com/salespress/salespress/internal/report"
)

func reportFlags(cmd *cobra.Command) {
	// Flags
	cmd.Flags().StringP("input", "i", "", "sales data to load (.csv or .xlsx); synthesized when empty")
	cmd.Flags().StringP("output", "o", "sales_report.pdf", "report destination (.pdf)")
	cmd.Flags().String("xlsx", "", "optional companion workbook destination (.xlsx)")
	cmd.Flags().String("title", "Annual Sales Report", "report title")
	cmd.Flags().Int("top", aggregate.DefaultTopProducts, "products to include in the top ranking")
	cmd.Flags().IntP("rows", "n", 100, "synthetic rows to generate when no input is given")
	cmd.Flags().Int64("seed", 42, "synthetic data generator seed")
	cmd.Flags().IntP("year", "y", time.Now().Year(), "synthetic data year")

	// Bind to viper
	_ = viper.BindPFlag("report.input", cmd.Flags().Lookup("input"))
	_ = viper.BindPFlag("report.output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("report.workbook", cmd.Flags().Lookup("xlsx"))
	_ = viper.BindPFlag("report.title", cmd.Flags().Lookup("title"))
	_ = viper.BindPFlag("report.top", cmd.Flags().Lookup("top"))
	_ = viper.BindPFlag("generate.records", cmd.Flags().Lookup("rows"))
	_ = viper.BindPFlag("generate.seed", cmd.Flags().Lookup("seed"))
	_ = viper.BindPFlag("generate.year", cmd.Flags().Lookup("year"))
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	reportCfg, err := config.LoadReportConfig()
	if err != nil {
		return fmt.Errorf("invalid report configuration: %w", err)
	}

	slog.Info(cli.FormatTitle("Pressing your sales report..."))

	table, err := loadOrGenerate(ctx)
	if err != nil {
		return common.NewUserError("could not prepare sales data", err)
	}

	bundle, err := aggregate.Summarize(table, reportCfg.TopProducts)
	if err != nil {
		return fmt.Errorf("failed to summarize sales data: %w", err)
	}

	doc, err := report.Assemble(bundle, reportCfg, time.Now())
	if err != nil {
		return fmt.Errorf("failed to assemble report: %w", err)
	}

	writer := report.NewWriter()
	if err := writer.WritePDF(doc, reportCfg.OutputPath); err != nil {
		return common.NewUserError("could not write the report", err)
	}
	if reportCfg.Workbook != "" {
		if err := writer.WriteXLSX(doc, reportCfg.Workbook); err != nil {
			return common.NewUserError("could not write the workbook", err)
		}
	}

	printSummary(bundle, reportCfg)

	return nil
}

// loadOrGenerate reads the configured input file, or fabricates a synthetic
// dataset when no input is given.
func loadOrGenerate(ctx context.Context) (model.SalesTable, error) {
	if input := config.ExpandPath(viper.GetString("report.input")); input != "" {
		return dataset.NewLoader().Load(ctx, input)
	}

	genCfg, err := config.LoadGeneratorConfig()
	if err != nil {
		return nil, fmt.Errorf("invalid generator configuration: %w", err)
	}
	genCfg.Progress = os.Stderr

	gen, err := dataset.NewGenerator(genCfg)
	if err != nil {
		return nil, err
	}
	return gen.Generate(ctx)
}

func printSummary(b *aggregate.Bundle, cfg report.Config) {
	lines := []string{
		cli.FormatMetric("Total Sales", model.FormatAmount(b.GrandTotal)),
		cli.FormatMetric("Transactions", model.FormatCount(b.Records)),
		cli.FormatMetric("Average Sale", model.FormatAmount(b.AverageSale)),
	}
	if top := b.TopCategory(); top != nil {
		lines = append(lines, cli.FormatMetric("Top Category", top.Label))
	}
	lines = append(lines, cli.FormatMetric("Report", cfg.OutputPath))
	if cfg.Workbook != "" {
		lines = append(lines, cli.FormatMetric("Workbook", cfg.Workbook))
	}

	slog.Info(cli.RenderBox(fmt.Sprintf("%d Sales Report", b.Year()), strings.Join(lines, "\n")))
	slog.Info(cli.FormatSuccess("Report generated: " + cfg.OutputPath))
}
