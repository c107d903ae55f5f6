package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/salespress/salespress/internal/cli"
	"github.com/salespress/salespress/internal/config"
	"github.com/salespress/salespress/internal/dataset"
)

func sampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a synthetic sales dataset",
		Long: `Fabricate a reproducible synthetic sales dataset and write it to disk.

The destination extension picks the format: .csv or .xlsx.`,
		RunE: runSample,
	}

	// Flags
	cmd.Flags().StringP("dest", "d", "sales_data.csv", "destination file (.csv or .xlsx)")
	cmd.Flags().IntP("rows", "n", 100, "rows to generate")
	cmd.Flags().Int64("seed", 42, "generator seed")
	cmd.Flags().IntP("year", "y", time.Now().Year(), "calendar year to cover")

	// Bind to viper
	_ = viper.BindPFlag("sample.dest", cmd.Flags().Lookup("dest"))
	_ = viper.BindPFlag("sample.rows", cmd.Flags().Lookup("rows"))
	_ = viper.BindPFlag("sample.seed", cmd.Flags().Lookup("seed"))
	_ = viper.BindPFlag("sample.year", cmd.Flags().Lookup("year"))

	return cmd
}

func runSample(cmd *cobra.Command, _ []string) error {
	dest := config.ExpandPath(viper.GetString("sample.dest"))

	genCfg := dataset.DefaultGeneratorConfig()
	if v := viper.GetInt("sample.rows"); v > 0 {
		genCfg.Records = v
	}
	if v := viper.GetInt64("sample.seed"); v != 0 {
		genCfg.Seed = v
	}
	if v := viper.GetInt("sample.year"); v > 0 {
		genCfg.Year = v
	}
	genCfg.Progress = os.Stderr

	gen, err := dataset.NewGenerator(genCfg)
	if err != nil {
		return err
	}
	table, err := gen.Generate(cmd.Context())
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(dest)) {
	case ".csv":
		err = dataset.WriteCSV(table, dest)
	case ".xlsx":
		err = dataset.WriteXLSX(table, dest)
	default:
		return fmt.Errorf("unsupported sample format %q: use .csv or .xlsx", filepath.Ext(dest))
	}
	if err != nil {
		return err
	}

	slog.Info(cli.FormatSuccess(fmt.Sprintf("Sample data written to %s (%d rows)", dest, len(table))))

	return nil
}
