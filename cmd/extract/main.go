// Package main provides a terminal client that uploads one document to the
// extraction service and prints the returned tables.
package main

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/extractview/internal/pkg/pkglog"
	"github.com/spf13/cobra"
)

func main() {
	// stdout carries the tables; logs go to stderr.
	slog.SetDefault(pkglog.New(os.Stderr, pkglog.ParseLevel(os.Getenv("LOG_LEVEL"))))

	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Upload a document to the extraction service and print the tables",
		Long: `extract sends one PDF, spreadsheet or image to the extraction service
and prints the invoices, products and customers it returns.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	rootCmd.Flags().StringVar(&opts.endpoint, "endpoint", "", "Extraction endpoint (default: $EXTRACTVIEW_EXTRACTION_ENDPOINT or http://localhost:8000/upload/)")
	rootCmd.Flags().StringVar(&opts.tab, "tab", "", "Print only this table: invoices, products or customers")
	rootCmd.Flags().StringVarP(&opts.xlsx, "xlsx", "o", "", "Also write the tables to this xlsx file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
