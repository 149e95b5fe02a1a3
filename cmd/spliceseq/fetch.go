package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"spliceseq/internal/fasta"
)

func newFetchCmd() *cobra.Command {
	var (
		outputFile string
		width      int
	)

	cmd := &cobra.Command{
		Use:   "fetch <accession>...",
		Short: "Fetch sequence records by accession",
		Long:  "Fetch whole nucleotide records from Entrez efetch, caching them in the local record store, and write them as FASTA.",
		Example: `  spliceseq fetch X77802
  spliceseq fetch -o refs.fa J00194 X77802`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(args, outputFile, width)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output FASTA file (default: stdout)")
	cmd.Flags().IntVarP(&width, "width", "w", 0, "Residues per FASTA line (default: from config)")

	return cmd
}

func runFetch(accessions []string, outputFile string, width int) error {
	lookup, closeStore, err := buildLookup()
	if err != nil {
		return err
	}
	if closeStore != nil {
		defer closeStore()
	}

	out := os.Stdout
	if outputFile != "" {
		out, err = os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer out.Close()
	}

	writer := fasta.NewWriter(out)
	if width <= 0 {
		width = viper.GetInt("output.width")
	}
	writer.SetWidth(width)

	for _, acc := range accessions {
		rec, err := lookup.FetchByAccession(acc)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", acc, err)
		}
		if err := writer.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
