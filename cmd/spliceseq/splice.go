package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"spliceseq/internal/fasta"
	"spliceseq/internal/feature"
	"spliceseq/internal/genbank"
	"spliceseq/internal/remote"
	"spliceseq/internal/splice"
	"spliceseq/internal/store"
)

func newSpliceCmd() *cobra.Command {
	var (
		key           string
		index         int
		preserveOrder bool
		offline       bool
		outputFile    string
		width         int
	)

	cmd := &cobra.Command{
		Use:   "splice <genbank-file>",
		Short: "Assemble spliced sequences from a GenBank file's features",
		Example: `  spliceseq splice record.gb                 # splice every CDS feature
  spliceseq splice --key mRNA record.gb      # splice mRNA features instead
  spliceseq splice --index 2 record.gb       # splice only the third matching feature
  spliceseq splice --offline record.gb.gz    # never fetch foreign records`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplice(args[0], key, index, preserveOrder, offline, outputFile, width)
		},
	}

	cmd.Flags().StringVarP(&key, "key", "k", "CDS", "Feature key to splice")
	cmd.Flags().IntVarP(&index, "index", "i", -1, "Only splice the matching feature at this index")
	cmd.Flags().BoolVar(&preserveOrder, "preserve-order", false, "Assemble sub-intervals in input order instead of sorting 5'->3'")
	cmd.Flags().BoolVar(&offline, "offline", false, "Do not fetch foreign records; substitute placeholder residues")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output FASTA file (default: stdout)")
	cmd.Flags().IntVarP(&width, "width", "w", 0, "Residues per FASTA line (default: from config)")

	return cmd
}

func runSplice(path, key string, index int, preserveOrder, offline bool, outputFile string, width int) error {
	doc, err := genbank.ParseFile(path)
	if err != nil {
		return err
	}

	features := doc.FeaturesByKey(key)
	if len(features) == 0 {
		return fmt.Errorf("no %s features in %s", key, path)
	}
	if index >= 0 {
		if index >= len(features) {
			return fmt.Errorf("feature index %d out of range: %s has %d %s features", index, path, len(features), key)
		}
		features = features[index : index+1]
	}

	splicer := splice.NewSplicer()
	splicer.SetPreserveOrder(preserveOrder)
	splicer.SetLogger(logger)
	if !offline {
		lookup, closeStore, err := buildLookup()
		if err != nil {
			return err
		}
		if closeStore != nil {
			defer closeStore()
		}
		splicer.SetLookup(lookup)
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

	for i, f := range features {
		rec, warns, err := splicer.Splice(f)
		if err != nil {
			return fmt.Errorf("splice %s feature %d: %w", key, i, err)
		}
		for _, w := range warns {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
		}
		rec.Desc = describeFeature(f, key)
		if err := writer.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// buildLookup layers the DuckDB record store in front of the efetch client.
// A store that cannot be opened degrades to direct fetching.
func buildLookup() (splice.Lookup, func() error, error) {
	client := remote.NewClient()
	if u := viper.GetString("entrez.base_url"); u != "" {
		client.SetBaseURL(u)
	}
	if k := viper.GetString("entrez.api_key"); k != "" {
		client.SetAPIKey(k)
	}

	cachePath := viper.GetString("cache.path")
	if cachePath == "" {
		return client, nil, nil
	}
	st, err := store.Open(cachePath)
	if err != nil {
		logger.Warn("record cache unavailable, fetching directly",
			zap.String("path", cachePath), zap.Error(err))
		return client, nil, nil
	}
	return store.NewCachingLookup(st, client), st.Close, nil
}

func describeFeature(f *feature.Generic, key string) string {
	desc := key
	for _, tag := range []string{"gene", "product", "locus_tag"} {
		if vals := f.Tag(tag); len(vals) > 0 {
			desc += " " + vals[0]
			break
		}
	}
	return desc
}
