package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Print the active question catalog",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		catalog, err := loadCatalog(cfg, logger)
		if err != nil {
			logger.Error("load question catalog", zap.Error(err))
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDIFFICULTY\tTYPE\tTOPIC\tTEXT")
		for _, q := range catalog.All() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", q.ID, q.Difficulty, q.Type, q.Topic, q.Text)
		}
		return w.Flush()
	},
}
