package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/spencer-p/tidechart/pkg/config"
	"github.com/spencer-p/tidechart/pkg/pipeline"
)

var rootCmd = &cobra.Command{
	Use:   "tidechart",
	Short: "Chart the Hong Kong tide table",
	Long: `Fetches the tide text page, splits its tables into datasets and draws a
smoothed tide curve for the last one.

Configuration is read from TIDECHART_* environment variables.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		return pipeline.Run(ctx, cfg, cmd.OutOrStdout())
	},
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatal(err.Error())
	}
}
