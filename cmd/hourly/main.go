package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/spencer-p/tidechart/pkg/config"
	"github.com/spencer-p/tidechart/pkg/pipeline"
	"github.com/spencer-p/tidechart/pkg/tide/splines"
	"github.com/spencer-p/tidechart/pkg/timetricks"
)

const step = 2 * time.Hour

var rootCmd = &cobra.Command{
	Use:          "hourly",
	Short:        "Print the smoothed tide curve every two hours",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		p, err := pipeline.New(cfg, io.Discard)
		if err != nil {
			return err
		}
		datasets := p.Datasets(ctx)
		last := datasets[len(datasets)-1]
		if !last.Available() {
			return fmt.Errorf("building %s: %w", last.Name, last.Err)
		}

		spl, err := splines.Fit(last.Records)
		if err != nil {
			return fmt.Errorf("fitting %s: %w", last.Name, err)
		}
		dump(cmd.OutOrStdout(), spl, step)
		return nil
	},
}

// dump prints spl sampled every step, one line per day.
func dump(w io.Writer, spl *splines.Spline, step time.Duration) {
	var day time.Time
	for i, t := range timetricks.Steps(spl.Start, spl.End, step) {
		if i == 0 || !timetricks.SameDay(day, t) {
			if i > 0 {
				fmt.Fprintln(w)
			}
			day = t
			fmt.Fprintf(w, "%s", timetricks.UniqueDay(t))
		}
		fmt.Fprintf(w, " %s=%.2f", t.Format("15:04"), spl.Eval(t))
	}
	fmt.Fprintln(w)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err.Error())
	}
}
