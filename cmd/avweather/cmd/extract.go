package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"avweather/internal/bulletin"
	"avweather/internal/feed"
	"avweather/internal/logging"
	"avweather/internal/observability"
)

// extractStats are the counters printed by --stats.
type extractStats struct {
	Lines      int
	Envelope   int
	Flat       int
	Nested     int
	Raw        int
	LineErrors int
	Emitted    int
	Reports    int
	Failed     int
}

func (st *extractStats) count(kind feed.Kind) {
	switch kind {
	case feed.KindEnvelope:
		st.Envelope++
	case feed.KindFlat:
		st.Flat++
	case feed.KindNested:
		st.Nested++
	case feed.KindRaw:
		st.Raw++
	}
}

func (st *extractStats) String() string {
	return fmt.Sprintf(
		"stats: lines=%d decoded(envelope=%d flat=%d nested=%d raw=%d) line_errors=%d emitted=%d reports=%d failed=%d",
		st.Lines, st.Envelope, st.Flat, st.Nested, st.Raw, st.LineErrors, st.Emitted, st.Reports, st.Failed,
	)
}

func newExtractCmd(a *app) *cobra.Command {
	var (
		inPath      string
		outPath     string
		includeAll  bool
		showStats   bool
		metricsFile string
	)

	extractCmd := &cobra.Command{
		Use:   "extract",
		Short: "Find and decode reports in a message feed",
		Long: `Reads one message per line and decodes every METAR or SPECI found
in the message text. Lines may be feed envelopes, flat messages, decoder
logs with the text nested deeper, or raw report text.

Examples:
  avweather extract --input messages.jsonl --output reports.json
  avweather extract --input messages.jsonl --all --stats
  avweather extract --metrics-file /var/lib/node_exporter/avweather.prom < messages.jsonl`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if flags.Changed("all") {
				a.cfg.Extract.IncludeAll = includeAll
			}
			if flags.Changed("stats") {
				a.cfg.Extract.Stats = showStats
			}
			if flags.Changed("metrics-file") {
				a.cfg.Extract.MetricsFile = metricsFile
			}

			var r io.Reader = cmd.InOrStdin()
			if inPath != "" {
				f, err := os.Open(inPath)
				if err != nil {
					return fmt.Errorf("failed to open input: %w", err)
				}
				defer f.Close()
				r = f
			}

			started := time.Now()
			metrics := observability.NewMetrics()
			results, st, runErr := extract(r, a, metrics)
			if runErr == nil {
				runErr = writeResults(cmd, outPath, results, a)
			}
			if runErr == nil {
				metrics.LastRunSuccess.Set(1)
			}

			if a.cfg.Extract.Stats {
				fmt.Fprintln(cmd.ErrOrStderr(), st.String())
			}
			if path := a.cfg.Extract.MetricsFile; path != "" {
				if err := metrics.WriteTextfile(path); err != nil {
					a.log.Error("metrics not written", logging.String("path", path), logging.Error(err))
					if runErr == nil {
						runErr = err
					}
				}
			}

			a.log.Info("extract finished",
				logging.Int("lines", st.Lines),
				logging.Int("emitted", st.Emitted),
				logging.Int("reports", st.Reports),
				logging.Int("failed", st.Failed),
				logging.Duration("elapsed", time.Since(started)),
			)
			return runErr
		},
	}

	fl := extractCmd.Flags()
	fl.StringVar(&inPath, "input", "", "Input JSONL file (default: stdin)")
	fl.StringVar(&outPath, "output", "", "Output file (default: stdout)")
	fl.BoolVar(&includeAll, "all", false, "Include messages in which no report was found")
	fl.BoolVar(&showStats, "stats", false, "Print counters to stderr")
	fl.StringVar(&metricsFile, "metrics-file", "", "Write Prometheus textfile metrics to this path")

	return extractCmd
}

// extract reads the whole feed. Undecodable lines are logged and skipped;
// only a read failure stops the run.
func extract(r io.Reader, a *app, metrics *observability.Metrics) ([]*bulletin.Result, *extractStats, error) {
	rd := feed.NewReader(r)
	out := make([]*bulletin.Result, 0, 1024)
	st := &extractStats{}

	defer func() {
		st.Lines = rd.Line()
		metrics.LinesRead.Add(float64(st.Lines))
	}()

	for {
		msg, kind, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return out, st, nil
		}
		var lineErr *feed.LineError
		if errors.As(err, &lineErr) {
			st.LineErrors++
			metrics.LineErrors.Inc()
			a.log.Warn("line skipped", logging.Int("line", lineErr.Line), logging.Error(lineErr.Err))
			continue
		}
		if err != nil {
			return out, st, err
		}

		st.count(kind)
		metrics.Messages.WithLabelValues(string(kind)).Inc()

		res := bulletin.ExtractMessage(msg)
		metrics.ReportsPerMsg.Observe(float64(len(res.Reports)))
		for _, e := range res.Reports {
			st.Reports++
			metrics.ObserveReport(e.Err)
			if e.Err != nil {
				st.Failed++
				a.log.Warn("report failed to parse",
					logging.Int("line", rd.Line()),
					logging.String("report", e.Raw),
					logging.String("field", failedField(e.Err)),
					logging.Error(e.Err),
				)
			}
		}

		if !a.cfg.Extract.IncludeAll && len(res.Reports) == 0 {
			continue
		}
		out = append(out, res)
		st.Emitted++
	}
}

func writeResults(cmd *cobra.Command, outPath string, results []*bulletin.Result, a *app) error {
	w := cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	return render(w, results, a.cfg.Output)
}
