package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"avweather/internal/logging"
	"avweather/internal/metar"
)

// parseEntry is one line of parse output.
type parseEntry struct {
	Raw   string       `json:"raw" yaml:"raw"`
	Metar *metar.Metar `json:"metar,omitempty" yaml:"metar,omitempty"`
	Steps []metar.Step `json:"steps,omitempty" yaml:"steps,omitempty"`
	Error string       `json:"error,omitempty" yaml:"error,omitempty"`
}

func newParseCmd(a *app) *cobra.Command {
	var trace bool

	parseCmd := &cobra.Command{
		Use:   "parse [report...]",
		Short: "Decode METAR and SPECI reports",
		Long: `Decodes each argument as one report. Without arguments every
non-blank line of stdin is one report.

Examples:
  avweather parse "METAR LPPT 010000Z AUTO 00001KT CAVOK 03/M04 Q1013"
  avweather parse --trace --format yaml "SPECI EGLL 161020Z 24015KT 9999 -RA BKN012 12/10 Q0998"
  cat reports.txt | avweather parse`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("trace") {
				a.cfg.Output.Trace = trace
			}

			reports := args
			if len(reports) == 0 {
				var err error
				if reports, err = readLines(cmd); err != nil {
					return err
				}
			}

			entries, failed := parseReports(reports, a.cfg.Output.Trace, a.log)
			if err := render(cmd.OutOrStdout(), entries, a.cfg.Output); err != nil {
				return err
			}

			a.log.Info("parse finished",
				logging.Int("reports", len(entries)),
				logging.Int("failed", failed),
			)
			if failed > 0 {
				return fmt.Errorf("%d of %d reports failed to parse", failed, len(entries))
			}
			return nil
		},
	}

	parseCmd.Flags().BoolVar(&trace, "trace", false, "Include every group attempt in the output")

	return parseCmd
}

func parseReports(reports []string, trace bool, log *logging.Logger) ([]parseEntry, int) {
	entries := make([]parseEntry, 0, len(reports))
	failed := 0

	for _, raw := range reports {
		e := parseEntry{Raw: raw}

		var err error
		if trace {
			e.Metar, e.Steps, err = metar.ParseWithTrace(raw)
		} else {
			e.Metar, err = metar.Parse(raw)
		}
		if err != nil {
			failed++
			e.Error = err.Error()
			log.Warn("report failed to parse",
				logging.String("report", raw),
				logging.String("field", failedField(err)),
				logging.Error(err),
			)
		}
		entries = append(entries, e)
	}
	return entries, failed
}

// failedField names the group that stopped the parse.
func failedField(err error) string {
	var pe *metar.ParseError
	if errors.As(err, &pe) {
		return pe.Field
	}
	return ""
}

func readLines(cmd *cobra.Command) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("input read error: %w", err)
	}
	return lines, nil
}
