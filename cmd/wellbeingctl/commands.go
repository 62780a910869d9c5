package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"wellbeing/internal/app"
	"wellbeing/internal/config"
	"wellbeing/internal/logging"
	"wellbeing/internal/model"
	"wellbeing/internal/report"
	"wellbeing/internal/scoring"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	catalogPath string
	asJSON      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "wellbeingctl",
		Short:         "Score well-being questionnaires and generate reports",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "question catalog YAML file (default: embedded catalog)")
	root.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "print JSON instead of a table")

	root.AddCommand(newCatalogCmd(opts), newScoreCmd(opts), newReportCmd(opts))
	return root
}

func newCatalogCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the questions grouped by dimension",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := app.LoadCatalog(opts.catalogPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.asJSON {
				return writeJSON(out, cat.Questions())
			}
			fmt.Fprintf(out, "catalog %s: %d questions\n", cat.Version(), cat.Len())
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, dim := range cat.Dimensions() {
				fmt.Fprintf(tw, "\n%s\n", dim)
				for _, q := range cat.ByDimension(dim) {
					inv := ""
					if q.Inverted {
						inv = "inverted"
					}
					fmt.Fprintf(tw, "  %s\t%s\t%s\n", q.ID, q.Text, inv)
				}
			}
			return tw.Flush()
		},
	}
}

func newScoreCmd(opts *rootOptions) *cobra.Command {
	var answersPath string
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score an answer file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scores, err := scoreFile(cmd, opts, answersPath)
			if err != nil {
				return err
			}
			decorated := scoring.Decorate(scores)
			out := cmd.OutOrStdout()
			if opts.asJSON {
				return writeJSON(out, decorated)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DIMENSION\tSCORE\tBAND\tITEMS")
			for _, s := range decorated {
				fmt.Fprintf(tw, "%s\t%.1f\t%s\t%d\n", s.Dimension, s.Rounded, s.Band, s.ItemCount)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&answersPath, "answers", "-", `JSON answer file, "-" for stdin`)
	return cmd
}

func newReportCmd(opts *rootOptions) *cobra.Command {
	var answersPath, locale string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Score an answer file and generate its narrative report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logging.NewStderr(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer log.Sync()

			scores, err := scoreFile(cmd, opts, answersPath)
			if err != nil {
				return err
			}
			req, err := report.BuildReportRequest(scores, model.Locale(locale))
			if err != nil {
				return err
			}

			gen := report.NewOrchestrator(cfg.AI, nil, report.WithLogger(log.Named("report")))
			resp, err := gen.Generate(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("%s: %w", report.KindOf(err), err)
			}
			return writeJSON(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVar(&answersPath, "answers", "-", `JSON answer file, "-" for stdin`)
	cmd.Flags().StringVar(&locale, "locale", "fr", "report language (fr, en)")
	return cmd
}

func scoreFile(cmd *cobra.Command, opts *rootOptions, path string) ([]model.DimensionScore, error) {
	cat, err := app.LoadCatalog(opts.catalogPath)
	if err != nil {
		return nil, err
	}
	answers, err := readAnswers(cmd.InOrStdin(), path)
	if err != nil {
		return nil, err
	}
	return scoring.Aggregate(cat.Questions(), answers)
}

// readAnswers accepts either a bare answer array or an object with an "answers" field
func readAnswers(stdin io.Reader, path string) ([]model.Answer, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading answers: %w", err)
	}

	var answers []model.Answer
	if err := json.Unmarshal(data, &answers); err == nil {
		return answers, nil
	}
	var wrapped struct {
		Answers []model.Answer `json:"answers"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("decoding answers: %w", err)
	}
	return wrapped.Answers, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
