package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/biostream/errs"
	"github.com/arloliu/biostream/pair"
	"github.com/arloliu/biostream/record"
	"github.com/arloliu/biostream/stats"
)

// maxReported bounds the per-record warnings logged by check.
const maxReported = 10

// checkReport is the document printed by the check command.
type checkReport struct {
	Files   []string       `json:"files" yaml:"files"`
	Valid   bool           `json:"valid" yaml:"valid"`
	Errors  int            `json:"errors" yaml:"errors"`
	R1      *stats.Summary `json:"r1" yaml:"r1"`
	R2      *stats.Summary `json:"r2,omitempty" yaml:"r2,omitempty"`
	Pairs   int            `json:"pairs,omitempty" yaml:"pairs,omitempty"`
	Flagged int            `json:"flagged_pairs,omitempty" yaml:"flagged_pairs,omitempty"`
}

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check FILE [MATE_FILE]",
		Short: "Validate a FASTA/FASTQ file or a pair of FASTQ files",
		Long: `Parse every record and print summary statistics.

With two files, the records are read in lockstep as mates: the streams must
have the same number of records, and mates whose identifiers do not end in
1 and 2 or differ before the last character are reported.

The command exits non-zero if any record is malformed.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.check(args)
			if perr := printReport(cmd.OutOrStdout(), a.cfg.Check.Output, report); perr != nil {
				return perr
			}

			return err
		},
	}

	cmd.Flags().Bool("duplicates", false, "report repeated record identifiers")
	cmd.Flags().Bool("name-only", false, "compare identifiers up to the first whitespace")
	cmd.Flags().StringP("output", "o", "", "summary format: yaml or json")
	a.bind("check.duplicates", cmd.Flags().Lookup("duplicates"))
	a.bind("check.name-only", cmd.Flags().Lookup("name-only"))
	a.bind("check.output", cmd.Flags().Lookup("output"))

	return cmd
}

func (a *app) newCollector() (*stats.Collector, error) {
	var opts []stats.Option
	if a.cfg.Check.Duplicates {
		opts = append(opts, stats.WithDuplicateTracking())
	}
	if a.cfg.Check.NameOnly {
		opts = append(opts, stats.WithNameOnly())
	}

	return stats.NewCollector(opts...)
}

func (a *app) check(paths []string) (*checkReport, error) {
	report := &checkReport{Files: paths}

	c1, err := a.newCollector()
	if err != nil {
		return nil, err
	}
	r1, close1, err := a.open(paths[0])
	if err != nil {
		return nil, err
	}
	defer close1()

	var firstErr error
	fail := func(err error) {
		report.Errors++
		if report.Errors <= maxReported {
			log.Errorf("%v", err)
		}
		if firstErr == nil {
			firstErr = err
		}
	}

	if len(paths) == 1 {
		for rec, err := range r1.All() {
			if err != nil {
				fail(fmt.Errorf("%s: %w", paths[0], err))
				continue
			}
			observe(c1, paths[0], rec)
		}
		s := c1.Summary()
		report.R1 = &s
		report.Valid = report.Errors == 0

		return report, firstErr
	}

	c2, err := a.newCollector()
	if err != nil {
		return nil, err
	}
	r2, close2, err := a.open(paths[1])
	if err != nil {
		return nil, err
	}
	defer close2()

	for p, err := range pair.Zip[[]byte](r1, r2) {
		if err != nil {
			if errors.Is(err, errs.ErrDiscordantPairs) {
				err = fmt.Errorf("%s and %s: %w", paths[0], paths[1], err)
			}
			fail(err)

			continue
		}
		report.Pairs++
		if !p.OK() {
			report.Flagged++
			if report.Flagged <= maxReported {
				log.Warningf("mates %q and %q: %s", p.R1.ID, p.R2.ID, p.Flags)
			}
		}
		observe(c1, paths[0], p.R1)
		observe(c2, paths[1], p.R2)
	}

	s1, s2 := c1.Summary(), c2.Summary()
	report.R1, report.R2 = &s1, &s2
	report.Valid = report.Errors == 0

	return report, firstErr
}

// observe adds rec to c. Repeated identifiers are logged, not failed.
func observe(c *stats.Collector, path string, rec record.Record[[]byte]) {
	err := c.AddRecord(rec)
	if err == nil {
		return
	}
	if errors.Is(err, errs.ErrDuplicateID) {
		if c.Summary().Duplicates <= maxReported {
			log.Warningf("%s: %v", path, err)
		}

		return
	}
	log.Errorf("%s: %v", path, err)
}

func printReport(w io.Writer, format string, report *checkReport) error {
	if report == nil {
		return nil
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(report)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}

		return enc.Close()
	}
}
