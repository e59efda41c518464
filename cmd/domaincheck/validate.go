// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/H0llyW00dzZ/domain-validator/src/domain"
	"github.com/H0llyW00dzZ/domain-validator/src/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) validateCmd() *cobra.Command {
	var (
		input  string
		checks string
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "validate [domain...]",
		Short: "Validate domain names",
		Long: `Validate runs the syntax, length, reserved and DNS checks on each domain.

Domains are taken from the arguments and from --input, a text file with
one or more names per line or an .xlsx workbook whose first column lists
the names. Use --checks to run a subset, e.g. --checks local to skip DNS.

The exit status is 1 when any domain is invalid.`,
		Example: `  domaincheck validate example.com bad_name.com
  domaincheck validate --input domains.txt --checks syntax,length --format json
  domaincheck validate --input domains.xlsx --format xlsx --output report.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := append([]string(nil), args...)
			if input != "" {
				more, err := report.ReadDomainsFile(input)
				if err != nil {
					return err
				}
				names = append(names, more...)
			}
			if len(names) == 0 {
				return errors.New("no domains given; pass them as arguments or with --input")
			}

			selected, err := domain.ParseChecks(checks)
			if err != nil {
				return err
			}
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			if f == report.FormatXLSX && output == "" {
				return errors.New("xlsx output requires --output")
			}

			outcomes, interrupted := a.validator.ValidateEach(cmd.Context(), selected, names...)
			if interrupted != nil {
				a.logger.Warn("validation interrupted", zap.Error(interrupted))
			}

			invalid := 0
			for _, out := range outcomes {
				a.recorder.ObserveOutcome(out)
				if !out.Valid {
					invalid++
				}
			}

			if err := writeReport(cmd.OutOrStdout(), output, f, report.FromOutcomes(outcomes)); err != nil {
				return err
			}

			if interrupted != nil {
				return &exitError{code: exitFailure, err: interrupted}
			}
			if invalid > 0 {
				return &exitError{
					code: exitNegative,
					err:  fmt.Errorf("%d of %d domains invalid", invalid, len(outcomes)),
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "read domains from a text or .xlsx file (- for stdin)")
	cmd.Flags().StringVarP(&checks, "checks", "c", "all", "checks to run: syntax,length,reserved,dns, local or all")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or xlsx")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report to this file instead of stdout")
	return cmd
}

// writeReport writes records to path, or to stdout when path is empty.
func writeReport(stdout io.Writer, path string, f report.Format, records []report.Record) (err error) {
	if path == "" {
		return report.Write(stdout, f, records)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return report.Write(file, f, records)
}
