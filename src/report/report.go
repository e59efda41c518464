// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package report renders validation outcomes and reads domain lists.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/H0llyW00dzZ/domain-validator/src/domain"
)

// Format is an output format.
type Format string

// Supported output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// ErrUnknownFormat is returned for unsupported output formats.
var ErrUnknownFormat = errors.New("report: unknown format")

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatXLSX:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Record is the flat, serializable form of a domain.Outcome.
type Record struct {
	Input  string `json:"input"`
	Domain string `json:"domain"`
	Valid  bool   `json:"valid"`
	Checks string `json:"checks"`
	Failed string `json:"failed,omitempty"`
	Reason string `json:"reason,omitempty"`
	Error  string `json:"error,omitempty"`
}

// FromOutcome converts out to a [Record].
func FromOutcome(out domain.Outcome) Record {
	rec := Record{
		Input:  out.Name.Raw(),
		Domain: out.Name.String(),
		Valid:  out.Valid,
		Checks: out.Ran.String(),
	}
	if failed := out.Failed(); failed != 0 {
		rec.Failed = failed.String()
	}
	if err := out.Err(); err != nil {
		rec.Error = errorText(out)
		var derr *domain.Error
		if errors.As(err, &derr) {
			rec.Reason = string(derr.Reason)
		}
	}
	return rec
}

// FromOutcomes converts every outcome to a [Record].
func FromOutcomes(outcomes []domain.Outcome) []Record {
	records := make([]Record, len(outcomes))
	for i, out := range outcomes {
		records[i] = FromOutcome(out)
	}
	return records
}

// errorText returns the first failure of out without the multierror
// decoration.
func errorText(out domain.Outcome) string {
	for _, err := range []error{out.Syntax, out.Length, out.Reserved, out.DNS, out.Interrupted} {
		if err != nil {
			return err.Error()
		}
	}
	return ""
}

// Write renders records to w in format.
func Write(w io.Writer, format Format, records []Record) error {
	switch format {
	case FormatText, "":
		return WriteText(w, records)
	case FormatJSON:
		return WriteJSON(w, records)
	case FormatXLSX:
		return WriteXLSX(w, records)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteText renders records as an aligned table.
func WriteText(w io.Writer, records []Record) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DOMAIN\tVALID\tFAILED\tREASON\tERROR")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%t\t%s\t%s\t%s\n",
			displayName(r), r.Valid, dash(r.Failed), dash(r.Reason), dash(r.Error))
	}
	return tw.Flush()
}

// WriteJSON renders records as an indented JSON array.
func WriteJSON(w io.Writer, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func displayName(r Record) string {
	if r.Domain == "" {
		return fmt.Sprintf("%q", r.Input)
	}
	return r.Domain
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
