// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadDomains reads a domain list from a text stream: one or more names
// per line separated by whitespace or commas. Blank lines and lines
// starting with '#' are skipped.
func ReadDomains(r io.Reader) ([]string, error) {
	var names []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	return names, nil
}

// ReadDomainsXLSX reads the first column of the first worksheet of an
// Excel workbook. A first row reading "domain" or "input" is treated as
// a header; empty cells are skipped.
func ReadDomainsXLSX(r io.Reader) ([]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}

	var names []string
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell := strings.TrimSpace(row[0])
		if cell == "" {
			continue
		}
		if i == 0 {
			switch strings.ToLower(cell) {
			case "domain", "input":
				continue
			}
		}
		names = append(names, cell)
	}
	return names, nil
}

// ReadDomainsFile reads a domain list from path, choosing the parser by
// extension: .xlsx files are read as workbooks, anything else as text.
// The path "-" reads text from stdin.
func ReadDomainsFile(path string) ([]string, error) {
	if path == "-" {
		return ReadDomains(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ReadDomainsXLSX(f)
	}
	return ReadDomains(f)
}
