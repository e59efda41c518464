// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package report

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/H0llyW00dzZ/domain-validator/src/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleRecords(t *testing.T) []Record {
	t.Helper()
	v := domain.New(nil)
	ctx := context.Background()
	return FromOutcomes([]domain.Outcome{
		v.Validate(ctx, "Example.COM", domain.CheckLocal),
		v.Validate(ctx, "bad_name.com", domain.CheckLocal),
		v.Validate(ctx, "foo.invalid", domain.CheckLocal),
	})
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "TEXT": FormatText, "json": FormatJSON, " xlsx ": FormatXLSX} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("csv")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFromOutcome(t *testing.T) {
	records := sampleRecords(t)
	require.Len(t, records, 3)

	assert.Equal(t, Record{
		Input:  "Example.COM",
		Domain: "example.com",
		Valid:  true,
		Checks: "syntax,length,reserved",
	}, records[0])

	assert.False(t, records[1].Valid)
	assert.Equal(t, "syntax", records[1].Failed)
	assert.Equal(t, string(domain.ReasonInvalidChar), records[1].Reason)
	assert.Contains(t, records[1].Error, "invalid syntax")

	assert.Equal(t, "reserved", records[2].Failed)
	assert.Equal(t, string(domain.ReasonSuffixMatch), records[2].Reason)

	interrupted := FromOutcome(domain.Outcome{Name: domain.ParseName("x.com"), Interrupted: context.Canceled})
	assert.False(t, interrupted.Valid)
	assert.Empty(t, interrupted.Reason)
	assert.Equal(t, "context canceled", interrupted.Error)
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatText, sampleRecords(t)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Regexp(t, `^DOMAIN\s+VALID\s+FAILED\s+REASON\s+ERROR$`, lines[0])
	assert.Regexp(t, `^example\.com\s+true\s+-\s+-\s+-$`, lines[1])
	assert.Regexp(t, `^bad_name\.com\s+false\s+syntax\s+invalid-char\s+domain: invalid syntax`, lines[2])

	buf.Reset()
	require.NoError(t, WriteText(&buf, []Record{{Input: " "}}))
	assert.Contains(t, buf.String(), `" "`)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, sampleRecords(t)))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "example.com", got[0]["domain"])
	assert.Equal(t, true, got[0]["valid"])
	assert.NotContains(t, got[0], "error")
	assert.Equal(t, "reserved", got[2]["failed"])

	buf.Reset()
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteUnknownFormat(t *testing.T) {
	assert.ErrorIs(t, Write(&bytes.Buffer{}, Format("csv"), nil), ErrUnknownFormat)
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatXLSX, sampleRecords(t)))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Input", "Domain", "Valid", "Checks", "Failed", "Reason", "Error"}, rows[0])
	assert.Equal(t, "Example.COM", rows[1][0])
	assert.Equal(t, "example.com", rows[1][1])
	assert.Equal(t, "bad_name.com", rows[2][1])
	assert.Equal(t, "syntax", rows[2][4])

	// The report can be fed back as input.
	names, err := ReadDomainsXLSX(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, []string{"Example.COM", "bad_name.com", "foo.invalid"}, names)
}

func TestReadDomains(t *testing.T) {
	input := `
# customer domains
example.com
  python.org, golang.org
bad_name.com	foo.invalid

`
	names, err := ReadDomains(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"example.com", "python.org", "golang.org", "bad_name.com", "foo.invalid"}, names)

	names, err = ReadDomains(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestReadDomainsXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "domain"))
	require.NoError(t, f.SetCellValue(sheet, "A2", "example.com"))
	require.NoError(t, f.SetCellValue(sheet, "A4", " python.org "))
	require.NoError(t, f.SetCellValue(sheet, "B2", "ignored"))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	names, err := ReadDomainsXLSX(&buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"example.com", "python.org"}, names)

	_, err = ReadDomainsXLSX(strings.NewReader("not a workbook"))
	assert.Error(t, err)
}

func TestReadDomainsFile(t *testing.T) {
	dir := t.TempDir()

	txt := filepath.Join(dir, "domains.txt")
	require.NoError(t, os.WriteFile(txt, []byte("example.com\npython.org\n"), 0o600))
	names, err := ReadDomainsFile(txt)
	require.NoError(t, err)
	assert.Equal(t, []string{"example.com", "python.org"}, names)

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleRecords(t)))
	xlsx := filepath.Join(dir, "domains.XLSX")
	require.NoError(t, os.WriteFile(xlsx, buf.Bytes(), 0o600))
	names, err = ReadDomainsFile(xlsx)
	require.NoError(t, err)
	assert.Len(t, names, 3)

	_, err = ReadDomainsFile(filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
