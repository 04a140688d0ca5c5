package commands

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"google.golang.org/api/sheets/v4"

	"github.com/uhppoted/sheets-plugin/tools"
)

// valuesToXLSX writes each value range to its own worksheet, named after the sheet
// in the range.
func valuesToXLSX(w io.Writer, ranges []*sheets.ValueRange) error {
	f := excelize.NewFile()
	defer f.Close()

	names := map[string]bool{}
	for i, vr := range ranges {
		name := worksheet(tools.SheetName(vr.Range), names)

		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return err
		}

		for r, row := range vr.Values {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return err
			}

			values := append([]any{}, row...)
			if err := f.SetSheetRow(name, cell, &values); err != nil {
				return err
			}
		}
	}

	_, err := f.WriteTo(w)

	return err
}

// worksheet returns a valid, unique Excel worksheet name: no []:*?/\ characters and
// at most 31 characters.
func worksheet(sheet string, names map[string]bool) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, strings.Trim(sheet, "'"))

	if strings.TrimSpace(name) == "" {
		name = "Sheet"
	}

	name = truncate(name, 31)
	unique := name
	for i := 2; names[strings.ToLower(unique)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		unique = truncate(name, 31-len(suffix)) + suffix
	}

	names[strings.ToLower(unique)] = true

	return unique
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}

	return string([]rune(s)[:n])
}
