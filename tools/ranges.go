package tools

import (
	"fmt"
	"strings"
)

// SheetName returns the worksheet name for an A1 notation range, i.e. the part
// before the '!' or the whole range if it has no cell reference. Quoted names are
// unquoted and embedded '' is unescaped.
func SheetName(area string) string {
	area = strings.TrimSpace(area)

	if strings.HasPrefix(area, "'") {
		for i := 1; i < len(area); i++ {
			if area[i] != '\'' {
				continue
			}

			if i+1 < len(area) && area[i+1] == '\'' {
				i++
				continue
			}

			return strings.ReplaceAll(area[1:i], "''", "'")
		}
	}

	if ix := strings.Index(area, "!"); ix >= 0 {
		return area[:ix]
	}

	return area
}

// splitRanges splits a comma separated list of ranges, ignoring commas inside quoted
// sheet names. An escaped '' toggles the quote state twice and so leaves it as is.
func splitRanges(s string) []string {
	list := []string{}
	quoted := false
	start := 0

	for i, ch := range s {
		switch {
		case ch == '\'':
			quoted = !quoted

		case ch == ',' && !quoted:
			list = append(list, s[start:i])
			start = i + 1
		}
	}

	return append(list, s[start:])
}

// quote returns the sheet name in the quoted form used in A1 notation.
func quote(sheet string) string {
	return fmt.Sprintf("'%s'", strings.ReplaceAll(sheet, "'", "''"))
}
