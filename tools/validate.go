package tools

import (
	"context"
	"strings"

	"google.golang.org/api/sheets/v4"
)

// Validate checks that the service account can read the spreadsheet, returning the
// spreadsheet title and worksheet names.
func Validate(ctx context.Context, google *sheets.Service, spreadsheet string) (*sheets.Spreadsheet, error) {
	if strings.TrimSpace(spreadsheet) == "" {
		return nil, missing("spreadsheet_id")
	}

	return google.Spreadsheets.Get(spreadsheet).
		Fields("spreadsheetId,properties.title,sheets.properties(sheetId,title)").
		Context(ctx).
		Do()
}
