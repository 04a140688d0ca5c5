package tools

import (
	"context"
	"strings"

	"google.golang.org/api/sheets/v4"
)

type BatchGetRequest struct {
	SpreadsheetID        string
	Ranges               []string
	MajorDimension       string
	ValueRenderOption    string
	DateTimeRenderOption string
}

// BatchGet retrieves the values for a list of ranges with a single values.batchGet
// call and returns the API response unchanged.
func BatchGet(ctx context.Context, google *sheets.Service, rq BatchGetRequest) (*sheets.BatchGetValuesResponse, error) {
	if strings.TrimSpace(rq.SpreadsheetID) == "" {
		return nil, missing("spreadsheet_id")
	}

	ranges := []string{}
	for _, r := range rq.Ranges {
		if v := strings.TrimSpace(r); v != "" {
			ranges = append(ranges, v)
		}
	}

	if len(ranges) == 0 {
		return nil, missing("ranges")
	}

	call := google.Spreadsheets.Values.BatchGet(rq.SpreadsheetID).Ranges(ranges...)

	if rq.MajorDimension != "" {
		call.MajorDimension(rq.MajorDimension)
	}

	if rq.ValueRenderOption != "" {
		call.ValueRenderOption(rq.ValueRenderOption)
	}

	if rq.DateTimeRenderOption != "" {
		call.DateTimeRenderOption(rq.DateTimeRenderOption)
	}

	return call.Context(ctx).Do()
}
