package tools

import (
	"context"

	"google.golang.org/api/sheets/v4"
)

type BatchUpdateRequest struct {
	SpreadsheetID string
	Data          []ValueRange
	WriteOptions
}

// BatchUpdate writes all the entries in a single values.batchUpdate call and returns
// the API update summary unchanged.
func BatchUpdate(ctx context.Context, google *sheets.Service, rq BatchUpdateRequest) (*sheets.BatchUpdateValuesResponse, error) {
	if err := validate(rq.SpreadsheetID, rq.Data); err != nil {
		return nil, err
	}

	body := sheets.BatchUpdateValuesRequest{
		ValueInputOption:             rq.valueInputOption(),
		IncludeValuesInResponse:      rq.IncludeValuesInResponse,
		ResponseValueRenderOption:    rq.ResponseValueRenderOption,
		ResponseDateTimeRenderOption: rq.ResponseDateTimeRenderOption,
		Data:                         []*sheets.ValueRange{},
	}

	for _, entry := range rq.Data {
		body.Data = append(body.Data, &sheets.ValueRange{
			Range:  entry.Range,
			Values: entry.Values,
		})
	}

	return google.Spreadsheets.Values.BatchUpdate(rq.SpreadsheetID, &body).Context(ctx).Do()
}
