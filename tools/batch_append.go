package tools

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/sheets/v4"
)

const (
	LastRow  = "last_row"
	FirstRow = "first_row"
)

type BatchAppendRequest struct {
	SpreadsheetID string
	Data          []ValueRange
	Position      string
	WriteOptions
}

// BatchAppendResponse collects the per-entry API responses in request order. An entry
// is either a *sheets.AppendValuesResponse (last_row), a *sheets.UpdateValuesResponse
// (first_row) or a NoOp for a first_row entry without any rows.
type BatchAppendResponse struct {
	SpreadsheetId string `json:"spreadsheetId"`
	Responses     []any  `json:"responses"`
}

type NoOp struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// BatchAppend appends each entry to its worksheet, creating the worksheet if the
// spreadsheet does not have a sheet with that name. Entries are appended after the
// last row of the table in the range (last_row) or inserted above the first row of
// the sheet (first_row).
func BatchAppend(ctx context.Context, google *sheets.Service, rq BatchAppendRequest) (*BatchAppendResponse, error) {
	if err := validate(rq.SpreadsheetID, rq.Data); err != nil {
		return nil, err
	}

	position := strings.ToLower(strings.TrimSpace(rq.Position))
	switch position {
	case "":
		position = LastRow

	case LastRow, FirstRow:

	default:
		return nil, invalid("append_position", "Invalid append_position '%s' - expected '%s' or '%s'", rq.Position, LastRow, FirstRow)
	}

	spreadsheet, err := google.Spreadsheets.Get(rq.SpreadsheetID).
		Fields("sheets.properties(sheetId,title)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}

	worksheets := map[string]int64{}
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil {
			worksheets[normalise(sheet.Properties.Title)] = sheet.Properties.SheetId
		}
	}

	response := BatchAppendResponse{
		SpreadsheetId: rq.SpreadsheetID,
		Responses:     []any{},
	}

	for _, entry := range rq.Data {
		name := SheetName(entry.Range)
		sheetId, ok := worksheets[normalise(name)]
		if !ok {
			if sheetId, err = addSheet(ctx, google, rq.SpreadsheetID, name); err != nil {
				return nil, err
			}

			worksheets[normalise(name)] = sheetId
		}

		var reply any
		if position == FirstRow {
			reply, err = prepend(ctx, google, rq, sheetId, name, entry)
		} else {
			reply, err = appendRows(ctx, google, rq, entry)
		}

		if err != nil {
			return nil, err
		}

		response.Responses = append(response.Responses, reply)
	}

	return &response, nil
}

func addSheet(ctx context.Context, google *sheets.Service, spreadsheet string, name string) (int64, error) {
	rq := sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			&sheets.Request{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{
						Title: name,
					},
				},
			},
		},
	}

	response, err := google.Spreadsheets.BatchUpdate(spreadsheet, &rq).Context(ctx).Do()
	if err != nil {
		return 0, err
	}

	if len(response.Replies) == 0 || response.Replies[0].AddSheet == nil || response.Replies[0].AddSheet.Properties == nil {
		return 0, fmt.Errorf("invalid response creating worksheet '%s'", name)
	}

	return response.Replies[0].AddSheet.Properties.SheetId, nil
}

func appendRows(ctx context.Context, google *sheets.Service, rq BatchAppendRequest, entry ValueRange) (*sheets.AppendValuesResponse, error) {
	rows := sheets.ValueRange{
		Values: entry.Values,
	}

	call := google.Spreadsheets.Values.Append(rq.SpreadsheetID, entry.Range, &rows).
		ValueInputOption(rq.valueInputOption()).
		InsertDataOption("INSERT_ROWS").
		IncludeValuesInResponse(rq.IncludeValuesInResponse)

	if rq.ResponseValueRenderOption != "" {
		call.ResponseValueRenderOption(rq.ResponseValueRenderOption)
	}

	if rq.ResponseDateTimeRenderOption != "" {
		call.ResponseDateTimeRenderOption(rq.ResponseDateTimeRenderOption)
	}

	return call.Context(ctx).Do()
}

// prepend inserts blank rows at the top of the worksheet and then writes the entry
// values into them starting at A1.
func prepend(ctx context.Context, google *sheets.Service, rq BatchAppendRequest, sheetId int64, name string, entry ValueRange) (any, error) {
	if len(entry.Values) == 0 {
		return NoOp{Status: "no_op", Message: "Empty values list"}, nil
	}

	insert := sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			&sheets.Request{
				InsertDimension: &sheets.InsertDimensionRequest{
					Range: &sheets.DimensionRange{
						SheetId:         sheetId,
						Dimension:       "ROWS",
						StartIndex:      0,
						EndIndex:        int64(len(entry.Values)),
						ForceSendFields: []string{"SheetId", "StartIndex"},
					},
					InheritFromBefore: false,
					ForceSendFields:   []string{"InheritFromBefore"},
				},
			},
		},
	}

	if _, err := google.Spreadsheets.BatchUpdate(rq.SpreadsheetID, &insert).Context(ctx).Do(); err != nil {
		return nil, err
	}

	rows := sheets.ValueRange{
		Values: entry.Values,
	}

	call := google.Spreadsheets.Values.Update(rq.SpreadsheetID, quote(name)+"!A1", &rows).
		ValueInputOption(rq.valueInputOption()).
		IncludeValuesInResponse(rq.IncludeValuesInResponse)

	if rq.ResponseValueRenderOption != "" {
		call.ResponseValueRenderOption(rq.ResponseValueRenderOption)
	}

	if rq.ResponseDateTimeRenderOption != "" {
		call.ResponseDateTimeRenderOption(rq.ResponseDateTimeRenderOption)
	}

	return call.Context(ctx).Do()
}

func normalise(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
