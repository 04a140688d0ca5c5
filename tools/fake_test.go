package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type request struct {
	method string
	path   string
	query  url.Values
	body   []byte
}

// fake is a minimal stand-in for the Google Sheets values/spreadsheets endpoints.
type fake struct {
	sync.Mutex
	worksheets []*sheets.SheetProperties
	values     map[string][][]any
	status     int
	requests   []request
}

func newFake(titles ...string) *fake {
	f := fake{
		values: map[string][][]any{},
	}

	for i, title := range titles {
		f.worksheets = append(f.worksheets, &sheets.SheetProperties{
			SheetId: int64(i),
			Title:   title,
		})
	}

	return &f
}

func (f *fake) service(t *testing.T) *sheets.Service {
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	google, err := sheets.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("Error creating test Sheets client (%v)", err)
	}

	return google
}

func (f *fake) calls(method string, suffix string) []request {
	f.Lock()
	defer f.Unlock()

	list := []request{}
	for _, rq := range f.requests {
		if rq.method == method && strings.HasSuffix(rq.path, suffix) {
			list = append(list, rq)
		}
	}

	return list
}

func (f *fake) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.Lock()
	defer f.Unlock()

	body, _ := io.ReadAll(r.Body)
	f.requests = append(f.requests, request{
		method: r.Method,
		path:   r.URL.Path,
		query:  r.URL.Query(),
		body:   body,
	})

	if f.status != 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		fmt.Fprintf(w, `{"error":{"code":%d,"message":"%s","status":"ERROR"}}`, f.status, http.StatusText(f.status))
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/v4/spreadsheets/")
	id := path
	if ix := strings.IndexAny(path, "/:"); ix >= 0 {
		id = path[:ix]
	}

	switch {
	case r.Method == http.MethodGet && path == id:
		spreadsheet := sheets.Spreadsheet{SpreadsheetId: id}
		for _, p := range f.worksheets {
			spreadsheet.Sheets = append(spreadsheet.Sheets, &sheets.Sheet{Properties: p})
		}
		reply(w, spreadsheet)

	case r.Method == http.MethodPost && path == id+":batchUpdate":
		var rq sheets.BatchUpdateSpreadsheetRequest
		json.Unmarshal(body, &rq)

		response := sheets.BatchUpdateSpreadsheetResponse{SpreadsheetId: id}
		for _, q := range rq.Requests {
			switch {
			case q.AddSheet != nil:
				p := sheets.SheetProperties{
					SheetId: int64(1000 + len(f.worksheets)),
					Title:   q.AddSheet.Properties.Title,
				}
				f.worksheets = append(f.worksheets, &p)
				response.Replies = append(response.Replies, &sheets.Response{
					AddSheet: &sheets.AddSheetResponse{Properties: &p},
				})

			default:
				response.Replies = append(response.Replies, &sheets.Response{})
			}
		}
		reply(w, response)

	case r.Method == http.MethodGet && path == id+"/values:batchGet":
		response := sheets.BatchGetValuesResponse{SpreadsheetId: id}
		for _, area := range r.URL.Query()["ranges"] {
			response.ValueRanges = append(response.ValueRanges, &sheets.ValueRange{
				Range:          area,
				MajorDimension: "ROWS",
				Values:         f.values[area],
			})
		}
		reply(w, response)

	case r.Method == http.MethodPost && path == id+"/values:batchUpdate":
		var rq sheets.BatchUpdateValuesRequest
		json.Unmarshal(body, &rq)

		response := sheets.BatchUpdateValuesResponse{SpreadsheetId: id}
		for _, v := range rq.Data {
			response.TotalUpdatedRows += int64(len(v.Values))
			response.Responses = append(response.Responses, &sheets.UpdateValuesResponse{
				SpreadsheetId: id,
				UpdatedRange:  v.Range,
				UpdatedRows:   int64(len(v.Values)),
			})
		}
		response.TotalUpdatedSheets = int64(len(rq.Data))
		reply(w, response)

	case r.Method == http.MethodPost && strings.HasSuffix(path, ":append"):
		var rq sheets.ValueRange
		json.Unmarshal(body, &rq)

		area := strings.TrimSuffix(strings.TrimPrefix(path, id+"/values/"), ":append")
		reply(w, sheets.AppendValuesResponse{
			SpreadsheetId: id,
			TableRange:    area,
			Updates: &sheets.UpdateValuesResponse{
				SpreadsheetId: id,
				UpdatedRange:  area,
				UpdatedRows:   int64(len(rq.Values)),
			},
		})

	case r.Method == http.MethodPut && strings.HasPrefix(path, id+"/values/"):
		var rq sheets.ValueRange
		json.Unmarshal(body, &rq)

		area := strings.TrimPrefix(path, id+"/values/")
		reply(w, sheets.UpdateValuesResponse{
			SpreadsheetId: id,
			UpdatedRange:  area,
			UpdatedRows:   int64(len(rq.Values)),
		})

	default:
		http.NotFound(w, r)
	}
}

func reply(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
