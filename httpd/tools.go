package httpd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"

	"github.com/uhppoted/sheets-plugin/tools"
)

// Tool parameters use the workflow platform's names.
type batchGetRequest struct {
	SpreadsheetID        string          `json:"spreadsheet_id"`
	Ranges               json.RawMessage `json:"ranges"`
	MajorDimension       string          `json:"major_dimension"`
	ValueRenderOption    string          `json:"value_render_option"`
	DateTimeRenderOption string          `json:"date_time_render_option"`
}

type writeRequest struct {
	SpreadsheetID                string          `json:"spreadsheet_id"`
	Data                         json.RawMessage `json:"data"`
	ValueInputOption             string          `json:"value_input_option"`
	IncludeValuesInResponse      bool            `json:"include_values_in_response"`
	ResponseValueRenderOption    string          `json:"response_value_render_option"`
	ResponseDateTimeRenderOption string          `json:"response_date_time_render_option"`
	AppendPosition               string          `json:"append_position"`
}

func (rq writeRequest) options() tools.WriteOptions {
	return tools.WriteOptions{
		ValueInputOption:             rq.ValueInputOption,
		IncludeValuesInResponse:      rq.IncludeValuesInResponse,
		ResponseValueRenderOption:    rq.ResponseValueRenderOption,
		ResponseDateTimeRenderOption: rq.ResponseDateTimeRenderOption,
	}
}

func (s *Server) batchGet(c *gin.Context) {
	var rq batchGetRequest
	if err := c.ShouldBindJSON(&rq); err != nil {
		invalidRequest(c, err)
		return
	}

	if strings.TrimSpace(rq.SpreadsheetID) == "" {
		fail(c, tools.Missing("spreadsheet_id"))
		return
	}

	ranges, err := tools.ParseRanges(rq.Ranges)
	if err != nil {
		fail(c, err)
		return
	}

	ctx, cancel := s.deadline(c)
	defer cancel()

	google, err := s.service(ctx)
	if err != nil {
		fail(c, err)
		return
	}

	response, err := tools.BatchGet(ctx, google, tools.BatchGetRequest{
		SpreadsheetID:        rq.SpreadsheetID,
		Ranges:               ranges,
		MajorDimension:       rq.MajorDimension,
		ValueRenderOption:    rq.ValueRenderOption,
		DateTimeRenderOption: rq.DateTimeRenderOption,
	})
	if err != nil {
		fail(c, err)
		return
	}

	if s.debug {
		debugf("%v batch-get %v  %v ranges", requestID(c), rq.SpreadsheetID, len(response.ValueRanges))
	}

	c.JSON(http.StatusOK, response)
}

func (s *Server) batchUpdate(c *gin.Context) {
	var rq writeRequest
	if err := c.ShouldBindJSON(&rq); err != nil {
		invalidRequest(c, err)
		return
	}

	data, err := parse(rq)
	if err != nil {
		fail(c, err)
		return
	}

	ctx, cancel := s.deadline(c)
	defer cancel()

	google, err := s.service(ctx)
	if err != nil {
		fail(c, err)
		return
	}

	response, err := tools.BatchUpdate(ctx, google, tools.BatchUpdateRequest{
		SpreadsheetID: rq.SpreadsheetID,
		Data:          data,
		WriteOptions:  rq.options(),
	})
	if err != nil {
		fail(c, err)
		return
	}

	if s.debug {
		debugf("%v batch-update %v  %v cells", requestID(c), rq.SpreadsheetID, humanize.Comma(response.TotalUpdatedCells))
	}

	c.JSON(http.StatusOK, response)
}

func (s *Server) batchAppend(c *gin.Context) {
	var rq writeRequest
	if err := c.ShouldBindJSON(&rq); err != nil {
		invalidRequest(c, err)
		return
	}

	data, err := parse(rq)
	if err != nil {
		fail(c, err)
		return
	}

	ctx, cancel := s.deadline(c)
	defer cancel()

	google, err := s.service(ctx)
	if err != nil {
		fail(c, err)
		return
	}

	response, err := tools.BatchAppend(ctx, google, tools.BatchAppendRequest{
		SpreadsheetID: rq.SpreadsheetID,
		Data:          data,
		Position:      rq.AppendPosition,
		WriteOptions:  rq.options(),
	})
	if err != nil {
		fail(c, err)
		return
	}

	if s.debug {
		debugf("%v batch-append %v  %v responses", requestID(c), rq.SpreadsheetID, len(response.Responses))
	}

	c.JSON(http.StatusOK, response)
}

func invalidRequest(c *gin.Context, err error) {
	warnf("%v %v %v  %v", requestID(c), c.Request.Method, c.Request.URL.Path, err)
	sendError(c, http.StatusBadRequest, fmt.Sprintf("invalid request (%v)", err))
}

// parse checks the spreadsheet ID before decoding the data parameter so that the
// errors are reported in parameter order.
func parse(rq writeRequest) ([]tools.ValueRange, error) {
	if strings.TrimSpace(rq.SpreadsheetID) == "" {
		return nil, tools.Missing("spreadsheet_id")
	}

	return tools.ParseData(rq.Data)
}
