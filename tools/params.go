package tools

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ParameterError reports a tool invocation with missing or malformed parameters. It
// is returned before any call is made to the Google Sheets API.
type ParameterError struct {
	Parameter string
	Message   string
}

func (e *ParameterError) Error() string {
	return e.Message
}

// ValueRange is a single 'data' entry: an A1 notation range and the rows to write to it.
type ValueRange struct {
	Range  string  `json:"range"`
	Values [][]any `json:"values"`
}

// WriteOptions are the request options shared by batch update and batch append.
type WriteOptions struct {
	ValueInputOption             string
	IncludeValuesInResponse      bool
	ResponseValueRenderOption    string
	ResponseDateTimeRenderOption string
}

const USER_ENTERED = "USER_ENTERED"

func (o WriteOptions) valueInputOption() string {
	if v := strings.TrimSpace(o.ValueInputOption); v != "" {
		return v
	}

	return USER_ENTERED
}

// Missing returns the ParameterError for a required parameter that was not supplied.
func Missing(parameter string) error {
	return missing(parameter)
}

func missing(parameter string) error {
	return &ParameterError{
		Parameter: parameter,
		Message:   fmt.Sprintf("Missing required parameter: %s", parameter),
	}
}

func invalid(parameter string, format string, args ...any) error {
	return &ParameterError{
		Parameter: parameter,
		Message:   fmt.Sprintf(format, args...),
	}
}

// ParseData decodes the 'data' parameter. The parameter is either a JSON array of
// {range, values} objects or a JSON string containing that array.
func ParseData(raw []byte) ([]ValueRange, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil, missing("data")
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, invalid("data", "Invalid JSON format for data. Please provide a valid JSON array.")
		} else if strings.TrimSpace(s) == "" {
			return nil, missing("data")
		}

		raw = []byte(s)
	}

	var v any

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&v); err != nil {
		return nil, invalid("data", "Invalid JSON format for data. Please provide a valid JSON array.")
	} else if decoder.More() {
		return nil, invalid("data", "Invalid JSON format for data. Please provide a valid JSON array.")
	}

	items, ok := v.([]any)
	if !ok {
		return nil, invalid("data", "Data must be a list of objects, each with 'range' and 'values' keys")
	} else if len(items) == 0 {
		return nil, missing("data")
	}

	data := make([]ValueRange, 0, len(items))
	for i, item := range items {
		object, ok := item.(map[string]any)
		if !ok {
			return nil, invalid("data", "Each data item must contain 'range' and 'values' keys")
		}

		r, hasRange := object["range"]
		values, hasValues := object["values"]
		if !hasRange || !hasValues {
			return nil, invalid("data", "Each data item must contain 'range' and 'values' keys")
		}

		area, ok := r.(string)
		if !ok || strings.TrimSpace(area) == "" {
			return nil, invalid("data", "Data item %d: 'range' must be an A1 notation string", i+1)
		}

		rows, err := toRows(values)
		if err != nil {
			return nil, invalid("data", "Data item %d: %v", i+1, err)
		}

		data = append(data, ValueRange{
			Range:  area,
			Values: rows,
		})
	}

	return data, nil
}

func toRows(v any) ([][]any, error) {
	if v == nil {
		return [][]any{}, nil
	}

	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("'values' must be a list of rows")
	}

	rows := make([][]any, 0, len(list))
	for _, r := range list {
		row, ok := r.([]any)
		if !ok {
			return nil, fmt.Errorf("'values' must be a list of rows")
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// ParseRanges decodes the 'ranges' parameter. The parameter is either a JSON array of
// A1 notation strings, a JSON string containing that array, or a single string with
// comma separated ranges.
func ParseRanges(raw []byte) ([]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil, missing("ranges")
	}

	var list []string

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, invalid("ranges", "Invalid JSON format for ranges")
		}

		s = strings.TrimSpace(s)
		if strings.HasPrefix(s, "[") {
			if err := json.Unmarshal([]byte(s), &list); err != nil {
				return nil, invalid("ranges", "Invalid JSON format for ranges. Please provide a valid JSON array of strings.")
			}
		} else {
			list = splitRanges(s)
		}

	case '[':
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, invalid("ranges", "Ranges must be a list of A1 notation strings")
		}

	default:
		return nil, invalid("ranges", "Ranges must be a list of A1 notation strings")
	}

	ranges := []string{}
	for _, r := range list {
		if v := strings.TrimSpace(r); v != "" {
			ranges = append(ranges, v)
		}
	}

	if len(ranges) == 0 {
		return nil, missing("ranges")
	}

	return ranges, nil
}

func validate(spreadsheet string, data []ValueRange) error {
	if strings.TrimSpace(spreadsheet) == "" {
		return missing("spreadsheet_id")
	}

	if len(data) == 0 {
		return missing("data")
	}

	for _, entry := range data {
		if strings.TrimSpace(entry.Range) == "" {
			return invalid("data", "Each data item must contain 'range' and 'values' keys")
		}
	}

	return nil
}
