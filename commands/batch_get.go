package commands

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"google.golang.org/api/sheets/v4"

	"github.com/uhppoted/sheets-plugin/tools"
)

var BatchGetCmd = BatchGet{
	command: command{
		credentials: DEFAULT_CREDENTIALS,
		spreadsheet: "",
		debug:       false,
	},

	ranges: ranges{},
	file:   "",
}

type BatchGet struct {
	command
	ranges               ranges
	majorDimension       string
	valueRenderOption    string
	dateTimeRenderOption string
	file                 string
}

func (cmd *BatchGet) Name() string {
	return "batch-get"
}

func (cmd *BatchGet) Description() string {
	return "Retrieves the values for one or more ranges of a Google Sheets spreadsheet"
}

func (cmd *BatchGet) Usage() string {
	return "--credentials <file> --spreadsheet <ID|URL> --range <range> [--range <range>...] [--file <file>]"
}

func (cmd *BatchGet) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] batch-get [options] --spreadsheet <ID|URL> --range <range> [--range <range>...]\n", APP)
	fmt.Println()
	fmt.Println("  Retrieves the values for a list of ranges and prints the Google Sheets response as JSON")
	fmt.Println("  or stores it to a JSON, TSV or XLSX file. A TSV file can only hold a single range.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    sheets-plugin --debug batch-get --credentials "credentials.json" \`)
	fmt.Println(`                                    --spreadsheet "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`)
	fmt.Println(`                                    --range "Class Data!A1:E" --range "'Log'!A:H" \`)
	fmt.Println(`                                    --file "class-data.xlsx"`)
	fmt.Println()
}

func (cmd *BatchGet) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("batch-get")

	flagset.Var(&cmd.ranges, "range", "Spreadsheet range e.g. 'Class Data!A2:E' (may be repeated)")
	flagset.StringVar(&cmd.majorDimension, "major-dimension", cmd.majorDimension, "Major dimension of the returned values (ROWS or COLUMNS)")
	flagset.StringVar(&cmd.valueRenderOption, "value-render", cmd.valueRenderOption, "How values are rendered (FORMATTED_VALUE, UNFORMATTED_VALUE or FORMULA)")
	flagset.StringVar(&cmd.dateTimeRenderOption, "date-time-render", cmd.dateTimeRenderOption, "How dates and times are rendered (SERIAL_NUMBER or FORMATTED_STRING)")
	flagset.StringVar(&cmd.file, "file", cmd.file, "Output file (.json, .tsv or .xlsx). Defaults to stdout")

	return flagset
}

func (cmd *BatchGet) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	// ... check parameters
	if err := cmd.validate(); err != nil {
		return err
	}

	if len(cmd.ranges) == 0 {
		return fmt.Errorf("--range is a required option")
	}

	if cmd.file != "" {
		switch strings.ToLower(filepath.Ext(cmd.file)) {
		case ".json", ".xlsx":
		case ".tsv":
			if len(cmd.ranges) != 1 {
				return fmt.Errorf("a TSV file can only hold a single range")
			}

		default:
			return fmt.Errorf("unsupported output file type '%s' - expected .json, .tsv or .xlsx", filepath.Ext(cmd.file))
		}
	}

	ctx := context.Background()
	google, spreadsheet, err := cmd.service(ctx)
	if err != nil {
		return err
	}

	rq := tools.BatchGetRequest{
		SpreadsheetID:        spreadsheet,
		Ranges:               cmd.ranges,
		MajorDimension:       cmd.majorDimension,
		ValueRenderOption:    cmd.valueRenderOption,
		DateTimeRenderOption: cmd.dateTimeRenderOption,
	}

	response, err := tools.BatchGet(ctx, google, rq)
	if err != nil {
		return fmt.Errorf("unable to retrieve data from spreadsheet (%v)", tools.Describe(err))
	}

	if cmd.debug {
		for _, vr := range response.ValueRanges {
			debugf("%v  %v rows", vr.Range, humanize.Comma(int64(len(vr.Values))))
		}
	}

	if cmd.file == "" {
		return printJSON(os.Stdout, response)
	}

	if err := cmd.write(response); err != nil {
		return err
	}

	infof("Retrieved %v ranges to file %s", len(response.ValueRanges), cmd.file)

	return nil
}

// write stores the response to a temporary file and then renames it to the output file.
func (cmd *BatchGet) write(response *sheets.BatchGetValuesResponse) error {
	var b bytes.Buffer

	switch strings.ToLower(filepath.Ext(cmd.file)) {
	case ".tsv":
		if len(response.ValueRanges) != 1 {
			return fmt.Errorf("expected 1 range, got %v", len(response.ValueRanges))
		}

		if err := valuesToTSV(&b, response.ValueRanges[0]); err != nil {
			return fmt.Errorf("error creating TSV file (%v)", err)
		}

	case ".xlsx":
		if err := valuesToXLSX(&b, response.ValueRanges); err != nil {
			return fmt.Errorf("error creating XLSX file (%v)", err)
		}

	default:
		if err := printJSON(&b, response); err != nil {
			return err
		}
	}

	dir := filepath.Dir(cmd.file)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "sheets-plugin")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(b.Bytes()); err != nil {
		return err
	}

	tmp.Close()

	return os.Rename(tmp.Name(), cmd.file)
}
