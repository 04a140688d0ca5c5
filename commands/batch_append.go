package commands

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"google.golang.org/api/sheets/v4"

	"github.com/uhppoted/sheets-plugin/tools"
)

var BatchAppendCmd = BatchAppend{
	command: command{
		credentials: DEFAULT_CREDENTIALS,
		spreadsheet: "",
		debug:       false,
	},

	writeOptions: writeOptions{
		valueInputOption: tools.USER_ENTERED,
	},

	position: tools.LastRow,
}

type BatchAppend struct {
	command
	writeData
	writeOptions
	position string
}

func (cmd *BatchAppend) Name() string {
	return "batch-append"
}

func (cmd *BatchAppend) Description() string {
	return "Appends rows to one or more worksheets of a Google Sheets spreadsheet"
}

func (cmd *BatchAppend) Usage() string {
	return "--credentials <file> --spreadsheet <ID|URL> --data <JSON> | --file <file> [--range <range>] [--position last_row|first_row]"
}

func (cmd *BatchAppend) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] batch-append [options] --spreadsheet <ID|URL> --data <JSON> | --file <file> [--range <range>]\n", APP)
	fmt.Println()
	fmt.Println("  Appends each value range to the worksheet named in the range, creating the worksheet if it")
	fmt.Println("  does not exist. Rows are added after the last row of the table (last_row) or inserted at the")
	fmt.Println("  top of the worksheet (first_row).")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    sheets-plugin batch-append --credentials "credentials.json" \`)
	fmt.Println(`                               --spreadsheet "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`)
	fmt.Println(`                               --position first_row \`)
	fmt.Println(`                               --data '[{"range":"Log!A1:H","values":[["2025-01-01 12:34:56","405419896"]]}]'`)
	fmt.Println()
}

func (cmd *BatchAppend) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("batch-append")

	cmd.writeData.flags(flagset)
	cmd.writeOptions.flags(flagset)
	flagset.StringVar(&cmd.position, "position", cmd.position, "Where the rows are added (last_row or first_row)")

	return flagset
}

func (cmd *BatchAppend) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	if err := cmd.validate(); err != nil {
		return err
	}

	data, err := cmd.load()
	if err != nil {
		return err
	}

	ctx := context.Background()
	google, spreadsheet, err := cmd.service(ctx)
	if err != nil {
		return err
	}

	rq := tools.BatchAppendRequest{
		SpreadsheetID: spreadsheet,
		Data:          data,
		Position:      cmd.position,
		WriteOptions:  cmd.options(),
	}

	response, err := tools.BatchAppend(ctx, google, rq)
	if err != nil {
		return fmt.Errorf("unable to append to spreadsheet (%v)", tools.Describe(err))
	}

	rows := int64(0)
	for _, r := range response.Responses {
		switch v := r.(type) {
		case *sheets.AppendValuesResponse:
			if v.Updates != nil {
				rows += v.Updates.UpdatedRows
			}

		case *sheets.UpdateValuesResponse:
			rows += v.UpdatedRows
		}
	}

	infof("Appended %v rows to %v ranges", humanize.Comma(rows), len(data))

	return printJSON(os.Stdout, response)
}
