package commands

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/uhppoted/sheets-plugin/tools"
)

var BatchUpdateCmd = BatchUpdate{
	command: command{
		credentials: DEFAULT_CREDENTIALS,
		spreadsheet: "",
		debug:       false,
	},

	writeOptions: writeOptions{
		valueInputOption: tools.USER_ENTERED,
	},
}

type BatchUpdate struct {
	command
	writeData
	writeOptions
}

func (cmd *BatchUpdate) Name() string {
	return "batch-update"
}

func (cmd *BatchUpdate) Description() string {
	return "Writes values to one or more ranges of a Google Sheets spreadsheet"
}

func (cmd *BatchUpdate) Usage() string {
	return "--credentials <file> --spreadsheet <ID|URL> --data <JSON> | --file <file> [--range <range>]"
}

func (cmd *BatchUpdate) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] batch-update [options] --spreadsheet <ID|URL> --data <JSON> | --file <file> [--range <range>]\n", APP)
	fmt.Println()
	fmt.Println("  Writes a list of value ranges to a spreadsheet with a single batch update and prints the")
	fmt.Println("  Google Sheets update summary")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    sheets-plugin batch-update --credentials "credentials.json" \`)
	fmt.Println(`                               --spreadsheet "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`)
	fmt.Println(`                               --data '[{"range":"Sheet1!A1:B2","values":[["a","b"],["c","d"]]}]'`)
	fmt.Println()
	fmt.Println(`    sheets-plugin batch-update --credentials "credentials.json" \`)
	fmt.Println(`                               --spreadsheet "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`)
	fmt.Println(`                               --range "ACL!A1" --file "acl.tsv"`)
	fmt.Println()
}

func (cmd *BatchUpdate) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("batch-update")

	cmd.writeData.flags(flagset)
	cmd.writeOptions.flags(flagset)

	return flagset
}

func (cmd *BatchUpdate) Execute(args ...any) error {
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

	rq := tools.BatchUpdateRequest{
		SpreadsheetID: spreadsheet,
		Data:          data,
		WriteOptions:  cmd.options(),
	}

	response, err := tools.BatchUpdate(ctx, google, rq)
	if err != nil {
		return fmt.Errorf("unable to update spreadsheet (%v)", tools.Describe(err))
	}

	infof("Updated %v cells in %v rows across %v sheets",
		humanize.Comma(response.TotalUpdatedCells),
		humanize.Comma(response.TotalUpdatedRows),
		response.TotalUpdatedSheets)

	return printJSON(os.Stdout, response)
}
