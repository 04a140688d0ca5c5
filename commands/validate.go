package commands

import (
	"context"
	"flag"
	"fmt"

	"github.com/uhppoted/sheets-plugin/tools"
)

var ValidateCmd = Validate{
	command: command{
		credentials: DEFAULT_CREDENTIALS,
		spreadsheet: "",
		debug:       false,
	},
}

type Validate struct {
	command
}

func (cmd *Validate) Name() string {
	return "validate"
}

func (cmd *Validate) Description() string {
	return "Verifies that the service account credentials can access a Google Sheets spreadsheet"
}

func (cmd *Validate) Usage() string {
	return "--credentials <file> --spreadsheet <ID|URL>"
}

func (cmd *Validate) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] validate [options] --spreadsheet <ID|URL>\n", APP)
	fmt.Println()
	fmt.Println("  Verifies the service account credentials by retrieving the spreadsheet title and worksheets.")
	fmt.Println("  The spreadsheet must be shared with the service account email address.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    sheets-plugin validate --credentials "credentials.json" --spreadsheet "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"`)
	fmt.Println()
}

func (cmd *Validate) FlagSet() *flag.FlagSet {
	return cmd.flagset("validate")
}

func (cmd *Validate) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	if err := cmd.validate(); err != nil {
		return err
	}

	ctx := context.Background()
	google, spreadsheet, err := cmd.service(ctx)
	if err != nil {
		return err
	}

	response, err := tools.Validate(ctx, google, spreadsheet)
	if err != nil {
		return fmt.Errorf("credentials validation failed (%v)", tools.Describe(err))
	}

	title := ""
	if response.Properties != nil {
		title = response.Properties.Title
	}

	fmt.Printf("  %s\n", title)
	for _, sheet := range response.Sheets {
		if sheet.Properties != nil {
			fmt.Printf("    %-8v %s\n", sheet.Properties.SheetId, sheet.Properties.Title)
		}
	}

	infof("Credentials validated for spreadsheet %v", spreadsheet)

	return nil
}
