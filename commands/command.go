package commands

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"google.golang.org/api/sheets/v4"

	"github.com/uhppoted/sheets-plugin/tools"
)

const APP = "sheets-plugin"

type Options struct {
	Debug bool
}

// command holds the options common to all the commands that invoke a tool.
type command struct {
	credentials string
	spreadsheet string
	debug       bool
}

func (c *command) flagset(name string) *flag.FlagSet {
	flagset := flag.NewFlagSet(name, flag.ExitOnError)

	flagset.StringVar(&c.credentials, "credentials", c.credentials, "Path for the service account 'credentials.json' file")
	flagset.StringVar(&c.spreadsheet, "spreadsheet", c.spreadsheet, "Spreadsheet ID or URL")

	return flagset
}

func (c *command) validate() error {
	if strings.TrimSpace(c.credentials) == "" {
		return fmt.Errorf("--credentials is a required option")
	}

	if strings.TrimSpace(c.spreadsheet) == "" {
		return fmt.Errorf("--spreadsheet is a required option")
	}

	return nil
}

// service returns an authenticated Sheets client and the spreadsheet ID.
func (c *command) service(ctx context.Context) (*sheets.Service, string, error) {
	spreadsheet, err := spreadsheetID(c.spreadsheet)
	if err != nil {
		return nil, "", err
	}

	credentials, err := tools.ReadCredentials(c.credentials)
	if err != nil {
		return nil, "", fmt.Errorf("unable to read credentials (%v)", err)
	}

	google, err := tools.NewService(ctx, credentials)
	if err != nil {
		return nil, "", fmt.Errorf("authentication/authorization error (%v)", err)
	}

	if c.debug {
		debugf("Spreadsheet - ID:%s  credentials:%s", spreadsheet, c.credentials)
	}

	return google, spreadsheet, nil
}

// spreadsheetID accepts either a spreadsheet ID or the spreadsheet URL.
func spreadsheetID(spreadsheet string) (string, error) {
	s := strings.TrimSpace(spreadsheet)

	if match := regexp.MustCompile(`^https://docs\.google\.com/spreadsheets/d/([a-zA-Z0-9_-]+)(?:[/?#].*)?$`).FindStringSubmatch(s); len(match) > 1 {
		return match[1], nil
	}

	if regexp.MustCompile(`^[a-zA-Z0-9_-]+$`).MatchString(s) {
		return s, nil
	}

	return "", fmt.Errorf("invalid spreadsheet '%s' - expected an ID or a URL like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'", spreadsheet)
}

// ranges is a repeatable --range flag.
type ranges []string

func (r *ranges) String() string {
	return strings.Join(*r, ",")
}

func (r *ranges) Set(v string) error {
	*r = append(*r, v)
	return nil
}

// writeOptions holds the flags common to batch-update and batch-append.
type writeOptions struct {
	valueInputOption     string
	includeValues        bool
	valueRenderOption    string
	dateTimeRenderOption string
}

func (o *writeOptions) flags(flagset *flag.FlagSet) {
	flagset.StringVar(&o.valueInputOption, "value-input-option", o.valueInputOption, "How input data is interpreted (RAW or USER_ENTERED)")
	flagset.BoolVar(&o.includeValues, "include-values", o.includeValues, "Includes the updated values in the response")
	flagset.StringVar(&o.valueRenderOption, "value-render", o.valueRenderOption, "How response values are rendered (FORMATTED_VALUE, UNFORMATTED_VALUE or FORMULA)")
	flagset.StringVar(&o.dateTimeRenderOption, "date-time-render", o.dateTimeRenderOption, "How response dates and times are rendered (SERIAL_NUMBER or FORMATTED_STRING)")
}

func (o *writeOptions) options() tools.WriteOptions {
	return tools.WriteOptions{
		ValueInputOption:             o.valueInputOption,
		IncludeValuesInResponse:      o.includeValues,
		ResponseValueRenderOption:    o.valueRenderOption,
		ResponseDateTimeRenderOption: o.dateTimeRenderOption,
	}
}

// writeData holds the flags used to supply the 'data' parameter.
type writeData struct {
	data string
	file string
	area string
}

func (d *writeData) flags(flagset *flag.FlagSet) {
	flagset.StringVar(&d.data, "data", d.data, `JSON list of {"range":..., "values":[[...]]} objects`)
	flagset.StringVar(&d.file, "file", d.file, "JSON or TSV file with the data to write")
	flagset.StringVar(&d.area, "range", d.area, "Spreadsheet range for a TSV file e.g. 'ACL!A2'")
}

// load returns the data from either the --data or --file option. TSV files are
// written to the --range option.
func (d *writeData) load() ([]tools.ValueRange, error) {
	if strings.TrimSpace(d.data) != "" && strings.TrimSpace(d.file) != "" {
		return nil, fmt.Errorf("--data and --file are mutually exclusive")
	}

	if strings.TrimSpace(d.data) != "" {
		return tools.ParseData([]byte(d.data))
	}

	if strings.TrimSpace(d.file) == "" {
		return nil, fmt.Errorf("either --data or --file is required")
	}

	if strings.ToLower(filepath.Ext(d.file)) == ".tsv" {
		if strings.TrimSpace(d.area) == "" {
			return nil, fmt.Errorf("--range is a required option for a TSV file")
		}

		f, err := os.Open(d.file)
		if err != nil {
			return nil, err
		}

		defer f.Close()

		data, err := tsvToValues(f, d.area)
		if err != nil {
			return nil, fmt.Errorf("invalid TSV file (%v)", err)
		}

		return []tools.ValueRange{*data}, nil
	}

	if strings.TrimSpace(d.area) != "" {
		return nil, fmt.Errorf("--range is only valid with a TSV file")
	}

	b, err := os.ReadFile(d.file)
	if err != nil {
		return nil, err
	}

	return tools.ParseData(b)
}

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(v)
}

func helpOptions(flagset *flag.FlagSet) {
	count := 0
	flag.VisitAll(func(f *flag.Flag) {
		count++
	})

	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-18s %s\n", f.Name, f.Usage)
	})

	if count > 0 {
		fmt.Println()
		fmt.Println("  Options:")
		flag.VisitAll(func(f *flag.Flag) {
			fmt.Printf("    --%-18s %s\n", f.Name, f.Usage)
		})
	}
}

func debugf(format string, args ...any) {
	log.Printf("%-5s %s", "DEBUG", fmt.Sprintf(format, args...))
}

func infof(format string, args ...any) {
	log.Printf("%-5s %s", "INFO", fmt.Sprintf(format, args...))
}

func warnf(format string, args ...any) {
	log.Printf("%-5s %s", "WARN", fmt.Sprintf(format, args...))
}
