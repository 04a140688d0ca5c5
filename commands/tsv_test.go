package commands

import (
	"reflect"
	"strings"
	"testing"

	"google.golang.org/api/sheets/v4"
)

func TestValuesToTSV(t *testing.T) {
	expected := `Card Number	From	To	Gate	Tower
6001001	2020-01-01	2020-12-31	Y	N
6001002	2020-02-03	2020-11-30		true
`

	var f strings.Builder
	var data = sheets.ValueRange{
		Values: [][]any{
			[]any{"Card Number", "From", "To", "Gate", "Tower"},
			[]any{6001001, "2020-01-01", "2020-12-31", "Y", "N"},
			[]any{"6001002", " 2020-02-03", "2020-11-30", nil, true},
		},
	}

	if err := valuesToTSV(&f, &data); err != nil {
		t.Fatalf("Unexpected error returned from valuesToTSV (%v)", err)
	}

	if f.String() != expected {
		t.Errorf("Incorrect TSV\n   expected: %s\n   got:      %s\n", expected, f.String())
	}
}

func TestValuesToTSVWithEmptyRange(t *testing.T) {
	var f strings.Builder
	var data = sheets.ValueRange{}

	if err := valuesToTSV(&f, &data); err != nil {
		t.Fatalf("Unexpected error returned from valuesToTSV (%v)", err)
	}

	if f.String() != "" {
		t.Errorf("Incorrect TSV\n   expected: %q\n   got:      %q\n", "", f.String())
	}
}

func TestTSVToValues(t *testing.T) {
	tsv := `Card Number	From	To
6001001	2020-01-01	2020-12-31
6001002	2020-02-03
`

	expected := [][]any{
		[]any{"Card Number", "From", "To"},
		[]any{"6001001", "2020-01-01", "2020-12-31"},
		[]any{"6001002", "2020-02-03"},
	}

	data, err := tsvToValues(strings.NewReader(tsv), " ACL!A2 ")
	if err != nil {
		t.Fatalf("Unexpected error returned from tsvToValues (%v)", err)
	}

	if data.Range != "ACL!A2" {
		t.Errorf("Incorrect range - expected:%v, got:%v", "ACL!A2", data.Range)
	}

	if !reflect.DeepEqual(data.Values, expected) {
		t.Errorf("Incorrect values\n   expected: %v\n   got:      %v", expected, data.Values)
	}
}

func TestTSVToValuesWithEmptyFile(t *testing.T) {
	if _, err := tsvToValues(strings.NewReader(""), "ACL!A2"); err == nil {
		t.Errorf("Expected error for empty TSV file")
	}
}
