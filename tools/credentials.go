// Package tools implements the batch get, batch update and batch append operations
// exposed by the plugin. Each operation shapes a request for the Google Sheets API,
// invokes it with service account credentials and returns the API response as-is.
package tools

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SHEETS is the OAuth2 scope requested for the service account.
const SHEETS = sheets.SpreadsheetsScope

// ReadCredentials loads a service account JSON key file.
func ReadCredentials(file string) ([]byte, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(b)) == 0 {
		return nil, fmt.Errorf("empty credentials file '%s'", file)
	}

	return b, nil
}

// NewService returns a Sheets client authenticated with the service account key in
// credentials. Additional client options are applied after the authenticated HTTP
// client, e.g. to override the endpoint.
func NewService(ctx context.Context, credentials []byte, opts ...option.ClientOption) (*sheets.Service, error) {
	if len(bytes.TrimSpace(credentials)) == 0 {
		return nil, missing("credentials_json")
	}

	config, err := google.JWTConfigFromJSON(credentials, SHEETS)
	if err != nil {
		return nil, fmt.Errorf("invalid service account credentials (%w)", err)
	}

	options := []option.ClientOption{
		option.WithHTTPClient(config.Client(ctx)),
	}

	service, err := sheets.NewService(ctx, append(options, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("unable to create new Sheets client (%w)", err)
	}

	return service, nil
}
