package tools

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

// Describe renders an error returned by one of the tools as the message reported
// back to the workflow. Google API errors are prefixed with a summary of the
// HTTP status, everything else is reported verbatim.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var perr *ParameterError
	if errors.As(err, &perr) {
		return perr.Message
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err.Error()
	}

	message := gerr.Message
	if message == "" {
		message = http.StatusText(gerr.Code)
	}

	switch gerr.Code {
	case http.StatusBadRequest:
		return fmt.Sprintf("Invalid request: %s", message)

	case http.StatusUnauthorized:
		return fmt.Sprintf("Authentication failed: %s. Please check the service account credentials.", message)

	case http.StatusForbidden:
		return fmt.Sprintf("Permission denied: %s. Please make sure the spreadsheet is shared with the service account.", message)

	case http.StatusNotFound:
		return fmt.Sprintf("Spreadsheet or range not found: %s", message)

	case http.StatusTooManyRequests:
		return fmt.Sprintf("Rate limit exceeded: %s", message)

	default:
		return fmt.Sprintf("Google Sheets API error (%d): %s", gerr.Code, message)
	}
}

// StatusCode returns the HTTP status to report for an error returned by one of the
// tools.
func StatusCode(err error) int {
	var perr *ParameterError
	var gerr *googleapi.Error

	switch {
	case err == nil:
		return http.StatusOK

	case errors.As(err, &perr):
		return http.StatusBadRequest

	case errors.As(err, &gerr) && gerr.Code >= 400 && gerr.Code < 600:
		return gerr.Code

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout

	default:
		return http.StatusInternalServerError
	}
}
