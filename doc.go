// Copyright 2023 uhppoted@twyst.co.za. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package sheets-plugin implements the Google Sheets batch tools for a workflow automation platform.

The tools authenticate with a Google Cloud service account and forward the request to the Google Sheets API,
returning the API response largely unchanged. sheets-plugin can be used from the command line or run as an
HTTP endpoint that the workflow platform invokes.

sheets-plugin supports the following commands:

  - batch-get, to retrieve the values for one or more ranges as JSON, TSV or XLSX
  - batch-update, to write values to one or more ranges
  - batch-append, to append (or prepend) rows to one or more worksheets, creating missing worksheets
  - validate, to verify that the service account can access a spreadsheet
  - serve, to run the HTTP endpoint for tool invocations
  - version, to display the current version
*/
package sheets
