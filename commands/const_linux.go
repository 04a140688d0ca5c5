package commands

const (
	_etc = "/usr/local/etc/uhppoted"

	DEFAULT_CREDENTIALS = _etc + "/sheets/.google/credentials.json"
	DEFAULT_CONFIG      = _etc + "/sheets/sheets-plugin.yaml"
)
