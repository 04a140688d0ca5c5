package commands

const (
	_etc = `C:\ProgramData\uhppoted`

	DEFAULT_CREDENTIALS = _etc + `\sheets\.google\credentials.json`
	DEFAULT_CONFIG      = _etc + `\sheets\sheets-plugin.yaml`
)
