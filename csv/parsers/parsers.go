package parsers

import "github.com/DefiantLabs/cheqd-tax-cli/ledger"

// Parsers should be used to check in your parsers.
var Parsers map[string]bool

func init() {
	Parsers = make(map[string]bool)
}

func RegisterParsers(keys []string) {
	for _, key := range keys {
		Parsers[key] = true
	}
}

func GetParserKeys() []string {
	var parserKeys []string

	for i := range Parsers {
		parserKeys = append(parserKeys, i)
	}

	return parserKeys
}

type Parser interface {
	ProcessRecords(address string, records []ledger.Record) error
	GetHeaders() []string
	GetRows() []CsvRow
	TimeLayout() string
}

type CsvRow interface {
	GetRowForCsv() []string
	GetDate() string
}
