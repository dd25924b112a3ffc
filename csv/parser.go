package csv

import (
	"errors"

	"github.com/DefiantLabs/cheqd-tax-cli/config"
	"github.com/DefiantLabs/cheqd-tax-cli/csv/parsers"
	"github.com/DefiantLabs/cheqd-tax-cli/csv/parsers/koinly"
	"github.com/DefiantLabs/cheqd-tax-cli/ledger"
)

// Register new parsers by adding them to this list
var supportedParsers = []string{koinly.ParserKey}

func init() {
	parsers.RegisterParsers(supportedParsers)
}

func GetParser(parserKey string) parsers.Parser {
	switch parserKey {
	case koinly.ParserKey:
		parser := koinly.Parser{}
		return &parser
	}
	return nil
}

// ParseForAddress runs the given parser over the canonical records and returns
// the export rows together with the header line.
func ParseForAddress(address string, records []ledger.Record, parserKey string) ([]parsers.CsvRow, []string, error) {
	parser := GetParser(parserKey)
	if parser == nil {
		return nil, nil, errors.New("invalid parser key")
	}

	err := parser.ProcessRecords(address, records)
	if err != nil {
		config.Log.Error("Error processing records.", err)
		return nil, nil, err
	}

	return parser.GetRows(), parser.GetHeaders(), nil
}
