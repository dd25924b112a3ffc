package cmd

import (
	"errors"
	"os"

	"github.com/DefiantLabs/cheqd-tax-cli/config"
	"github.com/DefiantLabs/cheqd-tax-cli/csv"
	csvParsers "github.com/DefiantLabs/cheqd-tax-cli/csv/parsers"
	"github.com/DefiantLabs/cheqd-tax-cli/fetcher"
	"github.com/DefiantLabs/cheqd-tax-cli/ledger"

	"github.com/spf13/cobra"
)

var (
	convertConfig   config.ConvertConfig
	validParserKeys = csvParsers.GetParserKeys()
)

func init() {
	config.SetupLogFlags(&convertConfig.Log, convertCmd)
	config.SetupConvertSpecificFlags(validParserKeys, &convertConfig, convertCmd)
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Converts a raw transaction dump into a tax software CSV.",
	Long: `Reads the raw transaction dump produced by the fetch command, classifies every
	message into canonical ledger records, merges same-day reward claims into daily
	summaries, and writes a CSV importable by tax software.`,
	PreRunE: setupConvert,
	Run: func(cmd *cobra.Command, args []string) {
		address := convertConfig.Base.Address

		transactions, err := fetcher.ReadDump(convertConfig.Base.Input)
		if err != nil {
			config.Log.Fatal("Error reading transaction dump", err)
		}

		classifier := ledger.NewClassifier(address)
		records := classifier.ClassifyAll(transactions)
		records = ledger.Deduplicate(records)
		records = ledger.Consolidate(records)

		csvRows, headers, err := csv.ParseForAddress(address, records, convertConfig.Base.Format)
		if err != nil {
			config.Log.Fatal("Error calling parser for address", err)
		}

		buffer, err := csv.ToCsv(csvRows, headers)
		if err != nil {
			config.Log.Fatal("Error generating CSV", err)
		}

		err = os.WriteFile(convertConfig.Base.Output, buffer.Bytes(), 0o600)
		if err != nil {
			config.Log.Fatal("Error writing CSV file", err)
		}

		config.Log.Infof("Wrote %d rows for %s to %s", len(csvRows), address, convertConfig.Base.Output)
	},
}

func setupConvert(cmd *cobra.Command, args []string) error {
	if len(validParserKeys) == 0 {
		return errors.New("error during setup, no CSV parsers found")
	}

	bindFlags(cmd, viperConf)

	err := convertConfig.Validate(validParserKeys)
	if err != nil {
		return err
	}

	ignoredKeys := config.CheckSuperfluousConvertKeys(viperConf.AllKeys())

	if len(ignoredKeys) > 0 {
		config.Log.Warnf("Warning, the following invalid keys will be ignored: %v", ignoredKeys)
	}

	setupLogger(convertConfig.Log.Level, convertConfig.Log.Path, convertConfig.Log.Pretty)

	return nil
}
