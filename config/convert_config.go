package config

import (
	"errors"
	"fmt"

	"github.com/DefiantLabs/cheqd-tax-cli/util"
	"github.com/spf13/cobra"
)

type ConvertConfig struct {
	ConfigFileLocation string
	Base               convertBase
	Log                log
}

type convertBase struct {
	Input   string `mapstructure:"input"`
	Output  string `mapstructure:"output"`
	Address string `mapstructure:"address"`
	Format  string `mapstructure:"format"`
}

func SetupConvertSpecificFlags(validParserKeys []string, conf *ConvertConfig, cmd *cobra.Command) {
	cmd.Flags().StringVar(&conf.Base.Input, "base.input", "", "raw transaction dump produced by the fetch command")
	cmd.Flags().StringVar(&conf.Base.Output, "base.output", "koinly_export.csv", "CSV file to write")
	cmd.Flags().StringVar(&conf.Base.Address, "base.address", "", "the wallet address the dump was fetched for")

	defaultParser := ""
	if len(validParserKeys) != 0 {
		defaultParser = validParserKeys[0]
	}
	cmd.Flags().StringVar(&conf.Base.Format, "base.format", defaultParser, "The format to output")
}

func (conf *ConvertConfig) Validate(validCsvParsers []string) error {
	found := false
	for _, v := range validCsvParsers {
		if v == conf.Base.Format {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("invalid format %s, valid formats are %s", conf.Base.Format, validCsvParsers)
	}

	if util.StrNotSet(conf.Base.Input) {
		return errors.New("base.input must be set")
	}
	if util.StrNotSet(conf.Base.Address) {
		return errors.New("base.address must be set")
	}

	return nil
}

func CheckSuperfluousConvertKeys(keys []string) []string {
	validKeys := make(map[string]struct{})

	addLogConfigKeys(validKeys)

	for _, key := range getValidConfigKeys(convertBase{}, "base") {
		validKeys[key] = struct{}{}
	}

	ignoredKeys := make([]string, 0)
	for _, key := range keys {
		if _, ok := validKeys[key]; !ok {
			ignoredKeys = append(ignoredKeys, key)
		}
	}

	return ignoredKeys
}
