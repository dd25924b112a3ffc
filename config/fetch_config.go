package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/DefiantLabs/cheqd-tax-cli/util"
	"github.com/spf13/cobra"
)

type FetchConfig struct {
	ConfigFileLocation string
	Base               fetchBase
	Log                log
}

type fetchBase struct {
	throttlingBase
	retryBase
	Endpoint        string `mapstructure:"endpoint"`
	Address         string `mapstructure:"address"`
	BatchSize       int64  `mapstructure:"batch-size"`
	MaxTransactions int64  `mapstructure:"max-transactions"`
	Output          string `mapstructure:"output"`
	ProgressFile    string `mapstructure:"progress-file"`
}

func SetupFetchSpecificFlags(conf *FetchConfig, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&conf.Base.Endpoint, "base.endpoint", "", "GraphQL endpoint URL of the BigDipper indexer")
	cmd.PersistentFlags().StringVar(&conf.Base.Address, "base.address", "", "the wallet address to fetch transactions for")
	cmd.PersistentFlags().Int64Var(&conf.Base.BatchSize, "base.batch-size", 100, "number of transactions per request")
	cmd.PersistentFlags().Int64Var(&conf.Base.MaxTransactions, "base.max-transactions", 5000, "maximum number of transactions to fetch")
	cmd.PersistentFlags().StringVar(&conf.Base.Output, "base.output", "", "raw transaction dump file (default is transactions_<timestamp>.json)")
	cmd.PersistentFlags().StringVar(&conf.Base.ProgressFile, "base.progress-file", "fetch_progress.json", "checkpoint file used to resume interrupted fetches")
	cmd.PersistentFlags().Int64Var(&conf.Base.RequestRetryAttempts, "base.request-retry-attempts", 3, "number of GraphQL query retries to make")
	cmd.PersistentFlags().Uint64Var(&conf.Base.RequestRetryMaxWait, "base.request-retry-max-wait", 30, "max retry incremental backoff wait time in seconds")
}

func (conf *FetchConfig) Validate() error {
	if util.StrNotSet(conf.Base.Endpoint) {
		return errors.New("base.endpoint must be set")
	}
	if !strings.HasPrefix(conf.Base.Endpoint, "http://") && !strings.HasPrefix(conf.Base.Endpoint, "https://") {
		return fmt.Errorf("base.endpoint must be an http(s) URL, got '%v'", conf.Base.Endpoint)
	}
	if util.StrNotSet(conf.Base.Address) {
		return errors.New("base.address must be set")
	}
	if strings.Contains(conf.Base.Address, " ") || strings.Contains(conf.Base.Address, ",") {
		return fmt.Errorf("invalid address '%v', addresses cannot contain spaces or commas", conf.Base.Address)
	}
	if conf.Base.BatchSize <= 0 {
		return errors.New("base.batch-size must be a positive number")
	}
	if conf.Base.MaxTransactions <= 0 {
		return errors.New("base.max-transactions must be a positive number")
	}

	return validateThrottlingConf(conf.Base.throttlingBase)
}

func CheckSuperfluousFetchKeys(keys []string) []string {
	validKeys := make(map[string]struct{})

	addLogConfigKeys(validKeys)

	// add base keys
	for _, key := range getValidConfigKeys(fetchBase{}, "base") {
		validKeys[key] = struct{}{}
	}
	for _, key := range getValidConfigKeys(throttlingBase{}, "base") {
		validKeys[key] = struct{}{}
	}
	for _, key := range getValidConfigKeys(retryBase{}, "base") {
		validKeys[key] = struct{}{}
	}

	// Check keys
	ignoredKeys := make([]string, 0)
	for _, key := range keys {
		if _, ok := validKeys[key]; !ok {
			ignoredKeys = append(ignoredKeys, key)
		}
	}

	return ignoredKeys
}
