package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DefiantLabs/cheqd-tax-cli/config"
	"github.com/DefiantLabs/cheqd-tax-cli/fetcher"
	"github.com/DefiantLabs/cheqd-tax-cli/graphql"
	"github.com/DefiantLabs/cheqd-tax-cli/util"

	"github.com/spf13/cobra"
)

var fetchConfig config.FetchConfig

func init() {
	config.SetupLogFlags(&fetchConfig.Log, fetchCmd)
	config.SetupFetchSpecificFlags(&fetchConfig, fetchCmd)
	config.SetupThrottlingFlag(&fetchConfig.Base.Throttling, fetchCmd)
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetches the transaction history of an address into a local dump.",
	Long: `Downloads every transaction involving the configured address from a BigDipper
	GraphQL indexer, page by page, into a local JSON dump. Progress is checkpointed after
	every page, so an interrupted fetch resumes where it left off instead of starting over.`,
	PreRunE: setupFetch,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		output := fetchConfig.Base.Output
		if util.StrNotSet(output) {
			output = fmt.Sprintf("transactions_%s.json", time.Now().UTC().Format("20060102_150405"))
		}

		f := fetcher.Fetcher{
			Client:          graphql.NewClient(fetchConfig.Base.Endpoint),
			Address:         fetchConfig.Base.Address,
			BatchSize:       fetchConfig.Base.BatchSize,
			MaxTransactions: fetchConfig.Base.MaxTransactions,
			Throttle:        time.Duration(fetchConfig.Base.Throttling * float64(time.Second)),
			RetryAttempts:   fetchConfig.Base.RequestRetryAttempts,
			RetryMaxWait:    fetchConfig.Base.RequestRetryMaxWait,
			Checkpoints:     fetcher.NewCheckpointStore(fetchConfig.Base.ProgressFile),
			DumpPath:        output,
		}

		transactions, err := f.FetchAll(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				config.Log.Fatal(fmt.Sprintf("Fetch interrupted, %d transactions saved. Rerun to resume.", len(transactions)), err)
			}
			config.Log.Fatal(fmt.Sprintf("Fetch failed, %d transactions saved. Rerun to resume.", len(transactions)), err)
		}

		config.Log.Infof("Fetched %d transactions for %s into %s", len(transactions), fetchConfig.Base.Address, output)
	},
}

func setupFetch(cmd *cobra.Command, args []string) error {
	bindFlags(cmd, viperConf)

	err := fetchConfig.Validate()
	if err != nil {
		return err
	}

	ignoredKeys := config.CheckSuperfluousFetchKeys(viperConf.AllKeys())

	if len(ignoredKeys) > 0 {
		config.Log.Warnf("Warning, the following invalid keys will be ignored: %v", ignoredKeys)
	}

	setupLogger(fetchConfig.Log.Level, fetchConfig.Log.Path, fetchConfig.Log.Pretty)

	return nil
}
