package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rfarias/garimpo/internal/contracts"
	"github.com/rfarias/garimpo/internal/providers/fundamentus"
	"github.com/rfarias/garimpo/internal/providers/usmarket"
	"github.com/rfarias/garimpo/internal/ranking"
	"github.com/rfarias/garimpo/pkg/config"
	"github.com/rfarias/garimpo/pkg/httputil"
	"github.com/rfarias/garimpo/pkg/logger"
)

// rankCmd represents the rank command
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Run one ranking pass and print the result",
	Long: `Fetches the market snapshot, runs every strategy formula and prints
the assembled report to stdout. No cache or database involved.

Example:
  go run ./cmd/garimpo rank
  go run ./cmd/garimpo rank --source usa --sort value-quality --limit 20`,
	RunE: runRank,
}

var (
	rankSource string
	rankSort   string
	rankLimit  int
)

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringVar(&rankSource, "source", "br", "market to rank (br|usa)")
	rankCmd.Flags().StringVar(&rankSort, "sort", string(ranking.FormulaValueQuality), "rank column to sort by")
	rankCmd.Flags().IntVar(&rankLimit, "limit", 30, "rows to print")
}

func runRank(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	var (
		provider  contracts.FundamentalsProvider
		engineCfg ranking.EngineConfig
		source    string
	)
	switch rankSource {
	case "br":
		httpClient := httputil.New(log).WithRetry(3, 1*time.Second).WithLocalLimit(4, 2)
		provider = fundamentus.NewClient(httpClient, log, cfg.Fundamentus.BaseURL)
		engineCfg = ranking.BRConfig()
		source = "br-stocks"
	case "usa":
		httpClient := httputil.New(log).WithRetry(3, 1*time.Second).WithLocalLimit(10, 5)
		provider = usmarket.NewClient(httpClient, log, cfg.USMarket)
		engineCfg = ranking.USConfig()
		source = "us-stocks"
	default:
		return fmt.Errorf("unknown source %q (valid: br, usa)", rankSource)
	}

	ctx := cmd.Context()

	records, err := provider.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("fetch snapshot: %w", err)
	}

	filtered := ranking.Filter(records, ranking.FilterConfig{
		LiquidityFloor:          cfg.Ranking.LiquidityFloor,
		RequirePositiveEarnings: true,
		MaxYield:                cfg.Ranking.MaxYield,
	})

	engine := ranking.NewEngine(engineCfg, log)
	reportData, err := ranking.Assemble(source, filtered, engine.Score(filtered), time.Now())
	if err != nil {
		return fmt.Errorf("assemble report: %w", err)
	}

	rows := reportData.Rows
	ranking.SortRows(rows, ranking.Formula(rankSort))
	if rankLimit > 0 && len(rows) > rankLimit {
		rows = rows[:rankLimit]
	}

	fmt.Printf("%s: %d eligible of %d fetched\n\n", source, len(reportData.Rows), len(records))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TICKER\tSECTOR\tPRICE\tDY%\tP/VP\tVQ\tIV\tYC\tSW")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%.2f\t%d\t%d\t%d\t%d\n",
			row.Ticker, row.Sector, row.Price, row.DividendYield, row.PriceToBook,
			row.RankValueQuality, row.RankIntrinsic, row.RankYieldCeiling, row.RankSectorWeighted,
		)
	}
	return w.Flush()
}
