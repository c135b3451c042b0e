package commands

import (
	"fmt"

	"github.com/MGTheTrain/rsa-toolkit/internal/app"
	"github.com/MGTheTrain/rsa-toolkit/internal/domain/benchmarks"
	"github.com/MGTheTrain/rsa-toolkit/internal/infrastructure/persistence"
	"github.com/MGTheTrain/rsa-toolkit/internal/infrastructure/reporting"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// BenchmarkCommandHandler encapsulates logic for timing runs and their stored records via CLI.
type BenchmarkCommandHandler struct {
	env *Environment
}

// NewBenchmarkCommandHandler creates a handler over the shared command environment
func NewBenchmarkCommandHandler(env *Environment) *BenchmarkCommandHandler {
	return &BenchmarkCommandHandler{env: env}
}

// service opens the record store. The returned connection must be closed by the caller.
func (commandHandler *BenchmarkCommandHandler) service() (benchmarks.BenchmarkService, *gorm.DB, error) {
	db, err := persistence.NewDBConnection(commandHandler.env.Config.Database)
	if err != nil {
		return nil, nil, err
	}

	repo, err := persistence.NewGormTimingRecordRepository(db, commandHandler.env.Logger)
	if err != nil {
		_ = persistence.CloseDB(db)
		return nil, nil, fmt.Errorf("failed to create timing record repository: %w", err)
	}

	exporter, err := reporting.NewCSVExporter(commandHandler.env.Logger)
	if err != nil {
		_ = persistence.CloseDB(db)
		return nil, nil, fmt.Errorf("failed to create CSV exporter: %w", err)
	}

	service, err := app.NewBenchmarkService(commandHandler.env.RSAProcessor, commandHandler.env.Primes, repo, exporter, commandHandler.env.Logger)
	if err != nil {
		_ = persistence.CloseDB(db)
		return nil, nil, fmt.Errorf("failed to create benchmark service: %w", err)
	}
	return service, db, nil
}

// BenchmarkRSACmd times the RSA primitives over growing prime sizes and stores the results
func (commandHandler *BenchmarkCommandHandler) BenchmarkRSACmd(cmd *cobra.Command, _ []string) error {
	settings := commandHandler.env.Config.Benchmark
	req := &benchmarks.BenchmarkRequest{
		MinBits:     settings.MinBits,
		MaxBits:     settings.MaxBits,
		Step:        settings.Step,
		Repetitions: settings.Repetitions,
		CSVPath:     settings.CSVPath,
	}

	flags := cmd.Flags()
	var err error
	if flags.Changed("min-bits") {
		if req.MinBits, err = flags.GetInt("min-bits"); err != nil {
			return fmt.Errorf("invalid min-bits flag: %w", err)
		}
	}
	if flags.Changed("max-bits") {
		if req.MaxBits, err = flags.GetInt("max-bits"); err != nil {
			return fmt.Errorf("invalid max-bits flag: %w", err)
		}
	}
	if flags.Changed("step") {
		if req.Step, err = flags.GetInt("step"); err != nil {
			return fmt.Errorf("invalid step flag: %w", err)
		}
	}
	if flags.Changed("repetitions") {
		if req.Repetitions, err = flags.GetInt("repetitions"); err != nil {
			return fmt.Errorf("invalid repetitions flag: %w", err)
		}
	}
	if flags.Changed("csv") {
		if req.CSVPath, err = flags.GetString("csv"); err != nil {
			return fmt.Errorf("invalid csv flag: %w", err)
		}
	}

	service, db, err := commandHandler.service()
	if err != nil {
		return err
	}
	defer func() {
		if err := persistence.CloseDB(db); err != nil {
			commandHandler.env.Logger.Warn("Failed to close database: ", err)
		}
	}()

	run, err := service.Run(cmd.Context(), req)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "run: %s\n", run.ID)
	printRecords(cmd, run.Records)
	return nil
}

// ListBenchmarksCmd prints stored timing records
func (commandHandler *BenchmarkCommandHandler) ListBenchmarksCmd(cmd *cobra.Command, _ []string) error {
	query := benchmarks.NewTimingRecordQuery()
	flags := cmd.Flags()
	var err error
	if query.RunID, err = flags.GetString("run-id"); err != nil {
		return fmt.Errorf("invalid run-id flag: %w", err)
	}
	if query.Variant, err = flags.GetString("variant"); err != nil {
		return fmt.Errorf("invalid variant flag: %w", err)
	}
	if query.Operation, err = flags.GetString("operation"); err != nil {
		return fmt.Errorf("invalid operation flag: %w", err)
	}
	if query.SortBy, err = flags.GetString("sort-by"); err != nil {
		return fmt.Errorf("invalid sort-by flag: %w", err)
	}
	if query.SortOrder, err = flags.GetString("sort-order"); err != nil {
		return fmt.Errorf("invalid sort-order flag: %w", err)
	}
	if query.Limit, err = flags.GetInt("limit"); err != nil {
		return fmt.Errorf("invalid limit flag: %w", err)
	}
	if query.Offset, err = flags.GetInt("offset"); err != nil {
		return fmt.Errorf("invalid offset flag: %w", err)
	}

	service, db, err := commandHandler.service()
	if err != nil {
		return err
	}
	defer func() {
		if err := persistence.CloseDB(db); err != nil {
			commandHandler.env.Logger.Warn("Failed to close database: ", err)
		}
	}()

	records, err := service.List(cmd.Context(), query)
	if err != nil {
		return err
	}
	printRecords(cmd, records)
	return nil
}

func printRecords(cmd *cobra.Command, records []*benchmarks.TimingRecord) {
	out := cmd.OutOrStdout()
	for _, r := range records {
		variant := r.Variant
		if variant == "" {
			variant = "-"
		}
		fmt.Fprintf(out, "%s\t%s\t%s\t%s\tmean=%.6fs median=%.6fs stddev=%.6fs n=%d\n",
			r.RunID, r.Range(), variant, r.Operation, r.MeanSeconds, r.MedianSeconds, r.StdDevSeconds, r.Repetitions)
	}
}

// InitBenchmarkCommands registers benchmark-related commands
func InitBenchmarkCommands(rootCmd *cobra.Command, env *Environment) {
	handler := NewBenchmarkCommandHandler(env)

	var benchmarkRSACmd = &cobra.Command{
		Use:   "benchmark-rsa",
		Short: "Time prime generation, key generation, encryption and decryption over growing prime sizes",
		RunE:  handler.BenchmarkRSACmd,
	}
	benchmarkRSACmd.Flags().IntP("min-bits", "", 0, "Smallest prime bit size (defaults to benchmark.min_bits)")
	benchmarkRSACmd.Flags().IntP("max-bits", "", 0, "Bit size where the windows stop (defaults to benchmark.max_bits)")
	benchmarkRSACmd.Flags().IntP("step", "", 0, "Bit width of each window (defaults to benchmark.step)")
	benchmarkRSACmd.Flags().IntP("repetitions", "", 0, "Timed runs per operation (defaults to benchmark.repetitions)")
	benchmarkRSACmd.Flags().StringP("csv", "", "", "Export the run to this CSV file (defaults to benchmark.csv_path)")
	rootCmd.AddCommand(benchmarkRSACmd)

	var listBenchmarksCmd = &cobra.Command{
		Use:   "list-benchmarks",
		Short: "List stored timing records",
		RunE:  handler.ListBenchmarksCmd,
	}
	listBenchmarksCmd.Flags().StringP("run-id", "", "", "Only records of this run")
	listBenchmarksCmd.Flags().StringP("variant", "", "", "Only records of this totient variant")
	listBenchmarksCmd.Flags().StringP("operation", "", "", "Only records of this operation")
	listBenchmarksCmd.Flags().StringP("sort-by", "", "", "date_time_created, min_bits or mean_seconds")
	listBenchmarksCmd.Flags().StringP("sort-order", "", "", "asc or desc")
	listBenchmarksCmd.Flags().IntP("limit", "", 0, "Maximum number of records")
	listBenchmarksCmd.Flags().IntP("offset", "", 0, "Number of records to skip")
	rootCmd.AddCommand(listBenchmarksCmd)
}
