package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"seldom/adapters/stats/quadrature"
	"seldom/adapters/stats/selection"
	"seldom/internal"
	"seldom/internal/config"
	"seldom/ports"

	"github.com/joho/godotenv"
	"github.com/montanaflynn/stats"
	"github.com/spf13/cobra"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewLoggerFromString(appConfig.Logging.Level)
	if err := newRootCmd(appConfig, logger).Execute(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

// evalFlags are shared by every command that evaluates the selection function
type evalFlags struct {
	z        []float64
	gamma    float64
	order    int
	clipMode string
	workers  int
}

func newRootCmd(appConfig *config.Config, logger *internal.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "seldom",
		Short:         "Evaluate randomized selection functions over p-values",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// quadrature.Default() logs through DefaultLogger, which is fixed before .env loads
	provider := quadrature.NewLegendreProvider(logger)

	rootCmd.AddCommand(
		newSelectCmd(appConfig, logger, provider),
		newIntegrateCmd(appConfig, logger, provider),
		newSweepCmd(appConfig, logger, provider),
		newGaussFDCmd(),
		newRuleCmd(appConfig, provider),
	)

	return rootCmd
}

func bindEvalFlags(cmd *cobra.Command, appConfig *config.Config, f *evalFlags) {
	cmd.Flags().Float64SliceVar(&f.z, "z", nil, "Reference p-values (comma separated)")
	cmd.Flags().Float64Var(&f.gamma, "gamma", 0.5, "Randomization parameter in (0, 1)")
	cmd.Flags().IntVar(&f.order, "order", appConfig.Quadrature.Order, "Gauss-Legendre quadrature order")
	cmd.Flags().StringVar(&f.clipMode, "clip", appConfig.Evaluation.ClipMode, "Clamp the product or each factor (product|factors)")
	cmd.Flags().IntVar(&f.workers, "workers", appConfig.Evaluation.Workers, "Goroutines for grid evaluation (<=0 uses GOMAXPROCS)")
}

func (f *evalFlags) evaluator(logger *internal.Logger, provider ports.RuleProvider) (*selection.Evaluator, error) {
	mode, err := selection.ParseClipMode(f.clipMode)
	if err != nil {
		return nil, err
	}
	logger.Debug("evaluating with order=%d clip=%s workers=%d", f.order, mode, f.workers)
	if logger.GetLevel() >= internal.LogLevelTrace {
		logger.Trace("reference p-values: [%s]", formatPValues(f.z))
	}
	return selection.NewEvaluator(
		selection.WithOrder(f.order),
		selection.WithProvider(provider),
		selection.WithClipMode(mode),
		selection.WithWorkers(f.workers),
	)
}

func formatPValues(z []float64) string {
	parts := make([]string, len(z))
	for i, v := range z {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ", ")
}

func newSelectCmd(appConfig *config.Config, logger *internal.Logger, provider ports.RuleProvider) *cobra.Command {
	var flags evalFlags
	var x float64

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Compute the selection function s(x; z, gamma)",
		Long: `Compute s(x; z, gamma), the integral over u in [0, 1] of the clamped product
of 1 - (gamma/(1-gamma)(x - z_j) + u) over the reference p-values.

Example: seldom select --x 0.3 --z 0.5,0.7 --gamma 0.5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := flags.evaluator(logger, provider)
			if err != nil {
				return err
			}
			s, err := e.Select(x, flags.z, flags.gamma)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.10g\n", s)
			return nil
		},
	}

	bindEvalFlags(cmd, appConfig, &flags)
	cmd.Flags().Float64Var(&x, "x", 0, "First p-value")

	return cmd
}

func newIntegrateCmd(appConfig *config.Config, logger *internal.Logger, provider ports.RuleProvider) *cobra.Command {
	var flags evalFlags
	var p float64

	cmd := &cobra.Command{
		Use:   "integrate",
		Short: "Compute S(p; z, gamma), the integral of the selection function over [0, p]",
		Long: `Compute S(p; z, gamma) by nesting the same Gauss-Legendre rule as the inner
and outer integration.

Example: seldom integrate --p 0.3 --z 0.5,0.7 --gamma 0.5 --order 100`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := flags.evaluator(logger, provider)
			if err != nil {
				return err
			}
			v, err := e.Integrate(p, flags.z, flags.gamma)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.10g\n", v)
			return nil
		},
	}

	bindEvalFlags(cmd, appConfig, &flags)
	cmd.Flags().Float64Var(&p, "p", 0, "Upper integration bound")

	return cmd
}

func newSweepCmd(appConfig *config.Config, logger *internal.Logger, provider ports.RuleProvider) *cobra.Command {
	var flags evalFlags
	var points int

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Tabulate s and S over an even grid of p-values in [0, 1]",
		Long: `Evaluate s(p; z, gamma) and S(p; z, gamma) on an evenly spaced grid and print
a summary of the selection function values.

Example: seldom sweep --z 0.2,0.4,0.9 --gamma 0.1 --points 11`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if points < 2 {
				return fmt.Errorf("--points must be at least 2, got %d", points)
			}
			e, err := flags.evaluator(logger, provider)
			if err != nil {
				return err
			}
			return runSweep(cmd.OutOrStdout(), e, flags.z, flags.gamma, points)
		},
	}

	bindEvalFlags(cmd, appConfig, &flags)
	cmd.Flags().IntVar(&points, "points", 11, "Number of grid points")

	return cmd
}

func runSweep(w io.Writer, e *selection.Evaluator, z []float64, gamma float64, points int) error {
	grid := make([]float64, points)
	for i := range grid {
		grid[i] = float64(i) / float64(points-1)
	}

	ss, err := e.SelectVec(grid, z, gamma)
	if err != nil {
		return err
	}
	integrals, err := e.IntegrateVec(grid, z, gamma)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%-10s %-14s %-14s\n", "p", "s(p)", "S(p)")
	for i, p := range grid {
		fmt.Fprintf(w, "%-10.4f %-14.8f %-14.8f\n", p, ss[i], integrals[i])
	}

	data := stats.LoadRawData(ss)
	mean, err := data.Mean()
	if err != nil {
		return fmt.Errorf("failed to summarize sweep: %w", err)
	}
	median, err := data.Median()
	if err != nil {
		return fmt.Errorf("failed to summarize sweep: %w", err)
	}
	minimum, err := data.Min()
	if err != nil {
		return fmt.Errorf("failed to summarize sweep: %w", err)
	}
	maximum, err := data.Max()
	if err != nil {
		return fmt.Errorf("failed to summarize sweep: %w", err)
	}

	fmt.Fprintf(w, "\ns(p) summary: mean=%.6f median=%.6f min=%.6f max=%.6f\n", mean, median, minimum, maximum)
	return nil
}

func newGaussFDCmd() *cobra.Command {
	var a, t float64

	cmd := &cobra.Command{
		Use:   "gaussfd",
		Short: "Compute the Gaussian tail ratio P(X >= a, X+Y > t) / P(X+Y > t)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%.10g\n", selection.GaussFD(a, t))
			return nil
		},
	}

	cmd.Flags().Float64Var(&a, "a", 0, "Lower bound on X")
	cmd.Flags().Float64Var(&t, "t", 0, "Threshold on X+Y")

	return cmd
}

func newRuleCmd(appConfig *config.Config, provider ports.RuleProvider) *cobra.Command {
	var order int

	cmd := &cobra.Command{
		Use:   "rule",
		Short: "Print Gauss-Legendre nodes and weights on [-1, 1]",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rule, err := provider.Rule(order)
			if err != nil {
				return err
			}
			nodes, weights := rule.Nodes(), rule.Weights()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-6s %-24s %-24s\n", "i", "node", "weight")
			for i := range nodes {
				fmt.Fprintf(w, "%-6d %-24.17g %-24.17g\n", i, nodes[i], weights[i])
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&order, "order", appConfig.Quadrature.Order, "Quadrature order")

	return cmd
}
