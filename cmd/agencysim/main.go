package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/summitpoint/agencysim/internal/benchmarks"
	"github.com/summitpoint/agencysim/internal/breakeven"
	"github.com/summitpoint/agencysim/internal/config"
	"github.com/summitpoint/agencysim/internal/domain"
	"github.com/summitpoint/agencysim/internal/output"
	"github.com/summitpoint/agencysim/internal/scenario"
	"github.com/summitpoint/agencysim/internal/simulation"
)

// simpleCLILogger implements simulation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "agencysim %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

var rootCmd = &cobra.Command{
	Use:   "agencysim",
	Short: "Insurance agency growth simulator",
	Long:  "Deterministic monthly simulation of insurance agency growth, retention and profitability",
}

func loadInput(path string) *config.Input {
	parser := config.NewInputParser()
	input, err := parser.LoadFromFile(path)
	if err != nil {
		log.Fatal(err)
	}
	return input
}

func newEngine(verbose bool) *simulation.Engine {
	engine := simulation.NewEngine(benchmarks.Default())
	if verbose {
		engine.SetLogger(simpleCLILogger{})
	}
	return engine
}

func formatterFor(cmd *cobra.Command) output.Formatter {
	format, _ := cmd.Flags().GetString("format")
	formatter, err := output.GetFormatterByName(format)
	if err != nil {
		log.Fatal(err)
	}
	return formatter
}

var simulateCmd = &cobra.Command{
	Use:   "simulate [input-file]",
	Short: "Run one scenario month by month",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := loadInput(args[0])
		verbose, _ := cmd.Flags().GetBool("verbose")
		engine := newEngine(verbose)

		result, err := engine.Run(context.Background(), input.Scenario, input.Seed, input.Months)
		if err != nil {
			log.Fatal(err)
		}

		rendered, err := formatterFor(cmd).FormatResult(result)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Fprintln(os.Stdout, rendered)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate an input file without running it",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := loadInput(args[0])
		fmt.Fprintf(os.Stdout, "%s: valid (%d months, %d seed policies, %d product lines)\n",
			args[0], input.Months, input.Seed.Policies, len(input.Scenario.ProductMix))
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [input-file]",
	Short: "Run the scenario under conservative, moderate and aggressive postures",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := loadInput(args[0])
		verbose, _ := cmd.Flags().GetBool("verbose")
		engine := newEngine(verbose)
		generator := scenario.NewGenerator(engine, engine.Tables)

		templates, _ := cmd.Flags().GetStringSlice("templates")
		cmp, err := generator.Compare(context.Background(), input.Scenario, input.Seed, input.Months, templates...)
		if err != nil {
			log.Fatal(err)
		}

		rendered, err := formatterFor(cmd).FormatComparison(cmp)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Fprintln(os.Stdout, rendered)
	},
}

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity [input-file]",
	Short: "Sweep one input lever and report annualized policy growth",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := loadInput(args[0])
		verbose, _ := cmd.Flags().GetBool("verbose")
		engine := newEngine(verbose)
		generator := scenario.NewGenerator(engine, engine.Tables)

		leverName, _ := cmd.Flags().GetString("lever")
		rawValues, _ := cmd.Flags().GetString("values")
		values, err := parseValues(rawValues)
		if err != nil {
			log.Fatal(err)
		}

		sweep, err := generator.Sweep(context.Background(), input.Scenario, input.Seed, input.Months,
			domain.SensitivityLever(leverName), values)
		if err != nil {
			log.Fatal(err)
		}

		rendered, err := formatterFor(cmd).FormatSweep(sweep)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Fprintln(os.Stdout, rendered)
	},
}

var breakevenCmd = &cobra.Command{
	Use:   "breakeven [input-file]",
	Short: "Solve the monthly lead spend needed to reach a policy target",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := loadInput(args[0])
		verbose, _ := cmd.Flags().GetBool("verbose")
		engine := newEngine(verbose)

		target, _ := cmd.Flags().GetInt("target")
		maxSpend, _ := cmd.Flags().GetFloat64("max-spend")
		solver := breakeven.New(engine, breakeven.SolverOptions{
			MaxMonthlySpend: decimal.NewFromFloat(maxSpend),
		})

		solution, err := solver.RequiredSpend(context.Background(), input.Scenario, input.Seed, input.Months, target)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Fprintf(os.Stdout, "Required monthly spend: $%s (ends at %d policies, %d runs)\n",
			solution.MonthlySpend.StringFixed(0), solution.FinalPolicies, solution.Iterations)
	},
}

var vendorsCmd = &cobra.Command{
	Use:   "vendors [input-file]",
	Short: "Rank lead vendors by unit economics without running a simulation",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := loadInput(args[0])
		if len(input.Scenario.Vendors) == 0 {
			log.Fatal("input defines no vendors")
		}
		engine := newEngine(false)

		report := engine.Acquisition.EvaluateVendors(input.Scenario.Vendors)
		rendered, err := (&output.TableFormatter{}).FormatVendorReport(report)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Fprintln(os.Stdout, rendered)
	},
}

var crosssellCmd = &cobra.Command{
	Use:   "crosssell [input-file]",
	Short: "Plan cross-sell outreach for the seed portfolio",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := loadInput(args[0])
		if len(input.Scenario.Customers) == 0 {
			log.Fatal("input defines no customers")
		}
		engine := newEngine(false)
		month, _ := cmd.Flags().GetInt("month")

		plan := engine.CrossSell.Plan(input.Scenario.Customers, month)
		rendered, err := (&output.TableFormatter{}).FormatCrossSellPlan(plan)
		if err != nil {
			log.Fatal(err)
		}
		if strings.TrimSpace(rendered) == "" {
			fmt.Fprintln(os.Stdout, "No cross-sell opportunities in this portfolio.")
			return
		}
		fmt.Fprintln(os.Stdout, rendered)
	},
}

var referralsCmd = &cobra.Command{
	Use:   "referrals [input-file]",
	Short: "Score referral propensity across the seed portfolio",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := loadInput(args[0])
		if len(input.Scenario.Customers) == 0 {
			log.Fatal("input defines no customers")
		}
		engine := newEngine(false)

		roster := engine.Referral.Roster(input.Scenario.Customers)
		rendered, err := (&output.TableFormatter{}).FormatReferralRoster(roster)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Fprintln(os.Stdout, rendered)
	},
}

func parseValues(raw string) ([]decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("--values is required, e.g. --values 0.85,0.88,0.91")
	}
	parts := strings.Split(raw, ",")
	values := make([]decimal.Decimal, 0, len(parts))
	for _, part := range parts {
		v, err := decimal.NewFromString(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("bad sweep value %q: %w", part, err)
		}
		values = append(values, v)
	}
	return values, nil
}

func init() {
	for _, c := range []*cobra.Command{simulateCmd, compareCmd, sensitivityCmd} {
		c.Flags().String("format", "table", "Output format: table, csv, json")
	}
	for _, c := range []*cobra.Command{simulateCmd, compareCmd, sensitivityCmd, breakevenCmd} {
		c.Flags().BoolP("verbose", "v", false, "Verbose output")
	}
	compareCmd.Flags().StringSlice("templates", nil, "Template names to compare (default: conservative,moderate,aggressive)")
	sensitivityCmd.Flags().String("lever", "retention", "Lever to sweep: retention, conversion, lead_spend, cost_per_lead")
	sensitivityCmd.Flags().String("values", "", "Comma-separated lever values")
	breakevenCmd.Flags().Int("target", 0, "Target ending policy count")
	breakevenCmd.Flags().Float64("max-spend", 500000, "Monthly spend ceiling for the search")
	crosssellCmd.Flags().Int("month", 1, "Calendar month for seasonal timing (1-12)")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(sensitivityCmd)
	rootCmd.AddCommand(breakevenCmd)
	rootCmd.AddCommand(vendorsCmd)
	rootCmd.AddCommand(crosssellCmd)
	rootCmd.AddCommand(referralsCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
