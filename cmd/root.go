package cmd

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/kinetic-sim/kinetic-sim/sim"
	"github.com/kinetic-sim/kinetic-sim/sim/ensemble"
	"github.com/kinetic-sim/kinetic-sim/sim/models"
	"github.com/kinetic-sim/kinetic-sim/sim/trace"
)

var (
	// CLI flags shared by run and ensemble
	configPath string           // Optional YAML run file
	modelName  string           // Built-in network name
	methodName string           // Simulation algorithm
	tEnd       float64          // Simulation horizon
	tau        float64          // Leap size for tau-leaping
	seed       int64            // Master seed
	rates      []float64        // Rate constant overrides
	initial    map[string]int64 // Initial count overrides by species
	logLevel   string           // Log verbosity level

	// run-only flags
	outputPath string // CSV destination ("" = stdout)
	traceLevel string // Firing trace verbosity

	// ensemble-only flags
	replicates   int    // Number of independent runs
	outputFormat string // "table" or "json"
)

// Environment variables read from the process or a local .env file.
const (
	envLogLevel = "KSIM_LOG"
	envSeed     = "KSIM_SEED"
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "kinetic-sim",
	Short: "Kinetic Monte Carlo simulator for stochastic reaction networks",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		applyEnvDefaults(cmd)
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
		return nil
	},
}

// runCmd simulates one trajectory and writes it as CSV
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate a single trajectory",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := resolveRunConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s", traceLevel)
		}

		out := os.Stdout
		if outputPath != "" {
			f, err := os.Create(outputPath)
			if err != nil {
				logrus.Fatalf("Failed to create %s: %v", outputPath, err)
			}
			defer func() {
				if closeErr := f.Close(); closeErr != nil {
					logrus.Fatalf("Error closing file %s: %v", outputPath, closeErr)
				}
			}()
			out = f
		}

		st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevel(traceLevel)})
		traj, err := runSingle(cfg, st)
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		if err := writeTrajectoryCSV(out, traj); err != nil {
			logrus.Fatalf("Failed to write trajectory: %v", err)
		}
		if st.Enabled() {
			summary := trace.Summarize(st)
			logrus.Infof("Trace: %d events, %d firings, per reaction %v",
				summary.TotalEvents, summary.TotalFirings, summary.PerReaction)
		}
		logrus.Info("Simulation complete.")
	},
}

// ensembleCmd runs many replicates and reports moments of the final state
var ensembleCmd = &cobra.Command{
	Use:   "ensemble",
	Short: "Estimate final-state moments over independent replicates",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := resolveRunConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		res, err := runEnsemble(cfg)
		if err != nil {
			logrus.Fatalf("Ensemble failed: %v", err)
		}
		if err := writeEnsemble(os.Stdout, res, outputFormat); err != nil {
			logrus.Fatalf("Failed to write results: %v", err)
		}
	},
}

// modelsCmd lists the built-in networks
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List built-in reaction networks",
	Run: func(cmd *cobra.Command, args []string) {
		if err := writeModels(os.Stdout); err != nil {
			logrus.Fatalf("Failed to list models: %v", err)
		}
	},
}

// runSingle builds the configured network and engine and simulates once.
func runSingle(cfg RunConfig, st *trace.SimulationTrace) (*sim.Trajectory, error) {
	net, method, err := cfg.build()
	if err != nil {
		return nil, err
	}
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Seed))
	logrus.Infof("Starting %s run of %q to t=%v, seed=%d", method, cfg.Model, cfg.TEnd, cfg.Seed)

	engine, err := sim.NewEngine(method, net, rng.ForSubsystem(sim.SubsystemSingle), cfg.Tau, sim.WithTrace(st))
	if err != nil {
		return nil, err
	}
	return engine.Sim(cfg.TEnd)
}

// runEnsemble builds the configured network and runs cfg.Replicates runs.
func runEnsemble(cfg RunConfig) (*ensemble.Result, error) {
	net, method, err := cfg.build()
	if err != nil {
		return nil, err
	}
	return ensemble.Run(ensemble.Config{
		Method:     method,
		Tau:        cfg.Tau,
		TEnd:       cfg.TEnd,
		Replicates: cfg.Replicates,
		Seed:       cfg.Seed,
	}, net)
}

// applyEnvDefaults fills flags the user did not set from the environment.
// Precedence: explicit flag > run file > environment > flag default.
func applyEnvDefaults(cmd *cobra.Command) {
	if v := os.Getenv(envLogLevel); v != "" && !cmd.Flags().Changed("log") {
		logLevel = v
	}
	if v := os.Getenv(envSeed); v != "" && cmd.Flags().Lookup("seed") != nil && !cmd.Flags().Changed("seed") {
		s, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			logrus.Fatalf("Invalid %s: %v", envSeed, err)
		}
		seed = s
	}
}

// Execute runs the CLI root command
func Execute() {
	// A missing .env is normal.
	_ = godotenv.Load(".env")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerSimFlags attaches the flags shared by run and ensemble.
func registerSimFlags(c *cobra.Command) {
	c.Flags().StringVar(&configPath, "config", "", "YAML run file; explicitly set flags override it")
	c.Flags().StringVar(&modelName, "model", models.Benchmark.Name, "Built-in network (see `kinetic-sim models`)")
	c.Flags().StringVar(&methodName, "method", string(sim.MethodDirect), "Algorithm: ssa, frm, mnrm, tau-leap")
	c.Flags().Float64Var(&tEnd, "t-end", 1.0, "Simulation horizon")
	c.Flags().Float64Var(&tau, "tau", 1e-3, "Leap size for tau-leap")
	c.Flags().Int64Var(&seed, "seed", 42, "Master seed")
	c.Flags().Float64SliceVar(&rates, "rates", nil, "Comma-separated rate constants (default: model's)")
	c.Flags().StringToInt64Var(&initial, "initial", nil, "Initial count overrides, e.g. X=30,W=5")
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	registerSimFlags(runCmd)
	runCmd.Flags().StringVar(&outputPath, "out", "", "Write the trajectory CSV here instead of stdout")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", string(trace.TraceLevelNone), "Firing trace: none, firings")

	registerSimFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&replicates, "replicates", 10000, "Number of independent replicates")
	ensembleCmd.Flags().StringVar(&outputFormat, "format", "table", "Output format: table or json")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(ensembleCmd)
	rootCmd.AddCommand(modelsCmd)
}
