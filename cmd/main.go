package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyerfyer/stuckat-atpg/pkg/algorithm"
	"github.com/fyerfyer/stuckat-atpg/pkg/circuit"
	"github.com/fyerfyer/stuckat-atpg/pkg/utils"
)

var (
	// Global flags
	configFile string
	verbose    bool
	logFile    string

	// Run flags, applied over the config file when set
	circuitFile   string
	faultNode     string
	faultType     string
	faultStr      string
	outputFile    string
	inputList     string
	primaryOutput string
	workers       int
	strict        bool
	detectingOnly bool

	cfg    *utils.Config
	logger *utils.Logger
)

var rootCmd = &cobra.Command{
	Use:   "stuckat",
	Short: "Exhaustive test vector generation for single stuck-at faults",
	Long: `stuckat simulates a combinational netlist for every primary input
combination with one signal stuck at 0 or 1, and writes each input vector
with the resulting primary output.

Netlist lines have the form "out = op a [b]" with op one of & | ^ ~.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// help and completion need no circuit
		if cmd != generateCmd && cmd != faultsCmd {
			return nil
		}

		var err error
		cfg, err = loadConfig(cmd)
		if err != nil {
			return err
		}

		level, err := utils.ParseLogLevel(cfg.Logging.Level)
		if err != nil {
			return err
		}
		if verbose && level < utils.DebugLevel {
			level = utils.DebugLevel
		}

		var base *utils.Logger
		if cfg.Logging.File != "" {
			base, err = utils.NewFileLogger(level, cfg.Logging.File)
			if err != nil {
				return fmt.Errorf("failed to create log file: %w", err)
			}
		} else {
			base = utils.NewLogger(level)
		}
		logger = base.With(zap.String("run", uuid.New().String()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate test vectors for one stuck-at fault",
	Long: `Enumerates all 2^k input vectors in ascending order (input j is bit j of
the vector index) and writes one line per vector:

  [A, B, C, D] = [1, 0, 0, 0], Z = 1

Example:
  stuckat generate --circuit circuit.txt --node net_f --type SA1 --output output.txt`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

var faultsCmd = &cobra.Command{
	Use:   "faults",
	Short: "Simulate every single stuck-at fault and report detectability",
	Args:  cobra.NoArgs,
	RunE:  runFaults,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "Log file (default: stdout)")
	rootCmd.PersistentFlags().StringVarP(&circuitFile, "circuit", "c", "", "Netlist file")
	rootCmd.PersistentFlags().StringVar(&inputList, "inputs", "A,B,C,D", "Comma-separated primary inputs, least significant bit first")
	rootCmd.PersistentFlags().StringVar(&primaryOutput, "primary-output", "Z", "Primary output signal")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 1, "Evaluate vectors on this many goroutines")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "Reject forward references and undeclared signals before simulating")

	generateCmd.Flags().StringVarP(&faultNode, "node", "n", "", "Fault node")
	generateCmd.Flags().StringVarP(&faultType, "type", "t", "SA1", "Fault type (SA0 or SA1)")
	generateCmd.Flags().StringVarP(&faultStr, "fault", "f", "", "Fault as node/value, e.g. 'net_f/1' (overrides --node and --type)")
	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "tests.txt", "Output file for test vectors")
	generateCmd.Flags().BoolVar(&detectingOnly, "detecting-only", false, "Only write vectors that detect the fault")

	rootCmd.AddCommand(generateCmd, faultsCmd)
}

// loadConfig reads --config, if given, and applies explicitly set flags over it
func loadConfig(cmd *cobra.Command) (*utils.Config, error) {
	c := utils.DefaultConfig()
	if configFile != "" {
		var err error
		if c, err = utils.LoadConfig(configFile); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("circuit") {
		c.Circuit = circuitFile
	}
	if flags.Changed("node") {
		c.FaultNode = faultNode
	}
	if flags.Changed("type") {
		c.FaultType = faultType
	}
	if flags.Changed("fault") {
		node, kind, err := utils.ParseFaultString(faultStr)
		if err != nil {
			return nil, err
		}
		c.FaultNode, c.FaultType = node, kind
	}
	if flags.Changed("output") {
		c.Output = outputFile
	}
	if flags.Changed("inputs") {
		c.Inputs = utils.ParseInputList(inputList)
	}
	if flags.Changed("primary-output") {
		c.PrimaryOutput = primaryOutput
	}
	if flags.Changed("workers") {
		c.Workers = workers
	}
	if flags.Changed("strict") {
		c.Strict = strict
	}
	if flags.Changed("detecting-only") {
		c.DetectingOnly = detectingOnly
	}
	if flags.Changed("log") {
		c.Logging.File = logFile
	}

	if c.Circuit == "" {
		return nil, fmt.Errorf("circuit file is required")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// newGenerator reads the netlist and configures a generator for it
func newGenerator() (*algorithm.Generator, error) {
	logger.Info("Parsing circuit from %s", cfg.Circuit)
	c, err := utils.ReadNetlistFile(cfg.Circuit)
	if err != nil {
		return nil, err
	}
	for _, name := range c.Redeclared() {
		logger.Warning("Signal %s is driven by more than one gate; the last one wins", name)
	}

	gen := algorithm.NewGenerator(c, cfg.Inputs, logger)
	gen.PrimaryOutput = cfg.PrimaryOutput
	gen.Workers = cfg.Workers
	gen.Strict = cfg.Strict
	return gen, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if cfg.FaultNode == "" {
		return fmt.Errorf("fault node is required (use --node or --fault)")
	}
	ft, err := algorithm.ParseFaultType(cfg.FaultType)
	if err != nil {
		return err
	}

	gen, err := newGenerator()
	if err != nil {
		return err
	}

	records, err := gen.Generate(cmd.Context(), cfg.FaultNode, ft)
	if err != nil {
		return err
	}

	if cfg.DetectingOnly {
		detecting := make([]circuit.TestRecord, 0, gen.Stats.Detecting)
		for _, r := range records {
			if r.Detects() {
				detecting = append(detecting, r)
			}
		}
		records = detecting
	}

	logger.Info("Writing %d test vectors to %s", len(records), cfg.Output)
	if err := utils.WriteTestFile(cfg.Output, cfg.Inputs, cfg.PrimaryOutput, records); err != nil {
		return err
	}

	logger.Info("Generation complete")
	logger.Info("Circuit: %s", gen.Circuit.Name)
	logger.Info("Gates: %d", gen.Circuit.Len())
	logger.Info("Primary inputs: %d", len(gen.Inputs))
	logger.Info("Vectors: %d", gen.Stats.Vectors)
	logger.Info("Detecting vectors: %d", gen.Stats.Detecting)
	logger.Info("Time: %v", gen.Stats.TotalTime)
	return nil
}

func runFaults(cmd *cobra.Command, args []string) error {
	gen, err := newGenerator()
	if err != nil {
		return err
	}

	results, err := gen.GenerateAll(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, r := range results {
		if !r.Detected() {
			fmt.Fprintf(out, "%-24s undetectable\n", r.Fault)
			continue
		}
		first := r.Records[r.Detecting[0]]
		fmt.Fprintf(out, "%-24s %d vectors, first %s\n", r.Fault, len(r.Detecting),
			utils.FormatTestRecord(gen.Inputs, gen.PrimaryOutput, first))
	}
	fmt.Fprintf(out, "Fault coverage: %d/%d (%.1f%%)\n",
		gen.Stats.DetectedFaults, gen.Stats.Faults, 100*gen.Stats.Coverage())
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
