package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/canteen-sim/canteen-sim/sim"
	"github.com/canteen-sim/canteen-sim/sim/stats"
)

var (
	// CLI flags mirroring sim.Config
	population       int     // Number of entities to simulate
	groupCount       int     // Number of parallel staff groups
	staffPerGroup    int     // Staff slots per group
	minService       float64 // Minimum service time (minutes)
	maxService       float64 // Maximum service time (minutes)
	meanInterarrival float64 // Mean arrival gap (minutes)
	seed             int64   // Seed for the run's random stream
	balancer         string  // Load balancer type
	startHour        int     // Start of day (hour)
	startMinute      int     // Start of day (minute)

	logLevel     string // Log verbosity level
	scenarioPath string // Optional YAML scenario file
	outputPath   string // Optional CSV export of the entity log
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "canteen-sim",
	Short: "Discrete-event simulator for a multi-stage canteen service line",
}

// buildConfig assembles the run configuration: scenario file first (if any),
// then explicit flags on top.
func buildConfig(cmd *cobra.Command) (sim.Config, error) {
	cfg := sim.DefaultConfig()
	if scenarioPath != "" {
		loaded, err := sim.LoadScenario(scenarioPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flagOverrides := map[string]func(){
		"population":        func() { cfg.Population = population },
		"groups":            func() { cfg.GroupCount = groupCount },
		"staff-per-group":   func() { cfg.StaffPerGroup = staffPerGroup },
		"min-service":       func() { cfg.MinService = minService },
		"max-service":       func() { cfg.MaxService = maxService },
		"mean-interarrival": func() { cfg.MeanInterarrival = meanInterarrival },
		"seed":              func() { cfg.Seed = seed },
		"balancer":          func() { cfg.Balancer = balancer },
		"start-hour":        func() { cfg.StartHour = startHour },
		"start-minute":      func() { cfg.StartMinute = startMinute },
	}
	for name, apply := range flagOverrides {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	return cfg, cfg.Validate()
}

// printSummary writes the aggregate metrics of a finished run.
func printSummary(cfg sim.Config, summary *stats.Summary) {
	fmt.Println("=== Simulation Summary ===")
	fmt.Printf("Total served       : %d\n", summary.TotalServed)
	fmt.Printf("Mean wait          : %.2f min\n", summary.MeanWait)
	fmt.Printf("Max wait           : %.2f min\n", summary.MaxWait)
	fmt.Printf("Mean service       : %.2f min\n", summary.MeanService)
	fmt.Printf("Max queue length   : %d\n", summary.MaxQueueLength)
	end := stats.ClockTime(cfg.StartOfDay(), summary.EndClock)
	fmt.Printf("Finished at        : %s (%.2f simulated min)\n", end.Format("15:04"), summary.EndClock)
	for g := 0; g < cfg.GroupCount; g++ {
		fmt.Printf("Group %d served     : %d\n", g, summary.GroupCounts[g])
	}
}

// runCmd executes one simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the canteen simulation once and print a summary",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := buildConfig(cmd)
		if err != nil {
			logrus.Fatalf("Configuration rejected: %v", err)
		}

		logrus.Infof("Starting simulation: population=%d groups=%d staff=%d seed=%d",
			cfg.Population, cfg.GroupCount, cfg.StaffPerGroup, cfg.Seed)

		s, err := sim.NewSimulator(cfg)
		if err != nil {
			logrus.Fatalf("Could not build simulator: %v", err)
		}
		result := s.Run()
		printSummary(cfg, stats.Summarize(result))

		if outputPath != "" {
			f, err := os.Create(outputPath)
			if err != nil {
				logrus.Fatalf("Could not create output file: %v", err)
			}
			defer f.Close()
			if err := stats.WriteCSV(f, result.Records); err != nil {
				logrus.Fatalf("Could not write entity log: %v", err)
			}
			logrus.Infof("Entity log written to %s", outputPath)
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	defaults := sim.DefaultConfig()

	runCmd.Flags().IntVar(&population, "population", defaults.Population, "Number of entities to simulate")
	runCmd.Flags().IntVar(&groupCount, "groups", defaults.GroupCount, "Number of parallel staff groups")
	runCmd.Flags().IntVar(&staffPerGroup, "staff-per-group", defaults.StaffPerGroup, "Staff slots per group")
	runCmd.Flags().Float64Var(&minService, "min-service", defaults.MinService, "Minimum service time (minutes)")
	runCmd.Flags().Float64Var(&maxService, "max-service", defaults.MaxService, "Maximum service time (minutes)")
	runCmd.Flags().Float64Var(&meanInterarrival, "mean-interarrival", defaults.MeanInterarrival, "Mean arrival gap (minutes)")
	runCmd.Flags().Int64Var(&seed, "seed", defaults.Seed, "Seed for the run's random stream")
	runCmd.Flags().StringVar(&balancer, "balancer", defaults.Balancer,
		fmt.Sprintf("Load balancer type %v", sim.GetAvailableLoadBalancers()))
	runCmd.Flags().IntVar(&startHour, "start-hour", defaults.StartHour, "Start of day (hour, 0-23)")
	runCmd.Flags().IntVar(&startMinute, "start-minute", defaults.StartMinute, "Start of day (minute, 0-59)")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "YAML scenario file applied before flag overrides")
	runCmd.Flags().StringVar(&outputPath, "output", "", "Write the per-entity CSV log to this path")

	rootCmd.AddCommand(runCmd)
}
