package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/dmacsim/datarecording"
	"github.com/sarchlab/dmacsim/dmac"
	"github.com/sarchlab/dmacsim/firmware"
	"github.com/sarchlab/dmacsim/monitoring"
	"github.com/sarchlab/dmacsim/sim"
	"github.com/sarchlab/dmacsim/sim/directconnection"
	"github.com/sarchlab/dmacsim/tracing"
	"github.com/sarchlab/dmacsim/uart"
)

var (
	flagTrace       bool
	flagTraceDB     string
	flagParallelIDs bool
	flagMonitor     bool
	flagMonitorPort int
	flagOpenBrowser bool
	flagOutput      string
)

var rootCmd = &cobra.Command{
	Use:   "dmacsim",
	Short: "Simulate a chained-descriptor DMA block copy",
	Long: `dmacsim simulates a processor that drives a DMA controller through a
two-descriptor ping/pong chain with a single software trigger, then reports
the copied buffers over a serial console.`,
	Run: func(_ *cobra.Command, _ []string) {
		runSimulation()
	},
}

func init() {
	loadEnvDefaults()

	rootCmd.PersistentFlags().BoolVar(&flagTrace, "trace", false,
		"record transfer and descriptor tasks into a SQLite database")
	rootCmd.PersistentFlags().StringVar(&flagTraceDB, "trace-db",
		envOrDefault("DMACSIM_TRACE_DB", ""),
		"path of the SQLite database that stores the trace, "+
			"auto-named when empty")
	rootCmd.PersistentFlags().BoolVar(&flagParallelIDs, "parallel-ids", false,
		"generate event and message IDs with globally unique IDs "+
			"instead of a deterministic sequence")
	rootCmd.PersistentFlags().BoolVar(&flagMonitor, "monitor", false,
		"start the monitoring server and keep the process alive")
	rootCmd.PersistentFlags().IntVar(&flagMonitorPort, "monitor-port",
		envIntOrDefault("DMACSIM_MONITOR_PORT", 0),
		"port of the monitoring server, 0 picks a random port")
	rootCmd.PersistentFlags().BoolVar(&flagOpenBrowser, "open", false,
		"open the monitoring API in a browser")
	rootCmd.PersistentFlags().StringVar(&flagOutput, "output",
		envOrDefault("DMACSIM_OUTPUT", ""),
		"write the console output to a file instead of stdout")
}

// loadEnvDefaults reads a .env file if one is present. Missing files are
// fine, the flags keep their built-in defaults.
func loadEnvDefaults() {
	_ = godotenv.Load()
}

func envOrDefault(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("%s must be an integer, got %q", key, v))
	}

	return n
}

func runSimulation() {
	if flagParallelIDs {
		sim.UseParallelIDGenerator()
	}

	engine := sim.NewSerialEngine()

	dmaCtrl := dmac.MakeBuilder().
		WithEngine(engine).
		Build("DMAC")

	console := uart.MakeBuilder().
		WithEngine(engine).
		WithWriter(consoleWriter()).
		Build("Console")

	fw := firmware.MakeBuilder().
		WithEngine(engine).
		WithDMAController(dmaCtrl).
		WithConsole(console).
		Build("CPU")

	conn := directconnection.MakeBuilder().
		WithEngine(engine).
		WithFreq(48 * sim.MHz).
		Build("Conn")
	conn.PlugIn(fw.GetPortByName("Tx"))
	conn.PlugIn(fw.GetPortByName("TriggerOut"))
	conn.PlugIn(console.GetPortByName("Rx"))
	conn.PlugIn(dmaCtrl.GetPortByName("Trigger"))

	if flagTrace {
		recorder := datarecording.New(flagTraceDB)
		tracer := tracing.NewRecorderTracer(recorder, engine)
		tracing.CollectTrace(dmaCtrl, tracer)
		engine.RegisterSimulationEndHandler(tracer)
	}

	if flagMonitor {
		monitor := monitoring.NewMonitor()
		monitor.RegisterEngine(engine)
		monitor.RegisterComponent(dmaCtrl)
		monitor.RegisterComponent(console)
		monitor.RegisterComponent(fw)
		if flagMonitorPort != 0 {
			monitor.WithPortNumber(flagMonitorPort)
		}
		if flagOpenBrowser {
			monitor.WithBrowserOpen()
		}
		monitor.StartServer()
	}

	fw.Boot()

	err := engine.Run()
	if err != nil {
		panic(err)
	}

	engine.Finished()

	// The hardware demo loops forever after the report. With the monitor on,
	// the process stays resident the same way so the endpoints remain
	// reachable.
	if flagMonitor {
		select {}
	}
}

func consoleWriter() *os.File {
	if flagOutput == "" {
		return os.Stdout
	}

	f, err := os.Create(flagOutput)
	if err != nil {
		panic(err)
	}

	atexit.Register(func() { _ = f.Close() })

	return f
}
