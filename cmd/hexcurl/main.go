package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/zeusync/hexcurl/internal/injector"
	"github.com/zeusync/hexcurl/internal/runner"
)

var (
	configPath = flag.String("config", "", "Tuning YAML file (empty: built-in defaults)")
	levelsPath = flag.String("levels", "", "Level YAML file (empty: built-in levels)")
	levelNames = flag.String("level", "", "Comma-separated level names (empty: all)")
	workers    = flag.Int("workers", 0, "Levels simulated at once (0: GOMAXPROCS)")
	maxSeconds = flag.Float64("max-seconds", 60, "Simulated seconds allowed per level")
	frame      = flag.Float64("frame", 0, "Frame delta in seconds (0: one fixed step)")
)

func main() {
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stopCh
		cancel()
	}()

	r, cleanup, err := injector.InitializeRunner(
		injector.ConfigPath(*configPath),
		injector.LevelsPath(*levelsPath),
		runner.Options{MaxSeconds: *maxSeconds, Frame: *frame, Workers: *workers},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing runner:", err)
		os.Exit(1)
	}

	results, err := r.Run(ctx, splitNames(*levelNames)...)
	cleanup()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running levels:", err)
		os.Exit(1)
	}

	printResults(results)
	for _, res := range results {
		if !res.Completed {
			os.Exit(2)
		}
	}
}

func splitNames(s string) []string {
	var names []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func printResults(results []runner.Result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LEVEL\tRESULT\tTICKS\tSECONDS\tREACHED\tSTOPPED\tREPAINTED\tDRIFT")
	for _, res := range results {
		outcome := "timeout"
		switch {
		case res.Completed:
			outcome = "complete"
		case res.Stalled:
			outcome = "stalled"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%d\t%d\t%d\t%.3g\n",
			res.Level, outcome, res.Ticks, res.Seconds, res.Reached, res.Stopped, res.Repainted, res.PreviewDrift)
	}
	_ = w.Flush()
}
