package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/theapemachine/qsim"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "qsim:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("qsim", pflag.ContinueOnError)
	flags.Int("qubits", 1, "number of qubits in the register")
	flags.Int("shots", 1024, "number of shots to run")
	flags.Uint64("seed", 0, "seed for reproducible measurements (0 = unseeded)")
	flags.Int("workers", 4, "number of shot workers")
	flags.Int("max-failures", 3, "consecutive failed shots before the run gives up (0 = never)")
	flags.Duration("shot-timeout", 0, "maximum wait for a single shot result")
	flags.String("log-level", "info", "debug, info, warn or error")
	configPath := flags.String("config", "", "optional config file")
	circuitText := flags.StringP("circuit", "c", "H:0", `operations such as "H:0 X:1 P(pi/4):1"`)
	dump := flags.Bool("dump", false, "dump the full result")

	if err := flags.Parse(args); err != nil {
		return err
	}

	v := viper.New()
	for key, flag := range map[string]string{
		"qubits":       "qubits",
		"shots":        "shots",
		"seed":         "seed",
		"workers":      "workers",
		"max_failures": "max-failures",
		"shot_timeout": "shot-timeout",
		"log_level":    "log-level",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return err
		}
	}

	cfg, err := qsim.LoadConfig(v, *configPath)
	if err != nil {
		return err
	}

	logger := qsim.NewLogger(cfg.LogLevel)

	circuit, err := qsim.ParseCircuit(cfg.Qubits, *circuitText)
	if err != nil {
		return err
	}

	reg, err := circuit.Build(qsim.WithSource(qsim.NewSeededSource(cfg.Seed)))
	if err != nil {
		return err
	}
	fmt.Println("state:", reg.StateString())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pool, err := qsim.NewPool(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	result, err := pool.Run(ctx, circuit, cfg.Shots)
	if err != nil {
		return err
	}

	outcomes := make([]string, 0, len(result.Counts))
	for bits := range result.Counts {
		outcomes = append(outcomes, bits)
	}
	sort.Strings(outcomes)

	for _, bits := range outcomes {
		fmt.Printf("%s  %6d  %.4f\n", bits, result.Counts[bits], result.Frequency(bits))
	}

	if *dump {
		spew.Dump(result)
		logger.Info("metrics", "pool", pool.Metrics())
	}

	return nil
}
