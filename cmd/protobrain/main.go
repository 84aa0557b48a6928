// Package main provides the protobrain CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"k8s.io/klog/v2"
)

const version = "v0.1.0-dev"

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "protobrain %s - sparse spiking networks driven by sensors\n\n", version)
	fmt.Fprintln(out, "Usage: protobrain [flags] <command> [command flags]")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  version    Show version")
	fmt.Fprintln(out, "  run        Run an experiment described in YAML (run -help)")
	fmt.Fprintln(out, "  bench      Run the built-in benchmark (bench -help)")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Flags:")
	flag.PrintDefaults()
}

func main() {
	klog.InitFlags(nil)
	flag.Usage = usage
	flag.Parse()
	code := dispatch(flag.Args())
	klog.Flush()
	os.Exit(code)
}

func dispatch(args []string) int {
	if len(args) == 0 {
		usage()
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch args[0] {
	case "version":
		fmt.Printf("protobrain %s\n", version)
	case "run":
		err = runCommand(ctx, args[1:])
	case "bench":
		err = benchCommand(ctx, args[1:])
	default:
		klog.Errorf("Unknown command %q. See 'protobrain -help'.", args[0])
		return 2
	}
	if err != nil {
		klog.Errorf("%s failed: %+v", args[0], err)
		return 1
	}
	return 0
}
