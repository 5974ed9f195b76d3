// Command generals starts a Byzantine Generals / Bully election
// simulation cluster and an interactive operator shell (spec.md §6
// "Process invocation").
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/psanford/generals/internal/cluster"
	"github.com/psanford/generals/internal/config"
	"github.com/psanford/generals/internal/logging"
	"github.com/psanford/generals/internal/shell"
)

func main() {
	if len(os.Args) != 2 {
		usage()
	}
	n, err := strconv.Atoi(os.Args[1])
	if err != nil {
		usage()
	}
	if n <= 0 {
		fmt.Fprintln(os.Stderr, "N must be a positive integer")
		os.Exit(1)
	}

	cfg := config.Default()
	log := logging.New(os.Getenv("GENERALS_DEBUG") != "", os.Stderr)

	cl := cluster.New(cfg, log)
	if _, err := cl.Add(n); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start cluster: %v\n", err)
		os.Exit(1)
	}

	sh := shell.New(cl, cfg, os.Stdin, os.Stdout, log, func() { os.Exit(0) })
	if err := sh.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "shell error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: generals <N>")
	os.Exit(1)
}
