// Package shell is the Operator Command Surface (spec.md §6, C8): a
// line-oriented stdin loop that drives a cluster.Cluster.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/psanford/generals/internal/cluster"
	"github.com/psanford/generals/internal/config"
	"github.com/psanford/generals/internal/transport"
)

const helpText = "Supported commands: actual-order, g-state, g-kill, g-add, help, whoami, exit"

// Shell reads commands from in and writes results to out.
type Shell struct {
	cluster *cluster.Cluster
	cfg     config.Config
	in      *bufio.Scanner
	out     io.Writer
	log     zerolog.Logger

	// exit is called by the "exit" command. It is whatever the caller of
	// New supplies: cmd/generals passes os.Exit(0), tests pass a no-op.
	exit func()
}

// New constructs a Shell. exit is invoked by the exit command.
func New(cl *cluster.Cluster, cfg config.Config, in io.Reader, out io.Writer, log zerolog.Logger, exit func()) *Shell {
	return &Shell{
		cluster: cl,
		cfg:     cfg,
		in:      bufio.NewScanner(in),
		out:     out,
		log:     log,
		exit:    exit,
	}
}

// Run reads and dispatches commands until EOF, at which point it returns
// (spec.md §6: "EOF ⇒ exit").
func (s *Shell) Run(ctx context.Context) error {
	s.prompt()
	for s.in.Scan() {
		line := strings.TrimSpace(s.in.Text())
		if line == "" {
			s.prompt()
			continue
		}
		s.dispatch(ctx, line)
		s.prompt()
	}
	return s.in.Err()
}

func (s *Shell) prompt() {
	fmt.Fprint(s.out, "$ ")
}

func (s *Shell) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *Shell) dispatch(ctx context.Context, line string) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		s.println(helpText)
	case "whoami":
		s.println(s.cfg.AuthorTag)
	case "exit":
		s.exit()
	case "actual-order":
		s.actualOrder(ctx, args)
	case "g-state":
		s.gState(ctx, args)
	case "g-kill":
		s.gKill(ctx, args)
	case "g-add":
		s.gAdd(args)
	default:
		s.println(cmd + ": command not found")
	}
}

func (s *Shell) actualOrder(ctx context.Context, args []string) {
	if len(args) != 1 || (args[0] != string(transport.Attack) && args[0] != string(transport.Retreat)) {
		s.println("Usage: actual-order [attack/retreat]")
		return
	}
	opinion := transport.Opinion(args[0])

	coordPort, found := s.cluster.FindCoordinator(ctx)
	if !found {
		s.println("No primary general is elected, try again later.")
		return
	}

	verdict, ok := s.cluster.ExecuteOrder(ctx, coordPort, opinion)

	for _, p := range s.cluster.Snapshot() {
		if text, ok := s.cluster.List(ctx, p.ID, []string{"id", "role", "majority", "state"}); ok {
			s.println(text)
		}
	}

	if ok {
		s.println(verdict)
	} else {
		s.println("No primary general is elected, try again later.")
	}
}

func (s *Shell) gState(ctx context.Context, args []string) {
	if len(args) == 0 {
		for _, p := range s.cluster.Snapshot() {
			if text, ok := s.cluster.List(ctx, p.ID, []string{"id", "role", "state"}); ok {
				s.println(text)
			}
		}
		return
	}

	if len(args) != 2 || (args[1] != "faulty" && args[1] != "non-faulty") {
		s.println("Usage: g-state [ID] [faulty/non-faulty]")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		s.println("Usage: g-state [ID] [faulty/non-faulty]")
		return
	}

	faulty := args[1] == "faulty"
	if err := s.cluster.SetState(id, faulty); err != nil {
		s.println(fmt.Sprintf("General with id %d doesn't exist", id))
		return
	}

	if text, ok := s.cluster.List(ctx, id, []string{"id", "state"}); ok {
		s.println(text)
	}
}

func (s *Shell) gKill(ctx context.Context, args []string) {
	if len(args) != 1 {
		s.println("Usage: g-kill [ID]")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		s.println("Usage: g-kill [ID]")
		return
	}

	text, hadText := s.cluster.List(ctx, id, []string{"id", "state"})

	if err := s.cluster.Kill(ctx, id); err != nil {
		s.println(fmt.Sprintf("General with id %d doesn't exist", id))
		return
	}

	if hadText {
		s.println(text)
	}
}

func (s *Shell) gAdd(args []string) {
	if len(args) != 1 {
		s.println("Usage: g-add [K]")
		return
	}
	k, err := strconv.Atoi(args[0])
	if err != nil || k <= 0 {
		s.println("Usage: g-add [K]")
		return
	}

	peers, err := s.cluster.Add(k)
	if err != nil {
		s.println(fmt.Sprintf("failed to add nodes: %v", err))
		return
	}
	for _, p := range peers {
		s.println(fmt.Sprintf("G%d, secondary", p.ID))
	}
}
