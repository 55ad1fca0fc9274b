// Package interactive provides the interactive shell of vss-inspect.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/chzyer/readline"

	"github.com/vss-go/vss-go/pkg/broker"
	"github.com/vss-go/vss-go/pkg/identifier"
	"github.com/vss-go/vss-go/pkg/session"
	"github.com/vss-go/vss-go/pkg/subscription"
	"github.com/vss-go/vss-go/pkg/tree"
)

// Options configures the shell.
type Options struct {
	// ShowIdentifiers includes derived identifiers in tree output.
	ShowIdentifiers bool

	// Identifiers is the generator used by the id command.
	Identifiers identifier.Generator
}

// Shell handles interactive mode for vss-inspect.
type Shell struct {
	sess      *session.Session
	formatter *tree.Formatter
	ids       identifier.Generator
	rl        *readline.Instance
	out       io.Writer

	mu        sync.Mutex
	listeners map[string]*subscription.FuncListener
}

// New creates a shell reading commands with readline.
func New(sess *session.Session, opts Options) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "vss> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    newCompleter(sess.Forest()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	s := newShell(sess, opts, rl.Stdout())
	s.rl = rl
	return s, nil
}

func newShell(sess *session.Session, opts Options, out io.Writer) *Shell {
	f := tree.NewFormatter()
	f.ShowIdentifiers = opts.ShowIdentifiers
	return &Shell{
		sess:      sess,
		formatter: f,
		ids:       opts.Identifiers,
		out:       out,
		listeners: make(map[string]*subscription.FuncListener),
	}
}

// Stdout returns a writer that coordinates with the readline prompt.
func (s *Shell) Stdout() io.Writer {
	return s.out
}

// Stderr returns a writer that coordinates with the readline prompt.
func (s *Shell) Stderr() io.Writer {
	if s.rl != nil {
		return s.rl.Stderr()
	}
	return s.out
}

// Run starts the interactive command loop.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			cancel()
			return
		}

		if quit := s.Execute(ctx, line); quit {
			fmt.Fprintln(s.out, "Exiting...")
			cancel()
			return
		}
	}
}

// Execute runs one command line and reports whether the shell should exit.
func (s *Shell) Execute(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()
	case "tree", "t":
		s.cmdTree(args)
	case "ls":
		s.cmdList(args)
	case "info", "i":
		s.cmdInfo(args)
	case "id":
		s.cmdID(args)
	case "sub", "subscribe":
		s.cmdSubscribe(ctx, args)
	case "unsub", "unsubscribe":
		s.cmdUnsubscribe(ctx, args)
	case "set", "w":
		s.cmdSet(ctx, args)
	case "get", "r":
		s.cmdGet(ctx, args)
	case "recent":
		s.cmdRecent()
	case "quit", "exit", "q":
		return true
	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
Catalog Commands:
  Browsing:
    tree [path]              - Print the tree (or the subtree at path)
    ls [path]                - List direct children (roots without path)
    info <path>              - Show node details
    id <segment>             - Show the identifier derived for a name

  Signals:
    sub <path> [fields]      - Subscribe to path and its descendants
    unsub <path>             - Remove the subscriptions on path
    set <path> <value> [fields] - Write a value (fields: VALUE, ACTUATOR_TARGET)
    get <path> [fields]      - Read values (branch paths list descendants)
    recent                   - Show recently updated paths

  General:
    help                     - Show this help
    quit                     - Exit

  Fields are VALUE, ACTUATOR_TARGET, METADATA or ALL, joined with '|'.`)
}

// lookup resolves path or prints an error.
func (s *Shell) lookup(path string) (*tree.Node, bool) {
	n, err := s.sess.Forest().Get(path)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return nil, false
	}
	return n, true
}

func (s *Shell) cmdTree(args []string) {
	forest := s.sess.Forest()
	if len(args) == 0 {
		fmt.Fprint(s.out, s.formatter.FormatForest(forest))
		return
	}
	if n, ok := s.lookup(args[0]); ok {
		fmt.Fprint(s.out, s.formatter.FormatTree(forest, n.ID()))
	}
}

func (s *Shell) cmdList(args []string) {
	forest := s.sess.Forest()
	nodes := forest.Roots()
	if len(args) > 0 {
		n, ok := s.lookup(args[0])
		if !ok {
			return
		}
		nodes = forest.Children(n.ID())
	}
	for _, n := range nodes {
		fmt.Fprintf(s.out, "  %s\n", s.formatter.FormatNode(n))
	}
}

func (s *Shell) cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: info <path>")
		return
	}
	n, ok := s.lookup(args[0])
	if !ok {
		return
	}

	fmt.Fprintf(s.out, "Path:        %s\n", n.Path())
	fmt.Fprintf(s.out, "Identifier:  %s\n", n.Identifier())
	fmt.Fprintf(s.out, "Kind:        %s\n", n.Kind())
	fmt.Fprintf(s.out, "UUID:        %s\n", n.UUID())
	if n.Datatype() != "" {
		fmt.Fprintf(s.out, "Datatype:    %s\n", n.Datatype())
	}
	if n.Unit() != "" {
		fmt.Fprintf(s.out, "Unit:        %s\n", n.Unit())
	}
	if n.Min() != nil || n.Max() != nil {
		fmt.Fprintf(s.out, "Range:       %v .. %v\n", n.Min(), n.Max())
	}
	if n.Description() != "" {
		fmt.Fprintf(s.out, "Description: %s\n", n.Description())
	}
	if n.Comment() != "" {
		fmt.Fprintf(s.out, "Comment:     %s\n", n.Comment())
	}
	forest := s.sess.Forest()
	if p, ok := forest.Parent(n.ID()); ok {
		fmt.Fprintf(s.out, "Parent:      %s\n", p.Path())
	}
	if d := forest.Descendants(n.ID()); len(d) > 0 {
		fmt.Fprintf(s.out, "Descendants: %d\n", len(d))
	}
}

func (s *Shell) cmdID(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: id <segment>")
		return
	}
	segment := tree.LastSegment(args[0])
	fmt.Fprintf(s.out, "%s -> %s", segment, s.ids.Generate(segment))
	if s.ids.IsReserved(strings.Join(identifier.Tokenize(segment), "")) {
		fmt.Fprint(s.out, " (reserved, marker applied)")
	}
	fmt.Fprintln(s.out)
}

func (s *Shell) cmdSubscribe(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: sub <path> [fields]")
		return
	}
	path := args[0]
	fields, ok := s.fields(args[1:], subscription.FieldValue|subscription.FieldActuatorTarget)
	if !ok {
		return
	}

	l := s.listener(path)
	added, err := s.sess.Subscribe(ctx, path, fields, l)
	switch {
	case err != nil:
		fmt.Fprintf(s.out, "Error: %v\n", err)
	case !added:
		fmt.Fprintf(s.out, "Already subscribed to %s (%s)\n", path, fields)
	default:
		fmt.Fprintf(s.out, "Subscribed to %s (%s)\n", path, fields)
	}
}

// listener returns the shell's listener for path, creating it on first use.
func (s *Shell) listener(path string) *subscription.FuncListener {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.listeners[path]; ok {
		return l
	}
	l := subscription.NewListener(
		func(u subscription.Update) error {
			s.printUpdate(path, u)
			return nil
		},
		func(err error) {
			fmt.Fprintf(s.out, "[%s] error: %v\n", path, err)
		},
	)
	s.listeners[path] = l
	return l
}

func (s *Shell) printUpdate(subscribed string, u subscription.Update) {
	unit := ""
	if n, ok := s.sess.Forest().Lookup(u.Path); ok {
		unit = n.Unit()
	}
	fmt.Fprintf(s.out, "[%s] %s %s = %s\n", subscribed, u.Path, u.Fields, s.formatter.FormatValue(u.Value, unit))
}

func (s *Shell) cmdUnsubscribe(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: unsub <path>")
		return
	}
	path := args[0]

	s.mu.Lock()
	l, ok := s.listeners[path]
	delete(s.listeners, path)
	s.mu.Unlock()
	if !ok {
		fmt.Fprintf(s.out, "Not subscribed to %s\n", path)
		return
	}

	if _, err := s.sess.Unsubscribe(ctx, path, l); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Unsubscribed from %s\n", path)
}

func (s *Shell) cmdSet(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(s.out, "Usage: set <path> <value> [fields]")
		return
	}
	n, ok := s.lookup(args[0])
	if !ok {
		return
	}
	fields, ok := s.fields(args[2:], subscription.FieldValue)
	if !ok {
		return
	}
	value, err := ParseValue(n.Datatype(), args[1])
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}

	if _, err := s.sess.Update(ctx, n.Path(), broker.Datapoint{Value: value}, fields); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "%s %s = %s\n", n.Path(), fields, s.formatter.FormatValue(value, n.Unit()))
}

func (s *Shell) cmdGet(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: get <path> [fields]")
		return
	}
	fields, ok := s.fields(args[1:], subscription.FieldValue)
	if !ok {
		return
	}

	resp, err := s.sess.Fetch(ctx, args[0], fields)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	forest := s.sess.Forest()
	for _, e := range resp.Entries {
		unit := ""
		if n, ok := forest.Lookup(e.Path); ok {
			unit = n.Unit()
		}
		if e.Value != nil {
			fmt.Fprintf(s.out, "%s = %s\n", e.Path, s.formatter.FormatValue(e.Value.Value, unit))
		}
		if e.ActuatorTarget != nil {
			fmt.Fprintf(s.out, "%s target = %s\n", e.Path, s.formatter.FormatValue(e.ActuatorTarget.Value, unit))
		}
		if m := e.Metadata; m != nil {
			fmt.Fprintf(s.out, "%s [%s %s %s]\n", e.Path, m.Kind, m.Datatype, m.Unit)
		}
	}
}

func (s *Shell) cmdRecent() {
	recent := s.sess.RecentlyUpdated()
	if len(recent) == 0 {
		fmt.Fprintln(s.out, "No updates yet")
		return
	}
	for _, p := range recent {
		fmt.Fprintf(s.out, "  %s\n", p)
	}
}

// fields parses an optional field mask argument.
func (s *Shell) fields(args []string, def subscription.FieldMask) (subscription.FieldMask, bool) {
	if len(args) == 0 {
		return def, true
	}
	m, err := subscription.ParseFieldMask(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return 0, false
	}
	return m, true
}
