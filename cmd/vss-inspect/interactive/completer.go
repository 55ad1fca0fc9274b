package interactive

import (
	"github.com/chzyer/readline"

	"github.com/vss-go/vss-go/pkg/tree"
)

// newCompleter completes command names and catalog paths.
func newCompleter(forest *tree.Forest) *readline.PrefixCompleter {
	paths := func(string) []string {
		if forest == nil {
			return nil
		}
		nodes := forest.Nodes()
		out := make([]string, 0, len(nodes))
		for _, n := range nodes {
			out = append(out, n.Path())
		}
		return out
	}

	withPath := func(name string) readline.PrefixCompleterInterface {
		return readline.PcItem(name, readline.PcItemDynamic(paths))
	}

	return readline.NewPrefixCompleter(
		withPath("tree"),
		withPath("ls"),
		withPath("info"),
		readline.PcItem("id"),
		withPath("sub"),
		withPath("unsub"),
		withPath("set"),
		withPath("get"),
		readline.PcItem("recent"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}
