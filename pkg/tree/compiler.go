package tree

import (
	"log/slog"
	"time"

	"github.com/vss-go/vss-go/pkg/catalog"
	"github.com/vss-go/vss-go/pkg/identifier"
	"github.com/vss-go/vss-go/pkg/log"
)

// Options configures Compile.
type Options struct {
	// Identifiers derives node identifiers. The zero value uses the
	// default reserved names and marker.
	Identifiers identifier.Generator

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// EventLogger receives a CompileEvent on success. Optional.
	EventLogger log.Logger
}

// CompileCatalog compiles the accepted records of a parsed catalog.
func CompileCatalog(cat *catalog.Catalog, opts Options) (*Forest, error) {
	return Compile(cat.Records, opts)
}

// Compile builds a forest from records in declaration order.
//
// The first pass indexes every record by path and fails with
// ErrDuplicatePath if a path repeats. The second pass attaches each node to
// its parent; nodes whose parent path is not in the catalog become roots.
func Compile(records []catalog.Record, opts Options) (*Forest, error) {
	f := &Forest{
		nodes: make([]Node, len(records)),
		index: make(map[string]NodeID, len(records)),
	}

	for i, rec := range records {
		if err := catalog.ValidatePath(rec.Path); err != nil {
			return nil, &CompileError{Path: rec.Path, Line: rec.Line, Err: err}
		}
		if first, exists := f.index[rec.Path]; exists {
			err := &CompileError{
				Path:      rec.Path,
				Line:      rec.Line,
				FirstLine: records[first].Line,
				Err:       ErrDuplicatePath,
			}
			log.OrNoop(opts.EventLogger).Log(log.NewErrorEvent(log.LayerTree, rec.Path, err, "compile"))
			return nil, err
		}
		id := NodeID(i)
		f.index[rec.Path] = id
		f.nodes[i] = Node{
			id:         id,
			record:     rec,
			identifier: opts.Identifiers.Generate(LastSegment(rec.Path)),
			parent:     NoNode,
		}
	}

	for i := range f.nodes {
		n := &f.nodes[i]
		parentPath := ParentPath(n.Path())
		if parentID, ok := f.index[parentPath]; ok && parentPath != "" {
			n.parent = parentID
			f.nodes[parentID].children = append(f.nodes[parentID].children, n.id)
			continue
		}

		f.roots = append(f.roots, n.id)
		if parentPath != "" {
			f.detached = append(f.detached, n.id)
			f.warnings = append(f.warnings, &CompileError{
				Path: n.Path(),
				Line: n.record.Line,
				Err:  ErrUnresolvedParent,
			})
			if opts.Logger != nil {
				opts.Logger.Debug("detached root", "path", n.Path(), "parent", parentPath)
			}
		}
	}

	if opts.Logger != nil {
		opts.Logger.Debug("forest compiled",
			"nodes", len(f.nodes),
			"roots", len(f.roots),
			"detached", len(f.detached),
		)
	}
	log.OrNoop(opts.EventLogger).Log(log.Event{
		Timestamp: time.Now(),
		Layer:     log.LayerTree,
		Category:  log.CategoryCompile,
		Compile: &log.CompileEvent{
			Nodes:    len(f.nodes),
			Roots:    len(f.roots),
			Detached: f.DetachedPaths(),
		},
	})

	return f, nil
}
