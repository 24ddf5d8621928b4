// Package nav drives navigation over a hypergraph visualization session.
//
// A [Controller] owns the current [layout.GraphLayout] and its
// [vizstate.Store]. UI shells route clicks on parent/child references to
// [Controller.FocusNode]; snapshot producers deliver new snapshots through
// [Controller.ReplaceSnapshot]. Renderers read the layout and state, and
// receive focus directives through registered sinks so they can center the
// viewport on the focused node.
package nav

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/spanview/spanview/pkg/hypergraph"
	"github.com/spanview/spanview/pkg/layout"
	"github.com/spanview/spanview/pkg/observability"
	"github.com/spanview/spanview/pkg/vizstate"
)

// ErrNodeNotFound is returned when a requested index is not part of the
// current layout, typically a stale reference rendered before a snapshot
// change pruned the node. It is a benign, expected condition: callers log it
// and leave the visualization state untouched.
var ErrNodeNotFound = errors.New("node not found in current layout")

// FocusDirective asks the external renderer to center the viewport on a node.
type FocusDirective struct {
	Index int
}

// FocusFunc receives focus directives. Sinks run synchronously on the
// goroutine that called FocusNode.
type FocusFunc func(FocusDirective)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller's logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithFocusSink registers a focus directive sink. May be given repeatedly;
// sinks are invoked in registration order.
func WithFocusSink(fn FocusFunc) Option {
	return func(c *Controller) { c.sinks = append(c.sinks, fn) }
}

// Controller resolves navigation requests against the current layout and
// drives the visualization state store. One controller owns one
// visualization session: the layout and state store are mutated only through
// it, while any number of renderer subscribers read concurrently.
type Controller struct {
	mu     sync.RWMutex
	layout *layout.GraphLayout
	state  *vizstate.Store
	sinks  []FocusFunc
	logger *log.Logger
}

// New creates a controller around a state store. A nil store is replaced
// with a fresh empty one. The controller starts without a layout; deliver
// one with [Controller.ReplaceSnapshot].
func New(state *vizstate.Store, opts ...Option) *Controller {
	if state == nil {
		state = vizstate.NewStore()
	}
	c := &Controller{
		state:  state,
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	state.Subscribe(func(ch vizstate.Change) {
		if ch.Op == vizstate.OpReset {
			observability.State().OnReset(context.Background())
			return
		}
		observability.State().OnTagChange(context.Background(), ch.Tag.String(), len(ch.Indices), ch.Present)
	})

	return c
}

// State returns the session's visualization state store.
func (c *Controller) State() *vizstate.Store { return c.state }

// AddFocusSink registers an additional focus directive sink after
// construction, e.g. when a renderer attaches to a running session.
func (c *Controller) AddFocusSink(fn FocusFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sinks = append(c.sinks, fn)
}

// Layout returns the current layout, or nil before the first snapshot.
func (c *Controller) Layout() *layout.GraphLayout {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.layout
}

// ReplaceSnapshot builds a layout from the snapshot and installs it,
// resetting all visualization state so no stale index lingers. If the build
// fails the previous layout is retained unchanged and the error is returned
// to the caller; nothing is partially replaced. The newest snapshot always
// wins wholesale - layouts are never merged.
func (c *Controller) ReplaceSnapshot(ctx context.Context, snapshot hypergraph.Snapshot) (*layout.GraphLayout, error) {
	observability.Layout().OnBuildStart(ctx, len(snapshot))
	start := time.Now()

	built, err := layout.Build(snapshot)
	if err != nil {
		observability.Layout().OnBuildComplete(ctx, 0, time.Since(start), err)
		c.logger.Warn("snapshot rejected, keeping previous layout", "err", err)
		return nil, err
	}
	observability.Layout().OnBuildComplete(ctx, built.NodeCount(), time.Since(start), nil)

	c.mu.Lock()
	c.layout = built
	c.mu.Unlock()
	c.state.Reset()

	for _, w := range built.Warnings() {
		c.logger.Warn("snapshot warning", "detail", w)
	}
	c.logger.Info("snapshot replaced",
		"nodes", built.NodeCount(), "maxWidth", built.MaxWidth())
	observability.Navigation().OnSnapshotReplaced(ctx, built.NodeCount())

	return built, nil
}

// FocusNode selects the node and signals the renderer to center on it.
//
// Selection is exclusive across the whole graph: any previously selected
// node is deselected first. Re-focusing the already selected node leaves the
// state unchanged but still emits the directive so the renderer can
// re-center. A stale index returns [ErrNodeNotFound] with the state
// untouched.
func (c *Controller) FocusNode(ctx context.Context, index int) error {
	c.mu.RLock()
	current := c.layout
	sinks := slices.Clone(c.sinks)
	c.mu.RUnlock()

	if current == nil || !current.Contains(index) {
		observability.Navigation().OnFocus(ctx, index, false)
		c.logger.Debug("focus on absent node ignored", "index", index)
		return fmt.Errorf("node %d: %w", index, ErrNodeNotFound)
	}

	if others := without(c.state.Nodes(vizstate.TagSelected), index); len(others) > 0 {
		c.state.SetPath(others, vizstate.TagSelected, false)
	}
	c.state.SetTag(index, vizstate.TagSelected, true)

	observability.Navigation().OnFocus(ctx, index, true)
	c.logger.Debug("focused node", "index", index)

	directive := FocusDirective{Index: index}
	for _, sink := range sinks {
		sink(directive)
	}
	return nil
}

// Selected returns the currently selected node index, or false when nothing
// is selected.
func (c *Controller) Selected() (int, bool) {
	selected := c.state.Nodes(vizstate.TagSelected)
	if len(selected) == 0 {
		return 0, false
	}
	return selected[0], true
}

// HoverNode moves the hover tag to the node, clearing it elsewhere.
// A stale index returns [ErrNodeNotFound] with the state untouched.
func (c *Controller) HoverNode(index int) error {
	c.mu.RLock()
	current := c.layout
	c.mu.RUnlock()

	if current == nil || !current.Contains(index) {
		return fmt.Errorf("node %d: %w", index, ErrNodeNotFound)
	}

	if others := without(c.state.Nodes(vizstate.TagHovered), index); len(others) > 0 {
		c.state.SetPath(others, vizstate.TagHovered, false)
	}
	c.state.SetTag(index, vizstate.TagHovered, true)
	return nil
}

// ClearHover removes the hover tag from every node.
func (c *Controller) ClearHover() {
	c.state.ClearTag(vizstate.TagHovered)
}

// HighlightPath replaces the active-path highlight with the given node
// chain. Every index must exist in the current layout; on the first stale
// index the call fails with [ErrNodeNotFound] and the state is untouched.
func (c *Controller) HighlightPath(indices []int) error {
	c.mu.RLock()
	current := c.layout
	c.mu.RUnlock()

	for _, index := range indices {
		if current == nil || !current.Contains(index) {
			return fmt.Errorf("node %d: %w", index, ErrNodeNotFound)
		}
	}

	c.state.ClearTag(vizstate.TagOnActivePath)
	c.state.SetPath(indices, vizstate.TagOnActivePath, true)
	return nil
}

// ClearHighlight removes the active-path highlight from every node.
func (c *Controller) ClearHighlight() {
	c.state.ClearTag(vizstate.TagOnActivePath)
}

// MarkSearchMatches replaces the search-match tag set with the given
// indices. Indices absent from the current layout are skipped quietly, since
// search results may briefly outlive a snapshot change.
func (c *Controller) MarkSearchMatches(indices []int) {
	c.mu.RLock()
	current := c.layout
	c.mu.RUnlock()

	var present []int
	for _, index := range indices {
		if current != nil && current.Contains(index) {
			present = append(present, index)
		}
	}

	c.state.ClearTag(vizstate.TagSearchMatch)
	c.state.SetPath(present, vizstate.TagSearchMatch, true)
}

// AncestorPath returns a chain of indices from a root to the node, following
// the first listed parent at every step. The node itself is the final
// element. A stale index returns [ErrNodeNotFound].
func (c *Controller) AncestorPath(index int) ([]int, error) {
	c.mu.RLock()
	current := c.layout
	c.mu.RUnlock()

	if current == nil || !current.Contains(index) {
		return nil, fmt.Errorf("node %d: %w", index, ErrNodeNotFound)
	}

	// Parent links are producer-supplied and not validated as the inverse of
	// child edges, so guard against loops.
	seen := make(map[int]bool)
	var path []int
	for !seen[index] {
		seen[index] = true
		path = append(path, index)
		n, _ := current.Node(index)
		if len(n.Parents) == 0 {
			break
		}
		index = n.Parents[0]
	}
	slices.Reverse(path)
	return path, nil
}

func without(indices []int, index int) []int {
	return slices.DeleteFunc(slices.Clone(indices), func(i int) bool { return i == index })
}
