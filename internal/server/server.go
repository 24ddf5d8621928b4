// Package server exposes a visualization session over HTTP.
//
// The server is the surface renderers and UI shells talk to: read endpoints
// for the current layout and per-node state, a focus endpoint as the sole
// mutation entry point for clicks, a snapshot endpoint for the producer, and
// a WebSocket feed pushing state changes and focus directives so renderers
// can react without polling.
//
// All mutation is serialized through the navigation controller; concurrent
// readers never observe partial state.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"

	apperrors "github.com/spanview/spanview/pkg/errors"
	"github.com/spanview/spanview/pkg/graphio"
	"github.com/spanview/spanview/pkg/layout"
	"github.com/spanview/spanview/pkg/nav"
	"github.com/spanview/spanview/pkg/vizstate"
)

// Event is one message on the subscriber feed.
type Event struct {
	Type    string `json:"type"`              // "state", "focus", or "snapshot"
	Op      string `json:"op,omitempty"`      // state events: "set", "clear", "reset"
	Tag     string `json:"tag,omitempty"`     // state events
	Indices []int  `json:"indices,omitempty"` // state events
	Present bool   `json:"present,omitempty"` // state events with op "set"
	Index   int    `json:"index,omitempty"`   // focus events: node to center on
	Nodes   int    `json:"nodes,omitempty"`   // snapshot events: new node count
}

// Server serves one visualization session.
type Server struct {
	controller *nav.Controller
	hub        *Hub
	logger     *log.Logger
}

// New creates a server around a navigation controller and wires the event
// feed: state store changes and focus directives are broadcast to
// subscribers as they happen.
func New(controller *nav.Controller, logger *log.Logger) *Server {
	s := &Server{
		controller: controller,
		hub:        NewHub(logger),
		logger:     logger,
	}

	controller.State().Subscribe(func(c vizstate.Change) {
		s.hub.Broadcast(stateEvent(c))
	})
	controller.AddFocusSink(func(d nav.FocusDirective) {
		s.hub.Broadcast(Event{Type: "focus", Index: d.Index})
	})

	return s
}

func stateEvent(c vizstate.Change) Event {
	e := Event{Type: "state", Indices: c.Indices}
	switch c.Op {
	case vizstate.OpSet:
		e.Op = "set"
		e.Tag = c.Tag.String()
		e.Present = c.Present
	case vizstate.OpClear:
		e.Op = "clear"
		e.Tag = c.Tag.String()
	case vizstate.OpReset:
		e.Op = "reset"
	}
	return e
}

// Hub returns the subscriber hub, e.g. for shutdown.
func (s *Server) Hub() *Hub { return s.hub }

// AnnounceSnapshot broadcasts a snapshot replacement to subscribers.
// Called by whoever replaced the snapshot (HTTP handler or file watcher).
func (s *Server) AnnounceSnapshot(nodeCount int) {
	s.hub.Broadcast(Event{Type: "snapshot", Nodes: nodeCount})
}

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/layout", s.handleLayout)
		r.Get("/stats", s.handleStats)
		r.Post("/snapshot", s.handleReplaceSnapshot)
		r.Route("/nodes/{index}", func(r chi.Router) {
			r.Get("/", s.handleNode)
			r.Get("/state", s.handleNodeState)
			r.Post("/focus", s.handleFocus)
			r.Post("/hover", s.handleHover)
		})
		r.Get("/events", s.hub.ServeWS)
	})

	return r
}

// nodeView is the JSON shape of one laid-out node.
type nodeView struct {
	Index    int      `json:"index"`
	Label    string   `json:"label,omitempty"`
	Width    int      `json:"width"`
	Parents  []int    `json:"parents,omitempty"`
	Children []int    `json:"children,omitempty"`
	Tier     string   `json:"tier"`
	Tags     []string `json:"tags,omitempty"`
}

func (s *Server) nodeView(l *layout.GraphLayout, index int) nodeView {
	n, _ := l.Node(index)
	var tags []string
	for _, t := range s.controller.State().Query(index) {
		tags = append(tags, t.String())
	}
	return nodeView{
		Index:    n.Index,
		Label:    n.Label,
		Width:    n.Width,
		Parents:  n.Parents,
		Children: n.Children,
		Tier:     l.Tier(index).String(),
		Tags:     tags,
	}
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	l := s.controller.Layout()
	if l == nil {
		writeError(w, http.StatusNotFound, apperrors.New(apperrors.ErrCodeNotFound, "no snapshot loaded"))
		return
	}

	indices := l.Indices()
	nodes := make([]nodeView, len(indices))
	for i, index := range indices {
		nodes[i] = s.nodeView(l, index)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"maxWidth": l.MaxWidth(),
		"nodes":    nodes,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	l := s.controller.Layout()
	if l == nil {
		writeError(w, http.StatusNotFound, apperrors.New(apperrors.ErrCodeNotFound, "no snapshot loaded"))
		return
	}

	tiers := make(map[string]int)
	atoms := 0
	for _, index := range l.Indices() {
		n, _ := l.Node(index)
		if n.IsAtom() {
			atoms++
		}
		tiers[l.Tier(index).String()]++
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"nodes":       l.NodeCount(),
		"atoms":       atoms,
		"compounds":   l.NodeCount() - atoms,
		"maxWidth":    l.MaxWidth(),
		"tiers":       tiers,
		"warnings":    l.Warnings(),
		"subscribers": s.hub.SubscriberCount(),
	})
}

func (s *Server) handleNode(w http.ResponseWriter, r *http.Request) {
	index, ok := s.indexParam(w, r)
	if !ok {
		return
	}
	l := s.controller.Layout()
	if l == nil || !l.Contains(index) {
		writeError(w, http.StatusNotFound, apperrors.New(apperrors.ErrCodeNodeNotFound, "node %d not in current layout", index))
		return
	}
	writeJSON(w, http.StatusOK, s.nodeView(l, index))
}

func (s *Server) handleNodeState(w http.ResponseWriter, r *http.Request) {
	index, ok := s.indexParam(w, r)
	if !ok {
		return
	}
	// Querying state is never an error, even for unknown indices.
	tags := []string{}
	for _, t := range s.controller.State().Query(index) {
		tags = append(tags, t.String())
	}
	writeJSON(w, http.StatusOK, map[string]any{"index": index, "tags": tags})
}

func (s *Server) handleFocus(w http.ResponseWriter, r *http.Request) {
	index, ok := s.indexParam(w, r)
	if !ok {
		return
	}
	if err := s.controller.FocusNode(r.Context(), index); err != nil {
		if errors.Is(err, nav.ErrNodeNotFound) {
			// Benign: a stale link clicked after a snapshot change.
			writeError(w, http.StatusNotFound, apperrors.Wrap(apperrors.ErrCodeNodeNotFound, err, "stale node reference"))
			return
		}
		writeError(w, http.StatusInternalServerError, apperrors.Wrap(apperrors.ErrCodeInternal, err, "focus failed"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHover(w http.ResponseWriter, r *http.Request) {
	index, ok := s.indexParam(w, r)
	if !ok {
		return
	}
	if err := s.controller.HoverNode(index); err != nil {
		writeError(w, http.StatusNotFound, apperrors.Wrap(apperrors.ErrCodeNodeNotFound, err, "stale node reference"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReplaceSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := graphio.JSONCodec{}.Decode(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "malformed snapshot document"))
		return
	}

	built, err := s.controller.ReplaceSnapshot(r.Context(), snapshot)
	if err != nil {
		// Structural defect: the whole snapshot is rejected and the previous
		// layout keeps serving.
		writeError(w, http.StatusUnprocessableEntity, apperrors.Wrap(apperrors.ErrCodeInvalidSnapshot, err, "snapshot rejected"))
		return
	}

	s.AnnounceSnapshot(built.NodeCount())
	writeJSON(w, http.StatusOK, map[string]any{
		"nodes":    built.NodeCount(),
		"maxWidth": built.MaxWidth(),
		"warnings": built.Warnings(),
	})
}

func (s *Server) indexParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		writeError(w, http.StatusBadRequest, apperrors.New(apperrors.ErrCodeInvalidIndex, "index must be a non-negative integer"))
		return 0, false
	}
	return index, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Too late for a status change if encoding fails.
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err *apperrors.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"code":  string(err.Code),
		"error": apperrors.UserMessage(err),
	})
}

// Run serves the router until the context is canceled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Router()}

	go func() {
		<-ctx.Done()
		s.hub.Close()
		srv.Shutdown(context.Background())
	}()

	s.logger.Info("serving visualization session", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
