package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/iyulab/fileflux/internal/chunk"
	"github.com/iyulab/fileflux/internal/chunker"
	"github.com/iyulab/fileflux/internal/document"
	"github.com/iyulab/fileflux/internal/pipeline"
)

// optionsPayload carries per-request overrides of the configured chunking
// defaults. Pointer fields distinguish "unset" from zero.
type optionsPayload struct {
	MaxChunkSize        *int  `json:"max_chunk_size"`
	OverlapSize         *int  `json:"overlap_size"`
	MaxParentChunkSize  *int  `json:"max_parent_chunk_size"`
	MaxChildChunkSize   *int  `json:"max_child_chunk_size"`
	MinSectionLength    *int  `json:"min_section_length"`
	MaxHierarchyDepth   *int  `json:"max_hierarchy_depth"`
	CreateSummaryChunks *bool `json:"create_summary_chunks"`

	Extra map[string]string `json:"extra"`
}

func (p *optionsPayload) apply(base chunk.Options) chunk.Options {
	if p == nil {
		return base
	}
	if p.MaxChunkSize != nil {
		base.MaxChunkSize = *p.MaxChunkSize
	}
	if p.OverlapSize != nil {
		base.OverlapSize = *p.OverlapSize
	}
	if p.MaxParentChunkSize != nil {
		base.MaxParentChunkSize = *p.MaxParentChunkSize
	}
	if p.MaxChildChunkSize != nil {
		base.MaxChildChunkSize = *p.MaxChildChunkSize
	}
	if p.MinSectionLength != nil {
		base.MinSectionLength = *p.MinSectionLength
	}
	if p.MaxHierarchyDepth != nil {
		base.MaxHierarchyDepth = *p.MaxHierarchyDepth
	}
	if p.CreateSummaryChunks != nil {
		base.CreateSummaryChunks = *p.CreateSummaryChunks
	}
	if len(p.Extra) > 0 {
		base.Extra = p.Extra
	}
	return base.WithDefaults()
}

type chunkRequest struct {
	Content  string          `json:"content"`
	Title    string          `json:"title"`
	Strategy string          `json:"strategy"`
	Options  *optionsPayload `json:"options"`
}

// chunkView is a Chunk plus its untyped property bag, for consumers that
// read generic metadata.
type chunkView struct {
	chunk.Chunk
	Props map[string]any `json:"props"`
}

func chunkViews(chunks []chunk.Chunk) []chunkView {
	views := make([]chunkView, len(chunks))
	for i := range chunks {
		views[i] = chunkView{Chunk: chunks[i], Props: chunks[i].Props()}
	}
	return views
}

func (s *Server) strategyFor(name string) chunker.Strategy {
	if name == "" {
		name = s.cfg.DefaultStrategy
	}
	return chunker.ForName(name)
}

func (s *Server) handleChunk(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	var req chunkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	opts := req.Options.apply(s.cfg.Chunking)
	strategy := s.strategyFor(req.Strategy)

	doc := document.New(req.Content)
	doc.Metadata.Title = req.Title

	chunks, err := strategy.Chunk(r.Context(), doc, opts)
	if err != nil {
		if errors.Is(err, document.ErrNilDocument) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	groupID := ""
	if len(chunks) > 0 {
		groupID = chunks[0].GroupID
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"strategy": strategy.Name(),
		"group_id": groupID,
		"count":    len(chunks),
		"chunks":   chunkViews(chunks),
	})
}

type estimateRequest struct {
	Content  string          `json:"content"`
	Strategy string          `json:"strategy"`
	Options  *optionsPayload `json:"options"`
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	var req estimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	opts := req.Options.apply(s.cfg.Chunking)
	strategy := s.strategyFor(req.Strategy)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"strategy":         strategy.Name(),
		"estimated_chunks": strategy.EstimateChunkCount(req.Content, opts),
	})
}

type batchRequest struct {
	Documents []struct {
		Name    string `json:"name"`
		Content string `json:"content"`
		Title   string `json:"title"`
	} `json:"documents"`
	Strategy string          `json:"strategy"`
	Options  *optionsPayload `json:"options"`
}

func (s *Server) handleChunkBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Documents) == 0 {
		jsonError(w, "at least one document is required", http.StatusBadRequest)
		return
	}

	opts := req.Options.apply(s.cfg.Chunking)

	inputs := make([]pipeline.Input, len(req.Documents))
	for i, d := range req.Documents {
		doc := document.New(d.Content)
		doc.Metadata.Title = d.Title
		inputs[i] = pipeline.Input{Name: d.Name, Doc: doc}
	}

	runner := pipeline.NewRunner(s.strategyFor(req.Strategy), s.cfg.BatchWorkers, s.log)
	results, err := runner.Run(r.Context(), inputs, opts)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]map[string]any, len(results))
	for i, res := range results {
		entry := map[string]any{"name": res.Name}
		if res.Err != nil {
			entry["error"] = res.Err.Error()
		} else {
			entry["count"] = len(res.Chunks)
			entry["chunks"] = chunkViews(res.Chunks)
		}
		out[i] = entry
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"results": out})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
