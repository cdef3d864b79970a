package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tsawler/folio/document"
	"github.com/tsawler/folio/model"
)

// errNotTranslatable marks a key whose element has no translatable
// text run.
var errNotTranslatable = errors.New("element cannot be translated")

func (s *Server) handleToggleVisible(w http.ResponseWriter, r *http.Request) {
	s.toggle(w, r, func(d *document.Document, key int) bool { return d.ToggleVisible(key) })
}

func (s *Server) handleToggleBody(w http.ResponseWriter, r *http.Request) {
	s.toggle(w, r, func(d *document.Document, key int) bool { return d.ToggleBody(key) })
}

func (s *Server) handleToggleContinuation(w http.ResponseWriter, r *http.Request) {
	s.toggle(w, r, func(d *document.Document, key int) bool { return d.ToggleContinuation(key) })
}

func (s *Server) toggle(w http.ResponseWriter, r *http.Request, op func(d *document.Document, key int) bool) {
	id := chi.URLParam(r, "docID")
	key, err := keyParam(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var e *model.Element
	err = s.store.Mutate(id, func(d *document.Document) (bool, error) {
		if !op(d, key) {
			return false, nil
		}
		e = d.Element(key)
		return true, nil
	})
	if err != nil {
		storeError(w, err)
		return
	}
	if e == nil {
		jsonError(w, "element not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"key": key, "element": e})
}

func (s *Server) handleSplit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "docID")
	key, err := keyParam(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var split bool
	err = s.store.Mutate(id, func(d *document.Document) (bool, error) {
		split = d.Split(key)
		return split, nil
	})
	if err != nil {
		storeError(w, err)
		return
	}
	if !split {
		jsonError(w, "element cannot be split", http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"split": true})
}

func (s *Server) handleMerge(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "docID")

	var req struct {
		Page int    `json:"page"`
		Keys []int  `json:"keys"`
		Mode string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	mode, err := parseMergeMode(req.Mode)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var merged bool
	err = s.store.Mutate(id, func(d *document.Document) (bool, error) {
		merged = d.Merge(req.Page-1, req.Keys, mode)
		return merged, nil
	})
	if err != nil {
		storeError(w, err)
		return
	}
	if !merged {
		jsonError(w, "merge needs at least two mergeable elements on the page", http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"merged": true})
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "docID")

	var req struct {
		Pivot       int    `json:"pivot"`
		Moved       int    `json:"moved"`
		Page        int    `json:"page"`
		Disposition string `json:"disposition"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	disp, err := parseDisposition(req.Disposition)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var moved bool
	err = s.store.Mutate(id, func(d *document.Document) (bool, error) {
		moved = d.Move(req.Pivot, req.Moved, req.Page-1, disp)
		return moved, nil
	})
	if err != nil {
		storeError(w, err)
		return
	}
	if !moved {
		jsonError(w, "move needs visible in-margin pivot and moved elements on the page", http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"moved": true})
}

func (s *Server) handleSetMargin(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "docID")

	var req model.Rect
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.X1 < 0 || req.Y1 < 0 || req.X2 > 1 || req.Y2 > 1 || req.X1 >= req.X2 || req.Y1 >= req.Y2 {
		jsonError(w, "margin must satisfy 0 <= x1 < x2 <= 1 and 0 <= y1 < y2 <= 1", http.StatusBadRequest)
		return
	}

	err := s.store.Mutate(id, func(d *document.Document) (bool, error) {
		d.SetMargin(req)
		return true, nil
	})
	if err != nil {
		storeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"margin": req})
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	if s.translator == nil {
		jsonError(w, "no translation gateway configured", http.StatusServiceUnavailable)
		return
	}

	id := chi.URLParam(r, "docID")
	key, err := keyParam(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req struct {
		Source string `json:"source"`
		Target string `json:"target"`
	}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
	}
	source := req.Source
	if source == "" {
		source = s.cfg.SourceLanguage
	}
	target := req.Target
	if target == "" {
		target = s.cfg.TargetLanguage
	}

	// Resolve the run under the lock, call the gateway outside it, then
	// store the overlay. Keys are never reused, so a concurrent
	// structural edit at worst makes the final store a no-op.
	var run document.TextRun
	err = s.store.View(id, func(d *document.Document) error {
		if !d.CanBeTranslated(key) {
			return errNotTranslatable
		}
		r, ok := d.ChainedText(key)
		if !ok {
			return errNotTranslatable
		}
		run = r
		return nil
	})
	if err != nil {
		if errors.Is(err, errNotTranslatable) {
			jsonError(w, err.Error(), http.StatusConflict)
			return
		}
		storeError(w, err)
		return
	}

	translated, err := s.translator.Translate(r.Context(), run.Text, source, target)
	if err != nil {
		jsonError(w, "translation failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	err = s.store.Mutate(id, func(d *document.Document) (bool, error) {
		return d.SetTranslated(run.Key, translated), nil
	})
	if err != nil {
		storeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"key":        run.Key,
		"translated": translated,
	})
}

func keyParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "key")
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid element key %q", raw)
	}
	return n, nil
}

func parseMergeMode(mode string) (model.MergeMode, error) {
	switch mode {
	case "", "concat":
		return model.MergeConcat, nil
	case "join":
		return model.MergeJoin, nil
	}
	return 0, fmt.Errorf("invalid merge mode %q (want concat or join)", mode)
}

func parseDisposition(disp string) (document.Disposition, error) {
	switch disp {
	case "", "after":
		return document.After, nil
	case "before":
		return document.Before, nil
	}
	return 0, fmt.Errorf("invalid disposition %q (want before or after)", disp)
}
