package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tsawler/folio/document"
	"github.com/tsawler/folio/export"
	"github.com/tsawler/folio/ingest"
	"github.com/tsawler/folio/internal/store"
	"github.com/tsawler/folio/model"
)

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	filename := filepath.Base(header.Filename)
	format := ingest.DetectFormat(filename, data)
	if format == ingest.FormatUnknown {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	id := sanitizeID(r.FormValue("id"))
	if id == "" {
		id = sanitizeID(strings.TrimSuffix(filename, filepath.Ext(filename)))
	}
	if id == "" {
		jsonError(w, "could not derive a document id; pass an id form field", http.StatusBadRequest)
		return
	}

	ctx, err := s.ingest(r, format, filename, data)
	if err != nil {
		if errors.Is(err, ingest.ErrOCRNotEnabled) {
			jsonError(w, "this build has no OCR support", http.StatusNotImplemented)
			return
		}
		jsonError(w, "ingest failed: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	d, err := s.store.Create(id, ctx)
	if err != nil {
		jsonError(w, "store failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"id":     id,
		"format": format.String(),
		"pages":  d.PageCount(),
	})
}

// ingest materializes a context from the uploaded bytes. File-based
// ingesters read from a temp file; scanned images stay in memory.
func (s *Server) ingest(r *http.Request, format ingest.Format, filename string, data []byte) (*model.Context, error) {
	switch format {
	case ingest.FormatPDF, ingest.FormatDOCX:
		tmp, err := os.CreateTemp("", "folio-upload-*"+filepath.Ext(filename))
		if err != nil {
			return nil, err
		}
		defer os.Remove(tmp.Name())
		if _, err := tmp.Write(data); err != nil {
			tmp.Close()
			return nil, err
		}
		if err := tmp.Close(); err != nil {
			return nil, err
		}

		var ing ingest.Ingester
		if format == ingest.FormatPDF {
			ing = &ingest.PDF{Path: tmp.Name(), RowTolerance: s.cfg.RowTolerance}
		} else {
			ing = &ingest.DOCX{Path: tmp.Name()}
		}
		return ing.Ingest(r.Context())

	case ingest.FormatImage:
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode image: %w", err)
		}
		ing := &ingest.Scanned{
			Pages: []ingest.PageImage{{
				Data:   data,
				Width:  float64(cfg.Width),
				Height: float64(cfg.Height),
			}},
			Language:      s.cfg.OCRLanguage,
			UpscaleFactor: float64(s.cfg.OCRUpscale),
		}
		return ing.Ingest(r.Context())
	}
	return nil, fmt.Errorf("unsupported format %s", format)
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"documents": s.store.List()})
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "docID")
	if err := s.store.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, "document not found", http.StatusNotFound)
			return
		}
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDocumentInfo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "docID")

	type pageInfo struct {
		Number int     `json:"number"`
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	}
	var resp struct {
		ID     string     `json:"id"`
		Margin model.Rect `json:"margin"`
		Pages  []pageInfo `json:"pages"`
	}

	err := s.store.View(id, func(d *document.Document) error {
		resp.ID = id
		resp.Margin = d.Margin()
		for i := 0; i < d.PageCount(); i++ {
			wpx, hpx := d.PageExtent(i)
			resp.Pages = append(resp.Pages, pageInfo{Number: i + 1, Width: wpx, Height: hpx})
		}
		return nil
	})
	if err != nil {
		storeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleDocumentText(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "docID")

	var text string
	err := s.store.View(id, func(d *document.Document) error {
		text = d.DocumentText()
		return nil
	})
	if err != nil {
		storeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, text)
}

func (s *Server) handlePageText(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "docID")
	page, err := pageParam(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var text string
	var pages int
	err = s.store.View(id, func(d *document.Document) error {
		pages = d.PageCount()
		text = d.PageText(page)
		return nil
	})
	if err != nil {
		storeError(w, err)
		return
	}
	if page < 0 || page >= pages {
		jsonError(w, "page out of range", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, text)
}

func (s *Server) handlePageElements(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "docID")
	page, err := pageParam(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	type entry struct {
		Key       int            `json:"key"`
		Element   *model.Element `json:"element"`
		ChainHead int            `json:"chain_head"`
		IsHead    bool           `json:"is_head"`
	}
	var entries []entry
	var pages int
	err = s.store.View(id, func(d *document.Document) error {
		pages = d.PageCount()
		if page < 0 || page >= pages {
			return nil
		}
		d.Walk(func(key int, e *model.Element) bool {
			if e.Page != page+1 {
				return true
			}
			ent := entry{Key: key, Element: e, ChainHead: -1}
			if head, ok := d.ChainHead(key); ok {
				ent.ChainHead = head
				ent.IsHead = head == key
			}
			entries = append(entries, ent)
			return true
		})
		return nil
	})
	if err != nil {
		storeError(w, err)
		return
	}
	if page < 0 || page >= pages {
		jsonError(w, "page out of range", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"elements": entries})
}

func (s *Server) handleExportMarkdown(w http.ResponseWriter, r *http.Request) {
	s.export(w, r, "text/markdown; charset=utf-8", export.Markdown)
}

func (s *Server) handleExportHTML(w http.ResponseWriter, r *http.Request) {
	s.export(w, r, "text/html; charset=utf-8", export.HTML)
}

func (s *Server) export(w http.ResponseWriter, r *http.Request, contentType string, render func(*document.Document, string) string) {
	id := chi.URLParam(r, "docID")
	title := r.URL.Query().Get("title")
	if title == "" {
		title = id
	}

	var out string
	err := s.store.View(id, func(d *document.Document) error {
		out = render(d, title)
		return nil
	})
	if err != nil {
		storeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	io.WriteString(w, out)
}

func pageParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "page")
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid page %q", raw)
	}
	// Pages are 1-based on the wire, 0-based internally.
	return n - 1, nil
}

func storeError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	jsonError(w, err.Error(), http.StatusInternalServerError)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// sanitizeID reduces a candidate document ID to letters, digits,
// dashes, and underscores so IDs stay safe as file names.
func sanitizeID(id string) string {
	var b strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '.':
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "_")
}
