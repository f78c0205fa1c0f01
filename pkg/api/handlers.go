package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/Sriram-PR/md-toc/pkg/process"
	"github.com/Sriram-PR/md-toc/pkg/utils"
)

const documentName = "request"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleTOC returns the submitted document with an up-to-date TOC. A
// text/markdown body is answered in kind; JSON bodies carry overrides.
func (s *Server) handleTOC(w http.ResponseWriter, r *http.Request) {
	req, raw, err := s.decodeRequest(w, r)
	if err != nil {
		jsonError(w, err.Error(), statusFor(err))
		return
	}

	processor, err := s.processorFor(req)
	if err != nil {
		jsonError(w, err.Error(), statusFor(err))
		return
	}
	output, err := processor.ProcessText(documentName, req.Markdown)
	if err != nil {
		jsonError(w, err.Error(), statusFor(err))
		return
	}

	if raw {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		io.WriteString(w, output)
		return
	}
	writeJSON(w, map[string]interface{}{
		"markdown": output,
		"changed":  output != req.Markdown,
	})
}

// handleOutline returns the filtered outline of the submitted document
func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	req, _, err := s.decodeRequest(w, r)
	if err != nil {
		jsonError(w, err.Error(), statusFor(err))
		return
	}

	processor, err := s.processorFor(req)
	if err != nil {
		jsonError(w, err.Error(), statusFor(err))
		return
	}
	forest, err := processor.Outline(documentName, req.Markdown)
	if err != nil {
		jsonError(w, err.Error(), statusFor(err))
		return
	}

	format := req.OutlineFormat()
	if v := r.URL.Query().Get("format"); v != "" {
		format = v
	}
	format = strings.ToLower(format)
	text, err := process.FormatOutline(process.OutlineEntries(forest), format, "")
	if err != nil {
		jsonError(w, err.Error(), statusFor(err))
		return
	}

	switch format {
	case process.OutlineFormatYAML:
		w.Header().Set("Content-Type", "application/yaml")
	case process.OutlineFormatTree:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	default:
		w.Header().Set("Content-Type", "application/json")
	}
	io.WriteString(w, text)
}

// decodeRequest reads a JSON TOCRequest, or a raw Markdown body when the
// content type is text/markdown or text/plain
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (process.TOCRequest, bool, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxDocumentBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "text/markdown", "text/plain":
		body, err := process.ReadInput(r.Body, documentName)
		if err != nil {
			return process.TOCRequest{}, true, err
		}
		return process.TOCRequest{Markdown: body}, true, nil
	default:
		var req process.TOCRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, false, fmt.Errorf("%w: invalid JSON body: %w", utils.ErrUsage, err)
		}
		return req, false, nil
	}
}

func (s *Server) processorFor(req process.TOCRequest) (*process.ContentProcessor, error) {
	opts := req.Apply(s.cfg.TOCOptions(s.comment))
	return process.NewContentProcessor(opts, s.cfg.Newlines, s.log)
}

// statusFor maps an error to the HTTP status reported to the client
func statusFor(err error) int {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, utils.ErrParsing):
		return http.StatusUnprocessableEntity
	case errors.Is(err, utils.ErrConfigValidation), errors.Is(err, utils.ErrUsage):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
