package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/jonathan/onepager/internal/pipeline"
	"github.com/jonathan/onepager/internal/server/middleware"
	"github.com/jonathan/onepager/internal/strategy"
	"github.com/jonathan/onepager/internal/types"
	"github.com/sirupsen/logrus"
)

// PDFFilename is the attachment name of generated documents.
const PDFFilename = "one-pager-resume.pdf"

// Response headers describing how a document was fitted.
const (
	HeaderStrategy = "X-Onepager-Strategy"
	HeaderATSScore = "X-ATS-Score"
)

// CompletePayload is the final event of a streamed generation.
type CompletePayload struct {
	RequestID string `json:"requestId"`
	Strategy  string `json:"strategy"`
	ATSScore  int    `json:"atsScore"`
	Forced    bool   `json:"forced"`
	Pages     int    `json:"pages"`
	Filename  string `json:"filename"`
	PDF       string `json:"pdf"`
}

// handleGenerate renders the one-page PDF and returns it as an attachment.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateRequest
	if err := s.decode(w, r, &req); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	requestID := middleware.GetRequestID(r.Context())
	out, err := s.service.Generate(r.Context(), req, requestID)
	if err != nil {
		s.failed(r, err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+PDFFilename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(out.PDF)))
	w.Header().Set(HeaderStrategy, out.Strategy.String())
	w.Header().Set(HeaderATSScore, strconv.Itoa(out.ATSScore))
	w.Header().Set(middleware.RequestIDHeader, requestID)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out.PDF); err != nil {
		s.logger.WithError(err).WithField("request_id", requestID).Warn("Failed to write PDF response")
	}
}

// handleGenerateStream runs a generation and streams progress as Server-Sent Events.
func (s *Server) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateRequest
	if err := s.decode(w, r, &req); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	requestID := middleware.GetRequestID(r.Context())
	log := s.logger.WithField("request_id", requestID)
	stop := sse.KeepAlive(KeepAliveInterval)
	defer stop()

	ctx := pipeline.WithProgress(r.Context(), func(event pipeline.ProgressEvent) {
		if err := sse.WriteEvent(EventProgress, event); err != nil {
			log.WithError(err).Debug("Dropped progress event")
		}
	})

	out, err := s.service.Generate(ctx, req, requestID)
	if err != nil {
		s.failed(r, err)
		if err := sse.WriteError(err.Error()); err != nil {
			log.WithError(err).Debug("Failed to send error event")
		}
		return
	}

	err = sse.WriteComplete(CompletePayload{
		RequestID: requestID,
		Strategy:  out.Strategy.String(),
		ATSScore:  out.ATSScore,
		Forced:    out.Forced,
		Pages:     out.Pages,
		Filename:  PDFFilename,
		PDF:       base64.StdEncoding.EncodeToString(out.PDF),
	})
	if err != nil {
		log.WithError(err).Warn("Failed to send complete event")
	}
}

// handlePreview returns the optimized HTML for one strategy without exporting a PDF.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	strat := strategy.Normal
	if name := r.URL.Query().Get("strategy"); name != "" {
		parsed, err := strategy.ParseStrict(name)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, (&ErrValidation{Field: "strategy", Message: err.Error()}).Error())
			return
		}
		strat = parsed
	}

	var req types.GenerateRequest
	if err := s.decode(w, r, &req); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	result, err := s.service.Preview(r.Context(), req, strat, middleware.GetRequestID(r.Context()))
	if err != nil {
		s.failed(r, err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleScore returns the ATS score and lint issues of a résumé.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req types.ScoreRequest
	if err := s.decode(w, r, &req); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	result, err := s.service.Score(req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleTemplates lists the registered template names.
func (s *Server) handleTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string][]string{"templates": s.service.Templates()})
}

// decode reads a size-limited JSON body into dst. An empty body is reported as
// missing data so it maps to the same response as {"data": null}.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)

	var tooLarge *http.MaxBytesError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		return pipeline.ErrMissingData
	case errors.As(err, &tooLarge):
		return &ErrValidation{Field: "body", Message: "request body too large"}
	default:
		return &ErrValidation{Field: "body", Message: "invalid JSON"}
	}
}

func (s *Server) failed(r *http.Request, err error) {
	log := s.logger.WithFields(logrus.Fields{
		"path":       r.URL.Path,
		"request_id": middleware.GetRequestID(r.Context()),
	}).WithError(err)
	if HTTPStatus(err) < http.StatusInternalServerError {
		log.Info("Request rejected")
		return
	}
	log.Error("Generation failed")
}
