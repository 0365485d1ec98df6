package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/AjayBarot7035/secret-santa/internal/natsutil"
	"github.com/AjayBarot7035/secret-santa/types"
	"github.com/AjayBarot7035/secret-santa/wire"
)

// Response messages shared with existing clients.
const (
	msgSubmitted       = "Assignment request submitted successfully"
	msgStillProcessing = "Assignment still processing"
	msgNotFound        = "Assignment not found"
)

type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// handleGenerate generates synchronously with employee naming.
//
// 200 on success, 422 when the list is rejected or infeasible, 503 when the
// request deadline cut generation short, 400 for an undecodable body and 500
// for anything else.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}

	result, err := s.runner.Run(r.Context(), req)
	if err != nil {
		s.internalError(w, "generation failed", err)
		return
	}

	status := http.StatusOK
	switch {
	case interrupted(result):
		s.logger.Warn("generation interrupted", "attempts", result.Attempts, "error", result.Err)
		status = http.StatusServiceUnavailable
	case !result.Success:
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, wire.NewResponse(result, wire.GiverNamingEmployee))
}

// interrupted reports whether result failed because its context ended.
func interrupted(result types.Result) bool {
	return errors.Is(result.Err, context.DeadlineExceeded) || errors.Is(result.Err, context.Canceled)
}

// handleSubmit queues the request, or generates synchronously with santa
// naming when no submitter is configured. In that mode a stamped response is
// also kept in the results store, when there is one, so check_status can
// report it.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}

	if s.submitter == nil {
		result, err := s.runner.Run(r.Context(), req)
		if err != nil {
			s.internalError(w, "generation failed", err)
			return
		}
		if interrupted(result) {
			s.logger.Warn("generation interrupted", "attempts", result.Attempts, "error", result.Err)
			writeJSON(w, http.StatusServiceUnavailable, wire.NewResponse(result, wire.GiverNamingSanta))

			return
		}

		resp := wire.NewResponse(result, wire.GiverNamingSanta)
		if req.RequestID != "" {
			resp = resp.Stamp(req.RequestID, time.Now())
			if s.results != nil {
				if err := s.results.Put(r.Context(), req.RequestID, resp); err != nil {
					s.logger.Warn("storing dev-mode response failed", "request_id", req.RequestID, "error", err)
				}
			}
		}
		writeJSON(w, http.StatusOK, resp)

		return
	}

	id, err := s.submitter.Submit(r.Context(), req)
	if err != nil {
		if natsutil.IsConnectivityError(err) {
			s.logger.Warn("request submission unavailable", "error", err)
			writeError(w, http.StatusServiceUnavailable, "Message queue unavailable: "+err.Error())

			return
		}
		s.internalError(w, "request submission failed", err)

		return
	}

	s.logger.Info("request submitted", "request_id", id)
	writeJSON(w, http.StatusAccepted, wire.SubmitAck{Success: true, Message: msgSubmitted, RequestID: id})
}

// handleCheckStatus reports a stored response, or 202 while it is pending.
func (s *Server) handleCheckStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["request_id"]
	if s.results == nil {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}

	resp, ok, err := s.results.Get(r.Context(), id)
	if err != nil {
		s.logger.Error("status check failed", "request_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Error checking status: "+err.Error())

		return
	}
	if !ok {
		writeError(w, http.StatusAccepted, msgStillProcessing)
		return
	}

	writeJSON(w, http.StatusOK, wire.NewStatusResponse(resp))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, wire.Health{Status: "healthy", Service: s.service, Mode: s.Mode()})
}

// decode reads a JSON request body, writing a 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (wire.Request, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxRequestBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, wire.ErrorResponse(fmt.Errorf("%w: body exceeds %d bytes", types.ErrInvalidRequest, tooLarge.Limit)))
			return wire.Request{}, false
		}
		writeJSON(w, http.StatusBadRequest, wire.ErrorResponse(fmt.Errorf("%w: %w", types.ErrInvalidRequest, err)))

		return wire.Request{}, false
	}

	req, err := wire.DecodeRequest(body)
	if err != nil {
		s.logger.Debug("rejected undecodable request", "error", err)
		writeJSON(w, http.StatusBadRequest, wire.ErrorResponse(err))

		return wire.Request{}, false
	}

	return req, true
}

func (s *Server) internalError(w http.ResponseWriter, msg string, err error) {
	s.logger.Error(msg, "error", err)
	writeError(w, http.StatusInternalServerError, "Internal server error: "+err.Error())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Success: false, Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
