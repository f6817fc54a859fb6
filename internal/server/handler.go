package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"regexnfa/internal/compiler"
)

const (
	msgMissingKey   = "Invalid request: 'regex' key is missing."
	msgNotString    = "Invalid request: 'regex' must be a string."
	msgBodyTooLarge = "Invalid request: body too large."
	msgInternal     = "An unexpected server error occurred."
)

type errorResponse struct {
	Error string `json:"error"`
}

// handleRegexToNFA serves POST /api/regex-to-nfa with body {"regex": "..."}.
func (s *Server) handleRegexToNFA(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r)
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	var body map[string]json.RawMessage
	dec := json.NewDecoder(r.Body)
	err := dec.Decode(&body)
	if err == nil {
		err = expectEOF(dec)
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, log, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return
		}
		log.WithError(err).Debug("undecodable request body")
		writeError(w, log, http.StatusBadRequest, msgMissingKey)
		return
	}
	raw, ok := body["regex"]
	if !ok {
		writeError(w, log, http.StatusBadRequest, msgMissingKey)
		return
	}
	// null is treated as an empty pattern.
	var pattern *string
	if err := json.Unmarshal(raw, &pattern); err != nil {
		writeError(w, log, http.StatusBadRequest, msgNotString)
		return
	}
	var regex string
	if pattern != nil {
		regex = *pattern
	}
	if n := utf8.RuneCountInString(regex); n > s.cfg.MaxRegexLength {
		writeError(w, log, http.StatusBadRequest,
			fmt.Sprintf("Regex string is too long (limit %d characters).", s.cfg.MaxRegexLength))
		return
	}

	log = log.WithField("regex", regex)
	automaton, err := s.compile(regex)
	if err != nil {
		var inErr *compiler.InputError
		if errors.As(err, &inErr) {
			log.WithError(err).Debug("rejected pattern")
			writeError(w, log, http.StatusBadRequest, inErr.Error())
			return
		}
		log.WithError(err).Error("compile failed")
		writeError(w, log, http.StatusInternalServerError, msgInternal)
		return
	}
	log.WithFields(logrus.Fields{
		"states":      len(automaton.States()),
		"transitions": len(automaton.Transitions()),
	}).Debug("compiled pattern")
	writeJSON(w, log, http.StatusOK, automaton)
}

// expectEOF rejects anything but whitespace after the request object.
func expectEOF(dec *json.Decoder) error {
	_, err := dec.Token()
	switch {
	case errors.Is(err, io.EOF):
		return nil
	case err != nil:
		return err
	default:
		return errors.New("trailing data after request body")
	}
}

func writeError(w http.ResponseWriter, log logrus.FieldLogger, status int, msg string) {
	writeJSON(w, log, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, log logrus.FieldLogger, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.WithError(err).Error("encoding response")
		status = http.StatusInternalServerError
		data, _ = json.Marshal(errorResponse{Error: msgInternal})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(data, '\n')); err != nil {
		log.WithError(err).Debug("writing response")
	}
}
