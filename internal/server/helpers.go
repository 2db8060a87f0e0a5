package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-portfolio/contact"
)

type errorResponse struct {
	Error   string               `json:"error"`
	Message string               `json:"message,omitempty"`
	Issues  []contact.FieldIssue `json:"issues,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	var cooldown *contact.CooldownActiveError
	if errors.As(err, &cooldown) && cooldown.RetryAfter > 0 {
		seconds := int(cooldown.RetryAfter.Round(time.Second).Seconds())
		if seconds < 1 {
			seconds = 1
		}
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	var failed *contact.ValidationFailedError
	if errors.As(err, &failed) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Message: "submission has invalid fields",
			Issues:  failed.Issues,
		}
	}

	if errors.Is(err, contact.ErrCooldownActive) {
		return http.StatusTooManyRequests, errorResponse{
			Error:   "cooldown_active",
			Message: "please wait a moment before submitting again",
		}
	}

	// Deliberately vague: the sender only needs to know delivery did not
	// happen and how to reach out instead.
	if errors.Is(err, contact.ErrForwardFailed) {
		return http.StatusBadGateway, errorResponse{
			Error:   "forward_failed",
			Message: "your message could not be delivered, please email directly",
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: "something went wrong handling the submission",
	}
}

// artifactHandler serves one generated file from the output dir with a fixed
// content type.
func (s *Server) artifactHandler(name, contentType string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(s.cfg.OutputDir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write(data)
	})
}

// newStaticHandler fronts the output dir with preview-friendly headers and
// index.html resolution for directory URLs.
func newStaticHandler(outputDir string) http.Handler {
	fileServer := http.FileServer(http.Dir(outputDir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") && r.URL.Path != "/" {
			index := filepath.Join(outputDir, filepath.FromSlash(strings.TrimPrefix(r.URL.Path, "/")), "index.html")
			if _, err := os.Stat(index); os.IsNotExist(err) {
				http.NotFound(w, r)
				return
			}
		}
		// The preview always reflects the latest build.
		w.Header().Set("Cache-Control", "no-cache")
		fileServer.ServeHTTP(w, r)
	})
}
