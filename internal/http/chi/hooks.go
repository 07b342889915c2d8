package chi

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/marcelsud/hookbin/hook"
)

/* HTTP layer DTOs for the hook API
 * Separate from domain entities to avoid leaking internal structure
 */

// captureResponse is returned for every accepted delivery
type captureResponse struct {
	OK      bool   `json:"ok"`
	Slug    string `json:"slug"`
	EntryID string `json:"entryId"`
	Hits    int64  `json:"hits"`
}

// createHookRequest is the body of POST /api/hooks
type createHookRequest struct {
	Slug        string          `json:"slug" validate:"required,slug"`
	Description string          `json:"description" validate:"max=500"`
	Metadata    json.RawMessage `json:"metadata"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// postCapture handles POST /hooks/{slug}
func postCapture(hookService hook.UseCase, maxBodyBytes int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slug, ok := slugParam(w, r)
		if !ok {
			return
		}

		body, err := readBody(w, r, maxBodyBytes)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeJSONError(w, http.StatusRequestEntityTooLarge, "payload too large")
				return
			}
			writeJSONError(w, http.StatusBadRequest, "failed to read request body")
			return
		}

		entry, sum, err := hookService.Capture(r.Context(), slug, body)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusAccepted, captureResponse{
			OK:      true,
			Slug:    sum.Slug,
			EntryID: entry.ID,
			Hits:    sum.Hits,
		})
	})
}

// getHooks handles GET /api/hooks
func getHooks(hookService hook.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		all, err := hookService.List(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, all)
	})
}

// postHooks handles POST /api/hooks
func postHooks(hookService hook.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req createHookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		req.Slug = strings.ToLower(strings.TrimSpace(req.Slug))
		req.Description = strings.TrimSpace(req.Description)
		if err := validateStruct(req); err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		metadata, err := decodeMetadata(req.Metadata)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}

		h, err := hookService.Create(r.Context(), hook.CreateOptions{
			Slug:        req.Slug,
			Description: req.Description,
			Metadata:    metadata,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, h)
	})
}

// getHook handles GET /api/hooks/{slug}
func getHook(hookService hook.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slug, ok := slugParam(w, r)
		if !ok {
			return
		}
		h, err := hookService.Get(r.Context(), slug)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, h)
	})
}

// deleteHook handles DELETE /api/hooks/{slug}
func deleteHook(hookService hook.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slug, ok := slugParam(w, r)
		if !ok {
			return
		}
		if err := hookService.Delete(r.Context(), slug); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

// resetHook handles POST /api/hooks/{slug}/reset
func resetHook(hookService hook.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slug, ok := slugParam(w, r)
		if !ok {
			return
		}
		h, err := hookService.Reset(r.Context(), slug)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, h)
	})
}

// getEntries handles GET /api/entries?limit=
func getEntries(hookService hook.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				writeJSONError(w, http.StatusBadRequest, "limit must be an integer")
				return
			}
			limit = n
		}

		entries, err := hookService.Recent(r.Context(), limit)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, entries)
	})
}

// getStats handles GET /api/stats
func getStats(hookService hook.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st, err := hookService.Stats(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	})
}

// slugParam normalizes the {slug} path segment, answering 400 when it is not a valid slug
func slugParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	slug, err := hook.NormalizeSlug(chi.URLParam(r, "slug"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return slug, true
}

func readBody(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
}

// decodeMetadata accepts an object, null or nothing
func decodeMetadata(raw json.RawMessage) (map[string]any, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return map[string]any{}, nil
	}
	if !strings.HasPrefix(trimmed, "{") {
		return nil, hook.ErrInvalidMetadata
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(trimmed), &m); err != nil {
		return nil, hook.ErrInvalidMetadata
	}
	return m, nil
}

// writeServiceError maps domain errors onto status codes
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, hook.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, hook.ErrConflict):
		writeJSONError(w, http.StatusConflict, err.Error())
	case errors.Is(err, hook.ErrInvalidSlug), errors.Is(err, hook.ErrInvalidMetadata):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	default:
		writeJSONError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
