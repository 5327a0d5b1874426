// Package api exposes the resume service over HTTP and MCP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kalambet/resumeforge/internal/importer"
	"github.com/kalambet/resumeforge/internal/render"
	"github.com/kalambet/resumeforge/internal/resume"
	"github.com/kalambet/resumeforge/internal/score"
	"github.com/kalambet/resumeforge/internal/storage"
)

const maxRequestBodySize = 1 << 20 // 1MB
const maxImportBodySize = 10 << 20 // 10MB

// Drafter generates a final resume text from a structured profile.
type Drafter interface {
	Draft(ctx context.Context, p *resume.Profile, opts resume.Options) (string, error)
}

// Scorer rates a resume text; a nil result means scoring failed.
type Scorer interface {
	Score(ctx context.Context, resumeText, jobDesc, targetRole, skillsText string) *score.Result
}

// Deps holds the dependencies of the HTTP API.
type Deps struct {
	Store   *storage.Store
	Drafter Drafter
	Scorer  Scorer
	Token   string

	// DefaultTemplate and DefaultTheme apply when a request doesn't
	// name one.
	DefaultTemplate string
	DefaultTheme    string
}

// NewHandler returns the HTTP API. Everything except /health requires
// bearer auth.
func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(deps.Token))

		r.Post("/resumes", handleDraft(deps))
		r.Get("/resumes", handleListResumes(deps))
		r.Get("/resumes/{id}", handleGetResume(deps))
		r.Put("/resumes/{id}/text", handleUpdateText(deps))
		r.Delete("/resumes/{id}", handleDeleteResume(deps))
		r.Get("/resumes/{id}/export/{format}", handleExport(deps))
		r.Post("/resumes/{id}/score", handleScore(deps))
		r.Get("/resumes/{id}/suggestions", handleSuggestions(deps))
		r.Post("/import", handleImport(deps))
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// DraftRequest is the body of POST /resumes.
type DraftRequest struct {
	Profile resume.Profile `json:"profile"`
	Options resume.Options `json:"options"`
}

type resumeResponse struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	Name      string `json:"name"`
	Template  string `json:"template"`
	FinalText string `json:"final_text"`

	Score        *int     `json:"score,omitempty"`
	ScoreReasons []string `json:"score_reasons,omitempty"`
	ScoreMode    string   `json:"score_mode,omitempty"`
}

func toResponse(r storage.Resume) resumeResponse {
	resp := resumeResponse{
		ID:        r.ID,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
		UpdatedAt: r.UpdatedAt.Format(time.RFC3339),
		Name:      r.Name,
		Template:  r.Template,
		FinalText: r.FinalText,
		Score:     r.Score,
		ScoreMode: r.ScoreMode,
	}
	if r.ScoreReasons != "" {
		// Stored as JSON; a parse failure just leaves reasons empty.
		json.Unmarshal([]byte(r.ScoreReasons), &resp.ScoreReasons)
	}
	return resp
}

func handleDraft(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req DraftRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		if strings.TrimSpace(req.Profile.Contact.Name) == "" || strings.TrimSpace(req.Profile.Contact.Email) == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "name and email are required")
			return
		}

		if req.Options.Template == "" {
			req.Options.Template = deps.DefaultTemplate
		}
		tpl, err := render.ParseTemplate(req.Options.Template)
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
			return
		}
		req.Options.Template = string(tpl)

		finalText, err := deps.Drafter.Draft(r.Context(), &req.Profile, req.Options)
		if err != nil {
			// Nothing is stored on a failed generation.
			httpError(w, http.StatusBadGateway, "api_error", "generation failed: %v", err)
			return
		}

		profileJSON, err := json.Marshal(req.Profile)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to marshal profile: %v", err)
			return
		}
		optionsJSON, err := json.Marshal(req.Options)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to marshal options: %v", err)
			return
		}

		rec := storage.Resume{
			ID:          uuid.New().String(),
			Name:        strings.TrimSpace(req.Profile.Contact.Name),
			Template:    string(tpl),
			ProfileJSON: string(profileJSON),
			OptionsJSON: string(optionsJSON),
			FinalText:   finalText,
		}
		if err := deps.Store.SaveResume(rec); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to save resume: %v", err)
			return
		}

		saved, err := deps.Store.GetResume(rec.ID)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to load saved resume: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(toResponse(saved))
	}
}

func handleListResumes(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := parseIntParam(r, "limit", 20, 100)

		resumes, err := deps.Store.ListResumes(limit)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to list resumes: %v", err)
			return
		}

		type summary struct {
			ID        string `json:"id"`
			CreatedAt string `json:"created_at"`
			Name      string `json:"name"`
			Template  string `json:"template"`
			Score     *int   `json:"score,omitempty"`
		}
		out := make([]summary, len(resumes))
		for i, rec := range resumes {
			out[i] = summary{
				ID:        rec.ID,
				CreatedAt: rec.CreatedAt.Format(time.RFC3339),
				Name:      rec.Name,
				Template:  rec.Template,
				Score:     rec.Score,
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(out)
	}
}

func handleGetResume(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := fetchResume(w, deps, chi.URLParam(r, "id"))
		if !ok {
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(toResponse(rec))
	}
}

// UpdateTextRequest is the body of PUT /resumes/{id}/text. The text
// replaces the stored resume verbatim: manual edits are free-form.
type UpdateTextRequest struct {
	Text string `json:"text"`
}

func handleUpdateText(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var req UpdateTextRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		err := deps.Store.UpdateFinalText(id, req.Text)
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "resume not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to update text: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "updated"})
	}
}

func handleDeleteResume(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		err := deps.Store.DeleteResume(id)
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "resume not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to delete resume: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "deleted"})
	}
}

func handleExport(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := fetchResume(w, deps, chi.URLParam(r, "id"))
		if !ok {
			return
		}

		tplName := r.URL.Query().Get("template")
		if tplName == "" {
			tplName = rec.Template
		}
		tpl, err := render.ParseTemplate(tplName)
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
			return
		}

		switch chi.URLParam(r, "format") {
		case "pdf":
			data, err := render.PDF(rec.FinalText, tpl)
			if err != nil {
				httpError(w, http.StatusInternalServerError, "api_error", "pdf export failed: %v", err)
				return
			}
			sendFile(w, data, "application/pdf", render.Filename(rec.Name, "resume", ".pdf"))

		case "docx":
			data, err := render.DOCX(rec.FinalText)
			if err != nil {
				httpError(w, http.StatusInternalServerError, "api_error", "docx export failed: %v", err)
				return
			}
			sendFile(w, data, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", render.Filename(rec.Name, "resume", ".docx"))

		case "txt":
			sendFile(w, render.Text(rec.FinalText), "text/plain; charset=utf-8", render.Filename(rec.Name, "resume", ".txt"))

		case "portfolio":
			exportPortfolio(w, r, deps, rec)

		case "bundle":
			data, err := render.Bundle(r.Context(), rec.FinalText, tpl, rec.Name)
			if err != nil {
				httpError(w, http.StatusInternalServerError, "api_error", "bundle export failed: %v", err)
				return
			}
			sendFile(w, data, "application/zip", render.Filename(rec.Name, "resume", "_bundle.zip"))

		default:
			httpError(w, http.StatusBadRequest, "invalid_request_error", "unknown export format %q", chi.URLParam(r, "format"))
		}
	}
}

func exportPortfolio(w http.ResponseWriter, r *http.Request, deps Deps, rec storage.Resume) {
	var p resume.Profile
	if err := json.Unmarshal([]byte(rec.ProfileJSON), &p); err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "failed to decode stored profile: %v", err)
		return
	}

	if !p.PortfolioReady() {
		httpError(w, http.StatusConflict, "invalid_request_error",
			"profile incomplete: fill contact details, basic skills, education #1, and at least one project or experience")
		return
	}

	themeName := r.URL.Query().Get("theme")
	if themeName == "" {
		var opts resume.Options
		json.Unmarshal([]byte(rec.OptionsJSON), &opts)
		themeName = opts.PortfolioTheme
	}
	if themeName == "" {
		themeName = deps.DefaultTheme
	}
	theme, err := render.ParseTheme(themeName)
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
		return
	}

	data, err := render.Portfolio(rec.FinalText, p.Contact, theme)
	if err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "portfolio export failed: %v", err)
		return
	}
	sendFile(w, data, "application/zip", render.Filename(rec.Name, "portfolio", "_site.zip"))
}

// ScoreRequest is the optional body of POST /resumes/{id}/score. A
// job description given here takes precedence over the one stored in
// the profile.
type ScoreRequest struct {
	JobDescription string `json:"job_description"`
}

func handleScore(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := fetchResume(w, deps, chi.URLParam(r, "id"))
		if !ok {
			return
		}

		var req ScoreRequest
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
			body, err := io.ReadAll(r.Body)
			if err != nil {
				httpError(w, http.StatusBadRequest, "invalid_request_error", "reading request body: %v", err)
				return
			}
			if len(body) > 0 {
				if err := json.Unmarshal(body, &req); err != nil {
					httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
					return
				}
			}
		}

		var p resume.Profile
		if err := json.Unmarshal([]byte(rec.ProfileJSON), &p); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to decode stored profile: %v", err)
			return
		}

		jd := req.JobDescription
		if strings.TrimSpace(jd) == "" {
			jd = p.JobDescription
		}

		res := deps.Scorer.Score(r.Context(), rec.FinalText, jd, p.TargetRole, p.Skills.Text())
		if res == nil {
			httpError(w, http.StatusBadGateway, "api_error", "scoring failed")
			return
		}

		reasonsJSON, err := json.Marshal(res.Reasons)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to marshal reasons: %v", err)
			return
		}
		if err := deps.Store.UpdateScore(rec.ID, res.Score, string(reasonsJSON), string(res.Mode)); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to save score: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(res)
	}
}

func handleSuggestions(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := fetchResume(w, deps, chi.URLParam(r, "id"))
		if !ok {
			return
		}

		var p resume.Profile
		if err := json.Unmarshal([]byte(rec.ProfileJSON), &p); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to decode stored profile: %v", err)
			return
		}
		var opts resume.Options
		json.Unmarshal([]byte(rec.OptionsJSON), &opts)

		tips := p.Suggestions(opts.AIOverview)
		if tips == nil {
			tips = []string{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string][]string{"suggestions": tips})
	}
}

func handleImport(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxImportBodySize)
		defer r.Body.Close()

		data, err := io.ReadAll(r.Body)
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "reading request body: %v", err)
			return
		}
		if len(data) == 0 {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "request body is empty")
			return
		}

		text, err := importer.Text(data)
		if err != nil {
			httpError(w, http.StatusUnprocessableEntity, "invalid_request_error", "could not extract text: %v", err)
			return
		}

		rec := storage.Resume{
			ID:          uuid.New().String(),
			Name:        strings.TrimSpace(r.URL.Query().Get("name")),
			Template:    deps.DefaultTemplate,
			ProfileJSON: "{}",
			OptionsJSON: "{}",
			FinalText:   text,
		}
		if err := deps.Store.SaveResume(rec); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to save resume: %v", err)
			return
		}

		saved, err := deps.Store.GetResume(rec.ID)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to load saved resume: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(toResponse(saved))
	}
}

func fetchResume(w http.ResponseWriter, deps Deps, id string) (storage.Resume, bool) {
	rec, err := deps.Store.GetResume(id)
	if errors.Is(err, storage.ErrNotFound) {
		httpError(w, http.StatusNotFound, "not_found", "resume not found")
		return storage.Resume{}, false
	}
	if err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "failed to get resume: %v", err)
		return storage.Resume{}, false
	}
	return rec, true
}

func sendFile(w http.ResponseWriter, data []byte, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}

func parseIntParam(r *http.Request, key string, defaultVal, maxVal int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return defaultVal
	}
	if maxVal > 0 && v > maxVal {
		return maxVal
	}
	return v
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
