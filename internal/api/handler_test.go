package api

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kalambet/resumeforge/internal/render"
	"github.com/kalambet/resumeforge/internal/resume"
	"github.com/kalambet/resumeforge/internal/score"
	"github.com/kalambet/resumeforge/internal/storage"
)

const testToken = "test-token-12345"

type fakeDrafter struct {
	text string
	err  error
}

func (f *fakeDrafter) Draft(_ context.Context, p *resume.Profile, _ resume.Options) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type fakeScorer struct {
	result *score.Result
	gotJD  string
}

func (f *fakeScorer) Score(_ context.Context, _, jobDesc, _, _ string) *score.Result {
	f.gotJD = jobDesc
	return f.result
}

const draftedText = `JORDAN LEE — Software Engineer
Boston, MA
Email: jordan@example.com

PROFESSIONAL OVERVIEW
Backend engineer focused on Go services.

SKILLS
- Go
- Python`

func setupHandler(t *testing.T, drafter Drafter, scorer Scorer) (http.Handler, *storage.Store) {
	t.Helper()
	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	handler := NewHandler(Deps{
		Store:           store,
		Drafter:         drafter,
		Scorer:          scorer,
		Token:           testToken,
		DefaultTemplate: "Modern",
		DefaultTheme:    "Modern",
	})
	return handler, store
}

func authReq(method, url, body, token string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, url, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func completeProfileJSON() string {
	p := resume.Profile{
		Contact: resume.Contact{
			Name: "Jordan Lee", Title: "Software Engineer", Location: "Boston, MA",
			Email: "jordan@example.com", Phone: "+1 555 0100",
			LinkedIn: "https://linkedin.com/in/jordanlee", GitHub: "https://github.com/jordanlee",
		},
		Skills:    resume.Skills{Languages: "Go, Python"},
		Education: []resume.EducationEntry{{Institute: "MIT", Degree: "B.S. CS"}},
		Projects:  []resume.ProjectEntry{{Title: "Telemetry Pipeline"}},
	}
	b, _ := json.Marshal(p)
	return string(b)
}

func createResume(t *testing.T, h http.Handler) string {
	t.Helper()
	body := `{"profile":` + completeProfileJSON() + `,"options":{"ai_overview":true}}`
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, authReq(http.MethodPost, "/resumes", body, testToken))
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status = %d; body = %s", rr.Code, rr.Body.String())
	}
	var resp resumeResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding create response: %v", err)
	}
	return resp.ID
}

func TestAuth_Required(t *testing.T) {
	h, _ := setupHandler(t, &fakeDrafter{text: draftedText}, &fakeScorer{})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, authReq(http.MethodGet, "/resumes", "", ""))
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, authReq(http.MethodGet, "/resumes", "", "wrong-token"))
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d, want 401", rr.Code)
	}
}

func TestHealth_Unauthenticated(t *testing.T) {
	h, _ := setupHandler(t, &fakeDrafter{text: draftedText}, &fakeScorer{})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"ok"`) {
		t.Errorf("body = %s", rr.Body.String())
	}
}

func TestDraft(t *testing.T) {
	h, store := setupHandler(t, &fakeDrafter{text: draftedText}, &fakeScorer{})

	id := createResume(t, h)

	rec, err := store.GetResume(id)
	if err != nil {
		t.Fatalf("GetResume: %v", err)
	}
	if rec.Name != "Jordan Lee" {
		t.Errorf("name = %q", rec.Name)
	}
	if rec.Template != "Modern" {
		t.Errorf("template = %q", rec.Template)
	}
	if rec.FinalText != draftedText {
		t.Errorf("final_text = %q", rec.FinalText)
	}
	if rec.Score != nil {
		t.Error("new resume should be unscored")
	}
}

func TestDraft_MissingNameOrEmail(t *testing.T) {
	h, store := setupHandler(t, &fakeDrafter{text: draftedText}, &fakeScorer{})

	for _, body := range []string{
		`{"profile":{"contact":{"email":"a@b.c"}}}`,
		`{"profile":{"contact":{"name":"Jordan Lee"}}}`,
		`{"profile":{"contact":{"name":"  ","email":"a@b.c"}}}`,
	} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, authReq(http.MethodPost, "/resumes", body, testToken))
		if rr.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rr.Code)
		}
	}

	list, err := store.ListResumes(10)
	if err != nil {
		t.Fatalf("ListResumes: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("%d resumes stored after rejected requests", len(list))
	}
}

func TestDraft_ModelFailureStoresNothing(t *testing.T) {
	h, store := setupHandler(t, &fakeDrafter{err: errors.New("model unavailable")}, &fakeScorer{})

	body := `{"profile":` + completeProfileJSON() + `}`
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, authReq(http.MethodPost, "/resumes", body, testToken))
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502; body = %s", rr.Code, rr.Body.String())
	}

	list, err := store.ListResumes(10)
	if err != nil {
		t.Fatalf("ListResumes: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("%d resumes stored after failed generation", len(list))
	}
}

func TestDraft_UnknownTemplate(t *testing.T) {
	h, _ := setupHandler(t, &fakeDrafter{text: draftedText}, &fakeScorer{})

	body := `{"profile":` + completeProfileJSON() + `,"options":{"template":"fancy"}}`
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, authReq(http.MethodPost, "/resumes", body, testToken))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestGetUpdateDelete(t *testing.T) {
	h, _ := setupHandler(t, &fakeDrafter{text: draftedText}, &fakeScorer{})
	id := createResume(t, h)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, authReq(http.MethodGet, "/resumes/"+id, "", testToken))
	if rr.Code != http.StatusOK {
		t.Fatalf("get status = %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, authReq(http.MethodPut, "/resumes/"+id+"/text", `{"text":"edited freely"}`, testToken))
	if rr.Code != http.StatusOK {
		t.Fatalf("update status = %d; body = %s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, authReq(http.MethodGet, "/resumes/"+id, "", testToken))
	var resp resumeResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding get response: %v", err)
	}
	if resp.FinalText != "edited freely" {
		t.Errorf("final_text = %q", resp.FinalText)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, authReq(http.MethodDelete, "/resumes/"+id, "", testToken))
	if rr.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, authReq(http.MethodGet, "/resumes/"+id, "", testToken))
	if rr.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rr.Code)
	}
}

func TestList(t *testing.T) {
	h, _ := setupHandler(t, &fakeDrafter{text: draftedText}, &fakeScorer{})
	createResume(t, h)
	createResume(t, h)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, authReq(http.MethodGet, "/resumes", "", testToken))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var list []map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &list); err != nil {
		t.Fatalf("decoding list: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("got %d resumes, want 2", len(list))
	}
}

func TestExport_PDF(t *testing.T) {
	h, _ := setupHandler(t, &fakeDrafter{text: draftedText}, &fakeScorer{})
	id := createResume(t, h)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, authReq(http.MethodGet, "/resumes/"+id+"/export/pdf", "", testToken))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; body = %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "Jordan_Lee.pdf") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF-")) {
		t.Error("body is not a PDF")
	}
}

func TestExport_UnknownFormat(t *testing.T) {
	h, _ := setupHandler(t, &fakeDrafter{text: draftedText}, &fakeScorer{})
	id := createResume(t, h)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, authReq(http.MethodGet, "/resumes/"+id+"/export/odt", "", testToken))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestExport_Portfolio(t *testing.T) {
	h, _ := setupHandler(t, &fakeDrafter{text: draftedText}, &fakeScorer{})
	id := createResume(t, h)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, authReq(http.MethodGet, "/resumes/"+id+"/export/portfolio", "", testToken))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; body = %s", rr.Code, rr.Body.String())
	}
	zr, err := zip.NewReader(bytes.NewReader(rr.Body.Bytes()), int64(rr.Body.Len()))
	if err != nil {
		t.Fatalf("body is not a zip: %v", err)
	}
	if len(zr.File) != 2 {
		t.Errorf("zip has %d files", len(zr.File))
	}
}

func TestExport_PortfolioIncompleteProfile(t *testing.T) {
	h, _ := setupHandler(t, &fakeDrafter{text: draftedText}, &fakeScorer{})

	// Name and email only: enough to generate, not enough for a portfolio.
	body := `{"profile":{"contact":{"name":"Jordan Lee","email":"jordan@example.com"}}}`
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, authReq(http.MethodPost, "/resumes", body, testToken))
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rr.Code)
	}
	var resp resumeResponse
	json.Unmarshal(rr.Body.Bytes(), &resp)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, authReq(http.MethodGet, "/resumes/"+resp.ID+"/export/portfolio", "", testToken))
	if rr.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409; body = %s", rr.Code, rr.Body.String())
	}
}

func TestExport_Bundle(t *testing.T) {
	h, _ := setupHandler(t, &fakeDrafter{text: draftedText}, &fakeScorer{})
	id := createResume(t, h)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, authReq(http.MethodGet, "/resumes/"+id+"/export/bundle", "", testToken))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	zr, err := zip.NewReader(bytes.NewReader(rr.Body.Bytes()), int64(rr.Body.Len()))
	if err != nil {
		t.Fatalf("body is not a zip: %v", err)
	}
	names := map[string]bool{}
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, want := range []string{"Jordan_Lee.pdf", "Jordan_Lee.docx", "Jordan_Lee.txt"} {
		if !names[want] {
			t.Errorf("bundle missing %s", want)
		}
	}
}

func TestScoreEndpoint(t *testing.T) {
	scorer := &fakeScorer{result: &score.Result{Score: 77, Reasons: []string{"solid"}, Mode: score.ModeATS}}
	h, store := setupHandler(t, &fakeDrafter{text: draftedText}, scorer)
	id := createResume(t, h)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, authReq(http.MethodPost, "/resumes/"+id+"/score", `{"job_description":"Go backend role"}`, testToken))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; body = %s", rr.Code, rr.Body.String())
	}
	if scorer.gotJD != "Go backend role" {
		t.Errorf("scorer received JD %q", scorer.gotJD)
	}

	rec, err := store.GetResume(id)
	if err != nil {
		t.Fatalf("GetResume: %v", err)
	}
	if rec.Score == nil || *rec.Score != 77 {
		t.Errorf("stored score = %v", rec.Score)
	}
	if rec.ScoreMode != "ATS" {
		t.Errorf("stored mode = %q", rec.ScoreMode)
	}
}

func TestScoreEndpoint_Failure(t *testing.T) {
	h, store := setupHandler(t, &fakeDrafter{text: draftedText}, &fakeScorer{result: nil})
	id := createResume(t, h)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, authReq(http.MethodPost, "/resumes/"+id+"/score", "", testToken))
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rr.Code)
	}

	rec, err := store.GetResume(id)
	if err != nil {
		t.Fatalf("GetResume: %v", err)
	}
	if rec.Score != nil {
		t.Errorf("score stored after failed scoring: %v", *rec.Score)
	}
}

func TestSuggestionsEndpoint(t *testing.T) {
	h, _ := setupHandler(t, &fakeDrafter{text: draftedText}, &fakeScorer{})

	// Minimal profile triggers several tips.
	body := `{"profile":{"contact":{"name":"Jordan Lee","email":"jordan@example.com"}}}`
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, authReq(http.MethodPost, "/resumes", body, testToken))
	var resp resumeResponse
	json.Unmarshal(rr.Body.Bytes(), &resp)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, authReq(http.MethodGet, "/resumes/"+resp.ID+"/suggestions", "", testToken))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var out map[string][]string
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding suggestions: %v", err)
	}
	if len(out["suggestions"]) == 0 {
		t.Error("expected suggestions for a minimal profile")
	}
}

func TestImport(t *testing.T) {
	h, store := setupHandler(t, &fakeDrafter{text: draftedText}, &fakeScorer{})

	pdfData, err := render.PDF(draftedText, render.TemplateClassic)
	if err != nil {
		t.Fatalf("rendering fixture pdf: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/import?name=Jordan+Lee", bytes.NewReader(pdfData))
	req.Header.Set("Authorization", "Bearer "+testToken)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d; body = %s", rr.Code, rr.Body.String())
	}

	var resp resumeResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	rec, err := store.GetResume(resp.ID)
	if err != nil {
		t.Fatalf("GetResume: %v", err)
	}
	if rec.Name != "Jordan Lee" {
		t.Errorf("name = %q", rec.Name)
	}
	if !strings.Contains(rec.FinalText, "PROFESSIONAL OVERVIEW") {
		t.Errorf("extracted text missing content:\n%s", rec.FinalText)
	}
}

func TestImport_Unreadable(t *testing.T) {
	h, _ := setupHandler(t, &fakeDrafter{text: draftedText}, &fakeScorer{})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, authReq(http.MethodPost, "/import", "not a pdf at all", testToken))
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422; body = %s", rr.Code, rr.Body.String())
	}
}
