package compose

import (
	"context"
	"strings"
	"testing"

	"github.com/kalambet/resumeforge/internal/hf"
	"github.com/kalambet/resumeforge/internal/resume"
)

func testProfile() *resume.Profile {
	return &resume.Profile{
		Contact: resume.Contact{
			Name:  "Jordan Lee",
			Title: "Software Engineer",
			Email: "jordan@example.com",
		},
		Skills: resume.Skills{Languages: "Go, Python"},
		Education: []resume.EducationEntry{
			{Institute: "MIT", Degree: "B.S. CS"},
		},
	}
}

func TestBuildPrompt_AIOverview(t *testing.T) {
	p := testProfile()
	got := BuildPrompt(p, resume.Options{AIOverview: true})

	if !strings.HasPrefix(got, "Output CLEAN PLAIN TEXT") {
		t.Errorf("prompt does not start with output instruction:\n%s", got[:80])
	}
	if !strings.Contains(got, "WRITE the 'PROFESSIONAL OVERVIEW'") {
		t.Error("missing AI overview rule")
	}
	if strings.Contains(got, "as-is") {
		t.Error("found as-is rule in AI overview mode")
	}
	if strings.Contains(got, "Job Description to tailor to") {
		t.Error("JD block present without a job description")
	}
	if !strings.Contains(got, "Here is the profile:") {
		t.Error("missing profile block")
	}
	if !strings.Contains(got, "MIT") {
		t.Error("assembled profile text not included")
	}
}

func TestBuildPrompt_OwnOverview(t *testing.T) {
	p := testProfile()
	got := BuildPrompt(p, resume.Options{AIOverview: false})

	if !strings.Contains(got, "Use the given 'PROFESSIONAL OVERVIEW' content as-is.") {
		t.Error("missing as-is rule")
	}
	if strings.Contains(got, "5-7 sentence") {
		t.Error("AI overview rule present in own-overview mode")
	}
}

func TestBuildPrompt_JobDescription(t *testing.T) {
	p := testProfile()
	p.JobDescription = "Backend engineer, Go required."
	got := BuildPrompt(p, resume.Options{AIOverview: true})

	if !strings.Contains(got, "Job Description to tailor to:\nBackend engineer, Go required.") {
		t.Error("JD block missing or malformed")
	}

	// Whitespace-only JD is treated as absent.
	p.JobDescription = "   \n  "
	got = BuildPrompt(p, resume.Options{AIOverview: true})
	if strings.Contains(got, "Job Description") {
		t.Error("JD block present for whitespace-only job description")
	}
}

type fakeChatter struct {
	req   hf.ChatRequest
	reply string
	err   error
}

func (f *fakeChatter) ChatCompletion(_ context.Context, req hf.ChatRequest) (string, error) {
	f.req = req
	return f.reply, f.err
}

func TestDraft(t *testing.T) {
	fake := &fakeChatter{reply: "EDUCATION\nSKILLS\nPROFESSIONAL OVERVIEW\nBuilds backend systems in Go.\nSKILLS\nGo\nPython"}
	d := NewDrafter(fake, "meta-llama/Llama-3.1-8B-Instruct")

	got, err := d.Draft(context.Background(), testProfile(), resume.Options{AIOverview: true})
	if err != nil {
		t.Fatalf("Draft: %v", err)
	}

	if fake.req.Model != "meta-llama/Llama-3.1-8B-Instruct" {
		t.Errorf("model = %q", fake.req.Model)
	}
	if fake.req.MaxTokens != draftMaxTokens || fake.req.Temperature != draftTemperature {
		t.Errorf("generation params = %d, %v", fake.req.MaxTokens, fake.req.Temperature)
	}
	if len(fake.req.Messages) != 2 || fake.req.Messages[0].Role != "system" || fake.req.Messages[0].Content != SystemInstruction {
		t.Errorf("messages = %+v", fake.req.Messages)
	}

	// Header block comes first, then the normalized body: the leading
	// heading menu is stripped and list sections get bullets.
	if !strings.HasPrefix(got, "JORDAN LEE — Software Engineer\n") {
		t.Errorf("missing contact header, got:\n%s", got)
	}
	if !strings.Contains(got, "PROFESSIONAL OVERVIEW\nBuilds backend systems in Go.") {
		t.Errorf("body not normalized:\n%s", got)
	}
	if !strings.Contains(got, "SKILLS\n- Go\n- Python") {
		t.Errorf("skills not bulleted:\n%s", got)
	}
	if strings.HasPrefix(got, "EDUCATION") {
		t.Error("leading heading menu survived normalization")
	}
}

func TestDraft_ModelError(t *testing.T) {
	fake := &fakeChatter{err: context.DeadlineExceeded}
	d := NewDrafter(fake, "m")

	_, err := d.Draft(context.Background(), testProfile(), resume.Options{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "generating draft") {
		t.Errorf("err = %v", err)
	}
}
