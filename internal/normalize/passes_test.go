package normalize

import (
	"strings"
	"testing"
)

func TestStripMenu_DiscardsLeadingHeadings(t *testing.T) {
	in := "EDUCATION\nSKILLS\nPROFESSIONAL OVERVIEW\nI am a developer.\nEDUCATION\nMIT"
	got := StripMenu(in)
	// All three leading heading-only lines are menu echo; stripping
	// stops at the first genuinely non-heading line.
	want := "I am a developer.\nEDUCATION\nMIT"
	if got != want {
		t.Errorf("StripMenu = %q, want %q", got, want)
	}
}

func TestStripMenu_HeadingsOnly(t *testing.T) {
	in := "SKILLS\n\nEDUCATION\nPROJECTS"
	if got := StripMenu(in); got != "" {
		t.Errorf("StripMenu on heading-only text = %q, want empty", got)
	}
}

func TestStripMenu_NoMenu(t *testing.T) {
	in := "I build things.\nSKILLS\n- Go"
	if got := StripMenu(in); got != in {
		t.Errorf("StripMenu changed clean text: %q", got)
	}
}

func TestStripMenu_Empty(t *testing.T) {
	if got := StripMenu(""); got != "" {
		t.Errorf("StripMenu(\"\") = %q", got)
	}
}

func TestEnsureLeadingOverview_Empty(t *testing.T) {
	got := EnsureLeadingOverview("")
	if got != "PROFESSIONAL OVERVIEW\n" {
		t.Errorf("got %q", got)
	}
}

func TestEnsureLeadingOverview_Inserts(t *testing.T) {
	got := EnsureLeadingOverview("I am a developer.\nEDUCATION\nMIT")
	want := "PROFESSIONAL OVERVIEW\nI am a developer.\nEDUCATION\nMIT"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEnsureLeadingOverview_AlreadyPresent(t *testing.T) {
	got := EnsureLeadingOverview("PROFESSIONAL OVERVIEW\n\nI am a developer.")
	want := "PROFESSIONAL OVERVIEW\nI am a developer."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEnsureLeadingOverview_CanonicalizesVariantSpelling(t *testing.T) {
	got := EnsureLeadingOverview("professional overview:\nbody")
	want := "PROFESSIONAL OVERVIEW\nbody"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEnsureLeadingOverview_FirstLineAlwaysHeading(t *testing.T) {
	inputs := []string{
		"",
		"\n\n\n",
		"random text",
		"PROFESSIONAL OVERVIEW\nbody",
		"professional overview:\nbody",
		"EDUCATION\nMIT",
	}
	for _, in := range inputs {
		out := EnsureLeadingOverview(in)
		var first string
		for _, ln := range strings.Split(out, "\n") {
			if strings.TrimSpace(ln) != "" {
				first = strings.TrimSpace(ln)
				break
			}
		}
		if first != "PROFESSIONAL OVERVIEW" {
			t.Errorf("input %q: first non-blank line = %q", in, first)
		}
	}
}

func TestEnforceBullets(t *testing.T) {
	in := "SKILLS\nPython\nGo\nEDUCATION\nMIT"
	want := "SKILLS\n- Python\n- Go\nEDUCATION\nMIT"
	if got := EnforceBullets(in); got != want {
		t.Errorf("EnforceBullets = %q, want %q", got, want)
	}
}

func TestEnforceBullets_Idempotent(t *testing.T) {
	inputs := []string{
		"SKILLS\nPython\nGo\nEDUCATION\nMIT",
		"PUBLICATIONS\nAlready - dashed\n- bulleted",
		"ACHIEVEMENTS\n\n  spaced  \nPARTICIPATIONS\nitem",
		"",
	}
	for _, in := range inputs {
		once := EnforceBullets(in)
		twice := EnforceBullets(once)
		if once != twice {
			t.Errorf("not idempotent for %q:\nonce:  %q\ntwice: %q", in, once, twice)
		}
	}
}

func TestEnforceBullets_PreservesBlankLines(t *testing.T) {
	in := "SKILLS\nGo\n\nRust\nPROJECTS\nplain line"
	want := "SKILLS\n- Go\n\n- Rust\nPROJECTS\nplain line"
	if got := EnforceBullets(in); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEnforceBullets_NonListSectionsUntouched(t *testing.T) {
	in := "PROFESSIONAL OVERVIEW\nplain sentence\nEDUCATION\nMIT - B.S."
	if got := EnforceBullets(in); got != in {
		t.Errorf("non-list section modified: %q", got)
	}
}

func TestApply_FullPipeline(t *testing.T) {
	raw := "SKILLS\nEDUCATION\n\nI enjoy building systems.\n\nSKILLS\nGo\nPython\nEDUCATION\nMIT"
	got := Apply(raw)

	lines := strings.Split(got, "\n")
	if lines[0] != "PROFESSIONAL OVERVIEW" {
		t.Fatalf("first line = %q", lines[0])
	}
	if !strings.Contains(got, "- Go") || !strings.Contains(got, "- Python") {
		t.Errorf("bullets not enforced:\n%s", got)
	}
	if strings.HasPrefix(got, "SKILLS") {
		t.Errorf("menu not stripped:\n%s", got)
	}
	// Running the pipeline again must not change anything.
	if again := Apply(got); again != got {
		t.Errorf("Apply not idempotent:\nfirst:  %q\nsecond: %q", got, again)
	}
}
