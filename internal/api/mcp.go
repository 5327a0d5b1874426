package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kalambet/resumeforge/internal/render"
	"github.com/kalambet/resumeforge/internal/resume"
	"github.com/kalambet/resumeforge/internal/storage"
)

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Store   *storage.Store
	Drafter Drafter
	Scorer  Scorer

	DefaultTemplate string
}

// NewMCPServer creates an MCP server with the resume tools and
// resources registered.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	s := server.NewMCPServer(
		"resumeforge",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("resumeforge — generate, score, and export professional resumes from structured career data."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("draft_resume",
			mcp.WithDescription("Generate a resume from a structured career profile and store it. Returns the resume ID and the final text."),
			mcp.WithString("profile", mcp.Description("JSON career profile: contact, education, skills, experience, projects, publications, target_role, job_description"), mcp.Required()),
			mcp.WithString("template", mcp.Description("Document template: Modern, Classic, or Professional (default Modern)")),
			mcp.WithBoolean("ai_overview", mcp.Description("Let the model write the professional overview (default true)")),
		),
		mcpDraftResume(deps),
	)

	s.AddTool(
		mcp.NewTool("score_resume",
			mcp.WithDescription("Score a stored resume 0-100 against its job description or target role, with brief reasons."),
			mcp.WithString("id", mcp.Description("Resume ID"), mcp.Required()),
			mcp.WithString("job_description", mcp.Description("Optional job description to score against instead of the stored one")),
		),
		mcpScoreResume(deps),
	)

	s.AddTool(
		mcp.NewTool("get_resume_text",
			mcp.WithDescription("Return the final plain text of a stored resume."),
			mcp.WithString("id", mcp.Description("Resume ID"), mcp.Required()),
		),
		mcpGetResumeText(deps),
	)

	s.AddResource(
		mcp.NewResource(
			"resume://recent",
			"Recent Resumes",
			mcp.WithResourceDescription("Last 10 stored resumes (summaries only)"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceRecent(deps),
	)

	return s
}

func mcpDraftResume(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		profileJSON, err := req.RequireString("profile")
		if err != nil {
			return mcpError("profile is required"), nil
		}

		var p resume.Profile
		if err := json.Unmarshal([]byte(profileJSON), &p); err != nil {
			return mcpError(fmt.Sprintf("invalid profile JSON: %v", err)), nil
		}
		if strings.TrimSpace(p.Contact.Name) == "" || strings.TrimSpace(p.Contact.Email) == "" {
			return mcpError("profile must include contact name and email"), nil
		}

		tpl, err := render.ParseTemplate(req.GetString("template", deps.DefaultTemplate))
		if err != nil {
			return mcpError(err.Error()), nil
		}

		opts := resume.Options{
			Template:   string(tpl),
			AIOverview: req.GetBool("ai_overview", true),
		}

		finalText, err := deps.Drafter.Draft(ctx, &p, opts)
		if err != nil {
			return mcpError(fmt.Sprintf("generation failed: %v", err)), nil
		}

		optionsJSON, err := json.Marshal(opts)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal options: %v", err)), nil
		}

		rec := storage.Resume{
			ID:          uuid.New().String(),
			Name:        strings.TrimSpace(p.Contact.Name),
			Template:    opts.Template,
			ProfileJSON: profileJSON,
			OptionsJSON: string(optionsJSON),
			FinalText:   finalText,
		}
		if err := deps.Store.SaveResume(rec); err != nil {
			return mcpError(fmt.Sprintf("failed to save resume: %v", err)), nil
		}

		b, err := json.Marshal(map[string]string{
			"id":         rec.ID,
			"final_text": finalText,
		})
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal result: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpScoreResume(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcpError("id is required"), nil
		}

		rec, err := deps.Store.GetResume(id)
		if err != nil {
			return mcpError(fmt.Sprintf("resume not found: %v", err)), nil
		}

		var p resume.Profile
		if err := json.Unmarshal([]byte(rec.ProfileJSON), &p); err != nil {
			return mcpError(fmt.Sprintf("failed to decode stored profile: %v", err)), nil
		}

		jd := req.GetString("job_description", "")
		if strings.TrimSpace(jd) == "" {
			jd = p.JobDescription
		}

		res := deps.Scorer.Score(ctx, rec.FinalText, jd, p.TargetRole, p.Skills.Text())
		if res == nil {
			return mcpError("scoring failed"), nil
		}

		reasonsJSON, err := json.Marshal(res.Reasons)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal reasons: %v", err)), nil
		}
		if err := deps.Store.UpdateScore(rec.ID, res.Score, string(reasonsJSON), string(res.Mode)); err != nil {
			return mcpError(fmt.Sprintf("failed to save score: %v", err)), nil
		}

		b, err := json.Marshal(res)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal result: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpGetResumeText(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcpError("id is required"), nil
		}

		rec, err := deps.Store.GetResume(id)
		if err != nil {
			return mcpError(fmt.Sprintf("resume not found: %v", err)), nil
		}

		return mcpText(rec.FinalText), nil
	}
}

func mcpResourceRecent(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		resumes, err := deps.Store.ListResumes(10)
		if err != nil {
			return nil, fmt.Errorf("failed to list resumes: %w", err)
		}

		type resumeSummary struct {
			ID        string `json:"id"`
			CreatedAt string `json:"created_at"`
			Name      string `json:"name"`
			Template  string `json:"template"`
			Score     *int   `json:"score,omitempty"`
			Preview   string `json:"preview"`
		}

		summaries := make([]resumeSummary, len(resumes))
		for i, rec := range resumes {
			preview := rec.FinalText
			if utf8.RuneCountInString(preview) > 200 {
				runes := []rune(preview)
				preview = string(runes[:200]) + "..."
			}
			summaries[i] = resumeSummary{
				ID:        rec.ID,
				CreatedAt: rec.CreatedAt.Format(time.RFC3339),
				Name:      rec.Name,
				Template:  rec.Template,
				Score:     rec.Score,
				Preview:   preview,
			}
		}

		b, err := json.Marshal(summaries)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal resumes: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
