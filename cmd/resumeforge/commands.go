package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kalambet/resumeforge/internal/config"
	"github.com/kalambet/resumeforge/internal/resume"
)

// --- generate ---

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a tailored resume from a profile",
	Long: `Generate a tailored resume from a profile JSON file.

Examples:
  resumeforge generate --profile ./profile.json
  resumeforge generate --profile ./profile.json --template classic --job-desc ./jd.txt
  resumeforge generate --profile ./profile.json --own-overview`,
	RunE: func(cmd *cobra.Command, args []string) error {
		profilePath, _ := cmd.Flags().GetString("profile")
		template, _ := cmd.Flags().GetString("template")
		jobDescPath, _ := cmd.Flags().GetString("job-desc")
		ownOverview, _ := cmd.Flags().GetBool("own-overview")

		if profilePath == "" {
			return fmt.Errorf("--profile is required")
		}

		data, err := os.ReadFile(profilePath)
		if err != nil {
			return fmt.Errorf("reading profile: %w", err)
		}

		var p resume.Profile
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("invalid profile JSON: %w", err)
		}

		if jobDescPath != "" {
			jd, err := os.ReadFile(jobDescPath)
			if err != nil {
				return fmt.Errorf("reading job description: %w", err)
			}
			p.JobDescription = string(jd)
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		printStep("Generating resume draft...")
		req := map[string]any{
			"profile": p,
			"options": resume.Options{
				Template:   template,
				AIOverview: !ownOverview,
			},
		}
		resp, err := client.post(cmd.Context(), "/resumes", req)
		if err != nil {
			return err
		}

		var result struct {
			ID        string `json:"id"`
			FinalText string `json:"final_text"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printSuccess("Generated resume %s", result.ID)
		fmt.Println(result.FinalText)
		return nil
	},
}

func init() {
	generateCmd.Flags().String("profile", "", "path to profile JSON file")
	generateCmd.Flags().String("template", "", "resume template (modern, classic, professional)")
	generateCmd.Flags().String("job-desc", "", "path to a job description file to tailor to")
	generateCmd.Flags().Bool("own-overview", false, "use the profile's summary verbatim instead of writing one")
}

// --- resumes ---

var resumesCmd = &cobra.Command{
	Use:   "resumes",
	Short: "Manage stored resumes",
}

var resumesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored resumes",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), fmt.Sprintf("/resumes?limit=%d", limit))
		if err != nil {
			return err
		}

		var resumes []struct {
			ID        string `json:"id"`
			CreatedAt string `json:"created_at"`
			Name      string `json:"name"`
			Template  string `json:"template"`
			Score     *int   `json:"score,omitempty"`
		}
		if err := decodeJSON(resp, &resumes); err != nil {
			return err
		}

		if len(resumes) == 0 {
			fmt.Println("No resumes found.")
			return nil
		}

		for _, r := range resumes {
			scoreLabel := "-"
			if r.Score != nil {
				scoreLabel = fmt.Sprintf("%d", *r.Score)
			}
			fmt.Printf("%s  %s  %-12s  score: %s  %s\n",
				colorize(colorCyan, r.ID[:8]),
				r.CreatedAt,
				r.Template,
				scoreLabel,
				r.Name,
			)
		}
		return nil
	},
}

var resumesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single resume as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/resumes/"+args[0])
		if err != nil {
			return err
		}

		var r any
		if err := decodeJSON(resp, &r); err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	},
}

var resumesEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Open the resume text in $EDITOR",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "vi"
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/resumes/"+args[0])
		if err != nil {
			return err
		}

		var r struct {
			FinalText string `json:"final_text"`
		}
		if err := decodeJSON(resp, &r); err != nil {
			return err
		}

		tmpFile, err := os.CreateTemp("", "resumeforge-*.txt")
		if err != nil {
			return fmt.Errorf("creating temp file: %w", err)
		}
		tmpPath := tmpFile.Name()
		defer os.Remove(tmpPath)

		if _, err := tmpFile.WriteString(r.FinalText); err != nil {
			tmpFile.Close()
			return err
		}
		tmpFile.Close()

		editorCmd := exec.Command(editor, tmpPath)
		editorCmd.Stdin = os.Stdin
		editorCmd.Stdout = os.Stdout
		editorCmd.Stderr = os.Stderr
		if err := editorCmd.Run(); err != nil {
			return fmt.Errorf("editor exited with error: %w", err)
		}

		edited, err := os.ReadFile(tmpPath)
		if err != nil {
			return err
		}

		putResp, err := client.put(cmd.Context(), "/resumes/"+args[0]+"/text", map[string]string{"text": string(edited)})
		if err != nil {
			return err
		}

		var updated any
		if err := decodeJSON(putResp, &updated); err != nil {
			return err
		}

		printSuccess("Resume updated")
		return nil
	},
}

var resumesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored resume",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.delete(cmd.Context(), "/resumes/"+args[0])
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			body, _ := io.ReadAll(resp.Body)
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
		}

		printSuccess("Deleted resume %s", args[0])
		return nil
	},
}

func init() {
	resumesListCmd.Flags().Int("limit", 20, "maximum number of resumes to list")
	resumesCmd.AddCommand(resumesListCmd)
	resumesCmd.AddCommand(resumesShowCmd)
	resumesCmd.AddCommand(resumesEditCmd)
	resumesCmd.AddCommand(resumesDeleteCmd)
}

// --- export ---

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a resume as PDF, DOCX, text, portfolio, or bundle",
	Long: `Export a resume in one of the supported formats.

Examples:
  resumeforge export 1a2b3c4d --format pdf
  resumeforge export 1a2b3c4d --format portfolio --theme professional --output site.zip
  resumeforge export 1a2b3c4d --format bundle`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		template, _ := cmd.Flags().GetString("template")
		theme, _ := cmd.Flags().GetString("theme")
		output, _ := cmd.Flags().GetString("output")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		path := "/resumes/" + args[0] + "/export/" + format
		sep := "?"
		if template != "" {
			path += sep + "template=" + template
			sep = "&"
		}
		if theme != "" {
			path += sep + "theme=" + theme
		}

		resp, err := client.get(cmd.Context(), path)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			body, _ := io.ReadAll(resp.Body)
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
		}

		if output == "" {
			output = attachmentFilename(resp.Header.Get("Content-Disposition"), "resume."+format)
		}

		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()

		if _, err := io.Copy(f, resp.Body); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}

		printSuccess("Exported to %s", output)
		return nil
	},
}

// attachmentFilename pulls the filename out of a Content-Disposition
// header, falling back when the header is absent or malformed.
func attachmentFilename(header, fallback string) string {
	const marker = `filename="`
	i := strings.Index(header, marker)
	if i < 0 {
		return fallback
	}
	rest := header[i+len(marker):]
	j := strings.Index(rest, `"`)
	if j <= 0 {
		return fallback
	}
	return rest[:j]
}

func init() {
	exportCmd.Flags().String("format", "pdf", "export format (pdf, docx, txt, portfolio, bundle)")
	exportCmd.Flags().String("template", "", "override the stored template")
	exportCmd.Flags().String("theme", "", "portfolio theme (modern, professional)")
	exportCmd.Flags().String("output", "", "output file path (default: server-suggested name)")
}

// --- score ---

var scoreCmd = &cobra.Command{
	Use:   "score <id>",
	Short: "Score a resume against a job description",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jobDescPath, _ := cmd.Flags().GetString("job-desc")

		body := map[string]string{}
		if jobDescPath != "" {
			jd, err := os.ReadFile(jobDescPath)
			if err != nil {
				return fmt.Errorf("reading job description: %w", err)
			}
			body["job_description"] = string(jd)
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		printStep("Scoring resume...")
		resp, err := client.post(cmd.Context(), "/resumes/"+args[0]+"/score", body)
		if err != nil {
			return err
		}

		var result struct {
			Score   int      `json:"score"`
			Reasons []string `json:"reasons"`
			Mode    string   `json:"mode"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printSuccess("Score: %d/100 (%s)", result.Score, result.Mode)
		for _, reason := range result.Reasons {
			fmt.Printf("  - %s\n", reason)
		}
		return nil
	},
}

func init() {
	scoreCmd.Flags().String("job-desc", "", "path to a job description file")
}

// --- suggest ---

var suggestCmd = &cobra.Command{
	Use:   "suggest <id>",
	Short: "Show improvement suggestions for a resume",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/resumes/"+args[0]+"/suggestions")
		if err != nil {
			return err
		}

		var result struct {
			Suggestions []string `json:"suggestions"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		if len(result.Suggestions) == 0 {
			fmt.Println("No suggestions — looks good.")
			return nil
		}
		for _, s := range result.Suggestions {
			fmt.Printf("  - %s\n", s)
		}
		return nil
	},
}

// --- import ---

var importCmd = &cobra.Command{
	Use:   "import <file.pdf>",
	Short: "Import an existing resume from a PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading PDF: %w", err)
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		path := "/import"
		if name != "" {
			path += "?name=" + strings.ReplaceAll(name, " ", "+")
		}

		resp, err := client.postRaw(cmd.Context(), path, "application/pdf", data)
		if err != nil {
			return err
		}

		var result struct {
			ID string `json:"id"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printSuccess("Imported resume %s", result.ID)
		return nil
	},
}

func init() {
	importCmd.Flags().String("name", "", "name to store the imported resume under")
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		keys := config.ShowAll(cfg)
		for _, k := range keys {
			fmt.Printf("  %s = %s\n", colorize(colorBold, k.Key), k.Value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return err
		}

		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
