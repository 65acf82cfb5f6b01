package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kalambet/careercompass/internal/advisor"
	"github.com/kalambet/careercompass/internal/api"
	"github.com/kalambet/careercompass/internal/career"
	"github.com/kalambet/careercompass/internal/config"
	"github.com/kalambet/careercompass/internal/profile"
)

// --- local state ---

// stateDir holds the current session id and the last recommendations.
var stateDir = func() (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("loading config: %w", err)
	}
	return cfg.Storage.DataDir, nil
}

func statePath(name string) (string, error) {
	dir, err := stateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

func saveSessionID(id string) error {
	path, err := statePath("session")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(id+"\n"), 0o644)
}

func loadSessionID() (string, error) {
	path, err := statePath("session")
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", errors.New("no active session, run `compass new` first")
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func saveRecommendations(careers []career.Suggestion) error {
	path, err := statePath("recommendations.json")
	if err != nil {
		return err
	}
	data, err := json.Marshal(careers)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func loadRecommendations() ([]career.Suggestion, error) {
	path, err := statePath("recommendations.json")
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, errors.New("no recommendations yet, run `compass recommend` first")
	}
	if err != nil {
		return nil, err
	}
	var careers []career.Suggestion
	if err := json.Unmarshal(data, &careers); err != nil {
		return nil, fmt.Errorf("reading saved recommendations: %w", err)
	}
	return careers, nil
}

// sessionCall runs fn against the active session.
func sessionCall(cmd *cobra.Command, fn func(ctx context.Context, c *apiClient, base string) error) error {
	id, err := loadSessionID()
	if err != nil {
		return err
	}
	client, err := newAPIClient()
	if err != nil {
		return err
	}
	return fn(cmd.Context(), client, "/sessions/"+id)
}

// --- rendering ---

func printState(w io.Writer, resp api.SessionResponse) {
	st := resp.State
	header := st.Title
	if st.TotalSteps > 0 {
		header = fmt.Sprintf("Step %d of %d: %s", st.StepNumber, st.TotalSteps, st.Title)
	}
	fmt.Fprintln(w, colorize(colorBold, header))
	fmt.Fprintf(w, "  %s %.0f%%\n", progressBar(st.Progress, 20), st.Progress)

	p := st.Profile
	fields := []struct{ label, value string }{
		{"Name", p.Name},
		{"Age", p.Age},
		{"Location", p.Location},
		{"Education", p.Education},
		{"Subjects", strings.Join(p.Subjects, ", ")},
		{"Interests", strings.Join(p.Interests, ", ")},
		{"Technical", strings.Join(p.Skills.Technical, ", ")},
		{"Soft skills", strings.Join(p.Skills.Soft, ", ")},
	}
	for _, f := range fields {
		if f.value != "" {
			fmt.Fprintf(w, "  %-12s %s\n", f.label+":", f.value)
		}
	}
	fmt.Fprintf(w, "  %-12s %s, %s, %s\n", "Preferences:",
		p.Preferences.Environment, p.Preferences.WorkStyle, p.Preferences.Pace)

	printNotifications(w, resp.Notifications)
}

func progressBar(pct float64, width int) string {
	filled := int(pct / 100 * float64(width))
	filled = max(0, min(width, filled))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

func printCareers(w io.Writer, careers []career.Suggestion) {
	if len(careers) == 0 {
		fmt.Fprintln(w, "No recommendations.")
		return
	}
	for _, c := range careers {
		fmt.Fprintf(w, "\n%s %s\n", colorize(colorCyan, fmt.Sprintf("[%d]", c.ID)), colorize(colorBold, c.Title))
		if c.Description != "" {
			fmt.Fprintf(w, "  %s\n", c.Description)
		}
		if c.Match != "" {
			fmt.Fprintf(w, "  Why: %s\n", c.Match)
		}
		if len(c.RequiredSkills) > 0 {
			fmt.Fprintf(w, "  Skills: %s\n", strings.Join(c.RequiredSkills, ", "))
		}
		fmt.Fprintf(w, "  Salary: %s | Growth: %s\n", c.SalaryRange, c.GrowthProspects)
		for _, r := range c.Resources {
			fmt.Fprintf(w, "  - %s (%s) %s\n", r.Name, r.Kind, r.URL)
		}
		for _, o := range c.Opportunities {
			line := fmt.Sprintf("  * %s at %s, %s (%s)", o.Title, o.Organization, o.Location, o.Kind)
			if o.Deadline != "" {
				line += ", apply by " + o.Deadline
			}
			fmt.Fprintln(w, line)
		}
	}
}

// --- wizard ---

// wizardCommands returns the commands that drive the questionnaire.
func wizardCommands() []*cobra.Command {
	return []*cobra.Command{newCmd, showCmd, nextCmd, backCmd, resetCmd, setCmd, addCmd, removeCmd, recommendCmd, skillGapCmd, shareCmd}
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new questionnaire session",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.post(cmd.Context(), "/sessions", nil)
		if err != nil {
			return err
		}
		var s api.SessionResponse
		if err := decodeJSON(resp, &s); err != nil {
			return err
		}
		if err := saveSessionID(s.ID); err != nil {
			return fmt.Errorf("saving session id: %w", err)
		}
		printSuccess("Started session %s", s.ID)
		printState(cmd.OutOrStdout(), s)
		return nil
	},
}

// sessionAction builds a command that sends one request and prints the
// resulting state.
func sessionAction(use, short, method, suffix string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return sessionCall(cmd, func(ctx context.Context, c *apiClient, base string) error {
				resp, err := c.do(ctx, method, base+suffix, nil)
				if err != nil {
					return err
				}
				return printSessionResponse(cmd.OutOrStdout(), resp)
			})
		},
	}
}

var (
	showCmd  = sessionAction("show", "Show the current step and profile", http.MethodGet, "")
	nextCmd  = sessionAction("next", "Advance to the next step", http.MethodPost, "/next")
	backCmd  = sessionAction("back", "Go back one step", http.MethodPost, "/back")
	resetCmd = sessionAction("reset", "Clear the profile and start over", http.MethodPost, "/reset")
)

// printSessionResponse prints state for 2xx and 422 responses. A blocked
// advance still carries the state and the reason.
func printSessionResponse(w io.Writer, resp *http.Response) error {
	if resp.StatusCode == http.StatusUnprocessableEntity {
		defer resp.Body.Close()
		var s api.SessionResponse
		if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
			return err
		}
		printState(w, s)
		return errors.New("cannot continue yet")
	}
	var s api.SessionResponse
	if err := decodeJSON(resp, &s); err != nil {
		return err
	}
	printState(w, s)
	return nil
}

// preferenceFields maps CLI names to the preference they set.
var preferenceFields = map[string]func(*profile.Preferences, string){
	"environment": func(p *profile.Preferences, v string) { p.Environment = profile.Environment(v) },
	"workstyle":   func(p *profile.Preferences, v string) { p.WorkStyle = profile.WorkStyle(v) },
	"pace":        func(p *profile.Preferences, v string) { p.Pace = profile.Pace(v) },
}

// buildPatch turns `set <field> <value>` into a profile patch. Preferences
// are replaced as a whole, so current holds the values left unchanged.
func buildPatch(field, value string, current profile.Profile) (profile.Patch, error) {
	switch strings.ToLower(field) {
	case "name":
		return profile.SetName(value), nil
	case "age":
		return profile.SetAge(value), nil
	case "location":
		return profile.SetLocation(value), nil
	case "education":
		return profile.SetEducation(value), nil
	}
	if set, ok := preferenceFields[strings.ToLower(field)]; ok {
		prefs := current.Preferences
		set(&prefs, value)
		return profile.SetPreferences(prefs), nil
	}
	return profile.Patch{}, fmt.Errorf("unknown field %q (want name, age, location, education, environment, workstyle or pace)", field)
}

var setCmd = &cobra.Command{
	Use:   "set <field> <value>",
	Short: "Set a profile field",
	Long: `Set a profile field.

Examples:
  compass set name "Ada Lovelace"
  compass set age 29
  compass set education "Bachelor's Degree"
  compass set environment indoor`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return sessionCall(cmd, func(ctx context.Context, c *apiClient, base string) error {
			resp, err := c.get(ctx, base)
			if err != nil {
				return err
			}
			var cur api.SessionResponse
			if err := decodeJSON(resp, &cur); err != nil {
				return err
			}

			patch, err := buildPatch(args[0], args[1], cur.State.Profile)
			if err != nil {
				return err
			}
			resp, err = c.patch(ctx, base+"/profile", patch)
			if err != nil {
				return err
			}
			return printSessionResponse(cmd.OutOrStdout(), resp)
		})
	},
}

var addCmd = &cobra.Command{
	Use:   "add <list> <value>",
	Short: "Add a value to subjects, interests, technical or soft",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return sessionCall(cmd, func(ctx context.Context, c *apiClient, base string) error {
			resp, err := c.post(ctx, base+"/profile/"+url.PathEscape(args[0]), map[string]string{"value": args[1]})
			if err != nil {
				return err
			}
			return printSessionResponse(cmd.OutOrStdout(), resp)
		})
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <list> <value>",
	Short: "Remove a value from subjects, interests, technical or soft",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return sessionCall(cmd, func(ctx context.Context, c *apiClient, base string) error {
			resp, err := c.delete(ctx, base+"/profile/"+url.PathEscape(args[0])+"/"+url.PathEscape(args[1]))
			if err != nil {
				return err
			}
			return printSessionResponse(cmd.OutOrStdout(), resp)
		})
	},
}

// --- recommendations ---

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Get career recommendations for the current profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return sessionCall(cmd, func(ctx context.Context, c *apiClient, base string) error {
			printStep("Generating recommendations...")
			resp, err := c.get(ctx, base+"/recommendations")
			if err != nil {
				return err
			}
			var rec api.RecommendationsResponse
			if err := decodeJSON(resp, &rec); err != nil {
				return err
			}
			printNotifications(cmd.ErrOrStderr(), rec.Notifications)
			printCareers(cmd.OutOrStdout(), rec.Careers)
			if len(rec.Careers) > 0 {
				if err := saveRecommendations(rec.Careers); err != nil {
					printWarning("could not save recommendations: %v", err)
				}
			}
			return nil
		})
	},
}

// findCareer looks up a saved recommendation by id or case-insensitive title.
func findCareer(careers []career.Suggestion, ref string) (career.Suggestion, bool) {
	if id, err := strconv.Atoi(ref); err == nil {
		for _, c := range careers {
			if c.ID == id {
				return c, true
			}
		}
	}
	for _, c := range careers {
		if strings.EqualFold(c.Title, ref) {
			return c, true
		}
	}
	return career.Suggestion{}, false
}

var skillGapCmd = &cobra.Command{
	Use:   "skill-gap <career>",
	Short: "Show missing skills for a career",
	Long: `Show missing skills for a career.

<career> is a recommendation id or a career title. When it names a saved
recommendation, its required skills are used to compute the match.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref := strings.Join(args, " ")
		req := api.SkillGapRequest{Career: ref}
		if saved, err := loadRecommendations(); err == nil {
			if c, ok := findCareer(saved, ref); ok {
				req = api.SkillGapRequest{Career: c.Title, RequiredSkills: c.RequiredSkills}
			}
		}

		return sessionCall(cmd, func(ctx context.Context, c *apiClient, base string) error {
			resp, err := c.post(ctx, base+"/skill-gap", req)
			if err != nil {
				return err
			}
			var gap api.SkillGapResponse
			if err := decodeJSON(resp, &gap); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printNotifications(cmd.ErrOrStderr(), gap.Notifications)
			if len(req.RequiredSkills) > 0 {
				fmt.Fprintf(w, "%s %d%%\n", colorize(colorBold, "Skill match:"), gap.SkillMatch)
			}
			if len(gap.Result.MissingSkills) == 0 {
				fmt.Fprintln(w, "No missing skills reported.")
			} else {
				fmt.Fprintln(w, colorize(colorBold, "Missing skills:"))
				for _, s := range gap.Result.MissingSkills {
					fmt.Fprintf(w, "  - %s\n", s)
				}
			}
			if len(gap.Result.LearningResources) > 0 {
				fmt.Fprintln(w, colorize(colorBold, "Learn:"))
				for _, r := range gap.Result.LearningResources {
					fmt.Fprintf(w, "  - %s (%s) %s\n", r.Name, r.Kind, r.URL)
				}
			}
			return nil
		})
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare <career> <career> [career]",
	Short: "Compare two or three saved recommendations",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		saved, err := loadRecommendations()
		if err != nil {
			return err
		}
		picked := make([]career.Suggestion, 0, len(args))
		for _, ref := range args {
			c, ok := findCareer(saved, ref)
			if !ok {
				return fmt.Errorf("no saved recommendation %q", ref)
			}
			picked = append(picked, c)
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}
		resp, err := client.post(cmd.Context(), "/compare", api.CompareRequest{Careers: picked})
		if err != nil {
			return err
		}
		var cmp career.Comparison
		if err := decodeJSON(resp, &cmp); err != nil {
			return err
		}
		printComparison(cmd.OutOrStdout(), cmp)
		return nil
	},
}

func printComparison(w io.Writer, cmp career.Comparison) {
	fmt.Fprintln(w, colorize(colorBold, strings.Join(cmp.Titles, " vs ")))
	for _, row := range cmp.Rows {
		fmt.Fprintf(w, "\n%s\n", colorize(colorCyan, row.Aspect))
		for i, vals := range row.Values {
			v := strings.Join(vals, ", ")
			if v == "" {
				v = "-"
			}
			fmt.Fprintf(w, "  %s: %s\n", cmp.Titles[i], v)
		}
	}
}

// --- share ---

var shareCmd = &cobra.Command{
	Use:   "share [id]",
	Short: "Share the current profile, or show a shared one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		if len(args) == 1 {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			resp, err := client.get(cmd.Context(), "/shares/"+url.PathEscape(args[0]))
			if err != nil {
				return err
			}
			var sh api.ShareResponse
			if err := decodeJSON(resp, &sh); err != nil {
				return err
			}
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(sh)
		}

		return sessionCall(cmd, func(ctx context.Context, c *apiClient, base string) error {
			resp, err := c.post(ctx, base+"/share", nil)
			if err != nil {
				return err
			}
			var sh api.ShareResponse
			if err := decodeJSON(resp, &sh); err != nil {
				return err
			}
			printSuccess("Profile shared as %s", sh.ID)
			fmt.Fprintln(w, sh.ID)
			return nil
		})
	},
}

// --- personality ---

var personalityCmd = &cobra.Command{
	Use:   "personality",
	Short: "Take the personality quiz",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		resp, err := client.get(ctx, "/personality/questions")
		if err != nil {
			return err
		}
		var questions []advisor.Question
		if err := decodeJSON(resp, &questions); err != nil {
			return err
		}

		answers, err := askQuestions(cmd.InOrStdin(), cmd.OutOrStdout(), questions)
		if err != nil {
			return err
		}

		resp, err = client.post(ctx, "/personality", api.PersonalityRequest{Answers: answers})
		if err != nil {
			return err
		}
		var result api.PersonalityResponse
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}
		printNotifications(cmd.ErrOrStderr(), result.Notifications)
		printPersonality(cmd.OutOrStdout(), result.Result)
		return nil
	},
}

// askQuestions reads one option number per question from in. Invalid input
// re-asks the same question.
func askQuestions(in io.Reader, out io.Writer, questions []advisor.Question) (advisor.Answers, error) {
	sc := bufio.NewScanner(in)
	answers := make(advisor.Answers, len(questions))
	for i, q := range questions {
		for {
			fmt.Fprintf(out, "\n%s %s\n", colorize(colorBold, fmt.Sprintf("%d/%d", i+1, len(questions))), q.Text)
			for j, o := range q.Options {
				fmt.Fprintf(out, "  %d) %s\n", j+1, o.Label)
			}
			fmt.Fprint(out, "> ")
			if !sc.Scan() {
				if err := sc.Err(); err != nil {
					return nil, err
				}
				return nil, errors.New("quiz aborted")
			}
			n, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
			if err == nil && n >= 1 && n <= len(q.Options) {
				answers[q.Text] = q.Options[n-1].Label
				break
			}
			fmt.Fprintf(out, "Enter a number from 1 to %d.\n", len(q.Options))
		}
	}
	return answers, nil
}

func printPersonality(w io.Writer, r advisor.PersonalityResult) {
	fmt.Fprintf(w, "\n%s %s\n", colorize(colorBold, "Type:"), r.Type)
	if r.Description != "" {
		fmt.Fprintf(w, "  %s\n", r.Description)
	}
	lists := []struct {
		label string
		items []string
	}{
		{"Strengths", r.Strengths},
		{"Weaknesses", r.Weaknesses},
		{"Suitable careers", r.SuitableCareers},
	}
	for _, l := range lists {
		if len(l.items) > 0 {
			fmt.Fprintf(w, "%s %s\n", colorize(colorBold, l.label+":"), strings.Join(l.items, ", "))
		}
	}
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
			fmt.Fprintf(cmd.OutOrStdout(), "  %s = %s\n", colorize(colorBold, k.Key), k.Value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: "Set a configuration value.\n\nKeys: " + strings.Join(config.ValidKeys(), ", "),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return err
		}

		if config.IsSecret(key) {
			printSuccess("Stored %s", key)
			return nil
		}
		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
