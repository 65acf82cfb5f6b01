package api

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kalambet/careercompass/internal/advisor"
	"github.com/kalambet/careercompass/internal/career"
	"github.com/kalambet/careercompass/internal/notify"
	"github.com/kalambet/careercompass/internal/profile"
)

// --- mocks ---

type mockAdvisor struct {
	mu       sync.Mutex
	careers  []career.Suggestion
	gap      career.SkillGap
	note     *notify.Notification
	calls    int
	profiles []profile.Profile
	titles   []string
	block    chan struct{}
}

func (m *mockAdvisor) CareerSuggestions(ctx context.Context, p profile.Profile) []career.Suggestion {
	if m.block != nil {
		<-m.block
	}
	m.mu.Lock()
	m.calls++
	m.profiles = append(m.profiles, p)
	m.mu.Unlock()
	if m.note != nil {
		notify.FromContext(ctx).Notify(*m.note)
	}
	if m.careers == nil {
		return []career.Suggestion{}
	}
	return m.careers
}

func (m *mockAdvisor) SkillGap(ctx context.Context, p profile.Profile, title string) career.SkillGap {
	m.mu.Lock()
	m.calls++
	m.titles = append(m.titles, title)
	m.mu.Unlock()
	if m.note != nil {
		notify.FromContext(ctx).Notify(*m.note)
	}
	if m.gap.MissingSkills == nil {
		return career.EmptySkillGap()
	}
	return m.gap
}

func (m *mockAdvisor) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// --- helpers ---

func toolText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("no content in result")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", result.Content[0])
	}
	return tc.Text
}

func makeCallToolRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func sampleCareers() []career.Suggestion {
	return []career.Suggestion{
		{ID: 1000, Title: "Data Scientist", RequiredSkills: []string{"Python", "SQL"}, SalaryRange: "$90k-$150k"},
		{ID: 1001, Title: "UX Designer", RequiredSkills: []string{"Figma"}},
	}
}

func fullAnswers() advisor.Answers {
	a := advisor.Answers{}
	for _, q := range advisor.Questions() {
		a[q.Text] = q.Options[1].Label
	}
	return a
}

// --- tests ---

func TestMCPTool_SuggestCareers(t *testing.T) {
	adv := &mockAdvisor{careers: sampleCareers()}
	handler := mcpSuggestCareers(MCPDeps{Advisor: adv})

	req := makeCallToolRequest("suggest_careers", map[string]interface{}{
		"profile": `{"name":"Ada","interests":["Science","Science"],"skills":{"technical":["Python"]}}`,
	})
	result, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error: %s", toolText(t, result))
	}

	var resp RecommendationsResponse
	if err := json.Unmarshal([]byte(toolText(t, result)), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(resp.Careers) != 2 {
		t.Fatalf("expected 2 careers, got %d", len(resp.Careers))
	}

	got := adv.profiles[0]
	if got.Name != "Ada" {
		t.Errorf("profile name = %q", got.Name)
	}
	if len(got.Interests) != 1 {
		t.Errorf("interests not deduplicated: %v", got.Interests)
	}
	if got.Preferences.Environment != profile.EnvironmentBoth {
		t.Errorf("missing preferences should default, got %q", got.Preferences.Environment)
	}
}

func TestMCPTool_SuggestCareers_InvalidProfile(t *testing.T) {
	adv := &mockAdvisor{}
	handler := mcpSuggestCareers(MCPDeps{Advisor: adv})

	for name, args := range map[string]map[string]interface{}{
		"missing":    {},
		"not json":   {"profile": "Ada, 29"},
		"bad enum":   {"profile": `{"preferences":{"environment":"space","workStyle":"solo","pace":"fast"}}`},
	} {
		t.Run(name, func(t *testing.T) {
			result, err := handler(context.Background(), makeCallToolRequest("suggest_careers", args))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !result.IsError {
				t.Fatalf("expected tool error, got %s", toolText(t, result))
			}
		})
	}
	if adv.callCount() != 0 {
		t.Errorf("advisor called %d times for invalid input", adv.callCount())
	}
}

func TestMCPTool_SkillGap(t *testing.T) {
	adv := &mockAdvisor{gap: career.SkillGap{MissingSkills: []string{"SQL"}, LearningResources: []career.Resource{}}}
	handler := mcpSkillGap(MCPDeps{Advisor: adv})

	req := makeCallToolRequest("skill_gap", map[string]interface{}{
		"profile": `{"name":"Ada"}`,
		"career":  "Data Scientist",
	})
	result, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error: %s", toolText(t, result))
	}
	if !strings.Contains(toolText(t, result), `"missingSkills":["SQL"]`) {
		t.Errorf("unexpected response: %s", toolText(t, result))
	}
	if adv.titles[0] != "Data Scientist" {
		t.Errorf("title = %q", adv.titles[0])
	}

	req = makeCallToolRequest("skill_gap", map[string]interface{}{"profile": `{}`})
	result, _ = handler(context.Background(), req)
	if !result.IsError {
		t.Error("expected error without career")
	}
}

func TestMCPTool_PersonalityQuestions(t *testing.T) {
	result, err := mcpPersonalityQuestions()(context.Background(), makeCallToolRequest("personality_questions", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var qs []advisor.Question
	if err := json.Unmarshal([]byte(toolText(t, result)), &qs); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(qs) != 10 {
		t.Fatalf("expected 10 questions, got %d", len(qs))
	}
}

func TestMCPTool_PersonalityResult(t *testing.T) {
	handler := mcpPersonalityResult(MCPDeps{Analyzer: advisor.StaticAnalyzer{}})

	answers, _ := json.Marshal(fullAnswers())
	result, err := handler(context.Background(), makeCallToolRequest("personality_result", map[string]interface{}{
		"answers": string(answers),
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error: %s", toolText(t, result))
	}

	var got advisor.PersonalityResult
	if err := json.Unmarshal([]byte(toolText(t, result)), &got); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if got.Type != "INTJ" {
		t.Errorf("type = %q, want INTJ", got.Type)
	}

	result, _ = handler(context.Background(), makeCallToolRequest("personality_result", map[string]interface{}{
		"answers": `{}`,
	}))
	if !result.IsError {
		t.Error("expected error for incomplete answers")
	}
}

func TestMCPTool_CompareCareers(t *testing.T) {
	handler := mcpCompareCareers()

	raw, _ := json.Marshal(sampleCareers())
	result, err := handler(context.Background(), makeCallToolRequest("compare_careers", map[string]interface{}{
		"careers": string(raw),
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error: %s", toolText(t, result))
	}

	var cmp career.Comparison
	if err := json.Unmarshal([]byte(toolText(t, result)), &cmp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(cmp.Titles) != 2 || len(cmp.Rows) != 4 {
		t.Fatalf("unexpected comparison: %+v", cmp)
	}

	one, _ := json.Marshal(sampleCareers()[:1])
	result, _ = handler(context.Background(), makeCallToolRequest("compare_careers", map[string]interface{}{
		"careers": string(one),
	}))
	if !result.IsError {
		t.Error("expected error for a single career")
	}
}

func TestMCPResource_Options(t *testing.T) {
	contents, err := mcpResourceOptions()(context.Background(), mcp.ReadResourceRequest{
		Params: mcp.ReadResourceParams{URI: "compass://options"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("expected 1 content, got %d", len(contents))
	}

	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("expected TextResourceContents, got %T", contents[0])
	}
	var opts profile.OptionSet
	if err := json.Unmarshal([]byte(tc.Text), &opts); err != nil {
		t.Fatalf("failed to parse options JSON: %v", err)
	}
	if len(opts.Subjects) == 0 || len(opts.SoftSkills) == 0 {
		t.Errorf("options incomplete: %+v", opts)
	}
}

func TestNewMCPServer(t *testing.T) {
	s := NewMCPServer(MCPDeps{Advisor: &mockAdvisor{}, Analyzer: advisor.StaticAnalyzer{}})
	if s == nil {
		t.Fatal("NewMCPServer returned nil")
	}
}
