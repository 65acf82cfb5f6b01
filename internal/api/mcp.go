package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kalambet/careercompass/internal/advisor"
	"github.com/kalambet/careercompass/internal/career"
	"github.com/kalambet/careercompass/internal/notify"
	"github.com/kalambet/careercompass/internal/profile"
)

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Advisor  Advisor
	Analyzer advisor.PersonalityAnalyzer
}

// NewMCPServer creates an MCP server exposing the recommendation tools. The
// tools are stateless: every call carries the profile it is about.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	s := server.NewMCPServer(
		"compass",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("CareerCompass: career recommendations, skill gaps, comparisons and a personality quiz."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("suggest_careers",
			mcp.WithDescription("Suggest career paths for a profile."),
			mcp.WithString("profile", mcp.Description("Profile JSON: name, age, location, education, subjects, interests, skills{technical,soft}, preferences{environment,workStyle,pace}"), mcp.Required()),
		),
		mcpSuggestCareers(deps),
	)

	s.AddTool(
		mcp.NewTool("skill_gap",
			mcp.WithDescription("List the skills a profile lacks for a career and where to learn them."),
			mcp.WithString("profile", mcp.Description("Profile JSON"), mcp.Required()),
			mcp.WithString("career", mcp.Description("Career title"), mcp.Required()),
		),
		mcpSkillGap(deps),
	)

	s.AddTool(
		mcp.NewTool("personality_questions",
			mcp.WithDescription("Return the personality quiz questions and their options."),
		),
		mcpPersonalityQuestions(),
	)

	s.AddTool(
		mcp.NewTool("personality_result",
			mcp.WithDescription("Analyze quiz answers and return a personality type with suitable careers."),
			mcp.WithString("answers", mcp.Description("JSON object mapping question text to the chosen option label"), mcp.Required()),
		),
		mcpPersonalityResult(deps),
	)

	s.AddTool(
		mcp.NewTool("compare_careers",
			mcp.WithDescription("Compare two or three careers side by side."),
			mcp.WithString("careers", mcp.Description("JSON array of career suggestions"), mcp.Required()),
		),
		mcpCompareCareers(),
	)

	s.AddResource(
		mcp.NewResource(
			"compass://options",
			"Profile Options",
			mcp.WithResourceDescription("Predefined education levels, subjects, interests and skills"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceOptions(),
	)

	return s
}

func parseProfileArg(req mcp.CallToolRequest) (profile.Profile, *mcp.CallToolResult) {
	raw, err := req.RequireString("profile")
	if err != nil {
		return profile.Profile{}, mcpError("profile is required")
	}
	p, err := profile.Parse(raw)
	if err != nil {
		return profile.Profile{}, mcpError(fmt.Sprintf("invalid profile: %v", err))
	}
	return p, nil
}

func mcpSuggestCareers(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		p, errResult := parseProfileArg(req)
		if errResult != nil {
			return errResult, nil
		}

		var rec notify.Recorder
		careers := deps.Advisor.CareerSuggestions(notify.NewContext(ctx, &rec), p)
		return mcpJSON(RecommendationsResponse{Careers: careers, Notifications: rec.Drain()})
	}
}

func mcpSkillGap(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		p, errResult := parseProfileArg(req)
		if errResult != nil {
			return errResult, nil
		}
		title, err := req.RequireString("career")
		if err != nil || title == "" {
			return mcpError("career is required"), nil
		}

		var rec notify.Recorder
		gap := deps.Advisor.SkillGap(notify.NewContext(ctx, &rec), p, title)
		return mcpJSON(SkillGapResponse{Result: gap, Notifications: rec.Drain()})
	}
}

func mcpPersonalityQuestions() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcpJSON(advisor.Questions())
	}
}

func mcpPersonalityResult(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := req.RequireString("answers")
		if err != nil {
			return mcpError("answers is required"), nil
		}
		var answers advisor.Answers
		if err := json.Unmarshal([]byte(raw), &answers); err != nil {
			return mcpError(fmt.Sprintf("invalid answers JSON: %v", err)), nil
		}

		result, err := advisor.Analyze(ctx, deps.Analyzer, answers)
		if err != nil {
			return mcpError(fmt.Sprintf("analysis failed: %v", err)), nil
		}
		return mcpJSON(result)
	}
}

func mcpCompareCareers() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := req.RequireString("careers")
		if err != nil {
			return mcpError("careers is required"), nil
		}
		var careers []career.Suggestion
		if err := json.Unmarshal([]byte(raw), &careers); err != nil {
			return mcpError(fmt.Sprintf("invalid careers JSON: %v", err)), nil
		}

		cmp, err := career.Compare(careers)
		if err != nil {
			return mcpError(err.Error()), nil
		}
		return mcpJSON(cmp)
	}
}

func mcpResourceOptions() server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		b, err := json.Marshal(profile.Options())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal options: %w", err)
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

func mcpJSON(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcpError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcpText(string(b)), nil
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
