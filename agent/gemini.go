package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/folio"
	"github.com/etnz/folio/router"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// generator is the part of genai.Models the router needs.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiRouter is a router.Automated backed by Gemini function calling.
type GeminiRouter struct {
	models generator
	model  string
}

// NewGeminiRouter returns a router using client and model (DefaultModel
// when empty).
func NewGeminiRouter(client *genai.Client, model string) *GeminiRouter {
	return newGeminiRouter(client.Models, model)
}

func newGeminiRouter(models generator, model string) *GeminiRouter {
	if model == "" {
		model = DefaultModel
	}
	return &GeminiRouter{models: models, model: model}
}

var errEmptyAnswer = errors.New("empty answer from model")

// Route asks the model to pick a tool for the query. The first function call
// of the answer wins; without any, the answer text is returned.
func (g *GeminiRouter) Route(ctx context.Context, req router.Request) (router.Outcome, error) {
	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{FunctionDeclarations: NewDeclarations(req.Catalog)},
		},
	}
	if req.Policy != "" {
		config.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.Policy}}}
	}

	resp, err := g.models.GenerateContent(ctx, g.model, contents(req), config)
	if err != nil {
		return router.Outcome{}, fmt.Errorf("generate content with %s: %w", g.model, err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return router.Outcome{}, errEmptyAnswer
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil {
			continue
		}
		if call := part.FunctionCall; call != nil {
			args, err := folio.ArgsFromMap(call.Args)
			if err != nil {
				return router.Outcome{}, fmt.Errorf("arguments of %s: %w", call.Name, err)
			}
			return router.Outcome{Route: &folio.Route{Tool: folio.ToolName(call.Name), Args: args}}, nil
		}
		text.WriteString(part.Text)
	}
	if strings.TrimSpace(text.String()) == "" {
		return router.Outcome{}, errEmptyAnswer
	}
	return router.Outcome{Text: text.String()}, nil
}

// contents converts the history window and the query to model contents.
func contents(req router.Request) []*genai.Content {
	res := make([]*genai.Content, 0, len(req.History)+1)
	for _, t := range req.History {
		var role genai.Role = genai.RoleUser
		if t.Role == folio.Assistant {
			role = genai.RoleModel
		}
		res = append(res, genai.NewContentFromText(t.Content, role))
	}
	return append(res, genai.NewContentFromText(req.Query, genai.RoleUser))
}
