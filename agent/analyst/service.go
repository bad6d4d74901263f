// Package analyst runs the conversational loop: validate the question,
// pick analytics tools with the model, execute them against the backend,
// and compose a grounded answer.
package analyst

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/tanpawarit/RetailAnalyst/agent/contract"
	nodex "github.com/tanpawarit/RetailAnalyst/agent/nodes"
	promptx "github.com/tanpawarit/RetailAnalyst/agent/prompt"
	sessionx "github.com/tanpawarit/RetailAnalyst/agent/session"
)

type Analyst struct {
	store   sessionx.Store
	gateway contractx.ToolGateway
	archive contractx.ExchangeArchive

	toolRunner    compose.Runnable[map[string]any, *schema.Message]
	composeRunner compose.Runnable[map[string]any, nodex.ComposerOutput]
	graphRunner   compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	allowedTools map[string]struct{}

	now func() time.Time
}

func New(
	chatModel einomodel.ToolCallingChatModel,
	tools []*schema.ToolInfo,
	gateway contractx.ToolGateway,
	store sessionx.Store,
	archive contractx.ExchangeArchive,
	prompts promptx.PromptSet,
) (*Analyst, error) {
	if chatModel == nil {
		return nil, errors.New("chat model is required")
	}
	if gateway == nil {
		return nil, errors.New("tool gateway is required")
	}
	if store == nil {
		return nil, errors.New("session store is required")
	}
	if archive == nil {
		archive = noopArchive{}
	}
	if strings.TrimSpace(prompts.System) == "" || strings.TrimSpace(prompts.Composer) == "" {
		return nil, fmt.Errorf("%w: system and composer prompts are required", contractx.ErrPromptMissing)
	}
	if len(tools) == 0 {
		return nil, errors.New("tool catalog is empty")
	}

	allowedTools := make(map[string]struct{}, len(tools))
	for _, t := range tools {
		if t == nil || strings.TrimSpace(t.Name) == "" {
			continue
		}
		allowedTools[t.Name] = struct{}{}
	}

	a := &Analyst{
		store:        store,
		gateway:      gateway,
		archive:      archive,
		allowedTools: allowedTools,
		now:          time.Now,
	}

	ctx := context.Background()

	toolModel, err := chatModel.WithTools(tools)
	if err != nil {
		return nil, fmt.Errorf("%w: bind analytics tools: %v", contractx.ErrModelInvoke, err)
	}
	toolRunner, err := compileToolPlanningGraph(ctx, toolModel, prompts.System)
	if err != nil {
		return nil, fmt.Errorf("%w: compile tool planning graph: %v", contractx.ErrModelInvoke, err)
	}
	a.toolRunner = toolRunner

	composeRunner, err := compileStructuredLLMGraph[nodex.ComposerOutput](ctx, chatModel, prompts.Composer, "analyst.composer_graph")
	if err != nil {
		return nil, fmt.Errorf("%w: compile composer graph: %v", contractx.ErrModelInvoke, err)
	}
	a.composeRunner = composeRunner

	graphRunner, err := a.compileAnswerGraph(ctx)
	if err != nil {
		return nil, err
	}
	a.graphRunner = graphRunner

	return a, nil
}

// Answer handles one user question end to end.
func (a *Analyst) Answer(ctx context.Context, sessionID string, query string) (contractx.AgentAnswer, error) {
	if canned, ok := quickResponse(query); ok {
		return contractx.AgentAnswer{
			Query:      strings.TrimSpace(query),
			Response:   canned,
			Confidence: 1.0,
			Timestamp:  a.now().UTC(),
		}, nil
	}

	out, err := a.graphRunner.Invoke(ctx, nodex.GraphInput{
		SessionID: sessionID,
		Query:     query,
	})
	if err != nil {
		return contractx.AgentAnswer{}, err
	}
	return out.Answer, nil
}

// quickResponse answers conversational pleasantries without the model.
func quickResponse(query string) (string, bool) {
	text := strings.ToLower(strings.TrimSpace(query))
	switch {
	case text == "hi" || text == "hello" || text == "hey":
		return promptx.Greeting, true
	case text == "help" || text == "what can you do" || text == "what can you do?":
		return promptx.Help, true
	case strings.HasPrefix(text, "thank") || text == "thanks":
		return promptx.Thanks, true
	}
	return "", false
}

type noopArchive struct{}

func (noopArchive) Record(context.Context, string, contractx.AgentAnswer) error {
	return nil
}

var _ contractx.Analyst = (*Analyst)(nil)
