package analyst

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/tanpawarit/RetailAnalyst/agent/contract"
	promptx "github.com/tanpawarit/RetailAnalyst/agent/prompt"
	sessionx "github.com/tanpawarit/RetailAnalyst/agent/session"
)

type fakeToolCallingModel struct {
	responses []*schema.Message
	err       error
	idx       int
}

func (f *fakeToolCallingModel) Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.idx >= len(f.responses) {
		return nil, errors.New("no fake response left")
	}
	msg := f.responses[f.idx]
	f.idx++
	return msg, nil
}

func (f *fakeToolCallingModel) Stream(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not implemented in fake model")
}

func (f *fakeToolCallingModel) WithTools(tools []*schema.ToolInfo) (einomodel.ToolCallingChatModel, error) {
	return f, nil
}

type fakeGateway struct {
	results []contractx.ToolResult
	err     error
	calls   [][]contractx.ToolRequest
}

func (f *fakeGateway) Execute(ctx context.Context, reqs []contractx.ToolRequest) ([]contractx.ToolResult, error) {
	f.calls = append(f.calls, append([]contractx.ToolRequest(nil), reqs...))
	if f.err != nil {
		return nil, f.err
	}
	return append([]contractx.ToolResult(nil), f.results...), nil
}

type fakeArchive struct {
	err      error
	recorded []contractx.AgentAnswer
}

func (f *fakeArchive) Record(ctx context.Context, sessionID string, answer contractx.AgentAnswer) error {
	if f.err != nil {
		return f.err
	}
	f.recorded = append(f.recorded, answer)
	return nil
}

func testTools() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: "visitors.current",
			Desc: "Current visitor count in the store.",
		},
		{
			Name: "cashier.status",
			Desc: "Cashier queue status and wait time.",
		},
	}
}

func newTestAnalyst(
	t *testing.T,
	model einomodel.ToolCallingChatModel,
	gateway contractx.ToolGateway,
	store sessionx.Store,
	archive contractx.ExchangeArchive,
) *Analyst {
	t.Helper()

	a, err := New(model, testTools(), gateway, store, archive, promptx.LoadPromptSet())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	a.now = func() time.Time {
		return time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	}
	return a
}

func TestAnswerToolPath(t *testing.T) {
	t.Parallel()

	model := &fakeToolCallingModel{
		responses: []*schema.Message{
			{
				Role: schema.Assistant,
				ToolCalls: []schema.ToolCall{
					{
						ID:   "call_1",
						Type: "function",
						Function: schema.FunctionCall{
							Name:      "visitors.current",
							Arguments: `{}`,
						},
					},
				},
			},
			{
				Content: `{"answer":"🏪 There are 42 visitors in the store right now."}`,
			},
		},
	}
	gateway := &fakeGateway{
		results: []contractx.ToolResult{
			{Tool: "visitors.current", Result: "**Visitors in store**: 42 people"},
		},
	}
	store := sessionx.NewMemoryStore()
	archive := &fakeArchive{}

	a := newTestAnalyst(t, model, gateway, store, archive)

	answer, err := a.Answer(context.Background(), "s1", "How many visitors are in the store?")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}

	if !strings.Contains(answer.Response, "42 visitors") {
		t.Fatalf("unexpected response: %q", answer.Response)
	}
	if len(answer.Sources) != 1 || answer.Sources[0] != "visitors.current" {
		t.Fatalf("unexpected sources: %#v", answer.Sources)
	}
	if answer.Confidence != 0.9 {
		t.Fatalf("confidence = %v, want 0.9", answer.Confidence)
	}

	if len(gateway.calls) != 1 || gateway.calls[0][0].Tool != "visitors.current" {
		t.Fatalf("unexpected gateway calls: %#v", gateway.calls)
	}

	transcript, err := store.Load(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(transcript.Turns) != 2 {
		t.Fatalf("expected question and answer saved, got %d turns", len(transcript.Turns))
	}

	if len(archive.recorded) != 1 {
		t.Fatalf("expected 1 archived exchange, got %d", len(archive.recorded))
	}
}

func TestAnswerDirectReplyWithoutTools(t *testing.T) {
	t.Parallel()

	model := &fakeToolCallingModel{
		responses: []*schema.Message{
			{Content: "I track visitors, queues, heatmaps, and forecasts for your store."},
		},
	}
	gateway := &fakeGateway{}
	store := sessionx.NewMemoryStore()

	a := newTestAnalyst(t, model, gateway, store, &fakeArchive{})

	answer, err := a.Answer(context.Background(), "s1", "Tell me what analytics you track")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if answer.Response == "" {
		t.Fatal("expected non-empty response")
	}
	if len(answer.Sources) != 0 {
		t.Fatalf("expected no sources, got %#v", answer.Sources)
	}
	if answer.Confidence != 0.5 {
		t.Fatalf("confidence = %v, want 0.5", answer.Confidence)
	}
	if len(gateway.calls) != 0 {
		t.Fatalf("gateway must not be called, got %#v", gateway.calls)
	}
}

func TestAnswerPartialToolFailureLowersConfidence(t *testing.T) {
	t.Parallel()

	model := &fakeToolCallingModel{
		responses: []*schema.Message{
			{
				Role: schema.Assistant,
				ToolCalls: []schema.ToolCall{
					{
						ID:       "call_1",
						Type:     "function",
						Function: schema.FunctionCall{Name: "visitors.current"},
					},
					{
						ID:       "call_2",
						Type:     "function",
						Function: schema.FunctionCall{Name: "cashier.status"},
					},
				},
			},
			{
				Content: `{"answer":"Visitor data is in; cashier data is unavailable right now."}`,
			},
		},
	}
	gateway := &fakeGateway{
		results: []contractx.ToolResult{
			{Tool: "visitors.current", Result: "**Visitors in store**: 10 people"},
			{Tool: "cashier.status", Error: "backend unavailable"},
		},
	}

	a := newTestAnalyst(t, model, gateway, sessionx.NewMemoryStore(), &fakeArchive{})

	answer, err := a.Answer(context.Background(), "s1", "How busy are the cashiers and how many visitors?")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if answer.Confidence != 0.7 {
		t.Fatalf("confidence = %v, want 0.7", answer.Confidence)
	}
	if len(answer.Sources) != 1 || answer.Sources[0] != "visitors.current" {
		t.Fatalf("failed tools must not be sources: %#v", answer.Sources)
	}
}

func TestAnswerAllToolsFailedReportsNoData(t *testing.T) {
	t.Parallel()

	// One response only: if the composer were invoked the fake would run dry.
	model := &fakeToolCallingModel{
		responses: []*schema.Message{
			{
				Role: schema.Assistant,
				ToolCalls: []schema.ToolCall{
					{
						ID:       "call_1",
						Type:     "function",
						Function: schema.FunctionCall{Name: "visitors.current"},
					},
				},
			},
		},
	}
	gateway := &fakeGateway{
		results: []contractx.ToolResult{
			{Tool: "visitors.current", Error: "backend unavailable"},
		},
	}

	a := newTestAnalyst(t, model, gateway, sessionx.NewMemoryStore(), &fakeArchive{})

	answer, err := a.Answer(context.Background(), "s1", "How many visitors right now?")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if answer.Response != promptx.NoData {
		t.Fatalf("response = %q, want the no-data notice", answer.Response)
	}
	if len(answer.Sources) != 0 {
		t.Fatalf("expected no sources, got %#v", answer.Sources)
	}
	if answer.Confidence != 0.5 {
		t.Fatalf("confidence = %v, want 0.5", answer.Confidence)
	}
}

func TestAnswerRejectsOffTopicQuery(t *testing.T) {
	t.Parallel()

	a := newTestAnalyst(t, &fakeToolCallingModel{}, &fakeGateway{}, sessionx.NewMemoryStore(), &fakeArchive{})

	_, err := a.Answer(context.Background(), "s1", "write me a poem about the sea")
	if !errors.Is(err, contractx.ErrQueryRejected) {
		t.Fatalf("expected ErrQueryRejected, got %v", err)
	}
}

func TestAnswerRejectsUnknownTool(t *testing.T) {
	t.Parallel()

	model := &fakeToolCallingModel{
		responses: []*schema.Message{
			{
				Role: schema.Assistant,
				ToolCalls: []schema.ToolCall{
					{
						ID:       "call_1",
						Type:     "function",
						Function: schema.FunctionCall{Name: "inventory.query", Arguments: `{"query":"mice"}`},
					},
				},
			},
		},
	}

	a := newTestAnalyst(t, model, &fakeGateway{}, sessionx.NewMemoryStore(), &fakeArchive{})

	_, err := a.Answer(context.Background(), "s1", "How many visitors today?")
	if !errors.Is(err, contractx.ErrSchemaViolation) {
		t.Fatalf("expected ErrSchemaViolation, got %v", err)
	}
}

func TestAnswerQuickResponseSkipsModel(t *testing.T) {
	t.Parallel()

	// The fake has no responses; any model call would fail the answer.
	a := newTestAnalyst(t, &fakeToolCallingModel{}, &fakeGateway{}, sessionx.NewMemoryStore(), &fakeArchive{})

	answer, err := a.Answer(context.Background(), "s1", "hello")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if answer.Response != promptx.Greeting {
		t.Fatalf("unexpected response: %q", answer.Response)
	}
	if answer.Confidence != 1.0 {
		t.Fatalf("confidence = %v, want 1.0", answer.Confidence)
	}
}

func TestAnswerSurvivesArchiveFailure(t *testing.T) {
	t.Parallel()

	model := &fakeToolCallingModel{
		responses: []*schema.Message{
			{Content: "Traffic looks steady today."},
		},
	}

	a := newTestAnalyst(t, model, &fakeGateway{}, sessionx.NewMemoryStore(), &fakeArchive{err: errors.New("db down")})

	answer, err := a.Answer(context.Background(), "s1", "analyze the store traffic")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if answer.Response == "" {
		t.Fatal("expected answer despite archive failure")
	}
}
