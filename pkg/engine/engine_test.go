package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/crewgate/crewgate/pkg/api"
	"github.com/crewgate/crewgate/pkg/pipeline"
)

// countingRunner records every query it receives.
type countingRunner struct {
	queries []string
	reply   string
	err     error
}

func (r *countingRunner) Name() string { return "counting" }

func (r *countingRunner) Generate(_ context.Context, query string) (string, error) {
	r.queries = append(r.queries, query)
	if r.err != nil {
		return "", r.err
	}
	return r.reply, nil
}

func (r *countingRunner) Close() error { return nil }

func TestNewRequiresRunner(t *testing.T) {
	if _, err := New(nil, Config{}); err == nil {
		t.Fatal("expected error for nil runner")
	}
}

func TestChatCompletionUsesLastUserMessage(t *testing.T) {
	runner := &countingRunner{reply: "answer"}
	eng, err := New(runner, Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	req := &api.ChatCompletionRequest{
		Model: "app-rag-model",
		Messages: []api.ChatMessage{
			{Role: "system", Content: "x"},
			{Role: "user", Content: "A"},
			{Role: "assistant", Content: "B"},
			{Role: "user", Content: "C"},
		},
	}

	resp, err := eng.ChatCompletion(context.Background(), req)
	if err != nil {
		t.Fatalf("ChatCompletion: %v", err)
	}

	if len(runner.queries) != 1 {
		t.Fatalf("pipeline invoked %d times, want exactly once", len(runner.queries))
	}
	if runner.queries[0] != "C" {
		t.Errorf("extracted query = %q, want %q", runner.queries[0], "C")
	}
	if got := resp.Choices[0].Message.Content; got != "answer" {
		t.Errorf("content = %q, want %q", got, "answer")
	}
}

func TestChatCompletionEnvelope(t *testing.T) {
	eng, err := New(&countingRunner{reply: "r"}, Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	resp, err := eng.ChatCompletion(context.Background(), &api.ChatCompletionRequest{
		Model:    "whatever-the-client-sent",
		Messages: []api.ChatMessage{{Role: "user", Content: "q"}},
	})
	if err != nil {
		t.Fatalf("ChatCompletion: %v", err)
	}

	// Model is echoed verbatim, never validated.
	if resp.Model != "whatever-the-client-sent" {
		t.Errorf("model = %q, want echo of request model", resp.Model)
	}
	if resp.Object != "chat.completion" {
		t.Errorf("object = %q", resp.Object)
	}
	if !api.ValidateCompletionID(resp.ID) {
		t.Errorf("malformed ID %q", resp.ID)
	}
	if resp.Created == 0 {
		t.Error("created timestamp not set")
	}
	u := resp.Usage
	if u.PromptTokens != 0 || u.CompletionTokens != 0 || u.TotalTokens != 0 {
		t.Errorf("usage = %+v, want all zero", u)
	}
	if u.TotalTokens != u.PromptTokens+u.CompletionTokens {
		t.Errorf("usage totals inconsistent: %+v", u)
	}
	if resp.Choices[0].FinishReason != "stop" {
		t.Errorf("finish_reason = %q, want stop", resp.Choices[0].FinishReason)
	}
}

func TestChatCompletionNoUserMessage(t *testing.T) {
	runner := &countingRunner{reply: "never"}
	eng, err := New(runner, Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = eng.ChatCompletion(context.Background(), &api.ChatCompletionRequest{
		Model: "m",
		Messages: []api.ChatMessage{
			{Role: "system", Content: "x"},
			{Role: "assistant", Content: "y"},
		},
	})
	if !errors.Is(err, api.ErrNoUserMessage) {
		t.Fatalf("error = %v, want ErrNoUserMessage", err)
	}
	if len(runner.queries) != 0 {
		t.Errorf("pipeline invoked %d times, want zero", len(runner.queries))
	}
}

func TestChatCompletionPipelineError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{
			name:    "plain error is wrapped",
			err:     fmt.Errorf("vector store timeout"),
			wantMsg: "vector store timeout",
		},
		{
			name:    "APIError passes through",
			err:     api.NewPipelineError("crew unreachable"),
			wantMsg: "crew unreachable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, err := New(&countingRunner{err: tt.err}, Config{})
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			_, err = eng.ChatCompletion(context.Background(), &api.ChatCompletionRequest{
				Messages: []api.ChatMessage{{Role: "user", Content: "q"}},
			})

			var apiErr *api.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.Type != api.ErrorTypePipelineError {
				t.Errorf("type = %q, want pipeline_error", apiErr.Type)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", apiErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestModelList(t *testing.T) {
	eng, err := New(&countingRunner{}, Config{ModelID: "custom-model", ContextLength: 4096})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	list := eng.ModelList()
	if list.Object != "list" || len(list.Data) != 1 {
		t.Fatalf("list = %+v, want single-element listing", list)
	}
	if list.Data[0].ID != "custom-model" || list.Data[0].ContextLength != 4096 {
		t.Errorf("card = %+v", list.Data[0])
	}
}

func TestModelListDefaults(t *testing.T) {
	eng, err := New(&countingRunner{}, Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	card := eng.ModelList().Data[0]
	if card.ID != "app-rag-model" || card.ContextLength != 131072 || card.Created != 1677652288 {
		t.Errorf("card = %+v, want spec defaults", card)
	}
}

// Guard against accidental use: the fixture satisfies pipeline.Runner.
var _ pipeline.Runner = (*countingRunner)(nil)
