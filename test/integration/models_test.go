package integration

import (
	"net/http"
	"testing"

	"github.com/crewgate/crewgate/pkg/api"
)

func TestListModels(t *testing.T) {
	resp := getURL(t, testEnv.BaseURL()+"/v1/models")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var list api.ModelList
	decodeJSON(t, resp, &list)

	if list.Object != "list" {
		t.Errorf("object = %q, want list", list.Object)
	}
	if len(list.Data) != 1 {
		t.Fatalf("expected 1 model, got %d", len(list.Data))
	}
	model := list.Data[0]
	if model.ID != api.DefaultModelID {
		t.Errorf("model id = %q, want %q", model.ID, api.DefaultModelID)
	}
	if model.ContextLength != api.DefaultContextSize {
		t.Errorf("context_length = %d, want %d", model.ContextLength, api.DefaultContextSize)
	}
}

func TestListModelsStable(t *testing.T) {
	first := readBody(t, getURL(t, testEnv.BaseURL()+"/v1/models"))
	second := readBody(t, getURL(t, testEnv.BaseURL()+"/v1/models"))

	if first != second {
		t.Errorf("listing changed between calls:\nfirst:  %s\nsecond: %s", first, second)
	}
}
