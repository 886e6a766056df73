package api

// Message roles understood by the gateway. The role field is an open
// string on the wire; these constants cover the conventional values.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// FinishReasonStop is the terminal reason reported for every completion.
// The pipeline always runs to completion or fails; there is no length
// cutoff or tool-call handoff.
const FinishReasonStop = "stop"

// ObjectChatCompletion is the object tag of a chat completion envelope.
const ObjectChatCompletion = "chat.completion"

// ChatMessage is a single role/content turn in a conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionRequest is the body of POST /v1/chat/completions.
// The model is echoed back verbatim and never validated against the
// model listing.
type ChatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

// LastUserMessage scans messages from the end toward the start and
// returns the content of the first entry whose role is "user"; under a
// multi-turn history the last user turn wins. The second return value
// reports whether a user message was found.
func LastUserMessage(messages []ChatMessage) (string, bool) {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			return messages[i].Content, true
		}
	}
	return "", false
}

// Usage reports token counts for a completion. The gateway performs no
// token accounting, so all three fields are always zero.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Choice is a single completion choice. The gateway always produces
// exactly one choice at index zero.
type Choice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// ChatCompletionResponse is the OpenAI-compatible completion envelope.
type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

// NewChatCompletionResponse builds a completion envelope with a fresh ID,
// the given creation timestamp, the echoed model name, and a single
// assistant choice carrying the pipeline's text. Usage stays at zero.
func NewChatCompletionResponse(model, content string, created int64) *ChatCompletionResponse {
	return &ChatCompletionResponse{
		ID:      NewCompletionID(),
		Object:  ObjectChatCompletion,
		Created: created,
		Model:   model,
		Choices: []Choice{{
			Index: 0,
			Message: ChatMessage{
				Role:    RoleAssistant,
				Content: content,
			},
			FinishReason: FinishReasonStop,
		}},
	}
}

// Model describes one entry of the model listing. Permission is always
// an empty array and Parent always serializes as JSON null, matching
// what model-discovery clients expect from the upstream API.
type Model struct {
	ID            string  `json:"id"`
	Object        string  `json:"object"`
	Created       int64   `json:"created"`
	OwnedBy       string  `json:"owned_by"`
	Permission    []any   `json:"permission"`
	Root          string  `json:"root"`
	Parent        *string `json:"parent"`
	MaxTokens     int     `json:"max_tokens"`
	ContextLength int     `json:"context_length"`
}

// ModelList is the body of GET /v1/models.
type ModelList struct {
	Object string  `json:"object"`
	Data   []Model `json:"data"`
}

// Defaults for the advertised model card. The created timestamp is the
// fixed value the upstream API uses for its own legacy models; clients
// treat it as opaque.
const (
	DefaultModelID      = "app-rag-model"
	DefaultModelCreated = 1677652288
	DefaultContextSize  = 131072
)

// NewModelCard builds a model descriptor for the listing endpoint.
// Zero-valued arguments fall back to the defaults above.
func NewModelCard(id string, contextLength int) Model {
	if id == "" {
		id = DefaultModelID
	}
	if contextLength <= 0 {
		contextLength = DefaultContextSize
	}
	return Model{
		ID:            id,
		Object:        "model",
		Created:       DefaultModelCreated,
		OwnedBy:       id,
		Permission:    []any{},
		Root:          id,
		Parent:        nil,
		MaxTokens:     contextLength,
		ContextLength: contextLength,
	}
}

// NewModelList wraps model cards in the listing envelope.
func NewModelList(models ...Model) ModelList {
	if models == nil {
		models = []Model{}
	}
	return ModelList{Object: "list", Data: models}
}
