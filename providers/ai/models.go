package ai

import "encoding/json"

/*
	##### PROVIDER INPUT #####
*/

// ChatRequest represents a request to send a chat message
type ChatRequest struct {
	Model            string            `json:"model,omitempty"`             // Model name or identifier
	Messages         []Message         `json:"messages"`                    // Conversation messages, system prompt excluded
	SystemPrompt     string            `json:"system_prompt,omitempty"`     // Optional system prompt
	ResponseFormat   *ResponseFormat   `json:"response_format,omitempty"`   // Optional response format
	GenerationConfig *GenerationConfig `json:"generation_config,omitempty"` // Optional generation configuration
}

// Message represents a single message in a conversation
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content,omitempty"`
}

type GenerationConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`       // Sampling temperature; nil keeps the provider default
	MaxOutputTokens int      `json:"max_output_tokens,omitempty"` // Optional cap on generated tokens
}

type ResponseFormat struct {
	Type string `json:"type,omitempty"` // "text" or "json_object"
}

const (
	ResponseFormatText = "text"
	ResponseFormatJSON = "json_object"
)

/*
	##### PROVIDER OUTPUT #####
*/

type Usage struct {
	PromptTokens     int `json:"prompt_tokens,omitempty"`
	CompletionTokens int `json:"completion_tokens,omitempty"`
	TotalTokens      int `json:"total_tokens,omitempty"`
}

// ChatResponse represents the response from a chat completion
type ChatResponse struct {
	Id           string `json:"id"`
	Model        string `json:"model"`
	Content      string `json:"content"`
	FinishReason string `json:"finish_reason,omitempty"`
	Usage        *Usage `json:"usage,omitempty"` // nil when the provider reported no usage

	// Raw is the undecoded provider body. Callers that cannot trust the
	// decoded shape read it directly.
	Raw json.RawMessage `json:"-"`
}

// MessageRole represents the role of a message; compatible with string
type MessageRole string

const (
	RoleSystem    MessageRole = "system"    // System instructions/configuration
	RoleUser      MessageRole = "user"      // End-user message
	RoleAssistant MessageRole = "assistant" // Model response
)

// UserMessage is a convenience constructor for a single user-role message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}
