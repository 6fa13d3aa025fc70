package gemini

import (
	"fmt"
	"strings"
	"time"

	"github.com/leofalp/sitefinder/providers/ai"
)

// requestToGemini converts an ai.ChatRequest to a Gemini generateContentRequest.
func requestToGemini(request ai.ChatRequest) generateContentRequest {
	req := generateContentRequest{
		Contents:         buildContents(request.Messages),
		GenerationConfig: buildGenerationConfig(request.GenerationConfig, request.ResponseFormat),
	}

	if request.SystemPrompt != "" {
		req.SystemInstruction = &systemInstruction{
			Parts: []part{{Text: request.SystemPrompt}},
		}
	}

	return req
}

// buildContents converts messages to Gemini contents.
// Role mapping: user -> user, assistant -> model, system -> user.
func buildContents(messages []ai.Message) []content {
	contents := make([]content, 0, len(messages))

	for _, msg := range messages {
		switch msg.Role {
		case ai.RoleAssistant:
			if msg.Content != "" {
				contents = append(contents, content{Role: "model", Parts: []part{{Text: msg.Content}}})
			}
		default:
			// system messages belong in SystemInstruction; treat strays as user input
			contents = append(contents, content{Role: "user", Parts: []part{{Text: msg.Content}}})
		}
	}

	return contents
}

func buildGenerationConfig(cfg *ai.GenerationConfig, respFmt *ai.ResponseFormat) *generationConfig {
	if cfg == nil && respFmt == nil {
		return nil
	}

	gc := &generationConfig{}
	if cfg != nil {
		gc.Temperature = cfg.Temperature
		if cfg.MaxOutputTokens > 0 {
			maxTokens := cfg.MaxOutputTokens
			gc.MaxOutputTokens = &maxTokens
		}
	}
	if respFmt != nil && respFmt.Type == ai.ResponseFormatJSON {
		gc.ResponseMimeType = "application/json"
	}

	return gc
}

// geminiToGeneric converts a Gemini generateContentResponse to ai.ChatResponse.
// Thought parts are excluded from Content.
func geminiToGeneric(resp generateContentResponse) *ai.ChatResponse {
	result := &ai.ChatResponse{
		Id:    resp.ResponseID,
		Model: resp.ModelVersion,
	}
	if result.Id == "" {
		result.Id = fmt.Sprintf("gemini-%d", time.Now().UnixNano())
	}

	if resp.UsageMetadata != nil {
		result.Usage = &ai.Usage{
			PromptTokens:     resp.UsageMetadata.PromptTokenCount,
			CompletionTokens: resp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      resp.UsageMetadata.TotalTokenCount,
		}
	}

	if len(resp.Candidates) == 0 {
		result.FinishReason = "error"
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			result.FinishReason = "content_filter"
		}
		return result
	}

	first := resp.Candidates[0]
	result.FinishReason = mapFinishReason(first.FinishReason)

	if first.Content != nil {
		var textParts []string
		for _, p := range first.Content.Parts {
			if p.Text != "" && !p.Thought {
				textParts = append(textParts, p.Text)
			}
		}
		result.Content = strings.Join(textParts, "\n")
	}

	return result
}

// mapFinishReason converts Gemini finish reason to ai.ChatResponse finish reason.
func mapFinishReason(geminiReason string) string {
	switch geminiReason {
	case "MAX_TOKENS":
		return "length"
	case "SAFETY", "RECITATION", "BLOCKLIST", "PROHIBITED_CONTENT":
		return "content_filter"
	default:
		return "stop"
	}
}
