package llm

import "github.com/tmc/langchaingo/llms"

// FromChatMessages converts a langchaingo chat history into prompt messages.
// Generic and function/tool messages are sent as user turns.
func FromChatMessages(history []llms.ChatMessage) []Message {
	out := make([]Message, 0, len(history))
	for _, m := range history {
		switch m.GetType() {
		case llms.ChatMessageTypeSystem:
			out = append(out, System(m.GetContent()))
		case llms.ChatMessageTypeAI:
			out = append(out, Assistant(m.GetContent()))
		default:
			out = append(out, User(m.GetContent()))
		}
	}
	return out
}
