package schema

import "time"

// CompletionStatus tags the outcome of a text-generation call.
type CompletionStatus string

// Completion outcomes.
const (
	CompletionOK     CompletionStatus = "ok"
	CompletionFailed CompletionStatus = "failed"
)

// User-facing replies shown when the text-generation boundary fails.
const (
	ServiceUnavailableReply = "I encountered an issue accessing the AI service. Please try again later."
	ProcessingErrorReply    = "I'm sorry, I encountered an error while processing your request. Could you rephrase it?"
	GenericErrorReply       = "I apologize, but I encountered an error. Please try again."
)

// ChatTurn is one message in a conversation.
type ChatTurn struct {
	Role ChatRole `json:"role"`
	Text string   `json:"text"`
}

// Completion is the explicit result of a text-generation call.
type Completion struct {
	Status CompletionStatus `json:"status"`
	Text   string           `json:"text,omitempty"`
	Reason string           `json:"reason,omitempty"` // Set only when Status is CompletionFailed
}

// OK reports whether the completion succeeded.
func (c Completion) OK() bool {
	return c.Status == CompletionOK
}

// Completed builds a successful completion.
func Completed(text string) Completion {
	return Completion{Status: CompletionOK, Text: text}
}

// CompletionFailure builds a failed completion carrying the reason.
func CompletionFailure(reason string) Completion {
	return Completion{Status: CompletionFailed, Reason: reason}
}

// ChatMessageRecord represents a row from the clio_chat_messages table.
type ChatMessageRecord struct {
	ID        int64
	UserID    int64
	Role      ChatRole
	Content   string
	Category  PromptCategory
	CreatedAt time.Time
}
