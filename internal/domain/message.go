// Package domain defines core business entities and value objects for xplain.
//
// The domain layer is independent of infrastructure concerns and represents
// pure data structures plus the content classifier, which is deterministic
// logic with no side effects.
package domain

// Chat roles as the chat-completion API expects them.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one ordered role/content pair sent to the backend.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ExecutionResult captures the outcome of re-running a shell command.
type ExecutionResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	TimedOut bool
}
