package folio

// Role of the author of a turn.
type Role string

const (
	User      Role = "user"
	Assistant Role = "assistant"
)

// Turn is one message of a conversation. Tool is only set on assistant turns
// and names the tool selected to produce it.
type Turn struct {
	Role    Role     `json:"role"`
	Content string   `json:"content"`
	Tool    ToolName `json:"tool,omitempty"`
}

// History is the ordered, append-only list of prior turns of a session.
// It is owned by the caller; the assistant only reads it.
type History []Turn

// Last returns at most the n most recent turns.
func (h History) Last(n int) History {
	if n <= 0 {
		return nil
	}
	if len(h) <= n {
		return h
	}
	return h[len(h)-n:]
}
