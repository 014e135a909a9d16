package assistant

import "encoding/json"

type AskRequest struct {
	Question  string          `json:"question" validate:"required,max=4000"`
	SessionID string          `json:"sessionId" validate:"max=200"`
	Context   json.RawMessage `json:"context"`
}

// AgentRequest is the body posted to the agent.
type AgentRequest struct {
	Question  string `json:"question"`
	UserID    string `json:"userId"`
	SessionID string `json:"sessionId"`
	Context   any    `json:"context"`
}

type Reply struct {
	Answer string `json:"answer"`
	Raw    any    `json:"raw,omitempty"`
}
