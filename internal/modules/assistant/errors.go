package assistant

import (
	"errors"
	"fmt"
)

var ErrAgentNotConfigured = errors.New("assistant agent not configured")

// AgentError is an HTTP error answered by the agent itself.
type AgentError struct {
	Status int
	Body   any
}

func (e *AgentError) Error() string {
	return fmt.Sprintf("agent responded with status %d", e.Status)
}
