package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Agent answers one question.
type Agent interface {
	Ask(ctx context.Context, payload AgentRequest) (*Reply, error)
}

type Service struct {
	db    *gorm.DB
	agent Agent
}

// NewService accepts a nil agent; Ask then reports ErrAgentNotConfigured.
func NewService(db *gorm.DB, agent Agent) *Service {
	return &Service{db: db, agent: agent}
}

func (s *Service) Ask(ctx context.Context, userID string, req AskRequest) (*Reply, error) {
	if s.agent == nil {
		return nil, ErrAgentNotConfigured
	}

	var snapshot any
	if raw := strings.TrimSpace(string(req.Context)); raw != "" && raw != "null" {
		if err := json.Unmarshal(req.Context, &snapshot); err != nil {
			return nil, fmt.Errorf("decode context: %w", err)
		}
	} else {
		text, err := Snapshot(ctx, s.db)
		if err != nil {
			return nil, err
		}
		snapshot = text
	}

	return s.agent.Ask(ctx, AgentRequest{
		Question:  strings.TrimSpace(req.Question),
		UserID:    userID,
		SessionID: req.SessionID,
		Context:   snapshot,
	})
}
