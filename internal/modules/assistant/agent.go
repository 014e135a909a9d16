package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const maxReplyBytes = 1 << 20

// AgentClient forwards questions to the external agent. No retries.
type AgentClient struct {
	URL    string
	Token  string
	Client *http.Client
}

func NewAgentClient(url, token string) *AgentClient {
	return &AgentClient{URL: url, Token: token, Client: &http.Client{Timeout: 60 * time.Second}}
}

func (a *AgentClient) Ask(ctx context.Context, payload AgentRequest) (*Reply, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal agent request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create agent request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if a.Token != "" {
		req.Header.Set("Authorization", "Bearer "+a.Token)
	}

	client := a.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call agent: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return nil, fmt.Errorf("read agent reply: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &AgentError{Status: resp.StatusCode, Body: errorBody(raw)}
	}
	reply := Normalize(raw)
	return &reply, nil
}

// Normalize maps the agent's reply onto {answer, raw}. A JSON string is the
// answer itself; an object yields its first non-empty answer, body, text or
// output field; anything else is used as trimmed text.
func Normalize(body []byte) Reply {
	text := strings.TrimSpace(string(body))

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return Reply{Answer: text}
	}

	switch t := v.(type) {
	case string:
		return Reply{Answer: t}
	case map[string]any:
		for _, key := range []string{"answer", "body", "text", "output"} {
			if s, ok := t[key].(string); ok && strings.TrimSpace(s) != "" {
				return Reply{Answer: s, Raw: t}
			}
		}
		return Reply{Answer: "", Raw: t}
	default:
		return Reply{Answer: text}
	}
}

func errorBody(raw []byte) any {
	var v any
	if err := json.Unmarshal(raw, &v); err == nil {
		return v
	}
	return strings.TrimSpace(string(raw))
}
