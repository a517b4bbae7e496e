package agent

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAgent = "agent"

	PartKindText = "text"
	PartKindData = "data"
)

// Part is one piece of a protocol message: a closed tagged variant of
// either free text or structured data, discriminated by Kind.
type Part struct {
	Kind string         `json:"kind"`
	Text string         `json:"text,omitempty"`
	Data map[string]any `json:"data,omitempty"`
}

func TextPart(text string) Part {
	return Part{Kind: PartKindText, Text: text}
}

func DataPart(data map[string]any) Part {
	return Part{Kind: PartKindData, Data: data}
}

func (p Part) Validate() error {
	switch p.Kind {
	case PartKindText, PartKindData:
		return nil
	default:
		return fmt.Errorf("unknown part kind %q", p.Kind)
	}
}

// Message is one conversation turn. Immutable once appended to a context.
type Message struct {
	Kind      string `json:"kind"`
	Role      string `json:"role"`
	Parts     []Part `json:"parts"`
	MessageID string `json:"messageId,omitempty"`
	TaskID    string `json:"taskId,omitempty"`
}

func NewAgentMessage(taskID string, parts ...Part) Message {
	return Message{
		Kind:      "message",
		Role:      RoleAgent,
		Parts:     parts,
		MessageID: uuid.NewString(),
		TaskID:    taskID,
	}
}

// Text returns the first text part, trimmed. Empty when the message
// carries no text.
func (m Message) Text() string {
	for _, p := range m.Parts {
		if p.Kind == PartKindText {
			return strings.TrimSpace(p.Text)
		}
	}
	return ""
}

func (m Message) Validate() error {
	if m.Role != RoleUser && m.Role != RoleAgent {
		return fmt.Errorf("unknown message role %q", m.Role)
	}
	if len(m.Parts) == 0 {
		return fmt.Errorf("message has no parts")
	}
	for _, p := range m.Parts {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Artifact is a named structured payload attached to a task result,
// distinct from the text message.
type Artifact struct {
	Name  string `json:"name"`
	Parts []Part `json:"parts"`
}

func DataArtifact(name string, data map[string]any) Artifact {
	return Artifact{Name: name, Parts: []Part{DataPart(data)}}
}

func TextArtifact(name string, text string) Artifact {
	return Artifact{Name: name, Parts: []Part{TextPart(text)}}
}
