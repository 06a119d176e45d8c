package conversation

import (
	"context"
	"fmt"

	"agentdesk/internal/domain/customgpt"
)

// EchoResponder is the stand-in assistant used until a real model
// provider integration is configured. It acknowledges the message in
// the voice of the assistant it speaks for.
type EchoResponder struct{}

// NewEchoResponder constructs an EchoResponder.
func NewEchoResponder() *EchoResponder {
	return &EchoResponder{}
}

// Respond returns a canned acknowledgement of the user message.
func (*EchoResponder) Respond(_ context.Context, gpt *customgpt.CustomGPT, _ []*Message, userMessage string) (string, error) {
	name := "Assistant"
	if gpt != nil && gpt.Name != "" {
		name = gpt.Name
	}
	return fmt.Sprintf("[%s] You said: %s", name, userMessage), nil
}
