package llm

import (
	"context"
	"sync"
)

// Conversation holds the history of one chat.
type Conversation struct {
	ID          string
	messages    []Message
	totalTokens int
	mu          sync.RWMutex
}

// NewConversation creates an empty conversation.
func NewConversation(id string) *Conversation {
	return &Conversation{
		ID:       id,
		messages: make([]Message, 0),
	}
}

// Messages returns a copy of the conversation history.
func (c *Conversation) Messages() []Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]Message, len(c.messages))
	copy(result, c.messages)
	return result
}

// AddMessage appends a message to the history.
func (c *Conversation) AddMessage(role, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, Message{Role: role, Content: content})
}

// TotalTokens returns cumulative token count for this conversation.
func (c *Conversation) TotalTokens() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.totalTokens
}

// AddTokens adds to the token count.
func (c *Conversation) AddTokens(tokens int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.totalTokens += tokens
}

// ConversationManager maps conversation IDs to conversations and delegates
// to a shared backend.
type ConversationManager struct {
	conversations map[string]*Conversation
	backend       Backend
	mu            sync.RWMutex
}

// NewConversationManager creates a manager over the given backend.
func NewConversationManager(backend Backend) *ConversationManager {
	return &ConversationManager{
		conversations: make(map[string]*Conversation),
		backend:       backend,
	}
}

// GetOrCreate returns the conversation for id, creating one if necessary.
func (cm *ConversationManager) GetOrCreate(id string) *Conversation {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if c, ok := cm.conversations[id]; ok {
		return c
	}
	c := NewConversation(id)
	cm.conversations[id] = c
	return c
}

// Get returns the conversation for id, or nil if it doesn't exist.
func (cm *ConversationManager) Get(id string) *Conversation {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.conversations[id]
}

// Remove drops the conversation for id.
func (cm *ConversationManager) Remove(id string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	delete(cm.conversations, id)
}

// Ask sends a prompt using the conversation's history. History is only
// extended when the backend call succeeds.
func (cm *ConversationManager) Ask(ctx context.Context, id string, req Request) (Response, error) {
	conv := cm.GetOrCreate(id)

	req.History = conv.Messages()
	resp, err := cm.backend.Generate(ctx, req)
	if err != nil {
		return Response{}, err
	}

	conv.AddMessage("user", req.Prompt)
	conv.AddMessage("assistant", resp.Text)
	conv.AddTokens(resp.Tokens)

	return resp, nil
}
