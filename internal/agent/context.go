package agent

import "sync"

// Conversation is one multi-turn dialogue: an append-only, arrival-ordered
// message log plus the tasks it spawned. Mutations go through the store so
// they are serialized per context.
type Conversation struct {
	ID        string
	mu        sync.Mutex
	messages  []Message
	taskIDs   []string
	lastTopic Intent
}

// ContextStore keys conversations by contextId. Lookup takes a read lock
// over the map; turn-level mutation locks only the one conversation, so
// independent contexts never contend.
type ContextStore struct {
	mu       sync.RWMutex
	contexts map[string]*Conversation
}

func NewContextStore() *ContextStore {
	return &ContextStore{contexts: make(map[string]*Conversation)}
}

// GetOrCreate returns the conversation for id, creating it lazily on first
// reference.
func (s *ContextStore) GetOrCreate(id string) *Conversation {
	s.mu.RLock()
	c, ok := s.contexts[id]
	s.mu.RUnlock()
	if ok {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.contexts[id]; ok {
		return c
	}
	c = &Conversation{ID: id}
	s.contexts[id] = c
	return c
}

func (s *ContextStore) Get(id string) (*Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.contexts[id]
	return c, ok
}

// Lock serializes one turn of this conversation.
func (c *Conversation) Lock() {
	c.mu.Lock()
}

func (c *Conversation) Unlock() {
	c.mu.Unlock()
}

// The accessors below assume the caller holds the conversation lock.

func (c *Conversation) Append(m Message) {
	c.messages = append(c.messages, m)
}

func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Conversation) MessageCount() int {
	return len(c.messages)
}

func (c *Conversation) BindTask(taskID string) {
	c.taskIDs = append(c.taskIDs, taskID)
}

func (c *Conversation) TaskIDs() []string {
	out := make([]string, len(c.taskIDs))
	copy(out, c.taskIDs)
	return out
}

// LastTopic is the most recent successfully classified intent, used as a
// continuity fallback when the current utterance fails to classify.
func (c *Conversation) LastTopic() Intent {
	return c.lastTopic
}

func (c *Conversation) RememberTopic(intent Intent) {
	if intent.Topical() {
		c.lastTopic = intent
	}
}
