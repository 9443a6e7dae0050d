// Package chat holds the in-memory conversation state for a session.
package chat

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmarques/tlochat/internal/models"
)

// NewChatPreview is shown for a conversation with no messages yet
const NewChatPreview = "Start a new conversation"

// ClearedPreview is shown after a conversation has been cleared
const ClearedPreview = "Conversation cleared"

// Persister receives conversations worth saving. Persistence is an
// optional collaborator; the store itself is the source of truth for
// the lifetime of the process.
type Persister interface {
	SaveConversation(conv *models.Conversation) error
	DeleteConversation(id string) error
}

// Patch is a partial conversation update. Nil fields are left untouched.
type Patch struct {
	Title    *string
	Preview  *string
	Messages *[]models.Message
}

// Store owns all mutation of chat state: the set of conversations and
// the identity of the active one. Every transition is atomic; callers
// may invoke it from any goroutine.
type Store struct {
	mu            sync.RWMutex
	conversations []*models.Conversation // newest first
	activeID      string
	pendingSends  map[string]int

	persister Persister
	now       func() time.Time
	newID     func() string
}

// Option configures a Store
type Option func(*Store)

// WithPersister attaches a persistence collaborator. Saves are
// best-effort: a failing persister never blocks a state transition.
func WithPersister(p Persister) Option {
	return func(s *Store) { s.persister = p }
}

// WithClock injects a time source
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator injects an id source
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// NewStore creates an empty session store
func NewStore(opts ...Option) *Store {
	s := &Store{
		pendingSends: make(map[string]int),
		now:          time.Now,
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateConversation inserts a new empty conversation with the sentinel
// title and makes it active
func (s *Store) CreateConversation() models.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	conv := &models.Conversation{
		ID:        s.newID(),
		Title:     models.DefaultTitle,
		Preview:   NewChatPreview,
		Messages:  []models.Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.conversations = append([]*models.Conversation{conv}, s.conversations...)
	s.activeID = conv.ID
	s.persist(conv)

	return copyConversation(conv)
}

// EnsureActive synthesizes a conversation if none exist and returns the
// active one
func (s *Store) EnsureActive() models.Conversation {
	s.mu.Lock()
	if len(s.conversations) == 0 {
		s.mu.Unlock()
		return s.CreateConversation()
	}
	defer s.mu.Unlock()

	if conv := s.findLocked(s.activeID); conv != nil {
		return copyConversation(conv)
	}
	s.activeID = s.conversations[0].ID
	return copyConversation(s.conversations[0])
}

// AppendMessage appends to the tail of the conversation's message list.
// Unknown conversation ids are a no-op: the caller derived the id from
// state that has since gone away, which is not a user-facing problem.
func (s *Store) AppendMessage(conversationID string, msg models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.findLocked(conversationID)
	if conv == nil {
		return
	}

	conv.Messages = append(conv.Messages, msg)
	conv.UpdatedAt = s.now()
	s.persist(conv)
}

// UpdateConversation merges a partial update into the named conversation.
// Unknown ids are a no-op.
func (s *Store) UpdateConversation(conversationID string, patch Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.findLocked(conversationID)
	if conv == nil {
		return
	}

	if patch.Title != nil {
		conv.Title = *patch.Title
	}
	if patch.Preview != nil {
		conv.Preview = *patch.Preview
	}
	if patch.Messages != nil {
		conv.Messages = append([]models.Message{}, (*patch.Messages)...)
	}
	conv.UpdatedAt = s.now()
	s.persist(conv)
}

// SetActive switches the active conversation. Unknown ids are a no-op.
func (s *Store) SetActive(conversationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findLocked(conversationID) != nil {
		s.activeID = conversationID
	}
}

// ActiveID returns the id of the active conversation
func (s *Store) ActiveID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// Active returns a copy of the active conversation
func (s *Store) Active() (models.Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv := s.findLocked(s.activeID)
	if conv == nil {
		return models.Conversation{}, false
	}
	return copyConversation(conv), true
}

// Get returns a copy of the named conversation
func (s *Store) Get(conversationID string) (models.Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv := s.findLocked(conversationID)
	if conv == nil {
		return models.Conversation{}, false
	}
	return copyConversation(conv), true
}

// List returns copies of all conversations, newest first
func (s *Store) List() []models.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Conversation, 0, len(s.conversations))
	for _, conv := range s.conversations {
		out = append(out, copyConversation(conv))
	}
	return out
}

// Search returns conversations whose title contains the term,
// case-insensitively
func (s *Store) Search(term string) []models.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(term)
	var out []models.Conversation
	for _, conv := range s.conversations {
		if strings.Contains(strings.ToLower(conv.Title), needle) {
			out = append(out, copyConversation(conv))
		}
	}
	return out
}

// Restore loads previously persisted conversations into the store,
// replacing its current contents. Newest first ordering is preserved.
func (s *Store) Restore(convs []models.Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conversations = s.conversations[:0]
	for i := range convs {
		c := copyConversation(&convs[i])
		s.conversations = append(s.conversations, &c)
	}
	if len(s.conversations) > 0 {
		s.activeID = s.conversations[0].ID
	} else {
		s.activeID = ""
	}
}

// SetRegenerating flips the regenerating flag on a message. Returns
// false when the conversation or message no longer exists.
func (s *Store) SetRegenerating(conversationID, messageID string, v bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.findLocked(conversationID)
	if conv == nil {
		return false
	}
	i := conv.FindMessage(messageID)
	if i < 0 {
		return false
	}
	conv.Messages[i].Regenerating = v
	return true
}

// ReplaceMessageContent swaps the content of an existing message.
// Unknown targets are a no-op.
func (s *Store) ReplaceMessageContent(conversationID, messageID, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.findLocked(conversationID)
	if conv == nil {
		return
	}
	i := conv.FindMessage(messageID)
	if i < 0 {
		return
	}
	conv.Messages[i].Content = content
	conv.UpdatedAt = s.now()
	s.persist(conv)
}

// BeginSend records an in-flight send for the conversation
func (s *Store) BeginSend(conversationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingSends[conversationID]++
}

// EndSend resolves an in-flight send for the conversation
func (s *Store) EndSend(conversationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pendingSends[conversationID] > 0 {
		s.pendingSends[conversationID]--
	}
}

// SendPending reports whether the conversation has an unresolved send
func (s *Store) SendPending(conversationID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pendingSends[conversationID] > 0
}

// NewMessageID returns a fresh opaque message id
func (s *Store) NewMessageID() string {
	return s.newID()
}

// Now returns the store's current time
func (s *Store) Now() time.Time {
	return s.now()
}

func (s *Store) findLocked(id string) *models.Conversation {
	for _, conv := range s.conversations {
		if conv.ID == id {
			return conv
		}
	}
	return nil
}

func (s *Store) persist(conv *models.Conversation) {
	if s.persister == nil {
		return
	}
	c := copyConversation(conv)
	_ = s.persister.SaveConversation(&c)
}

func copyConversation(conv *models.Conversation) models.Conversation {
	c := *conv
	c.Messages = append([]models.Message{}, conv.Messages...)
	return c
}
