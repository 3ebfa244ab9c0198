package storage

import (
	"sync"

	"github.com/yourusername/gemini-relay-bot/internal/domain/entity"
	"github.com/yourusername/gemini-relay-bot/internal/domain/repository"
)

// historyBuffer bitta chat uchun FIFO bufer
type historyBuffer struct {
	mu       sync.Mutex
	messages []entity.Message
	head     int
	size     int
}

func newHistoryBuffer(capacity int) *historyBuffer {
	return &historyBuffer{messages: make([]entity.Message, capacity)}
}

// push oxiriga qo'shish, to'lgan bo'lsa eng eskisini o'chirish
func (b *historyBuffer) push(msg entity.Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	capacity := len(b.messages)
	if b.size == capacity {
		b.messages[b.head] = msg
		b.head = (b.head + 1) % capacity
		return
	}
	b.messages[(b.head+b.size)%capacity] = msg
	b.size++
}

// snapshot eskidan yangiga nusxa
func (b *historyBuffer) snapshot() []entity.Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]entity.Message, b.size)
	for i := 0; i < b.size; i++ {
		out[i] = b.messages[(b.head+i)%len(b.messages)]
	}
	return out
}

func (b *historyBuffer) len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}

type memoryHistoryRepository struct {
	mu       sync.RWMutex
	buffers  map[entity.ChatID]*historyBuffer
	capacity int
}

// NewMemoryHistoryRepository in-memory tarix repository yaratish.
// capacity 0 bo'lsa tarix o'chirilgan.
func NewMemoryHistoryRepository(capacity int) repository.HistoryRepository {
	if capacity < 0 {
		capacity = 0
	}
	return &memoryHistoryRepository{
		buffers:  make(map[entity.ChatID]*historyBuffer),
		capacity: capacity,
	}
}

// Add xabarni saqlash
func (m *memoryHistoryRepository) Add(chatID entity.ChatID, message entity.Message) {
	if m.capacity == 0 {
		return
	}
	m.bufferFor(chatID).push(message)
}

// Messages chat tarixini olish
func (m *memoryHistoryRepository) Messages(chatID entity.ChatID) []entity.Message {
	buf := m.lookup(chatID)
	if buf == nil {
		return []entity.Message{}
	}
	return buf.snapshot()
}

// Len tarixdagi xabarlar soni
func (m *memoryHistoryRepository) Len(chatID entity.ChatID) int {
	buf := m.lookup(chatID)
	if buf == nil {
		return 0
	}
	return buf.len()
}

func (m *memoryHistoryRepository) lookup(chatID entity.ChatID) *historyBuffer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.buffers[chatID]
}

func (m *memoryHistoryRepository) bufferFor(chatID entity.ChatID) *historyBuffer {
	if buf := m.lookup(chatID); buf != nil {
		return buf
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	buf, exists := m.buffers[chatID]
	if !exists {
		buf = newHistoryBuffer(m.capacity)
		m.buffers[chatID] = buf
	}
	return buf
}
