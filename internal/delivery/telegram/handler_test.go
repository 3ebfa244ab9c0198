package telegram

import (
	"context"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/yourusername/gemini-relay-bot/internal/domain/entity"
)

type fakeUpdates struct {
	ch      chan tgbotapi.Update
	stopped chan struct{}
	once    sync.Once
}

func newFakeUpdates() *fakeUpdates {
	return &fakeUpdates{ch: make(chan tgbotapi.Update, 16), stopped: make(chan struct{})}
}

func (f *fakeUpdates) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return f.ch
}

func (f *fakeUpdates) StopReceivingUpdates() {
	f.once.Do(func() { close(f.stopped) })
}

type recordingUseCase struct {
	mu       sync.Mutex
	byChat   map[entity.ChatID][]int
	inFlight map[entity.ChatID]int
	overlap  bool
	done     chan struct{}
	want     int
	seen     int
	delay    time.Duration
	panicOn  int
}

func newRecordingUseCase(want int) *recordingUseCase {
	return &recordingUseCase{
		byChat:   make(map[entity.ChatID][]int),
		inFlight: make(map[entity.ChatID]int),
		done:     make(chan struct{}),
		want:     want,
	}
}

func (r *recordingUseCase) OnMessage(_ context.Context, msg entity.Message) {
	r.mu.Lock()
	r.inFlight[msg.ChatID]++
	if r.inFlight[msg.ChatID] > 1 {
		r.overlap = true
	}
	r.mu.Unlock()

	time.Sleep(r.delay)

	r.mu.Lock()
	r.inFlight[msg.ChatID]--
	r.byChat[msg.ChatID] = append(r.byChat[msg.ChatID], msg.ID)
	r.seen++
	if r.seen == r.want {
		close(r.done)
	}
	r.mu.Unlock()

	if msg.ID == r.panicOn {
		panic("boom")
	}
}

func update(chatID int64, messageID int) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: messageID,
		Chat:      &tgbotapi.Chat{ID: chatID, Type: "group"},
		From:      &tgbotapi.User{ID: 1},
		Text:      "hi",
	}}
}

func TestBotHandler_SequentialPerChat(t *testing.T) {
	updates := newFakeUpdates()
	uc := newRecordingUseCase(6)
	uc.delay = 5 * time.Millisecond
	handler := newBotHandler(updates, uc, zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- handler.Start(ctx) }()

	for i := 1; i <= 3; i++ {
		updates.ch <- update(10, i)
		updates.ch <- update(20, 100+i)
	}
	updates.ch <- tgbotapi.Update{}

	select {
	case <-uc.done:
	case <-time.After(2 * time.Second):
		t.Fatal("messages were not processed")
	}
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return")
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	assert.False(t, uc.overlap)
	assert.Equal(t, []int{1, 2, 3}, uc.byChat[10])
	assert.Equal(t, []int{101, 102, 103}, uc.byChat[20])

	select {
	case <-updates.stopped:
	default:
		t.Fatal("updates were not stopped")
	}
}

func TestBotHandler_PanicDoesNotStopChat(t *testing.T) {
	updates := newFakeUpdates()
	uc := newRecordingUseCase(2)
	uc.panicOn = 1
	handler := newBotHandler(updates, uc, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = handler.Start(ctx) }()

	updates.ch <- update(10, 1)
	updates.ch <- update(10, 2)

	select {
	case <-uc.done:
	case <-time.After(2 * time.Second):
		t.Fatal("chat queue stopped after panic")
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	require.Len(t, uc.byChat[10], 2)
}

func TestBotHandler_ClosedUpdates(t *testing.T) {
	updates := newFakeUpdates()
	handler := newBotHandler(updates, newRecordingUseCase(0), nil)
	close(updates.ch)

	assert.NoError(t, handler.Start(context.Background()))
}

func (h *BotHandler) activeChats() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.queues)
}

type blockingUseCase struct {
	blockedChat entity.ChatID
	release     chan struct{}
	handled     chan entity.ChatID
}

func (b *blockingUseCase) OnMessage(ctx context.Context, msg entity.Message) {
	if msg.ChatID == b.blockedChat {
		select {
		case <-b.release:
		case <-ctx.Done():
		}
	}
	b.handled <- msg.ChatID
}

func TestBotHandler_BusyChatDoesNotBlockOthers(t *testing.T) {
	updates := newFakeUpdates()
	uc := &blockingUseCase{
		blockedChat: 1,
		release:     make(chan struct{}),
		handled:     make(chan entity.ChatID, 128),
	}
	handler := newBotHandler(updates, uc, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- handler.Start(ctx) }()

	go func() {
		for i := 1; i <= 100; i++ {
			updates.ch <- update(1, i)
		}
		updates.ch <- update(2, 1000)
	}()

	select {
	case chatID := <-uc.handled:
		assert.Equal(t, entity.ChatID(2), chatID)
	case <-time.After(2 * time.Second):
		t.Fatal("second chat was blocked by a busy chat")
	}

	close(uc.release)
	for i := 0; i < 100; i++ {
		select {
		case chatID := <-uc.handled:
			assert.Equal(t, entity.ChatID(1), chatID)
		case <-time.After(2 * time.Second):
			t.Fatal("busy chat backlog was not processed")
		}
	}

	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)
}

func TestBotHandler_IdleChatReleased(t *testing.T) {
	updates := newFakeUpdates()
	uc := newRecordingUseCase(3)
	handler := newBotHandler(updates, uc, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- handler.Start(ctx) }()

	updates.ch <- update(10, 1)
	updates.ch <- update(20, 2)
	updates.ch <- update(30, 3)

	select {
	case <-uc.done:
	case <-time.After(2 * time.Second):
		t.Fatal("messages were not processed")
	}
	require.Eventually(t, func() bool { return handler.activeChats() == 0 }, 2*time.Second, 10*time.Millisecond)

	uc.mu.Lock()
	uc.done = make(chan struct{})
	uc.want = 4
	uc.mu.Unlock()

	updates.ch <- update(10, 4)
	select {
	case <-uc.done:
	case <-time.After(2 * time.Second):
		t.Fatal("chat was not served again after going idle")
	}

	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)

	uc.mu.Lock()
	defer uc.mu.Unlock()
	assert.Equal(t, []int{1, 4}, uc.byChat[10])
}
