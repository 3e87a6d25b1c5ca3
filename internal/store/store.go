package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/saturnino-fabrica-de-software/facerecon/internal/coordinator"
	"github.com/saturnino-fabrica-de-software/facerecon/internal/domain"
	"github.com/saturnino-fabrica-de-software/facerecon/internal/gateway"
)

// Coordinator is the normalized backend surface the Store drives.
type Coordinator interface {
	CheckHealth(ctx context.Context) coordinator.Result[domain.HealthStatus]
	Recognize(ctx context.Context, image []byte) coordinator.Result[domain.Recognition]
	ListUsers(ctx context.Context) coordinator.Result[[]domain.User]
	GetUser(ctx context.Context, id string) coordinator.Result[domain.User]
	CreateUser(ctx context.Context, fields domain.UserFields, image []byte) coordinator.Result[domain.User]
	UpdateUser(ctx context.Context, id string, fields domain.UserFields) coordinator.Result[domain.User]
	DeleteUser(ctx context.Context, id string) coordinator.Result[gateway.DeleteAck]
}

// intent identifies a category of intents sharing one request token.
type intent int

const (
	intentHealth intent = iota
	intentRecognize
	intentLoadUsers
	intentLoadUser
	intentRegister
	intentUpdate
	intentDelete
	intentCount
)

var intentNames = [intentCount]string{
	"check_health", "recognize", "load_users", "load_user", "register_user", "update_user", "delete_user",
}

func (i intent) String() string {
	return intentNames[i]
}

// Config holds Store tuning.
type Config struct {
	// NoticeTTL is how long a notice stays visible before it is hidden automatically.
	NoticeTTL time.Duration
	// SubscriberBuffer is the per-subscriber channel capacity.
	SubscriberBuffer int
}

func DefaultConfig() Config {
	return Config{
		NoticeTTL:        3 * time.Second,
		SubscriberBuffer: 16,
	}
}

// Store owns the single ViewState of a session. State changes only through its
// intents; every change publishes a new snapshot to subscribers.
//
// Intents may be called from several goroutines. Transitions are serialized by
// mu and backend calls run without holding it. Each intent category carries a
// token and only the result of the most recently issued call of a category is
// applied; older results are dropped.
type Store struct {
	coord  Coordinator
	config Config
	logger *slog.Logger

	mu          sync.Mutex
	state       ViewState
	inflight    int
	tokens      [intentCount]uint64
	noticeSeq   uint64
	noticeTimer *time.Timer
	subs        map[uint64]chan ViewState
	nextSub     uint64
	closed      bool
}

func New(coord Coordinator, config Config, logger *slog.Logger) *Store {
	if config.NoticeTTL <= 0 {
		config.NoticeTTL = DefaultConfig().NoticeTTL
	}
	if config.SubscriberBuffer <= 0 {
		config.SubscriberBuffer = DefaultConfig().SubscriberBuffer
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		coord:  coord,
		config: config,
		logger: logger,
		state:  ViewState{Users: []domain.User{}},
		subs:   make(map[uint64]chan ViewState),
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe returns a channel receiving every published snapshot, starting with
// the current one, and a function that ends the subscription. A slow subscriber
// loses intermediate snapshots but always receives the latest.
func (s *Store) Subscribe() (<-chan ViewState, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan ViewState, s.config.SubscriberBuffer)
	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.state.clone()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if sub, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(sub)
			}
		})
	}
}

// Close stops the notice timer and ends all subscriptions.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	if s.noticeTimer != nil {
		s.noticeTimer.Stop()
	}
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

// publish must be called with mu held.
func (s *Store) publish() {
	s.state.Version++
	if s.closed {
		return
	}
	for _, ch := range s.subs {
		snap := s.state.clone()
		select {
		case ch <- snap:
		default:
			// drop the oldest pending snapshot to make room for the newest
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

// begin issues a new token for kind, marks a call in flight and applies the
// intent's opening transition.
func (s *Store) begin(kind intent, open func(*ViewState)) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[kind]++
	s.inflight++
	if open != nil {
		open(&s.state)
	}
	s.state.Loading = true
	s.publish()
	return s.tokens[kind]
}

// finish retires an in-flight call. apply runs only if token is still the
// latest for kind.
func (s *Store) finish(kind intent, token uint64, apply func(*ViewState)) ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inflight--
	current := s.fold(kind, token, apply)

	loading := s.inflight > 0
	if current || s.state.Loading != loading {
		s.state.Loading = loading
		s.publish()
	}
	return s.state.clone()
}

// handOff retires a successful write and passes its in-flight slot to a list
// reload, returning the reload's token. A superseded write still gets its
// reload.
func (s *Store) handOff(kind intent, token uint64, apply func(*ViewState)) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fold(kind, token, apply) {
		s.publish()
	}
	s.tokens[intentLoadUsers]++
	return s.tokens[intentLoadUsers]
}

// fold applies a call's result if token is still current. Must be called with
// mu held.
func (s *Store) fold(kind intent, token uint64, apply func(*ViewState)) bool {
	if s.tokens[kind] != token {
		s.logger.Debug("discarding superseded result",
			slog.String("intent", kind.String()),
			slog.Uint64("token", token),
			slog.Uint64("latest", s.tokens[kind]),
		)
		return false
	}
	apply(&s.state)
	return true
}

// update applies a local transition; a no-op transition publishes nothing.
func (s *Store) update(change func(*ViewState) bool) ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if change(&s.state) {
		s.publish()
	}
	return s.state.clone()
}
