package concierge

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"concierge/models"
	ai "concierge/services/intelligence"

	"go.uber.org/zap"
)

type fakeSessions struct {
	mu      sync.Mutex
	history map[string][]models.Turn
	err     error
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{history: map[string][]models.Turn{}}
}

func (f *fakeSessions) GetBySessionID(ctx context.Context, sessionID string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	turns, ok := f.history[sessionID]
	if !ok {
		return nil, nil
	}
	return &models.Session{SessionID: sessionID, History: turns}, nil
}

func (f *fakeSessions) GetHistory(ctx context.Context, sessionID string) ([]models.Turn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Turn(nil), f.history[sessionID]...), nil
}

func (f *fakeSessions) AppendTurns(ctx context.Context, sessionID string, turns ...models.Turn) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.history[sessionID] = append(f.history[sessionID], turns...)
	return nil
}

type fakeBookings struct {
	mu      sync.Mutex
	latest  *models.Booking
	created []models.Booking
}

func (f *fakeBookings) Create(ctx context.Context, booking models.Booking) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking.ID = fmt.Sprintf("booking-%d", len(f.created)+1)
	booking.CreatedAt = time.Now()
	f.created = append(f.created, booking)
	return &booking, nil
}

func (f *fakeBookings) LatestBySession(ctx context.Context, sessionID string) (*models.Booking, error) {
	return f.latest, nil
}

func (f *fakeBookings) CheckingOutBetween(ctx context.Context, from, to time.Time) ([]models.Booking, error) {
	return nil, nil
}

type fakeRequests struct {
	mu      sync.Mutex
	recent  []models.ServiceRequest
	created []models.ServiceRequest
}

func (f *fakeRequests) Create(ctx context.Context, req models.ServiceRequest) (*models.ServiceRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req.ID = fmt.Sprintf("request-%d", len(f.created)+1)
	req.CreatedAt = time.Now()
	f.created = append(f.created, req)
	return &req, nil
}

func (f *fakeRequests) ListAll(ctx context.Context) ([]models.ServiceRequest, error) {
	return f.created, nil
}

func (f *fakeRequests) RecentBySession(ctx context.Context, sessionID string, limit int64) ([]models.ServiceRequest, error) {
	return f.recent, nil
}

func (f *fakeRequests) UpdateStatus(ctx context.Context, id, status string) (*models.ServiceRequest, error) {
	return nil, errors.New("not implemented")
}

type fakeAppointments struct {
	upcoming *models.Appointment
}

func (f *fakeAppointments) UpcomingBySession(ctx context.Context, sessionID string, after time.Time) (*models.Appointment, error) {
	return f.upcoming, nil
}

func (f *fakeAppointments) StartingBetween(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	return nil, nil
}

// fakeFAQs mirrors the store's keyword intersection query.
type fakeFAQs struct {
	faqs []models.FAQ
}

func (f *fakeFAQs) FindByKeywords(ctx context.Context, keywords []string) ([]models.FAQ, error) {
	set := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		set[kw] = true
	}
	var matches []models.FAQ
	for _, faq := range f.faqs {
		for _, kw := range faq.Keywords {
			if set[kw] {
				matches = append(matches, faq)
				break
			}
		}
	}
	return matches, nil
}

type notifierEvent struct {
	sessionID string
	event     string
	payload   any
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []notifierEvent
}

func (f *fakeNotifier) Broadcast(event string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, notifierEvent{event: event, payload: payload})
}

func (f *fakeNotifier) Emit(sessionID string, event string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, notifierEvent{sessionID: sessionID, event: event, payload: payload})
}

// fakeModel scripts the model's replies in order and records everything sent
// to it.
type fakeModel struct {
	mu        sync.Mutex
	replies   []*ai.Reply
	generated string
	genErr    error

	sent        []string
	prompts     []string
	resultNames []string
	results     []map[string]any
	histories   [][]models.Turn
}

func (f *fakeModel) StartChat(history []models.Turn) ai.ChatSession {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.histories = append(f.histories, history)
	return &fakeChat{model: f}
}

func (f *fakeModel) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.generated, f.genErr
}

func (f *fakeModel) pop() (*ai.Reply, error) {
	if len(f.replies) == 0 {
		return nil, errors.New("no scripted reply left")
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	return r, nil
}

type fakeChat struct {
	model *fakeModel
}

func (c *fakeChat) Send(ctx context.Context, message string) (*ai.Reply, error) {
	c.model.mu.Lock()
	defer c.model.mu.Unlock()
	c.model.sent = append(c.model.sent, message)
	return c.model.pop()
}

func (c *fakeChat) SendFunctionResult(ctx context.Context, name string, result map[string]any) (*ai.Reply, error) {
	c.model.mu.Lock()
	defer c.model.mu.Unlock()
	c.model.resultNames = append(c.model.resultNames, name)
	c.model.results = append(c.model.results, result)
	return c.model.pop()
}

func textReply(s string) *ai.Reply {
	return &ai.Reply{Text: s}
}

func callReply(name string, args map[string]any) *ai.Reply {
	return &ai.Reply{Call: &ai.FunctionCall{Name: name, Args: args}}
}

type testEnv struct {
	svc          *DefaultService
	sessions     *fakeSessions
	bookings     *fakeBookings
	requests     *fakeRequests
	appointments *fakeAppointments
	faqs         *fakeFAQs
	notifier     *fakeNotifier
	model        *fakeModel
}

func newTestEnv() *testEnv {
	env := &testEnv{
		sessions:     newFakeSessions(),
		bookings:     &fakeBookings{},
		requests:     &fakeRequests{},
		appointments: &fakeAppointments{},
		faqs:         &fakeFAQs{},
		notifier:     &fakeNotifier{},
		model:        &fakeModel{},
	}
	env.svc = &DefaultService{
		Sessions:     env.sessions,
		Bookings:     env.bookings,
		Requests:     env.requests,
		Appointments: env.appointments,
		FAQs:         env.faqs,
		Model:        env.model,
		Notifier:     env.notifier,
		Logger:       zap.NewNop(),
	}
	return env
}
