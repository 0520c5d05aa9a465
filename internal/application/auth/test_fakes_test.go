package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/baechuer/identity-service/internal/domain"
)

/*
Fakes for ports
*/

type fakeDirectory struct {
	mu sync.Mutex

	byID    map[string]domain.User
	byEmail map[string]domain.User

	// injected errors (if set, method returns error)
	findByEmailErr error
	findByIDErr    error
	createErr      error

	// FindByID blocks on gate (when set) after signalling started.
	gate    chan struct{}
	started chan struct{}

	// record calls
	createCalls    int
	findByIDCalls  int
	findByIDCtxErr []error
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		byID:    map[string]domain.User{},
		byEmail: map[string]domain.User{},
	}
}

func (f *fakeDirectory) put(u domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
}

func (f *fakeDirectory) FindByEmail(ctx context.Context, email string) (domain.User, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.findByEmailErr != nil {
		return domain.User{}, false, f.findByEmailErr
	}
	u, ok := f.byEmail[email]
	return u, ok, nil
}

func (f *fakeDirectory) FindByID(ctx context.Context, id string) (domain.User, bool, error) {
	if f.gate != nil {
		select {
		case f.started <- struct{}{}:
		default:
		}
		<-f.gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.findByIDCalls++
	f.findByIDCtxErr = append(f.findByIDCtxErr, ctx.Err())
	if f.findByIDErr != nil {
		return domain.User{}, false, f.findByIDErr
	}
	u, ok := f.byID[id]
	return u, ok, nil
}

func (f *fakeDirectory) Create(ctx context.Context, u domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createCalls++
	if f.createErr != nil {
		return domain.User{}, f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	}
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return u, nil
}

type fakeHasher struct {
	hashFn func(pw string) (string, error)

	hashCalls   int
	verifyCalls int
}

func (h *fakeHasher) Hash(password string) (string, error) {
	h.hashCalls++
	if h.hashFn != nil {
		return h.hashFn(password)
	}
	return "hash:" + password, nil
}

func (h *fakeHasher) Verify(password string, hash string) bool {
	h.verifyCalls++
	return hash == "hash:"+password
}

type fakeScreener struct {
	listed bool
	err    error

	calls []string // emails screened
}

func (s *fakeScreener) Screen(ctx context.Context, firstName, lastName, email string) (bool, error) {
	s.calls = append(s.calls, email)
	if s.err != nil {
		return false, s.err
	}
	return s.listed, nil
}

type fakeIssuer struct {
	issueFn func(sub, email string) (string, error)
}

func (i *fakeIssuer) Issue(subjectID string, email string) (string, error) {
	if i.issueFn != nil {
		return i.issueFn(subjectID, email)
	}
	return fmt.Sprintf("jwt(%s,%s)", subjectID, email), nil
}

type fakeCache struct {
	mu   sync.Mutex
	data map[string]domain.Profile
	sets int
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string]domain.Profile{}} }

func (c *fakeCache) Get(ctx context.Context, id string) (domain.Profile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.data[id]
	return p, ok
}

func (c *fakeCache) Set(ctx context.Context, p domain.Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.data[p.ID] = p
}

type fakePublisher struct {
	err    error
	events []UserRegisteredEvent
}

func (p *fakePublisher) PublishUserRegistered(ctx context.Context, evt UserRegisteredEvent) error {
	p.events = append(p.events, evt)
	return p.err
}

type auditEntry struct {
	action string
	email  string
	reason string
}

type fakeAuditor struct {
	mu      sync.Mutex
	entries []auditEntry
}

func (a *fakeAuditor) add(e auditEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, e)
}

func (a *fakeAuditor) UserRegistered(ctx context.Context, userID, email string) {
	a.add(auditEntry{action: "user_registered", email: email})
}
func (a *fakeAuditor) RegistrationRejected(ctx context.Context, email, reason string) {
	a.add(auditEntry{action: "registration_rejected", email: email, reason: reason})
}
func (a *fakeAuditor) ScreeningFailed(ctx context.Context, email string, err error) {
	a.add(auditEntry{action: "screening_failed", email: email})
}
func (a *fakeAuditor) LoginSucceeded(ctx context.Context, userID, email string) {
	a.add(auditEntry{action: "login_succeeded", email: email})
}
func (a *fakeAuditor) LoginFailed(ctx context.Context, email, reason string) {
	a.add(auditEntry{action: "login_failed", email: email, reason: reason})
}

type fakeRecorder struct {
	registrations []string
	logins        []string
}

func (r *fakeRecorder) Registration(outcome string) { r.registrations = append(r.registrations, outcome) }
func (r *fakeRecorder) LoginAttempt(status string)  { r.logins = append(r.logins, status) }

/*
Test wiring
*/

type testDeps struct {
	users    *fakeDirectory
	hasher   *fakeHasher
	screener *fakeScreener
	issuer   *fakeIssuer
	cache    *fakeCache
	pub      *fakePublisher
	audit    *fakeAuditor
	rec      *fakeRecorder
}

var fixedNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func newSvcForTest(t *testing.T) (*Service, *testDeps) {
	t.Helper()

	d := &testDeps{
		users:    newFakeDirectory(),
		hasher:   &fakeHasher{},
		screener: &fakeScreener{},
		issuer:   &fakeIssuer{},
		cache:    newFakeCache(),
		pub:      &fakePublisher{},
		audit:    &fakeAuditor{},
		rec:      &fakeRecorder{},
	}

	var seq int
	svc := NewService(d.users, d.hasher, d.screener, d.issuer,
		WithProfileCache(d.cache),
		WithPublisher(d.pub),
		WithAuditor(d.audit),
		WithRecorder(d.rec),
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("user-%d", seq)
		}),
	)
	return svc, d
}

var errBoom = errors.New("boom")
