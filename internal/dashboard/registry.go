package dashboard

import (
	"context"
	"sync"
	"time"

	"aroundyou/internal/models"
)

// Session identifies one signed-in client. Each session gets its own
// dashboards, so signing out on one device leaves the others untouched.
type Session struct {
	ID      string
	Expires time.Time // zero means the session never expires
}

func (s Session) expired(now time.Time) bool {
	return !s.Expires.IsZero() && !now.Before(s.Expires)
}

type entry struct {
	session  Session
	consumer *Consumer
	merchant *Merchant
}

// Registry keeps the dashboards of every live session. A dashboard is mounted
// the first time it is requested and forgotten on sign-out or once the
// session's token has expired.
type Registry struct {
	backend Backend

	mu       sync.Mutex
	sessions map[string]*entry
	now      func() time.Time
}

// NewRegistry creates an empty registry over backend.
func NewRegistry(backend Backend) *Registry {
	return &Registry{
		backend:  backend,
		sessions: make(map[string]*entry),
		now:      time.Now,
	}
}

// lookup returns the entry of sess, creating it if needed. Callers hold mu.
func (r *Registry) lookup(sess Session) *entry {
	r.sweep()
	e, ok := r.sessions[sess.ID]
	if !ok {
		e = &entry{session: sess}
		r.sessions[sess.ID] = e
	}
	if sess.Expires.After(e.session.Expires) {
		e.session.Expires = sess.Expires
	}
	return e
}

// sweep drops the entries of expired sessions. Callers hold mu.
func (r *Registry) sweep() {
	now := r.now()
	for id, e := range r.sessions {
		if e.session.expired(now) {
			delete(r.sessions, id)
		}
	}
}

// Consumer returns the consumer dashboard of sess, mounting it on first use.
func (r *Registry) Consumer(ctx context.Context, sess Session, profile *models.UserProfile) *Consumer {
	r.mu.Lock()
	e := r.lookup(sess)
	d, created := e.consumer, false
	if d == nil {
		d, created = NewConsumer(profile, r.backend), true
		e.consumer = d
	}
	r.mu.Unlock()

	if created {
		d.Mount(ctx)
	}
	return d
}

// Merchant returns the merchant dashboard of sess, mounting it on first use.
func (r *Registry) Merchant(ctx context.Context, sess Session, profile *models.UserProfile) *Merchant {
	r.mu.Lock()
	e := r.lookup(sess)
	d, created := e.merchant, false
	if d == nil {
		d, created = NewMerchant(profile, r.backend), true
		e.merchant = d
	}
	r.mu.Unlock()

	if created {
		d.Mount(ctx)
	}
	return d
}

// Drop forgets the dashboards of one session, cart included.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
}

// Len reports how many live sessions hold dashboards.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweep()
	return len(r.sessions)
}
