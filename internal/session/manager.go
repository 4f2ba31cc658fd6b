package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/playmatatu/golfcard/internal/auth"
	"github.com/playmatatu/golfcard/internal/golf"
	"github.com/redis/go-redis/v9"
)

// EventsChannel is the redis pub/sub channel wins are announced on.
const EventsChannel = "session_events"

// Snapshot is the part of a session worth keeping after it is gone.
type Snapshot struct {
	Token     string    `json:"token"`
	Strokes   int       `json:"strokes"`
	Sunk      bool      `json:"sunk"`
	Won       bool      `json:"won"`
	Compact   bool      `json:"compact"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Unlocker issues the token a won session hands to its player.
type Unlocker interface {
	Issue(method, session string, strokes int) (string, time.Time, error)
}

type Options struct {
	TickHz      int
	IdleTimeout time.Duration
	MaxSessions int
	Tuning      golf.Tuning
	Features    golf.Features
}

// Manager owns every live session.
type Manager struct {
	sessions map[string]*Session
	rdb      *redis.Client
	unlocker Unlocker
	opts     Options
	ctx      context.Context
	mu       sync.RWMutex
}

// NewManager creates a manager whose sessions stop when ctx ends. rdb and
// unlocker may be nil.
func NewManager(ctx context.Context, rdb *redis.Client, unlocker Unlocker, opts Options) *Manager {
	if opts.TickHz <= 0 {
		opts.TickHz = 30
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = 500
	}
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = 30 * time.Minute
	}
	if opts.Tuning == (golf.Tuning{}) {
		opts.Tuning = golf.DefaultTuning()
	}
	return &Manager{
		sessions: make(map[string]*Session),
		rdb:      rdb,
		unlocker: unlocker,
		opts:     opts,
		ctx:      ctx,
	}
}

// generateToken generates a secure random token
func generateToken(length int) string {
	bytes := make([]byte, length)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// Create starts a session for a viewport of the given logical size.
func (m *Manager) Create(width, height, ratio float64) (*Session, error) {
	s, err := m.create(width, height, ratio, time.Now())
	if err != nil {
		return nil, err
	}
	go s.run(m.ctx, m.opts.TickHz)
	m.saveSnapshot(s.Snapshot())
	log.Printf("[SESSION] Created %s (%vx%v)", s.Token, width, height)
	return s, nil
}

// create registers a session without starting its goroutine.
func (m *Manager) create(width, height, ratio float64, now time.Time) (*Session, error) {
	if err := ValidViewport(width, height); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sessions) >= m.opts.MaxSessions {
		return nil, ErrTooMany
	}
	opts := []golf.Option{golf.WithTuning(m.opts.Tuning), golf.WithFeatures(m.opts.Features)}
	s, err := newSession(generateToken(16), width, height, ratio, opts, now)
	if err != nil {
		return nil, err
	}
	s.onWin = m.won
	m.sessions[s.Token] = s
	return s, nil
}

func (m *Manager) Get(token string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[token]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Remove stops a session and forgets it.
func (m *Manager) Remove(token string) {
	m.mu.Lock()
	s, ok := m.sessions[token]
	delete(m.sessions, token)
	m.mu.Unlock()
	if ok {
		s.close()
	}
}

// Snapshot returns the live state of a session, falling back to the copy in
// redis once the session has been swept.
func (m *Manager) Snapshot(ctx context.Context, token string) (*Snapshot, error) {
	if s, err := m.Get(token); err == nil {
		snap := s.Snapshot()
		return &snap, nil
	}
	if m.rdb == nil {
		return nil, ErrNotFound
	}
	data, err := m.rdb.Get(ctx, snapshotKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

// won runs on the session goroutine once the hole is won.
func (m *Manager) won(s *Session, strokes int) Event {
	ev := Event{Type: EventWon, Strokes: strokes}
	if m.unlocker != nil {
		token, exp, err := m.unlocker.Issue(auth.MethodWin, s.Token, strokes)
		if err != nil {
			log.Printf("[SESSION] Unlock token for %s failed: %v", s.Token, err)
		} else {
			ev.Unlock, ev.ExpiresAt = token, &exp
		}
	}

	snap := s.Snapshot()
	snap.Sunk, snap.Won, snap.Strokes = true, true, strokes
	go func() {
		m.saveSnapshot(snap)
		m.publish(map[string]interface{}{
			"type":    "session_won",
			"token":   s.Token,
			"strokes": strokes,
		})
	}()
	return ev
}

func snapshotKey(token string) string {
	return "golf:" + token + ":state"
}

func (m *Manager) saveSnapshot(snap Snapshot) {
	if m.rdb == nil {
		return
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := m.rdb.SetEx(ctx, snapshotKey(snap.Token), data, m.opts.IdleTimeout+time.Hour).Err(); err != nil {
		log.Printf("[SESSION] Snapshot save failed for %s: %v", snap.Token, err)
	}
}

func (m *Manager) publish(payload map[string]interface{}) {
	if m.rdb == nil {
		return
	}
	b, _ := json.Marshal(payload)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if n, err := m.rdb.Publish(ctx, EventsChannel, b).Result(); err != nil {
		log.Printf("[SESSION] publish failed: %v", err)
	} else {
		log.Printf("[SESSION] published %s subscribers=%d", payload["type"], n)
	}
}

// Sweep stops sessions idle longer than the timeout and refreshes the redis
// snapshot of the rest. It returns how many sessions were stopped.
func (m *Manager) Sweep(now time.Time) int {
	m.mu.Lock()
	var idle, live []*Session
	for token, s := range m.sessions {
		if now.Sub(s.idleSince()) >= m.opts.IdleTimeout {
			delete(m.sessions, token)
			idle = append(idle, s)
		} else {
			live = append(live, s)
		}
	}
	m.mu.Unlock()

	for _, s := range idle {
		s.close()
		m.saveSnapshot(s.Snapshot())
		log.Printf("[SESSION] Expired idle session %s", s.Token)
	}
	for _, s := range live {
		m.saveSnapshot(s.Snapshot())
	}
	return len(idle)
}

// StartSweeper sweeps every interval until ctx ends.
func (m *Manager) StartSweeper(ctx context.Context, interval time.Duration) {
	log.Println("[SESSION] Idle sweeper started")
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Println("[SESSION] Idle sweeper stopping")
				return
			case now := <-ticker.C:
				m.Sweep(now)
			}
		}
	}()
}
