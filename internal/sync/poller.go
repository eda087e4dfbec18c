// Package sync keeps the TUI's view of the vault current by rescanning it
// periodically, on demand, and whenever the file watcher reports a change.
package sync

import (
	"context"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/notemail/internal/model"
)

// SyncState represents the current state of the vault scan.
type SyncState int

const (
	SyncIdle SyncState = iota
	SyncRunning
	SyncError
)

// SyncStatus describes the most recent scan.
type SyncStatus struct {
	State    SyncState
	LastScan time.Time
	Count    int
	Error    error
}

// ScanResultMsg is a tea.Msg sent when a scan completes.
type ScanResultMsg struct {
	Notes []model.Note

	// Changed lists the vault-relative paths reported by the watcher since
	// the previous scan. Empty for timed and manual scans.
	Changed []string

	Error error
}

// Lister lists the notes in the vault.
type Lister interface {
	List(ctx context.Context) ([]model.Note, error)
}

// scanTimeout is the maximum time allowed for a single scan.
const scanTimeout = 30 * time.Second

// DefaultInterval is used when New is given a non-positive interval.
const DefaultInterval = 2 * time.Minute

// debounceDelay groups bursts of watcher events into one scan.
var debounceDelay = 150 * time.Millisecond

// Poller orchestrates background scanning of the vault.
type Poller struct {
	lister    Lister
	changes   <-chan string
	interval  time.Duration
	status    SyncStatus
	resultCh  chan ScanResultMsg
	triggerCh chan struct{}
	stopCh    chan struct{}
	mu        gosync.Mutex
	running   bool
}

// New creates a Poller over l. changes may be nil when no watcher runs.
func New(l Lister, changes <-chan string, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		lister:    l,
		changes:   changes,
		interval:  interval,
		resultCh:  make(chan ScanResultMsg, 16),
		triggerCh: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
	}
}

// Start returns a tea.Cmd that starts the scanning goroutine and
// subscribes to its results.
func (p *Poller) Start() tea.Cmd {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = true
	p.mu.Unlock()

	go p.loop()

	return p.waitForResult()
}

// Stop halts the scanning goroutine.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	close(p.stopCh)
	p.running = false
}

// Refresh triggers an immediate scan.
func (p *Poller) Refresh() {
	select {
	case p.triggerCh <- struct{}{}:
	default:
		// A scan is already pending.
	}
}

// Status returns the state of the most recent scan.
func (p *Poller) Status() SyncStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

func (p *Poller) loop() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	changes := p.changes
	var pending []string
	var debounce <-chan time.Time

	p.scan(nil)

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.scan(nil)
		case <-p.triggerCh:
			p.scan(nil)
		case rel, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			pending = append(pending, rel)
			if debounce == nil {
				debounce = time.After(debounceDelay)
			}
		case <-debounce:
			p.scan(pending)
			pending = nil
			debounce = nil
		}
	}
}

// scan lists the vault and sends a ScanResultMsg on the result channel.
func (p *Poller) scan(changed []string) {
	p.setStatus(SyncRunning, 0, nil)

	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	notes, err := p.lister.List(ctx)
	if err != nil {
		p.setStatus(SyncError, 0, err)
		p.sendResult(ScanResultMsg{Changed: changed, Error: err})
		return
	}

	p.setStatus(SyncIdle, len(notes), nil)
	p.sendResult(ScanResultMsg{Notes: notes, Changed: changed})
}

func (p *Poller) setStatus(state SyncState, count int, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.status.State = state
	p.status.Error = err
	if state == SyncIdle {
		p.status.Count = count
		p.status.LastScan = time.Now()
	}
}

// sendResult sends a ScanResultMsg on the result channel without blocking.
func (p *Poller) sendResult(msg ScanResultMsg) {
	select {
	case p.resultCh <- msg:
	default:
		// Drop if channel is full to avoid blocking the poller
	}
}

func (p *Poller) waitForResult() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-p.resultCh
		if !ok {
			return nil
		}
		return result
	}
}

// WaitForNextResult returns a tea.Cmd that waits for the next scan result.
// Call it after processing a ScanResultMsg to keep listening.
func (p *Poller) WaitForNextResult() tea.Cmd {
	return p.waitForResult()
}
