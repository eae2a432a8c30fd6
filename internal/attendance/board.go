package attendance

import (
	"sync"
	"time"
)

const DefaultBoardWindow = 3 * time.Second

type ScanResult struct {
	Record    RecordResponse `json:"record"`
	Persisted bool           `json:"persisted"`
	Message   string         `json:"message"`
	ScannedAt time.Time      `json:"scanned_at"`
}

// Board holds the last scan result and clears it after the display window.
type Board struct {
	mu     sync.Mutex
	last   *ScanResult
	seq    uint64
	window time.Duration
}

func NewBoard(window time.Duration) *Board {
	if window <= 0 {
		window = DefaultBoardWindow
	}
	return &Board{window: window}
}

func (b *Board) Publish(res ScanResult) {
	b.mu.Lock()
	b.seq++
	seq := b.seq
	b.last = &res
	b.mu.Unlock()

	time.AfterFunc(b.window, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		// A newer result restarts the window.
		if b.seq == seq {
			b.last = nil
		}
	})
}

func (b *Board) Current() (ScanResult, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.last == nil {
		return ScanResult{}, false
	}
	return *b.last, true
}
