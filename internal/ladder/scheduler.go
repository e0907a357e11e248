package ladder

import (
	"sort"
	"sync"
	"time"
)

// Timer - отменяемый отложенный вызов
type Timer interface {
	Stop() bool
}

// Scheduler откладывает вызовы. Реализация обязана вызывать f в том же
// домене синхронизации, в котором работают Ledger и Board.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// lockedScheduler запускает колбэки таймеров под мьютексом игры
type lockedScheduler struct {
	mu sync.Locker
}

// NewLockedScheduler возвращает планировщик на time.AfterFunc, который
// берёт mu перед каждым колбэком
func NewLockedScheduler(mu sync.Locker) Scheduler {
	return &lockedScheduler{mu: mu}
}

func (s *lockedScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		f()
	})
}

// ManualScheduler - планировщик с ручным временем. Колбэки выполняются
// синхронно внутри Advance.
type ManualScheduler struct {
	now     time.Duration
	seq     int
	pending []*manualTimer
}

type manualTimer struct {
	at      time.Duration
	seq     int
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// NewManualScheduler создаёт планировщик с нулевым временем
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.seq++
	t := &manualTimer{at: s.now + d, seq: s.seq, f: f}
	s.pending = append(s.pending, t)
	return t
}

// Advance сдвигает время на d и выполняет все созревшие таймеры по порядку,
// включая те, что были заведены колбэками в пределах окна.
func (s *ManualScheduler) Advance(d time.Duration) {
	deadline := s.now + d
	for {
		next := s.nextDue(deadline)
		if next == nil {
			break
		}
		s.now = next.at
		next.fired = true
		next.f()
	}
	s.now = deadline
	s.compact()
}

// Pending - количество активных таймеров
func (s *ManualScheduler) Pending() int {
	n := 0
	for _, t := range s.pending {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (s *ManualScheduler) nextDue(deadline time.Duration) *manualTimer {
	var due []*manualTimer
	for _, t := range s.pending {
		if !t.stopped && !t.fired && t.at <= deadline {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at == due[j].at {
			return due[i].seq < due[j].seq
		}
		return due[i].at < due[j].at
	})
	return due[0]
}

func (s *ManualScheduler) compact() {
	live := s.pending[:0]
	for _, t := range s.pending {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	s.pending = live
}

// timerSet хранит дескрипторы таймеров, чтобы отменить их при сбросе
type timerSet struct {
	timers []Timer
}

func (ts *timerSet) add(t Timer) {
	ts.timers = append(ts.timers, t)
}

func (ts *timerSet) stopAll() {
	for _, t := range ts.timers {
		t.Stop()
	}
	ts.timers = nil
}
