package scheduler

import (
	"log"
	"sync"
	"time"
)

// Scheduler запускает задания раз в сутки в заданное время
type Scheduler struct {
	mu      sync.Mutex
	timers  []*time.Timer
	tickers []*time.Ticker
	done    chan struct{}
	stopped bool
}

func New() *Scheduler {
	return &Scheduler{done: make(chan struct{})}
}

// ScheduleDaily планирует job каждый день в hour:minute локального
// времени. Первое срабатывание назначается одноразовым таймером,
// дальнейшие — тикером с фиксированным периодом 24 часа, поэтому
// перевод часов сдвигает время запуска на величину перевода.
func (s *Scheduler) ScheduleDaily(hour, minute int, job func()) {
	first := NextFireAfter(time.Now(), hour, minute)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	timer := time.AfterFunc(time.Until(first), func() {
		job()
		s.startRecurring(job)
	})
	s.timers = append(s.timers, timer)

	log.Printf("Scheduled daily job at %02d:%02d, first run %s", hour, minute, first.Format(time.RFC3339))
}

func (s *Scheduler) startRecurring(job func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	ticker := time.NewTicker(24 * time.Hour)
	s.tickers = append(s.tickers, ticker)

	go func() {
		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				job()
			}
		}
	}()
}

// Stop отменяет все запланированные задания
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.stopped = true
	close(s.done)

	for _, timer := range s.timers {
		timer.Stop()
	}
	for _, ticker := range s.tickers {
		ticker.Stop()
	}
}

// NextFireAfter ближайшее будущее время hour:minute относительно now.
// Если сегодняшнее время уже прошло, берётся завтрашний день.
func NextFireAfter(now time.Time, hour, minute int) time.Time {
	fire := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !fire.After(now) {
		fire = fire.AddDate(0, 0, 1)
	}
	return fire
}
