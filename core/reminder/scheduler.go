package reminder

import (
	"context"
	"fmt"
	"net/mail"
	"net/url"
	"sync"
	"time"

	"github.com/upliftai/backend/core"
)

const defaultSendTimeout = 10 * time.Second

// Scheduler owns the once-per-minute reminder dispatch loop.
//
// Delivery contract: best effort, at most one attempt per subscription per
// day. A failed send is not retried within the tick; the next day's tick is
// the retry. Failures are isolated per subscriber and never abort the tick
// or the loop.
type Scheduler struct {
	svc         *Service
	mailSvc     core.EmailService
	logger      core.Logger
	appName     string
	baseURL     string
	sendTimeout time.Duration

	now  func() time.Time // injected for tests
	stop chan struct{}
	done chan struct{}
}

func NewScheduler(svc *Service, mailSvc core.EmailService, logger core.Logger, conf *core.Config) *Scheduler {
	return &Scheduler{
		svc:         svc,
		mailSvc:     mailSvc,
		logger:      logger,
		appName:     conf.AppName,
		baseURL:     conf.BaseURL,
		sendTimeout: defaultSendTimeout,
		now:         time.Now,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// Start launches the loop. Call once, after the store is confirmed healthy.
// The first tick is aligned to the top of the next UTC minute; late firing
// by a few seconds is harmless since the matched minute is read from the
// wall clock at fire time.
func (s *Scheduler) Start() {
	go s.run()
}

// Stop halts the loop and waits for an in-flight tick to finish.
func (s *Scheduler) Stop() {
	close(s.stop)
	<-s.done
}

func (s *Scheduler) run() {
	defer close(s.done)

	// align to second 0 of the next minute
	now := s.now()
	timer := time.NewTimer(now.Truncate(time.Minute).Add(time.Minute).Sub(now))
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-s.stop:
		return
	}

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	s.tick(s.now())
	for {
		select {
		case <-ticker.C:
			s.tick(s.now())
		case <-s.stop:
			return
		}
	}
}

// tick runs one scheduling pass: find subscriptions due at the current UTC
// minute and dispatch to each concurrently. A store failure aborts this
// tick only.
func (s *Scheduler) tick(now time.Time) {
	current := now.UTC().Format("15:04")

	ctx, cancel := context.WithTimeout(context.Background(), s.sendTimeout)
	defer cancel()

	due, err := s.svc.Due(ctx, current)
	if err != nil {
		s.logger.Error(fmt.Sprintf("reminder tick %s: querying due subscriptions: %v", current, err), err)
		return
	}
	if len(due) == 0 {
		return
	}
	s.logger.Info(fmt.Sprintf("reminder tick %s: %d due", current, len(due)))

	var wg sync.WaitGroup
	for _, sub := range due {
		if sentToday(sub.LastSentAt, now) {
			// tick re-ran or was double-scheduled; today's send already happened
			continue
		}
		wg.Add(1)
		go func(sub Subscription) {
			defer wg.Done()
			s.dispatch(sub, now)
		}(sub)
	}
	wg.Wait()
}

// dispatch sends one reminder and records the send. Any failure is logged
// and contained; sibling dispatches are unaffected.
func (s *Scheduler) dispatch(sub Subscription, now time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), s.sendTimeout)
	defer cancel()

	msg := s.message(sub)
	if err := s.mailSvc.SendMessage(ctx, msg); err != nil {
		s.logger.Error(fmt.Sprintf("reminder send failed for %s: %v", sub.Email, err), err)
		return
	}
	if err := s.svc.MarkSent(ctx, sub.ID, now.UTC()); err != nil {
		s.logger.Error(fmt.Sprintf("recording reminder send for %s: %v", sub.Email, err), err)
	}
}

func (s *Scheduler) message(sub Subscription) *core.EmailMessage {
	unsubscribeURL := fmt.Sprintf("%s/reminders/unsubscribe?token=%s", s.baseURL, url.QueryEscape(sub.UnsubscribeToken))
	return &core.EmailMessage{
		To:           []mail.Address{{Address: sub.Email}},
		Subject:      subject(sub.Lang),
		TemplateName: "reminder_" + core.NormalizeLang(sub.Lang),
		TemplateData: map[string]interface{}{
			"AppName":        s.appName,
			"UnsubscribeURL": unsubscribeURL,
		},
	}
}

func subject(lang string) string {
	if lang == "es" {
		return "Tu recordatorio diario — UpliftAI"
	}
	return "Your daily reminder — UpliftAI"
}

// sentToday reports whether last falls on the same UTC calendar day as now.
func sentToday(last *time.Time, now time.Time) bool {
	if last == nil {
		return false
	}
	y1, m1, d1 := last.UTC().Date()
	y2, m2, d2 := now.UTC().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
