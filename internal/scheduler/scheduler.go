package scheduler

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/gabomartinez21/invesment-track/internal/digest"
	"github.com/gabomartinez21/invesment-track/internal/notifier"
)

// Scheduler runs the digest pipeline on a daily cron schedule and
// mails the result.
type Scheduler struct {
	Cron     *cron.Cron
	Pipeline *digest.Pipeline
	Mailer   *notifier.Mailer
	Ctx      context.Context

	SendTZ    string // IANA zone for the send window
	SendAfter string // HH:MM; scheduled runs before this local time are skipped
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, pipeline *digest.Pipeline, mailer *notifier.Mailer, sendTZ, sendAfter string) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Pipeline:  pipeline,
		Mailer:    mailer,
		Ctx:       ctx,
		SendTZ:    sendTZ,
		SendAfter: sendAfter,
	}
}

// Register adds the daily digest task.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the digest immediately, ignoring the send window
// (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.runDigest()
}

func (s *Scheduler) dailyTask() {
	if !ShouldSendNow(s.SendTZ, s.SendAfter, time.Now()) {
		log.Printf("[INFO] outside send window (%s %s), skipping", s.SendAfter, s.SendTZ)
		return
	}
	s.runDigest()
}

func (s *Scheduler) runDigest() {
	log.Println("[INFO] running digest")
	report, err := s.Pipeline.Run(s.Ctx)
	if err != nil {
		log.Printf("[ERROR] digest run: %v", err)
		return
	}

	subject := notifier.FormatSubject(report)
	html := notifier.FormatDigestHTML(report)
	if err := s.Mailer.SendWithRetry(s.Ctx, subject, html, 3); err != nil {
		log.Printf("[ERROR] send digest: %v", err)
		return
	}
	log.Printf("[INFO] digest sent: %d holdings, net worth %.2f", len(report.Stocks), report.Summary.NetWorth)
}

// ShouldSendNow reports whether the local time in tzName is at or past
// the HH:MM threshold. A bad zone or threshold falls back to UTC 08:45.
func ShouldSendNow(tzName, hhmm string, now time.Time) bool {
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		loc = time.UTC
	}

	targetH, targetM := 8, 45
	if parts := strings.SplitN(hhmm, ":", 2); len(parts) == 2 {
		if h, err := strconv.Atoi(parts[0]); err == nil {
			if m, err := strconv.Atoi(parts[1]); err == nil {
				targetH, targetM = h, m
			}
		}
	}

	local := now.In(loc)
	if local.Hour() > targetH {
		return true
	}
	return local.Hour() == targetH && local.Minute() >= targetM
}
