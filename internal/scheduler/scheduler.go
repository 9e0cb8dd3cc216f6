package scheduler

import (
	"context"
	"time"

	"interview-booking/internal/data/entity"
	"interview-booking/internal/data/repository"
	"interview-booking/pkg/database"
	"interview-booking/pkg/mailer"
	"interview-booking/pkg/timeutil"
	"interview-booking/pkg/utils"

	"go.uber.org/zap"
)

// Reminder windows in minutes before session start.
const (
	reminderWindowLong  = 15
	reminderWindowShort = 5
)

// Scheduler runs the background sweeps: session reminders for today's
// confirmed bookings and expiry of stale pending gateway bookings.
type Scheduler struct {
	db     database.PgxIface
	repo   *repository.Repository
	mailer mailer.EmailService
	config *utils.Config
	log    *zap.Logger
	now    func() time.Time
}

func NewScheduler(
	db database.PgxIface,
	repo *repository.Repository,
	mail mailer.EmailService,
	config *utils.Config,
	log *zap.Logger,
) *Scheduler {
	return &Scheduler{
		db:     db,
		repo:   repo,
		mailer: mail,
		config: config,
		log:    log.With(zap.String("component", "scheduler")),
		now:    time.Now,
	}
}

// Start launches the sweep loops. They run until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	go s.loop(ctx, "reminder", s.sweepReminders)
	go s.loop(ctx, "expiry", s.sweepExpiredPending)
}

func (s *Scheduler) loop(ctx context.Context, name string, sweep func(ctx context.Context)) {
	interval := s.config.Booking.SweepInterval
	if interval <= 0 {
		interval = time.Minute
	}

	s.log.Info("Sweep loop started",
		zap.String("sweep", name),
		zap.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// First pass immediately, then on every tick.
	sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			s.log.Info("Sweep loop stopped", zap.String("sweep", name))
			return
		case <-ticker.C:
			sweep(ctx)
		}
	}
}

// ==================== REMINDER SWEEP ====================

func (s *Scheduler) sweepReminders(ctx context.Context) {
	now := s.now().UTC()
	today := now.Format("2006-01-02")

	bookings, err := s.repo.Booking.FindConfirmedByDate(ctx, today)
	if err != nil {
		s.log.Error("Failed to load today's confirmed bookings", zap.Error(err))
		return
	}

	for _, booking := range bookings {
		start, err := timeutil.CombineUTC(booking.Date, booking.StartTime)
		if err != nil {
			s.log.Error("Booking has unparsable start time",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()))
			continue
		}

		minutesToStart := int(start.Sub(now).Minutes())
		if minutesToStart <= 0 {
			continue
		}

		// The long window only covers (short, long]: once a booking is
		// inside the short window the earlier reminder is moot and must
		// not fire late on a following pass.
		switch {
		case minutesToStart <= reminderWindowShort && !booking.Reminder5Sent:
			s.remind(ctx, booking, reminderWindowShort, minutesToStart)
		case minutesToStart > reminderWindowShort && minutesToStart <= reminderWindowLong && !booking.Reminder15Sent:
			s.remind(ctx, booking, reminderWindowLong, minutesToStart)
		}
	}
}

// remind emails both participants and flags the window as sent. The flag is
// only set when at least one mail went out, so a total failure retries on
// the next pass.
func (s *Scheduler) remind(ctx context.Context, booking *entity.Booking, window, minutesToStart int) {
	user, err := s.repo.User.FindByID(ctx, booking.UserID)
	if err != nil || user == nil {
		s.log.Error("Failed to load booking user for reminder",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()))
		return
	}
	interviewer, err := s.repo.User.FindByID(ctx, booking.InterviewerID)
	if err != nil || interviewer == nil {
		s.log.Error("Failed to load interviewer for reminder",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()))
		return
	}

	sent := 0
	pairs := []struct {
		recipient *entity.User
		other     *entity.User
	}{
		{user, interviewer},
		{interviewer, user},
	}
	for _, p := range pairs {
		err := s.mailer.SendSessionReminder(ctx, mailer.SessionReminderParams{
			To:             p.recipient.Email,
			RecipientName:  p.recipient.Username,
			OtherPartyName: p.other.Username,
			Date:           booking.Date,
			StartTime:      booking.StartTime,
			MinutesToStart: minutesToStart,
		})
		if err != nil {
			s.log.Error("Failed to send reminder email",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
				zap.String("to", p.recipient.Email))
			continue
		}
		sent++
	}
	if sent == 0 {
		return
	}

	if err := s.repo.Booking.MarkReminderSent(ctx, booking.ID, window); err != nil {
		s.log.Error("Failed to mark reminder sent",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.Int("window", window))
		return
	}

	s.log.Info("Reminder sent",
		zap.String("booking_id", booking.ID.String()),
		zap.Int("window", window),
		zap.Int("minutes_to_start", minutesToStart))
}

// ==================== EXPIRY SWEEP ====================

// sweepExpiredPending cancels razorpay bookings that sat pending past the
// payment deadline. No ledger reversal: nothing was ever posted for them.
func (s *Scheduler) sweepExpiredPending(ctx context.Context) {
	cutoff := s.now().UTC().Add(-s.config.Booking.PendingExpiry)

	bookings, err := s.repo.Booking.FindExpiredPending(ctx, cutoff)
	if err != nil {
		s.log.Error("Failed to load expired pending bookings", zap.Error(err))
		return
	}

	for _, booking := range bookings {
		if err := s.repo.Booking.Cancel(ctx, s.db, booking.ID, entity.ExpiredPendingReason); err != nil {
			s.log.Error("Failed to cancel expired booking",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()))
			continue
		}
		s.log.Info("Expired pending booking cancelled",
			zap.String("booking_id", booking.ID.String()),
			zap.String("user_id", booking.UserID.String()))
	}
}
