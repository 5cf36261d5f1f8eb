package cron

import (
	"context"
	"time"

	appointmentRepo "concierge/database/repository/appointment"
	bookingRepo "concierge/database/repository/booking"
	"concierge/models"
	"concierge/services/tasks"
	"concierge/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	scanInterval = 10 * time.Minute
	// checkoutLeadTime is how far ahead of check-out the reminder goes out.
	checkoutLeadTime = 24 * time.Hour
	// appointmentLeadTime is how far ahead of an appointment the reminder
	// goes out.
	appointmentLeadTime = time.Hour
	// sentKeyTTL keeps send-once markers around long enough to outlive the
	// window they guard.
	sentKeyTTL = 48 * time.Hour
)

// ReminderScanner periodically finds bookings and appointments entering their
// reminder window and enqueues one reminder task for each.
type ReminderScanner struct {
	Bookings     bookingRepo.BookingRepository
	Appointments appointmentRepo.AppointmentRepository
	Cache        *redis.Client
	Logger       *zap.Logger

	client *asynq.Client
}

// InitReminderScanner starts the background scan loop.
func InitReminderScanner(bookings bookingRepo.BookingRepository, appointments appointmentRepo.AppointmentRepository) *ReminderScanner {
	s := &ReminderScanner{
		Bookings:     bookings,
		Appointments: appointments,
		Cache:        utils.GetCacheClient(),
		Logger:       utils.GetLogger(),
		client:       asynq.NewClient(redisOpts()),
	}
	go s.run()
	return s
}

func (s *ReminderScanner) run() {
	ticker := time.NewTicker(scanInterval)
	defer ticker.Stop()

	for {
		s.scan()
		<-ticker.C
	}
}

func (s *ReminderScanner) scan() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()

	bookings, err := s.Bookings.CheckingOutBetween(ctx, now, now.Add(checkoutLeadTime))
	if err != nil {
		s.Logger.Error("reminder scan: failed to list upcoming check-outs", zap.Error(err))
	} else {
		for _, b := range bookings {
			s.enqueueOnce(ctx, "reminder:sent:checkout:"+b.ID, models.ReminderPayload{
				SessionID:  b.SessionID,
				PromptType: models.PromptCheckoutReminder,
			})
		}
	}

	appointments, err := s.Appointments.StartingBetween(ctx, now, now.Add(appointmentLeadTime))
	if err != nil {
		s.Logger.Error("reminder scan: failed to list upcoming appointments", zap.Error(err))
		return
	}
	for _, a := range appointments {
		s.enqueueOnce(ctx, "reminder:sent:appointment:"+a.ID, models.ReminderPayload{
			SessionID:  a.SessionID,
			PromptType: models.PromptAppointmentReminder,
		})
	}
}

// enqueueOnce enqueues the reminder unless a marker shows it was already sent.
func (s *ReminderScanner) enqueueOnce(ctx context.Context, key string, payload models.ReminderPayload) {
	ok, err := s.Cache.SetNX(ctx, key, 1, sentKeyTTL).Result()
	if err != nil {
		s.Logger.Error("reminder scan: dedupe check failed", zap.String("key", key), zap.Error(err))
		return
	}
	if !ok {
		return
	}

	task, opts, err := tasks.NewReminderTask(payload, time.Now())
	if err != nil {
		s.Logger.Error("reminder scan: failed to build task", zap.Error(err))
		return
	}
	if _, err := s.client.Enqueue(task, opts...); err != nil {
		s.Logger.Error("reminder scan: failed to enqueue task",
			zap.String("sessionId", payload.SessionID), zap.Error(err))
	}
}
