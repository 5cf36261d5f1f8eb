package cron

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"concierge/config"
	"concierge/models"
	"concierge/services/concierge"
	"concierge/services/tasks"

	"github.com/hibiken/asynq"
)

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// InitReminderWorker runs the async reminder worker in the background.
func InitReminderWorker(svc concierge.Service) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(svc))

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// handleReminderTask delivers one queued reminder through the concierge
// service.
func handleReminderTask(svc concierge.Service) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload models.ReminderPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return err
		}

		_, err := svc.ProactivePing(ctx, payload.SessionID, payload.PromptType)
		if errors.Is(err, concierge.ErrNoReminderContext) || errors.Is(err, concierge.ErrSessionNotFound) {
			// The guest's data changed since the task was enqueued; nothing
			// to remind about anymore.
			return nil
		}
		return err
	}
}
