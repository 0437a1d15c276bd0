package worker

// daily_cron.go
// Background goroutine that runs once per calendar day (checked hourly):
//   - low-stock scan → LOW_STOCK notifications
//   - today's birthdays → BIRTHDAY notifications
//   - tomorrow's flagged appointments → APPOINTMENT notifications + reminder emails

import (
	"context"
	"fmt"
	"time"

	"github.com/Sergiom84/Lucy3000/internal/model"
	"github.com/Sergiom84/Lucy3000/internal/repository"

	"github.com/rs/zerolog/log"
)

const cronTickInterval = time.Hour

// DailyCronConfig holds all dependencies for the daily scan goroutine.
type DailyCronConfig struct {
	ProductRepo      repository.ProductRepository
	ClientRepo       repository.ClientRepository
	AppointmentRepo  repository.AppointmentRepository
	NotificationRepo repository.NotificationRepository
	Dispatcher       *Dispatcher
	BusinessName     string
}

// StartDailyCron launches the scan goroutine. It runs immediately on startup
// and then at most once per day; the hourly tick only checks whether the
// date rolled over. Respects the context for graceful shutdown.
func StartDailyCron(ctx context.Context, cfg DailyCronConfig) {
	go func() {
		ticker := time.NewTicker(cronTickInterval)
		defer ticker.Stop()

		log.Info().Msg("daily_cron: started")
		lastRun := ""

		run := func() {
			today := time.Now().Format("2006-01-02")
			if today == lastRun {
				return
			}
			lastRun = today
			scanLowStock(ctx, cfg)
			scanBirthdays(ctx, cfg)
			scanReminders(ctx, cfg)
		}

		run()
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("daily_cron: shutting down")
				return
			case <-ticker.C:
				run()
			}
		}
	}()
}

func scanLowStock(ctx context.Context, cfg DailyCronConfig) {
	products, err := cfg.ProductRepo.ListLowStock(ctx)
	if err != nil {
		log.Error().Err(err).Msg("daily_cron: low-stock query failed")
		return
	}
	for _, p := range products {
		title := fmt.Sprintf("Low stock: %s", p.Name)
		if exists, err := cfg.NotificationRepo.ExistsRecent(ctx, model.NotifLowStock, title); err != nil || exists {
			continue
		}
		n := &model.Notification{
			Type:     model.NotifLowStock,
			Title:    title,
			Message:  fmt.Sprintf("%s is down to %d units (minimum %d)", p.Name, p.Stock, p.MinStock),
			Priority: model.PriorityHigh,
		}
		if err := cfg.NotificationRepo.Create(ctx, n); err != nil {
			log.Error().Err(err).Str("product", p.Name).Msg("daily_cron: low-stock notification failed")
		}
	}
	if len(products) > 0 {
		log.Info().Int("count", len(products)).Msg("daily_cron: low-stock scan done")
	}
}

func scanBirthdays(ctx context.Context, cfg DailyCronConfig) {
	now := time.Now()
	clients, err := cfg.ClientRepo.FindBirthdays(ctx, int(now.Month()), now.Day())
	if err != nil {
		log.Error().Err(err).Msg("daily_cron: birthday query failed")
		return
	}
	for _, c := range clients {
		title := fmt.Sprintf("Birthday: %s %s", c.FirstName, c.LastName)
		if exists, err := cfg.NotificationRepo.ExistsRecent(ctx, model.NotifBirthday, title); err != nil || exists {
			continue
		}
		n := &model.Notification{
			Type:     model.NotifBirthday,
			Title:    title,
			Message:  fmt.Sprintf("%s %s has their birthday today", c.FirstName, c.LastName),
			Priority: model.PriorityNormal,
		}
		if err := cfg.NotificationRepo.Create(ctx, n); err != nil {
			log.Error().Err(err).Msg("daily_cron: birthday notification failed")
		}
	}
}

func scanReminders(ctx context.Context, cfg DailyCronConfig) {
	tomorrow := time.Now().AddDate(0, 0, 1)
	appts, err := cfg.AppointmentRepo.FindPendingReminders(ctx, tomorrow)
	if err != nil {
		log.Error().Err(err).Msg("daily_cron: reminder query failed")
		return
	}
	for _, a := range appts {
		clientName := ""
		serviceName := ""
		if a.Client != nil {
			clientName = a.Client.FirstName + " " + a.Client.LastName
		}
		if a.Service != nil {
			serviceName = a.Service.Name
		}

		title := fmt.Sprintf("Reminder: %s at %s", clientName, a.StartTime)
		if exists, err := cfg.NotificationRepo.ExistsRecent(ctx, model.NotifAppointment, title); err == nil && !exists {
			n := &model.Notification{
				Type:     model.NotifAppointment,
				Title:    title,
				Message:  fmt.Sprintf("%s — %s tomorrow at %s", clientName, serviceName, a.StartTime),
				Priority: model.PriorityNormal,
			}
			if err := cfg.NotificationRepo.Create(ctx, n); err != nil {
				log.Error().Err(err).Msg("daily_cron: reminder notification failed")
			}
		}

		if a.Client != nil && a.Client.Email != nil && *a.Client.Email != "" && cfg.Dispatcher != nil {
			emailJob := EmailJobPayload{
				ToEmail: *a.Client.Email,
				Subject: fmt.Sprintf("%s — appointment reminder", cfg.BusinessName),
				Body: fmt.Sprintf("Hi %s,\n\nThis is a reminder of your %s appointment tomorrow at %s.\n\nSee you soon!",
					a.Client.FirstName, serviceName, a.StartTime),
			}
			if err := cfg.Dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
				log.Warn().Err(err).Msg("daily_cron: failed to enqueue reminder email")
			}
		}
	}
	if len(appts) > 0 {
		log.Info().Int("count", len(appts)).Msg("daily_cron: reminder scan done")
	}
}
