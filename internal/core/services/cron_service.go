package services

import (
	"context"
	"log"
	"time"

	"github.com/el7alafawy/blood-safe/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CronService runs the scheduled lifecycle jobs: request expiry, inventory
// expiry, campaign date flips and appointment reminders.
type CronService struct {
	cron            *cron.Cron
	requestRepo     repositories.BloodRequestRepository
	inventoryRepo   repositories.InventoryRepository
	campaignRepo    repositories.CampaignRepository
	appointmentRepo repositories.AppointmentRepository
	notifier        *NotificationService
}

// NewCronService creates a new cron service
func NewCronService(
	requestRepo repositories.BloodRequestRepository,
	inventoryRepo repositories.InventoryRepository,
	campaignRepo repositories.CampaignRepository,
	appointmentRepo repositories.AppointmentRepository,
	notifier *NotificationService,
) *CronService {
	return &CronService{
		cron:            cron.New(),
		requestRepo:     requestRepo,
		inventoryRepo:   inventoryRepo,
		campaignRepo:    campaignRepo,
		appointmentRepo: appointmentRepo,
		notifier:        notifier,
	}
}

// Start registers and launches all scheduled jobs
func (s *CronService) Start() {
	// Expiry sweeps every 15 minutes
	s.cron.AddFunc("*/15 * * * *", s.expireRequests)
	s.cron.AddFunc("*/15 * * * *", s.expireInventory)

	// Campaign date flips hourly
	s.cron.AddFunc("0 * * * *", s.rollCampaigns)

	// Day-before appointment reminders at 18:00
	s.cron.AddFunc("0 18 * * *", s.sendAppointmentReminders)

	s.cron.Start()
	log.Println("🚀 CronService started")
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 CronService stopped")
}

// expireRequests flips PENDING requests past their required-by date
func (s *CronService) expireRequests() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.requestRepo.ExpirePastDue(ctx, time.Now())
	if err != nil {
		log.Printf("❌ Request expiry sweep error: %v", err)
		return
	}
	if n > 0 {
		log.Printf("⏰ Expired %d overdue blood request(s)", n)
	}
}

// expireInventory flips live batches past their expiry date
func (s *CronService) expireInventory() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.inventoryRepo.ExpireOutdated(ctx, time.Now())
	if err != nil {
		log.Printf("❌ Inventory expiry sweep error: %v", err)
		return
	}
	if n > 0 {
		log.Printf("⏰ Expired %d inventory batch(es)", n)
	}
}

// rollCampaigns activates campaigns whose window has opened and completes
// those whose window has closed
func (s *CronService) rollCampaigns() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()

	activated, err := s.campaignRepo.ActivateDue(ctx, now)
	if err != nil {
		log.Printf("❌ Campaign activation sweep error: %v", err)
	} else if activated > 0 {
		log.Printf("📣 Activated %d campaign(s)", activated)
	}

	completed, err := s.campaignRepo.CompleteEnded(ctx, now)
	if err != nil {
		log.Printf("❌ Campaign completion sweep error: %v", err)
	} else if completed > 0 {
		log.Printf("🏁 Completed %d ended campaign(s)", completed)
	}
}

// sendAppointmentReminders notifies donors with a confirmed appointment
// tomorrow, once per appointment
func (s *CronService) sendAppointmentReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	tomorrow := time.Now().AddDate(0, 0, 1)
	appts, err := s.appointmentRepo.ListPendingReminders(ctx, tomorrow)
	if err != nil {
		log.Printf("❌ Reminder query error: %v", err)
		return
	}

	sent := 0
	for i := range appts {
		if err := s.notifier.NotifyAppointmentReminder(ctx, &appts[i]); err != nil {
			log.Printf("❌ Reminder for appointment %d error: %v", appts[i].ID, err)
			continue
		}
		if err := s.appointmentRepo.MarkReminderSent(ctx, appts[i].ID); err != nil {
			log.Printf("❌ Could not mark reminder sent for appointment %d: %v", appts[i].ID, err)
			continue
		}
		sent++
	}

	if sent > 0 {
		log.Printf("📅 Sent %d appointment reminder(s) for tomorrow", sent)
	}
}
