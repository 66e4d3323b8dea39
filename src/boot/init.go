package boot

import (
	"context"
	"log"
	"receh48/src/booking"
	"receh48/src/common"
	"receh48/src/db"
	"receh48/src/lib"
	"receh48/src/middlewares"
	"receh48/src/models"
	"time"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.Member{},
		&models.FeeGroup{},
		&models.MemberFee{},
		&models.Order{},
		&models.Review{},
		&models.SiteContent{},
		&models.ServiceStatus{},
		&models.TimetableImage{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

// InitConsumers starts the queue consumers in the background.
func InitConsumers(ctx context.Context) {
	common.SQSConsumers(ctx)
}

// InitScheduler registers the housekeeping jobs and starts the scheduler.
func InitScheduler(reg *booking.Registry, limiter *middlewares.RateLimiter) {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	id, err := lib.CreateCronJob("session-sweeper", time.Minute, func() {
		now := time.Now()
		reg.Sweep(now)
		if n := limiter.Cleanup(now); n > 0 {
			log.Printf("[ratelimit] forgot %d idle visitors\n", n)
		}
	})
	if err != nil {
		log.Printf("Error running job: %s\n", err.Error())
		return
	}
	log.Printf("Job ID: session-sweeper %s\n", *id)
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	err = sched.Shutdown()
	if err != nil {
		log.Println("An error has occurred while shutting stopping Scheduler. Check logs for info")
		return
	}
}
