package jobs

import (
	"FoodSaver-Backend/internal/metrics"
	"context"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/robfig/cron/v3"
)

const sweepJobName = "reservation_sweep"

// ReservationCanceller is implemented by the transaction service.
type ReservationCanceller interface {
	CancelStaleReservations(ctx context.Context, before time.Time) (int, error)
}

// ReservationSweeper periodically cancels pending reservations older than ttl
// so their items return to the browse list.
type ReservationSweeper struct {
	canceller ReservationCanceller
	ttl       time.Duration
	timeout   time.Duration
	now       func() time.Time
	cron      *cron.Cron
}

func NewReservationSweeper(canceller ReservationCanceller, ttl time.Duration) *ReservationSweeper {
	return &ReservationSweeper{
		canceller: canceller,
		ttl:       ttl,
		timeout:   time.Minute,
		now:       time.Now,
		cron:      cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
}

// Start schedules the sweep with a standard cron spec, e.g. "@every 15m".
func (s *ReservationSweeper) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, func() { s.Run(context.Background()) }); err != nil {
		return err
	}
	s.cron.Start()
	log.Infof("reservation sweeper scheduled (%s, ttl %s)", spec, s.ttl)
	return nil
}

// Stop waits for a running sweep to finish.
func (s *ReservationSweeper) Stop() {
	<-s.cron.Stop().Done()
}

func (s *ReservationSweeper) Run(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	cancelled, err := s.canceller.CancelStaleReservations(ctx, s.now().Add(-s.ttl))
	metrics.RecordJobRun(sweepJobName, time.Since(start), err == nil)
	if err != nil {
		log.Errorf("reservation sweep failed after %d cancellations: %v", cancelled, err)
		return cancelled
	}
	if cancelled > 0 {
		log.Infof("reservation sweep cancelled %d stale reservations", cancelled)
	}
	return cancelled
}
