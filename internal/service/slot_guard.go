package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"university-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrSlotTaken is returned when another booking already claimed the slot.
var ErrSlotTaken = errors.New("slot is already taken")

// claimSlotScript atomically claims a slot key if and only if it is not
// held yet. A plain GET+SET pair would leave a window between the check
// and the write; the script closes it inside Redis.
//
// Returns 1 when the claim succeeded, 0 when the slot is already held.
var claimSlotScript = redis.NewScript(`
	if redis.call('EXISTS', KEYS[1]) == 1 then
		return 0
	end
	redis.call('SET', KEYS[1], ARGV[1], 'EX', ARGV[2])
	return 1
`)

const (
	// Redis key prefix for slot claims
	slotClaimKeyPrefix = "slot:claim:"

	// Batch size for startup sync - process 500 records at a time
	slotSyncBatchSize = 500

	// Interval for cleaning up stale mutexes
	slotMutexCleanupInterval = 10 * time.Minute

	// How long a mutex must be unused before cleanup
	slotMutexStaleThreshold = 10 * time.Minute
)

// SlotGuardService serializes slot booking through Redis so two requests
// for the same (doctor, date, time) cannot both pass the availability
// check. The database stays the source of truth: claims carry a TTL and
// are rebuilt from booked appointments on startup.
//
// Lock ordering: acquire the per-slot mutex first, then touch Redis/DB.
type SlotGuardService struct {
	db          *gorm.DB
	redisClient *redis.Client
	log         *logrus.Logger

	// Per-slot mutex for local concurrent safety
	slotMu sync.Map // map[string]*slotMutex

	// Graceful shutdown
	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

type slotMutex struct {
	mu       sync.Mutex
	lastUsed atomic.Int64 // Unix timestamp
}

// NewSlotGuardService creates the guard and starts the background mutex
// cleanup goroutine. Call Stop() during graceful shutdown.
func NewSlotGuardService(db *gorm.DB, redisClient *redis.Client, log *logrus.Logger) *SlotGuardService {
	svc := &SlotGuardService{
		db:          db,
		redisClient: redisClient,
		log:         log,
		stopChan:    make(chan struct{}),
	}

	svc.wg.Add(1)
	go svc.cleanupMutexMapLoop()

	return svc
}

// Stop gracefully shuts down the service. Safe to call multiple times.
func (s *SlotGuardService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("SlotGuardService stopped")
	}
}

// SlotKey builds the Redis claim key for one doctor/date/time slot.
func SlotKey(doctorID uuid.UUID, date time.Time, slot string) string {
	return fmt.Sprintf("%s%s:%s:%s", slotClaimKeyPrefix, doctorID, date.Format("2006-01-02"), slot)
}

// Claim atomically reserves the slot for the given appointment. Returns
// ErrSlotTaken when another booking holds it. The caller must Release on
// a failed database insert (compensation).
func (s *SlotGuardService) Claim(ctx context.Context, doctorID uuid.UUID, date time.Time, slot string, appointmentID uuid.UUID) error {
	key := SlotKey(doctorID, date, slot)
	ttl := int(claimTTL(date).Seconds())

	ok, err := claimSlotScript.Run(ctx, s.redisClient, []string{key}, appointmentID.String(), ttl).Int()
	if err != nil {
		s.log.Warnf("Failed Lua slot claim for %s: %+v", key, err)
		return fmt.Errorf("claim slot %s: %w", key, err)
	}
	if ok == 0 {
		return ErrSlotTaken
	}

	s.log.Debugf("Claimed slot %s for appointment %s", key, appointmentID)
	return nil
}

// Release frees a claimed slot. Called to compensate a failed DB insert
// and when a slot-occupying appointment is cancelled or rejected.
func (s *SlotGuardService) Release(ctx context.Context, doctorID uuid.UUID, date time.Time, slot string) error {
	mt := s.getSlotMutex(SlotKey(doctorID, date, slot))
	mt.mu.Lock()
	defer mt.mu.Unlock()

	key := SlotKey(doctorID, date, slot)
	if err := s.redisClient.Del(ctx, key).Err(); err != nil {
		s.log.Warnf("Failed to release slot %s: %+v", key, err)
		return fmt.Errorf("release slot %s: %w", key, err)
	}

	s.log.Debugf("Released slot %s", key)
	return nil
}

// SyncOnStartup rebuilds slot claims in Redis from slot-occupying
// appointments from today onward. Should run before accepting traffic so
// a flushed Redis cannot hand out already-booked slots.
func (s *SlotGuardService) SyncOnStartup(ctx context.Context) error {
	s.log.Info("Starting slot claim re-sync from database...")
	startTime := time.Now()

	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		s.log.Warnf("Redis is not available, skipping slot sync: %+v", err)
		return fmt.Errorf("redis ping failed: %w", err)
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	offset := 0
	totalSynced := 0

	for {
		var appointments []entity.Appointment
		err := s.db.WithContext(ctx).
			Where("doctor_id IS NOT NULL AND date >= ? AND status IN ?", today, entity.BookedStatuses()).
			Order("id").
			Limit(slotSyncBatchSize).
			Offset(offset).
			Find(&appointments).Error
		if err != nil {
			s.log.Errorf("Failed to query appointments at offset %d: %+v", offset, err)
			return fmt.Errorf("query appointments at offset %d: %w", offset, err)
		}

		if len(appointments) == 0 {
			if offset == 0 {
				s.log.Info("No booked appointments found for slot sync")
			}
			break
		}

		// New pipeline per batch keeps memory bounded
		pipe := s.redisClient.TxPipeline()
		for _, apt := range appointments {
			if apt.DoctorID == nil {
				continue
			}
			key := SlotKey(*apt.DoctorID, apt.Date, SlotLabel(apt.Time))
			pipe.Set(ctx, key, apt.ID.String(), claimTTL(apt.Date))
		}
		if _, err := pipe.Exec(ctx); err != nil {
			s.log.Errorf("Failed to execute pipeline for batch at offset %d: %+v", offset, err)
			return fmt.Errorf("pipeline exec at offset %d: %w", offset, err)
		}

		totalSynced += len(appointments)
		if len(appointments) < slotSyncBatchSize {
			break
		}
		offset += slotSyncBatchSize

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	s.log.Infof("Slot claim re-sync completed: %d appointments synced in %v", totalSynced, time.Since(startTime))
	return nil
}

// SlotLabel normalizes HH:MM:SS values from the time column back to the
// HH:MM label used in slot keys.
func SlotLabel(value string) string {
	if t, err := parseClockTime(value); err == nil {
		return t.Format("15:04")
	}
	return value
}

func (s *SlotGuardService) getSlotMutex(key string) *slotMutex {
	mt, _ := s.slotMu.LoadOrStore(key, &slotMutex{})
	result := mt.(*slotMutex)
	result.lastUsed.Store(time.Now().Unix())
	return result
}

func (s *SlotGuardService) cleanupMutexMapLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(slotMutexCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			s.log.Debug("Slot mutex cleanup goroutine stopping")
			return
		case <-ticker.C:
			s.cleanupStaleMutexes()
		}
	}
}

// cleanupStaleMutexes removes unused mutexes using TryLock for safety.
// The lastUsed check happens inside the lock so a concurrent user cannot
// refresh the timestamp between check and delete.
func (s *SlotGuardService) cleanupStaleMutexes() {
	cutoffTime := time.Now().Add(-slotMutexStaleThreshold).Unix()
	var cleaned int

	s.slotMu.Range(func(key, value any) bool {
		mt, ok := value.(*slotMutex)
		if !ok {
			return true
		}
		if mt.mu.TryLock() {
			if mt.lastUsed.Load() < cutoffTime {
				s.slotMu.Delete(key)
				cleaned++
			}
			mt.mu.Unlock()
		}
		return true
	})

	if cleaned > 0 {
		s.log.Debugf("Cleaned up %d stale slot mutexes", cleaned)
	}
}

// claimTTL returns the claim lifetime: 24 hours after the appointment date.
func claimTTL(date time.Time) time.Duration {
	expireAt := date.AddDate(0, 0, 1)
	ttl := time.Until(expireAt)
	if ttl <= 0 {
		// Past date - short TTL for cleanup
		return 1 * time.Minute
	}
	return ttl
}
