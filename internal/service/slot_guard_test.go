package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSlotKey(t *testing.T) {
	doctorID := uuid.MustParse("7d9c3c6a-7a33-4f47-9f7e-2f1f2b6f8c11")
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	key := SlotKey(doctorID, date, "10:30")

	assert.Contains(t, key, "7d9c3c6a-7a33-4f47-9f7e-2f1f2b6f8c11")
	assert.Contains(t, key, "2025-03-10")
	assert.Contains(t, key, "10:30")

	// the same slot always maps to the same key
	assert.Equal(t, key, SlotKey(doctorID, date, "10:30"))
	assert.NotEqual(t, key, SlotKey(doctorID, date, "11:00"))
}

func TestSlotLabel(t *testing.T) {
	assert.Equal(t, "10:30", SlotLabel("10:30"))
	assert.Equal(t, "10:30", SlotLabel("10:30:00"))
	assert.Equal(t, "garbage", SlotLabel("garbage"))
}
