package models

import (
	"testing"
	"time"
)

func TestCanBeCancelled(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		status BookingStatus
		start  time.Time
		want   bool
	}{
		{"confirmed well ahead", BookingConfirmed, now.Add(3 * time.Hour), true},
		{"confirmed one second past the window", BookingConfirmed, now.Add(CancellationWindow + time.Second), true},
		{"confirmed exactly at the window", BookingConfirmed, now.Add(CancellationWindow), false},
		{"confirmed inside the window", BookingConfirmed, now.Add(time.Hour), false},
		{"confirmed already started", BookingConfirmed, now.Add(-time.Hour), false},
		{"cancelled well ahead", BookingCancelled, now.Add(3 * time.Hour), false},
		{"completed well ahead", BookingCompleted, now.Add(3 * time.Hour), false},
		{"no-show well ahead", BookingNoShow, now.Add(3 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.status}
			if got := b.CanBeCancelled(tt.start, now); got != tt.want {
				t.Errorf("CanBeCancelled = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsUpcoming(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		status BookingStatus
		start  time.Time
		want   bool
	}{
		{"confirmed future", BookingConfirmed, now.Add(time.Minute), true},
		{"confirmed starting now", BookingConfirmed, now, false},
		{"confirmed past", BookingConfirmed, now.Add(-time.Minute), false},
		{"cancelled future", BookingCancelled, now.Add(time.Hour), false},
		{"completed future", BookingCompleted, now.Add(time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.status}
			if got := b.IsUpcoming(tt.start, now); got != tt.want {
				t.Errorf("IsUpcoming = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestActiveAndTerminal(t *testing.T) {
	for _, tt := range []struct {
		status   BookingStatus
		active   bool
		terminal bool
	}{
		{BookingConfirmed, true, false},
		{BookingCompleted, true, true},
		{BookingCancelled, false, true},
		{BookingNoShow, false, true},
	} {
		b := &Booking{Status: tt.status}
		if got := b.IsActive(); got != tt.active {
			t.Errorf("%s: IsActive = %v, want %v", tt.status, got, tt.active)
		}
		if got := b.IsTerminal(); got != tt.terminal {
			t.Errorf("%s: IsTerminal = %v, want %v", tt.status, got, tt.terminal)
		}
	}
}
