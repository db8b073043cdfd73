package handlers

import (
	"errors"
	"net/http"
	"testing"

	"sessionbooker/services/booking"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", &booking.Error{Kind: booking.KindNotFound, Code: booking.CodeBookingNotFound}, http.StatusNotFound},
		{"forbidden", &booking.Error{Kind: booking.KindForbidden, Code: booking.CodeSelfBooking}, http.StatusForbidden},
		{"conflict", &booking.Error{Kind: booking.KindConflict, Code: booking.CodeAlreadyBooked}, http.StatusConflict},
		{"invalid state", &booking.Error{Kind: booking.KindInvalidState, Code: booking.CodeWindowClosed}, http.StatusBadRequest},
		{"store unavailable", &booking.Error{Kind: booking.KindStoreUnavailable, Code: booking.CodeStoreUnavailable}, http.StatusServiceUnavailable},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusFromError(tt.err); got != tt.want {
				t.Errorf("statusFromError = %d, want %d", got, tt.want)
			}
		})
	}
}
