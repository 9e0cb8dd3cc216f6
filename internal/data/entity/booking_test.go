package entity

import (
	"testing"

	"github.com/google/uuid"
)

func TestSplitFee(t *testing.T) {
	cases := []struct {
		amount   int64
		percent  int
		fee      int64
		earnings int64
	}{
		{500, 10, 50, 450},
		{1000, 10, 100, 900},
		{999, 10, 100, 899}, // 99.9 rounds up
		{994, 10, 99, 895},  // 99.4 rounds down
		{995, 10, 100, 895}, // 99.5 rounds half-up
		{1, 10, 0, 1},
		{0, 10, 0, 0},
		{500, 0, 0, 500},
	}
	for _, tc := range cases {
		fee, earnings := SplitFee(tc.amount, tc.percent)
		if fee != tc.fee || earnings != tc.earnings {
			t.Errorf("SplitFee(%d, %d) = %d/%d, want %d/%d",
				tc.amount, tc.percent, fee, earnings, tc.fee, tc.earnings)
		}
		if fee+earnings != tc.amount {
			t.Errorf("SplitFee(%d, %d) loses money: %d + %d != %d",
				tc.amount, tc.percent, fee, earnings, tc.amount)
		}
	}
}

func TestBookingStatusIsBlocking(t *testing.T) {
	blocking := map[BookingStatus]bool{
		BookingStatusPending:   true,
		BookingStatusConfirmed: true,
		BookingStatusCompleted: true,
		BookingStatusCancelled: false,
	}
	for status, want := range blocking {
		if got := status.IsBlocking(); got != want {
			t.Errorf("%s.IsBlocking() = %v, want %v", status, got, want)
		}
	}
}

func TestIsParticipant(t *testing.T) {
	user, interviewer := uuid.New(), uuid.New()
	b := &Booking{UserID: user, InterviewerID: interviewer}

	if !b.IsParticipant(user) || !b.IsParticipant(interviewer) {
		t.Error("participant not recognized")
	}
	if b.IsParticipant(uuid.New()) {
		t.Error("outsider recognized as participant")
	}
}
