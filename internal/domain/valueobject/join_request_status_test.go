package valueobject

import "testing"

func TestNewJoinRequestStatus_Valid(t *testing.T) {
	for _, input := range []string{"pending", "approved", "rejected"} {
		s, err := NewJoinRequestStatus(input)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", input, err)
		}
		if s.String() != input {
			t.Errorf("got %q, want %q", s, input)
		}
	}
}

func TestNewJoinRequestStatus_Invalid_ReturnsError(t *testing.T) {
	if _, err := NewJoinRequestStatus("cancelled"); err != ErrInvalidJoinRequestStatus {
		t.Errorf("expected ErrInvalidJoinRequestStatus, got: %v", err)
	}
}

func TestJoinRequestStatus_IsFinal(t *testing.T) {
	if JoinRequestStatusPending.IsFinal() {
		t.Error("pending must not be final")
	}
	if !JoinRequestStatusApproved.IsFinal() || !JoinRequestStatusRejected.IsFinal() {
		t.Error("approved and rejected must be final")
	}
}
