package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestRequest(t *testing.T) *MentorshipRequest {
	t.Helper()
	request, err := NewMentorshipRequest(
		uuid.New(),
		uuid.New(),
		"go-to-market strategy",
		"We are struggling to position our developer tool.",
		[]string{"marketing"},
		[]string{"saas"},
		UrgencyHigh,
	)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return request
}

func TestNewMentorshipRequest(t *testing.T) {
	t.Parallel() // Enable parallel execution
	request := newTestRequest(t)

	if request.Status != RequestStatusPending {
		t.Errorf("Expected status %s, got %s", RequestStatusPending, request.Status)
	}

	if len(request.MatchedMentors) != 0 {
		t.Errorf("Expected empty match list, got %d entries", len(request.MatchedMentors))
	}

	// Empty skills are rejected
	_, err := NewMentorshipRequest(uuid.New(), uuid.New(), "topic", "", nil, nil, UrgencyLow)
	if err != ErrRequestSkillsEmpty {
		t.Errorf("Expected error %v, got %v", ErrRequestSkillsEmpty, err)
	}

	// Invalid urgency
	_, err = NewMentorshipRequest(uuid.New(), uuid.New(), "topic", "", []string{"sales"}, nil, "urgent")
	if err != ErrInvalidUrgency {
		t.Errorf("Expected error %v, got %v", ErrInvalidUrgency, err)
	}

	// Empty topic
	_, err = NewMentorshipRequest(uuid.New(), uuid.New(), "", "", []string{"sales"}, nil, UrgencyLow)
	if err != ErrRequestTopicEmpty {
		t.Errorf("Expected error %v, got %v", ErrRequestTopicEmpty, err)
	}
}

func TestRequestTransitionTable(t *testing.T) {
	t.Parallel() // Enable parallel execution
	tests := []struct {
		name    string
		from    RequestStatus
		to      RequestStatus
		allowed bool
	}{
		{"pending_to_matched", RequestStatusPending, RequestStatusMatched, true},
		{"pending_to_cancelled", RequestStatusPending, RequestStatusCancelled, true},
		{"pending_to_scheduled", RequestStatusPending, RequestStatusScheduled, false},
		{"pending_to_completed", RequestStatusPending, RequestStatusCompleted, false},
		{"matched_to_scheduled", RequestStatusMatched, RequestStatusScheduled, true},
		{"matched_to_pending", RequestStatusMatched, RequestStatusPending, true},
		{"matched_to_cancelled", RequestStatusMatched, RequestStatusCancelled, true},
		{"matched_to_completed", RequestStatusMatched, RequestStatusCompleted, false},
		{"scheduled_to_completed", RequestStatusScheduled, RequestStatusCompleted, true},
		{"scheduled_to_cancelled", RequestStatusScheduled, RequestStatusCancelled, true},
		{"scheduled_to_matched", RequestStatusScheduled, RequestStatusMatched, false},
		{"completed_is_terminal", RequestStatusCompleted, RequestStatusCancelled, false},
		{"cancelled_is_terminal", RequestStatusCancelled, RequestStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.allowed {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.allowed)
			}

			request := newTestRequest(t)
			request.Status = tt.from
			err := request.TransitionTo(tt.to)
			if tt.allowed && err != nil {
				t.Errorf("Expected transition to succeed, got %v", err)
			}
			if !tt.allowed && err != ErrIllegalTransition {
				t.Errorf("Expected error %v, got %v", ErrIllegalTransition, err)
			}
		})
	}
}

func TestRequestSetMatches(t *testing.T) {
	t.Parallel() // Enable parallel execution
	request := newTestRequest(t)

	entries := []MatchEntry{
		{MentorID: uuid.New(), Score: 91.5, Status: MatchStatusSuggested},
		{MentorID: uuid.New(), Score: 80.11, Status: MatchStatusSuggested},
		{MentorID: uuid.New(), Score: 80.11, Status: MatchStatusSuggested},
	}
	if err := request.SetMatches(entries); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Unsorted lists are rejected
	bad := []MatchEntry{
		{MentorID: uuid.New(), Score: 50},
		{MentorID: uuid.New(), Score: 70},
	}
	if err := request.SetMatches(bad); err != ErrMatchListUnsorted {
		t.Errorf("Expected error %v, got %v", ErrMatchListUnsorted, err)
	}

	// Over-long lists are rejected
	long := make([]MatchEntry, MaxMatchedMentors+1)
	for i := range long {
		long[i] = MatchEntry{MentorID: uuid.New(), Score: float64(100 - i)}
	}
	if err := request.SetMatches(long); err != ErrMatchListTooLong {
		t.Errorf("Expected error %v, got %v", ErrMatchListTooLong, err)
	}
}

func TestRequestSelectMentor(t *testing.T) {
	t.Parallel() // Enable parallel execution
	request := newTestRequest(t)
	now := time.Now().UTC()

	mentorID := uuid.New()
	err := request.SetMatches([]MatchEntry{
		{MentorID: mentorID, Score: 90, Status: MatchStatusSuggested},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Unknown mentor
	if err := request.SelectMentor(uuid.New(), now); err != ErrMatchNotFound {
		t.Errorf("Expected error %v, got %v", ErrMatchNotFound, err)
	}

	if err := request.SelectMentor(mentorID, now); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if request.SelectedMentor == nil || *request.SelectedMentor != mentorID {
		t.Error("Expected selected mentor to be recorded")
	}

	entry := request.FindMatch(mentorID)
	if entry == nil || entry.Status != MatchStatusAccepted {
		t.Error("Expected match entry status to be accepted")
	}
	if entry.AcceptedAt == nil {
		t.Error("Expected AcceptedAt to be stamped")
	}

	// Selection is one-time
	if err := request.SelectMentor(mentorID, now); err != ErrMentorAlreadySelected {
		t.Errorf("Expected error %v, got %v", ErrMentorAlreadySelected, err)
	}
}

func TestRequestAddSession(t *testing.T) {
	t.Parallel() // Enable parallel execution
	request := newTestRequest(t)
	now := time.Now().UTC()

	session, err := NewSession(uuid.New(), now.Add(time.Hour), 60, "", now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Sessions cannot be attached to a pending request
	if err := request.AddSession(*session); err != ErrIllegalTransition {
		t.Errorf("Expected error %v, got %v", ErrIllegalTransition, err)
	}

	request.Status = RequestStatusMatched
	if err := request.AddSession(*session); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if request.Status != RequestStatusScheduled {
		t.Errorf("Expected status %s after first session, got %s", RequestStatusScheduled, request.Status)
	}

	// Further sessions keep the status
	second, err := NewSession(uuid.New(), now.Add(2*time.Hour), 30, "", now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := request.AddSession(*second); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if request.Status != RequestStatusScheduled {
		t.Errorf("Expected status %s after second session, got %s", RequestStatusScheduled, request.Status)
	}

	found := request.FindSession(session.ID)
	if found == nil {
		t.Fatal("Expected to find attached session")
	}
	if request.FindSession(uuid.New()) != nil {
		t.Error("Expected nil for unknown session ID")
	}
}

func TestRequestCancel(t *testing.T) {
	t.Parallel() // Enable parallel execution
	now := time.Now().UTC()
	actor := uuid.New()

	for _, status := range []RequestStatus{RequestStatusPending, RequestStatusMatched, RequestStatusScheduled} {
		request := newTestRequest(t)
		request.Status = status
		if err := request.Cancel(actor, "no longer needed", now); err != nil {
			t.Errorf("Expected cancel from %s to succeed, got %v", status, err)
		}
		if request.Cancellation == nil || request.Cancellation.By != actor {
			t.Error("Expected cancellation metadata to be recorded")
		}
	}

	for _, status := range []RequestStatus{RequestStatusCompleted, RequestStatusCancelled} {
		request := newTestRequest(t)
		request.Status = status
		if err := request.Cancel(actor, "", now); err != ErrIllegalTransition {
			t.Errorf("Expected cancel from %s to fail with %v, got %v", status, ErrIllegalTransition, err)
		}
	}
}
