package service

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seedstage/mentorship-api/internal/domain"
)

func TestMentorLocks_SerializesPerMentor(t *testing.T) {
	t.Parallel()

	locks := newMentorLocks()
	mentorID := uuid.New()

	const goroutines = 32
	counter := 0 // not atomic; the lock must make this safe

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			locks.Lock(mentorID)
			counter++
			locks.Unlock(mentorID)
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines, counter)
}

func TestMentorLocks_DistinctMentorsDoNotContend(t *testing.T) {
	t.Parallel()

	locks := newMentorLocks()
	first := uuid.New()
	second := uuid.New()

	// Holding one mentor's lock must not block another mentor's.
	locks.Lock(first)
	done := make(chan struct{})
	go func() {
		locks.Lock(second)
		locks.Unlock(second)
		close(done)
	}()
	<-done
	locks.Unlock(first)
}

func TestMentorLocks_NoCapacityOverrunUnderRace(t *testing.T) {
	t.Parallel()

	locks := newMentorLocks()
	mentor, err := domain.NewMentor("Priya Shah", []string{"hiring"}, 3)
	require.NoError(t, err)

	const contenders = 16
	startupIDs := make([]uuid.UUID, contenders)
	for i := range startupIDs {
		startupIDs[i] = uuid.New()
	}

	var (
		wg        sync.WaitGroup
		resultsMu sync.Mutex
		accepted  []uuid.UUID
		rejected  int
	)

	wg.Add(contenders)
	for i := 0; i < contenders; i++ {
		go func(startupID uuid.UUID) {
			defer wg.Done()

			// The same lock-then-mutate discipline SelectMentor applies
			// around the mentor read-modify-write.
			locks.Lock(mentor.ID)
			err := mentor.AddMentee(startupID)
			locks.Unlock(mentor.ID)

			resultsMu.Lock()
			defer resultsMu.Unlock()
			if err != nil {
				rejected++
			} else {
				accepted = append(accepted, startupID)
			}
		}(startupIDs[i])
	}
	wg.Wait()

	assert.LessOrEqual(t, len(mentor.CurrentMentees), mentor.MaxMentees)
	assert.Len(t, accepted, mentor.MaxMentees)
	assert.Equal(t, contenders-mentor.MaxMentees, rejected)

	// Exactly-once: every accepted startup occupies exactly one slot.
	for _, startupID := range accepted {
		occurrences := 0
		for _, mentee := range mentor.CurrentMentees {
			if mentee == startupID {
				occurrences++
			}
		}
		assert.Equal(t, 1, occurrences)
	}
}
