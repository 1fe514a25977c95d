package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pr-poehali-dev/wedding-invitation-site-58/internal/rsvp"
)

func tempDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test.db")
}

func newTestStore(t *testing.T) *BBoltStore {
	t.Helper()
	s, err := NewBBoltStore(tempDBPath(t))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	clock := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return s
}

func TestCreateResponse_AssignsIDAndTime(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.CreateResponse(ctx, rsvp.Response{Name: "Иван", Attendance: "yes", GuestsCount: 2})
	require.NoError(t, err)
	second, err := s.CreateResponse(ctx, rsvp.Response{Name: "Пётр", Attendance: "no"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.False(t, first.CreatedAt.IsZero())
	assert.True(t, second.CreatedAt.After(first.CreatedAt.Time))
	assert.Equal(t, []string{}, second.DietaryRestrictions)
}

func TestListResponses_NewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"Анна", "Иван", "Пётр"} {
		_, err := s.CreateResponse(ctx, rsvp.Response{Name: name, Attendance: "yes"})
		require.NoError(t, err)
	}

	responses, err := s.ListResponses(ctx)
	require.NoError(t, err)
	require.Len(t, responses, 3)
	assert.Equal(t, "Пётр", responses[0].Name)
	assert.Equal(t, "Анна", responses[2].Name)
}

func TestListResponses_Empty(t *testing.T) {
	s := newTestStore(t)

	responses, err := s.ListResponses(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, responses)
	assert.Empty(t, responses)
}

func TestSeed_SkipsExistingAndContinuesSequence(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	created := rsvp.Timestamp{Time: time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)}

	require.NoError(t, s.Seed([]rsvp.Response{
		{ID: 1, Name: "Анна", Attendance: "yes", CreatedAt: created},
		{ID: 2, Name: "Иван", Attendance: "no", CreatedAt: created},
	}))
	require.NoError(t, s.Seed([]rsvp.Response{
		{ID: 1, Name: "Перезапись", Attendance: "no"},
	}))

	next, err := s.CreateResponse(ctx, rsvp.Response{Name: "Пётр", Attendance: "yes"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), next.ID)

	responses, err := s.ListResponses(ctx)
	require.NoError(t, err)
	require.Len(t, responses, 3)
	assert.Equal(t, "Пётр", responses[0].Name)
	assert.Equal(t, "Иван", responses[1].Name)
	assert.Equal(t, "Анна", responses[2].Name)
}

func TestStore_SurvivesReopen(t *testing.T) {
	path := tempDBPath(t)
	ctx := context.Background()

	s, err := NewBBoltStore(path)
	require.NoError(t, err)
	_, err = s.CreateResponse(ctx, rsvp.Response{Name: "Иван", Attendance: "yes"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = NewBBoltStore(path)
	require.NoError(t, err)
	defer s.Close()

	responses, err := s.ListResponses(ctx)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, "Иван", responses[0].Name)
}

func TestNewBBoltStore_InvalidPath(t *testing.T) {
	_, err := NewBBoltStore(filepath.Join(os.DevNull, "impossible", "path.db"))
	assert.Error(t, err)
}
