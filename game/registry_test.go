package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryIdempotentPerTicket(t *testing.T) {
	r := newRegistry("s1", false)
	now := time.Now()

	rec, err := r.register("t1", Owner{Name: "Ana"}, "Cake", now)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.NotEmpty(t, rec.ID)

	again, err := r.register("t1", Owner{Name: "Ana"}, "Cake", now)
	require.NoError(t, err)
	assert.Nil(t, again, "second registration for the same ticket is a no-op")
	assert.Len(t, r.all(), 1)
}

func TestRegistrySinglePrize(t *testing.T) {
	r := newRegistry("s1", true)
	now := time.Now()

	rec, err := r.register("t1", Owner{}, "", now)
	require.NoError(t, err)
	require.NotNil(t, rec)

	_, err = r.register("t2", Owner{}, "", now)
	assert.ErrorIs(t, err, ErrPolicyViolation)
	assert.Len(t, r.all(), 1)
}

func TestRegistryResetDemotesOrClears(t *testing.T) {
	r := newRegistry("s1", true)
	_, err := r.register("t1", Owner{}, "", time.Now())
	require.NoError(t, err)

	r.reset(false)
	records := r.all()
	require.Len(t, records, 1)
	assert.False(t, records[0].Current)

	// History does not block the next round's winner, even in single-prize
	// mode.
	rec, err := r.register("t1", Owner{}, "Round 2", time.Now())
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Round 2", rec.Prize)

	r.reset(true)
	assert.Empty(t, r.all())
}

func TestRegistryRemoveTicket(t *testing.T) {
	r := newRegistry("s1", false)
	_, err := r.register("t1", Owner{}, "", time.Now())
	require.NoError(t, err)
	_, err = r.register("t2", Owner{}, "", time.Now())
	require.NoError(t, err)

	r.removeTicket("t1")
	records := r.all()
	require.Len(t, records, 1)
	assert.Equal(t, "t2", records[0].TicketID)
}
