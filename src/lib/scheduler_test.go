package lib

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCronJob(t *testing.T) {
	sched, err := gocron.NewScheduler()
	require.NoError(t, err)
	NewScheduler(sched)
	defer func() {
		sched.Shutdown()
		NewScheduler(nil)
	}()

	var runs atomic.Int32
	id, err := CreateCronJob("tick", 20*time.Millisecond, func() { runs.Add(1) })
	require.NoError(t, err)
	require.NotNil(t, id)

	jobs := sched.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "tick", jobs[0].Name())
	assert.Equal(t, *id, jobs[0].ID().String())

	sched.Start()
	assert.Eventually(t, func() bool { return runs.Load() > 0 }, time.Second, 10*time.Millisecond)
}

func TestCreateCronJobRejectsBadHandler(t *testing.T) {
	sched, err := gocron.NewScheduler()
	require.NoError(t, err)
	NewScheduler(sched)
	defer func() {
		sched.Shutdown()
		NewScheduler(nil)
	}()

	_, err = CreateCronJob("broken", time.Minute, "not a func")
	assert.Error(t, err)
}
