package connection

import (
	"context"
	"errors"
	"testing"
	"time"

	"cubetimer/internal/core/model"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err   error
	calls chan struct{}
}

func (pinger *stubPinger) Ping(context.Context) error {
	pinger.calls <- struct{}{}
	return pinger.err
}

// channelLoop hands posted work back to the test goroutine.
type channelLoop chan func()

func (loop channelLoop) Post(fn func()) {
	loop <- fn
}

func runPosted(t *testing.T, loop channelLoop) {
	t.Helper()
	select {
	case fn := <-loop:
		fn()
	case <-time.After(2 * time.Second):
		t.Fatal("ping result was not posted")
	}
}

var sampleConfig = model.InfluxConfig{
	URL:     "http://localhost:8086",
	Token:   "abcdef123456",
	Org:     "cubers",
	Bucket:  "solves",
	Timeout: 10 * time.Second,
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "********3456", MaskToken("abcdef123456"))
	assert.Equal(t, "***", MaskToken("abc"))
	assert.Empty(t, MaskToken(""))
}

func TestConnectionTestSuccess(t *testing.T) {
	pinger := &stubPinger{calls: make(chan struct{}, 1)}
	loop := make(channelLoop, 1)
	connection := New(test.NewTempApp(t), sampleConfig, pinger, loop)
	assert.Equal(t, statusUntested, connection.Status())

	test.Tap(connection.testButton)
	assert.Equal(t, statusTesting, connection.Status())
	assert.True(t, connection.testButton.Disabled())

	connection.Test()
	runPosted(t, loop)
	require.Len(t, pinger.calls, 1)
	assert.Equal(t, statusOK, connection.Status())
	assert.False(t, connection.testButton.Disabled())
}

func TestConnectionTestFailure(t *testing.T) {
	pinger := &stubPinger{err: errors.New("connection refused"), calls: make(chan struct{}, 1)}
	loop := make(channelLoop, 1)
	connection := New(test.NewTempApp(t), sampleConfig, pinger, loop)

	connection.Test()
	runPosted(t, loop)
	assert.Equal(t, "Connection failed: connection refused", connection.Status())
}
