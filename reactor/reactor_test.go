package reactor

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoller_DispatchesReadEventOnWrite(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	p, err := NewPoller()
	require.NoError(t, err)
	defer p.Close()

	events := make(chan IOEvents, 4)
	require.NoError(t, p.RegisterFD(int(r.Fd()), EventRead, func(ev IOEvents) {
		events <- ev
	}))

	_, err = w.Write([]byte{1})
	require.NoError(t, err)

	select {
	case ev := <-events:
		assert.NotZero(t, ev&EventRead)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for read event")
	}
}

func TestPoller_RegisterFDTwiceReturnsError(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	p, err := NewPoller()
	require.NoError(t, err)
	defer p.Close()

	fd := int(r.Fd())
	require.NoError(t, p.RegisterFD(fd, EventRead, func(IOEvents) {}))
	assert.ErrorIs(t, p.RegisterFD(fd, EventRead, func(IOEvents) {}), ErrFDAlreadyRegistered)
}

func TestPoller_UnregisterFDReturnsErrorWhenNotRegistered(t *testing.T) {
	p, err := NewPoller()
	require.NoError(t, err)
	defer p.Close()

	assert.ErrorIs(t, p.UnregisterFD(999), ErrFDNotRegistered)
}
