package mail

import (
	"context"
	"errors"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vastrado/vastrado-api/internal/config"
)

// silentSMTPServer accepts connections and never sends the greeting, so a
// client dialing it hangs until its own deadline fires.
func silentSMTPServer(t *testing.T) (host string, port int) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	done := make(chan struct{})
	t.Cleanup(func() { close(done) })
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(c net.Conn) {
				<-done
				_ = c.Close()
			}(conn)
		}
	}()

	host, portStr, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	port, err = strconv.Atoi(portStr)
	require.NoError(t, err)
	return host, port
}

func TestSendEmail_DeadlineAgainstUnresponsiveServer(t *testing.T) {
	host, port := silentSMTPServer(t)
	m := NewMailer(&config.Config{
		SMTPHost: host,
		SMTPPort: port,
		SMTPFrom: "noreply@vastrado.com",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := m.SendEmail(ctx, "a@x.com", "Your Vastrado login code", "<p>123456</p>")

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), 5*time.Second, "deadline must cut the send short")
}

func TestSendEmail_CancelledContext(t *testing.T) {
	host, port := silentSMTPServer(t)
	m := NewMailer(&config.Config{
		SMTPHost: host,
		SMTPPort: port,
		SMTPFrom: "noreply@vastrado.com",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.SendEmail(ctx, "a@x.com", "Your Vastrado login code", "<p>123456</p>")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
