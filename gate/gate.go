package gate

import (
	"fmt"
	"io"
	"net"
	"os"
	"time"
)

// DialFunc matches the signature of net.DialTimeout.
type DialFunc func(network, address string, timeout time.Duration) (net.Conn, error)

// Gate blocks the entrypoint until a dependency accepts TCP connections.
// Readiness is raw connectivity only; the probe never speaks the
// dependency's protocol.
type Gate struct {
	Target      string
	Interval    time.Duration
	DialTimeout time.Duration

	// Dial and Sleep are swappable for tests
	Dial  DialFunc
	Sleep func(time.Duration)
	Out   io.Writer
}

// New creates a Gate with the standard dialer, sleeper and stdout.
func New(target string, interval, dialTimeout time.Duration) *Gate {
	return &Gate{
		Target:      target,
		Interval:    interval,
		DialTimeout: dialTimeout,
		Dial:        net.DialTimeout,
		Sleep:       time.Sleep,
		Out:         os.Stdout,
	}
}

// Wait blocks until the target accepts a TCP connection and returns the
// number of failed attempts. Every transport error counts as "not ready
// yet"; there is no attempt cap, so an unreachable target blocks forever.
func (g *Gate) Wait() int {
	failures := 0
	for {
		conn, err := g.Dial("tcp", g.Target, g.DialTimeout)
		if err == nil {
			_ = conn.Close()
			return failures
		}
		failures++
		g.Sleep(g.Interval)
	}
}

// Run prints the status lines, waits for the target and hands the process
// over to command. On unix a successful handover never returns; Run returns
// nil only for an empty command, and an error when replacement fails.
func (g *Gate) Run(command []string) error {
	fmt.Fprintln(g.Out, "Starting API entrypoint...")
	fmt.Fprintf(g.Out, "Waiting for %s...\n", g.Target)

	g.Wait()

	fmt.Fprintf(g.Out, "%s is up - continuing\n", g.Target)

	if len(command) == 0 {
		// Nothing to hand over to; exit cleanly after the ready line.
		return nil
	}
	return Exec(command)
}
