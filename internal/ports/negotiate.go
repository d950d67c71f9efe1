// Package ports selects the TCP port the service binds at startup.
//
// The preferred port is tried first; if it is taken, the next 19 ports are
// probed in order and the first free one wins. Probing binds and immediately
// releases each candidate, so a race with another process between probe and
// the real bind is possible; that is accepted as best-effort.
package ports

import (
	"fmt"
	"net"
)

// MaxAttempts is the number of candidate ports tried, the preferred
// port included.
const MaxAttempts = 20

// noPortAvailableError signals that every candidate port was occupied.
type noPortAvailableError struct {
	start int
}

func (e noPortAvailableError) Error() string {
	return fmt.Sprintf("no free port in range %d-%d", e.start, e.start+MaxAttempts-1)
}

// IsNoPortAvailable reports whether err means port negotiation exhausted
// all candidates. This is fatal at startup.
func IsNoPortAvailable(err error) bool {
	_, ok := err.(noPortAvailableError)
	return ok
}

// Negotiate returns the first reservable port in [preferred, preferred+20).
// Each probe binds then releases before the caller performs the real bind.
func Negotiate(preferred int) (int, error) {
	for p := preferred; p < preferred+MaxAttempts; p++ {
		l, err := net.Listen("tcp", fmt.Sprintf(":%d", p))
		if err != nil {
			continue
		}
		_ = l.Close()
		return p, nil
	}
	return 0, noPortAvailableError{start: preferred}
}
