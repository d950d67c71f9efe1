package ports

import (
	"fmt"
	"net"
	"testing"
)

// grabConsecutive binds n consecutive ports and returns the base port with
// the held listeners. Callers close the listeners via t.Cleanup.
func grabConsecutive(t *testing.T, n int) (int, []net.Listener) {
	t.Helper()
	for base := 42000; base < 60000; base += MaxAttempts + 5 {
		ls := make([]net.Listener, 0, n)
		ok := true
		for p := base; p < base+n; p++ {
			l, err := net.Listen("tcp", fmt.Sprintf(":%d", p))
			if err != nil {
				ok = false
				break
			}
			ls = append(ls, l)
		}
		if ok {
			t.Cleanup(func() {
				for _, l := range ls {
					_ = l.Close()
				}
			})
			return base, ls
		}
		for _, l := range ls {
			_ = l.Close()
		}
	}
	t.Skip("could not find a run of consecutive free ports")
	return 0, nil
}

func TestNegotiatePreferredFree(t *testing.T) {
	base, ls := grabConsecutive(t, 1)
	_ = ls[0].Close()
	got, err := Negotiate(base)
	if err != nil {
		t.Fatalf("negotiate: %v", err)
	}
	if got != base {
		t.Fatalf("got %d, want preferred %d", got, base)
	}
}

func TestNegotiateSkipsBusyPorts(t *testing.T) {
	// Occupy preferred..preferred+4; the first free candidate is preferred+5.
	base, ls := grabConsecutive(t, 6)
	_ = ls[5].Close()
	got, err := Negotiate(base)
	if err != nil {
		t.Fatalf("negotiate: %v", err)
	}
	if got != base+5 {
		t.Fatalf("got %d, want %d", got, base+5)
	}
}

func TestNegotiateExhausted(t *testing.T) {
	base, _ := grabConsecutive(t, MaxAttempts)
	_, err := Negotiate(base)
	if err == nil {
		t.Fatalf("expected error with all %d candidates busy", MaxAttempts)
	}
	if !IsNoPortAvailable(err) {
		t.Fatalf("expected no-port-available, got %v", err)
	}
}

func TestNegotiateLeavesPortFree(t *testing.T) {
	base, ls := grabConsecutive(t, 1)
	_ = ls[0].Close()
	got, err := Negotiate(base)
	if err != nil {
		t.Fatalf("negotiate: %v", err)
	}
	// The probe must have released the socket so the real bind succeeds.
	l, err := net.Listen("tcp", fmt.Sprintf(":%d", got))
	if err != nil {
		t.Fatalf("negotiated port %d not bindable: %v", got, err)
	}
	_ = l.Close()
}
