package link

import (
	"log/slog"
	"net"
	"os/exec"
	"sync/atomic"
)

// NetTransport reports link state for a named network interface and kicks
// reconnects through an optional external command (e.g. wpa_cli).
type NetTransport struct {
	iface        string
	reconnectCmd []string
	log          *slog.Logger

	// inFlight guards against stacking reconnect commands.
	inFlight atomic.Bool
}

// NewNetTransport watches iface. reconnectCmd may be nil, in which case
// Reconnect is a no-op and the link is left to the OS to re-associate.
func NewNetTransport(iface string, reconnectCmd []string, log *slog.Logger) *NetTransport {
	return &NetTransport{
		iface:        iface,
		reconnectCmd: reconnectCmd,
		log:          log,
	}
}

// IsConnected reports whether the interface is up, running and has a
// global unicast address.
func (t *NetTransport) IsConnected() bool {
	ifi, err := net.InterfaceByName(t.iface)
	if err != nil {
		return false
	}
	if ifi.Flags&net.FlagUp == 0 || ifi.Flags&net.FlagRunning == 0 {
		return false
	}

	addrs, err := ifi.Addrs()
	if err != nil {
		return false
	}
	for _, addr := range addrs {
		ipnet, ok := addr.(*net.IPNet)
		if ok && ipnet.IP.IsGlobalUnicast() {
			return true
		}
	}
	return false
}

// Reconnect starts the configured reconnect command without waiting for it.
// At most one command runs at a time.
func (t *NetTransport) Reconnect() {
	if len(t.reconnectCmd) == 0 {
		return
	}
	if !t.inFlight.CompareAndSwap(false, true) {
		return
	}

	cmd := exec.Command(t.reconnectCmd[0], t.reconnectCmd[1:]...)
	go func() {
		defer t.inFlight.Store(false)
		if err := cmd.Run(); err != nil {
			t.log.Debug("link reconnect command failed", "cmd", t.reconnectCmd[0], "error", err)
		}
	}()
}
