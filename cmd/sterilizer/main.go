// Command sterilizer runs the sterilizer escape-room prop: it watches the
// trigger switch, drives the heater, pump and maglock relays and the
// indicator strip, and keeps a command link to the room's MQTT host.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rnelson/sterilizer-prop/internal/bus"
	"github.com/rnelson/sterilizer-prop/internal/config"
	"github.com/rnelson/sterilizer-prop/internal/gpio"
	"github.com/rnelson/sterilizer-prop/internal/led"
	"github.com/rnelson/sterilizer-prop/internal/link"
	"github.com/rnelson/sterilizer-prop/internal/logging"
	"github.com/rnelson/sterilizer-prop/internal/puzzle"
	"github.com/rnelson/sterilizer-prop/internal/status"
	"github.com/rnelson/sterilizer-prop/internal/supervisor"
	"github.com/rnelson/sterilizer-prop/internal/web"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (defaults apply when empty)")
	printState := flag.Bool("print-state", false, "Print current trigger state and exit")
	noAttract := flag.Bool("no-attract", false, "Skip the boot attract sequence")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sterilizer: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *printState, *noAttract); err != nil {
		fmt.Fprintf(os.Stderr, "sterilizer: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, printState, noAttract bool) error {
	logger := logging.New(cfg.Log, nil)

	// Initialize GPIO. Closing drives all outputs low, which re-engages
	// the maglock and shuts the effects off.
	port, err := gpio.NewRealPort(cfg.GPIO.PinTrigger, cfg.GPIO.PinHeater, cfg.GPIO.PinPump, cfg.GPIO.PinLock)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer port.Close()

	if printState {
		triggered, err := port.ReadTrigger()
		if err != nil {
			return fmt.Errorf("read trigger: %w", err)
		}
		fmt.Printf("trigger: %s\n", triggerString(triggered))
		return nil
	}

	strip, err := led.NewStrip(cfg.LED.SPIDevice, cfg.LED.Count, cfg.LED.Brightness)
	if err != nil {
		return fmt.Errorf("init led strip: %w", err)
	}
	defer strip.Close()

	transport := link.NewNetTransport(cfg.Link.Interface, cfg.Link.ReconnectCmd, logger)
	session := bus.NewRealSession(cfg.MQTT.Broker, cfg.Device.Name, logger)
	defer session.Close()

	linkSup := supervisor.NewLink(transport, cfg.Link.Timeout, logger)

	// The dispatcher needs the machine and the machine publishes through
	// the bus supervisor, which needs the dispatcher; tie the knot with a
	// late-bound handler.
	var dispatcher *puzzle.Dispatcher
	busSup := supervisor.NewBus(session, cfg.Device.InboxTopic, cfg.MQTT.Timeout, cfg.MQTT.ConnectWait,
		func(topic string, payload []byte) { dispatcher.OnMessage(topic, payload) }, logger)
	machine := puzzle.NewMachine(port, strip, busSup, cfg.Device.Name, cfg.Device.HostTopic, logger)
	dispatcher = puzzle.NewDispatcher(cfg.Device.InboxTopic, machine, logger)

	reflector := status.NewReflector(strip, logger)

	tracker := status.NewTracker(cfg.Device.Name, time.Now(), status.Config{
		Broker:        cfg.MQTT.Broker,
		InboxTopic:    cfg.Device.InboxTopic,
		HostTopic:     cfg.Device.HostTopic,
		TickMs:        cfg.Device.Tick.Milliseconds(),
		LinkTimeoutMs: cfg.Link.Timeout.Milliseconds(),
		BusTimeoutMs:  cfg.MQTT.Timeout.Milliseconds(),
	})

	if cfg.HTTP.Addr != "" {
		srv := web.New(cfg.HTTP.Addr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("http server error", "error", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		logger.Info("http status server listening", "addr", cfg.HTTP.Addr)
	}

	if !noAttract {
		machine.Attract()
	}

	logger.Info("started",
		"device", cfg.Device.Name,
		"broker", cfg.MQTT.Broker,
		"tick", cfg.Device.Tick,
		"inbox", cfg.Device.InboxTopic,
		"host", cfg.Device.HostTopic)

	ticker := time.NewTicker(cfg.Device.Tick)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(linkSup, busSup, reflector, machine, tracker, time.Now, ticker.C, sigCh, logger)
}

// runLoop is the prop's single cooperative execution context. Everything
// runs to completion within one tick; the only blocking sections are the
// bounded actuation sequences inside the puzzle machine.
func runLoop(linkSup *supervisor.Link, busSup *supervisor.Bus, reflector *status.Reflector, machine *puzzle.Machine, tracker *status.Tracker, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal, logger *slog.Logger) error {
	for {
		select {
		case s := <-sig:
			logger.Info("shutting down", "signal", s.String())
			return nil

		case <-tick:
			tickOnce(linkSup, busSup, reflector, machine, tracker, now())
		}
	}
}

// tickOnce runs one pass of the pipeline: supervisors first so the puzzle
// and status see this tick's connection states, not last tick's.
func tickOnce(linkSup *supervisor.Link, busSup *supervisor.Bus, reflector *status.Reflector, machine *puzzle.Machine, tracker *status.Tracker, t time.Time) {
	linkState := linkSup.Tick(t)
	busState := busSup.Tick(t, linkState)
	reflector.Tick(linkState, busState)
	machine.Tick()

	if tracker != nil {
		tracker.Update(machine.State(), linkState, busState)
	}
}

func triggerString(triggered bool) string {
	if triggered {
		return "TRIGGERED"
	}
	return "CLEAR"
}
