// Package config loads controller configuration from YAML with environment
// variable overrides. Defaults match the prop as wired in the room.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rnelson/sterilizer-prop/internal/gpio"
)

// Config is the root configuration for the sterilizer controller.
type Config struct {
	Device Device `yaml:"device"`
	Link   Link   `yaml:"link"`
	MQTT   MQTT   `yaml:"mqtt"`
	GPIO   GPIO   `yaml:"gpio"`
	LED    LED    `yaml:"led"`
	HTTP   HTTP   `yaml:"http"`
	Log    Log    `yaml:"log"`
}

// Device identifies this prop on the bus.
type Device struct {
	// Name is used as the MQTT client ID and to derive topic names.
	Name string `yaml:"name"`

	// InboxTopic and HostTopic default to "ToDevice/<Name>" and
	// "ToHost/<Name>" when empty.
	InboxTopic string `yaml:"inbox_topic"`
	HostTopic  string `yaml:"host_topic"`

	// Tick is the main loop interval.
	Tick time.Duration `yaml:"tick"`
}

// Link configures network link supervision.
type Link struct {
	// Interface is the network interface to watch (e.g. "wlan0").
	Interface string `yaml:"interface"`

	// ReconnectCmd, when set, is executed (argv form) to kick a
	// reconnect, e.g. ["wpa_cli", "-i", "wlan0", "reconnect"].
	ReconnectCmd []string `yaml:"reconnect_cmd"`

	// Timeout is how long reconnect attempts may fail before the
	// supervisor gives up for good.
	Timeout time.Duration `yaml:"timeout"`
}

// MQTT configures the bus session.
type MQTT struct {
	Broker string `yaml:"broker"`

	// Timeout is how long session connect attempts may fail before the
	// supervisor gives up for good.
	Timeout time.Duration `yaml:"timeout"`

	// ConnectWait bounds a single connect attempt within one tick.
	ConnectWait time.Duration `yaml:"connect_wait"`
}

// GPIO maps prop wiring to BCM pin numbers.
type GPIO struct {
	PinTrigger int `yaml:"pin_trigger"`
	PinHeater  int `yaml:"pin_heater"`
	PinPump    int `yaml:"pin_pump"`
	PinLock    int `yaml:"pin_lock"`
}

// LED configures the WS2812B indicator strip.
type LED struct {
	Count      int    `yaml:"count"`
	Brightness int    `yaml:"brightness"` // 0-255
	SPIDevice  string `yaml:"spi_device"`
}

// HTTP configures the read-only status page. Empty Addr disables it.
type HTTP struct {
	Addr string `yaml:"addr"`
}

// Log configures logging output.
type Log struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Default returns the configuration matching the prop as deployed.
func Default() *Config {
	return &Config{
		Device: Device{
			Name: "Sterilizer",
			Tick: 50 * time.Millisecond,
		},
		Link: Link{
			Interface: "wlan0",
			Timeout:   2 * time.Minute,
		},
		MQTT: MQTT{
			Broker:      "tcp://10.1.10.55:1883",
			Timeout:     2 * time.Minute,
			ConnectWait: 5 * time.Second,
		},
		GPIO: GPIO{
			PinTrigger: gpio.DefaultPinTrigger,
			PinHeater:  gpio.DefaultPinHeater,
			PinPump:    gpio.DefaultPinPump,
			PinLock:    gpio.DefaultPinLock,
		},
		LED: LED{
			Count:      17,
			Brightness: 120,
			SPIDevice:  "/dev/spidev0.0",
		},
		HTTP: HTTP{
			Addr: ":80",
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path (if non-empty), applies STERILIZER_* environment overrides
// and validates the result. Order: defaults, file, environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	cfg.applyDerived()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// applyDerived fills topic names from the device name when unset.
func (c *Config) applyDerived() {
	if c.Device.InboxTopic == "" {
		c.Device.InboxTopic = "ToDevice/" + c.Device.Name
	}
	if c.Device.HostTopic == "" {
		c.Device.HostTopic = "ToHost/" + c.Device.Name
	}
}

// Validate rejects configurations that cannot drive the prop.
func (c *Config) Validate() error {
	if c.Device.Name == "" {
		return fmt.Errorf("device.name is required")
	}
	if c.MQTT.Broker == "" {
		return fmt.Errorf("mqtt.broker is required")
	}
	if c.Device.Tick <= 0 {
		return fmt.Errorf("device.tick must be positive, got %v", c.Device.Tick)
	}
	if c.Link.Timeout <= 0 || c.MQTT.Timeout <= 0 {
		return fmt.Errorf("link and mqtt timeouts must be positive")
	}
	if c.LED.Count <= 0 {
		return fmt.Errorf("led.count must be positive, got %d", c.LED.Count)
	}
	if c.LED.Brightness < 0 || c.LED.Brightness > 255 {
		return fmt.Errorf("led.brightness must be 0-255, got %d", c.LED.Brightness)
	}
	pins := map[string]int{
		"gpio.pin_trigger": c.GPIO.PinTrigger,
		"gpio.pin_heater":  c.GPIO.PinHeater,
		"gpio.pin_pump":    c.GPIO.PinPump,
		"gpio.pin_lock":    c.GPIO.PinLock,
	}
	seen := map[int]string{}
	for name, pin := range pins {
		if pin < 0 {
			return fmt.Errorf("%s must be non-negative, got %d", name, pin)
		}
		if other, dup := seen[pin]; dup {
			return fmt.Errorf("%s and %s both use pin %d", name, other, pin)
		}
		seen[pin] = name
	}
	return nil
}

// applyEnv overrides fields from STERILIZER_* environment variables.
func applyEnv(c *Config) {
	setString(&c.Device.Name, "STERILIZER_DEVICE_NAME")
	setString(&c.Device.InboxTopic, "STERILIZER_INBOX_TOPIC")
	setString(&c.Device.HostTopic, "STERILIZER_HOST_TOPIC")
	setString(&c.Link.Interface, "STERILIZER_LINK_INTERFACE")
	setString(&c.MQTT.Broker, "STERILIZER_MQTT_BROKER")
	setString(&c.LED.SPIDevice, "STERILIZER_LED_SPI_DEVICE")
	setString(&c.HTTP.Addr, "STERILIZER_HTTP_ADDR")
	setString(&c.Log.Level, "STERILIZER_LOG_LEVEL")
	setString(&c.Log.Format, "STERILIZER_LOG_FORMAT")
	setDuration(&c.Link.Timeout, "STERILIZER_LINK_TIMEOUT")
	setDuration(&c.MQTT.Timeout, "STERILIZER_MQTT_TIMEOUT")
	setDuration(&c.Device.Tick, "STERILIZER_TICK")
	setInt(&c.LED.Brightness, "STERILIZER_LED_BRIGHTNESS")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
