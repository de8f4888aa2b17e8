package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config represents the CRSF bridge configuration
type Config struct {
	filename string

	// Host section (commanding link, usually USB CDC serial)
	hostPort string
	hostBaud uint32

	// Module section (half-duplex link to the TX module)
	modulePort string
	moduleBaud uint32

	// Timing section
	defaultPeriodUs uint32
	minPeriodUs     uint32
	maxPeriodUs     uint32

	// Failsafe section
	failsafeTimeoutUs uint32

	// Channels section
	channelProfile string

	// Database section (discovered-device registry)
	databaseEnabled bool
	databasePath    string

	// Log section
	debug         bool
	statsInterval uint32 // seconds, 0 disables the periodic stats line
}

// NewConfig creates a new configuration instance with defaults
func NewConfig(filename string) *Config {
	return &Config{
		filename: filename,

		hostBaud:   921600,
		moduleBaud: 420000,

		defaultPeriodUs:   4000,
		minPeriodUs:       1000,
		maxPeriodUs:       50000,
		failsafeTimeoutUs: 100000,

		channelProfile: "standard",

		databaseEnabled: false,
		databasePath:    "data/crsf_devices.db",

		statsInterval: 10,
	}
}

// Load loads configuration from the specified file
func (c *Config) Load() error {
	file, err := os.Open(c.filename)
	if err != nil {
		return fmt.Errorf("failed to open config file %s: %v", c.filename, err)
	}
	defer file.Close()

	return c.parseINIScanner(bufio.NewScanner(file))
}

// LoadFromString loads configuration from a string (useful for testing)
func (c *Config) LoadFromString(data string) error {
	return c.parseINIScanner(bufio.NewScanner(strings.NewReader(data)))
}

func (c *Config) parseINIScanner(scanner *bufio.Scanner) error {
	var currentSection string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		// Check for section header
		if line[0] == '[' && line[len(line)-1] == ']' {
			currentSection = strings.TrimSpace(line[1 : len(line)-1])
			continue
		}

		// Parse key=value pairs
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch currentSection {
		case "Host":
			c.parseHostSection(key, value)
		case "Module":
			c.parseModuleSection(key, value)
		case "Timing":
			c.parseTimingSection(key, value)
		case "Failsafe":
			c.parseFailsafeSection(key, value)
		case "Channels":
			c.parseChannelsSection(key, value)
		case "Database":
			c.parseDatabaseSection(key, value)
		case "Log":
			c.parseLogSection(key, value)
		}
	}

	return scanner.Err()
}

func (c *Config) parseHostSection(key, value string) {
	switch key {
	case "Port":
		c.hostPort = value
	case "Baud":
		if v, err := strconv.ParseUint(value, 10, 32); err == nil {
			c.hostBaud = uint32(v)
		}
	}
}

func (c *Config) parseModuleSection(key, value string) {
	switch key {
	case "Port":
		c.modulePort = value
	case "Baud":
		if v, err := strconv.ParseUint(value, 10, 32); err == nil {
			c.moduleBaud = uint32(v)
		}
	}
}

func (c *Config) parseTimingSection(key, value string) {
	switch key {
	case "DefaultPeriodUs":
		if v, err := strconv.ParseUint(value, 10, 32); err == nil {
			c.defaultPeriodUs = uint32(v)
		}
	case "MinPeriodUs":
		if v, err := strconv.ParseUint(value, 10, 32); err == nil {
			c.minPeriodUs = uint32(v)
		}
	case "MaxPeriodUs":
		if v, err := strconv.ParseUint(value, 10, 32); err == nil {
			c.maxPeriodUs = uint32(v)
		}
	}
}

func (c *Config) parseFailsafeSection(key, value string) {
	switch key {
	case "TimeoutUs":
		if v, err := strconv.ParseUint(value, 10, 32); err == nil {
			c.failsafeTimeoutUs = uint32(v)
		}
	}
}

func (c *Config) parseChannelsSection(key, value string) {
	switch key {
	case "Profile":
		c.channelProfile = value
	}
}

func (c *Config) parseDatabaseSection(key, value string) {
	switch key {
	case "Enabled":
		c.databaseEnabled = c.parseBool(value)
	case "Path":
		c.databasePath = value
	}
}

func (c *Config) parseLogSection(key, value string) {
	switch key {
	case "Debug":
		c.debug = c.parseBool(value)
	case "StatsInterval":
		if v, err := strconv.ParseUint(value, 10, 32); err == nil {
			c.statsInterval = uint32(v)
		}
	}
}

func (c *Config) parseBool(value string) bool {
	return value == "1" || strings.EqualFold(value, "true")
}

// Validate checks that the required settings are present
func (c *Config) Validate() error {
	if c.hostPort == "" {
		return fmt.Errorf("[Host] Port is required")
	}
	if c.modulePort == "" {
		return fmt.Errorf("[Module] Port is required")
	}
	if c.minPeriodUs == 0 || c.maxPeriodUs <= c.minPeriodUs {
		return fmt.Errorf("[Timing] invalid period clamps %d/%d", c.minPeriodUs, c.maxPeriodUs)
	}
	return nil
}

// Host section getters
func (c *Config) GetHostPort() string { return c.hostPort }
func (c *Config) GetHostBaud() uint32 { return c.hostBaud }

// Module section getters
func (c *Config) GetModulePort() string { return c.modulePort }
func (c *Config) GetModuleBaud() uint32 { return c.moduleBaud }

// Timing section getters
func (c *Config) GetDefaultPeriodUs() uint32 { return c.defaultPeriodUs }
func (c *Config) GetMinPeriodUs() uint32     { return c.minPeriodUs }
func (c *Config) GetMaxPeriodUs() uint32     { return c.maxPeriodUs }

// Failsafe section getters
func (c *Config) GetFailsafeTimeoutUs() uint32 { return c.failsafeTimeoutUs }

// Channels section getters
func (c *Config) GetChannelProfile() string { return c.channelProfile }

// Database section getters
func (c *Config) GetDatabaseEnabled() bool { return c.databaseEnabled }
func (c *Config) GetDatabasePath() string  { return c.databasePath }

// Log section getters
func (c *Config) GetDebug() bool           { return c.debug }
func (c *Config) GetStatsInterval() uint32 { return c.statsInterval }
