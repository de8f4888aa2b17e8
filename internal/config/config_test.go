package config

import "testing"

func TestConfig_LoadFromString(t *testing.T) {
	testConfig := `# CRSF bridge test configuration
[Host]
Port=/dev/ttyACM0
Baud=5250000

[Module]
Port=/dev/ttyUSB0
Baud=400000

[Timing]
DefaultPeriodUs=2500
MinPeriodUs=1500
MaxPeriodUs=40000

[Failsafe]
TimeoutUs=250000

[Channels]
Profile=full

[Database]
Enabled=1
Path=/var/lib/crsfbridge/devices.db

[Log]
Debug=true
StatsInterval=30
`

	cfg := NewConfig("")
	if err := cfg.LoadFromString(testConfig); err != nil {
		t.Fatalf("LoadFromString: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"HostPort", cfg.GetHostPort(), "/dev/ttyACM0"},
		{"HostBaud", cfg.GetHostBaud(), uint32(5250000)},
		{"ModulePort", cfg.GetModulePort(), "/dev/ttyUSB0"},
		{"ModuleBaud", cfg.GetModuleBaud(), uint32(400000)},
		{"DefaultPeriodUs", cfg.GetDefaultPeriodUs(), uint32(2500)},
		{"MinPeriodUs", cfg.GetMinPeriodUs(), uint32(1500)},
		{"MaxPeriodUs", cfg.GetMaxPeriodUs(), uint32(40000)},
		{"FailsafeTimeoutUs", cfg.GetFailsafeTimeoutUs(), uint32(250000)},
		{"ChannelProfile", cfg.GetChannelProfile(), "full"},
		{"DatabaseEnabled", cfg.GetDatabaseEnabled(), true},
		{"DatabasePath", cfg.GetDatabasePath(), "/var/lib/crsfbridge/devices.db"},
		{"Debug", cfg.GetDebug(), true},
		{"StatsInterval", cfg.GetStatsInterval(), uint32(30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestConfig_Defaults(t *testing.T) {
	cfg := NewConfig("")

	if cfg.GetDefaultPeriodUs() != 4000 {
		t.Errorf("DefaultPeriodUs = %d, want 4000", cfg.GetDefaultPeriodUs())
	}
	if cfg.GetFailsafeTimeoutUs() != 100000 {
		t.Errorf("FailsafeTimeoutUs = %d, want 100000", cfg.GetFailsafeTimeoutUs())
	}
	if cfg.GetChannelProfile() != "standard" {
		t.Errorf("ChannelProfile = %q, want standard", cfg.GetChannelProfile())
	}
	if cfg.GetDatabaseEnabled() {
		t.Error("database enabled by default")
	}
}

func TestConfig_ValidateRequiresPorts(t *testing.T) {
	cfg := NewConfig("")
	if err := cfg.Validate(); err == nil {
		t.Error("Validate passed with no serial ports configured")
	}

	if err := cfg.LoadFromString("[Host]\nPort=/dev/ttyACM0\n"); err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate passed with no module port configured")
	}
}
