package database

import (
	"strings"
	"time"
)

// Device is a CRSF device discovered on the module link, recorded from the
// DEVICE_INFO replies that pass through the bridge.
type Device struct {
	Address       uint8     `gorm:"primarykey;not null" json:"address"`
	Name          string    `gorm:"index;size:64" json:"name"`
	SerialNumber  uint32    `json:"serial_number"`
	HardwareID    uint32    `json:"hardware_id"`
	SoftwareID    uint32    `json:"software_id"`
	FieldCount    uint8     `json:"field_count"`
	ParamVersion  uint8     `json:"param_version"`
	FirstSeen     time.Time `json:"first_seen"`
	LastSeen      time.Time `json:"last_seen"`
	TimesReported uint32    `json:"times_reported"`
}

// TableName specifies the table name for GORM
func (Device) TableName() string {
	return "crsf_devices"
}

// SanitizeFields normalizes string fields before persisting
func (d *Device) SanitizeFields() {
	d.Name = strings.TrimSpace(d.Name)
	if len(d.Name) > 64 {
		d.Name = d.Name[:64]
	}
}

// IsValid reports whether the record is persistable
func (d *Device) IsValid() bool {
	return d.Name != ""
}
