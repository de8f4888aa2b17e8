package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// DeviceRepository provides database operations for discovered CRSF devices
type DeviceRepository struct {
	db *gorm.DB
}

// NewDeviceRepository creates a new repository instance
func NewDeviceRepository(db *gorm.DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

// GetByAddress finds a device by its CRSF address
func (r *DeviceRepository) GetByAddress(address uint8) (*Device, error) {
	var device Device
	err := r.db.Where("address = ?", address).First(&device).Error
	if err != nil {
		return nil, err
	}
	return &device, nil
}

// GetByName finds a device by its display name
func (r *DeviceRepository) GetByName(name string) (*Device, error) {
	var device Device
	err := r.db.Where("name = ?", name).First(&device).Error
	if err != nil {
		return nil, err
	}
	return &device, nil
}

// All returns every known device
func (r *DeviceRepository) All() ([]Device, error) {
	var devices []Device
	err := r.db.Order("address").Find(&devices).Error
	return devices, err
}

// Record upserts a device sighting: new devices get FirstSeen stamped,
// known devices get their info refreshed and TimesReported bumped
func (r *DeviceRepository) Record(device *Device) error {
	if device == nil {
		return fmt.Errorf("device cannot be nil")
	}

	device.SanitizeFields()
	if !device.IsValid() {
		return fmt.Errorf("device is not valid: address=0x%02X name=%q", device.Address, device.Name)
	}

	now := time.Now()
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing Device
		err := tx.Where("address = ?", device.Address).First(&existing).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			device.FirstSeen = now
			device.LastSeen = now
			device.TimesReported = 1
			return tx.Create(device).Error
		case err != nil:
			return err
		}

		device.FirstSeen = existing.FirstSeen
		device.LastSeen = now
		device.TimesReported = existing.TimesReported + 1
		return tx.Save(device).Error
	})
}

// DeleteStale removes devices not seen within the retention window
func (r *DeviceRepository) DeleteStale(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	result := r.db.Where("last_seen < ?", cutoff).Delete(&Device{})
	return result.RowsAffected, result.Error
}
