package models

import "time"

// DeviceRegistration связывает устройство с пассом; ключ (DeviceID, PassTypeID, SerialNumber)
type DeviceRegistration struct {
	DeviceID     string
	PushToken    string
	PassTypeID   string
	SerialNumber string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

