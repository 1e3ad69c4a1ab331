package models

import "fmt"

// ReminderSettings is the current shape of the reminder settings document
type ReminderSettings struct {
	Enabled bool     `json:"enabled" yaml:"enabled"`
	Times   []string `json:"times" yaml:"times"` // HH:MM slots, de-duplicated
	Message string   `json:"message" yaml:"message"`
}

// DeliveryChannel identifies how a reminder reached the user.
type DeliveryChannel string

const (
	ChannelSystem DeliveryChannel = "system"
	ChannelInApp  DeliveryChannel = "in-app"
)

// Delivery is one reminder firing for a (date, slot) pair.
type Delivery struct {
	Date    string          `json:"date" yaml:"date"`
	Slot    string          `json:"slot" yaml:"slot"`
	Message string          `json:"message" yaml:"message"`
	Channel DeliveryChannel `json:"channel,omitempty" yaml:"channel,omitempty"`
}

func (d Delivery) String() string {
	if d.Channel == "" {
		return fmt.Sprintf("%s %s: %s", d.Date, d.Slot, d.Message)
	}
	return fmt.Sprintf("%s %s [%s]: %s", d.Date, d.Slot, d.Channel, d.Message)
}
