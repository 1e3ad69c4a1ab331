package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/julianstephens/fitlog/internal/constants"
	"github.com/julianstephens/fitlog/internal/logger"
	"github.com/julianstephens/fitlog/internal/models"
	"github.com/julianstephens/fitlog/internal/utils"
)

// stored mirrors every shape the reminder document has been persisted in.
// Pointer fields distinguish absent (or null) from zero values.
type stored struct {
	Enabled *bool     `json:"enabled"`
	Times   *[]string `json:"times"`
	Message *string   `json:"message"`
	Time    *string   `json:"time"`
}

// Default returns the reminder settings used when nothing valid is stored.
func Default() models.ReminderSettings {
	return models.ReminderSettings{
		Enabled: constants.DefaultReminderEnabled,
		Times:   []string{constants.DefaultReminderTime},
		Message: constants.DefaultReminderMessage,
	}
}

// Normalize decodes a persisted reminder document into the current shape.
// Absent or malformed documents yield the defaults. A legacy single "time"
// is lifted into "times" when "times" is absent.
func Normalize(raw []byte) models.ReminderSettings {
	result := Default()

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return result
	}

	var doc stored
	if err := json.Unmarshal(raw, &doc); err != nil {
		logger.Warn("Invalid reminder settings, using defaults", "error", err)
		return result
	}

	if doc.Enabled != nil {
		result.Enabled = *doc.Enabled
	}
	if doc.Message != nil {
		result.Message = *doc.Message
	}

	switch {
	case doc.Times != nil:
		result.Times = cleanTimes(*doc.Times)
	case doc.Time != nil:
		result.Times = cleanTimes([]string{*doc.Time})
	}

	return result
}

// Encode serializes settings in the current shape after cleaning the slots.
func Encode(s models.ReminderSettings) ([]byte, error) {
	s.Times = cleanTimes(s.Times)
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode reminder settings: %w", err)
	}
	return data, nil
}

// ParseTimes splits a comma separated list of HH:MM slots.
func ParseTimes(s string) ([]string, error) {
	var times []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !utils.ValidateTimeFormat(part) {
			return nil, fmt.Errorf("invalid time %q (expected HH:MM)", part)
		}
		times = append(times, part)
	}
	return cleanTimes(times), nil
}

// cleanTimes trims, canonicalizes to HH:MM and de-duplicates in first-seen
// order. Unparseable slots are dropped.
func cleanTimes(times []string) []string {
	seen := make(map[string]struct{}, len(times))
	out := make([]string, 0, len(times))
	for _, t := range times {
		t = strings.TrimSpace(t)
		parsed, err := utils.ParseTime(t)
		if err != nil {
			logger.Warn("Dropping invalid reminder time", "time", t)
			continue
		}
		canonical := parsed.Format(constants.TimeFormat)
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		out = append(out, canonical)
	}
	return out
}
