package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/julianstephens/fitlog/internal/constants"
	"github.com/julianstephens/fitlog/internal/logger"
	"github.com/julianstephens/fitlog/internal/models"
	"github.com/julianstephens/fitlog/internal/settings"
	"github.com/julianstephens/fitlog/internal/utils"
)

// Records gives typed access to the workouts, weights and reminder settings
// documents held by a Provider.
type Records struct {
	store Provider
}

func NewRecords(store Provider) *Records {
	return &Records{store: store}
}

// Store returns the underlying provider.
func (r *Records) Store() Provider {
	return r.store
}

func (r *Records) read(key string) ([]byte, error) {
	data, err := r.store.GetDocument(key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

func (r *Records) write(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := r.store.PutDocument(key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Workouts returns every logged workout. A malformed document is treated as empty.
func (r *Records) Workouts() (models.Workouts, error) {
	data, err := r.read(constants.DocWorkouts)
	if err != nil {
		return nil, err
	}

	workouts := models.Workouts{}
	if len(data) == 0 {
		return workouts, nil
	}
	if err := json.Unmarshal(data, &workouts); err != nil {
		logger.Warn("Invalid workouts document, starting empty", "error", err)
		return models.Workouts{}, nil
	}
	if workouts == nil {
		return models.Workouts{}, nil
	}
	return workouts, nil
}

// WorkoutsOn returns the entries logged on date in insertion order.
func (r *Records) WorkoutsOn(date string) ([]models.WorkoutEntry, error) {
	if !utils.IsDateKey(date) {
		return nil, fmt.Errorf("%w: %q", utils.ErrInvalidDate, date)
	}
	workouts, err := r.Workouts()
	if err != nil {
		return nil, err
	}
	return workouts[date], nil
}

// AddWorkout appends entry to date.
func (r *Records) AddWorkout(date string, entry models.WorkoutEntry) error {
	if !utils.IsDateKey(date) {
		return fmt.Errorf("%w: %q", utils.ErrInvalidDate, date)
	}
	workouts, err := r.Workouts()
	if err != nil {
		return err
	}
	workouts[date] = append(workouts[date], entry)
	return r.write(constants.DocWorkouts, workouts)
}

// DeleteWorkout removes the entry at index on date and returns it. The date
// is pruned once it has no entries left.
func (r *Records) DeleteWorkout(date string, index int) (models.WorkoutEntry, error) {
	if !utils.IsDateKey(date) {
		return models.WorkoutEntry{}, fmt.Errorf("%w: %q", utils.ErrInvalidDate, date)
	}
	workouts, err := r.Workouts()
	if err != nil {
		return models.WorkoutEntry{}, err
	}

	entries := workouts[date]
	if index < 0 || index >= len(entries) {
		return models.WorkoutEntry{}, fmt.Errorf("%w: %d on %s", ErrIndexOutOfRange, index, date)
	}

	removed := entries[index]
	entries = append(entries[:index:index], entries[index+1:]...)
	if len(entries) == 0 {
		delete(workouts, date)
	} else {
		workouts[date] = entries
	}
	return removed, r.write(constants.DocWorkouts, workouts)
}

// Weights returns every weight sample. A malformed document is treated as empty.
func (r *Records) Weights() (models.Weights, error) {
	data, err := r.read(constants.DocWeights)
	if err != nil {
		return nil, err
	}

	weights := models.Weights{}
	if len(data) == 0 {
		return weights, nil
	}
	if err := json.Unmarshal(data, &weights); err != nil {
		logger.Warn("Invalid weights document, starting empty", "error", err)
		return models.Weights{}, nil
	}
	if weights == nil {
		return models.Weights{}, nil
	}
	return weights, nil
}

// SetWeight upserts the sample for date. Non-positive and non-finite values
// are ignored and reported as unchanged.
func (r *Records) SetWeight(date string, kg float64) (bool, error) {
	if !utils.IsDateKey(date) {
		return false, fmt.Errorf("%w: %q", utils.ErrInvalidDate, date)
	}
	if !validWeight(kg) {
		return false, nil
	}
	weights, err := r.Weights()
	if err != nil {
		return false, err
	}
	weights[date] = kg
	return true, r.write(constants.DocWeights, weights)
}

// ClearWeight deletes the sample for date, reporting whether one existed.
func (r *Records) ClearWeight(date string) (bool, error) {
	if !utils.IsDateKey(date) {
		return false, fmt.Errorf("%w: %q", utils.ErrInvalidDate, date)
	}
	weights, err := r.Weights()
	if err != nil {
		return false, err
	}
	if _, ok := weights[date]; !ok {
		return false, nil
	}
	delete(weights, date)
	return true, r.write(constants.DocWeights, weights)
}

// ApplyWeightInput applies raw form input for date: a valid number upserts,
// an empty input clears an existing sample, anything else is a no-op.
func (r *Records) ApplyWeightInput(date, raw string) (bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return r.ClearWeight(date)
	}
	kg, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		if !utils.IsDateKey(date) {
			return false, fmt.Errorf("%w: %q", utils.ErrInvalidDate, date)
		}
		return false, nil
	}
	return r.SetWeight(date, kg)
}

func validWeight(kg float64) bool {
	return kg > 0 && !math.IsNaN(kg) && !math.IsInf(kg, 0)
}

// ReminderSettings returns the normalized reminder settings.
func (r *Records) ReminderSettings() (models.ReminderSettings, error) {
	data, err := r.read(constants.DocNotificationSettings)
	if err != nil {
		return settings.Default(), err
	}
	return settings.Normalize(data), nil
}

// SaveReminderSettings replaces the reminder settings document.
func (r *Records) SaveReminderSettings(s models.ReminderSettings) error {
	data, err := settings.Encode(s)
	if err != nil {
		return err
	}
	if err := r.store.PutDocument(constants.DocNotificationSettings, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", constants.DocNotificationSettings, err)
	}
	return nil
}
