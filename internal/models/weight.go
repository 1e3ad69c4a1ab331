package models

// Weights maps a YYYY-MM-DD date to a body-weight sample in kilograms.
// A missing key means no measurement that day.
type Weights map[string]float64
