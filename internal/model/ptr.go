package model

// Pointer helpers for building payloads and rows whose optional fields are
// modeled as pointers.

// String returns a pointer to the given string.
func String(s string) *string { return &s }

// Int64 returns a pointer to the given int64.
func Int64(n int64) *int64 { return &n }

// Bool returns a pointer to the given bool.
func Bool(b bool) *bool { return &b }

// Float64 returns a pointer to the given float64.
func Float64(f float64) *float64 { return &f }
