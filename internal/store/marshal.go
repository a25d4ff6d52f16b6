package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/roach88/casrc/internal/search"
)

// timeFormat lays timestamps out as RFC 3339 text with a fixed nine-digit
// fraction, so lexicographic and chronological order agree.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// marshalConfig converts a search configuration to JSON TEXT for storage.
// Uses json.Encoder with HTML escaping disabled so rule strings like
// "B3/S23" are stored verbatim.
func marshalConfig(config search.Config) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(config); err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	// Encoder adds a trailing newline, remove it
	return strings.TrimSpace(buf.String()), nil
}

// unmarshalConfig parses JSON TEXT back to a search configuration.
func unmarshalConfig(data string) (search.Config, error) {
	var config search.Config
	if err := json.Unmarshal([]byte(data), &config); err != nil {
		return search.Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return config, nil
}

// marshalStatus converts a search status to its text form.
func marshalStatus(status search.Status) (string, error) {
	text, err := status.MarshalText()
	if err != nil {
		return "", fmt.Errorf("marshal status: %w", err)
	}
	return string(text), nil
}

// unmarshalStatus parses the text form of a search status.
func unmarshalStatus(data string) (search.Status, error) {
	var status search.Status
	if err := status.UnmarshalText([]byte(data)); err != nil {
		return 0, fmt.Errorf("unmarshal status: %w", err)
	}
	return status, nil
}

// marshalTime converts a timestamp to UTC RFC 3339 text.
func marshalTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

// unmarshalTime parses UTC RFC 3339 text back to a timestamp.
func unmarshalTime(data string) (time.Time, error) {
	t, err := time.Parse(timeFormat, data)
	if err != nil {
		return time.Time{}, fmt.Errorf("unmarshal time: %w", err)
	}
	return t.UTC(), nil
}
