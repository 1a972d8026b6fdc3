// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package store

import (
	"fmt"
	"strings"

	"github.com/akamensky/base58"
)

// Key prefixes
const (
	KeyPrefixAttendance = "attendance"
)

// KeyBuilder builds consistent NATS KV keys for attendance records. Meeting
// UUIDs and participant names can contain characters NATS KV keys do not
// allow, so every variable segment is base58 encoded and segments are joined
// with dots.
//
// NATS limitations: https://docs.nats.io/nats-concepts/jetstream/key-value-store#notes
type KeyBuilder struct{}

// NewKeyBuilder creates a new key builder.
func NewKeyBuilder() *KeyBuilder {
	return &KeyBuilder{}
}

// RecordKey builds the key for one participant session within one meeting.
// The triple (meeting, participant, join time) identifies a session, so a
// redelivered event builds the same key and can be detected before writing.
func (kb *KeyBuilder) RecordKey(meetingID, participantName, joinTime string) string {
	return strings.Join([]string{
		KeyPrefixAttendance,
		kb.EncodeSegment(meetingID),
		kb.EncodeSegment(participantName),
		kb.EncodeSegment(joinTime),
	}, ".")
}

// ParseRecordKey decodes a record key back into its identifying triple.
func (kb *KeyBuilder) ParseRecordKey(key string) (meetingID, participantName, joinTime string, err error) {
	parts := strings.Split(key, ".")
	if len(parts) != 4 || parts[0] != KeyPrefixAttendance {
		return "", "", "", fmt.Errorf("malformed attendance record key: %q", key)
	}

	decoded := make([]string, 0, 3)
	for _, part := range parts[1:] {
		segment, err := kb.DecodeSegment(part)
		if err != nil {
			return "", "", "", fmt.Errorf("malformed attendance record key segment %q: %w", part, err)
		}
		decoded = append(decoded, segment)
	}

	return decoded[0], decoded[1], decoded[2], nil
}

// EncodeSegment encodes a single key segment.
func (kb *KeyBuilder) EncodeSegment(segment string) string {
	return base58.Encode([]byte(segment))
}

// DecodeSegment decodes a single key segment.
func (kb *KeyBuilder) DecodeSegment(segment string) (string, error) {
	decoded, err := base58.Decode(segment)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
