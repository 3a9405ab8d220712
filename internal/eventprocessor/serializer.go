// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package eventprocessor

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
)

// Message metadata keys set on every published event.
const (
	MetadataEventType = "event_type"
	MetadataProductID = "product_id"
)

// SerializeEvent validates and encodes an event.
func SerializeEvent(event *ProductChangeEvent) ([]byte, error) {
	if err := event.Validate(); err != nil {
		return nil, fmt.Errorf("validate event: %w", err)
	}
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}

// DeserializeEvent decodes and validates an event.
func DeserializeEvent(data []byte) (*ProductChangeEvent, error) {
	var event ProductChangeEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}
	return &event, nil
}

// NewEventMessage wraps an event in a Watermill message keyed by its event id.
func NewEventMessage(event *ProductChangeEvent) (*message.Message, error) {
	data, err := SerializeEvent(event)
	if err != nil {
		return nil, err
	}
	msg := message.NewMessage(event.EventID, data)
	msg.Metadata.Set(MetadataEventType, string(event.Type))
	msg.Metadata.Set(MetadataProductID, fmt.Sprintf("%d", event.ProductID))
	return msg, nil
}
