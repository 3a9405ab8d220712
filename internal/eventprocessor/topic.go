// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package eventprocessor

import (
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/tomtom215/classycouture/internal/logging"
)

// NewMemoryTopic creates an in-process pub/sub used as the single instance
// transport. It is both the notifier's publisher and the relay's
// subscriber. Messages published with no subscriber are discarded.
func NewMemoryTopic(bufferSize int) *gochannel.GoChannel {
	if bufferSize < 0 {
		bufferSize = 0
	}
	return gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer:            int64(bufferSize),
		Persistent:                     false,
		BlockPublishUntilSubscriberAck: false,
	}, logging.NewWatermillLogger())
}
