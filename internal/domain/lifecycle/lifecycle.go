// Package lifecycle holds shared start/stop settings for long-lived components.
package lifecycle

import "time"

// DefaultTimeout bounds start hooks (pings) and graceful shutdown.
const DefaultTimeout = 10 * time.Second
