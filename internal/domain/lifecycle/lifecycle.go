// Package lifecycle holds process lifecycle constants shared by the
// delivery and infrastructure layers.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown of a single component.
const DefaultTimeout = 10 * time.Second
