// File: utils/constants.go
package utils

import "time"

// HoldKeyPrefix is the prefix used for Redis slot hold keys.
const HoldKeyPrefix = "hold:"

// RedisPingTimeout bounds the startup ping against each Redis database.
const RedisPingTimeout = 2 * time.Second
