package domain

// ReadingTimestampField is the key stamped onto every stored sensor reading.
const ReadingTimestampField = "timestamp"

// Reading is an arbitrary JSON object posted by a sensor.
type Reading map[string]any
