package amqp

import (
	"encoding/json"
	"time"
)

// SummaryRefreshedMessage announces that a dashboard view for a period has
// been recomputed. Consumers (report workers, other instances) use it to
// invalidate their own derived state; the payload deliberately carries no
// amounts, only the period and the aggregation generation.
type SummaryRefreshedMessage struct {
	Year       int       `json:"year"`
	Month      int       `json:"month"`
	Generation uint64    `json:"generation"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewSummaryRefreshedMessage creates a refresh message for a period.
func NewSummaryRefreshedMessage(year, month int, generation uint64) *SummaryRefreshedMessage {
	return &SummaryRefreshedMessage{
		Year:       year,
		Month:      month,
		Generation: generation,
		Timestamp:  time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *SummaryRefreshedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// SummaryRefreshedMessageFromJSON creates a message from JSON bytes
func SummaryRefreshedMessageFromJSON(data []byte) (*SummaryRefreshedMessage, error) {
	var msg SummaryRefreshedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
