package amqp

import (
	"encoding/json"
	"time"
)

// ProfileCommittedMessage announces that a profile's budget entry was
// committed and persisted. It carries the recomputed financial snapshot so
// the audit worker does not need to read the profile back.
type ProfileCommittedMessage struct {
	ProfileName string    `json:"profile_name"`
	Currency    string    `json:"currency"`
	Income      int       `json:"income"`
	Savings     int       `json:"savings"`
	Budget      int       `json:"budget"`
	Timestamp   time.Time `json:"timestamp"`
}

func (m *ProfileCommittedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ProfileCommittedMessageFromJSON(data []byte) (*ProfileCommittedMessage, error) {
	var msg ProfileCommittedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
