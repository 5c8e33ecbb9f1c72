package amqp

import (
	"encoding/json"
	"time"
)

// LedgerEvent signals that a record changed. It carries only the ids,
// consumers refetch whatever state they need from the store.
type LedgerEvent struct {
	Entity    string    `json:"entity"` // "transaction" or "category"
	Op        string    `json:"op"`     // "create", "update", "delete"
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLedgerEvent(entity, op string, id, userID int64) *LedgerEvent {
	return &LedgerEvent{
		Entity:    entity,
		Op:        op,
		ID:        id,
		UserID:    userID,
		Timestamp: time.Now(),
	}
}

func (e *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var e LedgerEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
