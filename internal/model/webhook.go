package model

type ChargeEvent struct {
	Type     string `json:"type"`
	ChargeID string `json:"charge_id"`
	Payload  interface{}
}
