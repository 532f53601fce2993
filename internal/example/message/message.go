// Package message declares the messages a scheduler exchanges with its
// workers. The contract in message_contract.go is generated from Message.
package message

//go:generate go run github.com/nfrund/contractgen/cmd/contractgen generate --type Message --watermill $GOFILE

// Message is the schema of every message kind. Each field is a kind: its tag
// is the topic template and its type is the payload shape. Lowercase payload
// fields are exported in the contract and keep their name as the JSON key.
type Message struct {
	Notify    struct{} `topic:"notify/{group}"`
	NotifyAll struct{} `topic:"notify_all"`
	Start     struct {
		immediate bool
		timeout   uint64
	} `topic:"system/{id}/start/{mode}"`
}
