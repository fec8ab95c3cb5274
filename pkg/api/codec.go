// Package api defines the gymdesk.v1 wire messages. Messages travel as JSON
// over the Connect protocol; apiconnect holds the handlers and clients.
package api

import "encoding/json"

// JSONCodec marshals plain Go messages with encoding/json. It is registered
// under the "json" name, replacing Connect's protobuf JSON codec.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(msg any) ([]byte, error) { return json.Marshal(msg) }

func (JSONCodec) Unmarshal(data []byte, msg any) error { return json.Unmarshal(data, msg) }
