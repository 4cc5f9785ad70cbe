package protocol

import (
	"encoding/json"
	"errors"
)

var (
	// ErrMalformed marks frames that do not parse as a JSON object with a
	// string "t" field. Callers drop these silently.
	ErrMalformed = errors.New("malformed frame")
	// ErrUnknownKind marks well-formed frames with an unrecognized kind.
	ErrUnknownKind = errors.New("unknown frame kind")
)

// Frame is one decoded inbound message. Exactly one of the kind-specific
// fields is populated, selected by Kind. Game frames keep their full field
// set so the relay can forward them verbatim.
type Frame struct {
	Kind Kind
	Join Join
	Say  Say
	Game map[string]any
}

// DecodeFrame parses a raw transport frame into a typed Frame.
func DecodeFrame(data []byte) (Frame, error) {
	var head struct {
		T Kind `json:"t"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return Frame{}, ErrMalformed
	}

	frame := Frame{Kind: head.T}
	switch head.T {
	case KindJoin:
		if err := json.Unmarshal(data, &frame.Join); err != nil {
			return Frame{}, ErrMalformed
		}
	case KindSay:
		if err := json.Unmarshal(data, &frame.Say); err != nil {
			return Frame{}, ErrMalformed
		}
	case KindGame:
		if err := json.Unmarshal(data, &frame.Game); err != nil {
			return Frame{}, ErrMalformed
		}
	default:
		return Frame{}, ErrUnknownKind
	}
	return frame, nil
}

// Encode serializes an outbound packet. Packets are plain structs (or maps,
// for relayed game payloads), so failures only occur on programmer error.
func Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}
