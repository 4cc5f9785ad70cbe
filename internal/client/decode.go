package client

import (
	"encoding/json"
	"fmt"

	"github.com/marjorv/lanrelay/internal/protocol"
)

// serverFrame is one decoded relay-to-client message.
type serverFrame struct {
	Kind   protocol.Kind
	Hello  protocol.Hello
	Role   protocol.Role
	Roster protocol.Roster
	Msg    protocol.Msg
	Game   map[string]any
}

func decodeServerFrame(data []byte) (serverFrame, error) {
	var head struct {
		T protocol.Kind `json:"t"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return serverFrame{}, fmt.Errorf("decode frame: %w", err)
	}

	frame := serverFrame{Kind: head.T}
	var err error
	switch head.T {
	case protocol.KindHello:
		err = json.Unmarshal(data, &frame.Hello)
	case protocol.KindRole:
		err = json.Unmarshal(data, &frame.Role)
	case protocol.KindRoster:
		err = json.Unmarshal(data, &frame.Roster)
	case protocol.KindMsg:
		err = json.Unmarshal(data, &frame.Msg)
	case protocol.KindGame:
		err = json.Unmarshal(data, &frame.Game)
	default:
		err = fmt.Errorf("unexpected frame kind %q", head.T)
	}
	if err != nil {
		return serverFrame{}, err
	}
	return frame, nil
}
