package ws

import (
	"encoding/json"
	"errors"

	"github.com/playmatatu/golfcard/internal/session"
)

var ErrUnknownMessage = errors.New("unknown message type")

// decodeInput maps a client message onto a session input.
func decodeInput(msg WSMessage) (session.Input, error) {
	switch msg.Type {
	case "pointer":
		var data PointerData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return session.Input{}, errors.New("invalid pointer data")
		}
		switch data.Phase {
		case session.InputDown, session.InputMove, session.InputUp, session.InputCancel:
		default:
			return session.Input{}, errors.New("invalid pointer phase")
		}
		return session.Input{Kind: data.Phase, X: data.X, Y: data.Y}, nil

	case "resize":
		var data ResizeData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return session.Input{}, errors.New("invalid resize data")
		}
		if err := session.ValidViewport(data.Width, data.Height); err != nil {
			return session.Input{}, err
		}
		return session.Input{Kind: session.InputResize, Width: data.Width, Height: data.Height, Ratio: data.Ratio}, nil

	case "reset":
		return session.Input{Kind: session.InputReset}, nil

	default:
		return session.Input{}, ErrUnknownMessage
	}
}
