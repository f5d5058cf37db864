// Package wire encodes and decodes the JSON snapshots exchanged between peers.
//
// Each websocket text frame carries one object:
//
//	{"role":1,"x":64,"y":150,"score":100,"isTeleported":false,"bullets":[{"x":85,"y":150}]}
package wire

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/ufo-race/internal/arena"
	"github.com/vovakirdan/ufo-race/internal/core"
)

// ErrEmpty is returned when decoding an empty frame.
var ErrEmpty = errors.New("wire: empty message")

// Point is a bullet position on the wire.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Snapshot is the outgoing message for one player's ship.
type Snapshot struct {
	Role         int     `json:"role"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Score        int     `json:"score"`
	IsTeleported bool    `json:"isTeleported"`
	Bullets      []Point `json:"bullets"`
}

// incoming mirrors Snapshot with every field optional.
type incoming struct {
	Role         *float64 `json:"role"`
	X            *float64 `json:"x"`
	Y            *float64 `json:"y"`
	Score        *float64 `json:"score"`
	IsTeleported *bool    `json:"isTeleported"`
	Bullets      []struct {
		X *float64 `json:"x"`
		Y *float64 `json:"y"`
	} `json:"bullets"`
}

// Encode serializes the local ship state tagged with the sender's role.
func Encode(role arena.Role, st arena.ShipState) ([]byte, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("wire: cannot encode role %d", role)
	}
	msg := Snapshot{
		Role:         int(role),
		X:            st.X,
		Y:            st.Y,
		Score:        st.Score,
		IsTeleported: st.Teleported,
		Bullets:      make([]Point, len(st.Projectiles)),
	}
	for i, p := range st.Projectiles {
		msg.Bullets[i] = Point{X: p.X, Y: p.Y}
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("wire: encode: %w", err)
	}
	return data, nil
}

// Decode parses a peer snapshot received by the player with localRole.
// It returns ok=false for messages that must be ignored: echoes of our own
// role, and messages without a valid role. Malformed JSON is an error.
func Decode(data []byte, localRole arena.Role) (arena.PeerUpdate, bool, error) {
	if len(data) == 0 {
		return arena.PeerUpdate{}, false, ErrEmpty
	}
	var in incoming
	if err := json.Unmarshal(data, &in); err != nil {
		return arena.PeerUpdate{}, false, fmt.Errorf("wire: decode: %w", err)
	}

	if in.Role == nil {
		return arena.PeerUpdate{}, false, nil
	}
	role := arena.Role(int(*in.Role))
	if float64(role) != *in.Role || !role.Valid() || role == localRole {
		return arena.PeerUpdate{}, false, nil
	}

	u := arena.PeerUpdate{
		X:           in.X,
		Y:           in.Y,
		Projectiles: make([]core.Point, 0, len(in.Bullets)),
	}
	// Scores outside the int32 range cannot come from a real ship.
	if in.Score != nil && math.Abs(*in.Score) <= math.MaxInt32 {
		score := int(math.Round(*in.Score))
		u.Score = &score
	}
	if in.IsTeleported != nil {
		u.Teleported = *in.IsTeleported
	}
	for _, b := range in.Bullets {
		if b.X == nil || b.Y == nil {
			continue
		}
		u.Projectiles = append(u.Projectiles, core.Point{X: *b.X, Y: *b.Y})
	}
	return u, true, nil
}
