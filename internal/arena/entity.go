package arena

import (
	"github.com/vovakirdan/ufo-race/internal/core"
)

// Role identifies a player and the universe that player calls home.
// The values match the "role" field of the wire protocol.
type Role int

const (
	RoleNone   Role = 0
	RoleTop    Role = 1 // Player 1, upper universe
	RoleBottom Role = 2 // Player 2, lower universe
)

// Valid reports whether r names one of the two players.
func (r Role) Valid() bool {
	return r == RoleTop || r == RoleBottom
}

// Opponent returns the other player's role.
func (r Role) Opponent() Role {
	if r == RoleTop {
		return RoleBottom
	}
	return RoleTop
}

// index maps a role to its slot in per-side arrays.
func (r Role) index() int {
	return int(r) - 1
}

// String returns the display name of the player.
func (r Role) String() string {
	switch r {
	case RoleTop:
		return "Player 1"
	case RoleBottom:
		return "Player 2"
	default:
		return "nobody"
	}
}

// StarSet is the set of collected constellation pieces (ids 0..4).
type StarSet uint8

// PieceCount is the size of the star piece alphabet.
const PieceCount = 5

// Add inserts a piece id. Ids outside the alphabet are ignored.
func (s *StarSet) Add(piece int) {
	if piece < 0 || piece >= PieceCount {
		return
	}
	*s |= 1 << piece
}

// Has reports whether the piece has been collected.
func (s StarSet) Has(piece int) bool {
	if piece < 0 || piece >= PieceCount {
		return false
	}
	return s&(1<<piece) != 0
}

// Len returns the number of distinct pieces collected.
func (s StarSet) Len() int {
	n := 0
	for p := range PieceCount {
		if s.Has(p) {
			n++
		}
	}
	return n
}

// Clear empties the set.
func (s *StarSet) Clear() {
	*s = 0
}

// Ship is a player's UFO.
type Ship struct {
	X, Y  float64
	R     float64
	Score int // 0-100 while alive, negative means destroyed
	Color core.Color
	Stars StarSet

	Teleported       bool
	TeleportUntil    int // Tick after which the ship is sent home automatically
	TeleportCooldown int // Black holes are ignored before this tick
	HitGraceUntil    int // Enemy shots are absorbed without damage before this tick

	AutoShoot      bool
	AutoShootUntil int
	ShootCooldown  int

	// Home bounds never change after construction. Current bounds are
	// either the home bounds or the opponent's home bounds while teleported.
	HomeMinY, HomeMaxY float64
	MinY, MaxY         float64
}

// NewShip creates a ship inside its home band [minY, maxY].
func NewShip(x, y, r, minY, maxY float64, score int) Ship {
	return Ship{
		X:        x,
		Y:        y,
		R:        r,
		Score:    score,
		Color:    core.ColorGreen,
		HomeMinY: minY,
		HomeMaxY: maxY,
		MinY:     minY,
		MaxY:     maxY,
	}
}

// Move shifts the ship vertically, clamped to its current bounds.
func (s *Ship) Move(dy float64) {
	s.Y = core.ClampF(s.Y+dy, s.MinY+s.R, s.MaxY-s.R)
}

// TakeDamage subtracts amount from the score.
func (s *Ship) TakeDamage(amount int) {
	s.Score -= amount
}

// Heal adds amount to the score, capped at 100.
func (s *Ship) Heal(amount int) {
	s.Score = min(100, s.Score+amount)
}

// Alive reports whether the ship still has a non-negative score.
func (s Ship) Alive() bool {
	return s.Score >= 0
}

// HazardKind tags the hazard variants.
type HazardKind int

const (
	HazardStandard HazardKind = iota
	HazardStar
	HazardBlackHole
)

// String returns the shape tag of the kind.
func (k HazardKind) String() string {
	switch k {
	case HazardStandard:
		return "circle"
	case HazardStar:
		return "star"
	case HazardBlackHole:
		return "blackhole"
	default:
		return "unknown"
	}
}

// Variant is the cosmetic look of a standard hazard.
type Variant int

const (
	VariantMeteor Variant = iota
	VariantComet
)

// Hazard is an obstacle scrolling from right to left.
// Kind selects collision semantics; Piece is only meaningful for stars.
type Hazard struct {
	Kind    HazardKind
	X, Y    float64
	R       float64
	Speed   float64
	Damage  int
	Piece   int
	Variant Variant
}

// NewStandard creates a damaging hazard.
func NewStandard(x, y, r, speed float64, damage int, v Variant) Hazard {
	return Hazard{Kind: HazardStandard, X: x, Y: y, R: r, Speed: speed, Damage: damage, Variant: v}
}

// NewStar creates a collectible constellation piece.
func NewStar(x, y, r, speed float64, piece int) Hazard {
	return Hazard{Kind: HazardStar, X: x, Y: y, R: r, Speed: speed, Piece: piece}
}

// NewBlackHole creates a teleporting hazard.
func NewBlackHole(x, y, r, speed float64) Hazard {
	return Hazard{Kind: HazardBlackHole, X: x, Y: y, R: r, Speed: speed}
}

// Update moves the hazard left and reports whether it is still on the field.
func (h *Hazard) Update() bool {
	h.X -= h.Speed
	return h.X > -h.R
}

// Projectile is a bullet confined to a vertical band.
type Projectile struct {
	X, Y       float64
	R          float64
	DX, DY     float64
	MinY, MaxY float64
}

// Update advances the projectile and reports whether it is still inside
// the horizontal window (-margin, width+margin) and its [MinY, MaxY] band.
func (p *Projectile) Update(width, margin float64) bool {
	p.X += p.DX
	p.Y += p.DY
	return p.InBounds(width, margin)
}

// InBounds reports whether the projectile lies inside its travel region.
func (p Projectile) InBounds(width, margin float64) bool {
	if p.X <= -margin || p.X >= width+margin {
		return false
	}
	return p.Y >= p.MinY && p.Y <= p.MaxY
}

// ShipState is the locally authoritative part of a ship that is sent to the peer.
type ShipState struct {
	X, Y        float64
	Score       int
	Teleported  bool
	Projectiles []core.Point
}

// PeerUpdate is a decoded peer snapshot. Nil fields were absent on the wire
// and keep the mirror's current value; Teleported defaults to false.
type PeerUpdate struct {
	X, Y        *float64
	Score       *int
	Teleported  bool
	Projectiles []core.Point
}
