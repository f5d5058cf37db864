// Package arena implements the UFO Race simulation: two ships, one per
// universe, dodging hazards and shooting at each other across the split.
//
// A Session owns the local ship, its projectiles and the hazards it sees.
// The opponent's ship and projectiles are a mirror that only changes
// through ApplyPeer.
package arena

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/ufo-race/internal/config"
	"github.com/vovakirdan/ufo-race/internal/core"
)

// State summarizes the session after a step.
type State struct {
	Tick     int
	Paused   bool
	GameOver bool
	Winner   Role
}

// metrics are pixel sizes derived from the field at reset time.
type metrics struct {
	shipR       float64
	shipX       float64
	shipDY      float64
	hazardSpeed float64
	bulletSpeed float64
	bulletR     float64
	hitGrace    int // Ticks a projectile needs to cross a ship, plus one snapshot interval
}

// Session is one player's view of a match.
type Session struct {
	cfg        config.ArenaConfig
	role       Role
	rng        *rand.Rand
	difficulty *config.DifficultyManager

	width  float64
	height float64
	split  float64
	m      metrics

	ships       [2]Ship
	hazards     [2][]Hazard
	projectiles [2][]Projectile

	tick     int
	paused   bool
	gameOver bool
	winner   Role
	thrust   int
}

// NewSession creates a session for the given local role.
func NewSession(cfg config.ArenaConfig, role Role, seed int64) (*Session, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("arena: invalid role %d", role)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		cfg:        cfg,
		role:       role,
		width:      cfg.Field.Width,
		height:     cfg.Field.Height,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		rng:        rand.New(rand.NewSource(seed)),
	}
	s.reset()
	return s, nil
}

// Reset restores the initial match state. Calling it twice in a row
// yields the same ships and flags as calling it once. The first match
// follows the session seed; every reset reseeds from the running
// generator so a new match gets a new hazard sequence.
func (s *Session) Reset() {
	s.rng = rand.New(rand.NewSource(s.rng.Int63()))
	s.reset()
}

func (s *Session) reset() {
	s.split = s.height / 2

	r := s.height * s.cfg.Ship.RadiusRatio
	s.m = metrics{
		shipR:       r,
		shipX:       s.width * s.cfg.Ship.XRatio,
		shipDY:      s.height * s.cfg.Ship.SpeedRatio,
		hazardSpeed: s.width * s.cfg.Hazards.SpeedRatio,
		bulletSpeed: s.width * s.cfg.Projectiles.SpeedRatio,
		bulletR:     r * s.cfg.Projectiles.RadiusFactor,
	}
	s.m.hitGrace = hitGrace(s.cfg, s.m)

	start := s.cfg.Ship.StartScore
	s.ships[RoleTop.index()] = NewShip(s.m.shipX, s.split/2, r, 0, s.split, start)
	s.ships[RoleBottom.index()] = NewShip(s.m.shipX, s.split*1.5, r, s.split, s.height, start)

	for i := range s.hazards {
		s.hazards[i] = s.hazards[i][:0]
		s.projectiles[i] = s.projectiles[i][:0]
	}

	s.tick = 0
	s.paused = false
	s.gameOver = false
	s.winner = RoleNone
	s.thrust = 0
}

// Resize changes the field size. Ship home bounds keep their values;
// the split follows the new height on the next step.
//
// Both peers must share one logical field for mirrored coordinates to
// line up, so the terminal client never calls Resize; it scales its view
// of the fixed field instead. Resize serves embedders that own both sides.
func (s *Session) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	s.width = width
	s.height = height
}

// SetThrust sets the held vertical direction of the local ship:
// -1 up, +1 down, 0 none. It is applied once per step.
func (s *Session) SetThrust(dir int) {
	s.thrust = core.Clamp(dir, -1, 1)
}

// Fire launches a projectile from the local ship toward the right edge
// (dir > 0) or the left edge (dir < 0).
func (s *Session) Fire(dir int) {
	if s.paused || s.gameOver || dir == 0 {
		return
	}
	sh := s.local()
	p := Projectile{Y: sh.Y, R: s.m.bulletR}
	if dir > 0 {
		p.X = sh.X + sh.R
		p.DX = s.m.bulletSpeed
	} else {
		p.X = sh.X - sh.R
		p.DX = -s.m.bulletSpeed
	}
	p.MinY, p.MaxY = s.band(s.universeOf(sh.Y))
	s.projectiles[s.role.index()] = append(s.projectiles[s.role.index()], p)
}

// TogglePause flips the paused flag. It has no effect after game over.
func (s *Session) TogglePause() {
	if s.gameOver {
		return
	}
	s.paused = !s.paused
}

// ApplyPeer overwrites the mirrored opponent ship and projectiles.
// Absent fields keep the mirror's current value.
func (s *Session) ApplyPeer(u PeerUpdate) {
	mirror := s.remote()
	if u.X != nil {
		mirror.X = *u.X
	}
	if u.Y != nil {
		mirror.Y = *u.Y
	}
	if u.Score != nil {
		mirror.Score = *u.Score
	}
	mirror.Teleported = u.Teleported

	side := s.role.Opponent().index()
	list := s.projectiles[side][:0]
	for _, pt := range u.Projectiles {
		list = append(list, Projectile{
			X:    pt.X,
			Y:    pt.Y,
			R:    s.m.bulletR,
			MinY: 0,
			MaxY: s.height,
		})
	}
	s.projectiles[side] = list
}

// LocalState returns the locally authoritative ship state for the peer.
func (s *Session) LocalState() ShipState {
	sh := s.local()
	own := s.projectiles[s.role.index()]
	pts := make([]core.Point, len(own))
	for i, p := range own {
		pts[i] = core.Point{X: p.X, Y: p.Y}
	}
	return ShipState{
		X:           sh.X,
		Y:           sh.Y,
		Score:       sh.Score,
		Teleported:  sh.Teleported,
		Projectiles: pts,
	}
}

// State returns the current session summary.
func (s *Session) State() State {
	return State{
		Tick:     s.tick,
		Paused:   s.paused,
		GameOver: s.gameOver,
		Winner:   s.winner,
	}
}

// Role returns the local player's role.
func (s *Session) Role() Role { return s.role }

// Config returns the configuration the session runs with.
func (s *Session) Config() config.ArenaConfig { return s.cfg }

// Tick returns the number of steps since the last reset.
func (s *Session) Tick() int { return s.tick }

// Paused reports whether the session is paused.
func (s *Session) Paused() bool { return s.paused }

// GameOver reports whether a ship has been destroyed.
func (s *Session) GameOver() bool { return s.gameOver }

// Winner returns the winning role, or RoleNone while the match runs.
func (s *Session) Winner() Role { return s.winner }

// Split returns the y coordinate dividing the two universes.
func (s *Session) Split() float64 { return s.split }

// Size returns the field width and height.
func (s *Session) Size() (float64, float64) { return s.width, s.height }

// Ship returns a copy of the ship of the given role.
func (s *Session) Ship(r Role) Ship {
	return s.ships[r.index()]
}

// Ships returns copies of both ships, top first.
func (s *Session) Ships() [2]Ship {
	return s.ships
}

// Hazards returns the hazards of the universe owned by r.
// The slice must not be modified.
func (s *Session) Hazards(r Role) []Hazard {
	return s.hazards[r.index()]
}

// Projectiles returns the projectiles fired by r.
// The slice must not be modified.
func (s *Session) Projectiles(r Role) []Projectile {
	return s.projectiles[r.index()]
}

// hitGrace returns how many ticks a mirrored projectile may keep touching
// the ship it already hit: the time to cross the ship plus the gap
// between two snapshots.
func hitGrace(cfg config.ArenaConfig, m metrics) int {
	cross := 0
	if m.bulletSpeed > 0 {
		cross = int(math.Ceil(2 * (m.shipR + m.bulletR) / m.bulletSpeed))
	}
	snapshot := 1
	if cfg.Network.EmitHz > 0 {
		snapshot = (cfg.Field.TickRate + cfg.Network.EmitHz - 1) / cfg.Network.EmitHz
	}
	return cross + snapshot + 1
}

func (s *Session) local() *Ship {
	return &s.ships[s.role.index()]
}

func (s *Session) remote() *Ship {
	return &s.ships[s.role.Opponent().index()]
}

// band returns the home bounds of the universe owned by r.
func (s *Session) band(r Role) (float64, float64) {
	if r == RoleTop {
		return 0, s.split
	}
	return s.split, s.height
}

// universeOf returns the universe containing the y coordinate.
func (s *Session) universeOf(y float64) Role {
	if y < s.split {
		return RoleTop
	}
	return RoleBottom
}
