package arena

import (
	"math"

	"github.com/vovakirdan/ufo-race/internal/core"
)

// Step advances the session by one tick. Nothing moves while paused or
// after game over.
func (s *Session) Step() State {
	if s.paused || s.gameOver {
		return s.State()
	}

	if s.thrust != 0 {
		s.local().Move(float64(s.thrust) * s.m.shipDY)
	}

	s.tick++

	s.spawn(s.role)
	if s.cfg.Hazards.SpawnRemoteSide {
		s.spawn(s.role.Opponent())
	}

	s.autoReturn()
	s.autoShoot()
	s.advance()

	s.resolveTeleportHits(RoleTop)
	s.resolveTeleportHits(RoleBottom)

	s.resolveHazardHits(s.role)
	s.resolveHazardHits(s.role.Opponent())
	s.resolveProjectileClash()

	s.split = s.height / 2
	s.checkGameOver()

	return s.State()
}

// spawn rolls for a new hazard in the universe owned by side.
func (s *Session) spawn(side Role) {
	rate := s.difficulty.AttackRate(s.cfg.Hazards.AttackRate, s.tick)
	if s.rng.Intn(rate+1) != 0 {
		return
	}

	r := s.m.shipR
	x := s.width + r
	roll := 1 + s.rng.Intn(100)

	padding := r * s.cfg.Hazards.Padding
	var lo, hi int
	if side == RoleTop {
		lo, hi = int(padding), int(s.split-padding)
	} else {
		lo, hi = int(s.split+padding), int(s.height-padding)
	}
	y := lo
	if hi > lo {
		y = lo + s.rng.Intn(hi-lo+1)
	}

	var h Hazard
	switch {
	case roll < s.cfg.Hazards.BlackHoleBelow:
		h = NewBlackHole(x, float64(y), r, s.m.hazardSpeed*s.cfg.Hazards.BlackHoleSpeed)
	case roll < s.cfg.Hazards.StarBelow:
		h = NewStar(x, float64(y), r, s.m.hazardSpeed, s.rng.Intn(PieceCount))
	default:
		h = NewStandard(x, float64(y), r, s.m.hazardSpeed, s.cfg.Hazards.Damage, Variant(s.rng.Intn(2)))
	}
	s.hazards[side.index()] = append(s.hazards[side.index()], h)
}

// autoReturn sends the local ship home once its teleport time is up.
func (s *Session) autoReturn() {
	sh := s.local()
	if sh.Teleported && s.tick > sh.TeleportUntil {
		s.goHome(sh)
	}
}

// autoShoot fires at the closest damaging target in the local ship's
// current universe while the constellation power-up lasts.
func (s *Session) autoShoot() {
	sh := s.local()
	if !sh.AutoShoot {
		return
	}
	if s.tick > sh.AutoShootUntil {
		sh.AutoShoot = false
		return
	}
	if sh.ShootCooldown > 0 {
		sh.ShootCooldown--
		return
	}

	universe := s.universeOf(sh.Y)
	closest := s.width
	var tx, ty float64
	found := false

	for _, h := range s.hazards[universe.index()] {
		if h.Kind != HazardStandard {
			continue
		}
		if d := core.Distance(h.X, h.Y, sh.X, sh.Y); d < closest {
			closest, tx, ty, found = d, h.X, h.Y, true
		}
	}
	enemy := s.remote()
	if s.universeOf(enemy.Y) == universe {
		if d := core.Distance(enemy.X, enemy.Y, sh.X, sh.Y); d < closest {
			tx, ty, found = enemy.X, enemy.Y, true
		}
	}
	if !found {
		return
	}

	angle := math.Atan2(ty-sh.Y, tx-sh.X)
	speed := s.m.bulletSpeed * s.cfg.PowerUps.SpeedFactor
	minY, maxY := s.band(universe)
	s.projectiles[s.role.index()] = append(s.projectiles[s.role.index()], Projectile{
		X:    sh.X,
		Y:    sh.Y,
		R:    s.m.bulletR,
		DX:   math.Cos(angle) * speed,
		DY:   math.Sin(angle) * speed,
		MinY: minY,
		MaxY: maxY,
	})
	sh.ShootCooldown = s.cfg.PowerUps.FireCooldown
}

// advance moves every projectile and hazard and prunes those that left the field.
func (s *Session) advance() {
	margin := s.cfg.Projectiles.Margin
	for side := range s.projectiles {
		list := s.projectiles[side]
		for i := len(list) - 1; i >= 0; i-- {
			if !list[i].Update(s.width, margin) {
				list = removeAt(list, i)
			}
		}
		s.projectiles[side] = list
	}
	for side := range s.hazards {
		list := s.hazards[side]
		for i := len(list) - 1; i >= 0; i-- {
			if !list[i].Update() {
				list = removeAt(list, i)
			}
		}
		s.hazards[side] = list
	}
}

func (s *Session) checkGameOver() {
	switch {
	case s.ships[RoleTop.index()].Score < 0:
		s.gameOver = true
		s.winner = RoleBottom
	case s.ships[RoleBottom.index()].Score < 0:
		s.gameOver = true
		s.winner = RoleTop
	}
}

// removeAt deletes element i preserving order.
func removeAt[T any](list []T, i int) []T {
	return append(list[:i], list[i+1:]...)
}
