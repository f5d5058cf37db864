package arena

import (
	"github.com/vovakirdan/ufo-race/internal/core"
)

// resolveTeleportHits checks the traveler's ship against the opponent's
// projectiles. At most one projectile hits per tick.
//
// Only the victim resolves a hit. Local projectiles fly through the mirror
// so the peer sees them overlap its ship in the next snapshot; its score
// change then comes back to us. A mirrored projectile keeps reappearing
// while it crosses the ship, so a hit opens a grace window in which
// further touches are absorbed without damage.
func (s *Session) resolveTeleportHits(traveler Role) {
	if traveler != s.role {
		return
	}
	sh := &s.ships[traveler.index()]
	attackers := traveler.Opponent().index()
	list := s.projectiles[attackers]
	for i := len(list) - 1; i >= 0; i-- {
		p := list[i]
		if !core.Touching(p.X, p.Y, p.R, sh.X, sh.Y, sh.R) {
			continue
		}
		s.projectiles[attackers] = removeAt(list, i)
		if s.tick < sh.HitGraceUntil {
			return
		}
		if sh.Teleported {
			sh.Score = s.cfg.Teleport.DeathScore
		} else {
			sh.TakeDamage(s.cfg.Teleport.HitDamage)
		}
		sh.HitGraceUntil = s.tick + s.m.hitGrace
		return
	}
}

// resolveHazardHits resolves the local ship and its projectiles against
// the hazards of the universe owned by side.
func (s *Session) resolveHazardHits(side Role) {
	s.shootHazards(side)
	s.touchHazards(side)
}

// shootHazards handles local projectiles hitting hazards. Standard hazards
// are destroyed together with the projectile, stars are passed through, and
// black holes send the projectile out of the other universe's last black hole.
func (s *Session) shootHazards(side Role) {
	own := s.role.index()
	bullets := s.projectiles[own]
	for i := len(bullets) - 1; i >= 0; i-- {
		b := &bullets[i]
		hit := false
		hazards := s.hazards[side.index()]
		for j := len(hazards) - 1; j >= 0; j-- {
			h := hazards[j]
			if !core.Touching(b.X, b.Y, b.R, h.X, h.Y, h.R) {
				continue
			}
			if h.Kind == HazardBlackHole {
				if s.redirect(b, side.Opponent()) {
					break
				}
				continue
			}
			if h.Kind == HazardStar {
				continue
			}
			s.hazards[side.index()] = removeAt(hazards, j)
			hit = true
			break
		}
		if hit {
			bullets = removeAt(bullets, i)
		}
	}
	s.projectiles[own] = bullets
}

// redirect moves b to just outside the most recent black hole in the
// universe owned by exit, reversing its horizontal direction. It reports
// false when that universe has no black hole.
func (s *Session) redirect(b *Projectile, exit Role) bool {
	hazards := s.hazards[exit.index()]
	for k := len(hazards) - 1; k >= 0; k-- {
		bh := hazards[k]
		if bh.Kind != HazardBlackHole {
			continue
		}
		b.X = bh.X + bh.R + b.R
		b.Y = bh.Y
		b.DX = -b.DX
		b.DY = 0
		b.MinY, b.MaxY = s.band(exit)
		return true
	}
	return false
}

// touchHazards handles the local ship running into hazards.
func (s *Session) touchHazards(side Role) {
	sh := s.local()
	hazards := s.hazards[side.index()]
	for j := len(hazards) - 1; j >= 0; j-- {
		h := hazards[j]
		if !core.Touching(sh.X, sh.Y, sh.R, h.X, h.Y, h.R) {
			continue
		}
		switch h.Kind {
		case HazardStar:
			hazards = removeAt(hazards, j)
			s.collectStar(sh, h.Piece)
		case HazardBlackHole:
			if s.tick < sh.TeleportCooldown {
				continue
			}
			hazards = removeAt(hazards, j)
			s.toggleTeleport(sh)
		default:
			hazards = removeAt(hazards, j)
			sh.TakeDamage(h.Damage)
		}
	}
	s.hazards[side.index()] = hazards
}

// collectStar adds a piece and activates auto-shoot once the
// constellation is complete.
func (s *Session) collectStar(sh *Ship, piece int) {
	sh.Stars.Add(piece)
	if sh.Stars.Len() < s.cfg.PowerUps.ConstellationSize {
		return
	}
	sh.AutoShoot = true
	sh.AutoShootUntil = s.tick + s.cfg.StepsFor(s.cfg.PowerUps.AutoShootSeconds)
	sh.Stars.Clear()
}

// resolveProjectileClash destroys pairs of touching local and opposing
// projectiles. Consumed mirror projectiles come back with the next snapshot
// only if the peer still has them.
func (s *Session) resolveProjectileClash() {
	own := s.role.index()
	opp := s.role.Opponent().index()
	mine := s.projectiles[own]
	for i := len(mine) - 1; i >= 0; i-- {
		b := mine[i]
		theirs := s.projectiles[opp]
		for j := len(theirs) - 1; j >= 0; j-- {
			o := theirs[j]
			if core.Touching(b.X, b.Y, b.R, o.X, o.Y, o.R) {
				s.projectiles[opp] = removeAt(theirs, j)
				mine = removeAt(mine, i)
				break
			}
		}
	}
	s.projectiles[own] = mine
}

// toggleTeleport jumps the ship into the opponent's universe or brings it home.
func (s *Session) toggleTeleport(sh *Ship) {
	if sh.Teleported {
		s.goHome(sh)
		sh.TeleportCooldown = s.tick + s.cfg.StepsFor(s.cfg.Teleport.ReturnCooldownSeconds)
		return
	}

	other := s.ships[s.role.Opponent().index()]
	sh.Teleported = true
	sh.TeleportUntil = s.tick + s.cfg.StepsFor(s.cfg.Teleport.DurationSeconds)
	sh.TeleportCooldown = s.tick + s.cfg.StepsFor(s.cfg.Teleport.CooldownSeconds)
	sh.MinY, sh.MaxY = other.HomeMinY, other.HomeMaxY
	sh.X = s.width - s.m.shipX

	lo, hi := int(sh.MinY+sh.R), int(sh.MaxY-sh.R)
	y := lo
	if hi > lo {
		y = lo + s.rng.Intn(hi-lo+1)
	}
	sh.Y = float64(y)
}

// goHome restores the ship's home bounds and position.
func (s *Session) goHome(sh *Ship) {
	sh.Teleported = false
	sh.MinY, sh.MaxY = sh.HomeMinY, sh.HomeMaxY
	sh.X = s.m.shipX
	sh.Y = (sh.HomeMinY + sh.HomeMaxY) / 2
}
