package app

import "gldemos/internal/config"

// Session is the per-run bookkeeping every demo carries: lives, level and scroll
// speed. The current demos store it but never read it back.
type Session struct {
	lives         int
	level         int
	levelComplete bool
	scrollSpeed   float32
}

// NewSession seeds a session from config.
func NewSession(cfg config.GameCfg) *Session {
	return &Session{
		lives:       cfg.Lives,
		level:       cfg.Level,
		scrollSpeed: cfg.ScrollSpeed,
	}
}

func (s *Session) Lives() int { return s.lives }
func (s *Session) SetLives(lives int) { s.lives = lives }
func (s *Session) Level() int { return s.level }
func (s *Session) LevelComplete() bool { return s.levelComplete }
func (s *Session) ScrollSpeed() float32 { return s.scrollSpeed }
func (s *Session) SetLevelComplete(b bool) { s.levelComplete = b }

// SetLevel moves to a new level and clears the completion flag.
func (s *Session) SetLevel(level int) {
	s.level = level
	s.levelComplete = false
}
