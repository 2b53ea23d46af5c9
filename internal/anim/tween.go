package anim

import (
	"math"
	"time"

	"github.com/philipparndt/findflaw/pkg/geometry"
)

// Ease maps linear progress t in [0,1] to eased progress with a constant
// acceleration phase of length accel, a constant velocity phase, and a
// constant deceleration phase of length decel. accel+decel must not
// exceed 1.
func Ease(t, accel, decel float64) float64 {
	t = math.Max(0, math.Min(1, t))
	if accel+decel <= 0 {
		return t
	}
	maxRate := 2 / (2 - accel - decel)

	switch {
	case t < accel:
		return maxRate * t * t / (2 * accel)
	case t <= 1-decel:
		return maxRate * (t - accel/2)
	default:
		r := 1 - t
		return 1 - maxRate*r*r/(2*decel)
	}
}

// Tween runs Step with eased progress over Duration
type Tween struct {
	Duration     time.Duration
	Acceleration float64
	Deceleration float64

	// Step receives eased progress; the last call is always with 1
	Step func(p float64)
	// Done runs after the final step unless the tween was superseded
	Done func()

	elapsed time.Duration
}

// VectorTween interpolates from a to b, passing each value to set
func VectorTween(from, to geometry.Vector3, d time.Duration, accel, decel float64, set func(geometry.Vector3)) *Tween {
	return &Tween{
		Duration:     d,
		Acceleration: accel,
		Deceleration: decel,
		Step: func(p float64) {
			if p >= 1 {
				set(to)
				return
			}
			set(from.Lerp(to, p))
		},
	}
}

// Token identifies one started tween
type Token uint64

// Animator runs at most one tween per named slot
type Animator struct {
	tweens map[string]*Tween
	tokens map[string]Token
	next   Token
}

// NewAnimator creates an animator stepped by the scheduler
func (s *Scheduler) NewAnimator() *Animator {
	a := &Animator{
		tweens: make(map[string]*Tween),
		tokens: make(map[string]Token),
	}
	s.animators = append(s.animators, a)
	return a
}

// Start replaces whatever runs on slot with tw. The replaced tween never
// completes.
func (a *Animator) Start(slot string, tw *Tween) Token {
	a.next++
	tw.elapsed = 0
	a.tweens[slot] = tw
	a.tokens[slot] = a.next
	return a.next
}

// Cancel stops the tween on slot without completing it
func (a *Animator) Cancel(slot string) {
	delete(a.tweens, slot)
	delete(a.tokens, slot)
}

// Active reports whether a tween is running on slot
func (a *Animator) Active(slot string) bool {
	_, ok := a.tweens[slot]
	return ok
}

// Current reports whether token still owns its slot
func (a *Animator) Current(slot string, token Token) bool {
	return a.tokens[slot] == token
}

func (a *Animator) advance(dt time.Duration) {
	// Callbacks may start or cancel tweens, so iterate over a snapshot
	type entry struct {
		slot  string
		tw    *Tween
		token Token
	}
	var running []entry
	for slot, tw := range a.tweens {
		running = append(running, entry{slot, tw, a.tokens[slot]})
	}

	for _, e := range running {
		if !a.Current(e.slot, e.token) {
			continue
		}
		e.tw.elapsed += dt

		if e.tw.Duration <= 0 || e.tw.elapsed >= e.tw.Duration {
			if e.tw.Step != nil {
				e.tw.Step(1)
			}
			if !a.Current(e.slot, e.token) {
				continue
			}
			a.Cancel(e.slot)
			if e.tw.Done != nil {
				e.tw.Done()
			}
			continue
		}

		if e.tw.Step != nil {
			linear := float64(e.tw.elapsed) / float64(e.tw.Duration)
			e.tw.Step(Ease(linear, e.tw.Acceleration, e.tw.Deceleration))
		}
	}
}
