package player

import "time"

// JumpControllerBuilderOption is a functional option for configuring a JumpController during construction.
type JumpControllerBuilderOption func(*jumpController)

// WithJumpKey sets the key code that triggers a jump.
//
// Parameters:
//   - code: the key code
//
// Returns:
//   - JumpControllerBuilderOption: functional option to set the jump key
func WithJumpKey(code uint32) JumpControllerBuilderOption {
	return func(jc *jumpController) {
		jc.key = code
	}
}

// WithImpulse sets the upward speed a jump adds.
//
// Parameters:
//   - speed: units per second
//
// Returns:
//   - JumpControllerBuilderOption: functional option to set the impulse
func WithImpulse(speed float32) JumpControllerBuilderOption {
	return func(jc *jumpController) {
		if speed > 0 {
			jc.impulse = speed
		}
	}
}

// WithCooldown sets how long the controller stays in JumpCooling after a jump.
//
// Parameters:
//   - d: the cooldown
//
// Returns:
//   - JumpControllerBuilderOption: functional option to set the cooldown
func WithCooldown(d time.Duration) JumpControllerBuilderOption {
	return func(jc *jumpController) {
		if d >= 0 {
			jc.cooldown = d
		}
	}
}
