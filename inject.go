package lexisphere

// injectPhase tags a queued synthetic event with the pointer phase it
// simulates. The phase decides the pressed/justPressed flags handed to
// the gesture state machine, so injected sequences classify exactly like
// hardware input.
type injectPhase uint8

const (
	injectPress injectPhase = iota
	injectMove
	injectRelease
	injectHover
)

// syntheticPointerEvent is one frame of scripted pointer input, in screen
// coordinates so scripted runs line up with the screenshots they produce.
type syntheticPointerEvent struct {
	phase  injectPhase
	x, y   float64
	button MouseButton
}

func (s *Scene) inject(phase injectPhase, x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		phase: phase, x: x, y: y, button: MouseButtonLeft,
	})
}

// InjectPress queues a left-button press at the given screen coordinates.
// Each queued event is consumed by one frame's input step.
func (s *Scene) InjectPress(x, y float64) {
	s.inject(injectPress, x, y)
}

// InjectMove queues a held-button move to the given screen coordinates.
// Between a press and a release this drives the rotation drag path.
func (s *Scene) InjectMove(x, y float64) {
	s.inject(injectMove, x, y)
}

// InjectRelease queues a button release at the given screen coordinates.
// Release position decides click-vs-drag and is where a click picks.
func (s *Scene) InjectRelease(x, y float64) {
	s.inject(injectRelease, x, y)
}

// InjectHover queues a button-up move, driving the hover pick at the
// given screen coordinates.
func (s *Scene) InjectHover(x, y float64) {
	s.inject(injectHover, x, y)
}

// InjectClick queues a press and a release at the same coordinates, the
// canonical node-selection gesture. Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a press at (fromX, fromY), evenly spaced held moves
// toward (toX, toY), and a release there. The whole gesture spans frames
// frames; values below the press+release minimum of 2 are raised to it.
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	moves := frames - 2
	stepX := (toX - fromX) / float64(moves+1)
	stepY := (toY - fromY) / float64(moves+1)

	s.InjectPress(fromX, fromY)
	for i := 1; i <= moves; i++ {
		s.InjectMove(fromX+stepX*float64(i), fromY+stepY*float64(i))
	}
	s.InjectRelease(toX, toY)
}

// processInjectedInput pops the oldest queued event and runs it through
// the same gesture state machine as the real cursor. Reports whether an
// event was consumed, in which case device input is skipped this frame.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	pressed := evt.phase == injectPress || evt.phase == injectMove
	justPressed := evt.phase == injectPress && !s.pointer.down
	s.processPointer(evt.x, evt.y, pressed, justPressed)
	return true
}
