package stream

type phase int

const (
	phaseIdle phase = iota
	phaseWaiting
	phaseFetching
	phaseRendering
)

func (p phase) String() string {
	switch p {
	case phaseIdle:
		return "idle"
	case phaseWaiting:
		return "waiting"
	case phaseFetching:
		return "fetching"
	case phaseRendering:
		return "rendering"
	default:
		return "unknown"
	}
}

func (s *Stream) enter(p phase) {
	s.logger.WithField("phase", p).Trace("stream phase")
}
