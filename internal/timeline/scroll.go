package timeline

// ScrollSync keeps the date-header strip and the grid body visually tracking
// one another: driving either side assigns the other on every scroll event.
// Assigning an offset equal to the current one is a no-op, which is what
// breaks the feedback loop between the two.
type ScrollSync struct {
	header int
	body   int
	max    int
}

// NewScrollSync bounds offsets to [0, max].
func NewScrollSync(max int) *ScrollSync {
	if max < 0 {
		max = 0
	}
	return &ScrollSync{max: max}
}

// DriveHeader scrolls the header and drags the body along.
func (s *ScrollSync) DriveHeader(offset int) {
	offset = s.clamp(offset)
	if offset == s.header {
		return
	}
	s.header = offset
	s.body = offset
}

// DriveBody scrolls the body and drags the header along.
func (s *ScrollSync) DriveBody(offset int) {
	offset = s.clamp(offset)
	if offset == s.body {
		return
	}
	s.body = offset
	s.header = offset
}

// Offsets returns the current (header, body) scroll positions.
func (s *ScrollSync) Offsets() (header, body int) {
	return s.header, s.body
}

// SetMax updates the scrollable range, re-clamping current offsets; the range
// changes when the viewport or the column count does.
func (s *ScrollSync) SetMax(max int) {
	if max < 0 {
		max = 0
	}
	s.max = max
	s.header = s.clamp(s.header)
	s.body = s.clamp(s.body)
}

func (s *ScrollSync) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > s.max {
		return s.max
	}
	return offset
}
