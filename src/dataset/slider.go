package dataset

// Slider maps a bounded integer index onto one axis's domain. One instance
// per axis; an axis assigned the x or overlay role has its slider disabled
// and its value is not consulted while in that role.
type Slider struct {
	Axis    Axis
	Enabled bool

	domain []float64
	idx    int
}

// NewSlider builds a slider over the axis's domain, positioned at the middle
// element (⌊n/2⌋), which is the initial selection after a table load.
func NewSlider(a Axis, domain []float64) *Slider {
	s := &Slider{Axis: a, Enabled: true, domain: domain}
	s.idx = len(domain) / 2
	if s.idx >= len(domain) {
		s.idx = len(domain) - 1
	}
	return s
}

// Len returns the number of legal positions.
func (s *Slider) Len() int { return len(s.domain) }

// Index returns the current position.
func (s *Slider) Index() int { return s.idx }

// SetByIndex moves to position i, clamped to [0, Len()-1].
func (s *Slider) SetByIndex(i int) {
	if len(s.domain) == 0 {
		s.idx = 0
		return
	}
	if i < 0 {
		i = 0
	}
	if i > len(s.domain)-1 {
		i = len(s.domain) - 1
	}
	s.idx = i
}

// SetByNearestValue snaps to the domain entry minimizing |domain[i]-v|.
// This is how a dataset reload preserves the user's fixed-axis choice across
// domains that shift between variants.
func (s *Slider) SetByNearestValue(v float64) {
	if i := NearestIndex(s.domain, v); i >= 0 {
		s.idx = i
	}
}

// Get returns the current domain value. Zero for an empty domain.
func (s *Slider) Get() float64 {
	if len(s.domain) == 0 {
		return 0
	}
	return s.domain[s.idx]
}

// Rebind replaces the slider's domain after a table swap, snapping to the
// value nearest the previous selection.
func (s *Slider) Rebind(domain []float64) {
	prev := s.Get()
	hadDomain := len(s.domain) > 0
	s.domain = domain
	if hadDomain {
		s.SetByNearestValue(prev)
		return
	}
	s.idx = len(domain) / 2
	if s.idx >= len(domain) && len(domain) > 0 {
		s.idx = len(domain) - 1
	}
}
