package series

// Series is the ordered pair of sequences consumed by a chart. X and Y always have the same
// length.
type Series struct {
	X []string
	Y []string
}

// Append adds one sample at the end of the series.
func (s *Series) Append(label, value string) {
	s.X = append(s.X, label)
	s.Y = append(s.Y, value)
}

// Len returns the number of samples.
func (s *Series) Len() int {
	return len(s.X)
}

// Record is one sample read from the input.
type Record struct {
	// Line is the 1-based line number the sample was read from.
	Line  int
	Label string
	Value string
}
