package svgpath

import (
	"strconv"

	"golang.org/x/xerrors"
)

// scanner reads the lexical pieces of path data: numbers, whitespace and the
// separators between coordinates.
type scanner struct {
	data  string
	index int
}

// peek returns the next byte without consuming it, or 0 at the end of the data.
func (s *scanner) peek() byte {
	if s.index < len(s.data) {
		return s.data[s.index]
	}
	return 0
}

// next consumes and returns the next byte, or 0 at the end of the data.
func (s *scanner) next() byte {
	c := s.peek()
	if c != 0 {
		s.index++
	}
	return c
}

// whitespace skips spaces, tabs and line breaks and returns how many it skipped.
func (s *scanner) whitespace() int {
	count := 0
	for {
		switch s.peek() {
		case ' ', '\t', '\n', '\r':
			s.index++
			count++
		default:
			return count
		}
	}
}

// commaWhitespace skips an optional separator: whitespace around at most one comma.
func (s *scanner) commaWhitespace() {
	s.whitespace()
	if s.peek() == ',' {
		s.index++
	}
	s.whitespace()
}

func (s *scanner) pair() (float64, float64, error) {
	x, err := s.number()
	if err != nil {
		return 0, 0, err
	}
	s.commaWhitespace()
	y, err := s.number()
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func (s *scanner) digits() int {
	start := s.index
	for c := s.peek(); '0' <= c && c <= '9'; c = s.peek() {
		s.index++
	}
	return s.index - start
}

// number reads a signed number such as "-1", "2.", ".5" or "1e-3". A number may end
// where the next one starts, as in "1-2" or ".2.3".
func (s *scanner) number() (float64, error) {
	start := s.index
	if c := s.peek(); c == '+' || c == '-' {
		s.index++
	}

	mantissa := s.digits()
	if s.peek() == '.' {
		s.index++
		mantissa += s.digits()
	}
	if mantissa == 0 {
		s.index = start
		return 0, xerrors.Errorf("expected a number, got %q", string(s.peek()))
	}

	if c := s.peek(); c == 'e' || c == 'E' {
		s.index++
		if c := s.peek(); c == '+' || c == '-' {
			s.index++
		}
		if s.digits() == 0 {
			return 0, xerrors.Errorf("missing exponent digits in %q", s.data[start:s.index])
		}
	}

	n, err := strconv.ParseFloat(s.data[start:s.index], 64)
	if err != nil {
		return 0, xerrors.Errorf("parsing %q: %w", s.data[start:s.index], err)
	}
	return n, nil
}
