package compose

import "strconv"

// stem allocates unique names within one generate run. Lambda parameters
// and auxiliary declaration names come from here, which is what guarantees
// the simplifier's no-shadowing precondition.
type stem struct {
	taken map[string]struct{}
}

func newStem() *stem {
	return &stem{taken: make(map[string]struct{})}
}

// claim returns base if it is still free, otherwise base with the smallest
// numeric suffix that frees it.
func (s *stem) claim(base string) string {
	if _, ok := s.taken[base]; !ok {
		s.taken[base] = struct{}{}
		return base
	}

	for i := 1; ; i++ {
		name := base + strconv.Itoa(i)
		if _, ok := s.taken[name]; !ok {
			s.taken[name] = struct{}{}
			return name
		}
	}
}
