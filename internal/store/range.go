package store

import (
	"sort"
	"strconv"
	"strings"
)

// ResolveResult is the outcome of expanding a range expression: the
// matched cache ids in ascending order, plus a count of ids the
// expression named that don't exist (spec.md §4.C resolve semantics).
type ResolveResult struct {
	IDs     []int
	Missing int
}

// resolve expands a range expression against the set of known cache ids.
// Grammar: "N", "A-B" (inclusive), comma-separated unions of either, an
// optional trailing ":odd"/":even" filter, "all", or "0" (most recently
// ingested cache this session).
func (s *Store) resolve(rangeSpec string) ResolveResult {
	spec := strings.TrimSpace(rangeSpec)

	if spec == "all" {
		ids := s.allIDsLocked()
		return ResolveResult{IDs: ids}
	}

	if spec == "0" {
		if s.lastIngested == 0 {
			return ResolveResult{}
		}
		return ResolveResult{IDs: []int{s.lastIngested}}
	}

	filter := ""
	if idx := strings.LastIndex(spec, ":"); idx != -1 {
		tail := spec[idx+1:]
		if tail == "odd" || tail == "even" {
			filter = tail
			spec = spec[:idx]
		}
	}

	seen := make(map[int]bool)
	var ordered []int
	missing := 0

	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.Contains(part, "-") {
			bounds := strings.SplitN(part, "-", 2)
			a, errA := strconv.Atoi(strings.TrimSpace(bounds[0]))
			b, errB := strconv.Atoi(strings.TrimSpace(bounds[1]))
			if errA != nil || errB != nil {
				continue
			}
			if a > b {
				a, b = b, a
			}
			for n := a; n <= b; n++ {
				if !s.hasCacheLocked(n) {
					missing++
					continue
				}
				if !seen[n] {
					seen[n] = true
					ordered = append(ordered, n)
				}
			}
			continue
		}

		n, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		if !s.hasCacheLocked(n) {
			missing++
			continue
		}
		if !seen[n] {
			seen[n] = true
			ordered = append(ordered, n)
		}
	}

	if filter != "" {
		filtered := ordered[:0]
		for _, n := range ordered {
			if (filter == "odd" && n%2 != 0) || (filter == "even" && n%2 == 0) {
				filtered = append(filtered, n)
			}
		}
		ordered = filtered
	}

	sort.Ints(ordered)
	return ResolveResult{IDs: ordered, Missing: missing}
}

func (s *Store) allIDsLocked() []int {
	ids := make([]int, 0, len(s.caches))
	for id := range s.caches {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (s *Store) hasCacheLocked(id int) bool {
	_, ok := s.caches[id]
	return ok
}
