package todos

// StarsPerLevel is how many stars separate one level from the next.
const StarsPerLevel = 10

// ComputeStats tallies stars over completed todos and derives the level.
// A completed todo contributes its reward, falling back to its priority weight, then to 1.
func ComputeStats(list []Todo) Stats {
	var s Stats
	for _, t := range list {
		s.Total++
		if !t.Completed {
			continue
		}
		s.Completed++
		switch {
		case t.Reward > 0:
			s.Stars += t.Reward
		case t.Priority.Weight() > 0:
			s.Stars += t.Priority.Weight()
		default:
			s.Stars++
		}
	}
	s.Level = s.Stars/StarsPerLevel + 1
	return s
}
