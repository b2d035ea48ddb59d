package scheduling

import "detailify/models"

// Overlaps reports whether two half-open intervals intersect. Intervals that
// only share an endpoint do not overlap, so a 2:00-4:00 job followed
// immediately by a 4:00-6:00 job is a valid schedule.
func Overlaps(a, b models.TimeInterval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// FindOverlapping returns the indices of every candidate that overlaps the
// target, preserving input order. Candidates are typically one resource's
// normalized bookings and events for a single day, so a linear scan is fine.
func FindOverlapping(target models.TimeInterval, candidates []models.TimeInterval) []int {
	var hits []int
	for i, c := range candidates {
		if Overlaps(target, c) {
			hits = append(hits, i)
		}
	}
	return hits
}
