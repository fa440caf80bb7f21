package service

import "time"

// SetPlannerClock replaces the clock used for workspace eviction.
func SetPlannerClock(s *PlannerService, now func() time.Time) { s.now = now }

// SetPlaceClock replaces the clock used for searcher eviction.
func SetPlaceClock(s *PlaceService, now func() time.Time) { s.now = now }

// WorkspaceCount reports how many users have a workspace in memory.
func WorkspaceCount(s *PlannerService) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.workspaces)
}

// SearcherCount reports how many clients have a Searcher in memory.
func SearcherCount(s *PlaceService) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.searchers)
}
