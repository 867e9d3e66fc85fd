package scoring

import "sort"

// Rank orders leaderboard entries by total points descending, tie-broken by
// userID ascending so re-invocations with the same inputs are stable. Equal
// totals share a rank; the next distinct total resumes at
// previousRank + countOfTiedEntries (1,1,3, standard competition ranking).
// Rank is a pure transform and holds no state between calls.
func Rank(entries []UserPoints) []LeaderboardEntry {
	ordered := make([]UserPoints, len(entries))
	copy(ordered, entries)

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].TotalPoints != ordered[j].TotalPoints {
			return ordered[i].TotalPoints > ordered[j].TotalPoints
		}
		return ordered[i].UserID < ordered[j].UserID
	})

	out := make([]LeaderboardEntry, 0, len(ordered))
	for idx, row := range ordered {
		rank := idx + 1
		if idx > 0 && row.TotalPoints == ordered[idx-1].TotalPoints {
			rank = out[idx-1].Rank
		}
		out = append(out, LeaderboardEntry{
			UserID:      row.UserID,
			Rank:        rank,
			TotalPoints: row.TotalPoints,
		})
	}

	return out
}
