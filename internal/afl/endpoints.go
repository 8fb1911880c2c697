package afl

import "fmt"

// The upstream API is informally specified: the same logical query is served
// from different paths depending on deployment. Each query carries an
// ordered candidate list; the client takes the first response that parses.

func teamValuePaths(teamID string) []string {
	return []string{
		fmt.Sprintf("/afl/api/classic/team/%s/value", teamID),
		fmt.Sprintf("/api/classic/team/%s", teamID),
		fmt.Sprintf("/api/teams/%s/value", teamID),
	}
}

func teamScorePaths(teamID string) []string {
	return []string{
		fmt.Sprintf("/afl/api/classic/team/%s/score", teamID),
		fmt.Sprintf("/api/classic/team/%s/round_score", teamID),
		fmt.Sprintf("/api/teams/%s/score", teamID),
	}
}

func overallRankPaths(teamID string) []string {
	return []string{
		fmt.Sprintf("/afl/api/classic/team/%s/rank", teamID),
		fmt.Sprintf("/api/classic/rankings/team/%s", teamID),
		fmt.Sprintf("/api/teams/%s/rank", teamID),
	}
}

func captainPaths(teamID string) []string {
	return []string{
		fmt.Sprintf("/afl/api/classic/team/%s/captain", teamID),
		fmt.Sprintf("/api/classic/team/%s/lineup", teamID),
		fmt.Sprintf("/api/teams/%s/captain", teamID),
	}
}

func playerListPaths() []string {
	return []string{
		"/afl/api/classic/players",
		"/api/classic/players",
		"/api/players",
	}
}
