package models

type LeaderboardEntry struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}
