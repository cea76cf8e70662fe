package leaderboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/chrisdamba/foodwaste/internal/models"
)

// DefaultPoints replaces missing, null or non-numeric point values.
const DefaultPoints = 0

var (
	nameKeys   = []string{"name", "restaurant", "id"}
	pointsKeys = []string{"points", "count"}
)

// Load reads and parses a points file. A missing file is an empty leaderboard.
func Load(path string) ([]models.LeaderboardEntry, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.LeaderboardEntry{}, nil
	}
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse accepts the four known document shapes:
//
//	{"points": {"Name": 3}}
//	{"points": [{"name": "Name", "points": 3}]}
//	{"Name": 3}
//	[{"name": "Name", "points": 3}]
//
// Anything else yields an empty, sorted leaderboard.
func Parse(data []byte) ([]models.LeaderboardEntry, error) {
	var doc json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse leaderboard: %w", err)
	}

	entries := []models.LeaderboardEntry{}
	switch kind(doc) {
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(doc, &obj); err != nil {
			return nil, fmt.Errorf("parse leaderboard: %w", err)
		}
		if wrapped, ok := obj["points"]; ok {
			switch kind(wrapped) {
			case '{':
				entries = fromMap(wrapped)
			case '[':
				entries = fromList(wrapped)
			}
		} else {
			entries = fromMap(doc)
		}
	case '[':
		entries = fromList(doc)
	}

	Sort(entries)
	return entries, nil
}

// Sort orders by points descending, then name ascending.
func Sort(entries []models.LeaderboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].Name < entries[j].Name
	})
}

func kind(raw json.RawMessage) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

func fromMap(raw json.RawMessage) []models.LeaderboardEntry {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return []models.LeaderboardEntry{}
	}
	entries := make([]models.LeaderboardEntry, 0, len(m))
	for name, v := range m {
		entries = append(entries, models.LeaderboardEntry{Name: name, Points: points(v)})
	}
	return entries
}

func fromList(raw json.RawMessage) []models.LeaderboardEntry {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []models.LeaderboardEntry{}
	}
	entries := make([]models.LeaderboardEntry, 0, len(items))
	for _, item := range items {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil {
			continue
		}
		entry := models.LeaderboardEntry{Points: DefaultPoints}
		for _, k := range nameKeys {
			if name := text(fields[k]); name != "" {
				entry.Name = name
				break
			}
		}
		for _, k := range pointsKeys {
			if p := points(fields[k]); p != DefaultPoints {
				entry.Points = p
				break
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

func points(raw json.RawMessage) int {
	if len(raw) == 0 {
		return DefaultPoints
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if f, err := n.Float64(); err == nil {
			return int(f)
		}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return int(f)
		}
	}
	return DefaultPoints
}

func text(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}
