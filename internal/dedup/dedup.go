package dedup

import (
	"sort"

	"github.com/cardbook-api/internal/models"
)

// Keep strategies for CleanDuplicates
const (
	KeepOldest = "oldest"
	KeepNewest = "newest"
)

// GroupByIdentity groups cards by two derived identity keys:
// name|mobilePhone first, then name|email. Only groups with two or more
// members are reported, and the phone pass wins: an email-based group is
// dropped when its key is already taken.
func GroupByIdentity(cards []models.Card) map[string][]models.Card {
	duplicates := make(map[string][]models.Card)

	byPhone := make(map[string][]models.Card)
	for _, c := range cards {
		if c.Name == "" || c.MobilePhone == "" {
			continue
		}
		key := c.Name + "|" + c.MobilePhone
		byPhone[key] = append(byPhone[key], c)
	}
	for key, group := range byPhone {
		if len(group) > 1 {
			duplicates[key] = group
		}
	}

	byEmail := make(map[string][]models.Card)
	for _, c := range cards {
		if c.Name == "" || c.Email == "" {
			continue
		}
		key := c.Name + "|" + c.Email
		byEmail[key] = append(byEmail[key], c)
	}
	for key, group := range byEmail {
		if len(group) > 1 {
			if _, taken := duplicates[key]; !taken {
				duplicates[key] = group
			}
		}
	}

	return duplicates
}

// Victims returns the members of one duplicate group that should be
// deleted under the given strategy. The group is ordered by creation time;
// "oldest" keeps the earliest member, anything else keeps the latest.
func Victims(group []models.Card, strategy string) []models.Card {
	if len(group) <= 1 {
		return nil
	}

	sorted := make([]models.Card, len(group))
	copy(sorted, group)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	keep := sorted[len(sorted)-1]
	if strategy == KeepOldest {
		keep = sorted[0]
	}

	victims := make([]models.Card, 0, len(sorted)-1)
	for _, c := range sorted {
		if c.ID != keep.ID {
			victims = append(victims, c)
		}
	}
	return victims
}
