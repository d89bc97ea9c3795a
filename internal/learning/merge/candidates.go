package merge

import (
	types "github.com/Roblokonha/StudyVault/internal/domain"
	domainagg "github.com/Roblokonha/StudyVault/internal/domain/aggregates"
)

// Candidates nominates the two most recently created items: the newest is the
// source, the one before it the target. Equal timestamps fall back to input order,
// later entries counting as newer. This is a convenience pick, not duplicate detection.
func Candidates(items []*types.WorkspaceItem) (source, target *types.WorkspaceItem, err error) {
	newer := func(a, b int) bool {
		ta, tb := items[a].CreatedAt, items[b].CreatedAt
		if ta.Equal(tb) {
			return a > b
		}
		return ta.After(tb)
	}
	first, second := -1, -1
	for i, it := range items {
		if it == nil {
			continue
		}
		switch {
		case first < 0 || newer(i, first):
			second = first
			first = i
		case second < 0 || newer(i, second):
			second = i
		}
	}
	if first < 0 || second < 0 {
		return nil, nil, domainagg.InsufficientData(op, "not enough items to merge")
	}
	return items[first], items[second], nil
}
