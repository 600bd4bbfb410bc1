package redis

import (
	"fmt"

	"github.com/mcoot/codenames/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "codenames"

// exportKey returns the Redis key for a game's exported state
func exportKey(id model.GameID) string {
	return fmt.Sprintf("%s:export:%s", keyPrefix, id)
}

// summariesKey returns the Redis key for the LIST of game summaries
func summariesKey() string {
	return fmt.Sprintf("%s:summaries", keyPrefix)
}

// vocabularyKey returns the Redis key for the vocabulary word list
func vocabularyKey() string {
	return fmt.Sprintf("%s:vocabulary", keyPrefix)
}
