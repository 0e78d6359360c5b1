package usecase

import (
	"context"
	"fmt"

	"pet-board/pkg/logger"
	"pet-board/services/board/internal/repo/persistent"
	"pet-board/services/board/internal/repo/search"
)

const defaultReindexBatch = 200

// BoardIndexer copies every live post from the database into the search
// index. It backfills posts written while the index was unreachable.
type BoardIndexer struct {
	boardRepo persistent.BoardRepository
	index     search.BoardIndex
	logger    *logger.Logger
}

func NewBoardIndexer(boardRepo persistent.BoardRepository, index search.BoardIndex, logger *logger.Logger) *BoardIndexer {
	return &BoardIndexer{boardRepo: boardRepo, index: index, logger: logger}
}

// Reindex returns the number of posts written to the index. It stops at the
// first failure.
func (i *BoardIndexer) Reindex(ctx context.Context, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = defaultReindexBatch
	}
	if err := i.index.EnsureIndex(ctx); err != nil {
		return 0, fmt.Errorf("failed to ensure index: %w", err)
	}

	var afterID int64
	indexed := 0
	for {
		boards, err := i.boardRepo.ListAfter(ctx, afterID, batchSize)
		if err != nil {
			return indexed, err
		}
		for _, b := range boards {
			if err := i.index.Index(ctx, b); err != nil {
				return indexed, err
			}
			indexed++
		}
		if len(boards) < batchSize {
			return indexed, nil
		}
		afterID = boards[len(boards)-1].ID
		i.logger.Debug("Reindexed %d boards, last id %d", indexed, afterID)
	}
}
