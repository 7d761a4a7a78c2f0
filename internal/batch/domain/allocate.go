package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Allocate consumes up to quantity units from a medicine's batches inside
// the caller's transaction, oldest expiry first. Fully drained batches are
// marked inactive. It returns the per-batch allocations and the quantity no
// batch could cover; a shortfall is reported, not treated as an error.
func Allocate(ctx context.Context, tx *gorm.DB, repo Repository, medicineID snowflake.ID, quantity int) ([]Allocation, int, error) {
	batches, err := repo.ListConsumable(ctx, tx, medicineID)
	if err != nil {
		return nil, 0, err
	}

	var allocations []Allocation
	remaining := quantity
	for i := range batches {
		if remaining <= 0 {
			break
		}
		batch := &batches[i]

		take := batch.RemainingQuantity
		if take > remaining {
			take = remaining
		}
		batch.RemainingQuantity -= take
		if batch.RemainingQuantity == 0 {
			batch.Active = false
		}
		if err := repo.Save(ctx, tx, batch); err != nil {
			return nil, 0, err
		}

		allocations = append(allocations, Allocation{BatchID: batch.ID, Quantity: take})
		remaining -= take
	}
	return allocations, remaining, nil
}
