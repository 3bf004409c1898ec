package jobs

import "context"

// Repo defines persistence operations for jobs. Create assigns the
// store-generated sequential id.
type Repo interface {
	Create(ctx context.Context, job Job) (Job, error)
	Update(ctx context.Context, job Job) error
	GetByID(ctx context.Context, id int64) (Job, error)
	List(ctx context.Context) ([]Job, error)
	Delete(ctx context.Context, id int64) error
	Clear(ctx context.Context) error
}
