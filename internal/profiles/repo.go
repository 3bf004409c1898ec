package profiles

import "context"

// Repo defines persistence operations for profiles. Create assigns the
// store-generated sequential id; nested list items carry their own UUIDs.
type Repo interface {
	Create(ctx context.Context, profile Profile) (Profile, error)
	Update(ctx context.Context, profile Profile) error
	GetByID(ctx context.Context, id int64) (Profile, error)
	List(ctx context.Context) ([]Profile, error)
	Delete(ctx context.Context, id int64) error
	Clear(ctx context.Context) error
}
