package contacts

import "context"

// Repo is the storage contract for contacts.
type Repo interface {
	Create(ctx context.Context, contact Contact) (Contact, error)
	Update(ctx context.Context, contact Contact) error
	GetByID(ctx context.Context, id int64) (Contact, error)
	List(ctx context.Context) ([]Contact, error)
	Delete(ctx context.Context, id int64) error
}
