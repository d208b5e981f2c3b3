package billing

import "context"

// Store is the record-store contract the sync coordinator runs against.
// Transport, encoding and the anti-forgery credential for mutating calls
// are the implementation's concern; only the semantics below are relied
// upon. Deleting a transaction cascades to its items.
type Store interface {
	CreateTransaction(ctx context.Context, owner Owner, tx Transaction) (int64, error)
	UpdateTransaction(ctx context.Context, owner Owner, tx Transaction) error
	DeleteTransaction(ctx context.Context, owner Owner, id int64) error
	GetTransaction(ctx context.Context, owner Owner, id int64) (Transaction, error)
	ListTransactions(ctx context.Context, owner Owner) ([]Transaction, error)

	CreateItem(ctx context.Context, transactionID int64, item LineItem) (int64, error)
	UpdateItem(ctx context.Context, transactionID int64, item LineItem) error
	DeleteItem(ctx context.Context, transactionID, itemID int64) error
	ListItems(ctx context.Context, transactionID int64) ([]LineItem, error)
}

// ClientStore persists the billed parties of one owner.
type ClientStore interface {
	CreateClient(ctx context.Context, owner Owner, c Client) (int64, error)
	UpdateClient(ctx context.Context, owner Owner, c Client) error
	DeleteClient(ctx context.Context, owner Owner, id int64) error
	GetClient(ctx context.Context, owner Owner, id int64) (Client, error)
	ListClients(ctx context.Context, owner Owner) ([]Client, error)
}

// OwnerStore reads and mutates the owner profile and branding assets.
type OwnerStore interface {
	GetOwner(ctx context.Context, id int64) (Owner, error)
	UpdateOwner(ctx context.Context, o Owner) error
	UpdateOwnerAssets(ctx context.Context, id int64, logo, signature Asset) error
}
