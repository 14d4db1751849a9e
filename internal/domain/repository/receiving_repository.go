package repository

import (
	"context"
	"net/http"

	"github.com/sangkips/warehouse-api/internal/domain/entity"
)

// ReceivingAPI is the remote store of receiving transactions
type ReceivingAPI interface {
	ListReceiving(ctx context.Context) ([]entity.TransactionRecord, error)
	CreateReceiving(ctx context.Context, record *entity.TransactionRecord) (*entity.TransactionRecord, error)
	UpdateReceiving(ctx context.Context, id entity.RecordID, record *entity.TransactionRecord) (*entity.TransactionRecord, error)
	DeleteReceiving(ctx context.Context, id entity.RecordID) error
}

// KeyValueStore backs the local mirror. Get reports found=false for a missing key.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Put(ctx context.Context, key string, value []byte) error
}

// WarehouseDirectory lists the warehouses known to the remote API
type WarehouseDirectory interface {
	ListWarehouses(ctx context.Context) ([]entity.Warehouse, error)
}

// IdentityProvider exchanges credentials for a remote bearer token and resolves its user
type IdentityProvider interface {
	ObtainToken(ctx context.Context, email, password string) (string, error)
	FetchCurrentUser(ctx context.Context, token string) (*entity.User, error)
}

// Identity is the signed-in operator of the current request.
// CurrentUser fails when the request carries no session.
type Identity interface {
	CurrentUser(ctx context.Context) (*entity.User, error)
	AttachCredential(ctx context.Context, req *http.Request)
}

// ReceivingMirror is the local copy of receiving records used when the remote API fails.
// Mutate runs fn as one read-modify-write and persists what it returns.
type ReceivingMirror interface {
	Load(ctx context.Context) ([]entity.TransactionRecord, error)
	Mutate(ctx context.Context, fn func(records []entity.TransactionRecord) ([]entity.TransactionRecord, error)) error
}
