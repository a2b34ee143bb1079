package repositories

import "context"

// Repository aggregates the per-domain repositories the core needs. The
// underlying stores are opaque; only simple CRUD plus filtered find with
// sort and limit is assumed, no multi-document transactions.
type Repository interface {
	Message() MessageRepository
	Notification() NotificationRepository
	User() UserRepository
	Grade() GradeRepository
	Activity() ActivityRepository

	// Transaction support for the few multi-write paths
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager manages repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
