package notification

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const collectionName = "notifications"

// Repository хранилище уведомлений в MongoDB.
// Уведомления — append-only лента провайдера, им не нужна реляционная
// модель: документ с контентом, адресатом и флагом прочтения.
type Repository struct {
	db *mongo.Database
}

// NewRepository создает новый экземпляр репозитория уведомлений
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{db: db}
}

// Create сохраняет уведомление для провайдера
func (r *Repository) Create(ctx context.Context, n *domain.Notification) error {
	createdAt := n.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	doc := bson.M{
		"content":    n.Content,
		"user":       n.UserID,
		"read":       n.Read,
		"created_at": createdAt,
	}

	if _, err := r.db.Collection(collectionName).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("%w: Create - insert document: %v", ErrInsert, err)
	}
	return nil
}
