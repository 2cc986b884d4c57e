package repository

import (
	"context"
	"time"

	"sipebaru-backend/app/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EventRepository menangani riwayat status komplain di MongoDB
// (collection: complaint_events).
type EventRepository interface {
	// Append menulis 1 event perubahan status. CreatedAt diisi otomatis
	// jika kosong.
	Append(ctx context.Context, ev *model.ComplaintEvent) error
	// FindByComplaintID mengembalikan timeline terurut naik (event tertua
	// dulu) untuk halaman cek-status.
	FindByComplaintID(ctx context.Context, complaintID uuid.UUID) ([]model.ComplaintEvent, error)
	// DeleteByComplaintID membersihkan timeline saat komplain dihapus admin.
	DeleteByComplaintID(ctx context.Context, complaintID uuid.UUID) error
}

type eventRepository struct {
	mongo *mongo.Database
}

func NewEventRepository(mongoDB *mongo.Database) EventRepository {
	return &eventRepository{mongo: mongoDB}
}

func (r *eventRepository) collection() *mongo.Collection {
	return r.mongo.Collection("complaint_events")
}

func (r *eventRepository) Append(ctx context.Context, ev *model.ComplaintEvent) error {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now()
	}
	_, err := r.collection().InsertOne(ctx, ev)
	return err
}

func (r *eventRepository) FindByComplaintID(ctx context.Context, complaintID uuid.UUID) ([]model.ComplaintEvent, error) {
	cur, err := r.collection().Find(ctx,
		bson.M{"complaintId": complaintID},
		options.Find().SetSort(bson.M{"createdAt": 1}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []model.ComplaintEvent
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) DeleteByComplaintID(ctx context.Context, complaintID uuid.UUID) error {
	_, err := r.collection().DeleteMany(ctx, bson.M{"complaintId": complaintID})
	return err
}
