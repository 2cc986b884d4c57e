package model

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ComplaintEvent merepresentasikan 1 kejadian perubahan status komplain di
// MongoDB (collection: complaint_events). Satu event ditulis saat komplain
// dibuat (status pending) dan setiap kali admin mengubah status.
// Timeline inilah yang dirender halaman cek-status publik.
type ComplaintEvent struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	ComplaintID  uuid.UUID          `bson:"complaintId"`  // id komplain di Postgres
	TicketNumber string             `bson:"ticketNumber"` // redundan, untuk query cepat
	Status       string             `bson:"status"`       // status SETELAH event ini
	Note         string             `bson:"note,omitempty"`
	Actor        string             `bson:"actor,omitempty"` // username admin; kosong untuk pelapor publik

	// Department & ReportedAt ikut disalin ke setiap event supaya pipeline
	// agregasi laporan bisa jalan tanpa join balik ke Postgres.
	Department string    `bson:"department"`
	ReportedAt time.Time `bson:"reportedAt"`

	CreatedAt time.Time `bson:"createdAt"`
}
