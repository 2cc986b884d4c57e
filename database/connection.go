package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"sipebaru-backend/app/model"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Database struct {
	Postgres *gorm.DB
	Mongo    *mongo.Database
	Redis    *redis.Client
}

func InitDB() (*Database, error) {
	// 1. Setup PostgreSQL
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Jakarta",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	pgDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("gagal koneksi ke postgres: %v", err)
	}

	// Auto Migrate
	log.Println("Menjalankan migrasi database PostgreSQL...")
	err = pgDB.AutoMigrate(
		&model.Complaint{},
		&model.Department{},
		&model.AdminProfile{},
		&model.UserRole{},
		&model.SipebaruUser{},
		&model.TicketCounter{},
	)
	if err != nil {
		return nil, fmt.Errorf("gagal migrasi database: %v", err)
	}

	// 2. Setup MongoDB (riwayat status komplain + agregasi laporan)
	mongoURI := os.Getenv("MONGO_URI")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(mongoURI)
	mongoClient, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("gagal koneksi ke mongo: %v", err)
	}

	err = mongoClient.Ping(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("gagal ping mongo: %v", err)
	}

	mongoDBName := os.Getenv("MONGO_DB_NAME")
	mongoDatabase := mongoClient.Database(mongoDBName)

	// 3. Setup Redis (sesi pegawai SIPebaru)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("gagal ping redis: %v", err)
	}

	log.Println("Berhasil terhubung ke PostgreSQL, MongoDB, dan Redis!")

	return &Database{
		Postgres: pgDB,
		Mongo:    mongoDatabase,
		Redis:    redisClient,
	}, nil
}
