package db

import (
	"context"
	"log"
	"receh48/src/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

// GetDb returns the shared connection, opening it from config.GetDSN on
// first use.
func GetDb() *gorm.DB {
	if db != nil {
		return db
	}
	_db, err := gorm.Open(postgres.Open(config.GetDSN()))
	if err != nil {
		log.Printf("Error connecting to database: %s\n", err.Error())
		panic(err)
	}
	sqlDB, err := _db.DB()
	if err != nil {
		log.Fatalf("Error establishing connection to database: %s\n", err.Error())
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	db = _db
	return _db
}

// NewDB replaces the shared connection. Tests use it to swap in sqlite or
// sqlmock before handlers call GetDb.
func NewDB(newdb *gorm.DB) {
	db = newdb
}

// Ping checks the shared connection.
func Ping(ctx context.Context) error {
	sqlDB, err := GetDb().DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
