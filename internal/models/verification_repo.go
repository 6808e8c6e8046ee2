package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	VerificationsColName = "email_verifications"
	AdminConfigColName   = "admin_config"
)

type VerificationRepo interface {
	UpsertVerification(ctx context.Context, email, otp string, expiresAt time.Time) error
	GetActiveVerification(ctx context.Context, email string) (*EmailVerification, error)
	ConsumeVerification(ctx context.Context, id primitive.ObjectID) error
}

// UpsertVerification replaces any outstanding code for the email; requesting
// a new code invalidates the previous one.
func (mdb *MongodbRepo) UpsertVerification(ctx context.Context, email, otp string, expiresAt time.Time) error {
	col := mdb.GetCollection(VerificationsColName)
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"otp":        otp,
			"expires_at": expiresAt,
			"verified":   false,
		},
		"$setOnInsert": bson.M{
			"email":      email,
			"created_at": now,
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := col.UpdateOne(ctx, bson.M{"email": email}, update, opts)
	return err
}

// GetActiveVerification returns the unconsumed record for the email, if any.
// Expiry is checked by the caller against ExpiresAt; the TTL index eventually
// purges the document but its sweep granularity is too coarse to rely on.
func (mdb *MongodbRepo) GetActiveVerification(ctx context.Context, email string) (*EmailVerification, error) {
	col := mdb.GetCollection(VerificationsColName)
	var record EmailVerification
	if err := col.FindOne(ctx, bson.M{"email": email, "verified": false}).Decode(&record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (mdb *MongodbRepo) ConsumeVerification(ctx context.Context, id primitive.ObjectID) error {
	col := mdb.GetCollection(VerificationsColName)
	_, err := col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"verified": true}})
	return err
}

type AdminConfigRepo interface {
	GetConfigValue(ctx context.Context, key string) (*AdminConfig, error)
	SetConfigValue(ctx context.Context, key string, value interface{}) (*AdminConfig, error)
}

func (mdb *MongodbRepo) GetConfigValue(ctx context.Context, key string) (*AdminConfig, error) {
	col := mdb.GetCollection(AdminConfigColName)
	var cfg AdminConfig
	if err := col.FindOne(ctx, bson.M{"key": key}).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (mdb *MongodbRepo) SetConfigValue(ctx context.Context, key string, value interface{}) (*AdminConfig, error) {
	col := mdb.GetCollection(AdminConfigColName)
	update := bson.M{
		"$set":         bson.M{"value": value, "updated_at": time.Now()},
		"$setOnInsert": bson.M{"key": key},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var cfg AdminConfig
	if err := col.FindOneAndUpdate(ctx, bson.M{"key": key}, update, opts).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
