package models

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const AuditColName = "audit_logs"

// AuditRepo is insert-and-list only. There is deliberately no update or
// delete method.
type AuditRepo interface {
	AppendAuditLog(ctx context.Context, entry *AuditLog) error
	ListAuditLogs(ctx context.Context, offset, limit int) ([]*AuditLog, int, error)
}

func (mdb *MongodbRepo) AppendAuditLog(ctx context.Context, entry *AuditLog) error {
	entry.BeforeCreate()
	col := mdb.GetCollection(AuditColName)
	_, err := col.InsertOne(ctx, entry)
	return err
}

func (mdb *MongodbRepo) ListAuditLogs(ctx context.Context, offset, limit int) ([]*AuditLog, int, error) {
	col := mdb.GetCollection(AuditColName)

	total, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %v", err)
	}

	opts := options.Find().
		SetSkip(int64(offset)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find audit logs: %v", err)
	}
	defer cursor.Close(ctx)

	var entries []*AuditLog
	for cursor.Next(ctx) {
		var entry AuditLog
		if err := cursor.Decode(&entry); err != nil {
			return nil, 0, fmt.Errorf("failed to decode audit log: %v", err)
		}
		entries = append(entries, &entry)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("cursor error: %v", err)
	}

	return entries, int(total), nil
}
