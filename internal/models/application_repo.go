package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ApplicationsColName = "applications"

type ApplicationRepo interface {
	CreateApplication(ctx context.Context, app *Application) (*Application, error)
	GetApplicationByID(ctx context.Context, id primitive.ObjectID) (*Application, error)
	ListApplicationsByJob(ctx context.Context, jobID primitive.ObjectID) ([]*Application, error)
	ListApplicationsByDeveloper(ctx context.Context, developerID primitive.ObjectID) ([]*Application, error)
	SetApplicationStatus(ctx context.Context, id primitive.ObjectID, from, to string) error
}

func (mdb *MongodbRepo) CreateApplication(ctx context.Context, app *Application) (*Application, error) {
	app.BeforeCreate()
	col := mdb.GetCollection(ApplicationsColName)
	if _, err := col.InsertOne(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (mdb *MongodbRepo) GetApplicationByID(ctx context.Context, id primitive.ObjectID) (*Application, error) {
	col := mdb.GetCollection(ApplicationsColName)
	var app Application
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (mdb *MongodbRepo) ListApplicationsByJob(ctx context.Context, jobID primitive.ObjectID) ([]*Application, error) {
	return mdb.findApplications(ctx, bson.M{"job_id": jobID})
}

func (mdb *MongodbRepo) ListApplicationsByDeveloper(ctx context.Context, developerID primitive.ObjectID) ([]*Application, error) {
	return mdb.findApplications(ctx, bson.M{"developer_id": developerID})
}

func (mdb *MongodbRepo) findApplications(ctx context.Context, query bson.M) ([]*Application, error) {
	col := mdb.GetCollection(ApplicationsColName)
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find applications: %v", err)
	}
	defer cursor.Close(ctx)

	var apps []*Application
	for cursor.Next(ctx) {
		var app Application
		if err := cursor.Decode(&app); err != nil {
			return nil, fmt.Errorf("failed to decode application: %v", err)
		}
		apps = append(apps, &app)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return apps, nil
}

// SetApplicationStatus is a compare-and-set: the update filters on the status
// the caller observed, so a concurrent transition makes the write match
// nothing instead of overwriting it.
func (mdb *MongodbRepo) SetApplicationStatus(ctx context.Context, id primitive.ObjectID, from, to string) error {
	col := mdb.GetCollection(ApplicationsColName)
	res, err := col.UpdateOne(ctx, bson.M{"_id": id, "status": from}, bson.M{
		"$set": bson.M{"status": to, "updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
