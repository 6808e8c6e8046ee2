package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	DevelopersColName = "developers"
	EmployersColName  = "employers"
)

type ProfileRepo interface {
	CreateDeveloper(ctx context.Context, dev *Developer) (*Developer, error)
	CreateEmployer(ctx context.Context, emp *Employer) (*Employer, error)
	GetDeveloperByUserID(ctx context.Context, userID primitive.ObjectID) (*Developer, error)
	GetEmployerByUserID(ctx context.Context, userID primitive.ObjectID) (*Employer, error)
	UpdateDeveloper(ctx context.Context, userID primitive.ObjectID, fields map[string]interface{}) (*Developer, error)
	UpdateEmployer(ctx context.Context, userID primitive.ObjectID, fields map[string]interface{}) (*Employer, error)
	SetDeveloperRating(ctx context.Context, userID primitive.ObjectID, ratingAvg float64) error
}

func (mdb *MongodbRepo) CreateDeveloper(ctx context.Context, dev *Developer) (*Developer, error) {
	dev.BeforeCreate()
	col := mdb.GetCollection(DevelopersColName)
	if _, err := col.InsertOne(ctx, dev); err != nil {
		return nil, err
	}
	return dev, nil
}

func (mdb *MongodbRepo) CreateEmployer(ctx context.Context, emp *Employer) (*Employer, error) {
	emp.BeforeCreate()
	col := mdb.GetCollection(EmployersColName)
	if _, err := col.InsertOne(ctx, emp); err != nil {
		return nil, err
	}
	return emp, nil
}

func (mdb *MongodbRepo) GetDeveloperByUserID(ctx context.Context, userID primitive.ObjectID) (*Developer, error) {
	col := mdb.GetCollection(DevelopersColName)
	var dev Developer
	if err := col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&dev); err != nil {
		return nil, err
	}
	return &dev, nil
}

func (mdb *MongodbRepo) GetEmployerByUserID(ctx context.Context, userID primitive.ObjectID) (*Employer, error) {
	col := mdb.GetCollection(EmployersColName)
	var emp Employer
	if err := col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&emp); err != nil {
		return nil, err
	}
	return &emp, nil
}

func (mdb *MongodbRepo) UpdateDeveloper(ctx context.Context, userID primitive.ObjectID, fields map[string]interface{}) (*Developer, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}
	delete(fields, "user_id")
	fields["updated_at"] = time.Now()

	col := mdb.GetCollection(DevelopersColName)
	res, err := col.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": fields})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return mdb.GetDeveloperByUserID(ctx, userID)
}

func (mdb *MongodbRepo) UpdateEmployer(ctx context.Context, userID primitive.ObjectID, fields map[string]interface{}) (*Employer, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}
	delete(fields, "user_id")
	fields["updated_at"] = time.Now()

	col := mdb.GetCollection(EmployersColName)
	res, err := col.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": fields})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return mdb.GetEmployerByUserID(ctx, userID)
}

func (mdb *MongodbRepo) SetDeveloperRating(ctx context.Context, userID primitive.ObjectID, ratingAvg float64) error {
	col := mdb.GetCollection(DevelopersColName)
	_, err := col.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{
		"$set": bson.M{"rating_avg": ratingAvg, "updated_at": time.Now()},
	})
	return err
}
