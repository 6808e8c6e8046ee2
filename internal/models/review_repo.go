package models

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ReviewsColName = "reviews"

type ReviewRepo interface {
	CreateReview(ctx context.Context, review *Review) (*Review, error)
	ListReviewsByReviewee(ctx context.Context, revieweeID primitive.ObjectID) ([]*Review, error)
	AverageRatingForReviewee(ctx context.Context, revieweeID primitive.ObjectID) (float64, error)
}

func (mdb *MongodbRepo) CreateReview(ctx context.Context, review *Review) (*Review, error) {
	review.BeforeCreate()
	col := mdb.GetCollection(ReviewsColName)
	if _, err := col.InsertOne(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (mdb *MongodbRepo) ListReviewsByReviewee(ctx context.Context, revieweeID primitive.ObjectID) ([]*Review, error) {
	col := mdb.GetCollection(ReviewsColName)
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := col.Find(ctx, bson.M{"reviewee_id": revieweeID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find reviews: %v", err)
	}
	defer cursor.Close(ctx)

	var reviews []*Review
	for cursor.Next(ctx) {
		var review Review
		if err := cursor.Decode(&review); err != nil {
			return nil, fmt.Errorf("failed to decode review: %v", err)
		}
		reviews = append(reviews, &review)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return reviews, nil
}

func (mdb *MongodbRepo) AverageRatingForReviewee(ctx context.Context, revieweeID primitive.ObjectID) (float64, error) {
	col := mdb.GetCollection(ReviewsColName)

	pipeline := []bson.M{
		{"$match": bson.M{"reviewee_id": revieweeID}},
		{"$group": bson.M{
			"_id": nil,
			"avg": bson.M{"$avg": "$rating"},
		}},
	}

	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate ratings: %v", err)
	}
	defer cursor.Close(ctx)

	var result struct {
		Avg float64 `bson:"avg"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&result); err != nil {
			return 0, fmt.Errorf("failed to decode rating average: %v", err)
		}
	}
	if err := cursor.Err(); err != nil {
		return 0, fmt.Errorf("cursor error: %v", err)
	}

	return result.Avg, nil
}
