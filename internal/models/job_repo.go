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

const JobsColName = "jobs"

type JobRepo interface {
	CreateJob(ctx context.Context, job *Job) (*Job, error)
	GetJobByID(ctx context.Context, id primitive.ObjectID) (*Job, error)
	ListJobs(ctx context.Context, filter JobFilter, offset, limit int) ([]*Job, int, error)
	ListJobsByEmployer(ctx context.Context, employerID primitive.ObjectID, offset, limit int) ([]*Job, int, error)
	UpdateJob(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*Job, error)
	SetJobStatus(ctx context.Context, id primitive.ObjectID, from, to string) error
}

func (mdb *MongodbRepo) CreateJob(ctx context.Context, job *Job) (*Job, error) {
	job.BeforeCreate()
	col := mdb.GetCollection(JobsColName)
	if _, err := col.InsertOne(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (mdb *MongodbRepo) GetJobByID(ctx context.Context, id primitive.ObjectID) (*Job, error) {
	col := mdb.GetCollection(JobsColName)
	var job Job
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (mdb *MongodbRepo) ListJobs(ctx context.Context, filter JobFilter, offset, limit int) ([]*Job, int, error) {
	query := bson.M{}
	if len(filter.Skills) > 0 {
		query["required_skills"] = bson.M{"$all": filter.Skills}
	}
	if filter.ExperienceLevel != "" {
		query["experience_level"] = filter.ExperienceLevel
	}
	if filter.JobType != "" {
		query["job_type"] = filter.JobType
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	return mdb.findJobs(ctx, query, offset, limit)
}

func (mdb *MongodbRepo) ListJobsByEmployer(ctx context.Context, employerID primitive.ObjectID, offset, limit int) ([]*Job, int, error) {
	return mdb.findJobs(ctx, bson.M{"employer_id": employerID}, offset, limit)
}

func (mdb *MongodbRepo) findJobs(ctx context.Context, query bson.M, offset, limit int) ([]*Job, int, error) {
	col := mdb.GetCollection(JobsColName)

	total, err := col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %v", err)
	}

	opts := options.Find().
		SetSkip(int64(offset)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find jobs: %v", err)
	}
	defer cursor.Close(ctx)

	var jobs []*Job
	for cursor.Next(ctx) {
		var job Job
		if err := cursor.Decode(&job); err != nil {
			return nil, 0, fmt.Errorf("failed to decode job: %v", err)
		}
		jobs = append(jobs, &job)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("cursor error: %v", err)
	}

	return jobs, int(total), nil
}

func (mdb *MongodbRepo) UpdateJob(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*Job, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}
	delete(fields, "employer_id")
	delete(fields, "status")
	fields["updated_at"] = time.Now()

	col := mdb.GetCollection(JobsColName)
	res, err := col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return mdb.GetJobByID(ctx, id)
}

// SetJobStatus is a compare-and-set on the observed status; a concurrent
// transition leaves the filter unmatched rather than clobbering the winner.
func (mdb *MongodbRepo) SetJobStatus(ctx context.Context, id primitive.ObjectID, from, to string) error {
	col := mdb.GetCollection(JobsColName)
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
