package models

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ContractsColName = "contracts"
	EscrowColName    = "escrow_transactions"
)

type ContractRepo interface {
	CreateContract(ctx context.Context, contract *Contract) (*Contract, error)
	GetContractByID(ctx context.Context, id primitive.ObjectID) (*Contract, error)
	ListContractsByParty(ctx context.Context, userID primitive.ObjectID) ([]*Contract, error)
	ListEscrowByContract(ctx context.Context, contractID primitive.ObjectID) ([]*EscrowTransaction, error)
}

func (mdb *MongodbRepo) CreateContract(ctx context.Context, contract *Contract) (*Contract, error) {
	contract.BeforeCreate()
	col := mdb.GetCollection(ContractsColName)
	if _, err := col.InsertOne(ctx, contract); err != nil {
		return nil, err
	}
	return contract, nil
}

func (mdb *MongodbRepo) GetContractByID(ctx context.Context, id primitive.ObjectID) (*Contract, error) {
	col := mdb.GetCollection(ContractsColName)
	var contract Contract
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&contract); err != nil {
		return nil, err
	}
	return &contract, nil
}

func (mdb *MongodbRepo) ListContractsByParty(ctx context.Context, userID primitive.ObjectID) ([]*Contract, error) {
	col := mdb.GetCollection(ContractsColName)
	query := bson.M{"$or": []bson.M{
		{"employer_id": userID},
		{"developer_id": userID},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find contracts: %v", err)
	}
	defer cursor.Close(ctx)

	var contracts []*Contract
	for cursor.Next(ctx) {
		var contract Contract
		if err := cursor.Decode(&contract); err != nil {
			return nil, fmt.Errorf("failed to decode contract: %v", err)
		}
		contracts = append(contracts, &contract)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return contracts, nil
}

func (mdb *MongodbRepo) ListEscrowByContract(ctx context.Context, contractID primitive.ObjectID) ([]*EscrowTransaction, error) {
	col := mdb.GetCollection(EscrowColName)
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := col.Find(ctx, bson.M{"contract_id": contractID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find escrow transactions: %v", err)
	}
	defer cursor.Close(ctx)

	var txs []*EscrowTransaction
	for cursor.Next(ctx) {
		var tx EscrowTransaction
		if err := cursor.Decode(&tx); err != nil {
			return nil, fmt.Errorf("failed to decode escrow transaction: %v", err)
		}
		txs = append(txs, &tx)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return txs, nil
}
