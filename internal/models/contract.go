package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ContractStatusActive    = "active"
	ContractStatusCompleted = "completed"
	ContractStatusCancelled = "cancelled"

	MilestoneStatusPending  = "pending"
	MilestoneStatusFunded   = "funded"
	MilestoneStatusReleased = "released"

	EscrowTypeFund       = "fund"
	EscrowTypeRelease    = "release"
	EscrowTypeRefund     = "refund"
	EscrowTypeCommission = "commission"

	EscrowStatusPending   = "pending"
	EscrowStatusCompleted = "completed"
	EscrowStatusFailed    = "failed"
)

// Milestone is a discrete, separately payable unit of work within a Contract.
type Milestone struct {
	ID     primitive.ObjectID `bson:"id" json:"id"`
	Title  string             `bson:"title" json:"title" validate:"required"`
	Amount float64            `bson:"amount" json:"amount" validate:"required,gt=0"`
	Status string             `bson:"status" json:"status"`
}

// Contract is the aggregate root for EscrowTransaction and Review.
type Contract struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	JobID         primitive.ObjectID `bson:"job_id" json:"job_id"`
	ApplicationID primitive.ObjectID `bson:"application_id" json:"application_id"`
	EmployerID    primitive.ObjectID `bson:"employer_id" json:"employer_id"`
	DeveloperID   primitive.ObjectID `bson:"developer_id" json:"developer_id"`
	Milestones    []Milestone        `bson:"milestones" json:"milestones"`
	TotalAmount   float64            `bson:"total_amount" json:"total_amount"`
	Status        string             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

func (c *Contract) BeforeCreate() {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Status == "" {
		c.Status = ContractStatusActive
	}
	total := 0.0
	for i := range c.Milestones {
		if c.Milestones[i].ID.IsZero() {
			c.Milestones[i].ID = primitive.NewObjectID()
		}
		if c.Milestones[i].Status == "" {
			c.Milestones[i].Status = MilestoneStatusPending
		}
		total += c.Milestones[i].Amount
	}
	c.TotalAmount = total
}

func (c *Contract) IsParty(userID primitive.ObjectID) bool {
	return c.EmployerID == userID || c.DeveloperID == userID
}

// EscrowTransaction is one ledger entry in the escrow subsystem. Entries start
// pending and must transition to completed or failed atomically with the
// external money movement, which does not exist yet; no code path in this
// repository ever writes a completed entry.
type EscrowTransaction struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	ContractID  primitive.ObjectID     `bson:"contract_id" json:"contract_id"`
	MilestoneID primitive.ObjectID     `bson:"milestone_id,omitempty" json:"milestone_id,omitempty"`
	Type        string                 `bson:"type" json:"type" validate:"required,oneof=fund release refund commission"`
	Amount      float64                `bson:"amount" json:"amount" validate:"required,gt=0"`
	Status      string                 `bson:"status" json:"status"`
	Metadata    map[string]interface{} `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt   time.Time              `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time              `bson:"updated_at" json:"updated_at"`
}

func (t *EscrowTransaction) BeforeCreate() {
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = EscrowStatusPending
	}
}
