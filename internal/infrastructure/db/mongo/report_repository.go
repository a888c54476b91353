package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adpilot/agency-portal/internal/core/domain"
)

const collectionReports = "reports"

type ReportRepository struct {
	col *mongo.Collection
}

func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{col: db.Collection(collectionReports)}
}

type reportDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	ClientID   string             `bson:"client_id"`
	Date       string             `bson:"date"`
	Topup      *float64           `bson:"topup,omitempty"`
	Spend      *float64           `bson:"spend,omitempty"`
	Click      *float64           `bson:"click,omitempty"`
	Impression *float64           `bson:"impression,omitempty"`
	Status     string             `bson:"status,omitempty"`
	Notes      string             `bson:"notes,omitempty"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (d *reportDoc) toDomain() *domain.Report {
	return &domain.Report{
		ID:         d.ID.Hex(),
		ClientID:   d.ClientID,
		Date:       d.Date,
		Topup:      d.Topup,
		Spend:      d.Spend,
		Click:      d.Click,
		Impression: d.Impression,
		Status:     d.Status,
		Notes:      d.Notes,
		CreatedAt:  d.CreatedAt.UTC(),
	}
}

func (r *ReportRepository) Create(ctx context.Context, report *domain.Report) (*domain.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	d := reportDoc{
		ClientID:   report.ClientID,
		Date:       report.Date,
		Topup:      report.Topup,
		Spend:      report.Spend,
		Click:      report.Click,
		Impression: report.Impression,
		Status:     report.Status,
		Notes:      report.Notes,
		CreatedAt:  report.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, d)
	if err != nil {
		return nil, err
	}

	d.ID = res.InsertedID.(primitive.ObjectID)
	return d.toDomain(), nil
}

func (r *ReportRepository) ListByClient(ctx context.Context, clientID string) ([]domain.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: -1},
		{Key: "created_at", Value: -1},
	})
	cur, err := r.col.Find(ctx, bson.M{"client_id": clientID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]domain.Report, 0)
	for cur.Next(ctx) {
		var d reportDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, *d.toDomain())
	}
	return out, cur.Err()
}

// EnsureIndexes creates the client/date index used by ListByClient.
func (r *ReportRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "client_id", Value: 1},
			{Key: "date", Value: -1},
		},
	})
	return err
}
