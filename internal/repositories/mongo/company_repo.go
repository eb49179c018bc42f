package mongo

import (
	"context"
	"errors"

	"github.com/yoockh/orbitmatch/internal/models"
	"github.com/yoockh/orbitmatch/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (*models.CompanyMatchProfile, error)
}

type companyRepo struct {
	col *mongo.Collection
}

func NewCompanyRepo(db *mongo.Database) CompanyRepository {
	return &companyRepo{col: db.Collection(CollCompanies)}
}

func (r *companyRepo) GetByID(ctx context.Context, id string) (*models.CompanyMatchProfile, error) {
	var c models.CompanyMatchProfile
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
