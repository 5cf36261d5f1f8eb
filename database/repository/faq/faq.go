package faqRepo

import (
	"context"

	"concierge/database"
	"concierge/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// FAQRepository reads the hotel knowledge base. Entries are seeded externally
// and never mutated by this service.
type FAQRepository interface {
	// FindByKeywords returns every FAQ whose keyword set intersects the given
	// keywords, in stored order.
	FindByKeywords(ctx context.Context, keywords []string) ([]models.FAQ, error)
}

type mongoFAQRepo struct {
	coll *mongo.Collection
}

// NewMongoFAQRepo returns a FAQRepository backed by MongoDB.
func NewMongoFAQRepo() FAQRepository {
	return &mongoFAQRepo{
		coll: database.DB().Collection("hotel_faqs"),
	}
}

func (r *mongoFAQRepo) FindByKeywords(ctx context.Context, keywords []string) ([]models.FAQ, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"keywords": bson.M{"$in": keywords}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var faqs []models.FAQ
	if err := cursor.All(ctx, &faqs); err != nil {
		return nil, err
	}
	return faqs, nil
}
