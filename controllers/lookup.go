package controllers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	config "github.com/fundspark/fundspark-go/config"
	models "github.com/fundspark/fundspark-go/models"
)

// userRefs batch-loads slim identities for reference expansion. Expansion is
// an explicit projection here, never a lazy load.
func userRefs(ctx context.Context, cfg *config.Config, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserRef, error) {
	refs := make(map[primitive.ObjectID]models.UserRef, len(ids))
	if len(ids) == 0 {
		return refs, nil
	}

	cursor, err := cfg.MongoClient.Database(cfg.DBName).
		Collection("users").
		Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
			options.Find().SetProjection(bson.M{"username": 1, "email": 1, "avatar": 1}))
	if err != nil {
		return nil, err
	}

	var users []models.UserRef
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	for _, u := range users {
		refs[u.ID] = u
	}
	return refs, nil
}

// attachCreators fills CreatorInfo and the derived progress on a page of
// campaigns.
func attachCreators(ctx context.Context, cfg *config.Config, campaigns []models.Campaign) error {
	ids := make([]primitive.ObjectID, 0, len(campaigns))
	seen := make(map[primitive.ObjectID]bool)
	for _, cmp := range campaigns {
		if !seen[cmp.Creator] {
			seen[cmp.Creator] = true
			ids = append(ids, cmp.Creator)
		}
	}

	refs, err := userRefs(ctx, cfg, ids)
	if err != nil {
		return err
	}

	for i := range campaigns {
		campaigns[i].ProgressPercentage = campaigns[i].Progress()
		if ref, ok := refs[campaigns[i].Creator]; ok {
			r := ref
			campaigns[i].CreatorInfo = &r
		}
	}
	return nil
}
