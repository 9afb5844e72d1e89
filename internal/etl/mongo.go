package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/BartekS5/gdpetl/pkg/logger"
	"github.com/BartekS5/gdpetl/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoLoader mirrors the table into a collection, one document per
// country, upserted on the country name.
type MongoLoader struct {
	Client     *mongo.Client
	Database   string
	Collection string
	RunID      string
}

func NewMongoLoader(client *mongo.Client, database, collection, runID string) *MongoLoader {
	return &MongoLoader{
		Client:     client,
		Database:   database,
		Collection: collection,
		RunID:      runID,
	}
}

func (m *MongoLoader) Load(ctx context.Context, table *models.Table) error {
	if err := loadValidator.ValidateTable(table); err != nil {
		return err
	}

	writes := m.writeModels(table, time.Now().UTC())
	if len(writes) == 0 {
		return nil
	}

	coll := m.Client.Database(m.Database).Collection(m.Collection)
	writeCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	res, err := coll.BulkWrite(writeCtx, writes)
	if err != nil {
		return fmt.Errorf("mongo bulk write: %w", err)
	}
	logger.Infof("Mongo BulkWrite: Match %d, Mod %d, Upsert %d", res.MatchedCount, res.ModifiedCount, res.UpsertedCount)
	return nil
}

func (m *MongoLoader) writeModels(table *models.Table, loadedAt time.Time) []mongo.WriteModel {
	writes := make([]mongo.WriteModel, 0, table.Len())
	for i, rec := range table.Records {
		filter := bson.M{"country": rec.Country}
		update := bson.M{"$set": bson.M{
			"country":          rec.Country,
			"gdp_usd_billions": rec.GDP,
			"rank":             i + 1,
			"run_id":           m.RunID,
			"loaded_at":        loadedAt,
		}}
		writes = append(writes, mongo.NewUpdateOneModel().SetFilter(filter).SetUpdate(update).SetUpsert(true))
	}
	return writes
}
