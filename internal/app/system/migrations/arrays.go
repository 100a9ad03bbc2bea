// Package migrations holds one-shot startup data fixes.
//
// Historically some write paths stored repeatable list fields
// (gallery, requirements, specializations, tags) as JSON-encoded
// strings while others stored native arrays, leaving both encodings at
// rest. The store now writes native arrays only; EnsureNativeArrays
// converts whatever legacy string-encoded values remain so readers
// never have to handle both formats against the database. (The admin
// form layer still parses both defensively, since exports and older
// API payloads can carry the string form.)
package migrations

import (
	"context"
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// listFields maps each collection to its repeatable list fields.
var listFields = map[string][]string{
	"projects":     {"gallery"},
	"team_members": {"specializations"},
	"job_openings": {"requirements", "responsibilities", "benefits"},
	"articles":     {"tags"},
}

// EnsureNativeArrays rewrites any JSON-string list field to a native
// BSON array. Unparseable values become empty arrays rather than
// aborting startup; the bad original is logged so it can be inspected.
func EnsureNativeArrays(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	for coll, fields := range listFields {
		for _, field := range fields {
			if err := fixField(ctx, db.Collection(coll), field, logger); err != nil {
				return err
			}
		}
	}
	return nil
}

func fixField(ctx context.Context, coll *mongo.Collection, field string, logger *zap.Logger) error {
	cur, err := coll.Find(ctx, bson.M{field: bson.M{"$type": "string"}})
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	fixed := 0
	for cur.Next(ctx) {
		var doc struct {
			ID  interface{} `bson:"_id"`
			Raw bson.M      `bson:",inline"`
		}
		if err := cur.Decode(&doc); err != nil {
			return err
		}

		raw, _ := doc.Raw[field].(string)
		var items []string
		if err := json.Unmarshal([]byte(raw), &items); err != nil || items == nil {
			if raw != "" {
				logger.Warn("unparseable legacy list field reset to empty",
					zap.String("collection", coll.Name()),
					zap.String("field", field),
					zap.Any("id", doc.ID),
					zap.String("value", raw))
			}
			items = []string{}
		}

		if _, err := coll.UpdateOne(ctx,
			bson.M{"_id": doc.ID},
			bson.M{"$set": bson.M{field: items}},
		); err != nil {
			return err
		}
		fixed++
	}
	if err := cur.Err(); err != nil {
		return err
	}

	if fixed > 0 {
		logger.Info("migrated legacy string-encoded list field",
			zap.String("collection", coll.Name()),
			zap.String("field", field),
			zap.Int("documents", fixed))
	}
	return nil
}
