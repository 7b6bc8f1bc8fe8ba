package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"start",
			"end",
			"item_id",
			"booker_id",
			"owner_id",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"start": bson.M{
				"bsonType": "date",
			},

			"end": bson.M{
				"bsonType": "date",
			},

			"item_id":   objectIDString,
			"booker_id": objectIDString,
			"owner_id":  objectIDString,

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"WAITING",
					"APPROVED",
					"REJECTED",
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
