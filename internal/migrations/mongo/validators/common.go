package validators

import "go.mongodb.org/mongo-driver/bson"

// objectIDString is a reference to another document stored as its hex id.
var objectIDString = bson.M{
	"bsonType":  "string",
	"minLength": 24,
	"maxLength": 24,
}
