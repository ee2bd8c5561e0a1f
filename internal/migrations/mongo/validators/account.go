package validators

import "go.mongodb.org/mongo-driver/bson"

var emailProperty = bson.M{
	"bsonType":  "string",
	"maxLength": 254,
	"pattern":   `^[^@\s]+@[^@\s]+$`,
}

var StudentValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"name", "email", "created_at"},
		"additionalProperties": true,

		"properties": bson.M{
			"_id":           bson.M{"bsonType": "objectId"},
			"name":          bson.M{"bsonType": "string", "minLength": 1, "maxLength": 100},
			"email":         emailProperty,
			"password_hash": bson.M{"bsonType": "string"},
			"created_at":    bson.M{"bsonType": "date"},
		},
	},
}

var TeacherValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"name", "subject", "price", "slots", "created_at"},
		"additionalProperties": true,

		"properties": bson.M{
			"_id":           bson.M{"bsonType": "objectId"},
			"name":          bson.M{"bsonType": "string", "minLength": 1, "maxLength": 100},
			"email":         emailProperty,
			"password_hash": bson.M{"bsonType": "string"},
			"subject":       bson.M{"bsonType": "string", "minLength": 1, "maxLength": 100},
			"bio":           bson.M{"bsonType": "string", "maxLength": 2000},
			"image_url":     bson.M{"bsonType": "string", "maxLength": 2048},

			"price": bson.M{
				"bsonType": []string{"double", "int", "long", "decimal"},
				"minimum":  0,
			},

			"slots": bson.M{
				"bsonType":    []string{"array", "null"},
				"maxItems":    96,
				"uniqueItems": true,
				"items": bson.M{
					"bsonType":  "string",
					"minLength": 1,
					"maxLength": 32,
				},
			},

			"created_at": bson.M{"bsonType": "date"},
		},
	},
}

var AdminValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"email", "password_hash", "created_at"},
		"additionalProperties": true,

		"properties": bson.M{
			"_id":           bson.M{"bsonType": "objectId"},
			"name":          bson.M{"bsonType": "string", "maxLength": 100},
			"email":         emailProperty,
			"password_hash": bson.M{"bsonType": "string", "minLength": 1},
			"created_at":    bson.M{"bsonType": "date"},
		},
	},
}
