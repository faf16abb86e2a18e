package dataaccess

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB is the Mongo client. This is a connection pool.
var MongoDB *mongo.Client

const (
	mongoDatabase = "helpdesk"

	guildsCollection = "guilds"

	ticketsCollection = "tickets"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")
