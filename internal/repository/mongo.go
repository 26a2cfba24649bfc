package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const mongoOpTimeout = 5 * time.Second

// MongoRepo is a MongoDB-backed implementation of AuctionDB
type MongoRepo struct {
	client  *mongo.Client
	teams   *mongo.Collection
	players *mongo.Collection
	bids    *mongo.Collection
}

// NewMongoRepo connects to MongoDB and prepares the auction collections
func NewMongoRepo(ctx context.Context, uri, database string) (*MongoRepo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(database)
	repo := &MongoRepo{
		client:  client,
		teams:   db.Collection("teams"),
		players: db.Collection("players"),
		bids:    db.Collection("bids"),
	}

	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "player_id", Value: 1}, {Key: "seq", Value: 1}},
	}
	if _, err := repo.bids.Indexes().CreateOne(ctx, indexModel); err != nil {
		return nil, fmt.Errorf("create bids index: %w", err)
	}
	return repo, nil
}

// Close disconnects the underlying client
func (r *MongoRepo) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

// ListTeams returns all teams ordered by ID
func (r *MongoRepo) ListTeams() ([]model.Team, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	cur, err := r.teams.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	var teams []model.Team
	if err := cur.All(ctx, &teams); err != nil {
		return nil, fmt.Errorf("decode teams: %w", err)
	}
	return teams, nil
}

// ListPlayers returns all players ordered by lot number
func (r *MongoRepo) ListPlayers() ([]model.Player, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	cur, err := r.players.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "lot_number", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	var players []model.Player
	if err := cur.All(ctx, &players); err != nil {
		return nil, fmt.Errorf("decode players: %w", err)
	}
	return players, nil
}

// SaveTeam replaces an existing team document
func (r *MongoRepo) SaveTeam(team model.Team) error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	res, err := r.teams.ReplaceOne(ctx, bson.M{"_id": team.TeamID}, team)
	if err != nil {
		return fmt.Errorf("save team %s: %w", team.TeamID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("save team %s: %w", team.TeamID, auctionerrors.ErrTeamNotFound)
	}
	return nil
}

// SavePlayer replaces an existing player document
func (r *MongoRepo) SavePlayer(player model.Player) error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	res, err := r.players.ReplaceOne(ctx, bson.M{"_id": player.PlayerID}, player)
	if err != nil {
		return fmt.Errorf("save player %s: %w", player.PlayerID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("save player %s: %w", player.PlayerID, auctionerrors.ErrPlayerNotFound)
	}
	return nil
}

// RecordBid inserts a bid into the ledger collection
func (r *MongoRepo) RecordBid(bid model.Bid) error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	if _, err := r.bids.InsertOne(ctx, bid); err != nil {
		return fmt.Errorf("record bid for player %s: %w", bid.PlayerID, err)
	}
	return nil
}

// DeleteBid removes one bid from the ledger collection
func (r *MongoRepo) DeleteBid(playerID, bidID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	res, err := r.bids.DeleteOne(ctx, bson.M{"_id": bidID, "player_id": playerID})
	if err != nil {
		return fmt.Errorf("delete bid %s: %w", bidID, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete bid %s for player %s: %w", bidID, playerID, auctionerrors.ErrNoBids)
	}
	return nil
}

// GetBidsByPlayer returns a player's ledger ordered by bid sequence
func (r *MongoRepo) GetBidsByPlayer(playerID string) ([]model.Bid, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	cur, err := r.bids.Find(ctx, bson.M{"player_id": playerID}, options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("get bids for player %s: %w", playerID, err)
	}
	var bids []model.Bid
	if err := cur.All(ctx, &bids); err != nil {
		return nil, fmt.Errorf("decode bids for player %s: %w", playerID, err)
	}
	if len(bids) == 0 {
		return nil, fmt.Errorf("get bids for player %s: %w", playerID, auctionerrors.ErrNoBids)
	}
	return bids, nil
}

// ClearBids drops the ledger of one player, or of every player when playerID is empty
func (r *MongoRepo) ClearBids(playerID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	filter := bson.M{}
	if playerID != "" {
		filter = bson.M{"player_id": playerID}
	}
	if _, err := r.bids.DeleteMany(ctx, filter); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("clear bids: %w", err)
	}
	return nil
}

// Seed inserts the catalog when the collections are empty
func (r *MongoRepo) Seed(ctx context.Context, teams []model.Team, players []model.Player) error {
	count, err := r.teams.CountDocuments(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("count teams: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, t := range teams {
		if _, err := r.teams.InsertOne(ctx, t); err != nil {
			return fmt.Errorf("seed team %s: %w", t.TeamID, err)
		}
	}
	for _, p := range players {
		if _, err := r.players.InsertOne(ctx, p); err != nil {
			return fmt.Errorf("seed player %s: %w", p.PlayerID, err)
		}
	}
	return nil
}
