// Package mongo implements the ledger store on MongoDB. Skip-logs run in
// multi-document transactions, which need a replica set or sharded cluster.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readconcern"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.mongodb.org/mongo-driver/v2/mongo/writeconcern"

	"github.com/skipjar/skipjar/internal/model"
	"github.com/skipjar/skipjar/internal/repository"
)

const (
	colUsers        = "users"
	colHabits       = "habits"
	colGoals        = "goals"
	colTransactions = "skip_transactions"
)

var (
	_ repository.Store    = (*Store)(nil)
	_ repository.LedgerTx = (*Store)(nil)
)

// Store implements repository.Store. Inside RunInTx the session travels in
// the context, so the same methods serve as the transaction view.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens a client for uri and selects database.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("skipjar/mongo: connect: %w", err)
	}

	err = client.Ping(ctx, readpref.Primary())
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("skipjar/mongo: ping: %w", err)
	}

	return New(client, database), nil
}

func New(client *mongo.Client, database string) *Store {
	return &Store{
		client: client,
		db:     client.Database(database),
	}
}

// Migrate creates indexes for all ledger collections.
func (s *Store) Migrate(ctx context.Context) error {
	for col, models := range migrationIndexes() {
		_, err := s.db.Collection(col).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("skipjar/mongo: migrate %s indexes: %w", col, err)
		}
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close() error {
	return s.client.Disconnect(context.Background())
}

// RunInTx runs fn in a session transaction. The driver re-runs fn on
// transient transaction errors, so fn must not keep state across calls.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, tx repository.LedgerTx) error) error {
	sess, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("skipjar/mongo: start session: %w", err)
	}
	defer sess.EndSession(context.Background())

	txnOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	_, err = sess.WithTransaction(ctx, func(ctx context.Context) (any, error) {
		return nil, fn(ctx, s)
	}, txnOpts)
	return err
}

// ==================== Creation ====================

func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	_, err := s.db.Collection(colUsers).InsertOne(ctx, toUserDoc(user))
	if err != nil {
		return fmt.Errorf("skipjar/mongo: create user: %w", err)
	}
	return nil
}

func (s *Store) CreateHabit(ctx context.Context, habit *model.Habit) error {
	doc, err := toHabitDoc(habit)
	if err != nil {
		return err
	}
	_, err = s.db.Collection(colHabits).InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("skipjar/mongo: create habit: %w", err)
	}
	return nil
}

func (s *Store) CreateGoal(ctx context.Context, goal *model.Goal) error {
	doc, err := toGoalDoc(goal)
	if err != nil {
		return err
	}
	_, err = s.db.Collection(colGoals).InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("skipjar/mongo: create goal: %w", err)
	}
	return nil
}

// ==================== Habits ====================

func (s *Store) HabitByID(ctx context.Context, habitID string) (*model.Habit, error) {
	var doc habitDoc
	err := s.db.Collection(colHabits).FindOne(ctx, bson.M{"_id": habitID}).Decode(&doc)
	if err != nil {
		if isNoDocuments(err) {
			return nil, repository.ErrHabitNotFound
		}
		return nil, fmt.Errorf("skipjar/mongo: get habit: %w", err)
	}
	return fromHabitDoc(&doc)
}

// ClaimSkipDay matches on the last-skip day the habit was read with and
// refuses a day already recorded, mirroring the SQL conditional update.
func (s *Store) ClaimSkipDay(ctx context.Context, habit *model.Habit, today model.Date, streak int, now time.Time) error {
	day := today.String()

	previous := bson.A{nil, ""}
	if habit.LastSkippedOn != nil && *habit.LastSkippedOn != "" {
		previous = bson.A{*habit.LastSkippedOn}
	}

	filter := bson.M{
		"_id":             habit.ID,
		"last_skipped_on": bson.M{"$in": previous, "$ne": day},
	}
	update := bson.M{"$set": bson.M{
		"streak":          streak,
		"last_skipped_on": day,
		"updated_at":      now.UTC(),
	}}

	res, err := s.db.Collection(colHabits).UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("skipjar/mongo: claim skip day: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrSkipAlreadyClaimed
	}

	habit.Streak = streak
	habit.LastSkippedOn = &day
	habit.UpdatedAt = now
	return nil
}

// ==================== Goals ====================

func (s *Store) GoalByID(ctx context.Context, ownerID, goalID string) (*model.Goal, error) {
	var doc goalDoc
	err := s.db.Collection(colGoals).FindOne(ctx, bson.M{"_id": goalID, "owner_id": ownerID}).Decode(&doc)
	if err != nil {
		if isNoDocuments(err) {
			return nil, repository.ErrGoalNotFound
		}
		return nil, fmt.Errorf("skipjar/mongo: get goal: %w", err)
	}
	return fromGoalDoc(&doc)
}

func (s *Store) ActiveGoal(ctx context.Context, ownerID string) (*model.Goal, bool, error) {
	var doc goalDoc
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	err := s.db.Collection(colGoals).
		FindOne(ctx, bson.M{"owner_id": ownerID, "status": string(model.GoalStatusActive)}, opts).
		Decode(&doc)
	if err != nil {
		if isNoDocuments(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("skipjar/mongo: get active goal: %w", err)
	}

	goal, err := fromGoalDoc(&doc)
	if err != nil {
		return nil, false, err
	}
	return goal, true, nil
}

func (s *Store) SaveGoalFunding(ctx context.Context, goal *model.Goal, now time.Time) error {
	saved, err := toDecimal128(goal.SavedAmount)
	if err != nil {
		return err
	}

	filter := bson.M{"_id": goal.ID, "version": goal.Version}
	update := bson.M{
		"$set": bson.M{
			"saved_amount": saved,
			"status":       string(goal.Status),
			"updated_at":   now.UTC(),
		},
		"$inc": bson.M{"version": 1},
	}

	res, err := s.db.Collection(colGoals).UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("skipjar/mongo: save goal funding: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrVersionConflict
	}

	goal.Version++
	goal.UpdatedAt = now
	return nil
}

// ==================== Transactions ====================

func (s *Store) AppendTransaction(ctx context.Context, txn *model.Transaction) error {
	doc, err := toTransactionDoc(txn)
	if err != nil {
		return err
	}
	_, err = s.db.Collection(colTransactions).InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("skipjar/mongo: append transaction: %w", err)
	}
	return nil
}

func (s *Store) TransactionsSince(ctx context.Context, since time.Time, limit int) ([]*model.Transaction, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "logged_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(limit))

	cur, err := s.db.Collection(colTransactions).Find(ctx, bson.M{"logged_at": bson.M{"$gte": since.UTC()}}, opts)
	if err != nil {
		return nil, fmt.Errorf("skipjar/mongo: list transactions: %w", err)
	}

	var docs []transactionDoc
	err = cur.All(ctx, &docs)
	if err != nil {
		return nil, fmt.Errorf("skipjar/mongo: decode transactions: %w", err)
	}

	txns := make([]*model.Transaction, len(docs))
	for i := range docs {
		txn, err := fromTransactionDoc(&docs[i])
		if err != nil {
			return nil, err
		}
		txns[i] = txn
	}
	return txns, nil
}

// ==================== Users ====================

func (s *Store) UserByID(ctx context.Context, userID string) (*model.User, error) {
	var doc userDoc
	err := s.db.Collection(colUsers).FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if err != nil {
		if isNoDocuments(err) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("skipjar/mongo: get user: %w", err)
	}
	return fromUserDoc(&doc), nil
}

func (s *Store) SaveUserProgress(ctx context.Context, user *model.User, now time.Time) error {
	filter := bson.M{"_id": user.ID, "version": user.Version}
	update := bson.M{
		"$set": bson.M{
			"xp":             user.XP,
			"level":          user.Level,
			"current_streak": user.CurrentStreak,
			"longest_streak": user.LongestStreak,
			"updated_at":     now.UTC(),
		},
		"$inc": bson.M{"version": 1},
	}

	res, err := s.db.Collection(colUsers).UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("skipjar/mongo: save user progress: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrVersionConflict
	}

	user.Version++
	user.UpdatedAt = now
	return nil
}

func (s *Store) Leaderboard(ctx context.Context, limit int) ([]*model.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "xp", Value: -1}, {Key: "created_at", Value: 1}}).
		SetLimit(int64(limit))

	cur, err := s.db.Collection(colUsers).Find(ctx, bson.M{"is_public": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("skipjar/mongo: leaderboard: %w", err)
	}

	var docs []userDoc
	err = cur.All(ctx, &docs)
	if err != nil {
		return nil, fmt.Errorf("skipjar/mongo: decode leaderboard: %w", err)
	}

	users := make([]*model.User, len(docs))
	for i := range docs {
		users[i] = fromUserDoc(&docs[i])
	}
	return users, nil
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

func migrationIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		colUsers: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetSparse(true),
			},
			{Keys: bson.D{{Key: "is_public", Value: 1}, {Key: "xp", Value: -1}}},
		},
		colHabits: {
			{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "is_active", Value: 1}}},
		},
		colGoals: {
			{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "status", Value: 1}, {Key: "created_at", Value: 1}}},
		},
		colTransactions: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "logged_at", Value: -1}}},
			{Keys: bson.D{{Key: "logged_at", Value: 1}}},
		},
	}
}
