package roster

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"groups/solver"
)

// Schema is the table layout LoadRound reads from.
//
//go:embed schema.sql
var Schema string

var ErrRoundNotFound = errors.New("round not found")

type participantRow struct {
	userID   string
	gender   string
	wanted   pq.StringArray
	unwanted pq.StringArray
}

func (p participantRow) user() solver.User {
	return solver.User{
		ID:       p.userID,
		Gender:   solver.Gender(p.gender),
		Wanted:   []string(p.wanted),
		Unwanted: []string(p.unwanted),
	}
}

type groupRow struct {
	groupID string
	members pq.StringArray
}

func (g groupRow) group() solver.Group {
	members := []string(g.members)
	if members == nil {
		members = []string{}
	}
	return solver.Group{ID: g.groupID, Members: members}
}

// LoadRound reads one round. It never writes.
func LoadRound(ctx context.Context, db *sql.DB, round string) (*Roster, error) {
	var (
		ros     Roster
		desired int
	)
	err := db.QueryRowContext(ctx,
		"SELECT group_size, desired_wanted_amount FROM rounds WHERE id = $1", round,
	).Scan(&ros.GroupSize, &desired)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRoundNotFound, round)
	}
	if err != nil {
		return nil, fmt.Errorf("query round: %w", err)
	}
	ros.DesiredWantedAmount = &desired

	rows, err := db.QueryContext(ctx, `
		SELECT user_id, gender, wanted, unwanted
		FROM participants
		WHERE round_id = $1
		ORDER BY position, user_id`, round)
	if err != nil {
		return nil, fmt.Errorf("query participants: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p participantRow
		if err := rows.Scan(&p.userID, &p.gender, &p.wanted, &p.unwanted); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		ros.Users = append(ros.Users, p.user())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read participants: %w", err)
	}

	grows, err := db.QueryContext(ctx, `
		SELECT group_id, members
		FROM round_groups
		WHERE round_id = $1
		ORDER BY position, group_id`, round)
	if err != nil {
		return nil, fmt.Errorf("query groups: %w", err)
	}
	defer grows.Close()
	for grows.Next() {
		var g groupRow
		if err := grows.Scan(&g.groupID, &g.members); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		ros.Groups = append(ros.Groups, g.group())
	}
	if err := grows.Err(); err != nil {
		return nil, fmt.Errorf("read groups: %w", err)
	}

	return &ros, nil
}

// Open connects to Postgres and checks the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}
