package roster

import (
	"context"
	"os"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groups/solver"
)

func TestParticipantRow(t *testing.T) {
	p := participantRow{
		userID:   "a",
		gender:   "female",
		wanted:   pq.StringArray{"b", "c"},
		unwanted: pq.StringArray{},
	}
	assert.Equal(t, solver.User{
		ID:       "a",
		Gender:   solver.Female,
		Wanted:   []string{"b", "c"},
		Unwanted: []string{},
	}, p.user())
}

func TestParticipantRow_ScansArray(t *testing.T) {
	var arr pq.StringArray
	require.NoError(t, arr.Scan([]byte(`{b,"c d"}`)))
	p := participantRow{userID: "a", gender: "male", wanted: arr}
	assert.Equal(t, []string{"b", "c d"}, p.user().Wanted)
}

func TestGroupRow_NilMembers(t *testing.T) {
	g := groupRow{groupID: "1"}.group()
	assert.Equal(t, solver.Group{ID: "1", Members: []string{}}, g)
}

func TestSchema(t *testing.T) {
	for _, table := range []string{"rounds", "participants", "round_groups"} {
		assert.Contains(t, Schema, "CREATE TABLE IF NOT EXISTS "+table)
	}
}

// TestLoadRound runs against a scratch database named by GROUPS_TEST_DSN.
func TestLoadRound(t *testing.T) {
	dsn := os.Getenv("GROUPS_TEST_DSN")
	if dsn == "" {
		t.Skip("GROUPS_TEST_DSN not set")
	}
	ctx := context.Background()
	db, err := Open(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.ExecContext(ctx, Schema)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "DELETE FROM rounds WHERE id = 'test-round'")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, "INSERT INTO rounds (id, group_size, desired_wanted_amount) VALUES ('test-round', 2, 0)")
	require.NoError(t, err)
	for i, u := range []solver.User{
		{ID: "b", Gender: solver.Female, Wanted: []string{"a"}, Unwanted: []string{}},
		{ID: "a", Gender: solver.Male, Wanted: []string{}, Unwanted: []string{"b"}},
	} {
		_, err = db.ExecContext(ctx,
			"INSERT INTO participants (round_id, user_id, position, gender, wanted, unwanted) VALUES ('test-round', $1, $2, $3, $4, $5)",
			u.ID, i, string(u.Gender), pq.Array(u.Wanted), pq.Array(u.Unwanted))
		require.NoError(t, err)
	}
	_, err = db.ExecContext(ctx,
		"INSERT INTO round_groups (round_id, group_id, position, members) VALUES ('test-round', 'g1', 0, $1), ('test-round', 'g2', 1, '{}')",
		pq.Array([]string{"a"}))
	require.NoError(t, err)

	ros, err := LoadRound(ctx, db, "test-round")
	require.NoError(t, err)
	assert.Equal(t, 2, ros.GroupSize)
	assert.Equal(t, 0, *ros.DesiredWantedAmount)
	require.Len(t, ros.Users, 2)
	assert.Equal(t, "b", ros.Users[0].ID)
	assert.Equal(t, []string{"b"}, ros.Users[1].Unwanted)
	assert.Equal(t, []solver.Group{{ID: "g1", Members: []string{"a"}}, {ID: "g2", Members: []string{}}}, ros.Groups)

	_, err = LoadRound(ctx, db, "missing-round")
	require.ErrorIs(t, err, ErrRoundNotFound)
}
