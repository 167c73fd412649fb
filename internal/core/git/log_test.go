package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLog(t *testing.T) {
	t.Run("single line", func(t *testing.T) {
		commits := ParseLog("h1|t1|an1|ae1|ad1|cn1|ce1|cd1|msg one")

		require.Len(t, commits, 1)
		assert.Equal(t, Commit{
			ID:            "h1",
			Tree:          "t1",
			Author:        Signature{Name: "an1", Email: "ae1"},
			AuthoredDate:  "ad1",
			Committer:     Signature{Name: "cn1", Email: "ce1"},
			CommittedDate: "cd1",
			Message:       "msg one",
		}, commits[0])
	})

	t.Run("preserves order", func(t *testing.T) {
		raw := "c2|t2|Ann|ann@example.com|2024-01-02 10:00:00 +0000|Bob|bob@example.com|2024-01-02 10:00:00 +0000|Second\n" +
			"c1|t1|Ann|ann@example.com|2024-01-01 10:00:00 +0000|Ann|ann@example.com|2024-01-01 10:00:00 +0000|First"

		commits := ParseLog(raw)

		require.Len(t, commits, 2)
		assert.Equal(t, "c2", commits[0].ID)
		assert.Equal(t, "Second", commits[0].Message)
		assert.Equal(t, "Bob", commits[0].Committer.Name)
		assert.Equal(t, "2024-01-02 10:00:00 +0000", commits[0].AuthoredDate)
		assert.Equal(t, "c1", commits[1].ID)
		assert.Equal(t, "First", commits[1].Message)
	})

	t.Run("empty input yields one empty commit", func(t *testing.T) {
		commits := ParseLog("")

		require.Len(t, commits, 1)
		assert.Equal(t, Commit{}, commits[0])
	})

	t.Run("short line pads missing fields", func(t *testing.T) {
		commits := ParseLog("h1|t1|an1")

		require.Len(t, commits, 1)
		assert.Equal(t, "an1", commits[0].Author.Name)
		assert.Empty(t, commits[0].Author.Email)
		assert.Empty(t, commits[0].Message)
	})

	t.Run("separator in subject stays in message", func(t *testing.T) {
		commits := ParseLog("h|t|a|e|d|c|m|cd|fix a|b parsing")

		require.Len(t, commits, 1)
		assert.Equal(t, "fix a|b parsing", commits[0].Message)
	})

	t.Run("no field validation", func(t *testing.T) {
		commits := ParseLog("not-a-hash|||||||not-a-date|")

		require.Len(t, commits, 1)
		assert.Equal(t, "not-a-hash", commits[0].ID)
		assert.Equal(t, "not-a-date", commits[0].CommittedDate)
	})
}

func TestLogArgs(t *testing.T) {
	assert.Equal(t, `--date=iso --format=format:"%H|%T|%an|%ae|%ad|%cn|%ce|%cd|%s"`, logArgs())
}
