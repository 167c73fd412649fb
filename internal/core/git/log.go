package git

import (
	"strings"
)

const (
	// LogFormat is the pretty format requested from git log. Nine fields,
	// separated by fieldSeparator, one commit per line.
	LogFormat = "%H|%T|%an|%ae|%ad|%cn|%ce|%cd|%s"

	// DateFormat is the --date mode used for both author and committer dates.
	DateFormat = "iso"

	fieldSeparator = "|"
	logFieldCount  = 9
)

// Signature identifies an author or committer.
type Signature struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Commit is one line of formatted git log output.
type Commit struct {
	ID            string    `json:"id"`
	Tree          string    `json:"tree"`
	Author        Signature `json:"author"`
	AuthoredDate  string    `json:"authored_date"`
	Committer     Signature `json:"committer"`
	CommittedDate string    `json:"committed_date"`
	// Message is the subject line only.
	Message string `json:"message"`
}

// logArgs returns the log arguments that make git emit LogFormat lines.
func logArgs() string {
	return "--date=" + DateFormat + ` --format=format:"` + LogFormat + `"`
}

// ParseLog converts LogFormat output into commits, preserving order.
//
// Every line yields a commit, so empty input yields a single commit with all
// fields empty. Callers wanting "no commits" must check the raw output first.
// Subjects containing the separator keep the remainder of the line.
func ParseLog(raw string) []Commit {
	lines := strings.Split(raw, "\n")
	commits := make([]Commit, 0, len(lines))

	for _, line := range lines {
		fields := strings.SplitN(line, fieldSeparator, logFieldCount)
		for len(fields) < logFieldCount {
			fields = append(fields, "")
		}

		commits = append(commits, Commit{
			ID:   fields[0],
			Tree: fields[1],
			Author: Signature{
				Name:  fields[2],
				Email: fields[3],
			},
			AuthoredDate: fields[4],
			Committer: Signature{
				Name:  fields[5],
				Email: fields[6],
			},
			CommittedDate: fields[7],
			Message:       fields[8],
		})
	}

	return commits
}
