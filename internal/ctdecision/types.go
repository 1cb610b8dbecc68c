package ctdecision

import (
	"fmt"
	"strings"
)

// Answer is the reply to a question.
type Answer int

// Answers.
const (
	Unanswered Answer = iota
	No
	Yes
)

var answerNames = map[Answer]string{
	Unanswered: "unanswered",
	No:         "no",
	Yes:        "yes",
}

func (a Answer) String() string {
	if name, ok := answerNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Answer(%d)", int(a))
}

// ParseAnswer accepts yes/no in English or Finnish, y/n, true/false and an
// empty string for an unanswered question.
func ParseAnswer(s string) (Answer, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "-", "unanswered":
		return Unanswered, nil
	case "no", "n", "false", "ei":
		return No, nil
	case "yes", "y", "true", "kyllä", "kylla":
		return Yes, nil
	default:
		return Unanswered, fmt.Errorf("%w: %q", ErrInvalidAnswer, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a Answer) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Answer) UnmarshalText(text []byte) error {
	parsed, err := ParseAnswer(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Outcome is the recommendation reached at a leaf of the tree.
type Outcome int

// Outcomes. Pending means more answers are needed.
const (
	Pending Outcome = iota
	UrgentCT
	Within8Hours
	DiscretionaryCT
	NoCTNeeded
)

type outcomeInfo struct {
	name           string
	color          string
	recommendation string
}

var outcomes = map[Outcome]outcomeInfo{
	Pending:         {"pending", "", "More answers are needed"},
	UrgentCT:        {"urgent-ct", "red", "Perform a head CT within 1 hour of assessment"},
	Within8Hours:    {"ct-within-8-hours", "orange", "Perform a head CT within 8 hours of the injury"},
	DiscretionaryCT: {"discretionary-ct", "goldenrod", "Consider a head CT at clinical discretion"},
	NoCTNeeded:      {"no-ct-needed", "green", "No head CT needed"},
}

func (o Outcome) String() string {
	if info, ok := outcomes[o]; ok {
		return info.name
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Color is the display color tag of the outcome. Pending has none.
func (o Outcome) Color() string {
	return outcomes[o].color
}

// Recommendation is the human-readable recommendation.
func (o Outcome) Recommendation() string {
	return outcomes[o].recommendation
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(text []byte) error {
	for candidate, info := range outcomes {
		if info.name == string(text) {
			*o = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q", string(text))
}
