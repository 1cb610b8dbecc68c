package ctdecision

import (
	"encoding/json"
	"errors"
	"testing"
)

func repeat(a Answer, n int) []Answer {
	out := make([]Answer, n)
	for i := range out {
		out[i] = a
	}
	return out
}

func TestDefaultTreeIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got := len(Questions()); got != 13 {
		t.Errorf("expected 13 questions, got %d", got)
	}
	if Default().Start() != NodeGCSBelow13 {
		t.Errorf("Start() = %d, expected %d", Default().Start(), NodeGCSBelow13)
	}
}

func TestEvaluate(t *testing.T) {
	noRedFlags := repeat(No, 7)

	tests := []struct {
		name     string
		answers  []Answer
		expected Outcome
		next     NodeID
		pathLen  int
	}{
		{"No answers", nil, Pending, NodeGCSBelow13, 0},
		{"First red flag", []Answer{Yes}, UrgentCT, 0, 1},
		{"Third red flag", []Answer{No, No, Yes}, UrgentCT, 0, 3},
		{"Last red flag", append(repeat(No, 6), Yes), UrgentCT, 0, 7},
		{"Red flag pending", []Answer{No, No}, Pending, NodeOpenSkullFracture, 2},
		{"LOC then age", append(append([]Answer{}, noRedFlags...), Yes, Yes), Within8Hours, 0, 9},
		{"LOC then coagulopathy", append(append([]Answer{}, noRedFlags...), Yes, No, Yes), Within8Hours, 0, 10},
		{"LOC then mechanism", append(append([]Answer{}, noRedFlags...), Yes, No, No, Yes), Within8Hours, 0, 11},
		{"LOC then amnesia", append(append([]Answer{}, noRedFlags...), Yes, No, No, No, Yes), Within8Hours, 0, 12},
		{"LOC with no risk factors", append(append([]Answer{}, noRedFlags...), Yes, No, No, No, No), NoCTNeeded, 0, 12},
		{"No LOC on anticoagulants", append(append([]Answer{}, noRedFlags...), No, Yes), DiscretionaryCT, 0, 9},
		{"All no", repeat(No, 9), NoCTNeeded, 0, 9},
		{"LOC pending", append(append([]Answer{}, noRedFlags...), Yes), Pending, NodeAge65OrOlder, 8},
		{"Unanswered stops the walk", []Answer{No, Unanswered, Yes}, Pending, NodeGCSBelow15After2h, 1},
		{"Invalid answer stops the walk", []Answer{Answer(9)}, Pending, NodeGCSBelow13, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Evaluate(tt.answers)
			if result.Outcome != tt.expected {
				t.Errorf("Outcome = %s, expected %s", result.Outcome, tt.expected)
			}
			if result.Next != tt.next {
				t.Errorf("Next = %d, expected %d", result.Next, tt.next)
			}
			if len(result.Path) != tt.pathLen {
				t.Errorf("path length = %d, expected %d", len(result.Path), tt.pathLen)
			}
			if result.Done() != (tt.expected != Pending) {
				t.Errorf("Done() = %v for outcome %s", result.Done(), result.Outcome)
			}
		})
	}
}

func TestEvaluateShortCircuits(t *testing.T) {
	for i := 0; i < 7; i++ {
		answers := append(repeat(No, i), Yes)
		// Answers after the first Yes must not change the result.
		answers = append(answers, repeat(No, 10)...)

		result := Evaluate(answers)
		if result.Outcome != UrgentCT {
			t.Fatalf("red flag %d: Outcome = %s, expected %s", i+1, result.Outcome, UrgentCT)
		}
		if len(result.Path) != i+1 {
			t.Errorf("red flag %d: path length = %d, expected %d", i+1, len(result.Path), i+1)
		}
		if last := result.Path[len(result.Path)-1]; last.Node != NodeID(i+1) || last.Answer != Yes {
			t.Errorf("red flag %d: last visit = %+v", i+1, last)
		}
	}
}

func TestEvaluateByNode(t *testing.T) {
	answers := map[NodeID]Answer{
		NodeGCSBelow13:          No,
		NodeGCSBelow15After2h:   No,
		NodeOpenSkullFracture:   No,
		NodeBasalSkullFracture:  No,
		NodeSeizure:             No,
		NodeFocalDeficit:        No,
		NodeRepeatedVomiting:    No,
		NodeLossOfConsciousness: No,
		NodeAnticoagulation:     Yes,
		// Off the walked path.
		NodeAge65OrOlder: Yes,
	}

	result := EvaluateByNode(answers)
	if result.Outcome != DiscretionaryCT {
		t.Fatalf("Outcome = %s, expected %s", result.Outcome, DiscretionaryCT)
	}

	delete(answers, NodeAnticoagulation)
	result = EvaluateByNode(answers)
	if result.Outcome != Pending || result.Next != NodeAnticoagulation {
		t.Errorf("expected pending at node %d, got %s at %d", NodeAnticoagulation, result.Outcome, result.Next)
	}
}

func TestStep(t *testing.T) {
	tests := []struct {
		name     string
		node     NodeID
		answer   Answer
		expected Target
		wantErr  error
	}{
		{"Red flag yes", NodeSeizure, Yes, Target{Outcome: UrgentCT}, nil},
		{"Red flag no", NodeSeizure, No, Target{Next: NodeFocalDeficit}, nil},
		{"Last red flag no", NodeRepeatedVomiting, No, Target{Next: NodeLossOfConsciousness}, nil},
		{"LOC yes", NodeLossOfConsciousness, Yes, Target{Next: NodeAge65OrOlder}, nil},
		{"LOC no", NodeLossOfConsciousness, No, Target{Next: NodeAnticoagulation}, nil},
		{"Anticoagulation yes", NodeAnticoagulation, Yes, Target{Outcome: DiscretionaryCT}, nil},
		{"Anticoagulation no", NodeAnticoagulation, No, Target{Outcome: NoCTNeeded}, nil},
		{"Age yes", NodeAge65OrOlder, Yes, Target{Outcome: Within8Hours}, nil},
		{"Age no", NodeAge65OrOlder, No, Target{Next: NodeCoagulopathy}, nil},
		{"Coagulopathy no", NodeCoagulopathy, No, Target{Next: NodeDangerousMechanism}, nil},
		{"Mechanism no", NodeDangerousMechanism, No, Target{Next: NodeRetrogradeAmnesia}, nil},
		{"Amnesia yes", NodeRetrogradeAmnesia, Yes, Target{Outcome: Within8Hours}, nil},
		{"Amnesia no", NodeRetrogradeAmnesia, No, Target{Outcome: NoCTNeeded}, nil},
		{"Unknown node", NodeID(42), Yes, Target{}, ErrUnknownNode},
		{"Unanswered", NodeSeizure, Unanswered, Target{}, ErrInvalidAnswer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Step(tt.node, tt.answer)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Step() error = %v, expected %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Step() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("Step() = %+v, expected %+v", got, tt.expected)
			}
		})
	}
}

func TestValidateRejectsMalformedTrees(t *testing.T) {
	questions := []Question{{ID: 1, Prompt: "a"}, {ID: 2, Prompt: "b"}}

	tests := []struct {
		name        string
		questions   []Question
		transitions map[NodeID][2]Target
	}{
		{"Empty", nil, nil},
		{"Missing transitions", questions, map[NodeID][2]Target{1: {next(2), outcome(UrgentCT)}}},
		{"Unknown target", questions, map[NodeID][2]Target{
			1: {next(3), outcome(UrgentCT)},
			2: {outcome(NoCTNeeded), outcome(UrgentCT)},
		}},
		{"Unreachable node", questions, map[NodeID][2]Target{
			1: {outcome(NoCTNeeded), outcome(UrgentCT)},
			2: {outcome(NoCTNeeded), outcome(UrgentCT)},
		}},
		{"Cycle", questions, map[NodeID][2]Target{
			1: {next(2), outcome(UrgentCT)},
			2: {next(1), outcome(UrgentCT)},
		}},
		{"Both next and outcome", questions, map[NodeID][2]Target{
			1: {{Next: 2, Outcome: UrgentCT}, outcome(UrgentCT)},
			2: {outcome(NoCTNeeded), outcome(UrgentCT)},
		}},
		{"Transition from unknown node", questions, map[NodeID][2]Target{
			1: {next(2), outcome(UrgentCT)},
			2: {outcome(NoCTNeeded), outcome(UrgentCT)},
			5: {outcome(NoCTNeeded), outcome(UrgentCT)},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewTree(tt.questions, tt.transitions).Validate()
			if !errors.Is(err, ErrInvalidTree) {
				t.Errorf("Validate() error = %v, expected ErrInvalidTree", err)
			}
		})
	}
}

func TestCyclicTreeEvaluationTerminates(t *testing.T) {
	tree := NewTree([]Question{{ID: 1}, {ID: 2}}, map[NodeID][2]Target{
		1: {next(2), outcome(UrgentCT)},
		2: {next(1), outcome(UrgentCT)},
	})

	result := tree.Evaluate(repeat(No, 10))
	if result.Done() {
		t.Fatalf("expected a pending result, got %s", result.Outcome)
	}
}

func TestOutcomeColors(t *testing.T) {
	tests := []struct {
		outcome Outcome
		color   string
	}{
		{UrgentCT, "red"},
		{Within8Hours, "orange"},
		{DiscretionaryCT, "goldenrod"},
		{NoCTNeeded, "green"},
		{Pending, ""},
	}

	for _, tt := range tests {
		if got := tt.outcome.Color(); got != tt.color {
			t.Errorf("%s.Color() = %q, expected %q", tt.outcome, got, tt.color)
		}
		if tt.outcome != Pending && tt.outcome.Recommendation() == "" {
			t.Errorf("%s has no recommendation", tt.outcome)
		}
	}
}

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		input    string
		expected Answer
		wantErr  bool
	}{
		{"yes", Yes, false},
		{" Y ", Yes, false},
		{"Kyllä", Yes, false},
		{"no", No, false},
		{"ei", No, false},
		{"false", No, false},
		{"", Unanswered, false},
		{"maybe", Unanswered, true},
	}

	for _, tt := range tests {
		got, err := ParseAnswer(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAnswer(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseAnswer(%q) = %s, expected %s", tt.input, got, tt.expected)
		}
	}
}

func TestResultJSON(t *testing.T) {
	data, err := json.Marshal(Evaluate([]Answer{Yes}))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	expected := `{"outcome":"urgent-ct","path":[{"node":1,"answer":"yes"}]}`
	if string(data) != expected {
		t.Errorf("Marshal() = %s, expected %s", data, expected)
	}

	var decoded struct {
		Answers map[NodeID]Answer `json:"answers"`
	}
	if err := json.Unmarshal([]byte(`{"answers":{"1":"no","2":"yes"}}`), &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.Answers[NodeGCSBelow15After2h] != Yes {
		t.Errorf("decoded answers = %v", decoded.Answers)
	}
}
