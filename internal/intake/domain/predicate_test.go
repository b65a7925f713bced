package domain

import "testing"

func TestNilPredicateAlwaysPasses(t *testing.T) {
	var p *Predicate
	if !p.Eval(nil) {
		t.Fatal("nil predicate should pass with no answers")
	}
	if !p.Eval(map[string]string{"material": "wood"}) {
		t.Fatal("nil predicate should pass regardless of answers")
	}
}

func TestAnswerContains(t *testing.T) {
	p := &Predicate{Kind: PredicateAnswerContains, QuestionKey: "fixture_type", Value: "railing"}

	if p.Eval(map[string]string{"fixture_type": "Deck with Railing"}) != true {
		t.Fatal("expected case-insensitive substring match to pass")
	}
	if p.Eval(map[string]string{"fixture_type": "stairs only"}) {
		t.Fatal("expected non-matching answer to fail")
	}
	if p.Eval(map[string]string{"other_key": "railing"}) {
		t.Fatal("expected missing referenced answer to fail")
	}
	if p.Eval(nil) {
		t.Fatal("expected empty answer set to fail")
	}
}

func TestAnswerEquals(t *testing.T) {
	p := &Predicate{Kind: PredicateAnswerEquals, QuestionKey: "water_heater_kind", Value: "tankless"}

	if !p.Eval(map[string]string{"water_heater_kind": "Tankless"}) {
		t.Fatal("expected case-insensitive equality to pass")
	}
	if !p.Eval(map[string]string{"water_heater_kind": "  tankless  "}) {
		t.Fatal("expected trimmed equality to pass")
	}
	if p.Eval(map[string]string{"water_heater_kind": "tank"}) {
		t.Fatal("expected different answer to fail")
	}
}

func TestAnswerMissing(t *testing.T) {
	p := &Predicate{Kind: PredicateAnswerMissing, QuestionKey: "access_notes"}

	if !p.Eval(map[string]string{}) {
		t.Fatal("expected missing answer to pass")
	}
	if p.Eval(map[string]string{"access_notes": "gate code 4411"}) {
		t.Fatal("expected present answer to fail")
	}
}

func TestUnknownKindNeverPasses(t *testing.T) {
	p := &Predicate{Kind: PredicateKind("regex_match"), QuestionKey: "q", Value: ".*"}
	if p.Eval(map[string]string{"q": "anything"}) {
		t.Fatal("unknown predicate kinds must not unlock questions")
	}
}
