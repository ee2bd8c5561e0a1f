package repository

import (
	"regexp"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSearchFilter_EmptyMatchesAll(t *testing.T) {
	if filter := searchFilter(""); len(filter) != 0 {
		t.Errorf("expected empty filter, got %v", filter)
	}
}

func TestSearchFilter_NameOrSubject(t *testing.T) {
	filter := searchFilter("math")

	clauses, ok := filter["$or"].(bson.A)
	if !ok || len(clauses) != 2 {
		t.Fatalf("expected $or with two clauses, got %v", filter)
	}

	fields := map[string]bool{}
	for _, c := range clauses {
		clause, ok := c.(bson.M)
		if !ok || len(clause) != 1 {
			t.Fatalf("unexpected clause %v", c)
		}
		for field, value := range clause {
			fields[field] = true
			re, ok := value.(primitive.Regex)
			if !ok {
				t.Fatalf("expected regex for %s, got %T", field, value)
			}
			if re.Options != "i" {
				t.Errorf("expected case-insensitive match on %s, got options %q", field, re.Options)
			}
		}
	}
	if !fields["name"] || !fields["subject"] {
		t.Errorf("expected name and subject clauses, got %v", fields)
	}
}

func TestSearchFilter_MatchSemantics(t *testing.T) {
	tests := []struct {
		query string
		value string
		want  bool
	}{
		{query: "math", value: "Mathematics", want: true},
		{query: "PHYS", value: "Physics", want: true},
		{query: "lee", value: "Brian Lee", want: true},
		{query: "c++", value: "Intro to C++", want: true},
		{query: "c++", value: "ccc", want: false},
		{query: ".*", value: "Chemistry", want: false},
		{query: "a.b", value: "axb", want: false},
		{query: "(gomez", value: "Cynthia (Gomez)", want: true},
		{query: "biology", value: "Mathematics", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.query+"/"+tt.value, func(t *testing.T) {
			clauses := searchFilter(tt.query)["$or"].(bson.A)
			re := clauses[0].(bson.M)["name"].(primitive.Regex)

			compiled, err := regexp.Compile("(?" + re.Options + ")" + re.Pattern)
			if err != nil {
				t.Fatalf("pattern %q does not compile: %v", re.Pattern, err)
			}
			if got := compiled.MatchString(tt.value); got != tt.want {
				t.Errorf("pattern %q against %q: got %v, want %v", re.Pattern, tt.value, got, tt.want)
			}
		})
	}
}
