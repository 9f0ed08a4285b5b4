package commands

import (
	"errors"
	"testing"

	"doit/internal/todo"
)

func TestParseTaskRef(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		want     TaskRef
		wantRest []string
		wantErr  string
	}{
		{"position", []string{"1"}, TaskRef{Num: 1}, []string{}, ""},
		{"position with rest", []string{"12", "new", "text"}, TaskRef{Num: 12}, []string{"new", "text"}, ""},
		{"id prefix", []string{"3f2a"}, TaskRef{IDPrefix: "3f2a"}, []string{}, ""},
		{"id prefix upper", []string{"3F2A-9B"}, TaskRef{IDPrefix: "3f2a-9b"}, []string{}, ""},
		{"full uuid", []string{"0b1c4f8e-2d3a-4b5c-8d9e-0f1a2b3c4d5e"}, TaskRef{IDPrefix: "0b1c4f8e-2d3a-4b5c-8d9e-0f1a2b3c4d5e"}, []string{}, ""},
		{"empty", nil, TaskRef{}, nil, "task reference required"},
		{"short prefix", []string{"abc"}, TaskRef{}, nil, "invalid task reference: abc"},
		{"not hex", []string{"milk"}, TaskRef{}, nil, "invalid task reference: milk"},
		{"negative", []string{"-1"}, TaskRef{}, nil, "invalid task reference: -1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rest, err := ParseTaskRef(tt.args)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("expected error %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
			if len(rest) != len(tt.wantRest) {
				t.Fatalf("expected rest %v, got %v", tt.wantRest, rest)
			}
			for i := range rest {
				if rest[i] != tt.wantRest[i] {
					t.Errorf("expected rest %v, got %v", tt.wantRest, rest)
				}
			}
		})
	}
}

func TestTaskRefResolve(t *testing.T) {
	tasks := todo.List{
		{ID: "aaaa1111", Text: "one"},
		{ID: "aaaa2222", Text: "two"},
		{ID: "bbbb3333", Text: "three"},
	}

	tests := []struct {
		name    string
		ref     TaskRef
		wantID  string
		wantErr error
	}{
		{"first", TaskRef{Num: 1}, "aaaa1111", nil},
		{"last", TaskRef{Num: 3}, "bbbb3333", nil},
		{"zero", TaskRef{Num: 0}, "", ErrTaskNotFound},
		{"past end", TaskRef{Num: 4}, "", ErrTaskNotFound},
		{"unique prefix", TaskRef{IDPrefix: "bbbb"}, "bbbb3333", nil},
		{"longer prefix", TaskRef{IDPrefix: "aaaa2"}, "aaaa2222", nil},
		{"ambiguous", TaskRef{IDPrefix: "aaaa"}, "", ErrAmbiguousRef},
		{"unknown", TaskRef{IDPrefix: "cccc"}, "", ErrTaskNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.ref.Resolve(tasks)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ID != tt.wantID {
				t.Errorf("expected %s, got %s", tt.wantID, got.ID)
			}
		})
	}
}
