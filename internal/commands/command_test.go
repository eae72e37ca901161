package commands

import (
	"errors"
	"testing"

	"github.com/Simenb123/revy-actions/internal/model"
)

func TestParseStatus(t *testing.T) {
	cmd, err := Parse(":status completed")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if cmd.Type != TypeStatus {
		t.Fatalf("expected status command, got %s", cmd.Type)
	}
	if cmd.Status == nil || cmd.Status.Status != model.StatusCompleted {
		t.Fatalf("unexpected status args: %+v", cmd.Status)
	}
}

func TestParseStatusRejectsUnknown(t *testing.T) {
	_, err := Parse("status done")
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Code != ErrCodeInvalidArgument {
		t.Fatalf("expected invalid_argument, got %v", err)
	}
}

func TestParseSelect(t *testing.T) {
	cases := []struct {
		input string
		all   bool
	}{
		{"select all", true},
		{"select none", false},
		{"SELECT ALL", true},
	}
	for _, tc := range cases {
		cmd, err := Parse(tc.input)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", tc.input, err)
		}
		if cmd.Select == nil || cmd.Select.All != tc.all {
			t.Fatalf("Parse(%q) select args = %+v", tc.input, cmd.Select)
		}
	}
}

func TestParseFilterTokens(t *testing.T) {
	cmd, err := Parse("filter q:revenue status:in_progress area:sales")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	f := cmd.Filter
	if f == nil {
		t.Fatal("expected filter args")
	}
	if f.Query == nil || *f.Query != "revenue" {
		t.Fatalf("query = %v", f.Query)
	}
	if f.Status == nil || *f.Status != "in_progress" {
		t.Fatalf("status = %v", f.Status)
	}
	if f.SubjectArea == nil || *f.SubjectArea != "sales" {
		t.Fatalf("area = %v", f.SubjectArea)
	}
}

func TestParseFilterPartialTokens(t *testing.T) {
	cmd, err := Parse("filter status:all")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	f := cmd.Filter
	if f.Status == nil || *f.Status != "all" {
		t.Fatalf("status = %v", f.Status)
	}
	if f.Query != nil || f.SubjectArea != nil {
		t.Fatalf("untouched facets should stay nil: %+v", f)
	}
}

func TestParseFilterClear(t *testing.T) {
	cmd, err := Parse("filter clear")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !cmd.Filter.Clear {
		t.Fatal("expected clear flag")
	}
}

func TestParseFilterRejectsBadToken(t *testing.T) {
	_, err := Parse("filter due:tomorrow")
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Code != ErrCodeInvalidArgument {
		t.Fatalf("expected invalid_argument, got %v", err)
	}
}

func TestParseGoto(t *testing.T) {
	cmd, err := Parse("goto act-42")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if cmd.Goto == nil || cmd.Goto.ID != "act-42" {
		t.Fatalf("goto args = %+v", cmd.Goto)
	}
}

func TestParseEmptyAndUnknown(t *testing.T) {
	_, err := Parse("   ")
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Code != ErrCodeEmptyInput {
		t.Fatalf("expected empty_input, got %v", err)
	}

	_, err = Parse("archive everything")
	if !errors.As(err, &cmdErr) || cmdErr.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown_command, got %v", err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	called := false
	handlers := Handlers{
		Status: func(args StatusArgs) (Result, error) {
			called = true
			return Result{Message: "status set to " + string(args.Status)}, nil
		},
	}
	cmd, err := Parse("status reviewed")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	res, err := Execute(cmd, handlers)
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if !called || res.Message != "status set to reviewed" {
		t.Fatalf("unexpected dispatch: called=%v message=%q", called, res.Message)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("delete")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected handler_missing, got %v", err)
	}
}
