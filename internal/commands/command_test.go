package commands

import (
	"errors"
	"testing"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add 9:00 - 10:00 - Standup - work", TypeAdd},
		{"ai gym tomorrow at 6pm", TypeAssist},
		{"goto tomorrow", TypeGoto},
		{"range 30", TypeRange},
		{"retag work career", TypeRetag},
		{"drop Morning Routine", TypeDrop},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseAddRepeatSuffix(t *testing.T) {
	cmd, err := Parse("add 7:00 - 7:30 - Gym - health repeat:7")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Add.RepeatDays != 7 {
		t.Fatalf("repeat days = %d, want 7", cmd.Add.RepeatDays)
	}
	if cmd.Add.Line != "7:00 - 7:30 - Gym - health" {
		t.Fatalf("line = %q", cmd.Add.Line)
	}

	if _, err := Parse("add 7:00 - 7:30 - Gym - health repeat:zero"); err == nil {
		t.Fatal("bad repeat suffix should error")
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/unknown do x")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestParseInvalidArguments(t *testing.T) {
	for _, in := range []string{"add", "ai", "goto", "range ten", "retag onlyone", "drop"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument error, got %v", in, err)
		}
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("retag work career")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Retag: func(a RetagArgs) (Result, error) {
			called = true
			if a.From != "work" || a.To != "career" {
				t.Fatalf("unexpected args: %+v", a)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("goto today")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
