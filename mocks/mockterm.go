package mocks

import (
	"errors"
	"strings"
)

// MockTerm is a console that records what is printed and replays
// canned input lines
type MockTerm struct {
	StrVal   *string   // everything printed so far
	Inputs   *[]string // lines ReadLine hands back, in order
	Prompts  *[]string // prompts ReadLine was shown
	SawBreak *bool     // a ctrl-c is pending
	BreakAt  *int      // raise a break on this BreakCheck call, 0 never
	checks   *int
}

// InitMockTerm gets all the pointers ready
func InitMockTerm(mt *MockTerm) {
	mt.StrVal = new(string)
	mt.Inputs = &[]string{}
	mt.Prompts = &[]string{}
	mt.SawBreak = new(bool)
	mt.BreakAt = new(int)
	mt.checks = new(int)
}

// Print records the text
func (mt MockTerm) Print(msg string) {
	*mt.StrVal = *mt.StrVal + msg
}

// Println records the text and a newline
func (mt MockTerm) Println(msg string) {
	*mt.StrVal = *mt.StrVal + msg + "\n"
}

// ReadLine hands back the next queued input line
func (mt MockTerm) ReadLine(prompt string) (string, error) {
	*mt.Prompts = append(*mt.Prompts, prompt)
	*mt.StrVal = *mt.StrVal + prompt
	if len(*mt.Inputs) == 0 {
		return "", errors.New("no more input")
	}
	line := (*mt.Inputs)[0]
	*mt.Inputs = (*mt.Inputs)[1:]
	return line, nil
}

// BreakCheck reports and clears a pending break
func (mt MockTerm) BreakCheck() bool {
	*mt.checks++
	if *mt.BreakAt > 0 && *mt.checks == *mt.BreakAt {
		*mt.SawBreak = true
	}
	brk := *mt.SawBreak
	*mt.SawBreak = false
	return brk
}

// Feed queues input lines
func (mt MockTerm) Feed(lines ...string) {
	*mt.Inputs = append(*mt.Inputs, lines...)
}

// Output returns what was printed
func (mt MockTerm) Output() string {
	return *mt.StrVal
}

// Lines splits the output on newlines, without a trailing empty entry
func (mt MockTerm) Lines() []string {
	out := strings.TrimSuffix(*mt.StrVal, "\n")
	if len(out) == 0 {
		return nil
	}
	return strings.Split(out, "\n")
}

// Reset throws away the recorded output
func (mt MockTerm) Reset() {
	*mt.StrVal = ""
}
