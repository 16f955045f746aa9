package utils

import (
	"fmt"
	"math/big"

	"github.com/peterh/liner"
)

// Prompter reads a single line of user input.
type Prompter interface {
	PromptInput(prompt string) (string, error)
	Close() error
}

// terminalPrompter is a Prompter backed by the liner package. It supports
// prompting the user for input when stdin is a terminal and falls back to
// plain line reading otherwise.
type terminalPrompter struct {
	*liner.State
	supported  bool
	normalMode liner.ModeApplier
	rawMode    liner.ModeApplier
}

// NewTerminalPrompter creates a liner based user input prompter working off
// the standard input and output streams.
func NewTerminalPrompter() Prompter {
	p := new(terminalPrompter)
	// Get the original mode before calling NewLiner.
	// This is usually regular "cooked" mode where characters echo.
	normalMode, _ := liner.TerminalMode()
	// Turn on liner. It switches to raw mode.
	p.State = liner.NewLiner()
	rawMode, err := liner.TerminalMode()
	if err != nil || !liner.TerminalSupported() {
		p.supported = false
	} else {
		p.supported = true
		p.normalMode = normalMode
		p.rawMode = rawMode
		// Switch back to normal mode while we're not prompting.
		normalMode.ApplyMode()
	}
	p.SetCtrlCAborts(true)
	return p
}

// PromptInput displays the given prompt to the user and requests some textual
// data to be entered, returning the input of the user.
func (p *terminalPrompter) PromptInput(prompt string) (string, error) {
	if p.supported {
		p.rawMode.ApplyMode()
		defer p.normalMode.ApplyMode()
	} else {
		// liner tries to be smart about printing the prompt
		// and doesn't print anything if input is redirected.
		// Un-smart it by printing the prompt always.
		fmt.Print(prompt)
		prompt = ""
		defer fmt.Println()
	}
	return p.State.Prompt(prompt)
}

// ReadGroup asks for p, g and h in turn. Input that is not a non-negative
// integer yields an *InputError.
func ReadGroup(pr Prompter) (p, g, h *big.Int, err error) {
	read := func(name string) (*big.Int, error) {
		text, err := pr.PromptInput(fmt.Sprintf("Enter %s value:", name))
		if err != nil {
			return nil, err
		}
		return ParseInteger(name, text)
	}
	if p, err = read("p"); err != nil {
		return nil, nil, nil, err
	}
	if g, err = read("g"); err != nil {
		return nil, nil, nil, err
	}
	if h, err = read("h"); err != nil {
		return nil, nil, nil, err
	}
	return p, g, h, nil
}
