// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// linePrompter asks on out and reads the answer from the command scanner.
type linePrompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func (p *linePrompter) Confirm(message string) bool {
	fmt.Fprintf(p.out, "%s [y/N] ", message)
	if !p.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(p.in.Text()))
	return answer == "y" || answer == "yes"
}

func (p *linePrompter) Alert(message string) {
	fmt.Fprintf(p.out, "!! %s\n", message)
}
